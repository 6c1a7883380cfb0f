// Package list groups consecutive marker-prefixed lines into list groups
// with indentation-derived nesting. It is also the authoritative resolver
// for the heading-vs-list ambiguity: heading-tagged lines that participate
// in a run of structurally identical consecutive marker lines are re-tagged
// as list content here, in a second pass over the classified block stream.
package list

import (
	"regexp"
	"strings"
)

// Marker families. A list group never mixes families.
const (
	FamilyBullet   = "bullet"
	FamilyNumbered = "numbered"
	FamilyLettered = "lettered"
	FamilyRoman    = "roman"
)

// bulletRunes are the glyphs recognized as bullets
var bulletRunes = map[rune]bool{
	'•': true, '●': true, '○': true, '◦': true,
	'■': true, '□': true, '▪': true, '▫': true,
	'–': true, '—': true, '*': true, '‣': true,
	'→': true, '▶': true, '►': true, '-': true,
}

var (
	numberedMarkerRe = regexp.MustCompile(`^(\d{1,3})([.)])\s+(\S.*)$`)
	letteredMarkerRe = regexp.MustCompile(`^([a-zA-Z])([.)])\s+(\S.*)$`)
	romanMarkerRe    = regexp.MustCompile(`^([ivxl]{1,6}|[IVXL]{1,6})([.)])\s+(\S.*)$`)
)

// Marker is a recognized list marker at the start of a line.
type Marker struct {
	// Family is the marker pattern family
	Family string

	// Token is the marker text including its closing punctuation (e.g.
	// "a)", "3.", "•")
	Token string

	// Rest is the line content after the marker
	Rest string
}

// Match recognizes a list marker at the start of text. Roman numerals are
// checked before single letters so that "i." and "iv." land in the roman
// family; a bare "v." stays lettered only when it cannot be roman, which
// in practice means multi-letter roman tokens win and single ambiguous
// letters stay lettered.
func Match(text string) (Marker, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Marker{}, false
	}

	runes := []rune(text)
	if bulletRunes[runes[0]] {
		rest := strings.TrimSpace(string(runes[1:]))
		if rest == "" {
			return Marker{}, false
		}
		return Marker{Family: FamilyBullet, Token: string(runes[0]), Rest: rest}, true
	}

	if m := romanMarkerRe.FindStringSubmatch(text); m != nil && len(m[1]) > 1 {
		return Marker{Family: FamilyRoman, Token: m[1] + m[2], Rest: m[3]}, true
	}
	if m := numberedMarkerRe.FindStringSubmatch(text); m != nil {
		return Marker{Family: FamilyNumbered, Token: m[1] + m[2], Rest: m[3]}, true
	}
	if m := letteredMarkerRe.FindStringSubmatch(text); m != nil {
		return Marker{Family: FamilyLettered, Token: m[1] + m[2], Rest: m[3]}, true
	}

	return Marker{}, false
}
