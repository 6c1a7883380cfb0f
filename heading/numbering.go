// Package heading recognizes heading numbering patterns and builds the
// document heading hierarchy (table of contents) from classified blocks.
package heading

import (
	"regexp"
	"strings"
)

// Pattern identifies a recognized heading numbering pattern. Patterns map
// to nesting levels: the more dotted components, the deeper the level.
type Pattern int

const (
	PatternNone Pattern = iota
	// PatternTitle is a first-page quoted document title (level 0)
	PatternTitle
	// PatternNumber is a bare number prefix such as "1." (level 1)
	PatternNumber
	// PatternNumberNumber is "7.1 Title" style (level 2)
	PatternNumberNumber
	// PatternLetter is a bare letter prefix such as "a." (level 2)
	PatternLetter
	// PatternLetterNumber is "d.2" style (level 3)
	PatternLetterNumber
	// PatternLetterNumberNumber is "d.1.1" style (level 4)
	PatternLetterNumberNumber
)

// String returns the pattern tag used in block payloads and TOC entries
func (p Pattern) String() string {
	switch p {
	case PatternTitle:
		return "title"
	case PatternNumber:
		return "number"
	case PatternNumberNumber:
		return "number.number"
	case PatternLetter:
		return "letter"
	case PatternLetterNumber:
		return "letter.number"
	case PatternLetterNumberNumber:
		return "letter.number.number"
	default:
		return "none"
	}
}

// Level returns the nesting level the pattern maps to (1 = top level,
// 0 = document title). PatternNone has no inherent level and returns 0;
// callers score size-only headings separately.
func (p Pattern) Level() int {
	switch p {
	case PatternTitle:
		return 0
	case PatternNumber:
		return 1
	case PatternNumberNumber, PatternLetter:
		return 2
	case PatternLetterNumber:
		return 3
	case PatternLetterNumberNumber:
		return 4
	default:
		return 0
	}
}

// Family returns the marker family the pattern belongs to, used when
// deciding whether consecutive heading lines are structurally identical
// (and therefore a list, not headings).
func (p Pattern) Family() string {
	switch p {
	case PatternNumber, PatternNumberNumber:
		return "number"
	case PatternLetter, PatternLetterNumber, PatternLetterNumberNumber:
		return "letter"
	case PatternTitle:
		return "title"
	default:
		return "none"
	}
}

// Numbering patterns, most specific first. Letter prefixes are lowercase
// only: uppercase single letters followed by a period are far more often
// initials than section markers.
var (
	letterNumNumRe = regexp.MustCompile(`^([a-z])\.(\d{1,2})\.(\d{1,2})(\s+\S.*)?$`)
	letterNumRe    = regexp.MustCompile(`^([a-z])\.(\d{1,2})(\s+\S.*)?$`)
	numNumRe       = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\s+\S.*$`)
	letterRe       = regexp.MustCompile(`^([a-z])\.(\s+\S.*)?$`)
	numberRe       = regexp.MustCompile(`^(\d{1,2})\.(\s+\S.*)?$`)
)

// quote pairs recognized for first-page document titles
var titleQuotes = [][2]string{
	{"“", "”"}, // “ ”
	{"«", "»"}, // « »
	{"‘", "’"}, // ‘ ’
	{`"`, `"`},
}

// MatchNumbering matches text against the numbering grammar, most specific
// pattern first, and returns the pattern and the matched prefix. It returns
// ok=false when no pattern matches. Title matching is separate (see
// MatchQuotedTitle) since it depends on page position.
func MatchNumbering(text string) (pattern Pattern, prefix string, ok bool) {
	text = strings.TrimSpace(text)

	if m := letterNumNumRe.FindStringSubmatch(text); m != nil {
		return PatternLetterNumberNumber, m[1] + "." + m[2] + "." + m[3], true
	}
	if m := letterNumRe.FindStringSubmatch(text); m != nil {
		return PatternLetterNumber, m[1] + "." + m[2], true
	}
	if m := numNumRe.FindStringSubmatch(text); m != nil {
		return PatternNumberNumber, m[1] + "." + m[2], true
	}
	if m := letterRe.FindStringSubmatch(text); m != nil {
		return PatternLetter, m[1] + ".", true
	}
	if m := numberRe.FindStringSubmatch(text); m != nil {
		return PatternNumber, m[1] + ".", true
	}

	return PatternNone, "", false
}

// MatchQuotedTitle reports whether text is a complete line delimited by a
// matched pair of typographic quotation marks with no numbering prefix.
// Only valid on the first page; the caller enforces page position and the
// at-most-one-per-document rule.
func MatchQuotedTitle(text string) (title string, ok bool) {
	text = strings.TrimSpace(text)
	if len(text) < 3 {
		return "", false
	}

	for _, pair := range titleQuotes {
		opening, closing := pair[0], pair[1]
		if strings.HasPrefix(text, opening) && strings.HasSuffix(text, closing) {
			inner := strings.TrimSuffix(strings.TrimPrefix(text, opening), closing)
			inner = strings.TrimSpace(inner)
			if inner == "" || strings.Contains(inner, opening) || strings.Contains(inner, closing) {
				continue
			}
			// A numbered line inside quotes is a quoted heading, not a title.
			if _, _, numbered := MatchNumbering(inner); numbered {
				return "", false
			}
			return inner, true
		}
	}
	return "", false
}
