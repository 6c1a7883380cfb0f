package classify

import "unicode"

// mathGlyphs are ASCII characters counted as mathematical when scoring
// formula density. Non-ASCII operators and Greek letters are recognized
// through their Unicode ranges instead.
var mathGlyphs = map[rune]bool{
	'=': true, '+': true, '-': true, '*': true, '/': true,
	'<': true, '>': true, '^': true, '~': true, '|': true,
	'(': true, ')': true, '[': true, ']': true, '{': true, '}': true,
	'%': true, '±': true, '×': true, '÷': true,
}

// isMathGlyph reports whether r counts toward formula glyph density.
func isMathGlyph(r rune) bool {
	if mathGlyphs[r] {
		return true
	}
	// Greek letters are a strong formula signal in Latin-script documents.
	if r >= 0x0391 && r <= 0x03c9 {
		return true
	}
	// Mathematical operators, arrows, and related symbol blocks.
	if r >= 0x2190 && r <= 0x22ff {
		return true
	}
	// Superscripts and subscripts.
	if r >= 0x2070 && r <= 0x209f {
		return true
	}
	return false
}

// formulaGlyphDensity returns the ratio of mathematical glyphs to
// significant (non-space) characters and the absolute glyph count.
func formulaGlyphDensity(text string) (float64, int) {
	glyphs, significant := 0, 0
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		significant++
		if isMathGlyph(r) {
			glyphs++
		}
	}
	if significant == 0 {
		return 0, 0
	}
	return float64(glyphs) / float64(significant), glyphs
}
