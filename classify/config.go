package classify

// Config holds configuration for the block classifier
type Config struct {
	// LineOverlapRatio is the minimum vertical overlap (as a fraction of
	// the smaller height) for two runs to share a visual line
	// Default: 0.4
	LineOverlapRatio float64 `yaml:"line_overlap_ratio"`

	// LineGapThreshold is the maximum vertical gap for two lines to be
	// merged into one block. Zero means derive from the body line height
	// of the typography baseline.
	// Default: 0 (derived)
	LineGapThreshold float64 `yaml:"body_line_gap_threshold"`

	// LineGapFactor multiplies the body line height when deriving the
	// gap threshold
	// Default: 1.4
	LineGapFactor float64 `yaml:"line_gap_factor"`

	// MarginBand is the fraction of the page height at the top and
	// bottom considered the metadata zone
	// Default: 0.10
	MarginBand float64 `yaml:"margin_band"`

	// ColumnTolerance is the clustering tolerance for table column
	// anchors, in layout units
	// Default: 15
	ColumnTolerance float64 `yaml:"column_tolerance_px"`

	// MinColumnAnchors is the minimum recurring anchors for a table
	// Default: 2
	MinColumnAnchors int `yaml:"min_column_anchors"`

	// MinTableLines is the minimum consecutive anchored lines for a table
	// Default: 2
	MinTableLines int `yaml:"min_table_lines"`

	// ColumnConsistency is the minimum fraction of a line's runs that
	// must land on established anchors to extend a table candidate
	// Default: 0.6
	ColumnConsistency float64 `yaml:"column_consistency"`

	// HeadingSizeRatio is the baseline size ratio above which an
	// unnumbered short line becomes a heading candidate
	// Default: 1.15
	HeadingSizeRatio float64 `yaml:"heading_size_ratio"`

	// MaxHeadingWords caps the word count of size-based heading candidates
	// Default: 12
	MaxHeadingWords int `yaml:"max_heading_words"`

	// FormulaGlyphRatio is the minimum ratio of mathematical glyphs to
	// total significant characters for a formula line
	// Default: 0.25
	FormulaGlyphRatio float64 `yaml:"formula_glyph_ratio"`

	// MinFormulaGlyphs is the minimum absolute count of mathematical
	// glyphs for a formula line
	// Default: 2
	MinFormulaGlyphs int `yaml:"min_formula_glyphs"`
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		LineOverlapRatio:  0.4,
		LineGapThreshold:  0,
		LineGapFactor:     1.4,
		MarginBand:        0.10,
		ColumnTolerance:   15.0,
		MinColumnAnchors:  2,
		MinTableLines:     2,
		ColumnConsistency: 0.6,
		HeadingSizeRatio:  1.15,
		MaxHeadingWords:   12,
		FormulaGlyphRatio: 0.25,
		MinFormulaGlyphs:  2,
	}
}
