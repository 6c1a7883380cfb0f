package model

import "strings"

// BlockType represents the kind of a classified content block
type BlockType int

const (
	BlockText BlockType = iota
	BlockTable
	BlockHeading
	BlockList
	BlockFormula
	BlockImage
	BlockMetadata
)

// String returns a string representation of the block type
func (t BlockType) String() string {
	switch t {
	case BlockText:
		return "text"
	case BlockTable:
		return "table"
	case BlockHeading:
		return "heading"
	case BlockList:
		return "list"
	case BlockFormula:
		return "formula"
	case BlockImage:
		return "image"
	case BlockMetadata:
		return "metadata"
	default:
		return "unknown"
	}
}

// VisualLine is a single visual line of a page: the runs that vertically
// overlap, sorted left to right. Lines are the unit the classifier reasons
// about; blocks keep their constituent lines for the downstream builders.
type VisualLine struct {
	// Text is the assembled text of the line
	Text string

	// BBox is the union of the runs' boxes
	BBox BBox

	// Runs are the line's runs, sorted left to right
	Runs []PositionedRun

	// FontSize is the average font size of the runs
	FontSize float64

	// Bold indicates that the majority of the line's characters are bold
	Bold bool
}

// Indent returns the line's left edge, used as its indentation value.
func (l VisualLine) Indent() float64 {
	return l.BBox.X
}

// ContentBlock is the central output entity: a typed region of a page.
// Blocks are created by the classifier and then refined in place by exactly
// one downstream builder, selected by Type. They are never shared between
// goroutines while mutable.
type ContentBlock struct {
	// Type is the block kind
	Type BlockType

	// BBox is the union of the constituent lines' boxes
	BBox BBox

	// Confidence is the classification confidence in [0,1]
	Confidence float64

	// Page is the 1-indexed page number
	Page int

	// Lines are the visual lines the block was built from (empty for
	// image blocks)
	Lines []VisualLine

	// Text is the assembled text payload (text, formula and metadata blocks)
	Text string

	// Table is the table payload (table blocks only)
	Table *TableData

	// Heading is the heading payload (heading blocks only)
	Heading *HeadingData

	// List is the list payload (list blocks only)
	List *ListGroup

	// Figure is the image payload (image blocks only)
	Figure *FigureData

	// Meta carries provenance flags such as "extraction_failed" or
	// "is_split_section"
	Meta map[string]string
}

// SetMeta records a provenance flag, allocating the map on first use.
func (b *ContentBlock) SetMeta(key, value string) {
	if b.Meta == nil {
		b.Meta = make(map[string]string)
	}
	b.Meta[key] = value
}

// GetMeta returns a provenance flag, or "" when unset.
func (b *ContentBlock) GetMeta(key string) string {
	return b.Meta[key]
}

// ContainsRun reports whether the run's box lies inside the block's box.
func (b *ContentBlock) ContainsRun(run PositionedRun) bool {
	return b.BBox.Contains(run.BBox.Center())
}

// TableRow is one logical row of a table block.
type TableRow struct {
	// Cells are the row's cell texts, one per detected column
	Cells []string

	// BBox is the union of the merged source lines' boxes
	BBox BBox
}

// Text returns the row's cells joined by a single space, skipping empties.
func (r TableRow) Text() string {
	var parts []string
	for _, c := range r.Cells {
		if c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, " ")
}

// TableData is the payload of a table block.
type TableData struct {
	// Anchors are the detected column x positions, ascending
	Anchors []float64

	// Rows are the logical rows after continuation merging
	Rows []TableRow

	// Sections is the marker-delimited split of Rows; a single section
	// when no split applied. The concatenation of section rows always
	// equals Rows, order preserved.
	Sections []TableSection
}

// TableSection is a contiguous row range of a table carrying a section
// marker such as "a." or "d.2".
type TableSection struct {
	// Marker is the section marker text, "" for an unmarked leading section
	Marker string

	// Rows are the section's logical rows
	Rows []TableRow

	// BBox is the union of the rows' boxes
	BBox BBox
}

// HeadingData is the payload of a heading block.
type HeadingData struct {
	// Text is the full heading text including the numbering prefix
	Text string

	// Level is the nesting level; 1 is top, 0 is the document title
	Level int

	// Prefix is the matched numbering prefix (e.g. "d.1"), "" for titles
	Prefix string

	// Pattern is the numbering pattern tag (e.g. "letter.number")
	Pattern string

	// Score is the heading score against the typography baseline
	Score float64
}

// HeadingEntry is one entry of the document table of contents.
type HeadingEntry struct {
	Text    string
	Page    int
	Level   int
	Pattern string
	Score   float64
}

// ListItem is a single marker-prefixed item of a list group.
type ListItem struct {
	// Marker is the item's marker token (e.g. "a)", "•", "3.")
	Marker string

	// Indent is the item's nesting level derived from indentation, 0 = top
	Indent int

	// Text is the item content without the marker
	Text string

	// Page is the 1-indexed page number
	Page int

	// BBox is the item's bounding box
	BBox BBox
}

// ListGroup is the payload of a list block: an ordered run of items sharing
// one marker pattern family and indent level.
type ListGroup struct {
	// Items are the group's items in visual order
	Items []ListItem

	// Family is the marker pattern family tag (e.g. "lettered", "bullet")
	Family string

	// BBox is the union of the items' boxes
	BBox BBox
}

// FigureData is the payload of an image block.
type FigureData struct {
	// Ref is the source image's opaque identifier
	Ref string

	// Format is the decoded (or extractor-reported) format tag
	Format string

	// PixelWidth and PixelHeight are the image's pixel dimensions
	PixelWidth  int
	PixelHeight int

	// Caption is the associated caption text, set by the figure associator
	Caption string
}

// FigurePosition describes where a caption sits relative to its image.
type FigurePosition int

const (
	// PositionAbove means the caption is above the image
	PositionAbove FigurePosition = iota
	// PositionBelow means the caption is below the image
	PositionBelow
	// PositionCaptionOnly means no image matched the caption
	PositionCaptionOnly
	// PositionImageOnly means no caption matched the image
	PositionImageOnly
)

// String returns a string representation of the position
func (p FigurePosition) String() string {
	switch p {
	case PositionAbove:
		return "above"
	case PositionBelow:
		return "below"
	case PositionCaptionOnly:
		return "caption_only"
	case PositionImageOnly:
		return "image_only"
	default:
		return "unknown"
	}
}

// FigureAssociation pairs an image block with nearby caption text. One of
// Image or Caption may be absent, indicated by Position.
type FigureAssociation struct {
	// Image is the paired image payload, nil for caption_only entries
	Image *FigureData

	// Caption is the caption text, "" for image_only entries
	Caption string

	// Page is the 1-indexed page number
	Page int

	// Position tags the caption's position relative to the image
	Position FigurePosition

	// Distance is the vertical distance between caption and image when
	// both are present
	Distance float64
}

// Summary holds per-document counts by block type.
type Summary struct {
	// Pages is the number of pages classified
	Pages int

	// Blocks is the total block count
	Blocks int

	// ByType counts blocks per kind
	ByType map[BlockType]int
}

// Add records one block of the given type.
func (s *Summary) Add(t BlockType) {
	if s.ByType == nil {
		s.ByType = make(map[BlockType]int)
	}
	s.ByType[t]++
	s.Blocks++
}
