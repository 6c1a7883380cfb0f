package model

// PositionedRun is a positioned piece of text supplied by the extraction
// layer. Runs are immutable inputs; the classifier never modifies them.
type PositionedRun struct {
	// Text is the run's text content
	Text string

	// FontName is the font family name as reported by the extractor
	FontName string

	// FontSize is the font size in points
	FontSize float64

	// Bold indicates a bold font weight
	Bold bool

	// BBox is the run's bounding box on the page
	BBox BBox

	// Page is the 1-indexed page number the run appears on
	Page int
}

// CharCount returns the number of runes in the run's text.
func (r PositionedRun) CharCount() int {
	return len([]rune(r.Text))
}

// PositionedImage is a positioned raster image supplied by the extraction
// layer. Ref is an opaque identifier, unique per image object in the source
// document (typically the source xref number).
type PositionedImage struct {
	// BBox is the image's placement box on the page
	BBox BBox

	// PixelWidth and PixelHeight are the image's pixel dimensions
	PixelWidth  int
	PixelHeight int

	// Format is the encoded format tag as reported by the extractor
	// (e.g. "jpeg", "png"); may be empty when unknown
	Format string

	// Data is the encoded image bytes; may be nil when the extractor
	// did not materialize them
	Data []byte

	// Page is the 1-indexed page number
	Page int

	// Ref is an opaque per-image identifier from the source document
	Ref string
}

// Page holds the positioned primitives of a single page.
type Page struct {
	// Number is the 1-indexed page number
	Number int

	// Width and Height are the page dimensions in points
	Width  float64
	Height float64

	// Runs are the positioned text runs, in extraction order
	Runs []PositionedRun

	// Images are the positioned raster images
	Images []PositionedImage
}

// Document is the full primitive input for one classification run.
type Document struct {
	Pages []Page
}

// PageCount returns the number of pages in the document.
func (d Document) PageCount() int {
	return len(d.Pages)
}

// AllRuns returns every run in the document in page order. The typography
// baseline is computed over this slice.
func (d Document) AllRuns() []PositionedRun {
	var total int
	for _, p := range d.Pages {
		total += len(p.Runs)
	}
	runs := make([]PositionedRun, 0, total)
	for _, p := range d.Pages {
		runs = append(runs, p.Runs...)
	}
	return runs
}
