// Package table builds table structure for classified table blocks:
// column anchors, logical rows with continuation fragments merged back in,
// and marker-delimited sections.
package table

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/tsawler/pagina/model"
)

// Config holds configuration for the table builder
type Config struct {
	// ColumnTolerance is the clustering tolerance for column anchors, in
	// layout units
	// Default: 15
	ColumnTolerance float64 `yaml:"column_tolerance_px"`

	// SampleRows is the number of leading lines sampled for column detection
	// Default: 5
	SampleRows int `yaml:"sample_rows"`

	// MinAnchors is the minimum column count for a block to stay a table;
	// below it the block is reclassified as text
	// Default: 2
	MinAnchors int `yaml:"min_anchors"`

	// MergeContinuations enables folding wrapped cell fragments into the
	// row above
	// Default: true
	MergeContinuations bool `yaml:"merge_continuations"`

	// SplitSections enables splitting rows at section marker cells
	// Default: true
	SplitSections bool `yaml:"split_sections"`

	// FieldKeywords are cell texts treated as field labels; a row led by
	// one is never folded into the row above
	FieldKeywords []string `yaml:"field_keywords"`

	// ShortRowChars is the maximum rune count for a single-cell fragment
	// to qualify as a continuation
	// Default: 24
	ShortRowChars int `yaml:"short_row_chars"`
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		ColumnTolerance:    15.0,
		SampleRows:         5,
		MinAnchors:         2,
		MergeContinuations: true,
		SplitSections:      true,
		FieldKeywords: []string{
			"fecha", "nombre", "código", "codigo", "descripción",
			"descripcion", "cantidad", "unidad", "valor", "total",
			"date", "name", "code", "description", "quantity", "item",
		},
		ShortRowChars: 24,
	}
}

// Section marker shapes, checked against individual trimmed cells.
var sectionMarkerRes = []*regexp.Regexp{
	regexp.MustCompile(`^[a-z]\.\d{1,2}$`),
	regexp.MustCompile(`^[a-z]\.$`),
	regexp.MustCompile(`^\d{1,2}\.$`),
}

// Builder builds table structure in place on table blocks. Building is a
// pure function of the block's lines, so repeated builds give identical
// results.
type Builder struct {
	config Config
}

// NewBuilder creates a table builder with default configuration
func NewBuilder() *Builder {
	return &Builder{config: DefaultConfig()}
}

// NewBuilderWithConfig creates a table builder with custom configuration
func NewBuilderWithConfig(config Config) *Builder {
	return &Builder{config: config}
}

// Build fills the block's table payload from its lines. When fewer than
// MinAnchors columns are found the block is reclassified as text with a
// "reclassified_from" flag; it never stays a table without columns.
// Non-table blocks are left untouched.
func (b *Builder) Build(block *model.ContentBlock) {
	if block == nil || block.Type != model.BlockTable || len(block.Lines) == 0 {
		return
	}

	anchors := b.DetectColumns(block.Lines)
	if len(anchors) < b.config.MinAnchors {
		b.reclassify(block)
		return
	}

	rows := b.buildRows(block.Lines, anchors)
	if b.config.MergeContinuations {
		rows = b.mergeContinuations(rows)
	}

	block.Table = &model.TableData{
		Anchors:  anchors,
		Rows:     rows,
		Sections: b.splitSections(rows),
	}
}

// DetectColumns clusters the x start positions of the leading sample lines
// into column anchors. Only positions recurring across at least two lines
// survive; one-off positions are wrapped fragments, not columns.
func (b *Builder) DetectColumns(lines []model.VisualLine) []float64 {
	sample := lines
	if b.config.SampleRows > 0 && len(sample) > b.config.SampleRows {
		sample = sample[:b.config.SampleRows]
	}

	var starts []float64
	for _, line := range sample {
		for _, r := range line.Runs {
			starts = append(starts, r.BBox.X)
		}
	}
	if len(starts) == 0 {
		return nil
	}
	sort.Float64s(starts)

	type cluster struct {
		sum   float64
		count int
	}
	var clusters []cluster
	for _, x := range starts {
		if len(clusters) > 0 {
			last := &clusters[len(clusters)-1]
			if x-last.sum/float64(last.count) <= b.config.ColumnTolerance {
				last.sum += x
				last.count++
				continue
			}
		}
		clusters = append(clusters, cluster{sum: x, count: 1})
	}

	minCount := 1
	if len(sample) >= 2 {
		minCount = 2
	}
	anchors := make([]float64, 0, len(clusters))
	for _, cl := range clusters {
		if cl.count >= minCount {
			anchors = append(anchors, cl.sum/float64(cl.count))
		}
	}
	return anchors
}

// buildRows maps each line to one raw row, assigning every run to its
// nearest anchor's cell.
func (b *Builder) buildRows(lines []model.VisualLine, anchors []float64) []model.TableRow {
	rows := make([]model.TableRow, 0, len(lines))
	for _, line := range lines {
		cells := make([]string, len(anchors))
		for _, r := range line.Runs {
			idx := nearestAnchor(anchors, r.BBox.X)
			if cells[idx] == "" {
				cells[idx] = r.Text
			} else {
				cells[idx] += " " + r.Text
			}
		}
		rows = append(rows, model.TableRow{Cells: cells, BBox: line.BBox})
	}
	return rows
}

// nearestAnchor returns the index of the anchor closest to x.
func nearestAnchor(anchors []float64, x float64) int {
	best, bestDist := 0, -1.0
	for i, a := range anchors {
		d := x - a
		if d < 0 {
			d = -d
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// mergeContinuations folds fragment rows into the row above them. A row is
// a fragment when it carries no section marker, is not a field label row,
// and either starts with "/" or is a single short lowercase or
// punctuation-only cell.
func (b *Builder) mergeContinuations(rows []model.TableRow) []model.TableRow {
	var out []model.TableRow
	for _, row := range rows {
		if len(out) > 0 && b.isContinuation(row) {
			prev := &out[len(out)-1]
			for i, cell := range row.Cells {
				if cell == "" {
					continue
				}
				if prev.Cells[i] == "" {
					prev.Cells[i] = cell
				} else {
					prev.Cells[i] += " " + cell
				}
			}
			prev.BBox = prev.BBox.Union(row.BBox)
			continue
		}
		out = append(out, row)
	}
	return out
}

// isContinuation reports whether a row is a wrapped fragment of the row
// above rather than a logical row of its own.
func (b *Builder) isContinuation(row model.TableRow) bool {
	if b.rowSectionMarker(row) != "" || b.isFieldLabelRow(row) {
		return false
	}

	text := strings.TrimSpace(row.Text())
	if text == "" {
		return false
	}
	if strings.HasPrefix(text, "/") {
		return true
	}

	if nonEmptyCells(row) == 1 && len([]rune(text)) <= b.config.ShortRowChars {
		first := []rune(text)[0]
		if unicode.IsLower(first) {
			return true
		}
		if punctuationOnly(text) {
			return true
		}
	}
	return false
}

// isFieldLabelRow reports whether the row's first non-empty cell is a
// configured field keyword, optionally colon-terminated.
func (b *Builder) isFieldLabelRow(row model.TableRow) bool {
	for _, cell := range row.Cells {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		cell = strings.ToLower(strings.TrimSuffix(cell, ":"))
		for _, kw := range b.config.FieldKeywords {
			if cell == kw {
				return true
			}
		}
		return false
	}
	return false
}

// rowSectionMarker returns the row's section marker cell text, or "".
func (b *Builder) rowSectionMarker(row model.TableRow) string {
	for _, cell := range row.Cells {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		for _, re := range sectionMarkerRes {
			if re.MatchString(cell) {
				return cell
			}
		}
	}
	return ""
}

// splitSections splits rows at section marker rows. Fewer than two markers
// means no split. Up to two unmarked leading rows are treated as a shared
// header and kept at the front of the first section; more than two form an
// unmarked section of their own. The concatenation of section rows always
// equals the input rows.
func (b *Builder) splitSections(rows []model.TableRow) []model.TableSection {
	single := []model.TableSection{makeSection("", rows)}
	if !b.config.SplitSections {
		return single
	}

	var markerIdx []int
	var markers []string
	for i, row := range rows {
		if m := b.rowSectionMarker(row); m != "" {
			markerIdx = append(markerIdx, i)
			markers = append(markers, m)
		}
	}
	if len(markerIdx) < 2 {
		return single
	}

	var sections []model.TableSection
	for k, idx := range markerIdx {
		end := len(rows)
		if k+1 < len(markerIdx) {
			end = markerIdx[k+1]
		}
		sections = append(sections, makeSection(markers[k], rows[idx:end]))
	}

	leading := rows[:markerIdx[0]]
	if len(leading) > 0 {
		if len(leading) <= 2 {
			first := append(append([]model.TableRow{}, leading...), sections[0].Rows...)
			sections[0] = makeSection(sections[0].Marker, first)
		} else {
			sections = append([]model.TableSection{makeSection("", leading)}, sections...)
		}
	}
	return sections
}

// makeSection builds a section with the union box of its rows.
func makeSection(marker string, rows []model.TableRow) model.TableSection {
	sec := model.TableSection{Marker: marker, Rows: rows}
	for i, row := range rows {
		if i == 0 {
			sec.BBox = row.BBox
		} else {
			sec.BBox = sec.BBox.Union(row.BBox)
		}
	}
	return sec
}

// reclassify demotes a column-less table block to text.
func (b *Builder) reclassify(block *model.ContentBlock) {
	parts := make([]string, len(block.Lines))
	for i, line := range block.Lines {
		parts[i] = line.Text
	}
	block.Type = model.BlockText
	block.Text = strings.Join(parts, "\n")
	block.Table = nil
	block.SetMeta("reclassified_from", "table")
}

// nonEmptyCells counts the row's non-empty cells.
func nonEmptyCells(row model.TableRow) int {
	n := 0
	for _, c := range row.Cells {
		if strings.TrimSpace(c) != "" {
			n++
		}
	}
	return n
}

// punctuationOnly reports whether text consists solely of punctuation,
// symbols and spaces.
func punctuationOnly(text string) bool {
	for _, r := range text {
		if unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r) {
			continue
		}
		return false
	}
	return true
}
