package table

import (
	"reflect"
	"testing"

	"github.com/tsawler/pagina/model"
)

// cell is a positioned cell text for building test lines.
type cell struct {
	text string
	x    float64
}

func line(y float64, cells ...cell) model.VisualLine {
	l := model.VisualLine{}
	var parts []string
	for i, c := range cells {
		r := model.PositionedRun{
			Text:     c.text,
			FontSize: 10,
			BBox:     model.BBox{X: c.x, Y: y, Width: float64(len(c.text)) * 5, Height: 10},
			Page:     1,
		}
		l.Runs = append(l.Runs, r)
		parts = append(parts, c.text)
		if i == 0 {
			l.BBox = r.BBox
		} else {
			l.BBox = l.BBox.Union(r.BBox)
		}
	}
	for i, p := range parts {
		if i > 0 {
			l.Text += " "
		}
		l.Text += p
	}
	l.FontSize = 10
	return l
}

func tableBlock(lines ...model.VisualLine) *model.ContentBlock {
	block := &model.ContentBlock{
		Type:  model.BlockTable,
		Page:  1,
		Lines: lines,
		Table: &model.TableData{},
	}
	for i, l := range lines {
		if i == 0 {
			block.BBox = l.BBox
		} else {
			block.BBox = block.BBox.Union(l.BBox)
		}
	}
	return block
}

func TestDetectColumns(t *testing.T) {
	lines := []model.VisualLine{
		line(700, cell{"Fecha", 50}, cell{"25/02/2025", 200}),
		line(686, cell{"Nombre", 52}, cell{"Luis", 198}),
		line(672, cell{"Código", 50}, cell{"LT-002", 200}),
	}

	anchors := NewBuilder().DetectColumns(lines)
	if len(anchors) != 2 {
		t.Fatalf("expected 2 anchors, got %d (%v)", len(anchors), anchors)
	}
	if anchors[0] < 49 || anchors[0] > 53 {
		t.Errorf("first anchor should be near 50, got %v", anchors[0])
	}
	if anchors[1] < 197 || anchors[1] > 201 {
		t.Errorf("second anchor should be near 200, got %v", anchors[1])
	}
}

func TestDetectColumnsIgnoresOneOffPositions(t *testing.T) {
	lines := []model.VisualLine{
		line(700, cell{"Fecha", 50}, cell{"25/02/2025", 200}),
		line(686, cell{"stray", 120}),
		line(672, cell{"Nombre", 50}, cell{"Luis", 200}),
	}

	anchors := NewBuilder().DetectColumns(lines)
	if len(anchors) != 2 {
		t.Fatalf("expected the one-off position to be dropped, got %d anchors (%v)", len(anchors), anchors)
	}
}

func TestBuildRows(t *testing.T) {
	block := tableBlock(
		line(700, cell{"Fecha", 50}, cell{"25/02/2025", 200}),
		line(686, cell{"Nombre", 50}, cell{"Luis", 200}),
	)

	NewBuilder().Build(block)
	if block.Table == nil {
		t.Fatal("table payload missing after build")
	}
	rows := block.Table.Rows
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	want := [][]string{{"Fecha", "25/02/2025"}, {"Nombre", "Luis"}}
	for i, w := range want {
		if !reflect.DeepEqual(rows[i].Cells, w) {
			t.Errorf("row %d = %v, want %v", i, rows[i].Cells, w)
		}
	}
}

func TestBuildContinuationMergeAndSectionSplit(t *testing.T) {
	block := tableBlock(
		line(700, cell{"a.", 50}, cell{"Fecha", 150}, cell{"25/02/2025", 250}),
		line(686, cell{"/LT002", 250}),
		line(672, cell{"b.", 50}, cell{"Nombre", 150}, cell{"Línea A", 250}),
	)

	NewBuilder().Build(block)
	data := block.Table
	if data == nil {
		t.Fatal("table payload missing after build")
	}

	if len(data.Rows) != 2 {
		t.Fatalf("expected the fragment merged into 2 rows, got %d", len(data.Rows))
	}
	if data.Rows[0].Cells[2] != "25/02/2025 /LT002" {
		t.Errorf("fragment should be appended to the cell above, got %q", data.Rows[0].Cells[2])
	}

	if len(data.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(data.Sections))
	}
	if data.Sections[0].Marker != "a." || data.Sections[1].Marker != "b." {
		t.Errorf("unexpected section markers %q, %q", data.Sections[0].Marker, data.Sections[1].Marker)
	}
}

func TestBuildFieldLabelRowNotMerged(t *testing.T) {
	// A short lowercase keyword row is a field label, never a fragment.
	block := tableBlock(
		line(700, cell{"a.", 50}, cell{"Fecha", 150}, cell{"25/02/2025", 250}),
		line(686, cell{"total", 150}),
		line(672, cell{"b.", 50}, cell{"Nombre", 150}, cell{"Luis", 250}),
	)

	NewBuilder().Build(block)
	if len(block.Table.Rows) != 3 {
		t.Errorf("field label row should stay separate, got %d rows", len(block.Table.Rows))
	}
}

func TestBuildShortFragmentMerged(t *testing.T) {
	block := tableBlock(
		line(700, cell{"1.", 50}, cell{"Descripción", 150}, cell{"bomba centrífuga", 250}),
		line(686, cell{"de repuesto", 250}),
		line(672, cell{"2.", 50}, cell{"Cantidad", 150}, cell{"4", 250}),
	)

	NewBuilder().Build(block)
	rows := block.Table.Rows
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows after merge, got %d", len(rows))
	}
	if rows[0].Cells[2] != "bomba centrífuga de repuesto" {
		t.Errorf("unexpected merged cell %q", rows[0].Cells[2])
	}
}

func TestBuildSingleMarkerNoSplit(t *testing.T) {
	block := tableBlock(
		line(700, cell{"a.", 50}, cell{"Fecha", 200}),
		line(686, cell{"Valor", 50}, cell{"12", 200}),
	)

	NewBuilder().Build(block)
	sections := block.Table.Sections
	if len(sections) != 1 {
		t.Fatalf("one marker should not split, got %d sections", len(sections))
	}
	if sections[0].Marker != "" {
		t.Errorf("unsplit table should have an unmarked section, got %q", sections[0].Marker)
	}
	if len(sections[0].Rows) != 2 {
		t.Errorf("single section should carry all rows, got %d", len(sections[0].Rows))
	}
}

func TestBuildLeadingHeaderRowsJoinFirstSection(t *testing.T) {
	block := tableBlock(
		line(714, cell{"Campo", 50}, cell{"Valor", 200}),
		line(700, cell{"a.", 50}, cell{"Fecha", 200}),
		line(686, cell{"b.", 50}, cell{"Nombre", 200}),
	)

	NewBuilder().Build(block)
	sections := block.Table.Sections
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if len(sections[0].Rows) != 2 {
		t.Errorf("header row should join the first section, got %d rows", len(sections[0].Rows))
	}
	if sections[0].Rows[0].Cells[0] != "Campo" {
		t.Errorf("header row should stay first, got %q", sections[0].Rows[0].Cells[0])
	}
}

func TestBuildSectionRowsConserveRows(t *testing.T) {
	block := tableBlock(
		line(714, cell{"Campo", 50}, cell{"Valor", 200}),
		line(700, cell{"a.", 50}, cell{"Fecha", 200}),
		line(686, cell{"d.2", 50}, cell{"Detalle", 200}),
		line(672, cell{"b.", 50}, cell{"Nombre", 200}),
	)

	NewBuilder().Build(block)
	data := block.Table

	var concat []model.TableRow
	for _, sec := range data.Sections {
		concat = append(concat, sec.Rows...)
	}
	if !reflect.DeepEqual(concat, data.Rows) {
		t.Errorf("section rows must concatenate to the row list\nsections: %v\nrows: %v", concat, data.Rows)
	}
}

func TestBuildIdempotent(t *testing.T) {
	block := tableBlock(
		line(700, cell{"a.", 50}, cell{"Fecha", 150}, cell{"25/02/2025", 250}),
		line(686, cell{"/LT002", 250}),
		line(672, cell{"b.", 50}, cell{"Nombre", 150}, cell{"Luis", 250}),
	)

	b := NewBuilder()
	b.Build(block)
	first := *block.Table

	b.Build(block)
	if !reflect.DeepEqual(first, *block.Table) {
		t.Error("rebuilding the same block should give identical structure")
	}
}

func TestBuildReclassifiesSingleColumn(t *testing.T) {
	block := tableBlock(
		line(700, cell{"just one column", 50}),
		line(686, cell{"of plain text", 50}),
	)

	NewBuilder().Build(block)
	if block.Type != model.BlockText {
		t.Fatalf("single-anchor block should be reclassified as text, got %v", block.Type)
	}
	if block.Table != nil {
		t.Error("reclassified block should drop its table payload")
	}
	if block.GetMeta("reclassified_from") != "table" {
		t.Error("reclassified block should carry a reclassified_from flag")
	}
	if block.Text == "" {
		t.Error("reclassified block should keep its text")
	}
}

func TestBuildIgnoresNonTableBlocks(t *testing.T) {
	block := &model.ContentBlock{Type: model.BlockText, Text: "hello"}
	NewBuilder().Build(block)
	if block.Type != model.BlockText || block.Table != nil {
		t.Error("non-table blocks must be left untouched")
	}
}
