package model

import "testing"

func TestBBoxEdges(t *testing.T) {
	b := NewBBox(10, 20, 100, 50)

	if b.Left() != 10 {
		t.Errorf("Left() = %v, want 10", b.Left())
	}
	if b.Right() != 110 {
		t.Errorf("Right() = %v, want 110", b.Right())
	}
	if b.Bottom() != 20 {
		t.Errorf("Bottom() = %v, want 20", b.Bottom())
	}
	if b.Top() != 70 {
		t.Errorf("Top() = %v, want 70", b.Top())
	}
}

func TestBBoxUnion(t *testing.T) {
	a := NewBBox(0, 0, 10, 10)
	b := NewBBox(20, 20, 10, 10)

	u := a.Union(b)
	if u.X != 0 || u.Y != 0 || u.Width != 30 || u.Height != 30 {
		t.Errorf("Union = %+v, want {0 0 30 30}", u)
	}
}

func TestBBoxIntersects(t *testing.T) {
	tests := []struct {
		name string
		a, b BBox
		want bool
	}{
		{"overlapping", NewBBox(0, 0, 10, 10), NewBBox(5, 5, 10, 10), true},
		{"touching", NewBBox(0, 0, 10, 10), NewBBox(10, 0, 10, 10), true},
		{"disjoint x", NewBBox(0, 0, 10, 10), NewBBox(20, 0, 10, 10), false},
		{"disjoint y", NewBBox(0, 0, 10, 10), NewBBox(0, 20, 10, 10), false},
	}

	for _, tt := range tests {
		if got := tt.a.Intersects(tt.b); got != tt.want {
			t.Errorf("%s: Intersects = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestBBoxVerticalGap(t *testing.T) {
	upper := NewBBox(0, 100, 50, 20) // spans Y 100-120
	lower := NewBBox(0, 40, 50, 20)  // spans Y 40-60

	if gap := upper.VerticalGap(lower); gap != 40 {
		t.Errorf("VerticalGap = %v, want 40", gap)
	}
	if gap := lower.VerticalGap(upper); gap != 40 {
		t.Errorf("VerticalGap (reversed) = %v, want 40", gap)
	}

	overlapping := NewBBox(0, 50, 50, 20) // spans Y 50-70, overlaps lower
	if gap := lower.VerticalGap(overlapping); gap != 0 {
		t.Errorf("VerticalGap (overlapping) = %v, want 0", gap)
	}
}

func TestBlockTypeString(t *testing.T) {
	tests := []struct {
		bt   BlockType
		want string
	}{
		{BlockText, "text"},
		{BlockTable, "table"},
		{BlockHeading, "heading"},
		{BlockList, "list"},
		{BlockFormula, "formula"},
		{BlockImage, "image"},
		{BlockMetadata, "metadata"},
		{BlockType(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.bt.String(); got != tt.want {
			t.Errorf("BlockType(%d).String() = %q, want %q", tt.bt, got, tt.want)
		}
	}
}

func TestFigurePositionString(t *testing.T) {
	tests := []struct {
		p    FigurePosition
		want string
	}{
		{PositionAbove, "above"},
		{PositionBelow, "below"},
		{PositionCaptionOnly, "caption_only"},
		{PositionImageOnly, "image_only"},
	}

	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("FigurePosition(%d).String() = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestContentBlockMeta(t *testing.T) {
	var b ContentBlock

	if got := b.GetMeta("extraction_failed"); got != "" {
		t.Errorf("GetMeta on empty block = %q, want \"\"", got)
	}

	b.SetMeta("extraction_failed", "true")
	if got := b.GetMeta("extraction_failed"); got != "true" {
		t.Errorf("GetMeta = %q, want \"true\"", got)
	}
}

func TestTableRowText(t *testing.T) {
	row := TableRow{Cells: []string{"a.", "", "Fecha", "25/02/2025"}}
	if got := row.Text(); got != "a. Fecha 25/02/2025" {
		t.Errorf("Text() = %q", got)
	}
}

func TestSummaryAdd(t *testing.T) {
	var s Summary
	s.Add(BlockText)
	s.Add(BlockText)
	s.Add(BlockTable)

	if s.Blocks != 3 {
		t.Errorf("Blocks = %d, want 3", s.Blocks)
	}
	if s.ByType[BlockText] != 2 {
		t.Errorf("ByType[text] = %d, want 2", s.ByType[BlockText])
	}
	if s.ByType[BlockTable] != 1 {
		t.Errorf("ByType[table] = %d, want 1", s.ByType[BlockTable])
	}
}

func TestDocumentAllRuns(t *testing.T) {
	doc := Document{
		Pages: []Page{
			{Number: 1, Runs: []PositionedRun{{Text: "a", Page: 1}, {Text: "b", Page: 1}}},
			{Number: 2, Runs: []PositionedRun{{Text: "c", Page: 2}}},
		},
	}

	runs := doc.AllRuns()
	if len(runs) != 3 {
		t.Fatalf("AllRuns returned %d runs, want 3", len(runs))
	}
	if runs[2].Text != "c" || runs[2].Page != 2 {
		t.Errorf("runs[2] = %+v", runs[2])
	}
}
