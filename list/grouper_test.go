package list

import (
	"testing"

	"github.com/tsawler/pagina/model"
)

func vline(text string, x, y float64) model.VisualLine {
	return model.VisualLine{
		Text:     text,
		FontSize: 10,
		BBox:     model.BBox{X: x, Y: y, Width: float64(len(text)) * 5, Height: 10},
	}
}

func listBlock(page int, lines ...model.VisualLine) model.ContentBlock {
	block := model.ContentBlock{Type: model.BlockList, Page: page, Lines: lines}
	for i, l := range lines {
		if i == 0 {
			block.BBox = l.BBox
		} else {
			block.BBox = block.BBox.Union(l.BBox)
		}
	}
	return block
}

func markerHeading(text string, pattern string, page int, x, y float64) model.ContentBlock {
	line := vline(text, x, y)
	return model.ContentBlock{
		Type:    model.BlockHeading,
		Page:    page,
		BBox:    line.BBox,
		Lines:   []model.VisualLine{line},
		Heading: &model.HeadingData{Text: text, Pattern: pattern},
	}
}

func TestGroupLetteredRun(t *testing.T) {
	pages := [][]model.ContentBlock{{
		listBlock(1,
			vline("a) Item one", 70, 700),
			vline("b) Item two", 70, 686),
			vline("c) Item three", 70, 672),
		),
	}}

	NewGrouper().Group(pages)
	if len(pages[0]) != 1 {
		t.Fatalf("expected 1 block, got %d", len(pages[0]))
	}
	b := pages[0][0]
	if b.Type != model.BlockList || b.List == nil {
		t.Fatalf("expected a list block with payload, got %v", b.Type)
	}
	if b.List.Family != FamilyLettered {
		t.Errorf("expected lettered family, got %q", b.List.Family)
	}
	if len(b.List.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(b.List.Items))
	}
	if b.List.Items[0].Marker != "a)" || b.List.Items[0].Text != "Item one" {
		t.Errorf("unexpected first item %+v", b.List.Items[0])
	}
	for _, item := range b.List.Items {
		if item.Indent != 0 {
			t.Errorf("flat list items should be at indent 0, got %d", item.Indent)
		}
	}
}

func TestGroupRetagsHeadingRuns(t *testing.T) {
	// Three consecutive same-indent bare-letter "headings" are a list.
	pages := [][]model.ContentBlock{{
		markerHeading("a. First", "letter", 1, 50, 700),
		markerHeading("b. Second", "letter", 1, 50, 686),
		markerHeading("c. Third", "letter", 1, 50, 672),
	}}

	NewGrouper().Group(pages)
	if len(pages[0]) != 1 {
		t.Fatalf("expected the run merged into 1 list block, got %d blocks", len(pages[0]))
	}
	b := pages[0][0]
	if b.Type != model.BlockList {
		t.Fatalf("expected list block, got %v", b.Type)
	}
	if b.GetMeta("retagged_from") != "heading" {
		t.Error("retagged block should carry a retagged_from flag")
	}
	if b.Heading != nil {
		t.Error("retagged block should drop its heading payload")
	}
	if len(b.List.Items) != 3 {
		t.Errorf("expected 3 items, got %d", len(b.List.Items))
	}
}

func TestGroupBareMarkerRunKeptAsText(t *testing.T) {
	// Bare markers with no trailing text are retagged off the heading
	// track but carry nothing to itemize; the blocks must survive as
	// text, never vanish from the stream.
	pages := [][]model.ContentBlock{{
		markerHeading("a.", "letter", 1, 50, 700),
		markerHeading("b.", "letter", 1, 50, 686),
	}}

	NewGrouper().Group(pages)
	if len(pages[0]) != 2 {
		t.Fatalf("expected both blocks kept, got %d", len(pages[0]))
	}
	for i, b := range pages[0] {
		if b.Type != model.BlockText {
			t.Errorf("block %d should be text, got %v", i, b.Type)
		}
		if b.Text == "" {
			t.Errorf("block %d should keep its line text", i)
		}
		if b.List != nil {
			t.Errorf("block %d should carry no list payload", i)
		}
		if len(b.Lines) != 1 {
			t.Errorf("block %d should keep its lines, got %d", i, len(b.Lines))
		}
	}
}

func TestGroupLoneMarkerHeadingKept(t *testing.T) {
	pages := [][]model.ContentBlock{{
		markerHeading("a. Alcance", "letter", 1, 50, 700),
	}}

	NewGrouper().Group(pages)
	if pages[0][0].Type != model.BlockHeading {
		t.Errorf("a lone marker heading should stay a heading, got %v", pages[0][0].Type)
	}
}

func TestGroupDottedPatternsNeverRetagged(t *testing.T) {
	pages := [][]model.ContentBlock{{
		markerHeading("d.1 Limites", "letter.number", 1, 50, 700),
		markerHeading("d.2 Operación", "letter.number", 1, 50, 686),
	}}

	NewGrouper().Group(pages)
	for i, b := range pages[0] {
		if b.Type != model.BlockHeading {
			t.Errorf("block %d: dotted sub-patterns are section numbering, got %v", i, b.Type)
		}
	}
}

func TestGroupRetagRequiresSameIndent(t *testing.T) {
	pages := [][]model.ContentBlock{{
		markerHeading("a. First", "letter", 1, 50, 700),
		markerHeading("b. Second", "letter", 1, 120, 686),
	}}

	NewGrouper().Group(pages)
	for i, b := range pages[0] {
		if b.Type != model.BlockHeading {
			t.Errorf("block %d: different indents should not form a run, got %v", i, b.Type)
		}
	}
}

func TestGroupSingletonDroppedToText(t *testing.T) {
	pages := [][]model.ContentBlock{{
		listBlock(1, vline("a) only item", 70, 700)),
	}}

	NewGrouper().Group(pages)
	b := pages[0][0]
	if b.Type != model.BlockText {
		t.Fatalf("one-item lettered group should be text, got %v", b.Type)
	}
	if b.Text != "a) only item" {
		t.Errorf("unexpected text %q", b.Text)
	}
	if b.GetMeta("retagged_from") != "list" {
		t.Error("dropped singleton should carry a retagged_from flag")
	}
	if b.List != nil {
		t.Error("dropped singleton should have no list payload")
	}
}

func TestGroupSingletonBulletKept(t *testing.T) {
	pages := [][]model.ContentBlock{{
		listBlock(1, vline("• single bullet", 70, 700)),
	}}

	NewGrouper().Group(pages)
	b := pages[0][0]
	if b.Type != model.BlockList {
		t.Fatalf("a single bullet is still a list, got %v", b.Type)
	}
	if b.List.Family != FamilyBullet {
		t.Errorf("expected bullet family, got %q", b.List.Family)
	}
}

func TestGroupPageBreakContinuation(t *testing.T) {
	pages := [][]model.ContentBlock{
		{listBlock(1,
			vline("d) item four", 70, 60),
			vline("e) item five", 70, 46),
		)},
		{listBlock(2,
			vline("f) item six", 70, 740),
		)},
	}

	NewGrouper().Group(pages)

	cont := pages[1][0]
	if cont.Type != model.BlockList {
		t.Fatalf("continuation should stay a list, got %v", cont.Type)
	}
	if cont.GetMeta("continues_previous") != "true" {
		t.Error("continuation should be flagged continues_previous")
	}
	if len(cont.List.Items) != 1 {
		t.Errorf("expected 1 item on the continuation page, got %d", len(cont.List.Items))
	}
}

func TestGroupSplitsOnIndentAndFamily(t *testing.T) {
	pages := [][]model.ContentBlock{{
		listBlock(1,
			vline("1. top item", 50, 700),
			vline("a) sub one", 86, 686),
			vline("b) sub two", 86, 672),
			vline("2. next top", 50, 658),
		),
	}}

	NewGrouper().Group(pages)
	blocks := pages[0]
	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks after splitting, got %d", len(blocks))
	}

	if blocks[0].Type != model.BlockText {
		t.Errorf("lone numbered item should drop to text, got %v", blocks[0].Type)
	}
	if blocks[1].Type != model.BlockList || blocks[1].List.Family != FamilyLettered {
		t.Errorf("middle block should be the lettered sub-list, got %v", blocks[1].Type)
	}
	if len(blocks[1].List.Items) != 2 {
		t.Errorf("expected 2 sub-items, got %d", len(blocks[1].List.Items))
	}
	if blocks[1].List.Items[0].Indent == 0 {
		t.Error("sub-items should be at a deeper indent level")
	}
	if blocks[2].Type != model.BlockText {
		t.Errorf("trailing lone numbered item should drop to text, got %v", blocks[2].Type)
	}
}

func TestGroupWrappedItemText(t *testing.T) {
	pages := [][]model.ContentBlock{{
		listBlock(1,
			vline("a) start of the first item", 70, 700),
			vline("which wraps onto this line", 82, 686),
			vline("b) second item", 70, 672),
		),
	}}

	NewGrouper().Group(pages)
	b := pages[0][0]
	if b.Type != model.BlockList {
		t.Fatalf("expected list block, got %v", b.Type)
	}
	if len(b.List.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(b.List.Items))
	}
	want := "start of the first item which wraps onto this line"
	if b.List.Items[0].Text != want {
		t.Errorf("wrapped text = %q, want %q", b.List.Items[0].Text, want)
	}
}
