package list

import (
	"strings"

	"github.com/tsawler/pagina/model"
)

// Config holds configuration for list grouping
type Config struct {
	// IndentTolerance is the maximum x difference for two lines to be at
	// the same indent level
	// Default: 12 points
	IndentTolerance float64 `yaml:"indent_tolerance"`

	// IndentStep is the x delta corresponding to one nesting level
	// Default: 18 points
	IndentStep float64 `yaml:"indent_step"`

	// MaxGapLineHeights is the maximum vertical gap between consecutive
	// items of one group, in multiples of the line height
	// Default: 2.5
	MaxGapLineHeights float64 `yaml:"max_gap_line_heights"`
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		IndentTolerance:   12.0,
		IndentStep:        18.0,
		MaxGapLineHeights: 2.5,
	}
}

// Grouper groups classified list lines into list groups and resolves the
// heading-vs-list ambiguity. It consumes and rewrites the classified block
// stream of a whole document, page by page in order.
type Grouper struct {
	config Config
}

// NewGrouper creates a grouper with default configuration
func NewGrouper() *Grouper {
	return &Grouper{config: DefaultConfig()}
}

// NewGrouperWithConfig creates a grouper with custom configuration
func NewGrouperWithConfig(config Config) *Grouper {
	return &Grouper{config: config}
}

// Group rewrites the pages in place: heading blocks that form runs of
// structurally identical consecutive marker lines become list blocks, list
// blocks receive their ListGroup payloads split at family or indent
// changes, and one-item groups are dropped back to text unless the marker
// is a bullet glyph or the group continues across a page break.
func (g *Grouper) Group(pages [][]model.ContentBlock) {
	g.retagHeadingRuns(pages)

	var prevTail *tailInfo
	for p := range pages {
		pages[p], prevTail = g.groupPage(pages[p], prevTail)
	}
}

// tailInfo describes the last list group emitted on the previous page,
// used for page-break continuation checks.
type tailInfo struct {
	family string
	indent int
	page   int
}

// blockRef addresses one block of the document stream.
type blockRef struct {
	page, idx int
}

// retagHeadingRuns implements the second classification pass: a line
// tagged as a heading by the single-line numbering grammar is re-tagged as
// list content when it participates in a run of two or more structurally
// identical consecutive marker lines at the same indent.
func (g *Grouper) retagHeadingRuns(pages [][]model.ContentBlock) {
	var flat []blockRef
	for p := range pages {
		for i := range pages[p] {
			flat = append(flat, blockRef{p, i})
		}
	}

	at := func(r blockRef) *model.ContentBlock {
		return &pages[r.page][r.idx]
	}

	i := 0
	for i < len(flat) {
		if !g.retagEligible(at(flat[i])) {
			i++
			continue
		}

		j := i + 1
		for j < len(flat) &&
			g.retagEligible(at(flat[j])) &&
			g.sameStructure(at(flat[j-1]), at(flat[j])) {
			j++
		}

		if j-i >= 2 {
			for k := i; k < j; k++ {
				block := at(flat[k])
				block.Type = model.BlockList
				block.Heading = nil
				block.SetMeta("retagged_from", "heading")
			}
		}
		i = j
	}
}

// retagEligible reports whether a block is a single-line heading carrying
// a bare structural marker. Dotted sub-patterns ("d.1", "7.2") are real
// section numbering and never re-tagged.
func (g *Grouper) retagEligible(block *model.ContentBlock) bool {
	if block.Type != model.BlockHeading || block.Heading == nil {
		return false
	}
	if len(block.Lines) != 1 {
		return false
	}
	return block.Heading.Pattern == "letter" || block.Heading.Pattern == "number"
}

// sameStructure reports whether two consecutive heading blocks are
// structurally identical: same pattern, same indent, vertically contiguous
// or separated only by a page break.
func (g *Grouper) sameStructure(a, b *model.ContentBlock) bool {
	if a.Heading.Pattern != b.Heading.Pattern {
		return false
	}
	if abs(a.BBox.X-b.BBox.X) > g.config.IndentTolerance {
		return false
	}

	pageDist := b.Page - a.Page
	if pageDist < 0 || pageDist > 1 {
		return false
	}
	if pageDist == 1 {
		return true // allowed page break
	}

	lineHeight := a.Lines[0].BBox.Height
	if lineHeight <= 0 {
		lineHeight = a.Lines[0].FontSize
	}
	return a.BBox.VerticalGap(b.BBox) <= lineHeight*g.config.MaxGapLineHeights
}

// groupPage rewrites one page's blocks, attaching ListGroup payloads and
// applying the one-item rule. It returns the rewritten page and the tail
// info of the page's last list group.
func (g *Grouper) groupPage(blocks []model.ContentBlock, prevTail *tailInfo) ([]model.ContentBlock, *tailInfo) {
	out := make([]model.ContentBlock, 0, len(blocks))
	firstListSeen := false

	for _, block := range blocks {
		if block.Type != model.BlockList {
			out = append(out, block)
			continue
		}

		segments := g.segment(block)
		if len(segments) == 0 {
			// No parseable markers (e.g. bare "a." lines retagged from
			// headings): the block stays in the stream as text.
			var parts []string
			for _, line := range block.Lines {
				parts = append(parts, line.Text)
			}
			block.Type = model.BlockText
			block.Text = strings.TrimSpace(strings.Join(parts, "\n"))
			block.List = nil
			out = append(out, block)
			continue
		}
		for _, seg := range segments {
			// Merge into the preceding list block when family and
			// indent match and the gap is small.
			if len(out) > 0 {
				prev := &out[len(out)-1]
				if prev.Type == model.BlockList && prev.List != nil &&
					prev.List.Family == seg.family &&
					prev.List.Items[0].Indent == seg.level &&
					prev.BBox.VerticalGap(seg.bbox) <= g.maxGap(seg.lines) {
					prev.List.Items = append(prev.List.Items, seg.items...)
					prev.List.BBox = prev.List.BBox.Union(seg.bbox)
					prev.BBox = prev.BBox.Union(seg.bbox)
					prev.Lines = append(prev.Lines, seg.lines...)
					continue
				}
			}

			nb := block
			nb.Lines = seg.lines
			nb.BBox = seg.bbox
			nb.List = &model.ListGroup{
				Items:  seg.items,
				Family: seg.family,
				BBox:   seg.bbox,
			}

			if !firstListSeen && prevTail != nil &&
				prevTail.family == seg.family &&
				prevTail.indent == seg.level &&
				nb.Page-prevTail.page == 1 {
				nb.SetMeta("continues_previous", "true")
			}
			firstListSeen = true

			out = append(out, nb)
		}
	}

	// One-item groups are dropped unless bulleted or a page-break
	// continuation of the previous page's group.
	for i := range out {
		block := &out[i]
		if block.Type != model.BlockList || block.List == nil {
			continue
		}
		if len(block.List.Items) > 1 {
			continue
		}
		if block.List.Family == FamilyBullet {
			continue
		}
		if block.GetMeta("continues_previous") == "true" {
			continue
		}
		g.dropToText(block)
	}

	var tail *tailInfo
	for i := len(out) - 1; i >= 0; i-- {
		if out[i].Type == model.BlockList && out[i].List != nil {
			tail = &tailInfo{
				family: out[i].List.Family,
				indent: out[i].List.Items[len(out[i].List.Items)-1].Indent,
				page:   out[i].Page,
			}
			break
		}
	}

	return out, tail
}

// segment holds a run of items sharing one family and indent level.
type listSegment struct {
	family string
	level  int
	items  []model.ListItem
	lines  []model.VisualLine
	bbox   model.BBox
}

// segment parses a list block's lines into items and splits them into
// maximal runs of constant (family, indent level). Lines without a marker
// continue the previous item (wrapped item text).
func (g *Grouper) segment(block model.ContentBlock) []listSegment {
	type rawItem struct {
		item   model.ListItem
		family string
		indent float64
		lines  []model.VisualLine
	}

	var raw []rawItem
	for _, line := range block.Lines {
		marker, ok := Match(line.Text)
		if !ok {
			// Wrapped continuation of the previous item.
			if len(raw) > 0 {
				last := &raw[len(raw)-1]
				last.item.Text = strings.TrimSpace(last.item.Text + " " + strings.TrimSpace(line.Text))
				last.item.BBox = last.item.BBox.Union(line.BBox)
				last.lines = append(last.lines, line)
			}
			continue
		}
		raw = append(raw, rawItem{
			item: model.ListItem{
				Marker: marker.Token,
				Text:   marker.Rest,
				Page:   block.Page,
				BBox:   line.BBox,
			},
			family: marker.Family,
			indent: line.Indent(),
			lines:  []model.VisualLine{line},
		})
	}

	if len(raw) == 0 {
		return nil
	}

	base := raw[0].indent
	for _, r := range raw[1:] {
		if r.indent < base {
			base = r.indent
		}
	}
	for i := range raw {
		raw[i].item.Indent = g.indentLevel(raw[i].indent, base)
	}

	var segments []listSegment
	for _, r := range raw {
		n := len(segments)
		if n > 0 && segments[n-1].family == r.family && segments[n-1].level == r.item.Indent {
			seg := &segments[n-1]
			seg.items = append(seg.items, r.item)
			seg.lines = append(seg.lines, r.lines...)
			seg.bbox = seg.bbox.Union(r.item.BBox)
			continue
		}
		segments = append(segments, listSegment{
			family: r.family,
			level:  r.item.Indent,
			items:  []model.ListItem{r.item},
			lines:  r.lines,
			bbox:   r.item.BBox,
		})
	}

	return segments
}

// indentLevel maps an x position to a nesting level relative to base.
func (g *Grouper) indentLevel(x, base float64) int {
	if g.config.IndentStep <= 0 {
		return 0
	}
	delta := x - base
	if delta <= g.config.IndentTolerance {
		return 0
	}
	return int(delta/g.config.IndentStep + 0.5)
}

// maxGap returns the maximum merge gap for the given lines.
func (g *Grouper) maxGap(lines []model.VisualLine) float64 {
	if len(lines) == 0 {
		return 0
	}
	h := lines[0].BBox.Height
	if h <= 0 {
		h = lines[0].FontSize
	}
	return h * g.config.MaxGapLineHeights
}

// dropToText rewrites a rejected one-item group as a text block.
func (g *Grouper) dropToText(block *model.ContentBlock) {
	item := block.List.Items[0]
	text := item.Marker + " " + item.Text
	block.Type = model.BlockText
	block.Text = strings.TrimSpace(text)
	block.List = nil
	block.SetMeta("retagged_from", "list")
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
