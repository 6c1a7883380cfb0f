package classify

import (
	"sort"
	"strings"

	"github.com/tsawler/pagina/heading"
	"github.com/tsawler/pagina/list"
	"github.com/tsawler/pagina/model"
	"github.com/tsawler/pagina/typography"
)

// lineTag is the provisional per-line classification.
type lineTag int

const (
	tagText lineTag = iota
	tagMetadata
	tagTable
	tagHeading
	tagList
	tagFormula
)

// lineInfo carries a line's provisional tag and scoring details.
type lineInfo struct {
	tag        lineTag
	confidence float64
	pattern    heading.Pattern
	prefix     string
}

// Classifier assigns content blocks to a single page. It is stateless
// between pages and safe for concurrent use from multiple goroutines.
type Classifier struct {
	config Config
}

// NewClassifier creates a classifier with default configuration
func NewClassifier() *Classifier {
	return &Classifier{config: DefaultConfig()}
}

// NewClassifierWithConfig creates a classifier with custom configuration
func NewClassifierWithConfig(config Config) *Classifier {
	return &Classifier{config: config}
}

// ClassifyPage groups the page's runs into lines and blocks and assigns
// each block one of the seven kinds. Rules are evaluated in precedence
// order per line; the first match wins. The returned blocks are in reading
// order (top to bottom).
func (c *Classifier) ClassifyPage(page model.Page, baseline typography.Baseline) []model.ContentBlock {
	lines := GroupLines(page.Runs, c.config)

	infos := make([]lineInfo, len(lines))
	for i := range infos {
		infos[i] = lineInfo{tag: tagText, confidence: 1.0}
	}

	c.tagMetadata(lines, infos, page)
	c.tagTables(lines, infos)
	c.tagHeadings(lines, infos, page, baseline)
	c.tagLists(lines, infos)
	c.tagFormulas(lines, infos)

	blocks := c.buildBlocks(lines, infos, page, baseline)
	blocks = append(blocks, c.buildImageBlocks(page)...)

	sortBlocksByPosition(blocks)
	return blocks
}

// tagMetadata tags boilerplate lines inside the margin bands.
func (c *Classifier) tagMetadata(lines []model.VisualLine, infos []lineInfo, page model.Page) {
	for i, line := range lines {
		if !inMarginBand(line, page.Height, c.config.MarginBand) {
			continue
		}
		if conf, ok := matchMetadata(line.Text); ok {
			infos[i] = lineInfo{tag: tagMetadata, confidence: conf}
		}
	}
}

// tagTables finds maximal runs of consecutive lines sharing recurring
// horizontal anchor positions and tags them as table content.
func (c *Classifier) tagTables(lines []model.VisualLine, infos []lineInfo) {
	i := 0
	for i < len(lines) {
		if infos[i].tag != tagText || !c.tabular(lines[i]) {
			i++
			continue
		}

		anchors := runStarts(lines[i])
		scores := []float64{1.0}
		j := i + 1
		for j < len(lines) {
			if infos[j].tag != tagText || !c.tabular(lines[j]) {
				break
			}
			score, matched, extended := c.anchorMatch(lines[j], anchors)
			if matched < c.config.MinColumnAnchors || score < c.config.ColumnConsistency {
				break
			}
			anchors = extended
			scores = append(scores, score)
			j++
		}

		if j-i >= c.config.MinTableLines && len(anchors) >= c.config.MinColumnAnchors {
			conf := clamp01(mean(scores))
			for k := i; k < j; k++ {
				infos[k] = lineInfo{tag: tagTable, confidence: conf}
			}
			i = j
			continue
		}
		i++
	}
}

// tabular reports whether a line can participate in a table candidate:
// multiple runs, or explicit tab-aligned text.
func (c *Classifier) tabular(line model.VisualLine) bool {
	return len(line.Runs) >= 2 || strings.Contains(line.Text, "\t")
}

// runStarts returns the x start positions of a line's runs.
func runStarts(line model.VisualLine) []float64 {
	starts := make([]float64, 0, len(line.Runs))
	for _, r := range line.Runs {
		starts = append(starts, r.BBox.X)
	}
	return starts
}

// anchorMatch scores how well a line's run positions land on the
// accumulated anchors. It returns the matched fraction, the matched count,
// and the anchor set extended with the line's unmatched positions, so that
// a column appearing partway into the candidate still anchors later lines.
func (c *Classifier) anchorMatch(line model.VisualLine, anchors []float64) (float64, int, []float64) {
	if len(line.Runs) == 0 {
		return 0, 0, anchors
	}

	matched := 0
	for _, x := range runStarts(line) {
		hit := false
		for _, a := range anchors {
			if abs(x-a) <= c.config.ColumnTolerance {
				hit = true
				break
			}
		}
		if hit {
			matched++
		} else {
			anchors = append(anchors, x)
		}
	}
	return float64(matched) / float64(len(line.Runs)), matched, anchors
}

// tagHeadings tags lines matching the numbering grammar or, with a usable
// baseline, short lines set notably larger than body text. Lines already
// claimed by the table pass are never heading candidates.
func (c *Classifier) tagHeadings(lines []model.VisualLine, infos []lineInfo, page model.Page, baseline typography.Baseline) {
	for i, line := range lines {
		if infos[i].tag != tagText {
			continue
		}

		if page.Number == 1 {
			if _, ok := heading.MatchQuotedTitle(line.Text); ok {
				infos[i] = lineInfo{tag: tagHeading, confidence: 0.9, pattern: heading.PatternTitle}
				continue
			}
		}

		if pattern, prefix, ok := heading.MatchNumbering(line.Text); ok {
			infos[i] = lineInfo{tag: tagHeading, confidence: 0.85, pattern: pattern, prefix: prefix}
			continue
		}

		if baseline.IsLargerThanBody(line.FontSize, c.config.HeadingSizeRatio) &&
			len(strings.Fields(line.Text)) <= c.config.MaxHeadingWords {
			conf := 0.5
			if line.Bold {
				conf += 0.15
			}
			infos[i] = lineInfo{tag: tagHeading, confidence: conf, pattern: heading.PatternNone}
		}
	}
}

// tagLists tags lines beginning with a recognized list marker.
func (c *Classifier) tagLists(lines []model.VisualLine, infos []lineInfo) {
	for i, line := range lines {
		if infos[i].tag != tagText {
			continue
		}
		if _, ok := list.Match(line.Text); ok {
			infos[i] = lineInfo{tag: tagList, confidence: 0.85}
		}
	}
}

// tagFormulas tags lines with a high density of mathematical glyphs.
func (c *Classifier) tagFormulas(lines []model.VisualLine, infos []lineInfo) {
	for i, line := range lines {
		if infos[i].tag != tagText {
			continue
		}
		if ratio, count := formulaGlyphDensity(line.Text); count >= c.config.MinFormulaGlyphs &&
			ratio >= c.config.FormulaGlyphRatio {
			infos[i] = lineInfo{tag: tagFormula, confidence: clamp01(ratio * 2)}
		}
	}
}

// buildBlocks groups consecutive same-tag lines into blocks. Text, table,
// list and formula lines merge while the vertical gap stays under the
// threshold; heading and metadata blocks are always single lines.
func (c *Classifier) buildBlocks(lines []model.VisualLine, infos []lineInfo, page model.Page, baseline typography.Baseline) []model.ContentBlock {
	gapThreshold := c.gapThreshold(lines, baseline)

	var blocks []model.ContentBlock
	i := 0
	for i < len(lines) {
		tag := infos[i].tag
		j := i + 1
		if tag != tagHeading && tag != tagMetadata {
			for j < len(lines) && infos[j].tag == tag &&
				lines[j-1].BBox.VerticalGap(lines[j].BBox) <= gapThreshold {
				j++
			}
		}
		blocks = append(blocks, c.makeBlock(lines[i:j], infos[i:j], tag, page))
		i = j
	}
	return blocks
}

// gapThreshold returns the configured line gap threshold, deriving it from
// the baseline's body line height (or the page's own lines when the
// baseline is ambiguous) if unset.
func (c *Classifier) gapThreshold(lines []model.VisualLine, baseline typography.Baseline) float64 {
	if c.config.LineGapThreshold > 0 {
		return c.config.LineGapThreshold
	}
	if h := baseline.BodyLineHeight(); h > 0 {
		return h * c.config.LineGapFactor
	}

	if len(lines) == 0 {
		return 12.0
	}
	total := 0.0
	for _, line := range lines {
		total += line.BBox.Height
	}
	return total / float64(len(lines)) * c.config.LineGapFactor
}

// makeBlock assembles a content block from a group of same-tag lines.
func (c *Classifier) makeBlock(lines []model.VisualLine, infos []lineInfo, tag lineTag, page model.Page) model.ContentBlock {
	block := model.ContentBlock{
		Page:  page.Number,
		BBox:  lines[0].BBox,
		Lines: append([]model.VisualLine(nil), lines...),
	}
	confs := make([]float64, len(infos))
	for i, info := range infos {
		confs[i] = info.confidence
		block.BBox = block.BBox.Union(lines[i].BBox)
	}
	block.Confidence = clamp01(mean(confs))

	switch tag {
	case tagMetadata:
		block.Type = model.BlockMetadata
		block.Text = joinLines(lines)
	case tagTable:
		block.Type = model.BlockTable
		block.Table = &model.TableData{}
	case tagHeading:
		block.Type = model.BlockHeading
		text := strings.TrimSpace(lines[0].Text)
		if infos[0].pattern == heading.PatternTitle {
			if title, ok := heading.MatchQuotedTitle(text); ok {
				text = title
			}
		}
		block.Heading = &model.HeadingData{
			Text:    text,
			Level:   infos[0].pattern.Level(),
			Prefix:  infos[0].prefix,
			Pattern: infos[0].pattern.String(),
		}
	case tagList:
		block.Type = model.BlockList
	case tagFormula:
		block.Type = model.BlockFormula
		block.Text = joinLines(lines)
	default:
		block.Type = model.BlockText
		block.Text = joinLines(lines)
	}

	return block
}

// joinLines joins line texts with newlines.
func joinLines(lines []model.VisualLine) string {
	parts := make([]string, len(lines))
	for i, line := range lines {
		parts[i] = line.Text
	}
	return strings.Join(parts, "\n")
}

// sortBlocksByPosition orders blocks top to bottom, then left to right.
func sortBlocksByPosition(blocks []model.ContentBlock) {
	sort.SliceStable(blocks, func(i, j int) bool {
		yi, yj := blocks[i].BBox.Top(), blocks[j].BBox.Top()
		if abs(yi-yj) > 1.0 {
			return yi > yj
		}
		return blocks[i].BBox.X < blocks[j].BBox.X
	})
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
