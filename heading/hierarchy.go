package heading

import (
	"strings"

	"github.com/tsawler/pagina/model"
	"github.com/tsawler/pagina/typography"
)

// Config holds configuration for the heading hierarchy builder
type Config struct {
	// MinScore is the minimum score to keep a heading candidate; blocks
	// scoring below it are demoted to text blocks
	// Default: 0.35
	MinScore float64 `yaml:"min_score"`

	// FullSizeRatio is the baseline size ratio granting the maximum size
	// score component
	// Default: 1.5
	FullSizeRatio float64 `yaml:"full_size_ratio"`

	// MaxWords is the maximum word count for a heading; longer candidates
	// lose score
	// Default: 12
	MaxWords int `yaml:"max_words"`
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		MinScore:      0.35,
		FullSizeRatio: 1.5,
		MaxWords:      12,
	}
}

// Builder re-scores heading candidates against the typography baseline and
// assigns nesting levels, producing the ordered table of contents. It runs
// once per document, after all pages have been classified, because level
// assignment depends on document order across pages.
type Builder struct {
	config Config
}

// NewBuilder creates a builder with default configuration
func NewBuilder() *Builder {
	return &Builder{config: DefaultConfig()}
}

// NewBuilderWithConfig creates a builder with custom configuration
func NewBuilderWithConfig(config Config) *Builder {
	return &Builder{config: config}
}

// Build walks the classified pages in document order, scores each heading
// block, demotes weak candidates to text in place, assigns levels and
// returns the table of contents. With an ambiguous baseline, scoring falls
// back to numbering patterns only.
func (b *Builder) Build(pages [][]model.ContentBlock, baseline typography.Baseline) []model.HeadingEntry {
	var toc []model.HeadingEntry
	prevLevel := -1
	titleSeen := false

	for p := range pages {
		for i := range pages[p] {
			block := &pages[p][i]
			if block.Type != model.BlockHeading || block.Heading == nil {
				continue
			}

			pattern := patternFromTag(block.Heading.Pattern)
			score := b.score(block, pattern, baseline)
			if score < b.config.MinScore {
				demoteToText(block)
				continue
			}

			level := b.level(block, pattern, baseline, &titleSeen)

			// A heading never nests more than one level deeper than
			// its predecessor.
			if prevLevel >= 0 && level > prevLevel+1 {
				level = prevLevel + 1
			}
			prevLevel = level

			block.Heading.Level = level
			block.Heading.Score = score
			block.Confidence = score

			toc = append(toc, model.HeadingEntry{
				Text:    block.Heading.Text,
				Page:    block.Page,
				Level:   level,
				Pattern: pattern.String(),
				Score:   score,
			})
		}
	}

	return toc
}

// score combines pattern exactness, baseline-relative size and weight into
// a heading score clamped to [0,1].
func (b *Builder) score(block *model.ContentBlock, pattern Pattern, baseline typography.Baseline) float64 {
	score := 0.0

	switch pattern {
	case PatternTitle:
		score += 0.6
	case PatternNone:
		// size-only candidate, no pattern component
	default:
		score += 0.5
	}

	if ratio := baseline.SizeRatio(blockFontSize(block)); ratio > 0 {
		switch {
		case ratio >= b.config.FullSizeRatio:
			score += 0.4
		case ratio >= 1.3:
			score += 0.3
		case ratio >= 1.15:
			score += 0.2
		case ratio >= 1.05:
			score += 0.1
		}
	}

	if blockIsBold(block) {
		score += 0.1
	}

	if words := len(strings.Fields(block.Heading.Text)); words > b.config.MaxWords {
		score -= 0.2
	}

	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score
}

// level assigns the nesting level. Pattern levels win; size-only headings
// are leveled by their size ratio. A second quoted title in the same
// document is downgraded to level 1.
func (b *Builder) level(block *model.ContentBlock, pattern Pattern, baseline typography.Baseline, titleSeen *bool) int {
	if pattern == PatternTitle {
		if *titleSeen {
			return 1
		}
		*titleSeen = true
		return 0
	}
	if pattern != PatternNone {
		return pattern.Level()
	}

	ratio := baseline.SizeRatio(blockFontSize(block))
	switch {
	case ratio >= b.config.FullSizeRatio:
		return 1
	case ratio >= 1.3:
		return 2
	default:
		return 3
	}
}

// demoteToText rewrites a weak heading candidate as a text block.
func demoteToText(block *model.ContentBlock) {
	block.Type = model.BlockText
	block.Text = block.Heading.Text
	block.Heading = nil
	block.SetMeta("demoted_from", "heading")
}

// blockFontSize returns the average font size of the block's lines.
func blockFontSize(block *model.ContentBlock) float64 {
	if len(block.Lines) == 0 {
		return 0
	}
	total := 0.0
	for _, line := range block.Lines {
		total += line.FontSize
	}
	return total / float64(len(block.Lines))
}

// blockIsBold reports whether the majority of the block's lines are bold.
func blockIsBold(block *model.ContentBlock) bool {
	if len(block.Lines) == 0 {
		return false
	}
	bold := 0
	for _, line := range block.Lines {
		if line.Bold {
			bold++
		}
	}
	return bold*2 > len(block.Lines)
}

// patternFromTag maps a stored pattern tag back to its Pattern value.
func patternFromTag(tag string) Pattern {
	switch tag {
	case "title":
		return PatternTitle
	case "number":
		return PatternNumber
	case "number.number":
		return PatternNumberNumber
	case "letter":
		return PatternLetter
	case "letter.number":
		return PatternLetterNumber
	case "letter.number.number":
		return PatternLetterNumberNumber
	default:
		return PatternNone
	}
}

// OutlineEntry is a node of the hierarchical document outline built from
// the flat table of contents.
type OutlineEntry struct {
	// Entry is the TOC entry at this node
	Entry model.HeadingEntry

	// Children are the nested entries
	Children []OutlineEntry
}

// Outline builds a hierarchical outline from a flat, ordered TOC.
func Outline(toc []model.HeadingEntry) []OutlineEntry {
	if len(toc) == 0 {
		return nil
	}

	var outline []OutlineEntry
	var stack []*OutlineEntry

	for _, entry := range toc {
		node := OutlineEntry{Entry: entry}

		for len(stack) > 0 && stack[len(stack)-1].Entry.Level >= entry.Level {
			stack = stack[:len(stack)-1]
		}

		if len(stack) == 0 {
			outline = append(outline, node)
			stack = append(stack, &outline[len(outline)-1])
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, node)
			stack = append(stack, &parent.Children[len(parent.Children)-1])
		}
	}

	return outline
}

// MarkdownTOC returns a markdown-formatted table of contents.
func MarkdownTOC(toc []model.HeadingEntry) string {
	if len(toc) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, entry := range toc {
		depth := entry.Level
		if depth < 0 {
			depth = 0
		}
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString("- ")
		sb.WriteString(entry.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}
