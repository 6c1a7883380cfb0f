// Package figure pairs image blocks with nearby caption text.
package figure

import (
	"regexp"
	"strings"

	"github.com/tsawler/pagina/model"
)

// captionRe matches caption lines such as "Figure 3: Flow diagram" or
// "Tabla 2. Resultados".
var captionRe = regexp.MustCompile(`(?i)^(figure|figura|fig\.|table|tabla|tab\.|diagram|diagrama)\s+(\d{1,3})\s*[:.\-]?\s*(.*)$`)

// Config holds configuration for the figure associator
type Config struct {
	// MaxDistance is the maximum vertical gap, in layout units, between a
	// caption and the image it describes
	// Default: 100
	MaxDistance float64 `yaml:"max_distance"`
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{MaxDistance: 100.0}
}

// Associator pairs the image blocks of a page with caption-shaped text
// blocks near them.
type Associator struct {
	config Config
}

// NewAssociator creates an associator with default configuration
func NewAssociator() *Associator {
	return &Associator{config: DefaultConfig()}
}

// NewAssociatorWithConfig creates an associator with custom configuration
func NewAssociatorWithConfig(config Config) *Associator {
	return &Associator{config: config}
}

// MatchCaption reports whether text is caption-shaped and returns the
// trimmed caption text.
func MatchCaption(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if captionRe.MatchString(text) {
		return text, true
	}
	return "", false
}

// Associate pairs each caption-shaped text block on a page with its nearest
// unconsumed image block within MaxDistance. Equal vertical distances break
// by block-order distance to the caption; captions are processed in page
// order, so the earlier caption claims a contested image. Matched captions
// are written into the image payloads in place; unmatched captions and
// images are reported as caption_only and image_only associations.
func (a *Associator) Associate(blocks []model.ContentBlock) []model.FigureAssociation {
	var imageIdx []int
	type captionRef struct {
		idx  int
		text string
	}
	var captions []captionRef

	for i := range blocks {
		switch blocks[i].Type {
		case model.BlockImage:
			imageIdx = append(imageIdx, i)
		case model.BlockText:
			if text, ok := MatchCaption(blocks[i].Text); ok {
				captions = append(captions, captionRef{idx: i, text: text})
			}
		}
	}
	if len(imageIdx) == 0 && len(captions) == 0 {
		return nil
	}

	var out []model.FigureAssociation
	consumed := make(map[int]bool)

	for _, c := range captions {
		capBlock := &blocks[c.idx]

		best := -1
		bestDist := 0.0
		bestOrder := 0
		for _, ii := range imageIdx {
			if consumed[ii] {
				continue
			}
			dist := capBlock.BBox.VerticalGap(blocks[ii].BBox)
			if dist > a.config.MaxDistance {
				continue
			}
			// Ties in vertical distance break by block-order distance.
			order := ii - c.idx
			if order < 0 {
				order = -order
			}
			if best < 0 || dist < bestDist || (dist == bestDist && order < bestOrder) {
				best, bestDist, bestOrder = ii, dist, order
			}
		}

		if best < 0 {
			out = append(out, model.FigureAssociation{
				Caption:  c.text,
				Page:     capBlock.Page,
				Position: model.PositionCaptionOnly,
			})
			continue
		}

		consumed[best] = true
		img := &blocks[best]
		img.Figure.Caption = c.text
		capBlock.SetMeta("caption_for", img.Figure.Ref)

		position := model.PositionBelow
		if capBlock.BBox.Center().Y > img.BBox.Center().Y {
			position = model.PositionAbove
		}
		out = append(out, model.FigureAssociation{
			Image:    img.Figure,
			Caption:  c.text,
			Page:     img.Page,
			Position: position,
			Distance: bestDist,
		})
	}

	for _, ii := range imageIdx {
		if consumed[ii] {
			continue
		}
		out = append(out, model.FigureAssociation{
			Image:    blocks[ii].Figure,
			Page:     blocks[ii].Page,
			Position: model.PositionImageOnly,
		})
	}

	return out
}
