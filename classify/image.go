package classify

import (
	"bytes"
	"image"

	// Registered decoders for embedded image validation.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/tsawler/pagina/model"
)

// buildImageBlocks emits one IMAGE block per embedded image on the page.
// Images carrying raw bytes are validated by decoding their header; a
// decode failure degrades the block to zero confidence with an
// "extraction_failed" flag rather than dropping it, so the region still
// occupies its place in the layout.
func (c *Classifier) buildImageBlocks(page model.Page) []model.ContentBlock {
	if len(page.Images) == 0 {
		return nil
	}

	blocks := make([]model.ContentBlock, 0, len(page.Images))
	for _, img := range page.Images {
		block := model.ContentBlock{
			Type: model.BlockImage,
			BBox: img.BBox,
			Page: page.Number,
			Figure: &model.FigureData{
				Ref:         img.Ref,
				Format:      img.Format,
				PixelWidth:  img.PixelWidth,
				PixelHeight: img.PixelHeight,
			},
		}

		switch {
		case len(img.Data) > 0:
			cfg, format, err := image.DecodeConfig(bytes.NewReader(img.Data))
			if err != nil {
				block.Confidence = 0
				block.SetMeta("extraction_failed", "true")
			} else {
				block.Confidence = 1.0
				block.Figure.Format = format
				block.Figure.PixelWidth = cfg.Width
				block.Figure.PixelHeight = cfg.Height
			}
		case img.PixelWidth > 0 && img.PixelHeight > 0:
			// Declared dimensions only; nothing to validate against.
			block.Confidence = 0.7
		default:
			block.Confidence = 0
			block.SetMeta("extraction_failed", "true")
		}

		blocks = append(blocks, block)
	}
	return blocks
}
