// Package pagina classifies positioned page content into typed layout
// blocks. Given a document of positioned text runs and images, it produces
// per-page content blocks (text, tables, headings, lists, formulas, images
// and page metadata), a document table of contents, figure-caption
// associations and summary statistics.
//
// The pipeline runs in three stages. First the document-wide typography
// baseline is computed. Then pages are classified independently on a worker
// pool, each page also receiving its table structure and figure
// associations. Finally the document-order passes run: list grouping (which
// also resolves the heading-vs-list ambiguity) and heading hierarchy
// assignment.
package pagina

import (
	"context"
	"runtime"
	"sync"

	"github.com/tsawler/pagina/classify"
	"github.com/tsawler/pagina/figure"
	"github.com/tsawler/pagina/heading"
	"github.com/tsawler/pagina/list"
	"github.com/tsawler/pagina/model"
	"github.com/tsawler/pagina/table"
	"github.com/tsawler/pagina/typography"
)

// Result holds the complete classification output for one document.
type Result struct {
	// Pages holds the classified blocks per page, in reading order,
	// indexed by page position in the input document
	Pages [][]model.ContentBlock

	// TOC is the ordered document table of contents
	TOC []model.HeadingEntry

	// Figures are the figure-caption associations, in page order
	Figures []model.FigureAssociation

	// Summary holds per-document block counts
	Summary model.Summary

	// Baseline is the typography baseline the document was scored against
	Baseline typography.Baseline
}

// Classify runs the full pipeline over a document. Pages are classified
// concurrently; cancellation is honored at page granularity, so a canceled
// context returns the pages already classified together with ctx.Err().
// Unprocessed pages are left nil in the result.
func Classify(ctx context.Context, doc model.Document, config Config) (*Result, error) {
	baseline := typography.BuildBaseline(doc.AllRuns())

	pages := make([][]model.ContentBlock, len(doc.Pages))
	figures := make([][]model.FigureAssociation, len(doc.Pages))

	classifier := classify.NewClassifierWithConfig(config.Classify)
	tables := table.NewBuilderWithConfig(config.Table)
	associator := figure.NewAssociatorWithConfig(config.Figure)

	workers := config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(doc.Pages) {
		workers = len(doc.Pages)
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				blocks := classifier.ClassifyPage(doc.Pages[i], baseline)
				for j := range blocks {
					if blocks[j].Type == model.BlockTable {
						tables.Build(&blocks[j])
					}
				}
				figures[i] = associator.Associate(blocks)
				pages[i] = blocks
			}
		}()
	}

	var canceled bool
dispatch:
	for i := range doc.Pages {
		if ctx.Err() != nil {
			canceled = true
			break
		}
		select {
		case <-ctx.Done():
			canceled = true
			break dispatch
		case indexes <- i:
		}
	}
	close(indexes)
	wg.Wait()

	// Document-order passes over whatever was classified.
	list.NewGrouperWithConfig(config.List).Group(pages)
	toc := heading.NewBuilderWithConfig(config.Heading).Build(pages, baseline)

	result := &Result{
		Pages:    pages,
		TOC:      toc,
		Baseline: baseline,
	}
	result.Summary.Pages = len(doc.Pages)
	for _, page := range pages {
		for _, block := range page {
			result.Summary.Add(block.Type)
		}
	}
	for _, assocs := range figures {
		result.Figures = append(result.Figures, assocs...)
	}

	if canceled {
		return result, ctx.Err()
	}
	return result, nil
}

// BlocksOfType returns every block of the given type, in page order.
func (r *Result) BlocksOfType(t model.BlockType) []model.ContentBlock {
	var out []model.ContentBlock
	for _, page := range r.Pages {
		for _, block := range page {
			if block.Type == t {
				out = append(out, block)
			}
		}
	}
	return out
}

// BlocksInRegion returns the blocks on a page (1-indexed) whose boxes
// intersect the region, in reading order.
func (r *Result) BlocksInRegion(page int, region model.BBox) []model.ContentBlock {
	var out []model.ContentBlock
	for _, pageBlocks := range r.Pages {
		for _, block := range pageBlocks {
			if block.Page == page && block.BBox.Intersects(region) {
				out = append(out, block)
			}
		}
	}
	return out
}

// Outline returns the hierarchical document outline built from the TOC.
func (r *Result) Outline() []heading.OutlineEntry {
	return heading.Outline(r.TOC)
}

// MarkdownTOC returns the TOC formatted as a markdown list.
func (r *Result) MarkdownTOC() string {
	return heading.MarkdownTOC(r.TOC)
}
