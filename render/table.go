// Package render formats classification results as plain text, mainly for
// debugging and golden-file inspection. Cell widths are computed by display
// width so that CJK and other wide runes keep the grid aligned.
package render

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/tsawler/pagina/model"
)

// Table renders a table payload as an ASCII grid, one line per logical row.
func Table(data *model.TableData) string {
	if data == nil || len(data.Rows) == 0 {
		return ""
	}

	cols := 0
	for _, row := range data.Rows {
		if len(row.Cells) > cols {
			cols = len(row.Cells)
		}
	}
	if cols == 0 {
		return ""
	}

	widths := make([]int, cols)
	for _, row := range data.Rows {
		for i, cell := range row.Cells {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var sb strings.Builder
	writeBorder(&sb, widths)
	for _, row := range data.Rows {
		sb.WriteString("|")
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row.Cells) {
				cell = row.Cells[i]
			}
			sb.WriteString(" ")
			sb.WriteString(runewidth.FillRight(cell, widths[i]))
			sb.WriteString(" |")
		}
		sb.WriteString("\n")
	}
	writeBorder(&sb, widths)

	return sb.String()
}

// Sections renders a table section by section, prefixing each marked
// section with its marker.
func Sections(data *model.TableData) string {
	if data == nil || len(data.Sections) == 0 {
		return Table(data)
	}

	var sb strings.Builder
	for i, sec := range data.Sections {
		if i > 0 {
			sb.WriteString("\n")
		}
		if sec.Marker != "" {
			sb.WriteString(fmt.Sprintf("[%s]\n", sec.Marker))
		}
		sb.WriteString(Table(&model.TableData{Rows: sec.Rows}))
	}
	return sb.String()
}

// Summary renders per-document block counts, one type per line in a fixed
// order.
func Summary(s model.Summary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "pages: %d\n", s.Pages)
	fmt.Fprintf(&sb, "blocks: %d\n", s.Blocks)

	order := []model.BlockType{
		model.BlockText, model.BlockTable, model.BlockHeading,
		model.BlockList, model.BlockFormula, model.BlockImage,
		model.BlockMetadata,
	}
	for _, t := range order {
		if n := s.ByType[t]; n > 0 {
			fmt.Fprintf(&sb, "  %s: %d\n", t, n)
		}
	}
	return sb.String()
}

// writeBorder writes a +---+---+ border line for the given column widths.
func writeBorder(sb *strings.Builder, widths []int) {
	sb.WriteString("+")
	for _, w := range widths {
		sb.WriteString(strings.Repeat("-", w+2))
		sb.WriteString("+")
	}
	sb.WriteString("\n")
}
