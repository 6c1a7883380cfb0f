package classify

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/pagina/model"
)

// GroupLines groups a page's runs into visual lines by vertical overlap.
// Lines are returned top to bottom, each line's runs sorted left to right.
// Run text is NFC-normalized during assembly so that decomposed accents do
// not defeat later pattern matching.
func GroupLines(runs []model.PositionedRun, cfg Config) []model.VisualLine {
	if len(runs) == 0 {
		return nil
	}

	// Sort by Y descending (top of page first), preserving extraction
	// order for runs at the same height.
	sorted := make([]model.PositionedRun, len(runs))
	copy(sorted, runs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BBox.Center().Y > sorted[j].BBox.Center().Y
	})

	var groups [][]model.PositionedRun
	for _, run := range sorted {
		placed := false
		if len(groups) > 0 {
			current := groups[len(groups)-1]
			if verticalOverlap(lineBBox(current), run.BBox) >= cfg.LineOverlapRatio {
				groups[len(groups)-1] = append(current, run)
				placed = true
			}
		}
		if !placed {
			groups = append(groups, []model.PositionedRun{run})
		}
	}

	lines := make([]model.VisualLine, 0, len(groups))
	for _, group := range groups {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].BBox.X < group[j].BBox.X
		})
		lines = append(lines, buildLine(group))
	}

	return lines
}

// verticalOverlap returns the overlap of two boxes' Y ranges as a fraction
// of the smaller height.
func verticalOverlap(a, b model.BBox) float64 {
	top := a.Top()
	if b.Top() < top {
		top = b.Top()
	}
	bottom := a.Bottom()
	if b.Bottom() > bottom {
		bottom = b.Bottom()
	}
	overlap := top - bottom
	if overlap <= 0 {
		return 0
	}

	minHeight := a.Height
	if b.Height < minHeight {
		minHeight = b.Height
	}
	if minHeight <= 0 {
		return 0
	}
	return overlap / minHeight
}

// lineBBox returns the union box of a run group.
func lineBBox(runs []model.PositionedRun) model.BBox {
	box := runs[0].BBox
	for _, r := range runs[1:] {
		box = box.Union(r.BBox)
	}
	return box
}

// buildLine assembles a visual line from left-to-right sorted runs.
func buildLine(runs []model.PositionedRun) model.VisualLine {
	line := model.VisualLine{
		Runs: runs,
		BBox: lineBBox(runs),
	}

	var sb strings.Builder
	totalSize := 0.0
	boldChars, totalChars := 0, 0

	for i, run := range runs {
		if i > 0 {
			prev := runs[i-1]
			gap := run.BBox.X - prev.BBox.Right()
			// Insert a space for a visible gap between runs.
			if gap > run.BBox.Height*0.1 {
				sb.WriteString(" ")
			}
		}
		sb.WriteString(norm.NFC.String(run.Text))

		totalSize += run.FontSize
		chars := run.CharCount()
		totalChars += chars
		if run.Bold {
			boldChars += chars
		}
	}

	line.Text = sb.String()
	line.FontSize = totalSize / float64(len(runs))
	line.Bold = totalChars > 0 && boldChars*2 > totalChars

	return line
}
