package classify

import (
	"regexp"
	"strings"

	"github.com/tsawler/pagina/model"
)

// Boilerplate shapes recognized as page metadata. The set is deliberately
// closed: a line must match one of these shapes AND sit inside the page's
// top or bottom margin band.
var (
	bareNumberRe = regexp.MustCompile(`^\d{1,4}$`)
	pageOfRe     = regexp.MustCompile(`(?i)^(page|pagina|página|p\.)\s*\d+(\s*(of|de|/)\s*\d+)?$`)
	dashedNumRe  = regexp.MustCompile(`^[-–—]\s*\d{1,4}\s*[-–—]$`)
	slashNumRe   = regexp.MustCompile(`^\d{1,4}\s*/\s*\d{1,4}$`)
)

// matchMetadata reports whether a line's text has a recognized boilerplate
// shape and returns the match confidence.
func matchMetadata(text string) (float64, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}

	switch {
	case pageOfRe.MatchString(text):
		return 0.95, true
	case dashedNumRe.MatchString(text), slashNumRe.MatchString(text):
		return 0.9, true
	case bareNumberRe.MatchString(text):
		return 0.8, true
	}
	return 0, false
}

// inMarginBand reports whether a line lies within the top or bottom band
// of the page.
func inMarginBand(line model.VisualLine, pageHeight, band float64) bool {
	if pageHeight <= 0 {
		return false
	}
	margin := pageHeight * band
	return line.BBox.Bottom() >= pageHeight-margin || line.BBox.Top() <= margin
}
