// Package typography builds the document-wide typographic baseline used to
// score headings relative to body text. The baseline is computed once per
// document, before any page classification starts, and is read-only
// afterward.
package typography

import (
	"sort"

	"github.com/tsawler/pagina/model"
)

// sizeBucket is the histogram resolution in points.
const sizeBucket = 0.5

// Baseline holds the document-wide typography statistics.
type Baseline struct {
	// ModalSize is the most frequent font size weighted by character
	// count: the inferred body text size. Zero when Ambiguous.
	ModalSize float64

	// SizeHistogram maps size buckets (size/0.5, rounded) to character counts
	SizeHistogram map[int]int

	// BoldChars is the number of characters set in a bold weight
	BoldChars int

	// TotalChars is the total character count over all runs
	TotalChars int

	// Ambiguous is set for empty or near-empty documents. Consumers must
	// not score headings by size against an ambiguous baseline and fall
	// back to numbering patterns only.
	Ambiguous bool

	sortedSizes []float64 // distinct sizes ascending, for quantiles
}

// BuildBaseline scans every run of the document once and computes the
// baseline. It is deterministic and has no failure modes: an empty input
// yields an ambiguous baseline.
func BuildBaseline(runs []model.PositionedRun) Baseline {
	b := Baseline{
		SizeHistogram: make(map[int]int),
	}

	for _, run := range runs {
		chars := run.CharCount()
		if chars == 0 || run.FontSize <= 0 {
			continue
		}
		b.SizeHistogram[bucketOf(run.FontSize)] += chars
		b.TotalChars += chars
		if run.Bold {
			b.BoldChars += chars
		}
	}

	if b.TotalChars == 0 {
		b.Ambiguous = true
		return b
	}

	// Modal bucket, ties broken toward the smaller size so that a 50/50
	// split between body and display sizes picks the body size.
	buckets := make([]int, 0, len(b.SizeHistogram))
	for bucket := range b.SizeHistogram {
		buckets = append(buckets, bucket)
	}
	sort.Ints(buckets)

	best := buckets[0]
	for _, bucket := range buckets[1:] {
		if b.SizeHistogram[bucket] > b.SizeHistogram[best] {
			best = bucket
		}
	}
	b.ModalSize = float64(best) * sizeBucket

	for _, bucket := range buckets {
		b.sortedSizes = append(b.sortedSizes, float64(bucket)*sizeBucket)
	}

	return b
}

// bucketOf maps a font size to its histogram bucket.
func bucketOf(size float64) int {
	return int(size/sizeBucket + 0.5)
}

// SizeRatio returns size relative to the modal body size, or 0 when the
// baseline is ambiguous.
func (b Baseline) SizeRatio(size float64) float64 {
	if b.Ambiguous || b.ModalSize <= 0 {
		return 0
	}
	return size / b.ModalSize
}

// IsLargerThanBody reports whether size exceeds the body size by at least
// the given ratio. Always false for an ambiguous baseline.
func (b Baseline) IsLargerThanBody(size, ratio float64) bool {
	if b.Ambiguous || b.ModalSize <= 0 {
		return false
	}
	return size >= b.ModalSize*ratio
}

// SizeAtQuantile returns the font size at the given quantile of the
// character-weighted size distribution (q in [0,1]). Zero when ambiguous.
func (b Baseline) SizeAtQuantile(q float64) float64 {
	if b.Ambiguous || len(b.sortedSizes) == 0 {
		return 0
	}
	if q < 0 {
		q = 0
	}
	if q > 1 {
		q = 1
	}

	target := int(q * float64(b.TotalChars))
	cum := 0
	for _, size := range b.sortedSizes {
		cum += b.SizeHistogram[bucketOf(size)]
		if cum >= target {
			return size
		}
	}
	return b.sortedSizes[len(b.sortedSizes)-1]
}

// BoldRatio returns the fraction of characters set in bold.
func (b Baseline) BoldRatio() float64 {
	if b.TotalChars == 0 {
		return 0
	}
	return float64(b.BoldChars) / float64(b.TotalChars)
}

// BodyLineHeight estimates the body line height as 1.2 times the modal
// size, a conventional leading value. Zero when ambiguous.
func (b Baseline) BodyLineHeight() float64 {
	if b.Ambiguous {
		return 0
	}
	return b.ModalSize * 1.2
}
