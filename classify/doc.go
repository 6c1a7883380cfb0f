// Package classify implements per-page block classification. Runs are
// grouped into visual lines by vertical overlap, lines are grouped into
// candidate blocks by vertical adjacency, and each block is assigned one of
// the seven content kinds in a fixed precedence order:
//
//	metadata > table > heading > list > formula > image > text
//
// Classification is a pure function of the page's primitives and the
// document typography baseline: it performs no I/O, keeps no state between
// pages, and never returns an error. Malformed input (an embedded image
// that cannot be decoded) degrades to a zero-confidence block with an
// "extraction_failed" flag instead of aborting the page.
//
// Heading and list tags assigned here are provisional: the list grouper
// re-tags heading lines that turn out to be list runs, and the heading
// hierarchy builder demotes weak heading candidates, both in later passes
// over the block stream.
package classify
