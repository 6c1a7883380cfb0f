// Package model provides the data types shared by all classification stages.
//
// The input side of the package is the primitive contract: [PositionedRun]
// and [PositionedImage] values, grouped per [Page], as supplied by an
// external text-extraction layer. The output side is [ContentBlock], a
// closed tagged variant over the seven block kinds, together with the
// aggregate types produced by the downstream builders:
//
//   - [TableSection] - a marker-delimited row range of a table block
//   - [HeadingEntry] - one entry of the document table of contents
//   - [ListGroup] and [ListItem] - grouped marker-prefixed lines
//   - [FigureAssociation] - an image/caption pairing
//
// Geometric primitives use PDF-style coordinates: the origin is the bottom
// left of the page and Y increases upward.
package model
