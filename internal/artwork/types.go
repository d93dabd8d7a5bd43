// Package artwork defines the document model shared by the extraction,
// classification, and matching stages. Items and pages are built once per
// document load and treated as read-only afterwards, so a document can be
// checked against any number of checklists without re-extraction.
package artwork

import (
	"strings"

	"github.com/dsotools/signcheck/internal/geom"
)

// Source identifies where a text item came from.
type Source string

const (
	// SourceNative marks items recovered from the PDF content stream.
	SourceNative Source = "native"
	// SourceRecognized marks items produced by optical recognition.
	SourceRecognized Source = "recognized"
)

// Level identifies an item's aggregation level.
type Level string

const (
	// LevelFragment is a single styled glyph run.
	LevelFragment Level = "fragment"
	// LevelLine is the space-joined aggregate of the fragments sharing a
	// visual line.
	LevelLine Level = "line"
)

// Tri is a three-valued style flag. Unknown appears only on recognized items
// whose styling has not been resolved yet.
type Tri int8

const (
	TriUnknown Tri = iota
	TriFalse
	TriTrue
)

// True reports whether the flag is definitely set.
func (t Tri) True() bool { return t == TriTrue }

// Or combines two flags; a definite true wins, otherwise a definite false,
// otherwise unknown.
func (t Tri) Or(other Tri) Tri {
	if t == TriTrue || other == TriTrue {
		return TriTrue
	}
	if t == TriFalse || other == TriFalse {
		return TriFalse
	}
	return TriUnknown
}

// TriOf converts a bool to a definite Tri.
func TriOf(b bool) Tri {
	if b {
		return TriTrue
	}
	return TriFalse
}

// TextItem is one piece of text recovered from a page, either a styled
// fragment or a line aggregate. Items are immutable once created.
type TextItem struct {
	Text      string
	Source    Source
	Bold      Tri
	Underline Tri
	Italic    Tri
	SizeMM    float64
	Level     Level
	Page      int
	BBox      geom.BBox

	// Confidence is meaningful only for recognized items, as a value in
	// [0, 1]. Native items always carry zero.
	Confidence float64
}

// Page is an ordered sequence of text items plus derived page facts.
// Page numbers are 1-indexed throughout a run.
type Page struct {
	Number    int
	Items     []TextItem
	HasImages bool
	IsArtwork bool
	WidthPt   float64
	HeightPt  float64
}

// JoinedText returns the page's line-level text joined with newlines,
// falling back to fragments when no line aggregates exist.
func (p *Page) JoinedText() string {
	var lines []string
	for i := range p.Items {
		if p.Items[i].Level == LevelLine {
			lines = append(lines, p.Items[i].Text)
		}
	}
	if len(lines) == 0 {
		for i := range p.Items {
			lines = append(lines, p.Items[i].Text)
		}
	}
	return strings.Join(lines, "\n")
}

// Document is an extracted artwork file.
type Document struct {
	Path  string
	Pages []Page
}

// ArtworkPages returns the pages classified as artwork.
func (d *Document) ArtworkPages() []*Page {
	var pages []*Page
	for i := range d.Pages {
		if d.Pages[i].IsArtwork {
			pages = append(pages, &d.Pages[i])
		}
	}
	return pages
}

// PtToMM converts a length in PDF points to millimeters.
func PtToMM(pt float64) float64 {
	return pt * 25.4 / 72.0
}

// MMToPt converts a length in millimeters to PDF points.
func MMToPt(mm float64) float64 {
	return mm * 72.0 / 25.4
}
