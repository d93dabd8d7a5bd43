// Package classify labels document pages as artwork or not, and pulls
// per-page product identification out of the extracted text. Non-artwork
// pages (covers, instruction sheets) are excluded from all matching, which
// is the primary defense against false positives.
package classify

import (
	"regexp"
	"strings"

	"github.com/dsotools/signcheck/internal/artwork"
	"github.com/dsotools/signcheck/internal/terms"
	"github.com/dsotools/signcheck/internal/textnorm"
)

const (
	// minArtworkItems is the native item count that marks a page as dense
	// enough to be a packaging face.
	minArtworkItems = 10
	// minLegibleMM is the smallest size at which an item counts as legible
	// print rather than registration noise.
	minLegibleMM = 1.6
)

var (
	// partNumberPattern matches structured part codes like "4LB45-MF4A".
	partNumberPattern = regexp.MustCompile(`\b[A-Z0-9]{2,5}-[A-Z0-9]{2,6}\b`)
	// revisionPattern matches revision tokens like "A1".
	revisionPattern = regexp.MustCompile(`\bA\d\b`)
)

// ClassifyDocument sets IsArtwork on every page. Classification is a pure
// function of page content: the same document classifies the same way on
// every run.
func ClassifyDocument(doc *artwork.Document) {
	docHasPartNumber := false
	for i := range doc.Pages {
		if pagePartNumber(doc.Pages[i].Items) != "" {
			docHasPartNumber = true
			break
		}
	}

	for i := range doc.Pages {
		doc.Pages[i].IsArtwork = isArtworkPage(&doc.Pages[i], docHasPartNumber)
	}
}

// isArtworkPage applies the artwork heuristics in order of reliability.
func isArtworkPage(p *artwork.Page, docHasPartNumber bool) bool {
	if pagePartNumber(p.Items) != "" {
		return true
	}
	if denseAndLegible(p.Items) {
		return true
	}
	if hasOriginStatement(p.Items) {
		return true
	}
	// Documents that never exhibit a part number anywhere lose the most
	// reliable signal; fall back to treating every non-cover page with any
	// content as a candidate.
	if !docHasPartNumber && p.Number > 1 && (len(p.Items) > 0 || p.HasImages) {
		return true
	}
	return false
}

// denseAndLegible reports whether a page carries enough native items, at
// least one at legible print size.
func denseAndLegible(items []artwork.TextItem) bool {
	usable := 0
	legible := false
	for i := range items {
		if strings.TrimSpace(items[i].Text) == "" {
			continue
		}
		usable++
		if items[i].SizeMM >= minLegibleMM {
			legible = true
		}
	}
	return usable >= minArtworkItems && legible
}

func hasOriginStatement(items []artwork.TextItem) bool {
	for i := range items {
		if terms.ContainsOriginStatement(textnorm.Normalize(items[i].Text)) {
			return true
		}
	}
	return false
}

// pagePartNumber returns the first structured part code on a page, or "".
func pagePartNumber(items []artwork.TextItem) string {
	for i := range items {
		if m := partNumberPattern.FindString(items[i].Text); m != "" {
			return m
		}
	}
	return ""
}
