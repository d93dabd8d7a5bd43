package extract

import (
	"strings"

	"github.com/dsotools/signcheck/internal/artwork"
	"github.com/dsotools/signcheck/internal/geom"
	"github.com/dsotools/signcheck/internal/ocr"
	"github.com/dsotools/signcheck/internal/textnorm"
)

// riskPairs are safety headings that must travel with a companion clause.
// A heading showing up alone suggests the rest of the statement is trapped
// in flattened pixels, which makes the page a recognition candidate.
var riskPairs = []struct {
	heading   string
	companion string
}{
	{"warning", "hazard"},
	{"attention", "danger"},
	{"คำเตือน", "อันตราย"},
}

// hasRiskMarkers reports whether any risk heading appears without its
// companion clause in the page's items.
func hasRiskMarkers(items []artwork.TextItem) bool {
	var joined strings.Builder
	for i := range items {
		joined.WriteString(textnorm.Normalize(items[i].Text))
		joined.WriteString(" ")
	}
	text := joined.String()

	for _, pair := range riskPairs {
		if strings.Contains(text, pair.heading) && !strings.Contains(text, pair.companion) {
			return true
		}
	}
	return false
}

// recognizedItems converts recognition output over one embedded image into
// page-space text items: word fragments plus line aggregates with the
// underline heuristic applied.
//
// Pixel coordinates are mapped to page points assuming the raster fills the
// page, which holds for the flattened artwork scans that trigger recognition
// in the first place.
func recognizedItems(words []ocr.Word, img imagePayload, pageNum int, pageWidthPt, pageHeightPt float64) []artwork.TextItem {
	if len(words) == 0 || img.widthPx == 0 || img.heightPx == 0 {
		return nil
	}
	if pageWidthPt <= 0 || pageHeightPt <= 0 {
		pageWidthPt = 595.28
		pageHeightPt = 841.89
	}

	scaleX := pageWidthPt / float64(img.widthPx)
	scaleY := pageHeightPt / float64(img.heightPx)

	toPage := func(b geom.BBox) geom.BBox {
		// Image origin is top-left; page origin is bottom-left.
		return geom.BBox{
			X:      b.X * scaleX,
			Y:      pageHeightPt - (b.Y+b.Height)*scaleY,
			Width:  b.Width * scaleX,
			Height: b.Height * scaleY,
		}
	}

	lines := ocr.GroupLines(words)
	items := make([]artwork.TextItem, 0, len(words)+len(lines))

	for _, w := range words {
		pageBox := toPage(w.Bounds)
		items = append(items, artwork.TextItem{
			Text:       w.Text,
			Source:     artwork.SourceRecognized,
			Bold:       artwork.TriUnknown,
			Underline:  artwork.TriUnknown,
			Italic:     artwork.TriUnknown,
			SizeMM:     artwork.PtToMM(pageBox.Height),
			Level:      artwork.LevelFragment,
			Page:       pageNum,
			BBox:       pageBox,
			Confidence: w.Confidence,
		})
	}

	for _, line := range lines {
		pageBox := toPage(line.Bounds)
		underlined := ocr.LineUnderlined(img.data, line.Bounds)
		items = append(items, artwork.TextItem{
			Text:       line.Text,
			Source:     artwork.SourceRecognized,
			Bold:       artwork.TriUnknown,
			Underline:  artwork.TriOf(underlined),
			Italic:     artwork.TriUnknown,
			SizeMM:     artwork.PtToMM(pageBox.Height),
			Level:      artwork.LevelLine,
			Page:       pageNum,
			BBox:       pageBox,
			Confidence: line.Confidence,
		})
	}

	return items
}

// dedupeIoU is the geometric overlap above which a recognized item is
// considered the same glyphs the native pass already saw.
const dedupeIoU = 0.5

// mergeRecognized merges recognized items into the native set, dropping any
// recognized item whose normalized text equals an existing item's and whose
// bounds overlap it: the same glyphs seen by both passes.
func mergeRecognized(existing, recognized []artwork.TextItem) []artwork.TextItem {
	if len(recognized) == 0 {
		return existing
	}

	merged := existing
	for _, rec := range recognized {
		norm := textnorm.Normalize(rec.Text)
		duplicate := false
		for i := range existing {
			if textnorm.Normalize(existing[i].Text) != norm {
				continue
			}
			if existing[i].BBox.IoU(rec.BBox) >= dedupeIoU {
				duplicate = true
				break
			}
		}
		if !duplicate {
			merged = append(merged, rec)
		}
	}
	return merged
}
