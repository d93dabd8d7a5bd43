package ocr

import (
	"bytes"
	"image"

	"github.com/dsotools/signcheck/internal/geom"
)

const (
	// underlineRowCoverage is the fraction of a line's width a dark pixel
	// row must span to count as an underline stroke.
	underlineRowCoverage = 0.55
	// underlineBandRatio sizes the search band beneath the baseline relative
	// to the line height.
	underlineBandRatio = 0.45
)

// LineUnderlined reports whether a recognized line has an underline stroke
// in the source image: the band just beneath the line's bounds is binarized
// and tested row by row for near-continuous dark coverage.
//
// The line bounds are pixel coordinates in the decoded image, origin
// top-left (as produced by the recognition engine).
func LineUnderlined(encoded []byte, line geom.BBox) bool {
	img, _, err := image.Decode(bytes.NewReader(encoded))
	if err != nil {
		return false
	}
	return lineUnderlinedInImage(img, line)
}

func lineUnderlinedInImage(img image.Image, line geom.BBox) bool {
	band := int(line.Height * underlineBandRatio)
	if band < 2 {
		band = 2
	}

	// In top-left image space the area beneath the glyphs starts at Y+Height.
	rect := image.Rect(
		int(line.X),
		int(line.Y+line.Height),
		int(line.X+line.Width),
		int(line.Y+line.Height)+band,
	)

	mask := binarize(img, rect)
	if len(mask) == 0 {
		return false
	}

	for _, row := range mask {
		if rowCoverage(row) >= underlineRowCoverage {
			return true
		}
	}
	return false
}

// rowCoverage returns the fraction of a row covered by its longest run of
// dark pixels, tolerating single-pixel gaps.
func rowCoverage(row []bool) float64 {
	if len(row) == 0 {
		return 0
	}

	best, run, gap := 0, 0, 0
	for _, dark := range row {
		switch {
		case dark:
			run += 1 + gap
			gap = 0
		case run > 0 && gap == 0:
			gap = 1
		default:
			if run > best {
				best = run
			}
			run, gap = 0, 0
		}
	}
	if run > best {
		best = run
	}
	return float64(best) / float64(len(row))
}
