package extract

import (
	"github.com/dsotools/signcheck/internal/artwork"
	"github.com/dsotools/signcheck/internal/geom"
)

const (
	// underlineBaselineTol is the vertical distance (pt) within which a
	// stroke counts as belonging to a glyph run's baseline.
	underlineBaselineTol = 2.0
	// underlineMinCover is the fraction of a run's width an underline
	// candidate must span.
	underlineMinCover = 0.5
	// strokeFlatTol marks a stroke as horizontal when its vertical extent
	// stays within this many points.
	strokeFlatTol = 1.2
	// strokeMinLen filters out dots and serif artifacts.
	strokeMinLen = 4.0
	// flatRectMaxHeight / flatRectMinWidth bound the short, flat rectangles
	// that render as underlines.
	flatRectMaxHeight = 2.0
	flatRectMinWidth  = 4.0
)

// underlineCandidate is a horizontal extent at a fixed height.
type underlineCandidate struct {
	x0, y, x1 float64
}

// underlineCandidates reduces strokes and rectangles to horizontal
// underline candidates.
func underlineCandidates(segments []geom.Segment, rects []geom.BBox) []underlineCandidate {
	var cands []underlineCandidate

	for _, s := range segments {
		if s.IsHorizontal(strokeFlatTol) && s.DX() >= strokeMinLen {
			x0, x1 := s.P0.X, s.P1.X
			if x0 > x1 {
				x0, x1 = x1, x0
			}
			cands = append(cands, underlineCandidate{x0: x0, y: s.Midpoint().Y, x1: x1})
		}
	}

	for _, r := range rects {
		if r.Height <= flatRectMaxHeight && r.Width >= flatRectMinWidth {
			cands = append(cands, underlineCandidate{x0: r.Left(), y: r.Center().Y, x1: r.Right()})
		}
	}

	return cands
}

// applyVectorUnderlines marks fragments as underlined when a candidate lies
// near their baseline and spans enough of their width. Fragments whose font
// already declared an underline are left alone.
func applyVectorUnderlines(fragments []artwork.TextItem, segments []geom.Segment, rects []geom.BBox) {
	cands := underlineCandidates(segments, rects)
	if len(cands) == 0 {
		return
	}

	for i := range fragments {
		if fragments[i].Underline.True() {
			continue
		}
		b := fragments[i].BBox
		width := b.Width
		if width <= 0 {
			continue
		}
		for _, c := range cands {
			if absf(c.y-b.Y) > underlineBaselineTol {
				continue
			}
			overlap := minf(b.Right(), c.x1) - maxf(b.Left(), c.x0)
			if overlap >= underlineMinCover*width {
				fragments[i].Underline = artwork.TriTrue
				break
			}
		}
	}
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
