package extract

import (
	"strings"
	"unicode"

	"github.com/dsotools/signcheck/internal/artwork"
	"github.com/dsotools/signcheck/internal/geom"
)

const (
	// plusMidpointTol is how far apart (pt) the midpoints of the two
	// strokes forming a "+" may sit.
	plusMidpointTol = 1.5
	// plusLengthRatio is the maximum relative length difference between
	// the two strokes of a "+".
	plusLengthRatio = 0.45
	// plusMinLen / plusMaxLen bound stroke lengths to glyph scale.
	plusMinLen = 1.5
	plusMaxLen = 20.0
	// plusDigitProximity is the maximum distance (pt) between a "+" shape
	// and the digit token it augments.
	plusDigitProximity = 12.0
)

// plusShape is a detected "+" glyph assembled from drawing primitives or an
// isolated "+" text token.
type plusShape struct {
	center geom.Point
	size   float64
}

// detectPlusShapes finds "+" glyphs drawn as two crossing strokes: one flat,
// one upright, midpoints coinciding, lengths comparable. Thin rectangles
// qualify as strokes too.
func detectPlusShapes(segments []geom.Segment, rects []geom.BBox) []plusShape {
	var horizontals, verticals []geom.Segment

	consider := func(s geom.Segment) {
		l := s.Length()
		if l < plusMinLen || l > plusMaxLen {
			return
		}
		switch {
		case s.IsHorizontal(strokeFlatTol):
			horizontals = append(horizontals, s)
		case s.IsVertical(strokeFlatTol):
			verticals = append(verticals, s)
		}
	}

	for _, s := range segments {
		consider(s)
	}
	for _, r := range rects {
		// A thin rectangle renders as a stroke along its long axis.
		switch {
		case r.Height <= strokeFlatTol && r.Width >= plusMinLen:
			consider(geom.Segment{
				P0: geom.Point{X: r.Left(), Y: r.Center().Y},
				P1: geom.Point{X: r.Right(), Y: r.Center().Y},
			})
		case r.Width <= strokeFlatTol && r.Height >= plusMinLen:
			consider(geom.Segment{
				P0: geom.Point{X: r.Center().X, Y: r.Bottom()},
				P1: geom.Point{X: r.Center().X, Y: r.Top()},
			})
		}
	}

	var shapes []plusShape
	for _, h := range horizontals {
		for _, v := range verticals {
			hm, vm := h.Midpoint(), v.Midpoint()
			if hm.Distance(vm) > plusMidpointTol {
				continue
			}
			hl, vl := h.Length(), v.Length()
			longer := maxf(hl, vl)
			if longer == 0 || absf(hl-vl)/longer > plusLengthRatio {
				continue
			}
			shapes = append(shapes, plusShape{
				center: geom.Point{X: (hm.X + vm.X) / 2, Y: (hm.Y + vm.Y) / 2},
				size:   longer,
			})
		}
	}
	return shapes
}

// synthesizeCompounds emits synthetic line-level items for digit tokens
// followed by a "+" that the renderer split apart, whether the plus was
// drawn from strokes or emitted as its own single-character token.
func synthesizeCompounds(fragments []artwork.TextItem, segments []geom.Segment, rects []geom.BBox, pageNum int) []artwork.TextItem {
	shapes := detectPlusShapes(segments, rects)

	// Isolated "+" tokens behave like drawn plus shapes.
	for i := range fragments {
		if strings.TrimSpace(fragments[i].Text) == "+" {
			shapes = append(shapes, plusShape{
				center: fragments[i].BBox.Center(),
				size:   fragments[i].BBox.Height,
			})
		}
	}
	if len(shapes) == 0 {
		return nil
	}

	var synthetic []artwork.TextItem
	for _, shape := range shapes {
		digit, ok := nearestDigitFragment(fragments, shape)
		if !ok {
			continue
		}

		joined := digit.Text + "+"
		synthetic = append(synthetic, artwork.TextItem{
			Text:      joined,
			Source:    artwork.SourceNative,
			Bold:      digit.Bold,
			Underline: digit.Underline,
			Italic:    digit.Italic,
			SizeMM:    digit.SizeMM,
			Level:     artwork.LevelLine,
			Page:      pageNum,
			BBox: digit.BBox.Union(geom.BBox{
				X:      shape.center.X - shape.size/2,
				Y:      shape.center.Y - shape.size/2,
				Width:  shape.size,
				Height: shape.size,
			}),
		})
	}
	return synthetic
}

// nearestDigitFragment finds the closest all-digit token within proximity of
// a plus shape, preferring tokens to the left of the shape.
func nearestDigitFragment(fragments []artwork.TextItem, shape plusShape) (artwork.TextItem, bool) {
	best := artwork.TextItem{}
	bestDist := plusDigitProximity
	found := false

	for i := range fragments {
		text := strings.TrimSpace(fragments[i].Text)
		if !isDigitToken(text) {
			continue
		}
		b := fragments[i].BBox
		// Distance from the token's right edge to the shape center.
		dx := shape.center.X - b.Right()
		dy := shape.center.Y - b.Center().Y
		if dx < -1.0 {
			continue // shape sits left of the digit
		}
		dist := geom.Point{X: dx, Y: dy}.Distance(geom.Point{})
		if dist <= bestDist {
			best = fragments[i]
			bestDist = dist
			found = true
		}
	}
	return best, found
}

func isDigitToken(s string) bool {
	if s == "" || len(s) > 2 {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
