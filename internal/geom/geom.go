// Package geom provides the small set of 2D primitives the extraction
// pipeline reasons with: points, axis-aligned boxes, and line segments in
// PDF user space (origin bottom-left, units in points).
package geom

import "math"

// Point represents a 2D point.
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point.
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// BBox represents a bounding box (rectangle).
type BBox struct {
	X      float64 // Left
	Y      float64 // Bottom (PDF coordinate system)
	Width  float64
	Height float64
}

// NewBBox creates a bounding box from coordinates.
func NewBBox(x, y, width, height float64) BBox {
	return BBox{X: x, Y: y, Width: width, Height: height}
}

// Left returns the left edge X coordinate.
func (b BBox) Left() float64 { return b.X }

// Right returns the right edge X coordinate.
func (b BBox) Right() float64 { return b.X + b.Width }

// Bottom returns the bottom edge Y coordinate.
func (b BBox) Bottom() float64 { return b.Y }

// Top returns the top edge Y coordinate.
func (b BBox) Top() float64 { return b.Y + b.Height }

// Center returns the center point.
func (b BBox) Center() Point {
	return Point{X: b.X + b.Width/2, Y: b.Y + b.Height/2}
}

// Area returns the area of the bounding box.
func (b BBox) Area() float64 { return b.Width * b.Height }

// IsEmpty returns true if the bounding box has zero area.
func (b BBox) IsEmpty() bool { return b.Width <= 0 || b.Height <= 0 }

// Intersects checks if two bounding boxes intersect.
func (b BBox) Intersects(other BBox) bool {
	return !(b.Right() < other.Left() ||
		b.Left() > other.Right() ||
		b.Top() < other.Bottom() ||
		b.Bottom() > other.Top())
}

// Intersection returns the intersection of two bounding boxes.
func (b BBox) Intersection(other BBox) BBox {
	if !b.Intersects(other) {
		return BBox{}
	}

	x := math.Max(b.Left(), other.Left())
	y := math.Max(b.Bottom(), other.Bottom())
	right := math.Min(b.Right(), other.Right())
	top := math.Min(b.Top(), other.Top())

	return BBox{X: x, Y: y, Width: right - x, Height: top - y}
}

// Union returns the union of two bounding boxes.
func (b BBox) Union(other BBox) BBox {
	x := math.Min(b.Left(), other.Left())
	y := math.Min(b.Bottom(), other.Bottom())
	right := math.Max(b.Right(), other.Right())
	top := math.Max(b.Top(), other.Top())

	return BBox{X: x, Y: y, Width: right - x, Height: top - y}
}

// IoU returns the intersection-over-union ratio of two boxes, a value in
// [0, 1]. Degenerate boxes yield 0.
func (b BBox) IoU(other BBox) float64 {
	if !b.Intersects(other) {
		return 0
	}
	inter := b.Intersection(other).Area()
	union := b.Area() + other.Area() - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}

// XOverlap returns the horizontal overlap length of two boxes.
func (b BBox) XOverlap(other BBox) float64 {
	return math.Max(0, math.Min(b.Right(), other.Right())-math.Max(b.Left(), other.Left()))
}

// Segment is a straight stroke taken from a page's drawing operations.
type Segment struct {
	P0, P1 Point
}

// Length returns the segment's length.
func (s Segment) Length() float64 { return s.P0.Distance(s.P1) }

// Midpoint returns the segment's midpoint.
func (s Segment) Midpoint() Point {
	return Point{X: (s.P0.X + s.P1.X) / 2, Y: (s.P0.Y + s.P1.Y) / 2}
}

// DX returns the horizontal extent of the segment.
func (s Segment) DX() float64 { return math.Abs(s.P1.X - s.P0.X) }

// DY returns the vertical extent of the segment.
func (s Segment) DY() float64 { return math.Abs(s.P1.Y - s.P0.Y) }

// IsHorizontal reports whether the segment is flat within tolerance.
func (s Segment) IsHorizontal(tol float64) bool { return s.DY() <= tol }

// IsVertical reports whether the segment is upright within tolerance.
func (s Segment) IsVertical(tol float64) bool { return s.DX() <= tol }
