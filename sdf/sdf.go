// Package sdf provides 2D signed distance functions and boolean composition
// operators. Distances are negative inside a shape, zero on the boundary and
// positive outside, so thresholding at zero rasterizes the shape.
package sdf

import (
	"math"

	"github.com/lixenwraith/runic/vmath"
)

// Circle returns the signed distance from p to a circle of the given radius
// centered at the origin
func Circle(p vmath.Vec2, radius float64) float64 {
	return p.Len() - radius
}

// Box returns the signed distance from p to an axis-aligned box with
// half-extents b centered at the origin
func Box(p vmath.Vec2, b vmath.Vec2) float64 {
	dx := math.Abs(p.X) - b.X
	dy := math.Abs(p.Y) - b.Y
	ox := math.Max(dx, 0)
	oy := math.Max(dy, 0)
	outside := math.Hypot(ox, oy)
	inside := math.Min(math.Max(dx, dy), 0)
	return outside + inside
}

// Segment returns the distance from p to the line segment a-b
// Always non-negative; a segment has no interior
func Segment(p, a, b vmath.Vec2) float64 {
	pa := p.Sub(a)
	ba := b.Sub(a)
	h := vmath.Clamp(pa.Dot(ba)/ba.LenSq(), 0, 1)
	return pa.Sub(ba.Scale(h)).Len()
}

// Line returns the signed distance from p to the infinite line through a and b
// Sign indicates which side of the line p lies on
func Line(p, a, b vmath.Vec2) float64 {
	ba := b.Sub(a)
	l := ba.Len()
	if l == 0 {
		return p.Sub(a).Len()
	}
	return ba.Cross(p.Sub(a)) / l
}

// Union composes two distances with a sharp boolean OR
func Union(d1, d2 float64) float64 {
	return math.Min(d1, d2)
}

// Subtract removes the d1 shape from d2
func Subtract(d1, d2 float64) float64 {
	return math.Max(-d1, d2)
}

// Intersect composes two distances with a sharp boolean AND
func Intersect(d1, d2 float64) float64 {
	return math.Max(d1, d2)
}

// SmoothUnion blends two distances with smoothing factor k
func SmoothUnion(d1, d2, k float64) float64 {
	h := vmath.Clamp(0.5+0.5*(d2-d1)/k, 0, 1)
	return vmath.Mix(d2, d1, h) - k*h*(1-h)
}

// SmoothSubtract removes d1 from d2 with smoothing factor k
func SmoothSubtract(d1, d2, k float64) float64 {
	h := vmath.Clamp(0.5-0.5*(d2+d1)/k, 0, 1)
	return vmath.Mix(d2, -d1, h) + k*h*(1-h)
}

// SmoothIntersect intersects two distances with smoothing factor k
func SmoothIntersect(d1, d2, k float64) float64 {
	h := vmath.Clamp(0.5-0.5*(d2-d1)/k, 0, 1)
	return vmath.Mix(d2, d1, h) + k*h*(1-h)
}
