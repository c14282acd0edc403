package vmath

import "math"

// Vec2 is a 2D float vector
type Vec2 struct {
	X, Y float64
}

// V2 constructs a Vec2
func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Mul returns the component-wise product
func (v Vec2) Mul(o Vec2) Vec2 {
	return Vec2{v.X * o.X, v.Y * o.Y}
}

// Scale returns v scaled by s
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Dot returns the dot product
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the 2D cross product (z component of the 3D cross)
func (v Vec2) Cross(o Vec2) float64 {
	return v.X*o.Y - v.Y*o.X
}

// Len returns the Euclidean length
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// LenSq returns the squared length without sqrt
func (v Vec2) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Dist returns the distance between v and o
func (v Vec2) Dist(o Vec2) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// Norm returns the unit vector, zero-safe
func (v Vec2) Norm() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Rot returns v rotated by angle radians counter-clockwise
func (v Vec2) Rot(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

// MixV2 linearly interpolates between a and b by t
func MixV2(a, b Vec2, t float64) Vec2 {
	return Vec2{Mix(a.X, b.X, t), Mix(a.Y, b.Y, t)}
}
