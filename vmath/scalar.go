package vmath

import "math"

// Map linearly remaps v from range [inA, inB] to [outA, outB]
// The result is not clamped; use MapClamp for bounded output
func Map(v, inA, inB, outA, outB float64) float64 {
	return outA + (outB-outA)*((v-inA)/(inB-inA))
}

// MapClamp remaps v like Map, then clamps to the output range
func MapClamp(v, inA, inB, outA, outB float64) float64 {
	r := Map(v, inA, inB, outA, outB)
	if outA < outB {
		return Clamp(r, outA, outB)
	}
	return Clamp(r, outB, outA)
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Mix linearly interpolates between a and b by t
// t=0 returns a, t=1 returns b; t is not clamped
func Mix(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// Step returns 0 when v < edge, otherwise 1
func Step(edge, v float64) float64 {
	if v < edge {
		return 0
	}
	return 1
}

// Smoothstep returns cubic Hermite interpolation of v between two edges
// Result is clamped to [0, 1]
func Smoothstep(edge0, edge1, v float64) float64 {
	t := Clamp((v-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

// Smootherstep is Perlin's fifth-order variant with zero second derivatives at the edges
func Smootherstep(edge0, edge1, v float64) float64 {
	t := Clamp((v-edge0)/(edge1-edge0), 0, 1)
	return t * t * t * (t*(t*6-15) + 10)
}

// Fract returns the fractional part of v, always in [0, 1)
func Fract(v float64) float64 {
	return v - math.Floor(v)
}

// Mod returns the floored modulo of v by m, matching GLSL mod()
// Result has the sign of m, unlike math.Mod
func Mod(v, m float64) float64 {
	return v - m*math.Floor(v/m)
}

// Sign returns -1, 0 or 1 for negative, zero or positive v
func Sign(v float64) float64 {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}
