package bintje

import "math"

// Point represents a 2D point or vector in pixel space.
// The y axis grows downward.
type Point struct {
	X, Y float32
}

// Pt is a convenience function to create a Point.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float32) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// DistanceSquared returns the squared distance between two points.
func (p Point) DistanceSquared(q Point) float32 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}

func minf32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func absf32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// clampf32 clamps v to [lo, hi]. NaN maps to lo so that non-finite
// intermediate values cannot escape into coverage accumulation.
func clampf32(v, lo, hi float32) float32 {
	if v > hi {
		return hi
	}
	if v >= lo {
		return v
	}
	return lo
}

func floorf32(v float32) float32 {
	return float32(math.Floor(float64(v)))
}

func ceilf32(v float32) float32 {
	return float32(math.Ceil(float64(v)))
}
