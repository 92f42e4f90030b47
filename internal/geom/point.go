// Package geom implements the planar primitives used by the road network:
// points, directed segments and the minimal-distance queries between them.
package geom

import (
	"fmt"
	"math"
)

// DefaultTolerance bounds the distance under which two points are treated as
// the same location.
const DefaultTolerance = 1e-6

// Point is a location in the plane.
type Point struct {
	X, Y float64
}

// Vec is a displacement or direction in the plane.
type Vec struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Sub returns the displacement from o to p.
func (p Point) Sub(o Point) Vec { return Vec{X: p.X - o.X, Y: p.Y - o.Y} }

// Add translates p by v.
func (p Point) Add(v Vec) Point { return Point{X: p.X + v.X, Y: p.Y + v.Y} }

// Lerp returns the point a fraction t of the way from p to q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{X: p.X + (q.X-p.X)*t, Y: p.Y + (q.Y-p.Y)*t}
}

func (p Point) String() string { return fmt.Sprintf("(%g, %g)", p.X, p.Y) }

// Dot returns the scalar product.
func (v Vec) Dot(o Vec) float64 { return v.X*o.X + v.Y*o.Y }

// Cross returns the z component of the cross product.
func (v Vec) Cross(o Vec) float64 { return v.X*o.Y - v.Y*o.X }

// Len returns the Euclidean norm.
func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }

// Scale multiplies both components by k.
func (v Vec) Scale(k float64) Vec { return Vec{X: v.X * k, Y: v.Y * k} }

// Add returns the component-wise sum.
func (v Vec) Add(o Vec) Vec { return Vec{X: v.X + o.X, Y: v.Y + o.Y} }

// Perp returns v rotated a quarter turn counter-clockwise.
func (v Vec) Perp() Vec { return Vec{X: -v.Y, Y: v.X} }

// Unit returns v scaled to length one. The zero vector has no direction.
func (v Vec) Unit() (Vec, error) {
	l := v.Len()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return Vec{}, ErrDegenerateDirection
	}
	return v.Scale(1 / l), nil
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 { return b.Sub(a).Len() }

// Near reports whether a and b are within tol of each other.
func Near(a, b Point, tol float64) bool {
	if tol <= 0 {
		return a == b
	}
	return Distance(a, b) <= tol
}
