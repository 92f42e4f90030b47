package geom

import (
	"errors"
	"math"
)

const (
	// CollinearTolerance bounds the cross product under which a candidate is
	// considered to lie on a ray.
	CollinearTolerance = 1e-8
	// UnitTolerance bounds how far a direction's norm may stray from one.
	UnitTolerance = 1e-6
)

// ErrNotUnitVector is returned when a direction argument is not normalized.
var ErrNotUnitVector = errors.New("geom: direction is not a unit vector")

// ProjectPointToSegment returns the shortest vector from p to s and its
// length. When p projects inside the segment the vector is perpendicular to
// it; otherwise it points at the nearer endpoint.
func ProjectPointToSegment(p Point, s Segment) (Vec, float64) {
	ab := s.End.Sub(s.Start)
	ap := p.Sub(s.Start)
	lambda := ap.Dot(ab) / ab.Dot(ab)
	if lambda >= 0 && lambda <= 1 {
		n := s.dir.Perp()
		v := n.Scale(s.Start.Sub(p).Dot(n))
		return v, v.Len()
	}
	toStart := s.Start.Sub(p)
	toEnd := s.End.Sub(p)
	if toStart.Dot(toStart) < toEnd.Dot(toEnd) {
		return toStart, toStart.Len()
	}
	return toEnd, toEnd.Len()
}

// OnSegment reports whether p lies within tol of s.
func OnSegment(p Point, s Segment, tol float64) bool {
	_, d := ProjectPointToSegment(p, s)
	return d <= tol
}

// NearestAlongDirection walks from origin along dir and returns the first
// candidate lying on that ray, or the point maxDist away when no candidate
// is closer. Candidates behind origin or off the ray are ignored.
func NearestAlongDirection(origin Point, dir Vec, maxDist float64, candidates []Point) (Point, error) {
	if math.Abs(dir.Len()-1) > UnitTolerance {
		return Point{}, ErrNotUnitVector
	}
	best := maxDist
	for _, c := range candidates {
		d := c.Sub(origin)
		if math.Abs(d.Cross(dir)) > CollinearTolerance {
			continue
		}
		if l := d.Dot(dir); l >= 0 && l < best {
			best = l
		}
	}
	return origin.Add(dir.Scale(best)), nil
}
