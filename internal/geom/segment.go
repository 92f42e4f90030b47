package geom

import (
	"errors"
	"fmt"
	"math"
)

// MinSegmentLength is the shortest segment NewSegment accepts.
const MinSegmentLength = 1e-9

var (
	// ErrDegenerateSegment is returned for segments whose endpoints coincide.
	ErrDegenerateSegment = errors.New("geom: degenerate segment")
	// ErrDegenerateDirection is returned when a direction cannot be normalized.
	ErrDegenerateDirection = errors.New("geom: degenerate direction vector")
)

// Segment is a directed straight piece of road from Start to End.
type Segment struct {
	Start, End Point

	dir    Vec
	length float64
}

// NewSegment builds a segment and derives its unit direction.
func NewSegment(start, end Point) (Segment, error) {
	d := end.Sub(start)
	l := d.Len()
	if l < MinSegmentLength || math.IsNaN(l) || math.IsInf(l, 0) {
		return Segment{}, fmt.Errorf("%w: %v -> %v", ErrDegenerateSegment, start, end)
	}
	return Segment{Start: start, End: end, dir: d.Scale(1 / l), length: l}, nil
}

// MustSegment is NewSegment for literals known to be valid.
func MustSegment(x1, y1, x2, y2 float64) Segment {
	s, err := NewSegment(Pt(x1, y1), Pt(x2, y2))
	if err != nil {
		panic(err)
	}
	return s
}

// Direction returns the unit vector from Start to End.
func (s Segment) Direction() Vec { return s.dir }

// Length returns the distance from Start to End.
func (s Segment) Length() float64 { return s.length }

func (s Segment) String() string {
	return fmt.Sprintf("segment: %g %g -> %g %g", s.Start.X, s.Start.Y, s.End.X, s.End.Y)
}
