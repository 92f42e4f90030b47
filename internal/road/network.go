// Package road holds the immutable directed road network the traffic
// simulation drives on.
package road

import (
	"fmt"

	"github.com/samber/lo"

	"roadsim/internal/geom"
)

// SegmentID indexes a segment inside a Network.
type SegmentID int

// Network is an ordered set of directed segments with a precomputed junction
// index. It is never mutated after construction.
type Network struct {
	segments []geom.Segment
	outgoing [][]SegmentID
	incoming [][]SegmentID
	tol      float64
}

// NewNetwork indexes segs. Two segments are joined when the end of one lies
// within tol of the start of the other.
func NewNetwork(segs []geom.Segment, tol float64) *Network {
	n := &Network{
		segments: append([]geom.Segment(nil), segs...),
		outgoing: make([][]SegmentID, len(segs)),
		incoming: make([][]SegmentID, len(segs)),
		tol:      tol,
	}
	for i, s := range n.segments {
		n.outgoing[i] = n.StartingAt(s.End)
	}
	for i, succ := range n.outgoing {
		for _, j := range succ {
			n.incoming[j] = append(n.incoming[j], SegmentID(i))
		}
	}
	return n
}

// FromCoords builds a network from x1,y1,x2,y2 quadruples.
func FromCoords(coords [][4]float64, tol float64) (*Network, error) {
	segs := make([]geom.Segment, 0, len(coords))
	for i, c := range coords {
		s, err := geom.NewSegment(geom.Pt(c[0], c[1]), geom.Pt(c[2], c[3]))
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		segs = append(segs, s)
	}
	return NewNetwork(segs, tol), nil
}

// Len returns the number of segments.
func (n *Network) Len() int { return len(n.segments) }

// Contains reports whether id names a segment of n.
func (n *Network) Contains(id SegmentID) bool {
	return id >= 0 && int(id) < len(n.segments)
}

// Segment returns the segment with the given id.
func (n *Network) Segment(id SegmentID) (geom.Segment, bool) {
	if !n.Contains(id) {
		return geom.Segment{}, false
	}
	return n.segments[id], true
}

// Segments returns a copy of all segments in network order.
func (n *Network) Segments() []geom.Segment {
	return append([]geom.Segment(nil), n.segments...)
}

// Outgoing returns the segments that continue from the end of id.
func (n *Network) Outgoing(id SegmentID) []SegmentID {
	if !n.Contains(id) {
		return nil
	}
	return n.outgoing[id]
}

// Incoming returns the segments that lead into the start of id.
func (n *Network) Incoming(id SegmentID) []SegmentID {
	if !n.Contains(id) {
		return nil
	}
	return n.incoming[id]
}

// StartingAt returns every segment whose start lies at p.
func (n *Network) StartingAt(p geom.Point) []SegmentID {
	ids := lo.Filter(lo.Range(len(n.segments)), func(i int, _ int) bool {
		return geom.Near(n.segments[i].Start, p, n.tol)
	})
	return lo.Map(ids, func(i int, _ int) SegmentID { return SegmentID(i) })
}

// Locate returns the first segment that p lies on.
func (n *Network) Locate(p geom.Point) (SegmentID, bool) {
	for i, s := range n.segments {
		if geom.OnSegment(p, s, n.tol) {
			return SegmentID(i), true
		}
	}
	return 0, false
}

// Sources returns the start points of segments nothing leads into.
func (n *Network) Sources() []geom.Point {
	var pts []geom.Point
	for i, s := range n.segments {
		if len(n.incoming[i]) == 0 {
			pts = appendUnique(pts, s.Start, n.tol)
		}
	}
	return pts
}

// Sinks returns the end points of segments that lead nowhere.
func (n *Network) Sinks() []geom.Point {
	var pts []geom.Point
	for i, s := range n.segments {
		if len(n.outgoing[i]) == 0 {
			pts = appendUnique(pts, s.End, n.tol)
		}
	}
	return pts
}

// Bounds returns the corners of the axis-aligned box enclosing every segment.
func (n *Network) Bounds() (geom.Point, geom.Point) {
	if len(n.segments) == 0 {
		return geom.Point{}, geom.Point{}
	}
	minP, maxP := n.segments[0].Start, n.segments[0].Start
	for _, s := range n.segments {
		for _, p := range [2]geom.Point{s.Start, s.End} {
			minP.X, minP.Y = min(minP.X, p.X), min(minP.Y, p.Y)
			maxP.X, maxP.Y = max(maxP.X, p.X), max(maxP.Y, p.Y)
		}
	}
	return minP, maxP
}

func appendUnique(pts []geom.Point, p geom.Point, tol float64) []geom.Point {
	if lo.ContainsBy(pts, func(q geom.Point) bool { return geom.Near(p, q, tol) }) {
		return pts
	}
	return append(pts, p)
}
