package geom

import (
	"errors"
	"fmt"
)

// ShapeKind tags the variant held by a Shape.
type ShapeKind uint8

const (
	KindPoint ShapeKind = iota
	KindSegment
)

func (k ShapeKind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindSegment:
		return "segment"
	default:
		return fmt.Sprintf("ShapeKind(%d)", uint8(k))
	}
}

// ErrUnsupportedShapes is returned for shape pairs without a distance rule.
var ErrUnsupportedShapes = errors.New("geom: unsupported shape pair")

// Shape holds either a Point or a Segment.
type Shape struct {
	kind ShapeKind
	pt   Point
	seg  Segment
}

// PointShape wraps p.
func PointShape(p Point) Shape { return Shape{kind: KindPoint, pt: p} }

// SegmentShape wraps s.
func SegmentShape(s Segment) Shape { return Shape{kind: KindSegment, seg: s} }

// ShortestPath returns the minimal vector leading from one shape to the other.
func ShortestPath(from, to Shape) (Vec, error) {
	switch {
	case from.kind == KindPoint && to.kind == KindPoint:
		return to.pt.Sub(from.pt), nil
	case from.kind == KindPoint && to.kind == KindSegment:
		v, _ := ProjectPointToSegment(from.pt, to.seg)
		return v, nil
	case from.kind == KindSegment && to.kind == KindPoint:
		v, _ := ProjectPointToSegment(to.pt, from.seg)
		return v.Scale(-1), nil
	default:
		return Vec{}, fmt.Errorf("%w: %v to %v", ErrUnsupportedShapes, from.kind, to.kind)
	}
}

// MinDistance returns the minimal distance separating a and b.
func MinDistance(a, b Shape) (float64, error) {
	v, err := ShortestPath(a, b)
	if err != nil {
		return 0, err
	}
	return v.Len(), nil
}
