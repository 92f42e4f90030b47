package geom

import (
	"errors"
	"math"
	"testing"
)

func near(a, b Point) bool { return Distance(a, b) < 1e-9 }

func TestDistance(t *testing.T) {
	if got := Distance(Pt(2, 4), Pt(22, 4)); got != 20 {
		t.Fatalf("expected distance 20, got %f", got)
	}
	if got := Distance(Pt(0, 0), Pt(3, 4)); got != 5 {
		t.Fatalf("expected distance 5, got %f", got)
	}
}

func TestNewSegmentDirection(t *testing.T) {
	s, err := NewSegment(Pt(-20, 3), Pt(40, 3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d := s.Direction(); d != (Vec{X: 1, Y: 0}) {
		t.Fatalf("expected direction (1,0), got %v", d)
	}
	if s.Length() != 60 {
		t.Fatalf("expected length 60, got %f", s.Length())
	}
}

func TestNewSegmentRejectsDegenerate(t *testing.T) {
	_, err := NewSegment(Pt(1, 1), Pt(1, 1))
	if !errors.Is(err, ErrDegenerateSegment) {
		t.Fatalf("expected ErrDegenerateSegment, got %v", err)
	}
	_, err = NewSegment(Pt(0, 0), Pt(math.NaN(), 0))
	if !errors.Is(err, ErrDegenerateSegment) {
		t.Fatalf("expected NaN endpoint to be rejected, got %v", err)
	}
}

func TestProjectPointToSegmentInterior(t *testing.T) {
	s := MustSegment(-20, 3, 40, 3)
	v, d := ProjectPointToSegment(Pt(2, 4), s)
	if v != (Vec{X: 0, Y: -1}) {
		t.Fatalf("expected vector (0,-1), got %v", v)
	}
	if d != 1 {
		t.Fatalf("expected distance 1, got %f", d)
	}
}

func TestProjectPointToSegmentBeyondEnds(t *testing.T) {
	s := MustSegment(0, 0, 10, 0)

	v, d := ProjectPointToSegment(Pt(-3, 4), s)
	if v != (Vec{X: 3, Y: -4}) || d != 5 {
		t.Fatalf("expected vector to start (3,-4) len 5, got %v len %f", v, d)
	}

	v, d = ProjectPointToSegment(Pt(13, -4), s)
	if v != (Vec{X: -3, Y: 4}) || d != 5 {
		t.Fatalf("expected vector to end (-3,4) len 5, got %v len %f", v, d)
	}
}

func TestOnSegment(t *testing.T) {
	s := MustSegment(0, 0, 0, 10)
	if !OnSegment(Pt(0, 4), s, 1e-9) {
		t.Fatal("expected interior point to lie on segment")
	}
	if OnSegment(Pt(0.5, 4), s, 1e-9) {
		t.Fatal("expected offset point to lie off segment")
	}
	if OnSegment(Pt(0, 11), s, 1e-9) {
		t.Fatal("expected point past the end to lie off segment")
	}
}

func TestNearestAlongDirection(t *testing.T) {
	s := MustSegment(2, 3, 2.8547875152217292, 6.9076000695850475)
	dir := s.Direction()
	origin := Pt(2, 3)
	points := []Point{
		Pt(2.4273937576108646, 4.953800034792524),
		Pt(2.6410906364162967, 5.930700052188785),
		Pt(2.2, 3),
		Pt(1.7863031211945677, 2.023099982603738),
	}

	cases := []struct {
		from   Point
		maxDst float64
		want   Point
	}{
		{origin, 2.5, points[0]},
		{origin, 1.5, Pt(2.3205453182081484, 4.465350026094392)},
		{origin, 0.1, Pt(2.021369687880543, 3.0976900017396263)},
		{origin, 0, origin},
		{points[0], 3.0, points[0]},
	}
	for _, tc := range cases {
		got, err := NearestAlongDirection(tc.from, dir, tc.maxDst, points)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !near(got, tc.want) {
			t.Fatalf("from %v max %.2f: expected %v, got %v", tc.from, tc.maxDst, tc.want, got)
		}
	}
}

func TestNearestAlongDirectionRequiresUnit(t *testing.T) {
	_, err := NearestAlongDirection(Pt(0, 0), Vec{X: 2, Y: 0}, 1, nil)
	if !errors.Is(err, ErrNotUnitVector) {
		t.Fatalf("expected ErrNotUnitVector, got %v", err)
	}
}

func TestShapeDistances(t *testing.T) {
	p := PointShape(Pt(2, 4))
	s := SegmentShape(MustSegment(-20, 3, 40, 3))

	if d, err := MinDistance(p, s); err != nil || d != 1 {
		t.Fatalf("point to segment: expected 1, got %f (%v)", d, err)
	}
	if d, err := MinDistance(s, p); err != nil || d != 1 {
		t.Fatalf("segment to point: expected 1, got %f (%v)", d, err)
	}
	if d, err := MinDistance(p, PointShape(Pt(22, 4))); err != nil || d != 20 {
		t.Fatalf("point to point: expected 20, got %f (%v)", d, err)
	}

	v, err := ShortestPath(s, p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != (Vec{X: 0, Y: 1}) {
		t.Fatalf("expected segment-to-point vector (0,1), got %v", v)
	}

	if _, err := MinDistance(s, s); !errors.Is(err, ErrUnsupportedShapes) {
		t.Fatalf("expected ErrUnsupportedShapes, got %v", err)
	}
}

func TestNear(t *testing.T) {
	if !Near(Pt(1, 1), Pt(1+1e-8, 1), DefaultTolerance) {
		t.Fatal("expected points within tolerance to match")
	}
	if Near(Pt(1, 1), Pt(1.1, 1), DefaultTolerance) {
		t.Fatal("expected distant points not to match")
	}
	if Near(Pt(1, 1), Pt(1+1e-8, 1), 0) {
		t.Fatal("expected zero tolerance to require exact equality")
	}
}
