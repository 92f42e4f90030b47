package render

import (
	"image"
	"image/color"
	"math"
	"testing"

	"roadsim/internal/geom"
	"roadsim/internal/sims/traffic"
)

func TestViewportRoundTrip(t *testing.T) {
	v := NewViewport(geom.Pt(-20, -10), 2)
	x, y := v.ToScreen(geom.Pt(0, 0))
	if x != 40 || y != 20 {
		t.Fatalf("expected (40,20), got (%f,%f)", x, y)
	}
	p := v.ToWorld(int(x), int(y))
	if math.Abs(p.X) > 1e-9 || math.Abs(p.Y) > 1e-9 {
		t.Fatalf("expected origin back, got %v", p)
	}
}

func TestViewportNonPositiveScale(t *testing.T) {
	if v := NewViewport(geom.Point{}, 0); v.Scale != 1 {
		t.Fatalf("expected scale 1, got %f", v.Scale)
	}
}

func TestMarkerRect(t *testing.T) {
	v := NewViewport(geom.Point{}, 1)
	r := v.MarkerRect(traffic.Marker{X: 10, Y: 5})
	if r != image.Rect(8, 3, 12, 7) {
		t.Fatalf("unexpected rect %v", r)
	}
	tiny := NewViewport(geom.Point{}, 0.1).MarkerRect(traffic.Marker{X: 10, Y: 10})
	if tiny.Dx() != 2 || tiny.Dy() != 2 {
		t.Fatalf("marker should stay visible at small scales, got %v", tiny)
	}
}

func TestMarkerBufferCopies(t *testing.T) {
	var b MarkerBuffer
	in := []traffic.Marker{{X: 1, Y: 2, Color: color.RGBA{R: 9, A: 255}}}
	b.UpdateCars(in)
	in[0].X = 99

	got, frames := b.Latest()
	if frames != 1 || len(got) != 1 || got[0].X != 1 {
		t.Fatalf("expected stored copy, got %v after %d frames", got, frames)
	}
}

func TestMarkerBufferIsSink(t *testing.T) {
	var _ traffic.Sink = (*MarkerBuffer)(nil)
}
