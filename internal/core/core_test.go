package core

import (
	"slices"
	"testing"
	"time"
)

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(7)
	b := NewRNG(7)
	for i := 0; i < 16; i++ {
		if x, y := a.Float64(), b.Float64(); x != y {
			t.Fatalf("draw %d differs: %f vs %f", i, x, y)
		}
	}
}

func TestRNGDeriveIsReproducible(t *testing.T) {
	draw := func(seed int64) []int {
		parent := NewRNG(seed)
		var out []int
		for i := 0; i < 4; i++ {
			child := parent.Derive()
			out = append(out, child.IntN(1000), child.IntN(1000))
		}
		return out
	}
	if !slices.Equal(draw(3), draw(3)) {
		t.Fatal("children derived from equal seeds must match")
	}
	if slices.Equal(draw(3), draw(4)) {
		t.Fatal("children derived from different seeds should differ")
	}
}

func TestRNGBounds(t *testing.T) {
	r := NewRNG(1)
	if r.IntN(0) != 0 || r.IntN(-3) != 0 {
		t.Fatal("IntN must return 0 for empty ranges")
	}
	if got := r.Uniform(5, 5); got != 5 {
		t.Fatalf("expected empty uniform range to return lo, got %f", got)
	}
	for i := 0; i < 100; i++ {
		if v := r.Uniform(5, 15); v < 5 || v >= 15 {
			t.Fatalf("uniform draw %f outside [5,15)", v)
		}
	}
}

func TestFixedStepAccumulates(t *testing.T) {
	clock := time.Unix(0, 0)
	fs := NewFixedStep(10)
	fs.now = func() time.Time { return clock }

	if !fs.ShouldStep() {
		t.Fatal("expected first call to step immediately")
	}
	clock = clock.Add(50 * time.Millisecond)
	if fs.ShouldStep() {
		t.Fatal("expected no step before the interval elapses")
	}
	clock = clock.Add(60 * time.Millisecond)
	if !fs.ShouldStep() {
		t.Fatal("expected a step once the interval elapsed")
	}
	if fs.TPS() != 10 {
		t.Fatalf("expected TPS 10, got %d", fs.TPS())
	}
}

func TestFixedStepCapsTickRate(t *testing.T) {
	fs := NewFixedStep(60)
	for i := 0; i < 40; i++ {
		fs.SetTPS(fs.TPS() * 2)
	}
	if fs.TPS() != MaxTPS {
		t.Fatalf("expected tick rate capped at %d, got %d", MaxTPS, fs.TPS())
	}
	fs.SetTPS(0)
	if fs.TPS() != 60 {
		t.Fatalf("expected non-positive rate to fall back to 60, got %d", fs.TPS())
	}
}

func TestRegistry(t *testing.T) {
	Register("", nil)
	if _, err := New("does-not-exist", nil); err == nil {
		t.Fatal("expected unknown sim error")
	}
}

func TestSnapshotLookupAndClamp(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{{
		Name:   "Traffic",
		Params: []Parameter{{Key: "speed_min", Type: ParamTypeFloat, Value: "5"}},
	}}}
	if p, ok := snap.Lookup("speed_min"); !ok || p.Value != "5" {
		t.Fatalf("expected speed_min lookup, got %+v %v", p, ok)
	}
	if _, ok := snap.Lookup("missing"); ok {
		t.Fatal("expected missing key lookup to fail")
	}
	ctrl := ParameterControl{Min: 0, Max: 1, HasMin: true, HasMax: true}
	if ctrl.Clamp(1.5) != 1 || ctrl.Clamp(-1) != 0 || ctrl.Clamp(0.3) != 0.3 {
		t.Fatal("clamp must limit to bounds")
	}
}
