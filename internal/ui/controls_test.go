package ui

import (
	"testing"

	"roadsim/internal/core"
)

type fakeSetter struct {
	floats map[string]float64
	ints   map[string]int
}

func (f *fakeSetter) SetFloatParameter(key string, v float64) bool {
	f.floats[key] = v
	return true
}

func (f *fakeSetter) SetIntParameter(key string, v int) bool {
	f.ints[key] = v
	return true
}

func snapshot(params ...core.Parameter) core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{Name: "Traffic", Params: params}}}
}

func TestControlStateStepsAndClamps(t *testing.T) {
	ctrl := core.ParameterControl{Key: "p", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true}
	states := newControlStates([]core.ParameterControl{ctrl})
	s := &states[0]
	if s.value != "--" {
		t.Fatalf("expected placeholder before refresh, got %q", s.value)
	}

	s.refresh(snapshot(core.Parameter{Key: "p", Value: "0.98"}))
	if !s.hasValue || s.value != "0.98" {
		t.Fatalf("unexpected state after refresh %+v", s)
	}
	next, changed := s.target(1)
	if !changed || next != 1 {
		t.Fatalf("expected clamp to 1, got %f (changed=%v)", next, changed)
	}

	setter := &fakeSetter{floats: map[string]float64{}, ints: map[string]int{}}
	if !s.apply(1, setter, setter) || setter.floats["p"] != 1 {
		t.Fatalf("expected setter to receive 1, got %v", setter.floats)
	}
	if s.apply(1, setter, setter) {
		t.Fatal("stepping past the maximum should be a no-op")
	}
}

func TestControlStateIntegerStep(t *testing.T) {
	ctrl := core.ParameterControl{Key: "workers", Type: core.ParamTypeInt, Step: 0.2, Min: 0, HasMin: true}
	states := newControlStates([]core.ParameterControl{ctrl})
	s := &states[0]
	s.refresh(snapshot(core.Parameter{Key: "workers", Value: "0"}))

	setter := &fakeSetter{floats: map[string]float64{}, ints: map[string]int{}}
	if s.apply(-1, setter, setter) {
		t.Fatal("cannot step below the minimum")
	}
	if !s.apply(1, setter, setter) || setter.ints["workers"] != 1 || s.value != "1" {
		t.Fatalf("expected workers=1, got %v (%q)", setter.ints, s.value)
	}
}

func TestControlStateMissingParameter(t *testing.T) {
	states := newControlStates([]core.ParameterControl{{Key: "gone", Type: core.ParamTypeFloat}})
	s := &states[0]
	s.refresh(snapshot())
	if s.hasValue {
		t.Fatal("missing parameter should not have a value")
	}
	if _, changed := s.target(1); changed {
		t.Fatal("missing parameter should not be adjustable")
	}
}

func TestStatusLine(t *testing.T) {
	if got := statusLine(3, 2, 5, 3, true); got != "t=3 cars=2 in=5 out=3 paused" {
		t.Fatalf("unexpected status %q", got)
	}
}
