package ui

import (
	"fmt"
	"math"
	"strconv"

	"roadsim/internal/core"
)

// controlState mirrors one adjustable parameter shown on the HUD.
type controlState struct {
	control  core.ParameterControl
	value    string
	number   float64
	hasValue bool
}

func newControlStates(controls []core.ParameterControl) []controlState {
	states := make([]controlState, len(controls))
	for i, ctrl := range controls {
		states[i] = controlState{control: ctrl, value: "--"}
	}
	return states
}

// refresh reads the control's current value out of snap.
func (s *controlState) refresh(snap core.ParameterSnapshot) {
	s.hasValue = false
	s.value = "--"
	param, ok := snap.Lookup(s.control.Key)
	if !ok {
		return
	}
	v, err := strconv.ParseFloat(param.Value, 64)
	if err != nil {
		return
	}
	s.number = v
	s.hasValue = true
	s.value = formatValue(s.control, v)
}

// target returns the value one step away in direction, clamped to the
// control's bounds, and whether it differs from the current value.
func (s *controlState) target(direction int) (float64, bool) {
	if !s.hasValue || direction == 0 {
		return s.number, false
	}
	step := s.control.Step
	switch s.control.Type {
	case core.ParamTypeInt:
		step = math.Max(1, math.Round(step))
	case core.ParamTypeFloat:
		if step <= 0 {
			step = 0.05
		}
	default:
		return s.number, false
	}
	next := s.control.Clamp(s.number + float64(direction)*step)
	return next, math.Abs(next-s.number) >= 1e-9
}

// apply pushes a step through whichever setter matches the control type.
func (s *controlState) apply(direction int, ints core.IntParameterSetter, floats core.FloatParameterSetter) bool {
	next, changed := s.target(direction)
	if !changed {
		return false
	}
	var ok bool
	switch s.control.Type {
	case core.ParamTypeInt:
		ok = ints != nil && ints.SetIntParameter(s.control.Key, int(math.Round(next)))
	case core.ParamTypeFloat:
		ok = floats != nil && floats.SetFloatParameter(s.control.Key, next)
	}
	if ok {
		s.number = next
		s.value = formatValue(s.control, next)
	}
	return ok
}

func formatValue(ctrl core.ParameterControl, v float64) string {
	if ctrl.Type == core.ParamTypeInt {
		return strconv.Itoa(int(math.Round(v)))
	}
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}

// statusLine summarises the running world for the HUD footer.
func statusLine(tick, live, injected, removed int, paused bool) string {
	state := "running"
	if paused {
		state = "paused"
	}
	return fmt.Sprintf("t=%d cars=%d in=%d out=%d %s", tick, live, injected, removed, state)
}
