package traffic

import (
	"strconv"

	"roadsim/internal/core"
)

func (w *World) Parameters() core.ParameterSnapshot {
	params := w.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				int64Param("seed", "Seed", w.cfg.Seed),
				intParam("segments", "Segments", w.net.Len()),
				intParam("entry_gates", "Entry gates", len(w.entries)),
				intParam("exit_gates", "Exit gates", len(w.exits)),
			},
		},
		{
			Name: "Traffic",
			Params: []core.Parameter{
				floatParam("injection_probability", "Injection chance", params.InjectionProbability),
				floatParam("speed_min", "Speed min", params.SpeedMin),
				floatParam("speed_max", "Speed max", params.SpeedMax),
				floatParam("brake_factor", "Brake factor", params.BrakeFactor),
			},
		},
		{
			Name: "Engine",
			Params: []core.Parameter{
				floatParam("tolerance", "Gate tolerance", params.Tolerance),
				intParam("workers", "Workers", params.Workers),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

var trafficControls = []core.ParameterControl{
	{Key: "injection_probability", Label: "Injection chance", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
	{Key: "speed_min", Label: "Speed min", Type: core.ParamTypeFloat, Step: 0.5, Min: 0, Max: 100, HasMin: true, HasMax: true},
	{Key: "speed_max", Label: "Speed max", Type: core.ParamTypeFloat, Step: 0.5, Min: 0, Max: 100, HasMin: true, HasMax: true},
	{Key: "brake_factor", Label: "Brake factor", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 0.95, HasMin: true, HasMax: true},
	{Key: "workers", Label: "Workers", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: 64, HasMin: true, HasMax: true},
}

// ParameterControls lists the HUD-adjustable parameters.
func (w *World) ParameterControls() []core.ParameterControl {
	return append([]core.ParameterControl(nil), trafficControls...)
}

// SetFloatParameter updates a floating point parameter, clamping it to the
// control bounds. The speed range stays ordered: raising the minimum past the
// maximum drags the maximum along and vice versa.
func (w *World) SetFloatParameter(key string, value float64) bool {
	ctrl, ok := controlFor(key, core.ParamTypeFloat)
	if !ok {
		return false
	}
	value = ctrl.Clamp(value)
	p := &w.cfg.Params
	switch key {
	case "injection_probability":
		p.InjectionProbability = value
	case "speed_min":
		p.SpeedMin = value
		p.SpeedMax = max(p.SpeedMax, value)
	case "speed_max":
		p.SpeedMax = value
		p.SpeedMin = min(p.SpeedMin, value)
	case "brake_factor":
		p.BrakeFactor = value
	default:
		return false
	}
	return true
}

// SetIntParameter updates an integer parameter.
func (w *World) SetIntParameter(key string, value int) bool {
	ctrl, ok := controlFor(key, core.ParamTypeInt)
	if !ok {
		return false
	}
	switch key {
	case "workers":
		w.cfg.Params.Workers = int(ctrl.Clamp(float64(value)))
	default:
		return false
	}
	return true
}

func controlFor(key string, typ core.ParamType) (core.ParameterControl, bool) {
	for _, ctrl := range trafficControls {
		if ctrl.Key == key && ctrl.Type == typ {
			return ctrl, true
		}
	}
	return core.ParameterControl{}, false
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}
