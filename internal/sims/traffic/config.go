package traffic

import (
	"fmt"
	"math"
	"strconv"

	"roadsim/internal/geom"
)

// Params holds the tunable constants of the traffic model.
type Params struct {
	InjectionProbability float64
	SpeedMin             float64
	SpeedMax             float64
	// BrakeFactor is the share of the gap to the car ahead a blocked car
	// closes before stopping.
	BrakeFactor float64
	// Tolerance bounds gate and junction matching distances.
	Tolerance float64
	// Workers limits concurrent per-car advancement. Zero uses GOMAXPROCS.
	Workers int
}

// Config controls the traffic simulation.
type Config struct {
	Seed int64

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Seed: 1337,
		Params: Params{
			InjectionProbability: 0.1,
			SpeedMin:             5,
			SpeedMax:             15,
			BrakeFactor:          0.9,
			Tolerance:            geom.DefaultTolerance,
			Workers:              0,
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["injection_probability"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Params.InjectionProbability = parsed
		}
	}
	if v, ok := cfg["speed_min"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.SpeedMin = parsed
		}
	}
	if v, ok := cfg["speed_max"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.SpeedMax = parsed
		}
	}
	if v, ok := cfg["brake_factor"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed < 1 {
			c.Params.BrakeFactor = parsed
		}
	}
	if v, ok := cfg["tolerance"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.Tolerance = parsed
		}
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.Workers = parsed
		}
	}
	c.Params.normalize()
	return c
}

func (p *Params) normalize() {
	if p.SpeedMax < p.SpeedMin {
		p.SpeedMax = p.SpeedMin
	}
	if p.InjectionProbability < 0 {
		p.InjectionProbability = 0
	}
	if p.InjectionProbability > 1 {
		p.InjectionProbability = 1
	}
}

// Validate reports the first parameter outside its allowed range. The brake
// factor must lie in [0, 1) so a braking car stops short of the car ahead,
// and the speed range must satisfy 0 <= SpeedMin <= SpeedMax.
func (p Params) Validate() error {
	switch {
	case !(p.InjectionProbability >= 0 && p.InjectionProbability <= 1):
		return fmt.Errorf("%w: injection probability %g outside [0, 1]", ErrInvalidParams, p.InjectionProbability)
	case !(p.BrakeFactor >= 0 && p.BrakeFactor < 1):
		return fmt.Errorf("%w: brake factor %g outside [0, 1)", ErrInvalidParams, p.BrakeFactor)
	case !(p.SpeedMin >= 0) || p.SpeedMax > maxSpeed || math.IsNaN(p.SpeedMax):
		return fmt.Errorf("%w: speed range [%g, %g] not finite and non-negative", ErrInvalidParams, p.SpeedMin, p.SpeedMax)
	case p.SpeedMax < p.SpeedMin:
		return fmt.Errorf("%w: speed max %g below min %g", ErrInvalidParams, p.SpeedMax, p.SpeedMin)
	case !(p.Tolerance >= 0) || math.IsInf(p.Tolerance, 1):
		return fmt.Errorf("%w: tolerance %g not finite and non-negative", ErrInvalidParams, p.Tolerance)
	}
	return nil
}
