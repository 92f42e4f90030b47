package traffic

import (
	"fmt"
	"slices"

	"github.com/samber/lo"

	"roadsim/internal/road"
)

// Inject rolls once per entry gate and, on success, appends a new car
// placed at the gate on the first segment starting there. The input slice
// is never modified in place.
func Inject(cars []Car, entries road.Gates, net *road.Network, rng Rand, p Params, ids *IDs) ([]Car, error) {
	out := slices.Clip(cars)
	for _, gate := range entries {
		if rng.Float64() >= p.InjectionProbability {
			continue
		}
		starts := net.StartingAt(gate)
		if len(starts) == 0 {
			return nil, &InputError{Op: "inject", Subject: fmt.Sprintf("gate %v", gate), Err: ErrGateWithoutSegment}
		}
		speed := p.SpeedMin
		if p.SpeedMax > p.SpeedMin {
			speed += rng.Float64() * (p.SpeedMax - p.SpeedMin)
		}
		out = append(out, Car{
			ID:       ids.Next(),
			Position: gate,
			Speed:    speed,
			Color:    RandomColor(rng),
			Segment:  starts[0],
		})
	}
	return out, nil
}

// Remove drops every car standing on an exit gate. Applying it twice is the
// same as applying it once.
func Remove(cars []Car, exits road.Gates, tol float64) []Car {
	return lo.Reject(cars, func(c Car, _ int) bool {
		return exits.Contains(c.Position, tol)
	})
}
