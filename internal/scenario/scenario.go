// Package scenario loads road networks, gates and seeded cars from disk and
// assembles them into a traffic world.
package scenario

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"roadsim/internal/core"
	"roadsim/internal/geom"
	"roadsim/internal/road"
	"roadsim/internal/sims/traffic"
)

// ErrCarOffNetwork is returned when a seeded car does not lie on any segment.
var ErrCarOffNetwork = errors.New("scenario: car is not on any segment")

// CarSeed places a car at the start of the simulation. A zero speed is
// replaced by a draw from the configured speed range.
type CarSeed struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Speed float64 `yaml:"speed,omitempty"`
}

// Overrides replaces individual traffic parameters when set.
type Overrides struct {
	Seed                 *int64   `yaml:"seed,omitempty"`
	InjectionProbability *float64 `yaml:"injection_probability,omitempty"`
	SpeedMin             *float64 `yaml:"speed_min,omitempty"`
	SpeedMax             *float64 `yaml:"speed_max,omitempty"`
	BrakeFactor          *float64 `yaml:"brake_factor,omitempty"`
	Tolerance            *float64 `yaml:"tolerance,omitempty"`
	Workers              *int     `yaml:"workers,omitempty"`
}

// Scenario is a complete simulation input.
type Scenario struct {
	Name     string       `yaml:"name"`
	Segments [][4]float64 `yaml:"segments"`
	Entry    [][2]float64 `yaml:"entry,omitempty"`
	Exit     [][2]float64 `yaml:"exit,omitempty"`
	Cars     []CarSeed    `yaml:"cars,omitempty"`
	Params   Overrides    `yaml:"params,omitempty"`
}

// Decode reads a YAML scenario.
func Decode(r io.Reader) (Scenario, error) {
	var s Scenario
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return Scenario{}, fmt.Errorf("scenario: decode: %w", err)
	}
	return s, nil
}

// Load reads the YAML scenario at path.
func Load(path string) (Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return Scenario{}, err
	}
	defer f.Close()
	s, err := Decode(f)
	if err != nil {
		return Scenario{}, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = path
	}
	return s, nil
}

// Encode writes s as YAML.
func Encode(w io.Writer, s Scenario) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}

// FromFiles builds a scenario from the line-based formats: a segments file
// of x1,y1,x2,y2 lines and an optional cars file of x,y lines. Gates are
// derived from the network: entries where no segment leads in, exits where
// no segment leads out. Skipped lines are returned alongside.
func FromFiles(segmentsPath, carsPath string, tol float64) (Scenario, []road.LineError, error) {
	segs, skipped, err := road.LoadSegmentsFile(segmentsPath)
	if err != nil {
		return Scenario{}, nil, err
	}
	if len(segs) == 0 {
		return Scenario{}, skipped, fmt.Errorf("%s: %w", segmentsPath, traffic.ErrEmptyNetwork)
	}
	net := road.NewNetwork(segs, tol)
	s := Scenario{
		Name: segmentsPath,
		Segments: lo.Map(segs, func(seg geom.Segment, _ int) [4]float64 {
			return [4]float64{seg.Start.X, seg.Start.Y, seg.End.X, seg.End.Y}
		}),
		Entry: pointsToCoords(net.Sources()),
		Exit:  pointsToCoords(net.Sinks()),
	}
	if carsPath != "" {
		pts, carSkipped, err := road.LoadPointsFile(carsPath)
		if err != nil {
			return Scenario{}, skipped, err
		}
		skipped = append(skipped, carSkipped...)
		s.Cars = lo.Map(pts, func(p geom.Point, _ int) CarSeed { return CarSeed{X: p.X, Y: p.Y} })
	}
	return s, skipped, nil
}

// Config applies the scenario overrides on top of base.
func (s Scenario) Config(base traffic.Config) traffic.Config {
	c := base
	o := s.Params
	if o.Seed != nil {
		c.Seed = *o.Seed
	}
	if o.InjectionProbability != nil {
		c.Params.InjectionProbability = *o.InjectionProbability
	}
	if o.SpeedMin != nil {
		c.Params.SpeedMin = *o.SpeedMin
	}
	if o.SpeedMax != nil {
		c.Params.SpeedMax = *o.SpeedMax
	}
	if o.BrakeFactor != nil {
		c.Params.BrakeFactor = *o.BrakeFactor
	}
	if o.Tolerance != nil {
		c.Params.Tolerance = *o.Tolerance
	}
	if o.Workers != nil {
		c.Params.Workers = *o.Workers
	}
	return c
}

// Build assembles a world from the scenario. Seeded cars are located on the
// network and given a speed drawn from the configured range when none is
// set. Missing gate lists fall back to the network's sources and sinks.
func (s Scenario) Build(base traffic.Config, opts ...traffic.Option) (*traffic.World, error) {
	cfg := s.Config(base)
	net, err := road.FromCoords(s.Segments, cfg.Params.Tolerance)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}

	entries := road.GatesFromCoords(s.Entry)
	if len(s.Entry) == 0 {
		entries = net.Sources()
	}
	exits := road.GatesFromCoords(s.Exit)
	if len(s.Exit) == 0 {
		exits = net.Sinks()
	}

	seedRNG := core.NewRNG(cfg.Seed)
	cars := make([]traffic.Car, 0, len(s.Cars))
	for i, seed := range s.Cars {
		pos := geom.Pt(seed.X, seed.Y)
		id, ok := net.Locate(pos)
		if !ok {
			return nil, fmt.Errorf("scenario %s: car %d at %v: %w", s.Name, i, pos, ErrCarOffNetwork)
		}
		speed := seed.Speed
		if speed == 0 {
			speed = seedRNG.Uniform(cfg.Params.SpeedMin, cfg.Params.SpeedMax)
		}
		cars = append(cars, traffic.Car{
			ID:       int64(i + 1),
			Position: pos,
			Speed:    speed,
			Color:    traffic.RandomColor(seedRNG),
			Segment:  id,
		})
	}

	opts = append([]traffic.Option{traffic.WithCars(cars)}, opts...)
	return traffic.NewWorld(cfg, net, entries, exits, opts...)
}

func pointsToCoords(pts []geom.Point) [][2]float64 {
	return lo.Map(pts, func(p geom.Point, _ int) [2]float64 { return [2]float64{p.X, p.Y} })
}
