package traffic

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"roadsim/internal/core"
	"roadsim/internal/geom"
	"roadsim/internal/road"
)

// Margin is the empty border, in world units, kept around the network.
const Margin = 20

// Stats counts what happened since the last Reset.
type Stats struct {
	Tick     int
	Live     int
	Injected int
	Removed  int
}

// World is a traffic simulation over a fixed road network. Each Step injects
// cars at entry gates, moves every car from the tick-start snapshot and
// removes the cars that reached an exit gate, in that order.
type World struct {
	cfg Config

	net     *road.Network
	entries road.Gates
	exits   road.Gates

	initial []Car
	cars    []Car
	ids     IDs
	stats   Stats

	rng    *core.RNG
	sink   Sink
	logger *log.Logger
}

// Option customizes a World.
type Option func(*World)

// WithLogger routes diagnostics to l.
func WithLogger(l *log.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithSink hands every tick's markers to s.
func WithSink(s Sink) Option {
	return func(w *World) { w.sink = s }
}

// WithCars seeds the world with cars present from the first tick. Cars
// without an ID are numbered.
func WithCars(cars []Car) Option {
	return func(w *World) { w.initial = append([]Car(nil), cars...) }
}

// NewWorld validates the parameters, network and gates and returns a world
// reset to the configured seed.
func NewWorld(cfg Config, net *road.Network, entries, exits road.Gates, opts ...Option) (*World, error) {
	if net == nil || net.Len() == 0 {
		return nil, &InputError{Op: "new world", Subject: "network", Err: ErrEmptyNetwork}
	}
	if err := cfg.Params.Validate(); err != nil {
		return nil, &InputError{Op: "new world", Subject: "params", Err: err}
	}
	w := &World{
		cfg:     cfg,
		net:     net,
		entries: append(road.Gates(nil), entries...),
		exits:   append(road.Gates(nil), exits...),
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(w)
	}

	for _, gate := range w.entries {
		starts := net.StartingAt(gate)
		switch {
		case len(starts) == 0:
			return nil, &InputError{Op: "new world", Subject: fmt.Sprintf("gate %v", gate), Err: ErrGateWithoutSegment}
		case len(starts) > 1:
			w.logger.Warn("entry gate has several outgoing segments, using the first", "gate", gate, "segments", starts)
		}
	}

	var maxID int64
	for _, c := range w.initial {
		maxID = max(maxID, c.ID)
	}
	for i := range w.initial {
		if err := checkCar(net, w.initial[i]); err != nil {
			return nil, &InputError{Op: "new world", Subject: carSubject(w.initial[i]), Err: err}
		}
		if w.initial[i].ID == 0 {
			maxID++
			w.initial[i].ID = maxID
		}
	}

	w.Reset(0)
	return w, nil
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "traffic" }

// Size reports the world extent including the margin.
func (w *World) Size() core.Size {
	minP, maxP := w.net.Bounds()
	return core.Size{
		W: int(math.Ceil(maxP.X-minP.X)) + 2*Margin,
		H: int(math.Ceil(maxP.Y-minP.Y)) + 2*Margin,
	}
}

// Origin returns the world coordinate drawn at the top-left corner.
func (w *World) Origin() geom.Point {
	minP, _ := w.net.Bounds()
	return geom.Pt(minP.X-Margin, minP.Y-Margin)
}

// Reset restores the seeded cars and reseeds the random source. A zero seed
// falls back to the configured one.
func (w *World) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	w.rng = core.NewRNG(effective)
	w.cars = append([]Car(nil), w.initial...)
	w.ids = IDs{}
	for _, c := range w.initial {
		w.ids.last = max(w.ids.last, c.ID)
	}
	w.stats = Stats{Live: len(w.cars)}
}

// Step runs one tick. On error the car list is left as it was.
func (w *World) Step() error {
	p := w.cfg.Params
	before := len(w.cars)

	ids := w.ids
	injected, err := Inject(w.cars, w.entries, w.net, w.rng, p, &ids)
	if err != nil {
		return err
	}
	moved, err := MoveAll(w.net, injected, w.rng, p)
	if err != nil {
		return err
	}
	remaining := Remove(moved, w.exits, p.Tolerance)

	w.cars = remaining
	w.ids = ids
	w.stats.Tick++
	w.stats.Injected += len(injected) - before
	w.stats.Removed += len(moved) - len(remaining)
	w.stats.Live = len(remaining)

	if w.sink != nil {
		w.sink.UpdateCars(Markers(w.cars))
	}
	w.logger.Debug("tick",
		"tick", w.stats.Tick,
		"live", w.stats.Live,
		"injected", len(injected)-before,
		"removed", len(moved)-len(remaining),
	)
	return nil
}

// SetSink replaces the marker receiver. A nil sink disables delivery.
func (w *World) SetSink(s Sink) { w.sink = s }

// Cars returns a copy of the live cars.
func (w *World) Cars() []Car { return append([]Car(nil), w.cars...) }

// Markers returns the renderer view of the live cars.
func (w *World) Markers() []Marker { return Markers(w.cars) }

// Stats returns the counters accumulated since the last Reset.
func (w *World) Stats() Stats { return w.stats }

// Network exposes the road network.
func (w *World) Network() *road.Network { return w.net }

// Entries returns the entry gates.
func (w *World) Entries() road.Gates { return w.entries }

// Exits returns the exit gates.
func (w *World) Exits() road.Gates { return w.exits }

// Config returns the active configuration.
func (w *World) Config() Config { return w.cfg }
