package traffic

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"roadsim/internal/core"
	"roadsim/internal/road"
)

// Rand is the random source a tick consumes: route choices, injection rolls
// and per-car stream derivation.
type Rand interface {
	Chooser
	Float64() float64
	Derive() *core.RNG
}

// MoveAll advances every car of snapshot concurrently and returns the new
// states in snapshot order. Each car only sees the tick-start snapshot, so
// the result does not depend on evaluation order or on p.Workers. Every car
// gets its own route-choice stream derived from rng in snapshot order before
// any work starts.
func MoveAll(net *road.Network, snapshot []Car, rng Rand, p Params) ([]Car, error) {
	for _, c := range snapshot {
		if err := checkCar(net, c); err != nil {
			return nil, &InputError{Op: "move", Subject: carSubject(c), Err: err}
		}
	}

	streams := make([]Chooser, len(snapshot))
	for i := range streams {
		streams[i] = rng.Derive()
	}

	workers := p.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	next := make([]Car, len(snapshot))
	var g errgroup.Group
	g.SetLimit(workers)
	for i := range snapshot {
		g.Go(func() error {
			c, err := Advance(net, snapshot, i, streams[i], p)
			if err != nil {
				return err
			}
			next[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return next, nil
}
