package traffic

import (
	"errors"
	"fmt"
	"image/color"

	"roadsim/internal/geom"
	"roadsim/internal/road"
)

// Car is one vehicle on the network. Cars are values: a tick produces a new
// Car that replaces the old one.
type Car struct {
	ID       int64
	Position geom.Point
	Speed    float64 // distance per tick
	Color    color.RGBA
	Segment  road.SegmentID
}

// IDs hands out increasing car identifiers.
type IDs struct {
	last int64
}

// Next returns a fresh identifier.
func (g *IDs) Next() int64 {
	g.last++
	return g.last
}

var (
	// ErrInvalidInput matches every precondition failure reported by this package.
	ErrInvalidInput = errors.New("traffic: invalid input")

	ErrUnknownSegment     = errors.New("segment not in network")
	ErrInvalidSpeed       = errors.New("speed must be finite and non-negative")
	ErrCarIndex           = errors.New("car index out of range")
	ErrGateWithoutSegment = errors.New("no segment starts at gate")
	ErrEmptyNetwork       = errors.New("network has no segments")
	ErrInvalidParams      = errors.New("parameter out of range")
)

// InputError reports a precondition violation for a single car or gate.
type InputError struct {
	Op      string
	Subject string
	Err     error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("traffic: %s %s: %v", e.Op, e.Subject, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// Is reports true for ErrInvalidInput so callers can test the class of error.
func (e *InputError) Is(target error) bool { return target == ErrInvalidInput }

func carSubject(c Car) string { return fmt.Sprintf("car %d", c.ID) }

func checkCar(net *road.Network, c Car) error {
	if !(c.Speed >= 0) || c.Speed > maxSpeed {
		return ErrInvalidSpeed
	}
	if !net.Contains(c.Segment) {
		return ErrUnknownSegment
	}
	return nil
}

// maxSpeed keeps the movement budget finite on cyclic networks.
const maxSpeed = 1e12
