package traffic

import (
	"roadsim/internal/geom"
	"roadsim/internal/road"
)

// Chooser picks an index in [0, n). It is the only source of randomness
// advancement needs.
type Chooser interface {
	IntN(n int) int
}

// Advance moves snapshot[idx] by up to its speed along the network and
// returns the resulting car. Other cars are read from snapshot as they were
// at the start of the tick; snapshot itself is not modified.
func Advance(net *road.Network, snapshot []Car, idx int, rng Chooser, p Params) (Car, error) {
	if idx < 0 || idx >= len(snapshot) {
		return Car{}, &InputError{Op: "advance", Subject: "index", Err: ErrCarIndex}
	}
	car := snapshot[idx]
	if err := checkCar(net, car); err != nil {
		return Car{}, &InputError{Op: "advance", Subject: carSubject(car), Err: err}
	}

	budget := car.Speed
	cur := car.Position
	segID := car.Segment
	for budget > 0 {
		seg, _ := net.Segment(segID)
		distToEnd := geom.Distance(cur, seg.End)

		if ahead, ok := nextCar(snapshot, idx, segID, cur, seg.Direction()); ok {
			if gap := geom.Distance(cur, ahead); gap < budget {
				car.Position = cur.Lerp(ahead, p.BrakeFactor)
				car.Segment = segID
				return car, nil
			}
		}

		if distToEnd > budget {
			car.Position = cur.Lerp(seg.End, budget/distToEnd)
			car.Segment = segID
			return car, nil
		}

		budget -= distToEnd
		cur = seg.End
		outs := net.Outgoing(segID)
		if len(outs) == 0 {
			break
		}
		segID = outs[rng.IntN(len(outs))]
	}
	car.Position = cur
	car.Segment = segID
	return car, nil
}

// nextCar returns the position of the closest car strictly ahead of pos on
// segment seg, measured along dir.
func nextCar(snapshot []Car, self int, seg road.SegmentID, pos geom.Point, dir geom.Vec) (geom.Point, bool) {
	var (
		best  geom.Point
		bestT float64
		found bool
	)
	for j, other := range snapshot {
		if j == self || other.Segment != seg {
			continue
		}
		t := other.Position.Sub(pos).Dot(dir)
		if t <= 0 {
			continue
		}
		if !found || t < bestT {
			best, bestT, found = other.Position, t, true
		}
	}
	return best, found
}
