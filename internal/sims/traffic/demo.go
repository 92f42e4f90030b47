package traffic

import (
	"roadsim/internal/core"
	"roadsim/internal/road"
)

// DemoSegments is a small highway: a main entry that forks into a straight
// lane and a northern detour, a side entry merging from the south, and one
// exit on the east.
var DemoSegments = [][4]float64{
	{0, 100, 100, 100},
	{100, 100, 200, 100},
	{100, 100, 100, 40},
	{100, 40, 200, 40},
	{200, 40, 200, 100},
	{200, 180, 200, 100},
	{200, 100, 300, 100},
}

// NewDemo builds the demo highway with cfg.
func NewDemo(cfg Config, opts ...Option) (*World, error) {
	net, err := road.FromCoords(DemoSegments, cfg.Params.Tolerance)
	if err != nil {
		return nil, err
	}
	return NewWorld(cfg, net, net.Sources(), net.Sinks(), opts...)
}

func init() {
	core.Register("traffic", func(cfg map[string]string) (core.Sim, error) {
		return NewDemo(FromMap(cfg))
	})
}
