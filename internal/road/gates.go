package road

import (
	"github.com/samber/lo"

	"roadsim/internal/geom"
)

// Gates is a set of points where cars enter or leave the network.
type Gates []geom.Point

// Contains reports whether p lies within tol of any gate.
func (g Gates) Contains(p geom.Point, tol float64) bool {
	return lo.ContainsBy(g, func(q geom.Point) bool { return geom.Near(p, q, tol) })
}

// GatesFromCoords converts x,y pairs into gates.
func GatesFromCoords(coords [][2]float64) Gates {
	return lo.Map(coords, func(c [2]float64, _ int) geom.Point { return geom.Pt(c[0], c[1]) })
}
