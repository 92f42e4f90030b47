//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"roadsim/internal/geom"
	"roadsim/internal/road"
	"roadsim/internal/sims/traffic"
)

const (
	roadWidth = 2
	gateSize  = 3
)

// RoadPainter draws a network once into a cached image and overlays car
// markers on every frame.
type RoadPainter struct {
	net   *road.Network
	view  Viewport
	theme Theme
	w, h  int
	base  *ebiten.Image
}

// NewRoadPainter prepares a painter for a w*h pixel view of net.
func NewRoadPainter(net *road.Network, view Viewport, w, h int) *RoadPainter {
	return &RoadPainter{net: net, view: view, theme: DefaultTheme(), w: w, h: h}
}

// Viewport returns the projection in use.
func (rp *RoadPainter) Viewport() Viewport { return rp.view }

// Draw paints the road network, the gates and the markers onto dst.
func (rp *RoadPainter) Draw(dst *ebiten.Image, entries, exits road.Gates, markers []traffic.Marker) {
	if rp.base == nil {
		rp.base = ebiten.NewImage(rp.w, rp.h)
		rp.paintNetwork(rp.base, entries, exits)
	}
	dst.DrawImage(rp.base, nil)
	for _, m := range markers {
		r := rp.view.MarkerRect(m)
		vector.DrawFilledRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), m.Color, false)
	}
}

func (rp *RoadPainter) paintNetwork(img *ebiten.Image, entries, exits road.Gates) {
	img.Fill(rp.theme.Background)
	width := float32(roadWidth * rp.view.Scale)
	for _, s := range rp.net.Segments() {
		x0, y0 := rp.view.ToScreen(s.Start)
		x1, y1 := rp.view.ToScreen(s.End)
		vector.StrokeLine(img, x0, y0, x1, y1, width, rp.theme.Road, true)
	}
	rp.paintGates(img, entries, rp.theme.Entry)
	rp.paintGates(img, exits, rp.theme.Exit)
}

func (rp *RoadPainter) paintGates(img *ebiten.Image, gates []geom.Point, col color.RGBA) {
	radius := float32(gateSize * rp.view.Scale)
	for _, g := range gates {
		x, y := rp.view.ToScreen(g)
		vector.StrokeCircle(img, x, y, radius, 1, col, true)
	}
}
