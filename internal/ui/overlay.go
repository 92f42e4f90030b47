//go:build ebiten

package ui

import (
	"image/color"
	"math"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"roadsim/internal/geom"
	"roadsim/internal/render"
	"roadsim/internal/road"
	"roadsim/internal/sims/traffic"
)

type networkProvider interface {
	Network() *road.Network
}

type carProvider interface {
	Cars() []traffic.Car
}

// Overlay draws optional debugging visuals on top of the road view.
type Overlay struct {
	sim         any
	view        render.Viewport
	showHeading bool
	showIDs     bool
	showLinks   bool
}

// NewOverlay constructs an overlay for sim projected through view.
func NewOverlay(sim any, view render.Viewport) *Overlay {
	return &Overlay{sim: sim, view: view}
}

// Update toggles layers: 1 segment headings, 2 car ids, 3 junction links.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showHeading = !o.showHeading
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showIDs = !o.showIDs
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit3) {
		o.showLinks = !o.showLinks
	}
}

// Draw renders the enabled layers onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if np, ok := o.sim.(networkProvider); ok {
		net := np.Network()
		if o.showHeading {
			o.drawHeadings(screen, net)
		}
		if o.showLinks {
			o.drawLinks(screen, net)
		}
	}
	if cp, ok := o.sim.(carProvider); ok && o.showIDs {
		face := basicfont.Face7x13
		for _, c := range cp.Cars() {
			x, y := o.view.ToScreen(c.Position)
			text.Draw(screen, strconv.FormatInt(c.ID, 10), face, int(x)+4, int(y)-4, color.RGBA{R: 230, G: 230, B: 120, A: 255})
		}
	}
}

func (o *Overlay) drawHeadings(screen *ebiten.Image, net *road.Network) {
	const headAngle = math.Pi / 6
	headLength := 4 * o.view.Scale
	col := color.RGBA{R: 200, G: 200, B: 90, A: 200}
	for _, s := range net.Segments() {
		mid := s.Start.Lerp(s.End, 0.5)
		dir := s.Direction()
		angle := math.Atan2(dir.Y, dir.X)
		tx, ty := o.view.ToScreen(mid)
		for _, side := range [2]float64{headAngle, -headAngle} {
			lx := float64(tx) - math.Cos(angle+side)*headLength
			ly := float64(ty) - math.Sin(angle+side)*headLength
			vector.StrokeLine(screen, tx, ty, float32(lx), float32(ly), 1, col, true)
		}
	}
}

func (o *Overlay) drawLinks(screen *ebiten.Image, net *road.Network) {
	col := color.RGBA{R: 90, G: 160, B: 230, A: 180}
	segs := net.Segments()
	for i, s := range segs {
		from := s.Start.Lerp(s.End, 0.8)
		for _, next := range net.Outgoing(road.SegmentID(i)) {
			to := segs[next].Start.Lerp(segs[next].End, 0.2)
			o.dashed(screen, from, to, col)
		}
	}
}

func (o *Overlay) dashed(screen *ebiten.Image, a, b geom.Point, col color.RGBA) {
	const dashes = 6
	for k := 0; k < dashes; k += 2 {
		x0, y0 := o.view.ToScreen(a.Lerp(b, float64(k)/dashes))
		x1, y1 := o.view.ToScreen(a.Lerp(b, float64(k+1)/dashes))
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, col, true)
	}
}
