//go:build ebiten

package app

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"roadsim/internal/core"
	"roadsim/internal/geom"
	"roadsim/internal/render"
	"roadsim/internal/road"
	"roadsim/internal/sims/traffic"
	"roadsim/internal/ui"
)

// ErrNotRoadSim is returned when the selected simulation has no road view.
var ErrNotRoadSim = errors.New("app: simulation does not expose a road network")

type roadView interface {
	Network() *road.Network
	Entries() road.Gates
	Exits() road.Gates
	Origin() geom.Point
	Markers() []traffic.Marker
}

type sinkSetter interface {
	SetSink(traffic.Sink)
}

// Options tune the window and the stepping rate.
type Options struct {
	Scale    float64
	TPS      int
	Seed     int64
	HUDWidth int
	Logger   *log.Logger
}

// Game adapts a traffic simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	view    roadView
	painter *render.RoadPainter
	buffer  *render.MarkerBuffer
	overlay *ui.Overlay
	hud     *ui.HUD
	clock   *core.FixedStep
	logger  *log.Logger

	width, height int
	hudWidth      int
	paused        bool
	tickOnce      bool
	seed          int64
}

// New constructs a Game for sim.
func New(sim core.Sim, opts Options) (*Game, error) {
	view, ok := sim.(roadView)
	if !ok {
		return nil, fmt.Errorf("%s: %w", sim.Name(), ErrNotRoadSim)
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	size := sim.Size()
	vp := render.NewViewport(view.Origin(), opts.Scale)
	g := &Game{
		sim:      sim,
		view:     view,
		hud:      ui.NewHUD(sim, opts.HUDWidth),
		clock:    core.NewFixedStep(opts.TPS),
		logger:   opts.Logger,
		width:    int(math.Ceil(float64(size.W) * vp.Scale)),
		height:   int(math.Ceil(float64(size.H) * vp.Scale)),
		hudWidth: max(opts.HUDWidth, 0),
		seed:     opts.Seed,
	}
	g.painter = render.NewRoadPainter(view.Network(), vp, g.width, g.height)
	g.overlay = ui.NewOverlay(sim, g.painter.Viewport())
	if s, ok := sim.(sinkSetter); ok {
		g.buffer = &render.MarkerBuffer{}
		s.SetSink(g.buffer)
	}
	return g, nil
}

// WindowSize returns the outer size including the HUD panel.
func (g *Game) WindowSize() (int, int) { return g.width + g.hudWidth, g.height }

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
	if g.buffer != nil {
		g.buffer.UpdateCars(g.view.Markers())
	}
	g.logger.Info("reset", "seed", seed)
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		g.clock.SetTPS(g.clock.TPS() * 2)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		g.clock.SetTPS(max(g.clock.TPS()/2, 1))
	}

	g.overlay.Update()
	g.hud.Update(g.width, g.paused)

	due := g.clock.ShouldStep()
	if (!g.paused && due) || g.tickOnce {
		g.tickOnce = false
		if err := g.sim.Step(); err != nil {
			g.logger.Error("step failed, pausing", "err", err)
			g.paused = true
		}
	}
	return nil
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	markers := g.view.Markers()
	if g.buffer != nil {
		if latest, frames := g.buffer.Latest(); frames > 0 {
			markers = latest
		}
	}
	g.painter.Draw(screen, g.view.Entries(), g.view.Exits(), markers)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.width, g.height)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.WindowSize()
}
