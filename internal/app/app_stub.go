//go:build !ebiten

package app

import (
	"errors"

	"github.com/charmbracelet/log"

	"roadsim/internal/core"
)

// ErrNoGUI is returned by the headless build for every GUI operation.
var ErrNoGUI = errors.New("app: GUI requires building with the 'ebiten' tag")

// Options mirrors the GUI build so callers compile in both.
type Options struct {
	Scale    float64
	TPS      int
	Seed     int64
	HUDWidth int
	Logger   *log.Logger
}

// Game is a placeholder that satisfies the API expected by the GUI build.
type Game struct{}

// New reports that the ebiten build tag is required for GUI support.
func New(core.Sim, Options) (*Game, error) { return nil, ErrNoGUI }

// WindowSize returns zeros in the headless build.
func (g *Game) WindowSize() (int, int) { return 0, 0 }

// Reset is a no-op placeholder.
func (g *Game) Reset(int64) {}

// Update always reports that the GUI build tag is missing.
func (g *Game) Update() error { return ErrNoGUI }

// Draw is a no-op placeholder to satisfy the interface shape.
func (g *Game) Draw(any) {}

// Layout returns zeros in the headless build.
func (g *Game) Layout(int, int) (int, int) { return 0, 0 }
