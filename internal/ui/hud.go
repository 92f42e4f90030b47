//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"roadsim/internal/core"
	"roadsim/internal/sims/traffic"
)

type parameterProvider interface {
	Parameters() core.ParameterSnapshot
}

type statsProvider interface {
	Stats() traffic.Stats
}

// HUD renders the parameter panel to the right of the road view.
type HUD struct {
	sim    core.Sim
	width  int
	height int
	panel  *ebiten.Image
	title  string
	status string

	controls []hudControl
	ints     core.IntParameterSetter
	floats   core.FloatParameterSetter
	offsetX  int
}

type hudControl struct {
	controlState
	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

// NewHUD constructs a HUD for sim with the given panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	h := &HUD{sim: sim, width: max(width, 0), title: buildTitle(sim)}
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		for i, st := range newControlStates(provider.ParameterControls()) {
			top := controlsTop + i*lineHeight
			buttonY := top + (lineHeight-buttonSize)/2
			plus := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
			minus := image.Rect(plus.Min.X-buttonGap-buttonSize, buttonY, plus.Min.X-buttonGap, buttonY+buttonSize)
			h.controls = append(h.controls, hudControl{controlState: st, top: top, minusRect: minus, plusRect: plus})
		}
	}
	h.ints, _ = sim.(core.IntParameterSetter)
	h.floats, _ = sim.(core.FloatParameterSetter)
	return h
}

// Update refreshes values from the simulation and handles clicks on the
// panel, which starts at offsetX in screen space.
func (h *HUD) Update(offsetX int, paused bool) {
	if h == nil {
		return
	}
	h.offsetX = offsetX
	if provider, ok := h.sim.(parameterProvider); ok {
		snap := provider.Parameters()
		for i := range h.controls {
			h.controls[i].refresh(snap)
		}
	}
	if provider, ok := h.sim.(statsProvider); ok {
		s := provider.Stats()
		h.status = statusLine(s.Tick, s.Live, s.Injected, s.Removed, paused)
	}
	h.handleInput()
}

// Draw paints the panel at offsetX with the given height in pixels.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.height != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.height = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawControls()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func buildTitle(sim core.Sim) string {
	if sim == nil || sim.Name() == "" {
		return "Controls"
	}
	name := sim.Name()
	return fmt.Sprintf("%s%s controls", strings.ToUpper(name[:1]), name[1:])
}

func (h *HUD) handleInput() {
	if len(h.controls) == 0 || !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	pt := image.Pt(mx-h.offsetX, my)
	for i := range h.controls {
		c := &h.controls[i]
		switch {
		case pt.In(c.minusRect):
			c.apply(-1, h.ints, h.floats)
			return
		case pt.In(c.plusRect):
			c.apply(1, h.ints, h.floats)
			return
		}
	}
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	text.Draw(h.panel, h.title, face, panelPadding, panelPadding+headerBaseline, titleColor)
	if len(h.controls) == 0 {
		text.Draw(h.panel, "No adjustable parameters", face, panelPadding, panelPadding+headerBaseline+infoSpacing, dimColor)
	}
	for i := range h.controls {
		c := &h.controls[i]
		baseline := c.top + labelBaseline
		text.Draw(h.panel, c.control.Label, face, panelPadding, baseline, labelColor)
		valueColor := labelColor
		if !c.hasValue {
			valueColor = dimColor
		}
		valueX := c.minusRect.Min.X - buttonGap - text.BoundString(face, c.value).Dx()
		text.Draw(h.panel, c.value, face, valueX, baseline, valueColor)

		_, canDec := c.target(-1)
		_, canInc := c.target(1)
		h.drawButton(c.minusRect, "-", canDec)
		h.drawButton(c.plusRect, "+", canInc)
	}
	if h.status != "" {
		text.Draw(h.panel, h.status, face, panelPadding, h.height-panelPadding, dimColor)
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	vector.DrawFilledRect(h.panel, float32(rect.Min.X), float32(rect.Min.Y), float32(rect.Dx()), float32(rect.Dy()), bg, false)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

var (
	titleColor = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColor = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor   = color.RGBA{R: 160, G: 160, B: 170, A: 255}
)

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	infoSpacing    = 36
	controlsTop    = panelPadding + headerBaseline + 14
)
