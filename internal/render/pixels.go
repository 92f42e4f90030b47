package render

import (
	"image"
	"image/color"
	"sync"

	"roadsim/internal/geom"
	"roadsim/internal/sims/traffic"
)

// MarkerSize is the side, in world units, of the square drawn for a car.
const MarkerSize = 4

// Viewport maps world coordinates onto screen pixels.
type Viewport struct {
	Origin geom.Point
	Scale  float64
}

// NewViewport returns a viewport whose top-left corner shows origin. A
// non-positive scale is treated as 1.
func NewViewport(origin geom.Point, scale float64) Viewport {
	if scale <= 0 {
		scale = 1
	}
	return Viewport{Origin: origin, Scale: scale}
}

// ToScreen converts a world point to screen coordinates.
func (v Viewport) ToScreen(p geom.Point) (float32, float32) {
	return float32((p.X - v.Origin.X) * v.Scale), float32((p.Y - v.Origin.Y) * v.Scale)
}

// ToWorld converts screen coordinates back to a world point.
func (v Viewport) ToWorld(x, y int) geom.Point {
	return geom.Pt(float64(x)/v.Scale+v.Origin.X, float64(y)/v.Scale+v.Origin.Y)
}

// MarkerRect returns the screen rectangle covered by a car marker, centred on
// its integer position.
func (v Viewport) MarkerRect(m traffic.Marker) image.Rectangle {
	cx, cy := v.ToScreen(geom.Pt(float64(m.X), float64(m.Y)))
	half := int(MarkerSize * v.Scale / 2)
	if half < 1 {
		half = 1
	}
	x, y := int(cx), int(cy)
	return image.Rect(x-half, y-half, x+half, y+half)
}

// MarkerBuffer keeps the most recent markers handed over by the world. It is
// safe to write from the simulation while the renderer reads.
type MarkerBuffer struct {
	mu      sync.Mutex
	markers []traffic.Marker
	frames  int
}

// UpdateCars stores a copy of markers.
func (b *MarkerBuffer) UpdateCars(markers []traffic.Marker) {
	cp := append([]traffic.Marker(nil), markers...)
	b.mu.Lock()
	b.markers = cp
	b.frames++
	b.mu.Unlock()
}

// Latest returns the last stored markers and how many updates were seen.
func (b *MarkerBuffer) Latest() ([]traffic.Marker, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.markers, b.frames
}

// Theme holds the colors used to draw the network.
type Theme struct {
	Background color.RGBA
	Road       color.RGBA
	Entry      color.RGBA
	Exit       color.RGBA
}

// DefaultTheme is a dark background with grey roads.
func DefaultTheme() Theme {
	return Theme{
		Background: color.RGBA{R: 16, G: 18, B: 22, A: 255},
		Road:       color.RGBA{R: 120, G: 124, B: 132, A: 255},
		Entry:      color.RGBA{R: 90, G: 200, B: 120, A: 255},
		Exit:       color.RGBA{R: 220, G: 90, B: 80, A: 255},
	}
}
