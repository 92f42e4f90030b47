package traffic

import (
	"image/color"

	"github.com/samber/lo"
)

// Marker is the renderer's view of a car: an integer position and a color.
type Marker struct {
	X, Y  int
	Color color.RGBA
}

// Sink receives the car markers once per completed tick.
type Sink interface {
	UpdateCars(markers []Marker)
}

// Markers converts cars to renderer markers, truncating coordinates.
func Markers(cars []Car) []Marker {
	return lo.Map(cars, func(c Car, _ int) Marker {
		return Marker{X: int(c.Position.X), Y: int(c.Position.Y), Color: c.Color}
	})
}

// RandomColor draws an opaque color with every channel uniform in [0, 255].
func RandomColor(rng Chooser) color.RGBA {
	return color.RGBA{
		R: uint8(rng.IntN(256)),
		G: uint8(rng.IntN(256)),
		B: uint8(rng.IntN(256)),
		A: 255,
	}
}
