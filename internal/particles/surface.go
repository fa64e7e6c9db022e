package particles

import "github.com/lucasb-eyer/go-colorful"

// Paint is a colour with straight alpha in [0, 1].
type Paint struct {
	Color colorful.Color
	Alpha float64
}

// Stop is one colour stop of a linear gradient.
type Stop struct {
	Offset float64
	Paint  Paint
}

// Surface is the 2D drawing target the field renders into.
type Surface interface {
	// Measure returns the displayed container size in logical units.
	Measure() (w, h float64)
	// PixelRatio is device pixels per logical unit.
	PixelRatio() float64
	// Resize allocates the backing store in device pixels.
	Resize(w, h int)
	// SetScale maps logical units to device pixels for later draw calls.
	SetScale(s float64)

	Clear()
	FillGradient(x0, y0, x1, y1 float64, stops []Stop)
	FillCircle(x, y, r float64, p Paint)
	StrokeLine(x0, y0, x1, y1, width float64, p Paint)
}

// Palette holds the colours the field paints with.
type Palette struct {
	Wash     []Stop
	Particle Paint
	Link     colorful.Color
}

// DefaultPalette is the cyan, fuchsia and violet haze.
func DefaultPalette() Palette {
	return Palette{
		Wash: []Stop{
			{Offset: 0, Paint: Paint{Color: colorful.Color{R: 0, G: 1, B: 1}, Alpha: 0.06}},
			{Offset: 0.5, Paint: Paint{Color: colorful.Color{R: 1, G: 0, B: 1}, Alpha: 0.06}},
			{Offset: 1, Paint: Paint{Color: colorful.Color{R: 130.0 / 255, G: 87.0 / 255, B: 229.0 / 255}, Alpha: 0.06}},
		},
		Particle: Paint{Color: colorful.Color{R: 1, G: 1, B: 1}, Alpha: 0.7},
		Link:     colorful.Color{R: 168.0 / 255, G: 85.0 / 255, B: 247.0 / 255},
	}
}
