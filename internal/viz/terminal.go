package viz

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/neonfolio/internal/particles"
)

// Logical units per terminal cell. A braille cell holds 2x4 dots, so one
// dot covers 4x4 logical units.
const (
	CellWidth  = 8
	CellHeight = 16
	dotsPerX   = 2
	dotsPerY   = 4
)

// Terminal is a particles.Surface backed by a braille canvas.
type Terminal struct {
	cols, rows int
	canvas     *Canvas
	scale      float64
	background colorful.Color
}

func NewTerminal(cols, rows int, background colorful.Color) *Terminal {
	t := &Terminal{scale: 1, background: background}
	t.SetContainer(cols, rows)
	t.Resize(cols*dotsPerX, rows*dotsPerY)
	return t
}

// SetContainer records the panel size the host laid out, in cells. The
// surface picks it up on the next Measure.
func (t *Terminal) SetContainer(cols, rows int) {
	t.cols, t.rows = max(cols, 0), max(rows, 0)
}

func (t *Terminal) SetBackground(c colorful.Color) {
	t.background = c
	if t.canvas != nil {
		t.canvas.Background = c
	}
}

func (t *Terminal) Measure() (float64, float64) {
	return float64(t.cols * CellWidth), float64(t.rows * CellHeight)
}

func (t *Terminal) PixelRatio() float64 { return float64(dotsPerX) / CellWidth }

// Resize allocates a canvas large enough for w x h dots.
func (t *Terminal) Resize(w, h int) {
	cols := (max(w, 0) + dotsPerX - 1) / dotsPerX
	rows := (max(h, 0) + dotsPerY - 1) / dotsPerY
	t.canvas = NewCanvas(cols, rows)
	t.canvas.Background = t.background
	t.canvas.Clear()
}

func (t *Terminal) SetScale(s float64) { t.scale = s }

func (t *Terminal) Clear() { t.canvas.Clear() }

// FillGradient tints every cell with the linear gradient from (x0, y0) to
// (x1, y1), composited over the background.
func (t *Terminal) FillGradient(x0, y0, x1, y1 float64, stops []particles.Stop) {
	if len(stops) == 0 {
		return
	}
	dx, dy := x1-x0, y1-y0
	den := dx*dx + dy*dy
	for row := 0; row < t.canvas.Height; row++ {
		for col := 0; col < t.canvas.Width; col++ {
			// cell centre in logical units
			px := (float64(col) + 0.5) * dotsPerX / t.scale
			py := (float64(row) + 0.5) * dotsPerY / t.scale
			at := 0.0
			if den > 0 {
				at = ((px-x0)*dx + (py-y0)*dy) / den
			}
			p := SampleGradient(stops, at)
			t.canvas.SetCellBackground(col, row, t.background.BlendRgb(p.Color, p.Alpha))
		}
	}
}

func (t *Terminal) FillCircle(x, y, r float64, p particles.Paint) {
	t.canvas.FillCircle(x*t.scale, y*t.scale, r*t.scale, p.Color, p.Alpha)
}

func (t *Terminal) StrokeLine(x0, y0, x1, y1, width float64, p particles.Paint) {
	if p.Alpha <= 0 {
		return
	}
	t.canvas.StrokeLine(
		int(math.Floor(x0*t.scale)), int(math.Floor(y0*t.scale)),
		int(math.Floor(x1*t.scale)), int(math.Floor(y1*t.scale)),
		p.Color, p.Alpha)
}

func (t *Terminal) Canvas() *Canvas { return t.canvas }

func (t *Terminal) View() string { return t.canvas.Render() }

// SampleGradient returns the paint at offset at, clamped to the stop range.
func SampleGradient(stops []particles.Stop, at float64) particles.Paint {
	if len(stops) == 0 {
		return particles.Paint{}
	}
	if at <= stops[0].Offset {
		return stops[0].Paint
	}
	last := stops[len(stops)-1]
	if at >= last.Offset {
		return last.Paint
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if at > b.Offset {
			continue
		}
		span := b.Offset - a.Offset
		if span <= 0 {
			return b.Paint
		}
		f := (at - a.Offset) / span
		return particles.Paint{
			Color: a.Paint.Color.BlendRgb(b.Paint.Color, f),
			Alpha: a.Paint.Alpha + (b.Paint.Alpha-a.Paint.Alpha)*f,
		}
	}
	return last.Paint
}
