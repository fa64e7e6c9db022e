// Package export writes rendered frames to SVG.
package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/neonfolio/internal/particles"
	"github.com/san-kum/neonfolio/internal/viz"
)

// SVG is a particles.Surface that records the last frame as SVG elements.
type SVG struct {
	width, height float64
	ratio         float64
	backingW      int
	backingH      int
	scale         float64
	background    colorful.Color
	defs          []string
	body          []string
}

// NewSVG returns a surface of w x h logical units rendered at ratio device
// pixels per unit.
func NewSVG(w, h, ratio float64, background colorful.Color) *SVG {
	if ratio <= 0 {
		ratio = 1
	}
	return &SVG{width: w, height: h, ratio: ratio, scale: 1, background: background}
}

func (s *SVG) Measure() (float64, float64) { return s.width, s.height }
func (s *SVG) PixelRatio() float64         { return s.ratio }
func (s *SVG) Resize(w, h int)             { s.backingW, s.backingH = w, h }
func (s *SVG) SetScale(f float64)          { s.scale = f }

func (s *SVG) Clear() {
	s.defs = s.defs[:0]
	s.body = s.body[:0]
}

func (s *SVG) FillGradient(x0, y0, x1, y1 float64, stops []particles.Stop) {
	id := fmt.Sprintf("wash%d", len(s.defs))
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<linearGradient id="%s" gradientUnits="userSpaceOnUse" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f">`,
		id, x0*s.scale, y0*s.scale, x1*s.scale, y1*s.scale))
	for _, st := range stops {
		sb.WriteString(fmt.Sprintf(`<stop offset="%.3f" stop-color="%s" stop-opacity="%.3f"/>`,
			st.Offset, st.Paint.Color.Clamped().Hex(), st.Paint.Alpha))
	}
	sb.WriteString(`</linearGradient>`)
	s.defs = append(s.defs, sb.String())
	s.body = append(s.body, fmt.Sprintf(`<rect width="100%%" height="100%%" fill="url(#%s)"/>`, id))
}

func (s *SVG) FillCircle(x, y, r float64, p particles.Paint) {
	s.body = append(s.body, fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" fill-opacity="%.3f"/>`,
		x*s.scale, y*s.scale, r*s.scale, p.Color.Clamped().Hex(), p.Alpha))
}

func (s *SVG) StrokeLine(x0, y0, x1, y1, width float64, p particles.Paint) {
	s.body = append(s.body, fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-opacity="%.3f" stroke-width="%.2f"/>`,
		x0*s.scale, y0*s.scale, x1*s.scale, y1*s.scale, p.Color.Clamped().Hex(), p.Alpha, width*s.scale))
}

// Elements reports how many drawing elements the last frame produced.
func (s *SVG) Elements() int { return len(s.body) }

func (s *SVG) String() string {
	w, h := s.backingW, s.backingH
	if w == 0 || h == 0 {
		w, h = int(math.Round(s.width*s.ratio)), int(math.Round(s.height*s.ratio))
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
`, w, h, w, h))
	if len(s.defs) > 0 {
		sb.WriteString("<defs>\n")
		for _, d := range s.defs {
			sb.WriteString(d + "\n")
		}
		sb.WriteString("</defs>\n")
	}
	sb.WriteString(fmt.Sprintf(`<rect width="100%%" height="100%%" fill="%s"/>
`, s.background.Clamped().Hex()))
	for _, e := range s.body {
		sb.WriteString(e + "\n")
	}
	sb.WriteString("</svg>\n")
	return sb.String()
}

func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}

// CanvasToSVG converts a Braille canvas to SVG format, one dot per set
// sub-pixel.
func CanvasToSVG(canvas *viz.Canvas, scale float64, fill string) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s">
`, width, height, width, height, canvas.Background.Clamped().Hex(), fill))

	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if canvas.Dot(col*2+dx, row*4+dy) {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius))
					}
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
