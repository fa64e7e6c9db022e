package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = rune(0x2800)

// ink is the foreground of one cell. The strongest stroke wins.
type ink struct {
	color colorful.Color
	alpha float64
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
	fg            [][]ink
	bg            [][]colorful.Color
	text          [][]bool
	Background    colorful.Color
}

func NewCanvas(w, h int) *Canvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		fg:     make([][]ink, h),
		bg:     make([][]colorful.Color, h),
		text:   make([][]bool, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.fg[i] = make([]ink, w)
		c.bg[i] = make([]colorful.Color, w)
		c.text[i] = make([]bool, w)
	}
	c.Clear()
	return c
}

// DotWidth and DotHeight are the canvas size in sub-pixels.
func (c *Canvas) DotWidth() int  { return c.Width * 2 }
func (c *Canvas) DotHeight() int { return c.Height * 4 }

// Set sets a pixel at (x, y) where x,y are in "sub-pixel" coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	// Early bounds check for negative coordinates
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height || c.text[row][col] {
		return
	}

	subX := x % 2
	subY := y % 4

	c.Grid[row][col] |= rune(pixelMap[subY][subX])
}

// Plot sets a pixel and offers its colour to the cell.
func (c *Canvas) Plot(x, y int, col colorful.Color, alpha float64) {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height || c.text[y/4][x/2] {
		return
	}
	c.Set(x, y)
	cell := &c.fg[y/4][x/2]
	if alpha >= cell.alpha {
		*cell = ink{color: col, alpha: alpha}
	}
}

// Dot reports whether sub-pixel (x, y) is set.
func (c *Canvas) Dot(x, y int) bool {
	if x < 0 || y < 0 {
		return false
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height || c.text[row][col] {
		return false
	}
	return c.Grid[row][col]&rune(pixelMap[y%4][x%2]) != 0
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.fg[i][j] = ink{}
			c.bg[i][j] = c.Background
			c.text[i][j] = false
		}
	}
}

// SetCellBackground tints one cell.
func (c *Canvas) SetCellBackground(col, row int, bg colorful.Color) {
	if col < 0 || row < 0 || col >= c.Width || row >= c.Height {
		return
	}
	c.bg[row][col] = bg
}

// StrokeLine draws a coloured line.
func (c *Canvas) StrokeLine(x0, y0, x1, y1 int, col colorful.Color, alpha float64) {
	c.line(x0, y0, x1, y1, func(x, y int) { c.Plot(x, y, col, alpha) })
}

func (c *Canvas) line(x0, y0, x1, y1 int, plot func(x, y int)) {
	// keep absurd coordinates from walking millions of off-canvas dots
	limit := 4 * (c.DotWidth() + c.DotHeight() + 1)
	if absInt(x1-x0) > limit || absInt(y1-y0) > limit {
		return
	}
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// FillCircle sets every dot within r of (cx, cy). The centre dot is always
// set so sub-dot radii stay visible.
func (c *Canvas) FillCircle(cx, cy, r float64, col colorful.Color, alpha float64) {
	x0, y0 := int(math.Floor(cx)), int(math.Floor(cy))
	c.Plot(x0, y0, col, alpha)
	ri := int(math.Ceil(r))
	for y := y0 - ri; y <= y0+ri; y++ {
		for x := x0 - ri; x <= x0+ri; x++ {
			fx, fy := float64(x)+0.5-cx, float64(y)+0.5-cy
			if fx*fx+fy*fy <= r*r {
				c.Plot(x, y, col, alpha)
			}
		}
	}
}

// Label writes text centred on cell (col, row). Text cells are not drawn
// over by later dots.
func (c *Canvas) Label(col, row int, s string, fg colorful.Color) {
	runes := []rune(s)
	start := col - len(runes)/2
	if row < 0 || row >= c.Height {
		return
	}
	for i, r := range runes {
		x := start + i
		if x < 0 || x >= c.Width {
			continue
		}
		c.Grid[row][x] = r
		c.fg[row][x] = ink{color: fg, alpha: 1}
		c.text[row][x] = true
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render returns the canvas with colours, one lipgloss style per run of
// identically coloured cells.
func (c *Canvas) Render() string {
	var b strings.Builder
	var run []rune
	for i, row := range c.Grid {
		if i > 0 {
			b.WriteByte('\n')
		}
		var fgHex, bgHex string
		for j, r := range row {
			f, g := c.fgHex(i, j), c.bg[i][j].Clamped().Hex()
			if len(run) > 0 && (f != fgHex || g != bgHex) {
				b.WriteString(styleFor(fgHex, bgHex).Render(string(run)))
				run = run[:0]
			}
			fgHex, bgHex = f, g
			run = append(run, r)
		}
		if len(run) > 0 {
			b.WriteString(styleFor(fgHex, bgHex).Render(string(run)))
			run = run[:0]
		}
	}
	return b.String()
}

func (c *Canvas) fgHex(row, col int) string {
	cell := c.fg[row][col]
	if cell.alpha <= 0 {
		return c.bg[row][col].Clamped().Hex()
	}
	return c.bg[row][col].BlendRgb(cell.color, math.Min(cell.alpha, 1)).Clamped().Hex()
}

func styleFor(fg, bg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg)).Background(lipgloss.Color(bg))
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
