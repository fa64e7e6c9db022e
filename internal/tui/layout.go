package tui

const (
	headerRows  = 2
	footerRows  = 2
	minCubeCols = 24
	maxCubeCols = 44
)

// rect is a block of terminal cells in screen coordinates.
type rect struct {
	X, Y, W, H int
}

func (r rect) contains(col, row int) bool {
	return col >= r.X && row >= r.Y && col < r.X+r.W && row < r.Y+r.H
}

// layout splits the screen into the backdrop panel on the left and the cube
// panel on the right. Both rects are the panel interiors, inside the border.
type layout struct {
	backdrop rect
	cube     rect
}

func computeLayout(width, height int) layout {
	bodyH := max(height-headerRows-footerRows, 4)
	innerH := bodyH - 2

	cubeW := width / 3
	switch {
	case width < 2*minCubeCols:
		cubeW = width / 2
	case cubeW < minCubeCols:
		cubeW = minCubeCols
	case cubeW > maxCubeCols:
		cubeW = maxCubeCols
	}
	cubeW = max(cubeW, 4)
	backW := max(width-cubeW, 4)

	top := headerRows + 1
	return layout{
		backdrop: rect{X: 1, Y: top, W: backW - 2, H: innerH},
		cube:     rect{X: backW + 1, Y: top, W: cubeW - 2, H: max(innerH-1, 1)},
	}
}
