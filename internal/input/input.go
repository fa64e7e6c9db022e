// Package input delivers host resize, keyboard and pointer events to
// subscribed components.
package input

import "strings"

type Key int

const (
	KeyOther Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
)

func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	}
	return "other"
}

// ParseKey maps terminal and browser key names to a Key.
func ParseKey(name string) Key {
	switch strings.ToLower(name) {
	case "left", "arrowleft", "h":
		return KeyLeft
	case "right", "arrowright", "l":
		return KeyRight
	case "up", "arrowup", "k":
		return KeyUp
	case "down", "arrowdown", "j":
		return KeyDown
	}
	return KeyOther
}

type KeyEvent struct {
	Key  Key
	Name string
}

type PointerPhase int

const (
	PointerDown PointerPhase = iota
	PointerMove
	PointerUp
	PointerLeave
)

type PointerSource int

const (
	Mouse PointerSource = iota
	Touch
)

type Point struct {
	X, Y float64
}

// PointerEvent carries one point for mouse input and the active touches for
// touch input. Events without points are malformed.
type PointerEvent struct {
	Phase  PointerPhase
	Source PointerSource
	Points []Point
}

// Primary returns the position that drives a drag.
func (e PointerEvent) Primary() (Point, bool) {
	if len(e.Points) == 0 {
		return Point{}, false
	}
	return e.Points[0], true
}

// ResizeEvent is the new host size in terminal cells.
type ResizeEvent struct {
	Width, Height int
}
