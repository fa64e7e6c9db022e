// Package cube implements the interactive skill cube: six labelled faces
// rotated together by a slow automatic tumble, pointer drags and arrow keys.
package cube

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/neonfolio/internal/frame"
	"github.com/san-kum/neonfolio/internal/input"
)

const (
	DefaultDragSensitivity = 0.6
	DefaultKeyStep         = 6.0
	DefaultEdge            = 180.0
)

// Rotation is a pair of angles in degrees. Values are never wrapped.
type Rotation struct {
	X, Y float64
}

func (r Rotation) Add(o Rotation) Rotation { return Rotation{r.X + o.X, r.Y + o.Y} }

var (
	DefaultInitial    = Rotation{X: -20, Y: 25}
	DefaultAutoRotate = Rotation{X: 0.2, Y: 0.3}
	DefaultLabels     = []string{"React", "Node.js", "Firebase", "MongoDB", "C++", "DSA"}
)

type Config struct {
	Initial         Rotation
	AutoRotate      Rotation
	DragSensitivity float64
	KeyStep         float64
	Edge            float64
	Labels          []string
}

func DefaultConfig() Config {
	labels := make([]string, len(DefaultLabels))
	copy(labels, DefaultLabels)
	return Config{
		Initial:         DefaultInitial,
		AutoRotate:      DefaultAutoRotate,
		DragSensitivity: DefaultDragSensitivity,
		KeyStep:         DefaultKeyStep,
		Edge:            DefaultEdge,
		Labels:          labels,
	}
}

type Option func(*Widget)

func WithLogger(l *zap.Logger) Option {
	return func(w *Widget) {
		if l != nil {
			w.log = l
		}
	}
}

// Widget holds the cube rotation and the drag state that feeds it. Not safe
// for concurrent use.
type Widget struct {
	cfg   Config
	sched frame.Scheduler
	bus   *input.Bus
	log   *zap.Logger
	faces [6]Face

	rot      Rotation
	dragging bool
	last     input.Point

	loop         *frame.Loop
	unsubKey     input.Unsubscribe
	unsubPointer input.Unsubscribe
	started      bool
	stopped      bool
	stopOnce     sync.Once
}

func New(sched frame.Scheduler, bus *input.Bus, cfg Config, opts ...Option) *Widget {
	w := &Widget{
		cfg:   cfg,
		sched: sched,
		bus:   bus,
		log:   zap.NewNop(),
		rot:   cfg.Initial,
		faces: buildFaces(cfg.Labels),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins auto-rotation and subscribes to keyboard and pointer input.
func (w *Widget) Start() {
	if w.started || w.stopped {
		return
	}
	w.started = true
	w.loop = frame.Start(w.sched, func(time.Time) { w.AutoRotate() })
	w.unsubKey = w.bus.OnKey(w.HandleKey)
	w.unsubPointer = w.bus.OnPointer(w.HandlePointer)
	w.log.Debug("cube started", zap.Float64("x", w.rot.X), zap.Float64("y", w.rot.Y))
}

// Stop ends auto-rotation and removes the input listeners. Safe to call
// more than once.
func (w *Widget) Stop() {
	w.stopOnce.Do(func() {
		w.stopped = true
		w.dragging = false
		w.loop.Stop()
		if w.unsubKey != nil {
			w.unsubKey()
		}
		if w.unsubPointer != nil {
			w.unsubPointer()
		}
		w.log.Debug("cube stopped", zap.Float64("x", w.rot.X), zap.Float64("y", w.rot.Y))
	})
}

// AutoRotate applies one frame of tumble unless a drag is in progress.
func (w *Widget) AutoRotate() {
	if w.stopped || w.dragging {
		return
	}
	w.rot = w.rot.Add(w.cfg.AutoRotate)
}

func (w *Widget) PointerDown(p input.Point) {
	if w.stopped {
		return
	}
	w.dragging = true
	w.last = p
}

// PointerMove turns the cube by the distance moved since the last event:
// horizontal motion spins about Y, vertical motion tilts about X.
func (w *Widget) PointerMove(p input.Point) {
	if w.stopped || !w.dragging {
		return
	}
	dx, dy := p.X-w.last.X, p.Y-w.last.Y
	w.last = p
	w.rot = w.rot.Add(Rotation{X: dy * w.cfg.DragSensitivity, Y: dx * w.cfg.DragSensitivity})
}

func (w *Widget) PointerUp() { w.dragging = false }

func (w *Widget) PointerLeave() { w.dragging = false }

// HandlePointer routes a host pointer event. Down and move events without a
// position are dropped.
func (w *Widget) HandlePointer(ev input.PointerEvent) {
	switch ev.Phase {
	case input.PointerUp:
		w.PointerUp()
		return
	case input.PointerLeave:
		w.PointerLeave()
		return
	}
	p, ok := ev.Primary()
	if !ok {
		return
	}
	switch ev.Phase {
	case input.PointerDown:
		w.PointerDown(p)
	case input.PointerMove:
		w.PointerMove(p)
	}
}

// HandleKey nudges the rotation by KeyStep, on top of whatever else is
// driving it.
func (w *Widget) HandleKey(ev input.KeyEvent) {
	if w.stopped {
		return
	}
	step := w.cfg.KeyStep
	switch ev.Key {
	case input.KeyLeft:
		w.rot.Y -= step
	case input.KeyRight:
		w.rot.Y += step
	case input.KeyUp:
		w.rot.X -= step
	case input.KeyDown:
		w.rot.X += step
	}
}

func (w *Widget) Rotation() Rotation { return w.rot }

func (w *Widget) Dragging() bool { return w.dragging }

func (w *Widget) Running() bool { return w.started && !w.stopped }

// Faces returns the six faces with their fixed offsets.
func (w *Widget) Faces() []Face {
	out := make([]Face, len(w.faces))
	copy(out, w.faces[:])
	return out
}
