// Package tui hosts the particle backdrop and the skill cube in a Bubble Tea
// program. The model plays the part of the page: it owns the frame queue and
// the input bus, mounts both components and translates terminal messages
// into the events they listen for.
package tui

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/san-kum/neonfolio/internal/config"
	"github.com/san-kum/neonfolio/internal/cube"
	"github.com/san-kum/neonfolio/internal/frame"
	"github.com/san-kum/neonfolio/internal/input"
	"github.com/san-kum/neonfolio/internal/particles"
	"github.com/san-kum/neonfolio/internal/viz"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	historyLen    = 120
)

// ErrLeak is returned by Close when a component left a frame callback or an
// input listener behind.
var ErrLeak = errors.New("tui: components left callbacks registered")

type TickMsg time.Time

type Model struct {
	cfg   *config.Config
	log   *zap.Logger
	queue *frame.Queue
	bus   *input.Bus

	backdrop   *viz.Terminal
	field      *particles.Field
	widget     *cube.Widget
	cubeCanvas *viz.Canvas
	theme      viz.Theme

	width, height int
	layout        layout
	interval      time.Duration

	paused    bool
	help      bool
	closed    bool
	pointerIn bool

	links     []float64
	lastFrame time.Time
	fps       float64
}

// New mounts both components on a fresh frame queue and input bus.
func New(cfg *config.Config, logger *zap.Logger) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	fps := cfg.FPS
	if fps <= 0 {
		fps = config.DefaultFPS
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	theme := viz.GetTheme(cfg.Theme)
	bg := viz.Colorful(theme.Background)

	m := Model{
		cfg:      cfg,
		log:      logger,
		queue:    frame.NewQueue(),
		bus:      input.NewBus(),
		theme:    theme,
		interval: time.Second / time.Duration(fps),
		links:    make([]float64, 0, historyLen),
	}
	m.width, m.height = defaultWidth, defaultHeight
	m.layout = computeLayout(m.width, m.height)
	m.backdrop = viz.NewTerminal(m.layout.backdrop.W, m.layout.backdrop.H, bg)
	m.cubeCanvas = viz.NewCanvas(m.layout.cube.W, m.layout.cube.H)
	m.cubeCanvas.Background = bg
	m.cubeCanvas.Clear()

	m.field = particles.New(m.backdrop, m.queue, m.bus, cfg.ParticleConfig(),
		particles.WithRand(rand.New(rand.NewSource(seed))),
		particles.WithPalette(theme.Palette()),
		particles.WithLogger(logger.Named("particles")))
	m.widget = cube.New(m.queue, m.bus, cfg.CubeConfig(),
		cube.WithLogger(logger.Named("cube")))

	m.field.Start()
	m.widget.Start()
	logger.Info("components mounted",
		zap.Int("particles", cfg.Particles.Count),
		zap.Int("fps", fps),
		zap.String("theme", theme.Name),
		zap.Int64("seed", seed))
	return m
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case TickMsg:
		if m.closed {
			return m, nil
		}
		if !m.paused {
			m.step(time.Time(msg))
		}
		return m, m.tick()
	}
	return m, nil
}

// step runs one animation frame for everything registered on the queue.
func (m *Model) step(now time.Time) {
	if !m.lastFrame.IsZero() {
		if dt := now.Sub(m.lastFrame).Seconds(); dt > 0 {
			m.fps = 1.0 / dt
		}
	}
	m.lastFrame = now
	m.queue.Flush(now)

	m.links = append(m.links, float64(m.field.LastLinks()))
	if len(m.links) > historyLen {
		m.links = m.links[len(m.links)-historyLen:]
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		if err := m.Close(); err != nil {
			m.log.Error("shutdown", zap.Error(err))
		}
		return m, tea.Quit
	case "p", " ":
		m.paused = !m.paused
		m.lastFrame = time.Time{}
	case "t":
		m.setTheme(viz.NextTheme(m.theme.Name))
	case "?":
		m.help = !m.help
	default:
		if k := input.ParseKey(msg.String()); k != input.KeyOther {
			m.bus.DispatchKey(input.KeyEvent{Key: k, Name: msg.String()})
		}
	}
	return m, nil
}

// handleMouse turns cell mouse reports into pointer events in the cube
// panel's logical coordinates. Presses outside the panel are ignored and
// motion that leaves it ends the drag.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	r := m.layout.cube
	inside := r.contains(msg.X, msg.Y)
	pt := input.Point{
		X: float64((msg.X-r.X)*viz.CellWidth + viz.CellWidth/2),
		Y: float64((msg.Y-r.Y)*viz.CellHeight + viz.CellHeight/2),
	}
	ev := input.PointerEvent{Source: input.Mouse, Points: []input.Point{pt}}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !inside {
			return
		}
		m.pointerIn = true
		ev.Phase = input.PointerDown
	case tea.MouseActionMotion:
		if !inside {
			if m.pointerIn {
				m.pointerIn = false
				m.bus.DispatchPointer(input.PointerEvent{Phase: input.PointerLeave, Source: input.Mouse})
			}
			return
		}
		m.pointerIn = true
		ev.Phase = input.PointerMove
	case tea.MouseActionRelease:
		ev.Phase = input.PointerUp
	default:
		return
	}
	m.bus.DispatchPointer(ev)
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.layout = computeLayout(width, height)
	m.backdrop.SetContainer(m.layout.backdrop.W, m.layout.backdrop.H)
	m.cubeCanvas = viz.NewCanvas(m.layout.cube.W, m.layout.cube.H)
	m.cubeCanvas.Background = viz.Colorful(m.theme.Background)
	m.cubeCanvas.Clear()
	m.bus.DispatchResize(input.ResizeEvent{Width: width, Height: height})
	m.log.Debug("resized", zap.Int("width", width), zap.Int("height", height))
}

func (m *Model) setTheme(t viz.Theme) {
	m.theme = t
	bg := viz.Colorful(t.Background)
	m.field.SetPalette(t.Palette())
	m.backdrop.SetBackground(bg)
	m.cubeCanvas.Background = bg
	m.log.Debug("theme changed", zap.String("theme", t.Name))
}

// Close unmounts both components and reports anything they left registered.
// Safe to call more than once.
func (m *Model) Close() error {
	m.closed = true
	m.field.Stop()
	m.widget.Stop()
	pending, listeners := m.queue.Pending(), m.bus.Listeners()
	m.log.Info("components unmounted",
		zap.Uint64("frames", m.queue.Frames()),
		zap.Int("pending", pending),
		zap.Int("listeners", listeners))
	if pending > 0 || listeners > 0 {
		return fmt.Errorf("%w: %d frame callbacks, %d listeners", ErrLeak, pending, listeners)
	}
	return nil
}

// Run starts the program in the alternate screen with mouse drag reporting
// and blocks until the user quits.
func Run(cfg *config.Config, logger *zap.Logger) error {
	m := New(cfg, logger)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		if cerr := fm.Close(); cerr != nil && err == nil {
			err = cerr
		}
	} else if cerr := m.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
