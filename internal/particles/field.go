package particles

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/neonfolio/internal/frame"
	"github.com/san-kum/neonfolio/internal/input"
)

const (
	DefaultCount              = 80
	DefaultConnectionDistance = 120.0
	DefaultSpeed              = 0.6
	DefaultRadiusMin          = 0.6
	DefaultRadiusMax          = 2.6
	linkWidth                 = 0.7
)

type Particle struct {
	X, Y   float64
	VX, VY float64
	R      float64
}

type Config struct {
	Count              int
	ConnectionDistance float64
	// Speed is the width of the per-axis velocity range, centred on zero.
	Speed     float64
	RadiusMin float64
	RadiusMax float64
}

func DefaultConfig() Config {
	return Config{
		Count:              DefaultCount,
		ConnectionDistance: DefaultConnectionDistance,
		Speed:              DefaultSpeed,
		RadiusMin:          DefaultRadiusMin,
		RadiusMax:          DefaultRadiusMax,
	}
}

type Option func(*Field)

// WithRand sets the source used to seed positions, velocities and radii.
func WithRand(r *rand.Rand) Option {
	return func(f *Field) { f.rng = r }
}

func WithLogger(l *zap.Logger) Option {
	return func(f *Field) {
		if l != nil {
			f.log = l
		}
	}
}

func WithPalette(p Palette) Option {
	return func(f *Field) { f.palette = p }
}

// Field is the animated particle backdrop. Not safe for concurrent use; the
// host drives it from a single goroutine.
type Field struct {
	cfg     Config
	surface Surface
	sched   frame.Scheduler
	bus     *input.Bus
	rng     *rand.Rand
	log     *zap.Logger
	palette Palette

	particles     []Particle
	width, height float64
	links         int

	loop        *frame.Loop
	unsubResize input.Unsubscribe
	started     bool
	stopped     bool
	stopOnce    sync.Once
}

func New(surface Surface, sched frame.Scheduler, bus *input.Bus, cfg Config, opts ...Option) *Field {
	f := &Field{
		cfg:     cfg,
		surface: surface,
		sched:   sched,
		bus:     bus,
		log:     zap.NewNop(),
		palette: DefaultPalette(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.rng == nil {
		f.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if f.cfg.Count < 0 {
		f.cfg.Count = 0
	}
	return f
}

// Start measures the surface, seeds the particles and begins animating.
// Without a surface or scheduler it does nothing.
func (f *Field) Start() {
	if f.started || f.stopped || f.surface == nil || f.sched == nil {
		return
	}
	f.started = true
	f.measure()
	f.seed()
	f.unsubResize = f.bus.OnResize(f.onResize)
	f.loop = frame.Start(f.sched, func(time.Time) { f.Frame() })
	f.log.Debug("particle field started",
		zap.Int("count", len(f.particles)),
		zap.Float64("width", f.width),
		zap.Float64("height", f.height))
}

// Stop cancels the frame loop and the resize listener and discards the
// particles. Safe to call more than once, before or after Start.
func (f *Field) Stop() {
	f.stopOnce.Do(func() {
		f.stopped = true
		f.loop.Stop()
		if f.unsubResize != nil {
			f.unsubResize()
		}
		f.particles = nil
		f.log.Debug("particle field stopped")
	})
}

func (f *Field) onResize(input.ResizeEvent) {
	if f.stopped {
		return
	}
	f.measure()
	f.log.Debug("particle field resized", zap.Float64("width", f.width), zap.Float64("height", f.height))
}

// measure sizes the backing store to the container times the pixel ratio.
func (f *Field) measure() {
	w, h := f.surface.Measure()
	f.width, f.height = math.Max(w, 0), math.Max(h, 0)
	ratio := f.surface.PixelRatio()
	if ratio <= 0 {
		ratio = 1
	}
	f.surface.Resize(int(math.Round(f.width*ratio)), int(math.Round(f.height*ratio)))
	f.surface.SetScale(ratio)
}

func (f *Field) seed() {
	f.particles = make([]Particle, f.cfg.Count)
	for i := range f.particles {
		f.particles[i] = Particle{
			X:  f.rng.Float64() * f.width,
			Y:  f.rng.Float64() * f.height,
			VX: (f.rng.Float64() - 0.5) * f.cfg.Speed,
			VY: (f.rng.Float64() - 0.5) * f.cfg.Speed,
			R:  f.rng.Float64()*(f.cfg.RadiusMax-f.cfg.RadiusMin) + f.cfg.RadiusMin,
		}
	}
}

// Frame advances every particle by one step and repaints the surface.
func (f *Field) Frame() {
	if !f.started || f.stopped {
		return
	}
	s := f.surface
	s.Clear()
	s.FillGradient(0, 0, f.width, f.height, f.palette.Wash)

	for i := range f.particles {
		p := &f.particles[i]
		Advance(p, f.width, f.height)
		s.FillCircle(p.X, p.Y, p.R, f.palette.Particle)
	}

	f.links = Links(f.particles, f.cfg.ConnectionDistance, func(a, b *Particle, opacity float64) {
		s.StrokeLine(a.X, a.Y, b.X, b.Y, linkWidth, Paint{Color: f.palette.Link, Alpha: opacity})
	})
}

// SetPalette changes the colours used from the next frame on.
func (f *Field) SetPalette(p Palette) { f.palette = p }

// Particles returns a copy of the current set.
func (f *Field) Particles() []Particle {
	out := make([]Particle, len(f.particles))
	copy(out, f.particles)
	return out
}

// LastLinks is the number of connections drawn by the most recent frame.
func (f *Field) LastLinks() int { return f.links }

// Size is the last measured surface size in logical units.
func (f *Field) Size() (w, h float64) { return f.width, f.height }

func (f *Field) Running() bool { return f.started && !f.stopped }

// Advance moves p by its velocity inside [0, w] x [0, h]. A coordinate that
// leaves the range is mirrored back in and its velocity made to point
// inward, so a particle never escapes and never flips twice on one contact.
func Advance(p *Particle, w, h float64) {
	p.X, p.VX = reflect(p.X+p.VX, p.VX, w)
	p.Y, p.VY = reflect(p.Y+p.VY, p.VY, h)
}

func reflect(pos, vel, limit float64) (float64, float64) {
	next := pos
	switch {
	case pos < 0:
		next, vel = -pos, math.Abs(vel)
	case pos > limit:
		next, vel = 2*limit-pos, -math.Abs(vel)
	}
	// mirroring overshot: left behind by a shrink, or a zero-sized surface
	if next < 0 || next > limit {
		next = math.Min(math.Max(pos, 0), math.Max(limit, 0))
	}
	return next, vel
}

// Opacity fades a link from 1 at distance 0 to 0 at maxDist.
func Opacity(d, maxDist float64) float64 {
	if maxDist <= 0 {
		return 0
	}
	return math.Min(1, math.Max(0, 1-d/maxDist))
}

// Links calls fn for every unordered pair closer than maxDist and returns
// the number of pairs reported.
func Links(ps []Particle, maxDist float64, fn func(a, b *Particle, opacity float64)) int {
	n := 0
	for i := range ps {
		for j := i + 1; j < len(ps); j++ {
			d := math.Hypot(ps[i].X-ps[j].X, ps[i].Y-ps[j].Y)
			if d >= maxDist {
				continue
			}
			n++
			if fn != nil {
				fn(&ps[i], &ps[j], Opacity(d, maxDist))
			}
		}
	}
	return n
}
