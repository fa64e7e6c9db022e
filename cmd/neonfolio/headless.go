package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"sort"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/neonfolio/internal/config"
	"github.com/san-kum/neonfolio/internal/cube"
	"github.com/san-kum/neonfolio/internal/export"
	"github.com/san-kum/neonfolio/internal/frame"
	"github.com/san-kum/neonfolio/internal/input"
	"github.com/san-kum/neonfolio/internal/metrics"
	"github.com/san-kum/neonfolio/internal/particles"
	"github.com/san-kum/neonfolio/internal/viz"
)

// Size of the canvas the cube is drawn on for snapshots, in cells.
const (
	cubeCols = 40
	cubeRows = 20
)

// headless mounts both components on a manually flushed frame queue.
type headless struct {
	queue  *frame.Queue
	bus    *input.Bus
	field  *particles.Field
	widget *cube.Widget
	start  time.Time
	step   time.Duration
}

func mountHeadless(cfg *config.Config, surface particles.Surface, logger *zap.Logger) *headless {
	s := cfg.Seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	t := viz.GetTheme(cfg.Theme)
	h := &headless{
		queue: frame.NewQueue(),
		bus:   input.NewBus(),
		start: time.Now(),
		step:  time.Second / time.Duration(max(cfg.FPS, 1)),
	}
	h.field = particles.New(surface, h.queue, h.bus, cfg.ParticleConfig(),
		particles.WithRand(rand.New(rand.NewSource(s))),
		particles.WithPalette(t.Palette()),
		particles.WithLogger(logger.Named("particles")))
	h.widget = cube.New(h.queue, h.bus, cfg.CubeConfig(), cube.WithLogger(logger.Named("cube")))
	h.field.Start()
	h.widget.Start()
	return h
}

// run flushes n frames on a simulated clock, reporting the wall time each
// flush took. It stops early when ctx is done.
func (h *headless) run(ctx context.Context, n int, onFrame func(i int, took time.Duration)) error {
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		begin := time.Now()
		h.queue.Flush(h.start.Add(time.Duration(i) * h.step))
		if onFrame != nil {
			onFrame(i, time.Since(begin))
		}
	}
	return nil
}

func (h *headless) close() error {
	h.field.Stop()
	h.widget.Stop()
	if p, l := h.queue.Pending(), h.bus.Listeners(); p > 0 || l > 0 {
		return fmt.Errorf("components left %d frame callbacks and %d listeners", p, l)
	}
	return nil
}

type snapshotOptions struct {
	Frames        int
	Width, Height float64
	Ratio         float64
}

// snapshot runs the backdrop for opts.Frames frames and writes its last frame
// to w. The cube canvas is returned at the rotation it reached.
func snapshot(cfg *config.Config, opts snapshotOptions, w io.Writer, logger *zap.Logger) (*viz.Canvas, error) {
	if opts.Width <= 0 || opts.Height <= 0 || opts.Ratio <= 0 {
		return nil, fmt.Errorf("snapshot size %gx%g at ratio %g must be positive", opts.Width, opts.Height, opts.Ratio)
	}
	t := viz.GetTheme(cfg.Theme)
	svg := export.NewSVG(opts.Width, opts.Height, opts.Ratio, viz.Colorful(t.Background))
	h := mountHeadless(cfg, svg, logger)
	if err := h.run(context.Background(), max(opts.Frames, 1), nil); err != nil {
		return nil, err
	}

	canvas := viz.NewCanvas(cubeCols, cubeRows)
	canvas.Background = viz.Colorful(t.Background)
	canvas.Clear()
	faces := h.widget.Project(float64(canvas.DotWidth()), float64(canvas.DotHeight()))
	viz.DrawCube(canvas, faces, viz.Colorful(t.CubeEdge), viz.Colorful(t.CubeLabel))

	logger.Info("snapshot",
		zap.Int("frames", opts.Frames),
		zap.Int("elements", svg.Elements()),
		zap.Int("links", h.field.LastLinks()))
	if err := h.close(); err != nil {
		return nil, err
	}
	if _, err := svg.WriteTo(w); err != nil {
		return nil, err
	}
	return canvas, nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	path := "neonfolio.svg"
	if len(args) > 0 {
		path = args[0]
	}

	var buf bytes.Buffer
	canvas, err := snapshot(cfg, snapshotOptions{Frames: snapFrames, Width: width, Height: height, Ratio: ratio}, &buf, logger)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)

	if cubeOut != "" {
		edge := string(viz.GetTheme(cfg.Theme).CubeEdge)
		if err := os.WriteFile(cubeOut, []byte(export.CanvasToSVG(canvas, 4, edge)), 0644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", cubeOut)
	}
	return nil
}

type benchResult struct {
	Seed    int64
	Frames  int
	Links   []float64
	Mean    time.Duration
	Worst   time.Duration
	Metrics map[string]float64
}

// bench renders the backdrop into a cols x rows terminal surface for n
// frames.
func bench(ctx context.Context, cfg *config.Config, n, cols, rows int, logger *zap.Logger) (benchResult, error) {
	t := viz.GetTheme(cfg.Theme)
	term := viz.NewTerminal(cols, rows, viz.Colorful(t.Background))
	h := mountHeadless(cfg, term, logger)
	ms := metrics.Default()

	res := benchResult{Seed: cfg.Seed, Frames: n, Links: make([]float64, 0, n)}
	var total time.Duration
	runErr := h.run(ctx, n, func(i int, took time.Duration) {
		total += took
		res.Worst = max(res.Worst, took)
		links := h.field.LastLinks()
		res.Links = append(res.Links, float64(links))
		w, ht := h.field.Size()
		metrics.ObserveAll(ms, metrics.Sample{Particles: h.field.Particles(), Width: w, Height: ht, Links: links})
	})
	if len(res.Links) > 0 {
		res.Mean = total / time.Duration(len(res.Links))
	}
	res.Metrics = metrics.Values(ms)
	logger.Info("bench",
		zap.Int64("seed", res.Seed),
		zap.Int("frames", len(res.Links)),
		zap.Duration("mean", res.Mean),
		zap.Duration("worst", res.Worst))
	if err := h.close(); err != nil {
		return res, err
	}
	return res, runErr
}

// benchEnsemble runs one bench per seed, starting at cfg.Seed, in parallel.
func benchEnsemble(ctx context.Context, cfg *config.Config, runs, n, cols, rows int, logger *zap.Logger) ([]benchResult, error) {
	results := make([]benchResult, runs)
	errs := make([]error, runs)

	var wg sync.WaitGroup
	for i := 0; i < runs; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := *cfg
			cfgCopy.Seed = cfg.Seed + int64(idx)
			results[idx], errs[idx] = bench(ctx, &cfgCopy, n, cols, rows, logger.With(zap.Int("run", idx)))
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()
	if benchFrames <= 0 || benchRuns <= 0 {
		return fmt.Errorf("frames and runs must be positive")
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "benchmarking %d particles over %d frames (%dx%d cells, %d runs)\n\n",
		cfg.Particles.Count, benchFrames, benchCols, benchRows, benchRuns)

	results, err := benchEnsemble(cmd.Context(), cfg, benchRuns, benchFrames, benchCols, benchRows, logger)
	if err != nil {
		return err
	}

	graph := asciigraph.Plot(results[0].Links,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("links per frame"),
	)
	fmt.Fprintln(out, graph)
	fmt.Fprintln(out)

	names := make([]string, 0, len(results[0].Metrics))
	for name := range results[0].Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "SEED\tFRAMES\tMEAN\tWORST\tFRAMES/SEC")
	for _, name := range names {
		fmt.Fprintf(w, "\t%s", name)
	}
	fmt.Fprintln(w)
	for _, res := range results {
		rate := 0.0
		if res.Mean > 0 {
			rate = float64(time.Second) / float64(res.Mean)
		}
		fmt.Fprintf(w, "%d\t%d\t%v\t%v\t%.0f", res.Seed, res.Frames, res.Mean, res.Worst, rate)
		for _, name := range names {
			fmt.Fprintf(w, "\t%.4g", res.Metrics[name])
		}
		fmt.Fprintln(w)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if benchJSON == "" {
		return nil
	}
	report := export.BenchReport{
		Timestamp:          time.Now(),
		Particles:          cfg.Particles.Count,
		ConnectionDistance: cfg.Particles.ConnectionDistance,
		Cols:               benchCols,
		Rows:               benchRows,
	}
	for _, res := range results {
		report.Runs = append(report.Runs, export.BenchRun{
			Seed:    res.Seed,
			Frames:  res.Frames,
			Mean:    res.Mean,
			Worst:   res.Worst,
			Links:   res.Links,
			Metrics: res.Metrics,
		})
	}
	return export.WriteJSON(benchJSON, out, report)
}
