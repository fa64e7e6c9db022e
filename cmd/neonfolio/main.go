package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/neonfolio/internal/config"
	"github.com/san-kum/neonfolio/internal/logging"
	"github.com/san-kum/neonfolio/internal/particles"
	"github.com/san-kum/neonfolio/internal/tui"
	"github.com/san-kum/neonfolio/internal/viz"
)

var (
	configFile string
	preset     string
	fps        int
	count      int
	theme      string
	seed       int64
	logFile    string
	logLevel   string

	// snapshot and bench
	snapFrames  int
	width       float64
	height      float64
	ratio       float64
	cubeOut     string
	benchFrames int
	benchRuns   int
	benchJSON   string
	benchCols   int
	benchRows   int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "neonfolio",
		Short:        "particle backdrop and skill cube for the terminal",
		SilenceUsage: true,
		RunE:         runInteractive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	pf.IntVar(&count, "particles", particles.DefaultCount, "number of particles")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "colour theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	pf.StringVar(&logFile, "log-file", "", "write JSON logs to this file")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "interactive terminal view",
		Args:  cobra.NoArgs,
		RunE:  runInteractive,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "presets:")
			for _, p := range config.ListPresets() {
				cfg := config.GetPreset(p)
				fmt.Fprintf(out, "  %-8s particles=%d distance=%g speed=%g fps=%d\n",
					p, cfg.Particles.Count, cfg.Particles.ConnectionDistance, cfg.Particles.Speed, cfg.FPS)
			}
			return nil
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage the config file",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the resolved configuration as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configCmd.AddCommand(configInitCmd)

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [out.svg]",
		Short: "run the backdrop headless and write the last frame as svg",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().IntVar(&snapFrames, "frames", 120, "frames to run before capturing")
	snapshotCmd.Flags().Float64Var(&width, "width", 800, "backdrop width in logical units")
	snapshotCmd.Flags().Float64Var(&height, "height", 600, "backdrop height in logical units")
	snapshotCmd.Flags().Float64Var(&ratio, "ratio", 2, "device pixels per logical unit")
	snapshotCmd.Flags().StringVar(&cubeOut, "cube", "", "also write the cube as svg to this path")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "run the backdrop headless and report frame times",
		Args:  cobra.NoArgs,
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&benchFrames, "frames", 600, "frames to run")
	benchCmd.Flags().StringVar(&benchJSON, "json", "", "also write the results as json to this path (- for stdout)")
	benchCmd.Flags().IntVar(&benchRuns, "runs", 1, "independent runs with consecutive seeds")
	benchCmd.Flags().IntVar(&benchCols, "cols", 160, "terminal columns to render into")
	benchCmd.Flags().IntVar(&benchRows, "rows", 45, "terminal rows to render into")

	rootCmd.AddCommand(runCmd, presetsCmd, configCmd, snapshotCmd, benchCmd)
	return rootCmd
}

// resolveConfig layers defaults, preset, config file and changed flags, in
// that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("particles") {
		cfg.Particles.Count = count
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("log-file") {
		cfg.Log.File = logFile
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setup(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(logging.Config{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	return cfg, logger, nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()
	return tui.Run(cfg, logger)
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	path := "neonfolio.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
