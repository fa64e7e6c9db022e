package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/san-kum/neonfolio/internal/config"
	"github.com/san-kum/neonfolio/internal/export"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConfigInitPrecedence(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.yaml")
	if err := os.WriteFile(in, []byte("particles:\n  count: 10\ncube:\n  key_step: 20\n"), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out.yaml")

	if _, err := execute(t, "config", "init", out, "--preset", "turbo", "--config", in, "--particles", "5"); err != nil {
		t.Fatalf("config init: %v", err)
	}
	cfg, err := config.Load(out)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Particles.Count != 5 {
		t.Errorf("flag should win: count = %d", cfg.Particles.Count)
	}
	if cfg.Cube.KeyStep != 20 {
		t.Errorf("file should beat preset: key step = %v", cfg.Cube.KeyStep)
	}
	if cfg.Particles.Speed != 2.4 {
		t.Errorf("preset should beat defaults: speed = %v", cfg.Particles.Speed)
	}
	if cfg.FPS != config.DefaultFPS {
		t.Errorf("unchanged flag should not override: fps = %d", cfg.FPS)
	}
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "neonfolio.yaml")
	if err := os.WriteFile(path, []byte("fps: 30\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "config", "init", path); err == nil {
		t.Error("expected an error for an existing file")
	}
	data, _ := os.ReadFile(path)
	if string(data) != "fps: 30\n" {
		t.Error("existing file was modified")
	}
}

func TestUnknownPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	_, err := execute(t, "config", "init", path, "--preset", "nope")
	if err == nil || !strings.Contains(err.Error(), "unknown preset") {
		t.Errorf("err = %v, want unknown preset", err)
	}
}

func TestInvalidFlagRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	if _, err := execute(t, "config", "init", path, "--fps", "0"); err == nil {
		t.Error("fps 0 should fail validation")
	}
}

func TestPresetsCommand(t *testing.T) {
	out, err := execute(t, "presets")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range config.ListPresets() {
		if !strings.Contains(out, name) {
			t.Errorf("output missing preset %q", name)
		}
	}
}

func TestSnapshotCommand(t *testing.T) {
	dir := t.TempDir()
	svgPath := filepath.Join(dir, "frame.svg")
	cubePath := filepath.Join(dir, "cube.svg")

	out, err := execute(t, "snapshot", svgPath, "--frames", "5", "--particles", "12", "--seed", "3", "--cube", cubePath)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if !strings.Contains(out, svgPath) || !strings.Contains(out, cubePath) {
		t.Errorf("output = %q", out)
	}

	frame, err := os.ReadFile(svgPath)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(frame), "<circle"); got != 12 {
		t.Errorf("frame has %d circles, want 12", got)
	}
	if !strings.Contains(string(frame), `width="1600" height="1200"`) {
		t.Error("frame should be sized to the backing store")
	}

	cube, err := os.ReadFile(cubePath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(cube), "<circle") {
		t.Error("cube svg has no dots")
	}
}

func TestSnapshotFailureLeavesNoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.svg")
	if _, err := execute(t, "snapshot", path, "--frames", "2", "--ratio", "0"); err == nil {
		t.Fatal("ratio 0 should fail")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("failed snapshot left %s behind (stat err %v)", path, err)
	}
}

func TestSnapshotDeterministic(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Seed = 11
	opts := snapshotOptions{Frames: 10, Width: 400, Height: 300, Ratio: 1}

	var a, b bytes.Buffer
	if _, err := snapshot(cfg, opts, &a, zap.NewNop()); err != nil {
		t.Fatal(err)
	}
	if _, err := snapshot(cfg, opts, &b, zap.NewNop()); err != nil {
		t.Fatal(err)
	}
	if a.String() != b.String() {
		t.Error("same seed should produce the same frame")
	}
}

func TestBench(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Seed = 5
	res, err := bench(context.Background(), cfg, 20, 40, 12, zap.NewNop())
	if err != nil {
		t.Fatalf("bench: %v", err)
	}
	if len(res.Links) != 20 || res.Frames != 20 {
		t.Errorf("got %d samples for %d frames", len(res.Links), res.Frames)
	}
	if res.Worst < res.Mean {
		t.Errorf("worst %v below mean %v", res.Worst, res.Mean)
	}
	if res.Metrics["containment"] != 1 {
		t.Errorf("containment = %v, want 1", res.Metrics["containment"])
	}
	if res.Metrics["energy_drift"] > 1e-9 {
		t.Errorf("energy drift = %v", res.Metrics["energy_drift"])
	}
}

func TestBenchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := bench(ctx, config.DefaultConfig(), 50, 20, 10, zap.NewNop())
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if len(res.Links) != 0 {
		t.Errorf("cancelled bench ran %d frames", len(res.Links))
	}
}

func TestBenchEnsembleSeeds(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Seed = 100
	results, err := benchEnsemble(context.Background(), cfg, 3, 5, 20, 10, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	for i, res := range results {
		if res.Seed != 100+int64(i) {
			t.Errorf("run %d seed = %d", i, res.Seed)
		}
		if len(res.Links) != 5 {
			t.Errorf("run %d ran %d frames", i, len(res.Links))
		}
	}
	if cfg.Seed != 100 {
		t.Error("ensemble modified the caller's config")
	}
}

func TestBenchCommand(t *testing.T) {
	jsonPath := filepath.Join(t.TempDir(), "bench.json")
	out, err := execute(t, "bench", "--frames", "10", "--cols", "30", "--rows", "10", "--seed", "1", "--runs", "2", "--json", jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(string(data), `"seed"`) != 2 {
		t.Errorf("json should hold both runs: %s", data)
	}
	for _, want := range []string{"links per frame", "FRAMES", "MEAN", "containment", "energy_drift"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestBenchJSONToStdout(t *testing.T) {
	out, err := execute(t, "bench", "--frames", "3", "--cols", "20", "--rows", "8", "--seed", "2", "--json", "-")
	if err != nil {
		t.Fatal(err)
	}
	start := strings.Index(out, "{")
	if start < 0 {
		t.Fatalf("no json in output:\n%s", out)
	}
	var report export.BenchReport
	if err := json.Unmarshal([]byte(out[start:]), &report); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, out[start:])
	}
	if len(report.Runs) != 1 || report.Runs[0].Seed != 2 || report.Runs[0].Frames != 3 {
		t.Errorf("runs = %+v", report.Runs)
	}
}
