package export

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.json")
	report := BenchReport{
		Particles: 80,
		Cols:      160,
		Rows:      45,
		Runs: []BenchRun{{
			Seed:    7,
			Frames:  3,
			Mean:    2 * time.Millisecond,
			Links:   []float64{4, 5, 6},
			Metrics: map[string]float64{"containment": 1},
		}},
	}
	if err := WriteJSON(path, io.Discard, report); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	runs, ok := got["runs"].([]any)
	if !ok || len(runs) != 1 {
		t.Fatalf("runs = %v", got["runs"])
	}
	run := runs[0].(map[string]any)
	if run["mean_ns"] != float64(2*time.Millisecond) {
		t.Errorf("mean_ns = %v", run["mean_ns"])
	}
}

func TestWriteJSON_BadPath(t *testing.T) {
	if err := WriteJSON(filepath.Join(t.TempDir(), "missing", "x.json"), io.Discard, BenchReport{}); err == nil {
		t.Error("expected an error for a missing directory")
	}
}

func TestWriteJSON_Stdout(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON("-", &buf, BenchReport{Particles: 12}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	var got BenchReport
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if got.Particles != 12 {
		t.Errorf("particles = %d, want 12", got.Particles)
	}
	if _, err := os.Stat("-"); err == nil {
		t.Error("a file named - was created")
	}
}
