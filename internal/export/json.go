package export

import (
	"encoding/json"
	"io"
	"os"
	"time"
)

type BenchRun struct {
	Seed    int64              `json:"seed"`
	Frames  int                `json:"frames"`
	Mean    time.Duration      `json:"mean_ns"`
	Worst   time.Duration      `json:"worst_ns"`
	Links   []float64          `json:"links"`
	Metrics map[string]float64 `json:"metrics"`
}

type BenchReport struct {
	Timestamp          time.Time  `json:"timestamp"`
	Particles          int        `json:"particles"`
	ConnectionDistance float64    `json:"connection_distance"`
	Cols               int        `json:"cols"`
	Rows               int        `json:"rows"`
	Runs               []BenchRun `json:"runs"`
}

// WriteJSON writes v as indented JSON to path, or to stdout when path is "-".
func WriteJSON(path string, stdout io.Writer, v any) error {
	if path == "-" {
		return encode(stdout, v)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := encode(file, v); err != nil {
		return err
	}
	return file.Close()
}

func encode(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
