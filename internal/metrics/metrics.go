// Package metrics observes the particle field frame by frame.
package metrics

import "github.com/san-kum/neonfolio/internal/particles"

// Sample is one frame of the field as the metrics see it.
type Sample struct {
	Particles     []particles.Particle
	Width, Height float64
	Links         int
}

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

// Default returns the metrics the bench reports.
func Default() []Metric {
	return []Metric{NewEnergy(), NewEnergyDrift(), NewContainment(), NewMeanLinks()}
}

func ObserveAll(ms []Metric, s Sample) {
	for _, m := range ms {
		m.Observe(s)
	}
}

func Values(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
