package metrics

import (
	"math"

	"github.com/san-kum/neonfolio/internal/particles"
)

// KineticEnergy sums ½mv² over ps, taking a particle's mass as its radius
// squared.
func KineticEnergy(ps []particles.Particle) float64 {
	total := 0.0
	for _, p := range ps {
		total += 0.5 * p.R * p.R * (p.VX*p.VX + p.VY*p.VY)
	}
	return total
}

// Energy is the mean kinetic energy over the observed frames.
type Energy struct {
	name        string
	samples     int
	totalEnergy float64
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(s Sample) {
	e.totalEnergy += KineticEnergy(s.Particles)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrift is the largest relative change in kinetic energy since the
// first observed frame. Wall bounces only flip velocity signs, so it stays
// at zero for a healthy field.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(s Sample) {
	energy := KineticEnergy(s.Particles)
	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
