package neuro

import "math"

// State is one neuron's state vector. Index 0 is always the membrane
// potential; higher indices are model-specific (recovery, adaptation).
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Dynamics describes a neuron model: subthreshold dynamics plus the spike
// threshold/reset rule applied outside the integrator.
type Dynamics interface {
	// Derivative evaluates dx/dt for the given state and input current.
	Derivative(x State, input float64, t float64) State
	StateDim() int
	InitialState() State

	// Threshold is the membrane potential at which a spike is emitted.
	Threshold() float64
	// Reset returns the post-spike state.
	Reset(x State) State
	// Refractory is the dead time after a spike during which the
	// membrane is clamped. Zero disables it.
	Refractory() float64
}

// Linearizable is implemented by models whose components follow
// dx/dt = a - b*x for state-dependent a, b. The exponential-Euler
// integrator uses it for the exact per-component decay update.
type Linearizable interface {
	Linearize(x State, input float64, t float64) (a, b State)
}

// Integrator advances one neuron's state by dt.
type Integrator interface {
	Step(dyn Dynamics, x State, input float64, t, dt float64) State
}

// Stimulus supplies the external input current for neuron i at time t.
type Stimulus interface {
	Current(i int, t float64) float64
}

// Spike is one recorded threshold crossing.
type Spike struct {
	T      float64
	Neuron int
}
