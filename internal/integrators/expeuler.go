package integrators

import (
	"math"

	"github.com/san-kum/multisim/internal/neuro"
)

// ExpEuler is the exponential-Euler update used by most fixed-step neural
// simulators: components obeying dx/dt = a - b*x relax exactly toward a/b
// over the step. Models that are not Linearizable fall back to forward
// Euler for the whole step.
type ExpEuler struct {
	fallback Euler
}

func NewExpEuler() *ExpEuler {
	return &ExpEuler{}
}

func (e *ExpEuler) Step(dyn neuro.Dynamics, x neuro.State, input float64, t, dt float64) neuro.State {
	lin, ok := dyn.(neuro.Linearizable)
	if !ok {
		return e.fallback.Step(dyn, x, input, t, dt)
	}

	a, b := lin.Linearize(x, input, t)
	result := make(neuro.State, len(x))
	for i := range x {
		if b[i] == 0 {
			result[i] = x[i] + dt*a[i]
			continue
		}
		xInf := a[i] / b[i]
		result[i] = xInf + (x[i]-xInf)*math.Exp(-b[i]*dt)
	}
	return result
}
