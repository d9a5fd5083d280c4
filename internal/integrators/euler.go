package integrators

import "github.com/san-kum/multisim/internal/neuro"

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(dyn neuro.Dynamics, x neuro.State, input float64, t, dt float64) neuro.State {
	dx := dyn.Derivative(x, input, t)
	result := make(neuro.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}
