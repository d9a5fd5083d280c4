// Package backend names the simulator engines a model can be built on.
// Each backend pairs a numerical method with a fixed grid resolution, so
// running the same model on several backends cross-checks the engines
// against each other.
package backend

import (
	"errors"
	"fmt"

	"github.com/san-kum/multisim/internal/integrators"
	"github.com/san-kum/multisim/internal/neuro"
)

var ErrUnknown = errors.New("unknown backend")

// Spec describes one engine: its grid resolution and how to build its
// integrator. Integrators are per-instance, never shared.
type Spec struct {
	Name          string
	Dt            float64
	Description   string
	NewIntegrator func() neuro.Integrator
}

type Registry struct {
	order []string
	specs map[string]Spec
}

// NewRegistry returns the built-in engines.
func NewRegistry() *Registry {
	r := &Registry{specs: make(map[string]Spec)}

	r.register(Spec{
		Name:          "euler",
		Dt:            0.1,
		Description:   "forward Euler on a 0.1 ms grid",
		NewIntegrator: func() neuro.Integrator { return integrators.NewEuler() },
	})
	r.register(Spec{
		Name:          "rk4",
		Dt:            0.1,
		Description:   "4th-order Runge-Kutta on a 0.1 ms grid",
		NewIntegrator: func() neuro.Integrator { return integrators.NewRK4() },
	})
	r.register(Spec{
		Name:          "expeuler",
		Dt:            0.1,
		Description:   "exponential Euler on a 0.1 ms grid",
		NewIntegrator: func() neuro.Integrator { return integrators.NewExpEuler() },
	})

	return r
}

func (r *Registry) register(s Spec) {
	r.order = append(r.order, s.Name)
	r.specs[s.Name] = s
}

func (r *Registry) Get(name string) (Spec, error) {
	s, ok := r.specs[name]
	if !ok {
		return Spec{}, fmt.Errorf("%w: %s", ErrUnknown, name)
	}
	return s, nil
}

// List returns backend names in registration order.
func (r *Registry) List() []string {
	return append([]string(nil), r.order...)
}
