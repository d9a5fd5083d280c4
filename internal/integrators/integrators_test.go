package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/multisim/internal/neuro"
)

// decay is dx/dt = -x, solution x(t) = x0*exp(-t).
type decay struct{}

func (d *decay) Derivative(x neuro.State, input float64, t float64) neuro.State {
	return neuro.State{-x[0]}
}
func (d *decay) StateDim() int             { return 1 }
func (d *decay) InitialState() neuro.State { return neuro.State{1.0} }
func (d *decay) Threshold() float64        { return math.Inf(1) }
func (d *decay) Refractory() float64       { return 0 }
func (d *decay) Reset(x neuro.State) neuro.State {
	return x.Clone()
}

// linDecay additionally exposes the a - b*x form.
type linDecay struct{ decay }

func (l *linDecay) Linearize(x neuro.State, input float64, t float64) (a, b neuro.State) {
	return neuro.State{0}, neuro.State{1}
}

func integrate(ig neuro.Integrator, dyn neuro.Dynamics, steps int, dt float64) float64 {
	x := neuro.State{1.0}
	t := 0.0
	for i := 0; i < steps; i++ {
		x = ig.Step(dyn, x, 0, t, dt)
		t += dt
	}
	return x[0]
}

func TestEulerConverges(t *testing.T) {
	got := integrate(NewEuler(), &decay{}, 100, 0.01)
	want := math.Exp(-1.0)
	if math.Abs(got-want) > 0.01 {
		t.Errorf("euler final = %v, want ~%v", got, want)
	}
}

func TestRK4MoreAccurateThanEuler(t *testing.T) {
	want := math.Exp(-1.0)
	eulerErr := math.Abs(integrate(NewEuler(), &decay{}, 10, 0.1) - want)
	rk4Err := math.Abs(integrate(NewRK4(), &decay{}, 10, 0.1) - want)
	if rk4Err >= eulerErr {
		t.Errorf("rk4 error %v not below euler error %v", rk4Err, eulerErr)
	}
	if rk4Err > 1e-6 {
		t.Errorf("rk4 error %v too large for linear decay", rk4Err)
	}
}

func TestExpEulerExactOnLinearDecay(t *testing.T) {
	got := integrate(NewExpEuler(), &linDecay{}, 10, 0.1)
	want := math.Exp(-1.0)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("expeuler final = %v, want exactly %v", got, want)
	}
}

func TestExpEulerFallsBackWithoutLinearization(t *testing.T) {
	exp := integrate(NewExpEuler(), &decay{}, 10, 0.1)
	eul := integrate(NewEuler(), &decay{}, 10, 0.1)
	if exp != eul {
		t.Errorf("expeuler without Linearizable = %v, want euler result %v", exp, eul)
	}
}
