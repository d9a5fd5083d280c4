package neuro

import (
	"math"
	"testing"
)

// euler is a local forward-Euler stepper so dynamics tests do not depend
// on the integrators package.
type euler struct{}

func (e euler) Step(dyn Dynamics, x State, input float64, t, dt float64) State {
	dx := dyn.Derivative(x, input, t)
	out := make(State, len(x))
	for i := range x {
		out[i] = x[i] + dt*dx[i]
	}
	return out
}

func TestLIFRelaxesToRest(t *testing.T) {
	lif := NewLIF()
	// 200 ms is 10 tau_m: the 10 mV displacement decays to ~4.5e-4 mV,
	// well inside the tolerance.
	x := State{-55.0}
	for i := 0; i < 20000; i++ {
		x = euler{}.Step(lif, x, 0, 0, 0.01)
	}
	if math.Abs(x[0]-lif.VRest) > 0.01 {
		t.Errorf("membrane settled at %v, want rest %v", x[0], lif.VRest)
	}
}

func TestLIFSteadyStateWithCurrent(t *testing.T) {
	lif := NewLIF()
	// small current, subthreshold: v_inf = VRest + RM*I
	input := 0.5
	x := State{lif.VRest}
	for i := 0; i < 20000; i++ {
		x = euler{}.Step(lif, x, input, 0, 0.01)
	}
	want := lif.VRest + lif.RM*input
	if math.Abs(x[0]-want) > 0.01 {
		t.Errorf("steady state %v, want %v", x[0], want)
	}
}

func TestLIFLinearizeMatchesDerivative(t *testing.T) {
	lif := NewLIF()
	for _, v := range []float64{-70, -65, -55} {
		x := State{v}
		a, b := lif.Linearize(x, 1.0, 0)
		lin := a[0] - b[0]*v
		dx := lif.Derivative(x, 1.0, 0)
		if math.Abs(lin-dx[0]) > 1e-12 {
			t.Errorf("v=%v: linearized %v != derivative %v", v, lin, dx[0])
		}
	}
}

func TestLIFReset(t *testing.T) {
	lif := NewLIF()
	r := lif.Reset(State{lif.VThresh})
	if r[0] != lif.VReset {
		t.Errorf("reset potential %v, want %v", r[0], lif.VReset)
	}
}

func TestIzhikevichResetAddsRecovery(t *testing.T) {
	z := NewIzhikevich()
	x := State{35.0, 4.0}
	r := z.Reset(x)
	if r[0] != z.C {
		t.Errorf("reset v = %v, want %v", r[0], z.C)
	}
	if r[1] != 4.0+z.D {
		t.Errorf("reset u = %v, want %v", r[1], 4.0+z.D)
	}
	if x[1] != 4.0 {
		t.Error("Reset mutated its input state")
	}
}

func TestAdExSubthresholdStable(t *testing.T) {
	a := NewAdEx()
	x := a.InitialState()
	for i := 0; i < 5000; i++ {
		x = euler{}.Step(a, x, 0, 0, 0.01)
		if !x.IsValid() {
			t.Fatalf("state diverged at step %d", i)
		}
	}
	if math.Abs(x[0]-a.EL) > 0.5 {
		t.Errorf("unstimulated AdEx settled at %v, want near %v", x[0], a.EL)
	}
}
