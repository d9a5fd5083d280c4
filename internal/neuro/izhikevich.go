package neuro

// Izhikevich is the two-variable quadratic model (Izhikevich 2003). The
// default coefficients give regular spiking.
type Izhikevich struct {
	A, B, C, D float64
}

func NewIzhikevich() *Izhikevich {
	return &Izhikevich{A: 0.02, B: 0.2, C: -65.0, D: 8.0}
}

func (z *Izhikevich) StateDim() int { return 2 }

func (z *Izhikevich) InitialState() State {
	return State{z.C, z.B * z.C}
}

// The model spikes at a fixed +30 mV cutoff, not at a biological threshold.
func (z *Izhikevich) Threshold() float64  { return 30.0 }
func (z *Izhikevich) Refractory() float64 { return 0 }

func (z *Izhikevich) Reset(x State) State {
	r := x.Clone()
	r[0] = z.C
	r[1] = x[1] + z.D
	return r
}

func (z *Izhikevich) Derivative(x State, input float64, t float64) State {
	v, u := x[0], x[1]
	dv := 0.04*v*v + 5*v + 140 - u + input
	du := z.A * (z.B*v - u)
	return State{dv, du}
}
