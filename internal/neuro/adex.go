package neuro

import "math"

// AdEx is the adaptive exponential integrate-and-fire model
// (Brette & Gerstner 2005). State is membrane potential and the
// adaptation current w.
type AdEx struct {
	C      float64 // membrane capacitance in nF, matching nA inputs
	GL     float64 // leak conductance
	EL     float64 // leak reversal
	VT     float64 // exponential threshold
	DeltaT float64 // slope factor
	TauW   float64 // adaptation time constant
	AW     float64 // subthreshold adaptation
	BW     float64 // spike-triggered adaptation
	VReset float64
	VCut   float64 // numerical spike cutoff
	Refrac float64
}

func NewAdEx() *AdEx {
	return &AdEx{
		C:      0.281,
		GL:     0.030,
		EL:     -70.6,
		VT:     -50.4,
		DeltaT: 2.0,
		TauW:   144.0,
		AW:     0.004,
		BW:     0.0805,
		VReset: -70.6,
		VCut:   -30.0,
		Refrac: 0,
	}
}

func (a *AdEx) StateDim() int       { return 2 }
func (a *AdEx) InitialState() State { return State{a.EL, 0} }
func (a *AdEx) Threshold() float64  { return a.VCut }
func (a *AdEx) Refractory() float64 { return a.Refrac }

func (a *AdEx) Reset(x State) State {
	r := x.Clone()
	r[0] = a.VReset
	r[1] = x[1] + a.BW
	return r
}

func (a *AdEx) Derivative(x State, input float64, t float64) State {
	v, w := x[0], x[1]
	exp := a.GL * a.DeltaT * math.Exp((v-a.VT)/a.DeltaT)
	dv := (-a.GL*(v-a.EL) + exp - w + input) / a.C
	dw := (a.AW*(v-a.EL) - w) / a.TauW
	return State{dv, dw}
}
