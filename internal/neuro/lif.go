package neuro

// Parameters follow the usual PyNN-style conventions: potentials in mV,
// times in ms, currents in nA, resistance in MOhm.
const (
	DefaultTauM      = 20.0
	DefaultVRest     = -65.0
	DefaultVReset    = -70.0
	DefaultVThresh   = -50.0
	DefaultRM        = 10.0
	DefaultTauRefrac = 2.0
)

// LIF is the leaky integrate-and-fire neuron.
type LIF struct {
	TauM      float64 // membrane time constant
	VRest     float64 // resting potential
	VReset    float64 // post-spike potential
	VThresh   float64 // spike threshold
	RM        float64 // membrane resistance
	TauRefrac float64 // refractory period
}

func NewLIF() *LIF {
	return &LIF{
		TauM:      DefaultTauM,
		VRest:     DefaultVRest,
		VReset:    DefaultVReset,
		VThresh:   DefaultVThresh,
		RM:        DefaultRM,
		TauRefrac: DefaultTauRefrac,
	}
}

func (l *LIF) StateDim() int       { return 1 }
func (l *LIF) InitialState() State { return State{l.VRest} }
func (l *LIF) Threshold() float64  { return l.VThresh }
func (l *LIF) Refractory() float64 { return l.TauRefrac }

func (l *LIF) Reset(x State) State {
	r := x.Clone()
	r[0] = l.VReset
	return r
}

func (l *LIF) Derivative(x State, input float64, t float64) State {
	v := x[0]
	return State{(-(v - l.VRest) + l.RM*input) / l.TauM}
}

// Linearize rewrites the membrane equation as dv/dt = a - b*v, which the
// exponential-Euler integrator solves exactly over a step.
func (l *LIF) Linearize(x State, input float64, t float64) (a, b State) {
	a = State{(l.VRest + l.RM*input) / l.TauM}
	b = State{1.0 / l.TauM}
	return a, b
}
