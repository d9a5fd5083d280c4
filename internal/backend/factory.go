package backend

import (
	"fmt"

	"github.com/san-kum/multisim/internal/model"
	"github.com/san-kum/multisim/internal/neuro"
	"github.com/san-kum/multisim/internal/params"
	"github.com/san-kum/multisim/internal/stimulus"
)

// ModelFactory builds the shipped network model on any registered backend.
// Parameter names follow the PyNN conventions; unspecified values fall
// back to the model defaults.
//
// Recognized parameters:
//
//	model       lif | izhikevich | adex
//	n_neurons   population size
//	p_connect   connection probability
//	weight      synaptic weight (nA)
//	tau_syn     synaptic time constant (ms)
//	seed        connectivity and stimulus seed
//	stimulus    constant | pulse | poisson
//	amplitude   stimulus current (nA)
//	start, stop pulse window (ms)
//	rate        poisson event rate (Hz)
func ModelFactory(reg *Registry) model.Factory {
	return func(backend string, p params.Set) (model.Instance, error) {
		spec, err := reg.Get(backend)
		if err != nil {
			return nil, err
		}

		dyn, err := buildDynamics(p)
		if err != nil {
			return nil, err
		}

		stim, err := buildStimulus(p, spec.Dt)
		if err != nil {
			return nil, err
		}

		net, err := neuro.NewNetwork(dyn, spec.NewIntegrator(), stim, neuro.NetConfig{
			N:           p.Int("n_neurons", 10),
			PConnect:    p.Float("p_connect", 0.1),
			Weight:      p.Float("weight", 0.5),
			TauSyn:      p.Float("tau_syn", 5.0),
			Seed:        int64(p.Int("seed", 1)),
			TraceNeuron: p.Int("trace_neuron", 0),
		})
		if err != nil {
			return nil, err
		}
		return neuro.NewNetInstance(backend, net, spec.Dt)
	}
}

func buildDynamics(p params.Set) (neuro.Dynamics, error) {
	name := p.String("model", "lif")
	switch name {
	case "lif":
		lif := neuro.NewLIF()
		lif.TauM = p.Float("tau_m", lif.TauM)
		lif.VRest = p.Float("v_rest", lif.VRest)
		lif.VReset = p.Float("v_reset", lif.VReset)
		lif.VThresh = p.Float("v_thresh", lif.VThresh)
		lif.RM = p.Float("r_m", lif.RM)
		lif.TauRefrac = p.Float("tau_refrac", lif.TauRefrac)
		return lif, nil
	case "izhikevich":
		z := neuro.NewIzhikevich()
		z.A = p.Float("a", z.A)
		z.B = p.Float("b", z.B)
		z.C = p.Float("c", z.C)
		z.D = p.Float("d", z.D)
		return z, nil
	case "adex":
		return neuro.NewAdEx(), nil
	default:
		return nil, fmt.Errorf("unknown neuron model: %s", name)
	}
}

func buildStimulus(p params.Set, dt float64) (neuro.Stimulus, error) {
	amplitude := p.Float("amplitude", 2.0)
	switch name := p.String("stimulus", "constant"); name {
	case "constant":
		return stimulus.NewConstant(amplitude), nil
	case "pulse":
		return stimulus.NewPulse(amplitude, p.Float("start", 10.0), p.Float("stop", 60.0)), nil
	case "poisson":
		return stimulus.NewPoisson(p.Float("rate", 400.0), amplitude, dt, int64(p.Int("seed", 1))), nil
	default:
		return nil, fmt.Errorf("unknown stimulus: %s", name)
	}
}
