package neuro

import (
	"fmt"
	"math"
	"math/rand"
)

// NetConfig sizes and wires a network. Weight is the synaptic increment a
// presynaptic spike adds to the postsynaptic current; PConnect is the
// probability of each directed pre->post connection.
type NetConfig struct {
	N           int
	PConnect    float64
	Weight      float64
	TauSyn      float64
	Seed        int64
	TraceNeuron int
}

// Network is a population of identical neurons with current-based
// exponential synapses, advanced on a fixed grid by one integrator.
// It records every spike and the membrane trace of one neuron.
type Network struct {
	dyn   Dynamics
	integ Integrator
	stim  Stimulus
	cfg   NetConfig

	states  []State
	refrac  []float64
	syn     []float64
	weights [][]float64 // weights[post][pre], 0 = no connection

	t      float64
	spikes []Spike
	trace  []float64
	traceT []float64
}

func NewNetwork(dyn Dynamics, integ Integrator, stim Stimulus, cfg NetConfig) (*Network, error) {
	if cfg.N <= 0 {
		return nil, fmt.Errorf("population size must be positive, got %d", cfg.N)
	}
	if cfg.PConnect < 0 || cfg.PConnect > 1 {
		return nil, fmt.Errorf("connection probability must be in [0,1], got %f", cfg.PConnect)
	}
	if cfg.TauSyn <= 0 {
		return nil, fmt.Errorf("synaptic time constant must be positive, got %f", cfg.TauSyn)
	}
	if cfg.TraceNeuron < 0 || cfg.TraceNeuron >= cfg.N {
		return nil, fmt.Errorf("trace neuron %d out of range [0,%d)", cfg.TraceNeuron, cfg.N)
	}

	net := &Network{
		dyn:     dyn,
		integ:   integ,
		stim:    stim,
		cfg:     cfg,
		states:  make([]State, cfg.N),
		refrac:  make([]float64, cfg.N),
		syn:     make([]float64, cfg.N),
		weights: make([][]float64, cfg.N),
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	for i := 0; i < cfg.N; i++ {
		net.states[i] = dyn.InitialState()
		net.weights[i] = make([]float64, cfg.N)
		for j := 0; j < cfg.N; j++ {
			if i != j && rng.Float64() < cfg.PConnect {
				net.weights[i][j] = cfg.Weight
			}
		}
	}
	net.recordTrace()
	return net, nil
}

// Step advances every neuron by dt. Threshold crossings are detected after
// integration; spiking neurons are reset, clamped for their refractory
// period, and their outgoing weights are added to the targets' synaptic
// currents for the next step.
func (net *Network) Step(dt float64) error {
	spiked := make([]int, 0)

	for i := 0; i < net.cfg.N; i++ {
		if net.refrac[i] > 0 {
			net.refrac[i] -= dt
			continue
		}

		input := net.stim.Current(i, net.t) + net.syn[i]
		x := net.integ.Step(net.dyn, net.states[i], input, net.t, dt)
		if !x.IsValid() {
			return fmt.Errorf("neuron %d diverged at t=%.3f (NaN/Inf)", i, net.t)
		}

		if x[0] >= net.dyn.Threshold() {
			net.spikes = append(net.spikes, Spike{T: net.t + dt, Neuron: i})
			x = net.dyn.Reset(x)
			net.refrac[i] = net.dyn.Refractory()
			spiked = append(spiked, i)
		}
		net.states[i] = x
	}

	decay := math.Exp(-dt / net.cfg.TauSyn)
	for i := range net.syn {
		net.syn[i] *= decay
	}
	for _, j := range spiked {
		for i := 0; i < net.cfg.N; i++ {
			net.syn[i] += net.weights[i][j]
		}
	}

	net.t += dt
	net.recordTrace()
	return nil
}

func (net *Network) recordTrace() {
	net.trace = append(net.trace, net.states[net.cfg.TraceNeuron][0])
	net.traceT = append(net.traceT, net.t)
}

func (net *Network) Time() float64 { return net.t }
func (net *Network) Size() int     { return net.cfg.N }

func (net *Network) SpikeCount() int { return len(net.spikes) }

func (net *Network) Spikes() []Spike {
	return append([]Spike(nil), net.spikes...)
}

// Rate is the mean population firing rate in Hz, with time in ms.
func (net *Network) Rate() float64 {
	if net.t == 0 {
		return 0
	}
	return float64(len(net.spikes)) / float64(net.cfg.N) / net.t * 1000.0
}

// Trace returns the recorded membrane potential of the trace neuron and
// the matching sample times.
func (net *Network) Trace() ([]float64, []float64) {
	return append([]float64(nil), net.trace...), append([]float64(nil), net.traceT...)
}

func (net *Network) MeanVoltage() float64 {
	sum := 0.0
	for _, x := range net.states {
		sum += x[0]
	}
	return sum / float64(net.cfg.N)
}

// Reset restores initial state and clears recordings. Connectivity is kept.
func (net *Network) Reset() {
	for i := range net.states {
		net.states[i] = net.dyn.InitialState()
		net.refrac[i] = 0
		net.syn[i] = 0
	}
	net.t = 0
	net.spikes = nil
	net.trace = nil
	net.traceT = nil
	net.recordTrace()
}
