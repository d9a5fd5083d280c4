package stimulus

import "math/rand"

// Poisson approximates a Poisson input spike train as shot noise: on each
// query (one per neuron per engine step) an impulse of Amplitude arrives
// with probability rate*dt. Draws are independent across neurons and steps,
// reproducible for a given seed.
type Poisson struct {
	Amplitude float64
	prob      float64
	rng       *rand.Rand
}

// NewPoisson builds a Poisson stimulus for an engine stepping at dt ms.
// Rate is in events per second per neuron.
func NewPoisson(rate, amplitude, dt float64, seed int64) *Poisson {
	return &Poisson{
		Amplitude: amplitude,
		prob:      rate * dt / 1000.0,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

func (p *Poisson) Current(i int, t float64) float64 {
	if p.rng.Float64() < p.prob {
		return p.Amplitude
	}
	return 0
}
