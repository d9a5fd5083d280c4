package stimulus

// Pulse injects a current step between Start and Stop.
type Pulse struct {
	Amplitude float64
	Start     float64
	Stop      float64
}

func NewPulse(amplitude, start, stop float64) *Pulse {
	return &Pulse{Amplitude: amplitude, Start: start, Stop: stop}
}

func (p *Pulse) Current(i int, t float64) float64 {
	if t >= p.Start && t < p.Stop {
		return p.Amplitude
	}
	return 0
}
