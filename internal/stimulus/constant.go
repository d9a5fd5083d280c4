package stimulus

// Constant injects the same current into every neuron at all times.
type Constant struct {
	Amplitude float64
}

func NewConstant(amplitude float64) *Constant {
	return &Constant{Amplitude: amplitude}
}

func (c *Constant) Current(i int, t float64) float64 {
	return c.Amplitude
}
