package neuro

import (
	"errors"
	"fmt"

	"github.com/san-kum/multisim/internal/model"
)

// NetInstance adapts a Network to the coordinator's model contract. The
// engine steps on a fixed grid of resolution dt; requested run durations
// accumulate into a target time and the network advances by whole steps
// that fit below the target, the way fixed-grid simulators quantize run
// calls. A duration that is not a multiple of dt leaves a shortfall that
// is carried into the next run call rather than dropped.
type NetInstance struct {
	backend string
	net     *Network
	dt      float64
	target  float64
	ended   bool
}

func NewNetInstance(backend string, net *Network, dt float64) (*NetInstance, error) {
	if dt <= 0 {
		return nil, fmt.Errorf("engine resolution must be positive, got %f", dt)
	}
	return &NetInstance{backend: backend, net: net, dt: dt}, nil
}

func (ni *NetInstance) Backend() string   { return ni.backend }
func (ni *NetInstance) Network() *Network { return ni.net }

func (ni *NetInstance) Run(dt float64) error {
	if ni.ended {
		return errors.New("instance already ended")
	}
	if dt <= 0 {
		return fmt.Errorf("run duration must be positive, got %f", dt)
	}
	ni.target += dt
	const gridEps = 1e-9
	for ni.net.Time()+ni.dt <= ni.target+gridEps {
		if err := ni.net.Step(ni.dt); err != nil {
			return err
		}
	}
	return nil
}

func (ni *NetInstance) End() error {
	if ni.ended {
		return errors.New("instance already ended")
	}
	ni.ended = true
	return nil
}

// Invoke exposes the broadcastable model operations.
func (ni *NetInstance) Invoke(op string, args ...any) (any, error) {
	if ni.ended {
		return nil, errors.New("instance already ended")
	}
	switch op {
	case "spike_count":
		return ni.net.SpikeCount(), nil
	case "spikes":
		return ni.net.Spikes(), nil
	case "rate":
		return ni.net.Rate(), nil
	case "mean_voltage":
		return ni.net.MeanVoltage(), nil
	case "trace":
		v, _ := ni.net.Trace()
		return v, nil
	case "time":
		return ni.net.Time(), nil
	case "reset":
		ni.net.Reset()
		ni.target = 0
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownOp, op)
	}
}
