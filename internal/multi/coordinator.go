// Package multi runs the same model on several simulator backends at once.
//
// A Sim holds one model instance per backend, built from a shared read-only
// parameter set. Operations are broadcast to every instance in registration
// order and fail fast: the first error aborts the operation with no rollback
// of instances that already completed. Callers that need per-backend
// bookkeeping across a failure must keep it themselves.
package multi

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/san-kum/multisim/internal/model"
	"github.com/san-kum/multisim/internal/params"
)

var (
	// ErrEnded is returned by every operation once End has been called.
	ErrEnded = errors.New("coordinator already ended")

	// ErrReservedOp is returned by Invoke and TryInvoke for operation
	// names owned by the coordinator itself.
	ErrReservedOp = errors.New("operation name is reserved")
)

// reserved names are driven through Run and End, never broadcast by name.
var reserved = map[string]bool{
	"run": true,
	"end": true,
}

// Sim is the fan-out coordinator. The backend set is fixed at construction;
// dispatch is strictly sequential and single-threaded.
type Sim struct {
	backends  []string
	instances map[string]model.Instance
	log       zerolog.Logger
	ended     bool
}

// New builds one model instance per backend, in order. A factory failure
// aborts construction: no partial registry is returned and instances already
// built are not torn down (their factory owns cleanup on its own error paths).
func New(backends []string, factory model.Factory, p params.Set, log zerolog.Logger) (*Sim, error) {
	if len(backends) == 0 {
		return nil, errors.New("no backends configured")
	}
	if factory == nil {
		return nil, errors.New("nil model factory")
	}

	s := &Sim{
		backends:  append([]string(nil), backends...),
		instances: make(map[string]model.Instance, len(backends)),
		log:       log,
	}
	for _, name := range s.backends {
		if _, dup := s.instances[name]; dup {
			return nil, fmt.Errorf("duplicate backend %q", name)
		}
		inst, err := factory(name, p)
		if err != nil {
			return nil, fmt.Errorf("build model on %s: %w", name, err)
		}
		s.instances[name] = inst
		log.Debug().Str("backend", name).Msg("model instance built")
	}
	return s, nil
}

// Backends returns the registration order used by every broadcast.
func (s *Sim) Backends() []string {
	return append([]string(nil), s.backends...)
}

// Instance returns the model built for one backend, for callers that need
// to address a single simulator directly.
func (s *Sim) Instance(backend string) (model.Instance, bool) {
	inst, ok := s.instances[backend]
	return inst, ok
}

// Invoke broadcasts a named operation to every instance in registration
// order and collects the results keyed by backend. The first failure aborts
// the broadcast: the error is returned and results already produced are
// discarded.
func (s *Sim) Invoke(op string, args ...any) (map[string]any, error) {
	if s.ended {
		return nil, ErrEnded
	}
	if reserved[op] {
		return nil, fmt.Errorf("%w: %q", ErrReservedOp, op)
	}

	results := make(map[string]any, len(s.backends))
	for _, name := range s.backends {
		v, err := s.instances[name].Invoke(op, args...)
		if err != nil {
			return nil, fmt.Errorf("%s on %s: %w", op, name, err)
		}
		results[name] = v
	}
	return results, nil
}

// Outcome is one backend's result from a best-effort broadcast.
type Outcome struct {
	Value any
	Err   error
}

// TryInvoke is the best-effort variant of Invoke: every instance is called
// regardless of earlier failures, and each backend's value or error is
// reported separately. Reserved names and an ended coordinator yield an
// outcome map where every backend carries the same error.
func (s *Sim) TryInvoke(op string, args ...any) map[string]Outcome {
	outcomes := make(map[string]Outcome, len(s.backends))
	if s.ended {
		for _, name := range s.backends {
			outcomes[name] = Outcome{Err: ErrEnded}
		}
		return outcomes
	}
	if reserved[op] {
		err := fmt.Errorf("%w: %q", ErrReservedOp, op)
		for _, name := range s.backends {
			outcomes[name] = Outcome{Err: err}
		}
		return outcomes
	}

	for _, name := range s.backends {
		v, err := s.instances[name].Invoke(op, args...)
		outcomes[name] = Outcome{Value: v, Err: err}
	}
	return outcomes
}

// Run advances every instance through steps equal slices of simtime,
// invoking the callbacks in order after each completed step. Total simulated
// time per instance is steps*(simtime/steps), which may differ from simtime
// by float rounding; no trailing partial step is issued. A failing run call
// aborts immediately, leaving earlier backends further along in simulated
// time than later ones.
func (s *Sim) Run(simtime float64, steps int, callbacks ...func()) error {
	if s.ended {
		return ErrEnded
	}
	if simtime <= 0 {
		return fmt.Errorf("simtime must be positive, got %f", simtime)
	}
	if steps < 1 {
		return fmt.Errorf("steps must be >= 1, got %d", steps)
	}

	dt := simtime / float64(steps)
	for i := 0; i < steps; i++ {
		for _, name := range s.backends {
			if err := s.instances[name].Run(dt); err != nil {
				return fmt.Errorf("step %d on %s: %w", i, name, err)
			}
		}
		for _, cb := range callbacks {
			cb()
		}
		s.log.Debug().Int("step", i).Float64("dt", dt).Msg("step complete")
	}
	return nil
}

// End tears down every instance in registration order and puts the
// coordinator in its terminal state. A teardown failure aborts the pass, so
// instances after the failing one keep their resources; the coordinator is
// terminal either way, and every later call (End included) returns ErrEnded.
func (s *Sim) End() error {
	if s.ended {
		return ErrEnded
	}
	s.ended = true
	for _, name := range s.backends {
		if err := s.instances[name].End(); err != nil {
			return fmt.Errorf("end %s: %w", name, err)
		}
		s.log.Debug().Str("backend", name).Msg("model instance ended")
	}
	return nil
}
