package model

import (
	"errors"

	"github.com/san-kum/multisim/internal/params"
)

// Instance is the capability contract every backend-built model must satisfy.
// Run and End are the lifecycle operations the coordinator drives directly;
// everything else goes through Invoke by name, so the set of broadcastable
// operations is explicit per instance rather than discovered by reflection.
type Instance interface {
	// Run advances the model by dt units of simulated time.
	Run(dt float64) error

	// End releases whatever the instance holds. The coordinator calls it
	// exactly once.
	End() error

	// Invoke calls a named model operation. Unknown names must return
	// an error wrapping ErrUnknownOp.
	Invoke(op string, args ...any) (any, error)
}

// Factory builds one model instance for the given backend, sharing the
// read-only parameter set. Construction is expected to be expensive: it may
// seed RNGs and allocate network state.
type Factory func(backend string, p params.Set) (Instance, error)

// ErrUnknownOp is the sentinel for Invoke calls naming an operation the
// instance does not support.
var ErrUnknownOp = errors.New("unknown model operation")
