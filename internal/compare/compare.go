// Package compare measures agreement between backends that ran the same
// model. The first backend in registration order is the reference; every
// other backend is scored against it.
package compare

import (
	"fmt"
	"math"

	"github.com/san-kum/multisim/internal/multi"
)

// Row is one backend's agreement scores.
type Row struct {
	Backend     string
	SpikeCount  int
	Rate        float64
	TraceRMSE   float64 // vs reference trace
	MaxVoltDiff float64 // vs reference trace
}

type Report struct {
	Reference string
	Rows      []Row
}

// Run collects spike counts, rates and traces from every backend and
// scores them against the reference. All instances must expose the
// standard network operations.
func Run(ms *multi.Sim) (*Report, error) {
	counts, err := ms.Invoke("spike_count")
	if err != nil {
		return nil, fmt.Errorf("collect spike counts: %w", err)
	}
	rates, err := ms.Invoke("rate")
	if err != nil {
		return nil, fmt.Errorf("collect rates: %w", err)
	}
	traces, err := ms.Invoke("trace")
	if err != nil {
		return nil, fmt.Errorf("collect traces: %w", err)
	}

	backends := ms.Backends()
	ref, ok := traces[backends[0]].([]float64)
	if !ok {
		return nil, fmt.Errorf("trace from %s: got %T, want []float64", backends[0], traces[backends[0]])
	}

	report := &Report{Reference: backends[0]}
	for _, name := range backends {
		trace, ok := traces[name].([]float64)
		if !ok {
			return nil, fmt.Errorf("trace from %s: got %T, want []float64", name, traces[name])
		}
		count, ok := counts[name].(int)
		if !ok {
			return nil, fmt.Errorf("spike_count from %s: got %T, want int", name, counts[name])
		}
		rate, ok := rates[name].(float64)
		if !ok {
			return nil, fmt.Errorf("rate from %s: got %T, want float64", name, rates[name])
		}
		report.Rows = append(report.Rows, Row{
			Backend:     name,
			SpikeCount:  count,
			Rate:        rate,
			TraceRMSE:   RMSE(ref, trace),
			MaxVoltDiff: MaxAbsDiff(ref, trace),
		})
	}
	return report, nil
}

// RMSE is the root-mean-square difference over the overlapping prefix of
// two traces. Backends with different grids produce different lengths;
// only the shared samples are compared.
func RMSE(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum / float64(n))
}

func MaxAbsDiff(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	max := 0.0
	for i := 0; i < n; i++ {
		d := math.Abs(a[i] - b[i])
		if d > max {
			max = d
		}
	}
	return max
}
