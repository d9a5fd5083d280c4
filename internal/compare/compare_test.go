package compare

import (
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/san-kum/multisim/internal/backend"
	"github.com/san-kum/multisim/internal/model"
	"github.com/san-kum/multisim/internal/multi"
	"github.com/san-kum/multisim/internal/params"
)

func TestRMSE(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 0},
		{"constant offset", []float64{0, 0, 0}, []float64{2, 2, 2}, 2},
		{"empty", nil, nil, 0},
		{"mismatched length", []float64{1, 1}, []float64{1, 1, 99}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RMSE(tt.a, tt.b); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("RMSE = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMaxAbsDiff(t *testing.T) {
	got := MaxAbsDiff([]float64{0, 5, 0}, []float64{1, 2, 0})
	if got != 3 {
		t.Errorf("MaxAbsDiff = %v, want 3", got)
	}
}

func TestRunScoresAllBackends(t *testing.T) {
	backends := []string{"euler", "expeuler", "rk4"}
	p := params.New(map[string]any{
		"model":     "lif",
		"n_neurons": 3,
		"amplitude": 1.0,
	})
	ms, err := multi.New(backends, backend.ModelFactory(backend.NewRegistry()), p, zerolog.Nop())
	if err != nil {
		t.Fatalf("multi.New failed: %v", err)
	}
	if err := ms.Run(20, 4); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	report, err := Run(ms)
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	if report.Reference != "euler" {
		t.Errorf("reference = %s, want euler (first registered)", report.Reference)
	}
	if len(report.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(report.Rows))
	}
	if report.Rows[0].TraceRMSE != 0 {
		t.Errorf("reference RMSE vs itself = %v, want 0", report.Rows[0].TraceRMSE)
	}
	for _, row := range report.Rows {
		if row.TraceRMSE > 1.0 {
			t.Errorf("backend %s RMSE %v implausibly large for a subthreshold run", row.Backend, row.TraceRMSE)
		}
	}
}

// stringInstance answers every op with a string, unlike the shipped
// network instance.
type stringInstance struct{}

func (stringInstance) Run(dt float64) error { return nil }
func (stringInstance) End() error           { return nil }
func (stringInstance) Invoke(op string, args ...any) (any, error) {
	return "not a measurement", nil
}

func TestRunRejectsUnexpectedResultTypes(t *testing.T) {
	factory := func(backend string, p params.Set) (model.Instance, error) {
		return stringInstance{}, nil
	}
	ms, err := multi.New([]string{"euler"}, factory, params.New(nil), zerolog.Nop())
	if err != nil {
		t.Fatalf("multi.New failed: %v", err)
	}

	if _, err := Run(ms); err == nil {
		t.Error("expected error for instances reporting unexpected result types")
	}
}
