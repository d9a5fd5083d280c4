// Package scenario runs scripted sequences of multi-backend simulations
// from YAML files, plus parameter sweeps across backends.
package scenario

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/san-kum/multisim/internal/backend"
	"github.com/san-kum/multisim/internal/compare"
	"github.com/san-kum/multisim/internal/multi"
	"github.com/san-kum/multisim/internal/params"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted simulation sequence.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is one multi-backend run within a scenario.
type Step struct {
	Name     string         `yaml:"name"`
	Model    string         `yaml:"model"`
	Backends []string       `yaml:"backends"`
	Duration float64        `yaml:"duration"`
	Steps    int            `yaml:"steps"`
	Params   map[string]any `yaml:"params"`
}

// StepResult is one step's per-backend outcome.
type StepResult struct {
	Name   string
	Model  string
	Report *compare.Report
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s has no steps", path)
	}
	return &sc, nil
}

// Run executes every step in order, fail-fast. Each step gets a fresh
// coordinator; instances never survive their step.
func Run(sc *Scenario, reg *backend.Registry, log zerolog.Logger) ([]StepResult, error) {
	results := make([]StepResult, 0, len(sc.Steps))

	for i, step := range sc.Steps {
		log.Info().Int("step", i+1).Int("total", len(sc.Steps)).Str("model", step.Model).Msg("scenario step")

		report, err := runStep(step, reg, log)
		if err != nil {
			return results, fmt.Errorf("step %d (%s): %w", i+1, step.Name, err)
		}
		results = append(results, StepResult{Name: step.Name, Model: step.Model, Report: report})
	}
	return results, nil
}

func runStep(step Step, reg *backend.Registry, log zerolog.Logger) (*compare.Report, error) {
	if step.Duration <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %f", step.Duration)
	}
	steps := step.Steps
	if steps == 0 {
		steps = 1
	}

	p := params.New(step.Params).Merge(map[string]any{"model": step.Model})
	ms, err := multi.New(step.Backends, backend.ModelFactory(reg), p, log)
	if err != nil {
		return nil, err
	}
	if err := ms.Run(step.Duration, steps); err != nil {
		return nil, err
	}
	report, err := compare.Run(ms)
	if err != nil {
		return nil, err
	}
	if err := ms.End(); err != nil {
		return nil, err
	}
	return report, nil
}

// Sweep varies one model parameter across a range, running the full
// backend set at every value.
type Sweep struct {
	Model     string
	Backends  []string
	ParamName string
	Min, Max  float64
	Values    int
	Duration  float64
	Steps     int
	Base      map[string]any
}

// SweepPoint is the per-backend firing rate at one parameter value.
type SweepPoint struct {
	Value float64
	Rates map[string]float64
}

func RunSweep(sw *Sweep, reg *backend.Registry, log zerolog.Logger) ([]SweepPoint, error) {
	if sw.Values < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 values, got %d", sw.Values)
	}
	if sw.Duration <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %f", sw.Duration)
	}
	steps := sw.Steps
	if steps == 0 {
		steps = 1
	}

	points := make([]SweepPoint, 0, sw.Values)
	delta := (sw.Max - sw.Min) / float64(sw.Values-1)

	for i := 0; i < sw.Values; i++ {
		value := sw.Min + float64(i)*delta
		p := params.New(sw.Base).Merge(map[string]any{
			"model":      sw.Model,
			sw.ParamName: value,
		})

		ms, err := multi.New(sw.Backends, backend.ModelFactory(reg), p, log)
		if err != nil {
			return nil, fmt.Errorf("%s=%.4f: %w", sw.ParamName, value, err)
		}
		if err := ms.Run(sw.Duration, steps); err != nil {
			return nil, fmt.Errorf("%s=%.4f: %w", sw.ParamName, value, err)
		}

		rates, err := ms.Invoke("rate")
		if err != nil {
			return nil, fmt.Errorf("%s=%.4f: %w", sw.ParamName, value, err)
		}
		point := SweepPoint{Value: value, Rates: make(map[string]float64, len(rates))}
		for name, v := range rates {
			point.Rates[name] = v.(float64)
		}
		if err := ms.End(); err != nil {
			return nil, err
		}

		points = append(points, point)
		log.Info().Float64(sw.ParamName, value).Msg("sweep point complete")
	}
	return points, nil
}
