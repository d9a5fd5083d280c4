package params

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Set is an immutable parameter mapping shared read-only by every model
// instance built from it. All constructors copy; accessors never expose the
// underlying map.
type Set struct {
	values map[string]any
}

func New(values map[string]any) Set {
	m := make(map[string]any, len(values))
	for k, v := range values {
		m[k] = v
	}
	return Set{values: m}
}

// Load reads a YAML parameter file into a Set.
func Load(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, err
	}
	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return Set{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return New(values), nil
}

func (s Set) Len() int { return len(s.values) }

func (s Set) Has(name string) bool {
	_, ok := s.values[name]
	return ok
}

func (s Set) Get(name string) (any, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Names returns the parameter names in sorted order.
func (s Set) Names() []string {
	names := make([]string, 0, len(s.values))
	for name := range s.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Float returns the parameter as a float64, or def when absent.
// YAML decodes whole numbers as int, so both forms are accepted.
func (s Set) Float(name string, def float64) float64 {
	v, ok := s.values[name]
	if !ok {
		return def
	}
	switch x := v.(type) {
	case float64:
		return x
	case int:
		return float64(x)
	case int64:
		return float64(x)
	default:
		return def
	}
}

func (s Set) Int(name string, def int) int {
	v, ok := s.values[name]
	if !ok {
		return def
	}
	switch x := v.(type) {
	case int:
		return x
	case int64:
		return int(x)
	case float64:
		return int(x)
	default:
		return def
	}
}

func (s Set) String(name, def string) string {
	if v, ok := s.values[name].(string); ok {
		return v
	}
	return def
}

func (s Set) Bool(name string, def bool) bool {
	if v, ok := s.values[name].(bool); ok {
		return v
	}
	return def
}

// Merge returns a new Set with overrides applied on top of s. Neither input
// is mutated.
func (s Set) Merge(overrides map[string]any) Set {
	m := make(map[string]any, len(s.values)+len(overrides))
	for k, v := range s.values {
		m[k] = v
	}
	for k, v := range overrides {
		m[k] = v
	}
	return Set{values: m}
}

// Map returns a copy of the underlying values.
func (s Set) Map() map[string]any {
	m := make(map[string]any, len(s.values))
	for k, v := range s.values {
		m[k] = v
	}
	return m
}
