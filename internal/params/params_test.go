package params

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSetAccessors(t *testing.T) {
	s := New(map[string]any{
		"tau_m":   20.0,
		"n":       100,
		"model":   "lif",
		"record":  true,
		"integer": int64(7),
	})

	if got := s.Float("tau_m", 0); got != 20.0 {
		t.Errorf("Float(tau_m) = %v, want 20.0", got)
	}
	if got := s.Float("n", 0); got != 100.0 {
		t.Errorf("Float(n) = %v, want 100 (int promotion)", got)
	}
	if got := s.Int("n", 0); got != 100 {
		t.Errorf("Int(n) = %v, want 100", got)
	}
	if got := s.Int("integer", 0); got != 7 {
		t.Errorf("Int(integer) = %v, want 7", got)
	}
	if got := s.String("model", ""); got != "lif" {
		t.Errorf("String(model) = %q, want lif", got)
	}
	if !s.Bool("record", false) {
		t.Error("Bool(record) = false, want true")
	}
	if got := s.Float("missing", 1.5); got != 1.5 {
		t.Errorf("Float(missing) = %v, want default 1.5", got)
	}
}

func TestSetIsImmutable(t *testing.T) {
	src := map[string]any{"a": 1.0}
	s := New(src)

	src["a"] = 2.0
	if got := s.Float("a", 0); got != 1.0 {
		t.Errorf("Set observed mutation of source map: got %v", got)
	}

	m := s.Map()
	m["a"] = 3.0
	if got := s.Float("a", 0); got != 1.0 {
		t.Errorf("Set observed mutation of Map() copy: got %v", got)
	}
}

func TestMerge(t *testing.T) {
	base := New(map[string]any{"a": 1.0, "b": 2.0})
	merged := base.Merge(map[string]any{"b": 20.0, "c": 30.0})

	if got := merged.Float("a", 0); got != 1.0 {
		t.Errorf("merged a = %v, want 1.0", got)
	}
	if got := merged.Float("b", 0); got != 20.0 {
		t.Errorf("merged b = %v, want 20.0", got)
	}
	if got := merged.Float("c", 0); got != 30.0 {
		t.Errorf("merged c = %v, want 30.0", got)
	}
	if got := base.Float("b", 0); got != 2.0 {
		t.Errorf("Merge mutated base: b = %v, want 2.0", got)
	}
	if base.Has("c") {
		t.Error("Merge mutated base: c present")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "params.yaml")
	content := "tau_m: 20.0\nn_neurons: 50\nmodel: izhikevich\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got := s.Float("tau_m", 0); got != 20.0 {
		t.Errorf("tau_m = %v, want 20.0", got)
	}
	if got := s.Int("n_neurons", 0); got != 50 {
		t.Errorf("n_neurons = %v, want 50", got)
	}
	if got := s.String("model", ""); got != "izhikevich" {
		t.Errorf("model = %q, want izhikevich", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
