package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Model != "lif" {
		t.Errorf("expected model lif, got %s", cfg.Model)
	}
	if len(cfg.Backends) == 0 {
		t.Error("default config has no backends")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no backends", func(c *Config) { c.Backends = nil }},
		{"zero duration", func(c *Config) { c.Duration = 0 }},
		{"negative duration", func(c *Config) { c.Duration = -5 }},
		{"zero steps", func(c *Config) { c.Steps = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	cfg := DefaultConfig()
	cfg.Model = "izhikevich"
	cfg.Backends = []string{"rk4"}
	cfg.Duration = 42

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Model != "izhikevich" {
		t.Errorf("model = %s, want izhikevich", loaded.Model)
	}
	if len(loaded.Backends) != 1 || loaded.Backends[0] != "rk4" {
		t.Errorf("backends = %v, want [rk4]", loaded.Backends)
	}
	if loaded.Duration != 42 {
		t.Errorf("duration = %v, want 42", loaded.Duration)
	}
}

func TestModelParamsIncludesModel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Model = "adex"
	m := cfg.ModelParams()
	if m["model"] != "adex" {
		t.Errorf("model param = %v, want adex", m["model"])
	}
	if _, ok := m["n_neurons"]; !ok {
		t.Error("params lost n_neurons")
	}
	// the returned map is a copy
	m["n_neurons"] = 999
	if cfg.Params["n_neurons"] == 999 {
		t.Error("ModelParams exposed the underlying map")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("lif", "driven")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Model != "lif" {
		t.Errorf("preset model = %s, want lif", cfg.Model)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("preset invalid: %v", err)
	}
}

func TestGetPresetReturnsCopy(t *testing.T) {
	cfg := GetPreset("lif", "quiet")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	cfg.Backends = []string{"rk4"}
	cfg.Params["amplitude"] = 99.0
	cfg.Duration = 1

	fresh := GetPreset("lif", "quiet")
	if fresh.Duration == 1 {
		t.Error("mutating a preset copy changed the shared table")
	}
	if len(fresh.Backends) != 2 {
		t.Errorf("preset backends = %v, want the original pair", fresh.Backends)
	}
	if fresh.Params["amplitude"] == 99.0 {
		t.Error("preset params map is shared with the caller")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("lif", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "quiet"); cfg != nil {
		t.Error("expected nil for nonexistent model")
	}
}

func TestListPresets(t *testing.T) {
	if presets := ListPresets("lif"); len(presets) == 0 {
		t.Error("expected presets for lif")
	}
	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent model")
	}
}
