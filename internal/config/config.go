package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDuration = 100.0
	DefaultSteps    = 10
	DefaultNeurons  = 10
)

// Config is one multi-backend run: which model, which engines, how long,
// and the model parameters handed read-only to every backend.
type Config struct {
	Model     string         `yaml:"model"`
	Backends  []string       `yaml:"backends"`
	Duration  float64        `yaml:"duration"`
	Steps     int            `yaml:"steps"`
	LogLevel  string         `yaml:"log_level"`
	LogFormat string         `yaml:"log_format"`
	Params    map[string]any `yaml:"params"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:     "lif",
		Backends:  []string{"euler", "rk4", "expeuler"},
		Duration:  DefaultDuration,
		Steps:     DefaultSteps,
		LogLevel:  "info",
		LogFormat: "console",
		Params: map[string]any{
			"n_neurons": DefaultNeurons,
			"stimulus":  "constant",
			"amplitude": 2.0,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if len(c.Backends) == 0 {
		return fmt.Errorf("no backends configured")
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", c.Duration)
	}
	if c.Steps < 1 {
		return fmt.Errorf("steps must be >= 1, got %d", c.Steps)
	}
	return nil
}

// ModelParams merges the model name into the parameter map, since the
// factory reads the neuron model from the parameters.
func (c *Config) ModelParams() map[string]any {
	m := make(map[string]any, len(c.Params)+1)
	for k, v := range c.Params {
		m[k] = v
	}
	m["model"] = c.Model
	return m
}
