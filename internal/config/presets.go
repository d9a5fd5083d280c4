package config

var Presets = map[string]map[string]*Config{
	"lif": {
		"quiet": {
			Model: "lif", Backends: []string{"euler", "expeuler"}, Duration: 100, Steps: 10,
			Params: map[string]any{"n_neurons": 10, "stimulus": "constant", "amplitude": 1.0},
		},
		"driven": {
			Model: "lif", Backends: []string{"euler", "rk4", "expeuler"}, Duration: 200, Steps: 20,
			Params: map[string]any{"n_neurons": 20, "stimulus": "constant", "amplitude": 2.5},
		},
		"pulse": {
			Model: "lif", Backends: []string{"euler", "rk4", "expeuler"}, Duration: 150, Steps: 15,
			Params: map[string]any{"n_neurons": 10, "stimulus": "pulse", "amplitude": 3.0, "start": 20.0, "stop": 80.0},
		},
		"noisy": {
			Model: "lif", Backends: []string{"euler", "expeuler"}, Duration: 500, Steps: 50,
			Params: map[string]any{"n_neurons": 50, "stimulus": "poisson", "rate": 800.0, "amplitude": 8.0, "p_connect": 0.1, "weight": 0.3},
		},
	},
	"izhikevich": {
		"regular": {
			Model: "izhikevich", Backends: []string{"euler", "rk4"}, Duration: 300, Steps: 30,
			Params: map[string]any{"n_neurons": 10, "stimulus": "constant", "amplitude": 10.0},
		},
		"network": {
			Model: "izhikevich", Backends: []string{"euler", "rk4"}, Duration: 500, Steps: 50,
			Params: map[string]any{"n_neurons": 50, "stimulus": "poisson", "rate": 600.0, "amplitude": 15.0, "p_connect": 0.1, "weight": 2.0},
		},
	},
	"adex": {
		"adapting": {
			Model: "adex", Backends: []string{"euler", "rk4"}, Duration: 400, Steps: 40,
			Params: map[string]any{"n_neurons": 10, "stimulus": "pulse", "amplitude": 0.8, "start": 50.0, "stop": 350.0},
		},
	},
}

// GetPreset returns a copy of the named preset, so callers can overlay
// flags without mutating the shared table.
func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}

	c := *cfg
	c.Backends = append([]string(nil), cfg.Backends...)
	c.Params = make(map[string]any, len(cfg.Params))
	for k, v := range cfg.Params {
		c.Params[k] = v
	}
	return &c
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	return names
}
