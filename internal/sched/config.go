package sched

import (
	"os"

	yaml "github.com/goccy/go-yaml"
)

// Config mirrors the scheduler section of config.yml. All values are in
// milliseconds.
type Config struct {
	TickMS           int64 `yaml:"tick_ms"`            // idle/retry tick, 1 by default
	QuantumMS        int64 `yaml:"quantum_ms"`         // base time quantum, 10 by default
	MinGranularityMS int64 `yaml:"min_granularity_ms"` // slice floor, 5 by default
}

func defaultConfig() Config {
	return Config{
		TickMS:           1,
		QuantumMS:        10,
		MinGranularityMS: 5,
	}
}

// Load reads YAML and overrides defaults; empty or missing path falls
// back to defaults only.
func Load(path string) Config {
	cfg := defaultConfig()

	if path == "" {
		return cfg
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	_ = yaml.Unmarshal(data, &cfg)

	// sanity clamps
	if cfg.TickMS <= 0 {
		cfg.TickMS = 1
	}
	if cfg.QuantumMS <= 0 {
		cfg.QuantumMS = 10
	}
	if cfg.MinGranularityMS <= 0 {
		cfg.MinGranularityMS = 5
	}

	return cfg
}
