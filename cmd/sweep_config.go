package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/warehouse-sim/warehouse-sim/sim/sweep"
)

// SweepConfig represents a sweep YAML file.
//
//	seed: 42
//	threads: 8
//	parameters:
//	  lambda_g: [0.5, 1.0]
//	  n: {start: 1, stop: 4, step: 1}
//	  duration: 100
type SweepConfig struct {
	Seed       *int64     `yaml:"seed"`
	Threads    *int       `yaml:"threads"`
	Parameters sweep.Grid `yaml:"parameters"`
}

// loadSweepConfig parses a sweep file. Unknown keys are errors so typos
// in parameter names do not silently fall back to defaults.
func loadSweepConfig(path string) (*SweepConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sweep config: %w", err)
	}
	var cfg SweepConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing sweep config %s: %w", path, err)
	}
	return &cfg, nil
}
