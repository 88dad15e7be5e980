package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/leanviz/layout3d/internal/physics"
	"github.com/leanviz/layout3d/internal/stability"
)

const (
	DefaultMaxSteps = 2000
	DefaultSeed     = 42
	DefaultSpacing  = 10.0
)

// Run controls the headless layout loop: timestep, step budget,
// convergence thresholds and the seeded initial placement.
type Run struct {
	Dt                 float64 `yaml:"dt"`
	MaxSteps           int     `yaml:"max_steps"`
	StabilityThreshold float64 `yaml:"stability_threshold"`
	StableRun          int     `yaml:"stable_run"`
	Seed               int64   `yaml:"seed"`
	// Spacing scales the radius of the random initial placement.
	Spacing float64 `yaml:"spacing"`
}

// Config is the full file-level configuration: the engine's force
// parameters plus the run loop settings around them.
type Config struct {
	Physics physics.Config `yaml:"physics"`
	Run     Run            `yaml:"run"`
}

func DefaultConfig() *Config {
	return &Config{
		Physics: physics.DefaultConfig(),
		Run: Run{
			Dt:                 physics.DefaultDt,
			MaxSteps:           DefaultMaxSteps,
			StabilityThreshold: stability.DefaultThreshold,
			StableRun:          stability.DefaultRun,
			Seed:               DefaultSeed,
			Spacing:            DefaultSpacing,
		},
	}
}

// Load reads a YAML config over the defaults, so partial files work.
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
