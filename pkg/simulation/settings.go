package simulation

import (
	"fmt"

	"gopkg.in/gcfg.v1"

	"gravity-sim/pkg/physics"
)

// ExampleSettingsFile documents every key LoadSettings understands.
const ExampleSettingsFile = `[physics]

# Gravitational coupling constant.
g = 1.0

# Base step used for every fixed-rate tick.
dt = 0.01

# Multiplier on wall-clock frame time for real-time driving.
speed = 1.0

# Separation below which the gravity law stops growing. 0 leaves the
# environment's value in place.
min-distance = 0.5

# sequential or snapshot.
policy = snapshot
`

// Settings overrides the physics part of an environment for one run. Zero
// and empty values leave the environment's value untouched.
type Settings struct {
	Physics struct {
		G           float64
		Dt          float64
		Speed       float64
		MinDistance float64 `gcfg:"min-distance"`
		Policy      string
	}
}

// LoadSettings reads an INI-style settings file.
func LoadSettings(fname string) (Settings, error) {
	var s Settings
	if err := gcfg.ReadFileInto(&s, fname); err != nil {
		return Settings{}, fmt.Errorf("read settings %s: %w", fname, err)
	}
	return s, nil
}

// ParseSettings reads settings from a string in the same format.
func ParseSettings(text string) (Settings, error) {
	var s Settings
	if err := gcfg.ReadStringInto(&s, text); err != nil {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}
	return s, nil
}

// Apply returns cfg with the non-zero settings applied.
func (s Settings) Apply(cfg Config) (Config, error) {
	p := s.Physics
	if p.G != 0 {
		cfg.G = p.G
	}
	if p.Dt != 0 {
		cfg.Dt = p.Dt
	}
	if p.Speed != 0 {
		cfg.Speed = p.Speed
	}
	if p.MinDistance != 0 {
		cfg.MinDistance = p.MinDistance
	}
	if p.Policy != "" {
		policy, err := physics.ParsePolicy(p.Policy)
		if err != nil {
			return Config{}, err
		}
		cfg.Policy = policy
	}
	return cfg, cfg.Validate()
}

// LoadEnvironment reads the environment at envPath and, when settingsPath is
// not empty, applies the settings file on top of its physics configuration.
func LoadEnvironment(envPath, settingsPath string) (*Environment, error) {
	ec, err := ReadEnvironment(envPath)
	if err != nil {
		return nil, err
	}
	cfg, err := ec.Config()
	if err != nil {
		return nil, fmt.Errorf("environment %s: %w", envPath, err)
	}
	if settingsPath != "" {
		s, err := LoadSettings(settingsPath)
		if err != nil {
			return nil, err
		}
		if cfg, err = s.Apply(cfg); err != nil {
			return nil, fmt.Errorf("settings %s: %w", settingsPath, err)
		}
	}
	return ec.Build(cfg)
}
