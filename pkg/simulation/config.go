package simulation

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"gravity-sim/pkg/physics"
)

// ErrInvalidConfig wraps every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid simulation config")

// Reference values of the original demos.
const (
	DefaultG  = 1.0
	DefaultDt = 0.00001
)

// --- Physics configuration ---

// Config carries the values that used to be process-wide constants. Every
// simulator gets its own copy, so differently configured runs can coexist.
type Config struct {
	G           float64
	Dt          float64 // step used by Simulator.Step
	Speed       float64 // scale applied by Simulator.Advance to wall-clock time
	MinDistance float64 // 0 disables the separation clamp
	Policy      physics.Policy
}

func DefaultConfig() Config {
	return Config{
		G:      DefaultG,
		Dt:     DefaultDt,
		Speed:  1,
		Policy: physics.PolicySequential,
	}
}

func (c Config) Validate() error {
	check := func(name string, v float64, allowZero bool) error {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || (v == 0 && !allowZero) {
			return fmt.Errorf("%w: %s = %g", ErrInvalidConfig, name, v)
		}
		return nil
	}
	if err := check("g", c.G, false); err != nil {
		return err
	}
	if err := check("dt", c.Dt, false); err != nil {
		return err
	}
	if err := check("speed", c.Speed, false); err != nil {
		return err
	}
	if err := check("min_distance", c.MinDistance, true); err != nil {
		return err
	}
	if c.Policy != physics.PolicySequential && c.Policy != physics.PolicySnapshot {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, c.Policy)
	}
	return nil
}

func (c Config) gravity() physics.Gravity {
	return physics.Gravity{G: c.G, MinDistance: c.MinDistance}
}

// --- Environment files ---

// EnvironmentConfig is the JSON form of a named starting configuration.
type EnvironmentConfig struct {
	Name        string       `json:"name"`
	Dt          float64      `json:"dt"`
	G           float64      `json:"g,omitempty"`
	Speed       float64      `json:"speed,omitempty"`
	MinDistance float64      `json:"min_distance,omitempty"`
	Policy      string       `json:"policy,omitempty"`
	Preset      string       `json:"preset,omitempty"`
	Bodies      []BodyConfig `json:"bodies"`
	AutoOrbit   bool         `json:"auto_orbit,omitempty"`
}

type BodyConfig struct {
	Mass     float64    `json:"mass"`
	Pos      [2]float64 `json:"pos"`
	Vel      [2]float64 `json:"vel"`
	Velocity string     `json:"velocity,omitempty"`
	Color    string     `json:"color"`
	Radius   float64    `json:"radius,omitempty"`
}

// BodyStyle is what a renderer needs to draw body i. The simulation never
// reads it.
type BodyStyle struct {
	Color  string
	Radius float64
}

// Environment is a loaded environment: its simulator plus styling aligned
// with the simulator's body indices.
type Environment struct {
	Name   string
	Sim    *Simulator
	Styles []BodyStyle
}

// Config merges the file's physics fields over DefaultConfig.
func (ec EnvironmentConfig) Config() (Config, error) {
	cfg := DefaultConfig()
	if ec.G != 0 {
		cfg.G = ec.G
	}
	if ec.Dt != 0 {
		cfg.Dt = ec.Dt
	}
	if ec.Speed != 0 {
		cfg.Speed = ec.Speed
	}
	cfg.MinDistance = ec.MinDistance
	p, err := physics.ParsePolicy(ec.Policy)
	if err != nil {
		return Config{}, err
	}
	cfg.Policy = p
	return cfg, cfg.Validate()
}

// Build creates the environment's simulator with cfg, which usually comes
// from ec.Config, possibly with settings applied on top.
func (ec EnvironmentConfig) Build(cfg Config) (*Environment, error) {
	var (
		sim *Simulator
		err error
	)
	switch ec.Preset {
	case "":
		sim, err = ec.builder().Build(cfg)
	case PresetTwoBody:
		sim, err = DefaultTwoBody(cfg)
	case PresetThreeBody:
		sim, err = DefaultThreeBody(cfg)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownPreset, ec.Preset)
	}
	if err != nil {
		return nil, fmt.Errorf("environment %q: %w", ec.Name, err)
	}

	styles := make([]BodyStyle, sim.Len())
	for i := range styles {
		if i < len(ec.Bodies) {
			styles[i] = BodyStyle{Color: ec.Bodies[i].Color, Radius: ec.Bodies[i].Radius}
		}
	}
	return &Environment{Name: ec.Name, Sim: sim, Styles: styles}, nil
}

func (ec EnvironmentConfig) builder() *Builder {
	b := NewBuilder()
	for _, bc := range ec.Bodies {
		b.Add(bc.Mass, vec(bc.Pos), bc.strategy(ec.AutoOrbit))
	}
	return b
}

func (bc BodyConfig) strategy(autoOrbit bool) VelocityStrategy {
	switch bc.Velocity {
	case "zero":
		return Zero()
	case "orbit":
		return Orbit()
	case "explicit":
		return Explicit(vec(bc.Vel))
	}
	if autoOrbit && bc.Vel == [2]float64{} {
		return Orbit()
	}
	return Explicit(vec(bc.Vel))
}

// ParseEnvironment decodes a JSON environment document.
func ParseEnvironment(data []byte) (EnvironmentConfig, error) {
	var env EnvironmentConfig
	if err := json.Unmarshal(data, &env); err != nil {
		return EnvironmentConfig{}, fmt.Errorf("parse environment: %w", err)
	}
	for i, bc := range env.Bodies {
		switch bc.Velocity {
		case "", "zero", "orbit", "explicit":
		default:
			return EnvironmentConfig{}, fmt.Errorf("%w: body %d velocity %q", ErrUnknownStrategy, i, bc.Velocity)
		}
	}
	return env, nil
}

// ReadEnvironment reads and decodes the environment file at path.
func ReadEnvironment(path string) (EnvironmentConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return EnvironmentConfig{}, fmt.Errorf("read environment: %w", err)
	}
	return ParseEnvironment(data)
}

// LoadConfig reads an environment file and builds it with the file's own
// physics configuration.
func LoadConfig(path string) (*Environment, error) {
	ec, err := ReadEnvironment(path)
	if err != nil {
		return nil, err
	}
	cfg, err := ec.Config()
	if err != nil {
		return nil, fmt.Errorf("environment %q: %w", ec.Name, err)
	}
	return ec.Build(cfg)
}
