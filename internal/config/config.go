package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/reactorsim/internal/control"
	"github.com/san-kum/reactorsim/internal/nucdata"
	"github.com/san-kum/reactorsim/internal/optim"
	"github.com/san-kum/reactorsim/internal/reactor"
)

const (
	DefaultDuration     = 10.0
	DefaultDt           = 1e-4
	DefaultNominalPower = 1e9  // W
	DefaultRampTime     = 50.0 // s
	DefaultReference    = 16.5 // 1/s, near the critical thermal insertion of the default core
	DefaultGain         = 50.0
	DefaultMaxControl   = 40.0
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Mode string

const (
	ModeProportional Mode = "proportional"
	ModeFixed        Mode = "fixed"
)

type SetpointKind string

const (
	SetpointRamp     SetpointKind = "ramp"
	SetpointConstant SetpointKind = "constant"
)

type ControlConfig struct {
	Mode      Mode                 `yaml:"mode"`
	Setpoint  SetpointKind         `yaml:"setpoint"`
	Nominal   float64              `yaml:"nominal_power"`
	RampTime  float64              `yaml:"ramp_time"`
	Power     float64              `yaml:"setpoint_power"` // constant setpoint
	Reference control.Coefficients `yaml:"reference"`
	Gain      control.Coefficients `yaml:"gain"`
	Max       float64              `yaml:"max"`
	// Fixed is the insertion used in fixed mode.
	Fixed control.Coefficients `yaml:"fixed"`
}

type SweepConfig struct {
	Target       float64 `yaml:"target_power"`
	Min          float64 `yaml:"min"`
	Max          float64 `yaml:"max"`
	Count        int     `yaml:"count"`
	ScanTime     float64 `yaml:"scan_time"`
	FinalTime    float64 `yaml:"final_time"`
	TailFraction float64 `yaml:"tail_fraction"`
	Workers      int     `yaml:"workers"`
}

type Config struct {
	Description string `yaml:"description,omitempty"`
	// NuclearData optionally replaces the embedded nuclide table.
	NuclearData string                `yaml:"nuclear_data,omitempty"`
	Core        reactor.Configuration `yaml:"core"`
	Control     ControlConfig         `yaml:"control"`
	Sweep       SweepConfig           `yaml:"sweep"`
}

func DefaultConfig() *Config {
	core := reactor.DefaultConfiguration()
	core.Duration = DefaultDuration
	core.Dt = DefaultDt
	return &Config{
		Core: core,
		Control: ControlConfig{
			Mode:      ModeProportional,
			Setpoint:  SetpointRamp,
			Nominal:   DefaultNominalPower,
			RampTime:  DefaultRampTime,
			Power:     DefaultNominalPower,
			Reference: control.Coefficients{Thermal: DefaultReference},
			Gain:      control.Coefficients{Thermal: DefaultGain},
			Max:       DefaultMaxControl,
		},
		Sweep: SweepConfig{
			Target:       1e8,
			Min:          0,
			Max:          20,
			Count:        21,
			ScanTime:     5,
			TailFraction: 0.2,
		},
	}
}

func Load(path string) (*Config, error) {
	return Overlay(DefaultConfig(), path)
}

// Overlay reads path on top of a copy of base. Keys missing from the file
// keep the base values; base itself is not modified.
func Overlay(base *Config, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
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

func (c *Config) Clone() *Config {
	out := *c
	if c.Core.Seeds != nil {
		out.Core.Seeds = make(map[nucdata.Nuclide]float64, len(c.Core.Seeds))
		for n, v := range c.Core.Seeds {
			out.Core.Seeds[n] = v
		}
	}
	return &out
}

// Provider returns the nuclide table named by NuclearData, or the embedded one.
func (c *Config) Provider() (*nucdata.Table, error) {
	if c.NuclearData == "" {
		return nucdata.Default()
	}
	return nucdata.LoadFile(c.NuclearData)
}

func (c *Config) Setpoint() (control.Setpoint, error) {
	switch c.Control.Setpoint {
	case SetpointRamp, "":
		return control.Ramp{Nominal: c.Control.Nominal, Duration: c.Control.RampTime}, nil
	case SetpointConstant:
		return control.Constant{Power: c.Control.Power}, nil
	}
	return nil, fmt.Errorf("%w: unknown setpoint %q", ErrInvalidConfig, c.Control.Setpoint)
}

// Law builds the control law described by the control section.
func (c *Config) Law() (control.Law, error) {
	switch c.Control.Mode {
	case ModeProportional, "":
		sp, err := c.Setpoint()
		if err != nil {
			return nil, err
		}
		return control.NewProportional(sp, control.Gains{
			Nominal:   c.Control.Nominal,
			Reference: c.Control.Reference,
			Gain:      c.Control.Gain,
			Max:       c.Control.Max,
		})
	case ModeFixed:
		f := c.Control.Fixed
		if !(f.Fast >= 0) || !(f.Thermal >= 0) {
			return nil, fmt.Errorf("%w: fixed insertion must be non-negative, got %+v", control.ErrInvalidLaw, f)
		}
		return control.NewFixed(f.Fast, f.Thermal), nil
	}
	return nil, fmt.Errorf("%w: unknown control mode %q", ErrInvalidConfig, c.Control.Mode)
}

// Build returns the run configuration and control law. The core section is
// validated by the simulator.
func (c *Config) Build() (reactor.Configuration, control.Law, error) {
	law, err := c.Law()
	if err != nil {
		return reactor.Configuration{}, nil, err
	}
	return c.Core, law, nil
}

// TrackingNominal is the power scale of the tracking metrics, 0 without a setpoint.
func (c *Config) TrackingNominal() float64 {
	if c.Control.Mode == ModeFixed {
		return 0
	}
	return c.Control.Nominal
}

// ControlSweep builds the sweep driver from the sweep section.
func (c *Config) ControlSweep() (*optim.ControlSweep, error) {
	sw := c.Sweep
	if sw.Count < 1 {
		return nil, fmt.Errorf("%w: sweep count must be at least 1, got %d", ErrInvalidConfig, sw.Count)
	}
	if sw.Max < sw.Min {
		return nil, fmt.Errorf("%w: sweep range [%g, %g]", ErrInvalidConfig, sw.Min, sw.Max)
	}
	s := optim.NewControlSweep(sw.Target)
	if sw.Count == 1 {
		s.Candidates = []float64{sw.Min}
	} else {
		s.Candidates = optim.Span(sw.Min, sw.Max, sw.Count)
	}
	s.Fast = c.Control.Fixed.Fast
	s.ScanTime = sw.ScanTime
	s.FinalTime = sw.FinalTime
	if sw.TailFraction > 0 {
		s.TailFraction = sw.TailFraction
	}
	if sw.Workers > 0 {
		s.Workers = sw.Workers
	}
	return s, nil
}
