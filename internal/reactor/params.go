package reactor

import (
	"fmt"
	"math"
)

const (
	DefaultCoreVolume        = 10.0   // m³
	DefaultThermalEnergy     = 0.025  // eV
	DefaultFastEnergy        = 1e6    // eV
	DefaultThermalSpeed      = 2.2e3  // m/s
	DefaultFastSpeed         = 1.4e7  // m/s
	DefaultPromptNeutrons    = 2.0    // ν
	DefaultDelayedYield      = 0.0035 // neutrons per precursor decay
	DefaultPrecursorHalfLife = 1.0    // s
	DefaultSlowdownHalfLife  = 5e-4   // s, λ ≈ 1386 1/s
	DefaultPromptEnergy      = 190.0  // MeV per fission
	DefaultFPDecayEnergy     = 7.0    // MeV per fission-product decay
	DefaultSlowdownEnergy    = 2.0    // MeV per thermalized neutron
)

// Params are the tunable physical constants of the model.
type Params struct {
	CoreVolume    float64 `yaml:"core_volume" json:"core_volume"`
	ThermalEnergy float64 `yaml:"thermal_energy_ev" json:"thermal_energy_ev"`
	FastEnergy    float64 `yaml:"fast_energy_ev" json:"fast_energy_ev"`
	ThermalSpeed  float64 `yaml:"thermal_speed" json:"thermal_speed"`
	FastSpeed     float64 `yaml:"fast_speed" json:"fast_speed"`

	PromptNeutrons    float64 `yaml:"prompt_neutrons" json:"prompt_neutrons"`
	DelayedYield      float64 `yaml:"delayed_yield" json:"delayed_yield"`
	PrecursorHalfLife float64 `yaml:"precursor_half_life" json:"precursor_half_life"`
	SlowdownHalfLife  float64 `yaml:"slowdown_half_life" json:"slowdown_half_life"`

	LeakFast    float64 `yaml:"leak_fast" json:"leak_fast"`
	LeakThermal float64 `yaml:"leak_thermal" json:"leak_thermal"`

	PromptEnergy   float64 `yaml:"prompt_energy_mev" json:"prompt_energy_mev"`
	FPDecayEnergy  float64 `yaml:"fp_decay_energy_mev" json:"fp_decay_energy_mev"`
	SlowdownEnergy float64 `yaml:"slowdown_energy_mev" json:"slowdown_energy_mev"`

	// FastReactions lets fast-group fission and capture on heavy nuclides
	// drive the nuclide balances and remove fast neutrons. When false only
	// thermal-group reactions do.
	FastReactions bool `yaml:"fast_reactions" json:"fast_reactions"`
	// DisableKEff skips the k_eff diagnostic series.
	DisableKEff bool `yaml:"disable_keff" json:"disable_keff"`
}

func DefaultParams() Params {
	return Params{
		CoreVolume:        DefaultCoreVolume,
		ThermalEnergy:     DefaultThermalEnergy,
		FastEnergy:        DefaultFastEnergy,
		ThermalSpeed:      DefaultThermalSpeed,
		FastSpeed:         DefaultFastSpeed,
		PromptNeutrons:    DefaultPromptNeutrons,
		DelayedYield:      DefaultDelayedYield,
		PrecursorHalfLife: DefaultPrecursorHalfLife,
		SlowdownHalfLife:  DefaultSlowdownHalfLife,
		PromptEnergy:      DefaultPromptEnergy,
		FPDecayEnergy:     DefaultFPDecayEnergy,
		SlowdownEnergy:    DefaultSlowdownEnergy,
	}
}

func (p Params) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"core_volume", p.CoreVolume},
		{"thermal_energy_ev", p.ThermalEnergy},
		{"fast_energy_ev", p.FastEnergy},
		{"thermal_speed", p.ThermalSpeed},
		{"fast_speed", p.FastSpeed},
		{"precursor_half_life", p.PrecursorHalfLife},
		{"slowdown_half_life", p.SlowdownHalfLife},
	}
	for _, f := range positive {
		if !(f.v > 0) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidParams, f.name, f.v)
		}
	}

	nonNegative := []struct {
		name string
		v    float64
	}{
		{"prompt_neutrons", p.PromptNeutrons},
		{"delayed_yield", p.DelayedYield},
		{"leak_fast", p.LeakFast},
		{"leak_thermal", p.LeakThermal},
		{"prompt_energy_mev", p.PromptEnergy},
		{"fp_decay_energy_mev", p.FPDecayEnergy},
		{"slowdown_energy_mev", p.SlowdownEnergy},
	}
	for _, f := range nonNegative {
		if !(f.v >= 0) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s must be non-negative, got %g", ErrInvalidParams, f.name, f.v)
		}
	}
	return nil
}
