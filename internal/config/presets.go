package config

import (
	"sort"

	"github.com/san-kum/reactorsim/internal/control"
	"github.com/san-kum/reactorsim/internal/reactor"
)

func preset(desc string, mutate func(*Config)) *Config {
	c := DefaultConfig()
	c.Description = desc
	mutate(c)
	return c
}

var Presets = map[string]*Config{
	"startup": preset("ramp a fresh 3% core to 1 GW over 50 s", func(c *Config) {
		c.Core.Duration = 60
	}),
	"hold": preset("hold 100 MW from a low-power start", func(c *Config) {
		c.Core.Duration = 20
		c.Control.Setpoint = SetpointConstant
		c.Control.Nominal = 1e8
		c.Control.Power = 1e8
	}),
	"cold": preset("no feedback, rods well in: the population dies away", func(c *Config) {
		c.Core.Duration = 5
		c.Control.Mode = ModeFixed
		c.Control.Fixed = control.Coefficients{Thermal: 25}
	}),
	"thorium": preset("mixed U/Th fuel with fast reactions and breeding", func(c *Config) {
		c.Core.Duration = 30
		c.Core.Fuel = reactor.FuelComposition{U235: 5, U238: 75, Th232: 20}
		c.Core.Params.FastReactions = true
		c.Control.Reference = control.Coefficients{Thermal: 20}
	}),
	"scan": preset("sweep fixed thermal insertions for 100 MW", func(c *Config) {
		c.Core.Duration = 5
		c.Core.Initial = reactor.Initial{FastNeutrons: 1e10, ThermalNeutrons: 1e10}
		c.Control.Mode = ModeFixed
		c.Sweep.FinalTime = 20
	}),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
