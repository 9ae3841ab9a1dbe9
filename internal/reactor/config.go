package reactor

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/reactorsim/internal/nucdata"
	"github.com/san-kum/reactorsim/internal/sim"
)

// FuelComposition gives each fuel nuclide as a percentage of the total fuel mass.
type FuelComposition struct {
	U235  float64 `yaml:"u235" json:"u235"`
	U238  float64 `yaml:"u238" json:"u238"`
	Pu239 float64 `yaml:"pu239" json:"pu239"`
	Th232 float64 `yaml:"th232" json:"th232"`
}

type fuelShare struct {
	nuclide nucdata.Nuclide
	percent float64
}

func (f FuelComposition) shares() []fuelShare {
	return []fuelShare{
		{nucdata.U235, f.U235},
		{nucdata.U238, f.U238},
		{nucdata.Pu239, f.Pu239},
		{nucdata.Th232, f.Th232},
	}
}

func (f FuelComposition) Total() float64 {
	return f.U235 + f.U238 + f.Pu239 + f.Th232
}

// FissionProductSplit is the percentage of fission products realized as Xe-135
// versus everything else, which is lumped into the precursor pool.
type FissionProductSplit struct {
	Xe135 float64 `yaml:"xe135" json:"xe135"`
	Other float64 `yaml:"other" json:"other"`
}

func (s FissionProductSplit) Total() float64 { return s.Xe135 + s.Other }

// XenonYield returns y_Xe as a fraction.
func (s FissionProductSplit) XenonYield() float64 { return s.Xe135 / 100 }

// Initial holds the whole-core populations present at t = 0 that do not
// follow from the fuel composition.
type Initial struct {
	FastNeutrons    float64 `yaml:"fast_neutrons" json:"fast_neutrons"`
	ThermalNeutrons float64 `yaml:"thermal_neutrons" json:"thermal_neutrons"`
	Precursors      float64 `yaml:"precursors" json:"precursors"`
}

type Configuration struct {
	Fuel            FuelComposition     `yaml:"fuel" json:"fuel"`
	FissionProducts FissionProductSplit `yaml:"fission_products" json:"fission_products"`
	FuelMass        float64             `yaml:"fuel_mass" json:"fuel_mass"` // kg
	Initial         Initial             `yaml:"initial" json:"initial"`
	// Seeds adds atoms of any tracked nuclide on top of the fuel inventory.
	Seeds    map[nucdata.Nuclide]float64 `yaml:"seeds,omitempty" json:"seeds,omitempty"`
	Duration float64                     `yaml:"duration" json:"duration"`
	Dt       float64                     `yaml:"dt" json:"dt"`
	Params   Params                      `yaml:"params" json:"params"`
}

// DefaultConfiguration is a 25 kg, 3% enriched uranium core started from
// 1e10 thermal neutrons.
func DefaultConfiguration() Configuration {
	return Configuration{
		Fuel:            FuelComposition{U235: 3, U238: 97},
		FissionProducts: FissionProductSplit{Xe135: 5, Other: 95},
		FuelMass:        25,
		Initial:         Initial{ThermalNeutrons: 1e10},
		Duration:        1.0,
		Dt:              1e-4,
		Params:          DefaultParams(),
	}
}

func (c Configuration) SimConfig() sim.Config {
	return sim.Config{Dt: c.Dt, Duration: c.Duration}
}

// Validate rejects invalid input and reports recoverable irregularities, such
// as a composition that does not sum to 100%, as diagnostics.
func (c Configuration) Validate() ([]nucdata.Diagnostic, error) {
	if err := c.SimConfig().Validate(); err != nil {
		return nil, err
	}
	if err := c.Params.Validate(); err != nil {
		return nil, err
	}
	if !(c.FuelMass > 0) || math.IsInf(c.FuelMass, 0) {
		return nil, fmt.Errorf("%w: fuel mass must be positive, got %g", ErrInvalidInput, c.FuelMass)
	}

	for _, s := range c.Fuel.shares() {
		if !nonNegative(s.percent) {
			return nil, fmt.Errorf("%w: %s fraction %g", ErrInvalidComposition, s.nuclide, s.percent)
		}
	}
	if !nonNegative(c.FissionProducts.Xe135) || !nonNegative(c.FissionProducts.Other) {
		return nil, fmt.Errorf("%w: fission product split %+v", ErrInvalidComposition, c.FissionProducts)
	}
	if c.FissionProducts.Xe135 > 100 {
		return nil, fmt.Errorf("%w: xe135 share %g exceeds 100%%", ErrInvalidComposition, c.FissionProducts.Xe135)
	}

	initial := []struct {
		name string
		v    float64
	}{
		{"fast neutrons", c.Initial.FastNeutrons},
		{"thermal neutrons", c.Initial.ThermalNeutrons},
		{"precursors", c.Initial.Precursors},
	}
	for _, f := range initial {
		if !nonNegative(f.v) {
			return nil, fmt.Errorf("%w: initial %s %g", ErrInvalidInput, f.name, f.v)
		}
	}

	var state State
	for n, v := range c.Seeds {
		if state.field(n) == nil {
			return nil, fmt.Errorf("%w: seed nuclide %s is not tracked", ErrInvalidInput, n)
		}
		if !nonNegative(v) {
			return nil, fmt.Errorf("%w: seed %s = %g", ErrInvalidInput, n, v)
		}
	}

	var diags []nucdata.Diagnostic
	if total := c.Fuel.Total(); !normalized(total) {
		diags = append(diags, nucdata.Diagnostic{
			Kind:   nucdata.CompositionNotNormalized,
			Detail: fmt.Sprintf("fuel fractions sum to %g%%", total),
			Value:  total,
		})
	}
	if total := c.FissionProducts.Total(); !normalized(total) {
		diags = append(diags, nucdata.Diagnostic{
			Kind:   nucdata.CompositionNotNormalized,
			Detail: fmt.Sprintf("fission product split sums to %g%%", total),
			Value:  total,
		})
	}
	return diags, nil
}

func (c Configuration) seedNuclides() []nucdata.Nuclide {
	out := make([]nucdata.Nuclide, 0, len(c.Seeds))
	for n := range c.Seeds {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func nonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}

func normalized(total float64) bool {
	return math.Abs(total-100) <= 1e-6
}
