package reactor

import (
	"fmt"

	"github.com/san-kum/reactorsim/internal/nucdata"
)

// AtomCount converts a mass percentage of the fuel into a number of atoms.
// molarMass is in kg/mol.
func AtomCount(percent, fuelMass, molarMass float64) float64 {
	mass := percent / 100 * fuelMass
	return mass / molarMass * nucdata.Avogadro
}

// InitialState builds the t = 0 inventory. Bred nuclides, xenon and the
// precursor pool start empty apart from explicit seeds.
func InitialState(cfg Configuration, p nucdata.Provider) (State, []nucdata.Diagnostic, error) {
	diags, err := cfg.Validate()
	if err != nil {
		return State{}, nil, err
	}

	s := State{
		FastNeutrons:    cfg.Initial.FastNeutrons,
		ThermalNeutrons: cfg.Initial.ThermalNeutrons,
		Precursors:      cfg.Initial.Precursors,
	}
	for _, share := range cfg.Fuel.shares() {
		if share.percent == 0 {
			continue
		}
		m, err := p.MolarMass(share.nuclide)
		if err != nil {
			return State{}, nil, fmt.Errorf("initial inventory of %s: %w", share.nuclide, err)
		}
		*s.field(share.nuclide) = AtomCount(share.percent, cfg.FuelMass, m)
	}
	for _, n := range cfg.seedNuclides() {
		*s.field(n) += cfg.Seeds[n]
	}
	return s, diags, nil
}
