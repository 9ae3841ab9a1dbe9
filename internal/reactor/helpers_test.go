package reactor

import (
	"math"

	. "github.com/onsi/gomega"

	"github.com/san-kum/reactorsim/internal/nucdata"
)

func defaultTable() *nucdata.Table {
	table, err := nucdata.Default()
	Expect(err).NotTo(HaveOccurred())
	return table
}

// zeroCrossSections keeps the real decay and mass data but removes every reaction.
type zeroCrossSections struct{ *nucdata.Table }

func (zeroCrossSections) CrossSection(nucdata.Nuclide, nucdata.Reaction, float64) (float64, error) {
	return 0, nil
}

// noHalfLives reports every half-life as missing.
type noHalfLives struct{ *nucdata.Table }

func (noHalfLives) HalfLife(n nucdata.Nuclide, mode nucdata.DecayMode) (float64, error) {
	return math.Inf(1), &nucdata.Diagnostic{
		Kind:    nucdata.MissingHalfLife,
		Nuclide: n,
		Detail:  string(mode),
		Value:   math.Inf(1),
	}
}

// brokenCrossSections fails every cross-section lookup.
type brokenCrossSections struct{ *nucdata.Table }

func (brokenCrossSections) CrossSection(nucdata.Nuclide, nucdata.Reaction, float64) (float64, error) {
	return 0, nucdata.ErrInvalidEnergy
}

// noMolarMasses knows no molar mass at all.
type noMolarMasses struct{ *nucdata.Table }

func (noMolarMasses) MolarMass(n nucdata.Nuclide) (float64, error) {
	return 0, nucdata.ErrNoMolarMass
}

func nonDecreasing(xs []float64) bool {
	for i := 1; i < len(xs); i++ {
		if xs[i] < xs[i-1] {
			return false
		}
	}
	return true
}

func nonIncreasing(xs []float64) bool {
	for i := 1; i < len(xs); i++ {
		if xs[i] > xs[i-1] {
			return false
		}
	}
	return true
}
