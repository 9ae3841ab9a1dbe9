package nucdata

import "math"

const (
	Avogadro = 6.02214076e23   // 1/mol
	Barn     = 1e-28           // m²
	MeV      = 1.602176634e-13 // J
	Day      = 86400.0         // s

	MinEnergy = 1e-5 // eV
	MaxEnergy = 2e7  // eV
)

// DecayConstant converts a half-life to λ = ln2/T½. An infinite half-life
// maps to zero.
func DecayConstant(halfLife float64) float64 {
	if math.IsInf(halfLife, 1) || halfLife <= 0 {
		return 0
	}
	return math.Ln2 / halfLife
}
