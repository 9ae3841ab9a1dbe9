package nucdata

import "fmt"

// Nuclide names a nuclide in compact atomic notation, e.g. "U235".
type Nuclide string

const (
	Th232   Nuclide = "Th232"
	Th233   Nuclide = "Th233"
	Pa233   Nuclide = "Pa233"
	U233    Nuclide = "U233"
	U235    Nuclide = "U235"
	U236    Nuclide = "U236"
	U237    Nuclide = "U237"
	U238    Nuclide = "U238"
	U239    Nuclide = "U239"
	Np239   Nuclide = "Np239"
	Pu239   Nuclide = "Pu239"
	Pu240   Nuclide = "Pu240"
	Xe135   Nuclide = "Xe135"
	Neutron Nuclide = "n"
)

type Reaction string

const (
	Fission Reaction = "Fission"
	Capture Reaction = "Capture"
)

func (r Reaction) Valid() bool {
	return r == Fission || r == Capture
}

func ParseReaction(s string) (Reaction, error) {
	r := Reaction(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q (use %s or %s)", ErrUnknownReaction, s, Fission, Capture)
	}
	return r, nil
}

type DecayMode string

const (
	Alpha     DecayMode = "Alpha"
	BetaMinus DecayMode = "BetaMinus"
	BetaPlus  DecayMode = "BetaPlus"
	Gamma     DecayMode = "Gamma"
)

func (m DecayMode) Valid() bool {
	switch m {
	case Alpha, BetaMinus, BetaPlus, Gamma:
		return true
	}
	return false
}

func ParseDecayMode(s string) (DecayMode, error) {
	m := DecayMode(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownDecayMode, s)
	}
	return m, nil
}

// Provider is a pure, read-only source of nuclear data. Implementations must
// be safe for concurrent use.
type Provider interface {
	// CrossSection returns σ in barns for an energy in eV.
	CrossSection(n Nuclide, r Reaction, energy float64) (float64, error)
	// HalfLife returns T½ in seconds; +Inf marks a stable combination.
	HalfLife(n Nuclide, mode DecayMode) (float64, error)
	// MolarMass returns kg/mol.
	MolarMass(n Nuclide) (float64, error)
}
