package reactor

import (
	"fmt"

	"github.com/san-kum/reactorsim/internal/nucdata"
)

// Group is a neutron energy group.
type Group int

const (
	Thermal Group = iota
	Fast
	numGroups
)

func (g Group) String() string {
	switch g {
	case Thermal:
		return "thermal"
	case Fast:
		return "fast"
	}
	return fmt.Sprintf("Group(%d)", int(g))
}

// Absorbers are the nuclides whose reactions are tracked, in lookup order.
var Absorbers = []nucdata.Nuclide{
	nucdata.U235, nucdata.U238, nucdata.Pu239, nucdata.Th232, nucdata.U233, nucdata.Xe135,
}

type microscopic struct {
	fission, capture float64 // barns
}

// RateEngine turns whole-core counts into reaction rates. Cross sections are
// looked up once at construction and held constant for the run.
type RateEngine struct {
	k     [numGroups]float64
	sigma [numGroups]map[nucdata.Nuclide]microscopic
}

// NewRateEngine evaluates every cross section at the representative energy of
// each group. Defaulted lookups are returned as diagnostics; any other lookup
// error is fatal.
func NewRateEngine(p nucdata.Provider, params Params) (*RateEngine, []nucdata.Diagnostic, error) {
	if err := params.Validate(); err != nil {
		return nil, nil, err
	}
	e := &RateEngine{}
	e.k[Thermal] = params.ThermalSpeed * nucdata.Barn / params.CoreVolume
	e.k[Fast] = params.FastSpeed * nucdata.Barn / params.CoreVolume

	energy := [numGroups]float64{Thermal: params.ThermalEnergy, Fast: params.FastEnergy}

	var diags []nucdata.Diagnostic
	lookup := func(n nucdata.Nuclide, r nucdata.Reaction, eV float64) (float64, error) {
		v, err := p.CrossSection(n, r, eV)
		if err == nil {
			return v, nil
		}
		if d, ok := nucdata.AsDiagnostic(err); ok {
			diags = append(diags, *d)
			return v, nil
		}
		return 0, fmt.Errorf("cross section %s %s at %g eV: %w", n, r, eV, err)
	}

	for g := Thermal; g < numGroups; g++ {
		e.sigma[g] = make(map[nucdata.Nuclide]microscopic, len(Absorbers))
		for _, n := range Absorbers {
			f, err := lookup(n, nucdata.Fission, energy[g])
			if err != nil {
				return nil, nil, err
			}
			c, err := lookup(n, nucdata.Capture, energy[g])
			if err != nil {
				return nil, nil, err
			}
			e.sigma[g][n] = microscopic{fission: f, capture: c}
		}
	}
	return e, diags, nil
}

// K returns k_g = v_g·1e-28/V_core, the factor turning σ·n·N into a rate.
func (e *RateEngine) K(g Group) float64 { return e.k[g] }

// Sigma returns the microscopic cross section in barns used for a group.
func (e *RateEngine) Sigma(g Group, n nucdata.Nuclide, r nucdata.Reaction) float64 {
	m := e.sigma[g][n]
	if r == nucdata.Fission {
		return m.fission
	}
	return m.capture
}

// Rate returns k_g·σ·n_g·N for one reaction.
func (e *RateEngine) Rate(g Group, n nucdata.Nuclide, r nucdata.Reaction, neutrons, atoms float64) float64 {
	return e.k[g] * e.Sigma(g, n, r) * neutrons * atoms
}

// NuclideRates are reactions per second on one nuclide.
type NuclideRates struct {
	Fission float64
	Capture float64
}

func (r NuclideRates) Absorption() float64 { return r.Fission + r.Capture }

func (r NuclideRates) add(o NuclideRates) NuclideRates {
	return NuclideRates{Fission: r.Fission + o.Fission, Capture: r.Capture + o.Capture}
}

// GroupRates are the reaction rates induced by one neutron group.
type GroupRates struct {
	U235  NuclideRates
	U238  NuclideRates
	Pu239 NuclideRates
	Th232 NuclideRates
	U233  NuclideRates
	Xenon NuclideRates
}

func (g GroupRates) add(o GroupRates) GroupRates {
	return GroupRates{
		U235:  g.U235.add(o.U235),
		U238:  g.U238.add(o.U238),
		Pu239: g.Pu239.add(o.Pu239),
		Th232: g.Th232.add(o.Th232),
		U233:  g.U233.add(o.U233),
		Xenon: g.Xenon.add(o.Xenon),
	}
}

// Fission is the total fission rate of the heavy nuclides of the group.
func (g GroupRates) Fission() float64 {
	return g.U235.Fission + g.U238.Fission + g.Pu239.Fission + g.Th232.Fission + g.U233.Fission
}

// Absorption is every fission and capture of the group, xenon included.
func (g GroupRates) Absorption() float64 {
	return g.U235.Absorption() + g.U238.Absorption() + g.Pu239.Absorption() +
		g.Th232.Absorption() + g.U233.Absorption() + g.Xenon.Absorption()
}

type Rates struct {
	Thermal GroupRates
	Fast    GroupRates
}

func (e *RateEngine) Compute(s State) Rates {
	return Rates{
		Thermal: e.group(Thermal, s.ThermalNeutrons, s),
		Fast:    e.group(Fast, s.FastNeutrons, s),
	}
}

func (e *RateEngine) group(g Group, neutrons float64, s State) GroupRates {
	on := func(n nucdata.Nuclide, atoms float64) NuclideRates {
		return NuclideRates{
			Fission: e.Rate(g, n, nucdata.Fission, neutrons, atoms),
			Capture: e.Rate(g, n, nucdata.Capture, neutrons, atoms),
		}
	}
	return GroupRates{
		U235:  on(nucdata.U235, s.U235),
		U238:  on(nucdata.U238, s.U238),
		Pu239: on(nucdata.Pu239, s.Pu239),
		Th232: on(nucdata.Th232, s.Th232),
		U233:  on(nucdata.U233, s.U233),
		Xenon: on(nucdata.Xe135, s.Xenon),
	}
}
