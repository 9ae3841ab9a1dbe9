package reactor

import (
	"github.com/san-kum/reactorsim/internal/nucdata"
	"github.com/san-kum/reactorsim/internal/sim"
)

// State is the whole-core inventory: neutron and atom counts, never densities.
type State struct {
	FastNeutrons    float64
	ThermalNeutrons float64
	U235            float64
	U238            float64
	U239            float64
	Np239           float64
	Pu239           float64
	Th232           float64
	Th233           float64
	Pa233           float64
	U233            float64
	Precursors      float64
	Xenon           float64
}

// Indices of the State fields in a sim.State vector.
const (
	IdxFast = iota
	IdxThermal
	IdxU235
	IdxU238
	IdxU239
	IdxNp239
	IdxPu239
	IdxTh232
	IdxTh233
	IdxPa233
	IdxU233
	IdxPrecursors
	IdxXenon
	StateDim
)

func (s State) Vector() sim.State {
	return sim.State{
		IdxFast:       s.FastNeutrons,
		IdxThermal:    s.ThermalNeutrons,
		IdxU235:       s.U235,
		IdxU238:       s.U238,
		IdxU239:       s.U239,
		IdxNp239:      s.Np239,
		IdxPu239:      s.Pu239,
		IdxTh232:      s.Th232,
		IdxTh233:      s.Th233,
		IdxPa233:      s.Pa233,
		IdxU233:       s.U233,
		IdxPrecursors: s.Precursors,
		IdxXenon:      s.Xenon,
	}
}

// StateFromVector panics if x is shorter than StateDim.
func StateFromVector(x sim.State) State {
	_ = x[StateDim-1]
	return State{
		FastNeutrons:    x[IdxFast],
		ThermalNeutrons: x[IdxThermal],
		U235:            x[IdxU235],
		U238:            x[IdxU238],
		U239:            x[IdxU239],
		Np239:           x[IdxNp239],
		Pu239:           x[IdxPu239],
		Th232:           x[IdxTh232],
		Th233:           x[IdxTh233],
		Pa233:           x[IdxPa233],
		U233:            x[IdxU233],
		Precursors:      x[IdxPrecursors],
		Xenon:           x[IdxXenon],
	}
}

// Atoms returns the count of a tracked nuclide.
func (s State) Atoms(n nucdata.Nuclide) (float64, bool) {
	p := s.field(n)
	if p == nil {
		return 0, false
	}
	return *p, true
}

func (s State) NonNegative() bool {
	for _, v := range s.Vector() {
		if v < 0 {
			return false
		}
	}
	return true
}

func (s *State) field(n nucdata.Nuclide) *float64 {
	switch n {
	case nucdata.U235:
		return &s.U235
	case nucdata.U238:
		return &s.U238
	case nucdata.U239:
		return &s.U239
	case nucdata.Np239:
		return &s.Np239
	case nucdata.Pu239:
		return &s.Pu239
	case nucdata.Th232:
		return &s.Th232
	case nucdata.Th233:
		return &s.Th233
	case nucdata.Pa233:
		return &s.Pa233
	case nucdata.U233:
		return &s.U233
	case nucdata.Xe135:
		return &s.Xenon
	}
	return nil
}
