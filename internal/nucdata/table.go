package nucdata

import (
	_ "embed"
	"fmt"
	"math"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data.yaml
var embedded []byte

var (
	once     sync.Once
	instance *Table
	loadErr  error
)

// GroupValue holds one quantity for the two energy groups.
type GroupValue struct {
	Thermal float64 `yaml:"thermal"`
	Fast    float64 `yaml:"fast"`
}

type tableFile struct {
	ThermalBoundary float64                             `yaml:"thermal_boundary_ev"`
	CrossSections   map[Nuclide]map[Reaction]GroupValue `yaml:"cross_sections"`
	HalfLives       map[Nuclide]map[DecayMode]float64   `yaml:"half_lives"`
	MolarMasses     map[Nuclide]float64                 `yaml:"molar_masses"`
}

// Table is a [Provider] backed by in-memory lookup tables. It is immutable
// after construction.
type Table struct {
	boundary  float64
	sigma     map[Nuclide]map[Reaction]GroupValue
	halfLives map[Nuclide]map[DecayMode]float64
	molar     map[Nuclide]float64 // kg/mol
}

// Default returns the embedded table. Parsing occurs only once.
func Default() (*Table, error) {
	once.Do(func() {
		instance, loadErr = Parse(embedded)
	})
	return instance, loadErr
}

func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func Parse(data []byte) (*Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}
	if !(f.ThermalBoundary > 0) {
		return nil, fmt.Errorf("%w: thermal_boundary_ev must be positive", ErrInvalidTable)
	}

	t := &Table{
		boundary:  f.ThermalBoundary,
		sigma:     make(map[Nuclide]map[Reaction]GroupValue, len(f.CrossSections)),
		halfLives: make(map[Nuclide]map[DecayMode]float64, len(f.HalfLives)),
		molar:     make(map[Nuclide]float64, len(f.MolarMasses)),
	}

	for n, reactions := range f.CrossSections {
		t.sigma[n] = make(map[Reaction]GroupValue, len(reactions))
		for r, v := range reactions {
			if !r.Valid() {
				return nil, fmt.Errorf("%w: %s: %w", ErrInvalidTable, n, ErrUnknownReaction)
			}
			if v.Thermal < 0 || v.Fast < 0 {
				return nil, fmt.Errorf("%w: negative cross section for (%s, %s)", ErrInvalidTable, n, r)
			}
			t.sigma[n][r] = v
		}
	}

	for n, modes := range f.HalfLives {
		t.halfLives[n] = make(map[DecayMode]float64, len(modes))
		for m, v := range modes {
			if !m.Valid() {
				return nil, fmt.Errorf("%w: %s: %w", ErrInvalidTable, n, ErrUnknownDecayMode)
			}
			if !(v > 0) {
				return nil, fmt.Errorf("%w: half-life for (%s, %s) must be positive", ErrInvalidTable, n, m)
			}
			t.halfLives[n][m] = v
		}
	}

	for n, grams := range f.MolarMasses {
		if !(grams > 0) {
			return nil, fmt.Errorf("%w: molar mass for %s must be positive", ErrInvalidTable, n)
		}
		t.molar[n] = grams / 1000.0
	}

	return t, nil
}

func (t *Table) ThermalBoundary() float64 { return t.boundary }

func (t *Table) CrossSection(n Nuclide, r Reaction, energy float64) (float64, error) {
	if !(energy > 0) {
		return 0, fmt.Errorf("%w: got %g eV", ErrInvalidEnergy, energy)
	}
	if !r.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrUnknownReaction, string(r))
	}

	reactions, ok := t.sigma[n]
	if !ok {
		return 0, &Diagnostic{
			Kind:    UnknownNuclide,
			Nuclide: n,
			Detail:  fmt.Sprintf("no cross-section data, %s treated as 0 barn", r),
		}
	}
	v, ok := reactions[r]
	if !ok {
		return 0, &Diagnostic{
			Kind:    MissingCrossSection,
			Nuclide: n,
			Detail:  fmt.Sprintf("no %s data, treated as 0 barn", r),
		}
	}

	sigma := v.Fast
	if energy < t.boundary {
		sigma = v.Thermal
	}

	if energy < MinEnergy || energy > MaxEnergy {
		return sigma, &Diagnostic{
			Kind:    EnergyOutOfRange,
			Nuclide: n,
			Detail:  fmt.Sprintf("%g eV outside [%g, %g] eV, using group value", energy, MinEnergy, MaxEnergy),
			Value:   sigma,
		}
	}
	return sigma, nil
}

func (t *Table) HalfLife(n Nuclide, mode DecayMode) (float64, error) {
	if !mode.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrUnknownDecayMode, string(mode))
	}
	if v, ok := t.halfLives[n][mode]; ok {
		return v, nil
	}
	return math.Inf(1), &Diagnostic{
		Kind:    MissingHalfLife,
		Nuclide: n,
		Detail:  fmt.Sprintf("no %s half-life, treated as stable", mode),
		Value:   math.Inf(1),
	}
}

func (t *Table) MolarMass(n Nuclide) (float64, error) {
	m, ok := t.molar[n]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNoMolarMass, n)
	}
	return m, nil
}

// Nuclides lists every nuclide that has cross-section data, sorted.
func (t *Table) Nuclides() []Nuclide {
	names := make([]Nuclide, 0, len(t.sigma))
	for n := range t.sigma {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Groups returns the raw two-group values for a nuclide and reaction.
func (t *Table) Groups(n Nuclide, r Reaction) (GroupValue, bool) {
	v, ok := t.sigma[n][r]
	return v, ok
}
