// Package trace stores the time history of a run as named, pre-allocated
// series.
package trace

import (
	"errors"
	"fmt"

	"github.com/san-kum/reactorsim/internal/nucdata"
)

var (
	ErrRowWidth      = errors.New("trace: row width does not match quantities")
	ErrFull          = errors.New("trace: capacity exhausted")
	ErrFinished      = errors.New("trace: recorder already finished")
	ErrUnknownSeries = errors.New("trace: unknown quantity")
)

// Quantity names one recorded series.
type Quantity string

const (
	Time            Quantity = "t"
	FastNeutrons    Quantity = "n_fast"
	ThermalNeutrons Quantity = "n_thermal"
	U235            Quantity = "U235"
	U238            Quantity = "U238"
	U239            Quantity = "U239"
	Np239           Quantity = "Np239"
	Pu239           Quantity = "Pu239"
	Th232           Quantity = "Th232"
	Th233           Quantity = "Th233"
	Pa233           Quantity = "Pa233"
	U233            Quantity = "U233"
	Precursors      Quantity = "precursors"
	Xenon           Quantity = "Xe135"
	Power           Quantity = "P"
	Burnup          Quantity = "burnup"
	FissionRate     Quantity = "fission_rate"
	ControlFast     Quantity = "sigma_ctrl_fast"
	ControlThermal  Quantity = "sigma_ctrl_thermal"
	KEff            Quantity = "k_eff"
	Setpoint        Quantity = "setpoint"
)

// Trace is a read-only time history. Slices returned by Series alias the
// trace storage and must not be modified.
type Trace struct {
	names       []Quantity
	index       map[Quantity]int
	data        [][]float64
	n           int
	Metrics     map[string]float64
	Diagnostics []nucdata.Diagnostic
}

func newTrace(quantities []Quantity, capacity int) *Trace {
	t := &Trace{
		names:   append([]Quantity(nil), quantities...),
		index:   make(map[Quantity]int, len(quantities)),
		data:    make([][]float64, len(quantities)),
		Metrics: make(map[string]float64),
	}
	for i, q := range quantities {
		t.index[q] = i
		t.data[i] = make([]float64, capacity)
	}
	return t
}

// FromColumns builds a complete trace from existing columns, e.g. when
// loading a stored run. Every column must have the same length.
func FromColumns(quantities []Quantity, columns [][]float64) (*Trace, error) {
	if len(quantities) != len(columns) {
		return nil, fmt.Errorf("%w: %d names, %d columns", ErrRowWidth, len(quantities), len(columns))
	}
	n := 0
	if len(columns) > 0 {
		n = len(columns[0])
	}
	t := newTrace(quantities, 0)
	for i, c := range columns {
		if len(c) != n {
			return nil, fmt.Errorf("%w: column %s has %d samples, want %d", ErrRowWidth, quantities[i], len(c), n)
		}
		t.data[i] = c
	}
	t.n = n
	return t, nil
}

func (t *Trace) Len() int { return t.n }

func (t *Trace) Quantities() []Quantity {
	return append([]Quantity(nil), t.names...)
}

func (t *Trace) Has(q Quantity) bool {
	_, ok := t.index[q]
	return ok
}

// Series returns the populated samples of q, or nil when q is not recorded.
func (t *Trace) Series(q Quantity) []float64 {
	i, ok := t.index[q]
	if !ok {
		return nil
	}
	return t.data[i][:t.n]
}

func (t *Trace) Lookup(q Quantity) ([]float64, error) {
	s := t.Series(q)
	if s == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSeries, q)
	}
	return s, nil
}

// Value returns sample k of q.
func (t *Trace) Value(q Quantity, k int) float64 {
	return t.data[t.index[q]][k]
}

// Last returns the final sample of q, or 0 for an empty trace.
func (t *Trace) Last(q Quantity) float64 {
	s := t.Series(q)
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1]
}

// Row returns a copy of sample k across every quantity, in Quantities order.
func (t *Trace) Row(k int) []float64 {
	row := make([]float64, len(t.names))
	for i := range t.names {
		row[i] = t.data[i][k]
	}
	return row
}

// Sample is a view of one recorded time index.
type Sample struct {
	tr *Trace
	k  int
}

func (s Sample) Index() int { return s.k }

func (s Sample) Has(q Quantity) bool { return s.tr.Has(q) }

func (s Sample) Get(q Quantity) float64 {
	i, ok := s.tr.index[q]
	if !ok {
		return 0
	}
	return s.tr.data[i][s.k]
}

func (t *Trace) Sample(k int) Sample {
	return Sample{tr: t, k: k}
}
