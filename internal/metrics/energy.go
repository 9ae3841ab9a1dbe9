package metrics

import (
	"math"

	"github.com/san-kum/reactorsim/internal/trace"
)

// Energy integrates the power series with the trapezoid rule, in joules.
type Energy struct {
	name    string
	total   float64
	lastT   float64
	lastP   float64
	samples int
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(s trace.Sample) {
	t, p := s.Get(trace.Time), s.Get(trace.Power)
	if e.samples > 0 {
		e.total += 0.5 * (p + e.lastP) * (t - e.lastT)
	}
	e.lastT, e.lastP = t, p
	e.samples++
}

func (e *Energy) Value() float64 { return e.total }

func (e *Energy) Reset() {
	e.total = 0
	e.lastT = 0
	e.lastP = 0
	e.samples = 0
}

// PeakPower is the largest power seen.
type PeakPower struct {
	name string
	peak float64
}

func NewPeakPower() *PeakPower {
	return &PeakPower{name: "peak_power"}
}

func (p *PeakPower) Name() string { return p.name }

func (p *PeakPower) Observe(s trace.Sample) {
	p.peak = math.Max(p.peak, s.Get(trace.Power))
}

func (p *PeakPower) Value() float64 { return p.peak }

func (p *PeakPower) Reset() { p.peak = 0 }

// MeanKEff averages the k_eff diagnostic. Runs without the series report 0.
type MeanKEff struct {
	name    string
	sum     float64
	samples int
}

func NewMeanKEff() *MeanKEff {
	return &MeanKEff{name: "mean_k_eff"}
}

func (m *MeanKEff) Name() string { return m.name }

func (m *MeanKEff) Observe(s trace.Sample) {
	if !s.Has(trace.KEff) {
		return
	}
	m.sum += s.Get(trace.KEff)
	m.samples++
}

func (m *MeanKEff) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanKEff) Reset() {
	m.sum = 0
	m.samples = 0
}
