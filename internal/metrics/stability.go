package metrics

import (
	"math"

	"github.com/san-kum/reactorsim/internal/trace"
)

// Stability is the fraction of samples whose power lies within a relative
// band around the setpoint. Runs without a setpoint score 1.
type Stability struct {
	name      string
	threshold float64
	nominal   float64
	outside   int
	samples   int
}

// NewStability measures the band |P − SP| ≤ threshold·nominal.
func NewStability(threshold, nominal float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
		nominal:   nominal,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(sample trace.Sample) {
	if !sample.Has(trace.Setpoint) {
		return
	}
	s.samples++
	if math.Abs(sample.Get(trace.Power)-sample.Get(trace.Setpoint)) > s.threshold*s.nominal {
		s.outside++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.outside)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.outside = 0
	s.samples = 0
}

// TrackingError is the mean of |P − SP| / nominal.
type TrackingError struct {
	name    string
	nominal float64
	sum     float64
	samples int
}

func NewTrackingError(nominal float64) *TrackingError {
	return &TrackingError{name: "tracking_error", nominal: nominal}
}

func (e *TrackingError) Name() string { return e.name }

func (e *TrackingError) Observe(s trace.Sample) {
	if !s.Has(trace.Setpoint) || e.nominal == 0 {
		return
	}
	e.sum += math.Abs(s.Get(trace.Power)-s.Get(trace.Setpoint)) / e.nominal
	e.samples++
}

func (e *TrackingError) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.sum / float64(e.samples)
}

func (e *TrackingError) Reset() {
	e.sum = 0
	e.samples = 0
}
