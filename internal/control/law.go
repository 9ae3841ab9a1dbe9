package control

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidLaw = errors.New("control: invalid law parameters")

// Coefficients are the control absorption coefficients (1/s) of the fast and
// thermal groups.
type Coefficients struct {
	Fast    float64 `json:"fast" yaml:"fast"`
	Thermal float64 `json:"thermal" yaml:"thermal"`
}

// Law produces the control coefficients step by step. Update receives the
// power measured at time t and returns the coefficients for the next step.
type Law interface {
	Initial() Coefficients
	Update(power, t float64) Coefficients
}

// Tracker is implemented by laws that follow a setpoint.
type Tracker interface {
	Setpoint(t float64) float64
}

// Fixed keeps the coefficients constant: no feedback.
type Fixed struct {
	Coefficients Coefficients
}

func NewFixed(fast, thermal float64) *Fixed {
	return &Fixed{Coefficients: Coefficients{Fast: fast, Thermal: thermal}}
}

func (f *Fixed) Initial() Coefficients                { return f.Coefficients }
func (f *Fixed) Update(power, t float64) Coefficients { return f.Coefficients }

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func validateFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be finite, got %g", ErrInvalidLaw, name, v)
	}
	return nil
}
