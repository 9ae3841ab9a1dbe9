package sim

import (
	"fmt"
	"math"
)

// State is a flat vector of extensive quantities advanced by an Integrator.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Clamp floors every component at zero in place and reports how many were raised.
func (s State) Clamp() int {
	n := 0
	for i, v := range s {
		if v < 0 {
			s[i] = 0
			n++
		}
	}
	return n
}

// Control holds the per-step inputs that are not integrated, such as the
// control absorption coefficients of each energy group.
type Control []float64

type Dynamics interface {
	Derivative(x State, u Control, t float64) State
	StateDim() int
	ControlDim() int
}

type Integrator interface {
	Step(dyn Dynamics, x State, u Control, t float64, dt float64) State
}

type Config struct {
	Dt       float64
	Duration float64
}

func DefaultConfig() Config {
	return Config{
		Dt:       1e-4,
		Duration: 1.0,
	}
}

func (c Config) Validate() error {
	if !(c.Dt > 0) || math.IsInf(c.Dt, 0) {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidConfig, c.Dt)
	}
	if !(c.Duration > 0) || math.IsInf(c.Duration, 0) {
		return fmt.Errorf("%w: duration must be positive, got %g", ErrInvalidConfig, c.Duration)
	}
	return nil
}

// Steps returns ⌊Duration/Dt⌋. Ratios within 1e-9 of an integer are rounded so
// that 1e-3/1e-4 yields 10 rather than 9.
func (c Config) Steps() int {
	ratio := c.Duration / c.Dt
	if r := math.Round(ratio); math.Abs(ratio-r) <= 1e-9*math.Max(1, r) {
		return int(r)
	}
	return int(math.Floor(ratio))
}

// Time returns the elapsed time at step k. Computing k*dt directly keeps the
// time axis free of accumulated rounding.
func (c Config) Time(k int) float64 {
	return float64(k) * c.Dt
}

type SimError struct {
	Time    float64
	Step    int
	Message string
	Wrapped error
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}

func (e SimError) Unwrap() error {
	return e.Wrapped
}
