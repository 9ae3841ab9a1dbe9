package control

// Setpoint is a power target as a function of elapsed time.
type Setpoint interface {
	At(t float64) float64
}

// Constant holds the same power for the whole run.
type Constant struct {
	Power float64
}

func (c Constant) At(t float64) float64 { return c.Power }

// Ramp rises linearly from zero to Nominal over Duration seconds and holds
// Nominal afterwards.
type Ramp struct {
	Nominal  float64
	Duration float64
}

func (r Ramp) At(t float64) float64 {
	if t < r.Duration {
		return r.Nominal * t / r.Duration
	}
	return r.Nominal
}

// Ramping reports whether t falls in the ramp regime.
func (r Ramp) Ramping(t float64) bool {
	return t < r.Duration
}
