package control

import (
	"fmt"
)

// Gains parameterize a Proportional law.
type Gains struct {
	// Nominal normalizes the power error; it is the ramp target for ramped
	// setpoints.
	Nominal float64
	// Reference is the equilibrium insertion applied at zero error.
	Reference Coefficients
	// Gain multiplies the relative power error per group.
	Gain Coefficients
	// Max is the saturation bound shared by both groups.
	Max float64
}

// Proportional is a saturating proportional law:
//
//	Σ_g = clamp(ref_g + gain_g·(P − SP(t))/P_nominal, 0, Σ_max)
type Proportional struct {
	setpoint Setpoint
	gains    Gains
	last     Coefficients
}

func NewProportional(sp Setpoint, g Gains) (*Proportional, error) {
	if sp == nil {
		return nil, fmt.Errorf("%w: setpoint is required", ErrInvalidLaw)
	}
	if !(g.Nominal > 0) {
		return nil, fmt.Errorf("%w: nominal power must be positive, got %g", ErrInvalidLaw, g.Nominal)
	}
	if !(g.Max >= 0) {
		return nil, fmt.Errorf("%w: saturation bound must be non-negative, got %g", ErrInvalidLaw, g.Max)
	}
	for name, v := range map[string]float64{
		"reference fast":    g.Reference.Fast,
		"reference thermal": g.Reference.Thermal,
		"gain fast":         g.Gain.Fast,
		"gain thermal":      g.Gain.Thermal,
		"max":               g.Max,
	} {
		if err := validateFinite(name, v); err != nil {
			return nil, err
		}
	}
	if r, ok := sp.(Ramp); ok && !(r.Duration > 0) {
		return nil, fmt.Errorf("%w: ramp duration must be positive, got %g", ErrInvalidLaw, r.Duration)
	}
	p := &Proportional{setpoint: sp, gains: g}
	p.last = p.Initial()
	return p, nil
}

// Initial applies the reference insertion, saturated.
func (p *Proportional) Initial() Coefficients {
	return Coefficients{
		Fast:    clamp(p.gains.Reference.Fast, 0, p.gains.Max),
		Thermal: clamp(p.gains.Reference.Thermal, 0, p.gains.Max),
	}
}

func (p *Proportional) Update(power, t float64) Coefficients {
	e := p.RelativeError(power, t)
	p.last = Coefficients{
		Fast:    clamp(p.gains.Reference.Fast+p.gains.Gain.Fast*e, 0, p.gains.Max),
		Thermal: clamp(p.gains.Reference.Thermal+p.gains.Gain.Thermal*e, 0, p.gains.Max),
	}
	return p.last
}

func (p *Proportional) RelativeError(power, t float64) float64 {
	return (power - p.setpoint.At(t)) / p.gains.Nominal
}

func (p *Proportional) Setpoint(t float64) float64 {
	return p.setpoint.At(t)
}

// Last returns the most recent coefficients.
func (p *Proportional) Last() Coefficients { return p.last }

// GetParams returns tunable parameters for reporting.
func (p *Proportional) GetParams() map[string]float64 {
	return map[string]float64{
		"nominal":      p.gains.Nominal,
		"ref_fast":     p.gains.Reference.Fast,
		"ref_thermal":  p.gains.Reference.Thermal,
		"gain_fast":    p.gains.Gain.Fast,
		"gain_thermal": p.gains.Gain.Thermal,
		"max":          p.gains.Max,
	}
}
