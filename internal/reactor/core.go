package reactor

import (
	"fmt"
	"math"

	"github.com/san-kum/reactorsim/internal/control"
	"github.com/san-kum/reactorsim/internal/nucdata"
	"github.com/san-kum/reactorsim/internal/sim"
)

// Core evaluates the balance equations. It implements sim.Dynamics with the
// control vector laid out as (fast, thermal).
type Core struct {
	params Params
	rates  *RateEngine
	yXe    float64

	lambdaU239  float64
	lambdaNp239 float64
	lambdaTh233 float64
	lambdaPa233 float64
	lambdaXe    float64
	lambdaFP    float64
	lambdaSlow  float64

	// Joules
	ePrompt   float64
	eFPDecay  float64
	eSlowdown float64
}

// NewCore resolves every nuclear datum the balance needs. The returned
// diagnostics list each lookup that fell back to a default.
func NewCore(p nucdata.Provider, cfg Configuration) (*Core, []nucdata.Diagnostic, error) {
	rates, diags, err := NewRateEngine(p, cfg.Params)
	if err != nil {
		return nil, nil, err
	}

	decay := func(n nucdata.Nuclide) (float64, error) {
		h, err := p.HalfLife(n, nucdata.BetaMinus)
		if err != nil {
			d, ok := nucdata.AsDiagnostic(err)
			if !ok {
				return 0, fmt.Errorf("half-life of %s: %w", n, err)
			}
			diags = append(diags, *d)
		}
		return nucdata.DecayConstant(h), nil
	}

	c := &Core{
		params:     cfg.Params,
		rates:      rates,
		yXe:        cfg.FissionProducts.XenonYield(),
		lambdaFP:   nucdata.DecayConstant(cfg.Params.PrecursorHalfLife),
		lambdaSlow: nucdata.DecayConstant(cfg.Params.SlowdownHalfLife),
		ePrompt:    cfg.Params.PromptEnergy * nucdata.MeV,
		eFPDecay:   cfg.Params.FPDecayEnergy * nucdata.MeV,
		eSlowdown:  cfg.Params.SlowdownEnergy * nucdata.MeV,
	}
	targets := []struct {
		n   nucdata.Nuclide
		dst *float64
	}{
		{nucdata.U239, &c.lambdaU239},
		{nucdata.Np239, &c.lambdaNp239},
		{nucdata.Th233, &c.lambdaTh233},
		{nucdata.Pa233, &c.lambdaPa233},
		{nucdata.Xe135, &c.lambdaXe},
	}
	for _, t := range targets {
		if *t.dst, err = decay(t.n); err != nil {
			return nil, nil, err
		}
	}
	return c, diags, nil
}

func (c *Core) Rates() *RateEngine { return c.rates }
func (c *Core) Params() Params     { return c.params }

// DecayConstant returns λ in 1/s for the decaying species of the model.
func (c *Core) DecayConstant(n nucdata.Nuclide) float64 {
	switch n {
	case nucdata.U239:
		return c.lambdaU239
	case nucdata.Np239:
		return c.lambdaNp239
	case nucdata.Th233:
		return c.lambdaTh233
	case nucdata.Pa233:
		return c.lambdaPa233
	case nucdata.Xe135:
		return c.lambdaXe
	}
	return 0
}

func (c *Core) SlowdownConstant() float64  { return c.lambdaSlow }
func (c *Core) PrecursorConstant() float64 { return c.lambdaFP }

// Evaluation is everything derived from one state and control input.
type Evaluation struct {
	Rates      Rates
	Derivative State
	// FissionRate is the fission rate that drives the balances.
	FissionRate float64
	Power       float64 // W
	Production  float64 // neutrons/s
	Loss        float64 // neutrons/s
	KEff        float64
}

func (c *Core) Evaluate(s State, u control.Coefficients) Evaluation {
	p := &c.params
	r := c.rates.Compute(s)

	// Reactions that drive the nuclide balances.
	active := r.Thermal
	var fastAbs float64
	if p.FastReactions {
		active = active.add(r.Fast)
		fastAbs = r.Fast.Absorption()
	}
	thermalAbs := r.Thermal.Absorption()
	rf := active.Fission()

	slowdown := c.lambdaSlow * s.FastNeutrons
	precursorDecay := c.lambdaFP * s.Precursors
	delayed := p.DelayedYield * precursorDecay
	fastRemoval := (p.LeakFast + u.Fast) * s.FastNeutrons
	thermalRemoval := (p.LeakThermal + u.Thermal) * s.ThermalNeutrons

	var d State
	d.FastNeutrons = p.PromptNeutrons*rf - slowdown - fastRemoval - fastAbs
	d.ThermalNeutrons = slowdown + delayed - thermalAbs - thermalRemoval

	d.U235 = -active.U235.Absorption()
	d.U238 = -active.U238.Absorption()
	d.U239 = active.U238.Capture - c.lambdaU239*s.U239
	d.Np239 = c.lambdaU239*s.U239 - c.lambdaNp239*s.Np239
	d.Pu239 = c.lambdaNp239*s.Np239 - active.Pu239.Absorption()

	d.Th232 = -active.Th232.Absorption()
	d.Th233 = active.Th232.Capture - c.lambdaTh233*s.Th233
	d.Pa233 = c.lambdaTh233*s.Th233 - c.lambdaPa233*s.Pa233
	d.U233 = c.lambdaPa233*s.Pa233 - active.U233.Absorption()

	xenonDecay := c.lambdaXe * s.Xenon
	d.Xenon = 2*c.yXe*rf - active.Xenon.Absorption() - xenonDecay
	d.Precursors = 2*(1-c.yXe)*rf - precursorDecay

	ev := Evaluation{
		Rates:       r,
		Derivative:  d,
		FissionRate: rf,
		Power:       rf*c.ePrompt + (xenonDecay+precursorDecay)*c.eFPDecay + slowdown*c.eSlowdown,
		Production:  p.PromptNeutrons*rf + delayed,
		Loss:        thermalAbs + fastAbs + fastRemoval + thermalRemoval,
	}
	if !p.DisableKEff && ev.Loss > 0 {
		ev.KEff = ev.Production / ev.Loss
	}
	return ev
}

func (c *Core) Derivative(x sim.State, u sim.Control, t float64) sim.State {
	ev := c.Evaluate(StateFromVector(x), coefficients(u))
	return ev.Derivative.Vector()
}

func (c *Core) StateDim() int   { return StateDim }
func (c *Core) ControlDim() int { return 2 }

func controlVector(u control.Coefficients) sim.Control {
	return sim.Control{u.Fast, u.Thermal}
}

func coefficients(u sim.Control) control.Coefficients {
	if len(u) < 2 {
		return control.Coefficients{}
	}
	return control.Coefficients{Fast: u[0], Thermal: u[1]}
}

// finite reports whether a power or k_eff value can be recorded.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
