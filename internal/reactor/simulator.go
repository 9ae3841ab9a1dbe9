package reactor

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/san-kum/reactorsim/internal/control"
	"github.com/san-kum/reactorsim/internal/integrators"
	"github.com/san-kum/reactorsim/internal/logging"
	"github.com/san-kum/reactorsim/internal/nucdata"
	"github.com/san-kum/reactorsim/internal/sim"
	"github.com/san-kum/reactorsim/internal/trace"
)

// cancelCheckInterval is how many steps pass between context checks.
const cancelCheckInterval = 4096

// Metric is a streaming observer fed every recorded sample of a run.
type Metric interface {
	Name() string
	Observe(s trace.Sample)
	Value() float64
	Reset()
}

type Option func(*Simulator)

func WithLogger(log logr.Logger) Option {
	return func(s *Simulator) { s.log = log }
}

// WithIntegrator replaces the default clamped Euler stepper.
func WithIntegrator(i sim.Integrator) Option {
	return func(s *Simulator) { s.integrator = i }
}

func WithMetric(m ...Metric) Option {
	return func(s *Simulator) { s.metrics = append(s.metrics, m...) }
}

type Simulator struct {
	provider   nucdata.Provider
	law        control.Law
	integrator sim.Integrator
	metrics    []Metric
	log        logr.Logger
}

func NewSimulator(provider nucdata.Provider, law control.Law, opts ...Option) *Simulator {
	s := &Simulator{
		provider:   provider,
		law:        law,
		integrator: integrators.NewClampedEuler(),
		metrics:    make([]Metric, 0),
		log:        logr.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Simulator) AddMetric(m Metric) { s.metrics = append(s.metrics, m) }

// Quantities lists the series a run records, in row order.
func (s *Simulator) Quantities(cfg Configuration) []trace.Quantity {
	q := []trace.Quantity{
		trace.Time,
		trace.FastNeutrons, trace.ThermalNeutrons,
		trace.U235, trace.U238, trace.U239, trace.Np239, trace.Pu239,
		trace.Th232, trace.Th233, trace.Pa233, trace.U233,
		trace.Precursors, trace.Xenon,
		trace.Power, trace.Burnup, trace.FissionRate,
		trace.ControlFast, trace.ControlThermal,
	}
	if !cfg.Params.DisableKEff {
		q = append(q, trace.KEff)
	}
	if _, ok := s.law.(control.Tracker); ok {
		q = append(q, trace.Setpoint)
	}
	return q
}

// Run integrates the configuration over its horizon and returns the full
// trace. Invalid input and cancellation return no trace.
func (s *Simulator) Run(ctx context.Context, cfg Configuration) (*trace.Trace, error) {
	x, diags, err := InitialState(cfg, s.provider)
	if err != nil {
		return nil, err
	}
	core, coreDiags, err := NewCore(s.provider, cfg)
	if err != nil {
		return nil, err
	}
	diags = append(diags, coreDiags...)
	for _, d := range diags {
		s.log.Info("nuclear data default applied", "kind", d.Kind, "nuclide", d.Nuclide, "detail", d.Detail)
	}

	scfg := cfg.SimConfig()
	steps := scfg.Steps()
	quantities := s.Quantities(cfg)
	rec := trace.NewRecorder(quantities, steps+1)
	tracker, tracking := s.law.(control.Tracker)
	withKEff := !cfg.Params.DisableKEff

	for _, m := range s.metrics {
		m.Reset()
	}

	s.log.V(logging.DEBUG).Info("run started", "steps", steps, "dt", scfg.Dt, "duration", scfg.Duration)

	u := s.law.Initial()
	burnup := 0.0
	row := make([]float64, len(quantities))
	xv := x.Vector()

	for k := 0; ; k++ {
		if k%cancelCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}

		t := scfg.Time(k)
		ev := core.Evaluate(x, u)
		if !finite(ev.Power) {
			return nil, sim.SimError{Time: t, Step: k, Message: "non-finite power", Wrapped: sim.ErrUnstable}
		}

		row = row[:0]
		row = append(row, t)
		row = append(row, xv...)
		row = append(row, ev.Power, burnup, ev.FissionRate, u.Fast, u.Thermal)
		if withKEff {
			row = append(row, ev.KEff)
		}
		if tracking {
			row = append(row, tracker.Setpoint(t))
		}
		sample, err := rec.Append(row...)
		if err != nil {
			return nil, err
		}
		for _, m := range s.metrics {
			m.Observe(sample)
		}

		if k == steps {
			break
		}

		next := s.law.Update(ev.Power, t)
		xv = s.integrator.Step(core, xv, controlVector(u), t, scfg.Dt)
		if len(xv) != StateDim {
			return nil, sim.SimError{Time: t, Step: k, Message: fmt.Sprintf("integrator returned %d components, want %d", len(xv), StateDim), Wrapped: sim.ErrDimensionMismatch}
		}
		if !xv.IsValid() {
			return nil, sim.SimError{Time: t, Step: k, Message: "invalid state (NaN/Inf)", Wrapped: sim.ErrUnstable}
		}
		x = StateFromVector(xv)
		burnup += ev.Power * scfg.Dt / (cfg.FuelMass * nucdata.Day)
		u = next
	}

	tr := rec.Finish()
	tr.Diagnostics = diags
	for _, m := range s.metrics {
		tr.Metrics[m.Name()] = m.Value()
	}

	s.log.V(logging.DEBUG).Info("run finished",
		"samples", tr.Len(),
		"power", tr.Last(trace.Power),
		"burnup", tr.Last(trace.Burnup),
		"diagnostics", len(diags))
	return tr, nil
}
