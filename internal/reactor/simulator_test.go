package reactor

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/reactorsim/internal/control"
	"github.com/san-kum/reactorsim/internal/logging"
	"github.com/san-kum/reactorsim/internal/nucdata"
	"github.com/san-kum/reactorsim/internal/sim"
	"github.com/san-kum/reactorsim/internal/trace"
)

type sampleCounter struct{ n int }

func (c *sampleCounter) Name() string         { return "samples" }
func (c *sampleCounter) Observe(trace.Sample) { c.n++ }
func (c *sampleCounter) Value() float64       { return float64(c.n) }
func (c *sampleCounter) Reset()               { c.n = 0 }

// truncating drops the last state component after every step.
type truncating struct{}

func (truncating) Step(dyn sim.Dynamics, x sim.State, u sim.Control, t, dt float64) sim.State {
	return x[:len(x)-1]
}

var _ = Describe("Simulator", func() {
	var (
		table *nucdata.Table
		cfg   Configuration
		ctx   context.Context
	)

	BeforeEach(func() {
		table = defaultTable()
		cfg = DefaultConfiguration()
		ctx = context.Background()
	})

	run := func(p nucdata.Provider, law control.Law, opts ...Option) *trace.Trace {
		opts = append(opts, WithLogger(logging.NewTestLogger()))
		tr, err := NewSimulator(p, law, opts...).Run(ctx, cfg)
		Expect(err).NotTo(HaveOccurred())
		return tr
	}

	Describe("first step of a 3% enriched core", func() {
		It("records the U235 thermal fission rate and eleven samples", func() {
			cfg.Duration = 1e-3
			cfg.Dt = 1e-4
			tr := run(table, control.NewFixed(0, 0))

			Expect(tr.Len()).To(Equal(11))
			Expect(tr.Value(trace.Time, 10)).To(BeNumerically("~", 1e-3, 1e-15))

			n235 := AtomCount(3, 25, 0.235)
			want := 2.2e3 * 1e-28 / 10 * 580 * 1e10 * n235
			Expect(tr.Value(trace.FissionRate, 0)).To(BeNumerically("~", want, want*1e-12))
			Expect(tr.Value(trace.U235, 0)).To(BeNumerically("~", n235, n235*1e-12))
			Expect(tr.Value(trace.Burnup, 0)).To(BeZero())
			Expect(tr.Value(trace.Burnup, 1)).To(BeNumerically(">", 0))
		})
	})

	It("keeps every state variable non-negative under strong absorption", func() {
		cfg.Dt = 1e-3
		cfg.Duration = 0.05
		tr := run(table, control.NewFixed(0, 1e5))

		for _, q := range tr.Quantities() {
			for k, v := range tr.Series(q) {
				Expect(v).To(BeNumerically(">=", 0), "%s at sample %d", q, k)
			}
		}
		// 1 - dt·Σ is far below zero: the Euler step overshoots and is clamped.
		Expect(tr.Value(trace.ThermalNeutrons, 1)).To(BeZero())
	})

	It("saturates control coefficients within [0, max]", func() {
		law, err := control.NewProportional(control.Constant{Power: 1e3}, control.Gains{
			Nominal:   1e3,
			Reference: control.Coefficients{Thermal: 2},
			Gain:      control.Coefficients{Fast: 1e6, Thermal: 1e6},
			Max:       5,
		})
		Expect(err).NotTo(HaveOccurred())
		cfg.Duration = 1.0
		tr := run(table, law)

		thermal := tr.Series(trace.ControlThermal)
		Expect(thermal).To(ContainElement(0.0))
		Expect(thermal).To(ContainElement(5.0))
		for _, q := range []trace.Quantity{trace.ControlFast, trace.ControlThermal} {
			for _, v := range tr.Series(q) {
				Expect(v).To(And(BeNumerically(">=", 0), BeNumerically("<=", 5)))
			}
		}
	})

	It("depletes fuel monotonically", func() {
		cfg.Fuel = FuelComposition{U235: 3, U238: 90, Th232: 7}
		cfg.Duration = 0.5
		tr := run(table, control.NewFixed(0, 16))

		Expect(nonIncreasing(tr.Series(trace.U235))).To(BeTrue())
		Expect(nonIncreasing(tr.Series(trace.U238))).To(BeTrue())
		Expect(nonIncreasing(tr.Series(trace.Th232))).To(BeTrue())
		Expect(nonDecreasing(tr.Series(trace.Burnup))).To(BeTrue())
		Expect(tr.Last(trace.U239)).To(BeNumerically(">", 0))
		Expect(tr.Last(trace.Th233)).To(BeNumerically(">", 0))
	})

	It("keeps fissile and fertile inventories exactly constant without neutrons", func() {
		cfg.Initial = Initial{}
		cfg.Duration = 0.01
		tr := run(table, control.NewFixed(0, 0))

		Expect(tr.Len()).To(Equal(101))
		for _, q := range []trace.Quantity{trace.U235, trace.U238} {
			series := tr.Series(q)
			Expect(series[0]).To(BeNumerically(">", 0))
			for k := range series {
				Expect(series[k]).To(Equal(series[0]), "%s at sample %d", q, k)
			}
		}
	})

	It("conserves the breeding chain when there is no flux", func() {
		cfg.Fuel = FuelComposition{U238: 100}
		cfg.Initial = Initial{}
		cfg.Seeds = map[nucdata.Nuclide]float64{nucdata.U239: 1e20}
		cfg.Dt = 1
		cfg.Duration = 1000
		tr := run(table, control.NewFixed(0, 0))

		u239, np239, pu239 := tr.Series(trace.U239), tr.Series(trace.Np239), tr.Series(trace.Pu239)
		for k := range u239 {
			Expect(u239[k] + np239[k] + pu239[k]).To(BeNumerically("~", 1e20, 1e20*1e-9))
		}
		Expect(tr.Last(trace.U239)).To(BeNumerically("<", 1e20))
		Expect(tr.Last(trace.Pu239)).To(BeNumerically(">", 0))
		Expect(tr.Last(trace.Power)).To(BeZero())
	})

	It("follows a ramp setpoint with an empty core", func() {
		law, err := control.NewProportional(control.Ramp{Nominal: 1e9, Duration: 50}, control.Gains{
			Nominal:   1e9,
			Reference: control.Coefficients{Thermal: 16.5},
			Gain:      control.Coefficients{Thermal: 50},
			Max:       40,
		})
		Expect(err).NotTo(HaveOccurred())
		cfg.Initial = Initial{}
		cfg.Dt = 0.05
		cfg.Duration = 60
		tr := run(table, law)

		Expect(tr.Len()).To(Equal(1201))
		sp := tr.Series(trace.Setpoint)
		for k, t := range tr.Series(trace.Time) {
			want := 1e9
			if t < 50 {
				want = 1e9 * t / 50
			}
			Expect(sp[k]).To(BeNumerically("~", want, 1e-3), "t=%g", t)
		}
		Expect(tr.Series(trace.FastNeutrons)).To(HaveEach(BeZero()))
		Expect(tr.Series(trace.ThermalNeutrons)).To(HaveEach(BeZero()))
		Expect(tr.Series(trace.Power)).To(HaveEach(BeZero()))
		// the law pulls absorption out as the setpoint rises
		Expect(tr.Last(trace.ControlThermal)).To(BeZero())
	})

	It("decays fast neutrons into the thermal group when nothing reacts", func() {
		cfg.Initial = Initial{FastNeutrons: 1e12}
		cfg.Dt = 1e-5
		cfg.Duration = 1e-3
		tr := run(zeroCrossSections{table}, control.NewFixed(0, 0))

		lambda := math.Ln2 / DefaultSlowdownHalfLife
		fast := tr.Series(trace.FastNeutrons)
		thermal := tr.Series(trace.ThermalNeutrons)
		for k := range fast {
			want := 1e12 * math.Pow(1-cfg.Dt*lambda, float64(k))
			Expect(fast[k]).To(BeNumerically("~", want, want*1e-9))
			Expect(thermal[k]).To(BeNumerically("~", 1e12-want, 1e12*1e-9))
		}
		Expect(nonDecreasing(thermal)).To(BeTrue())
		Expect(tr.Series(trace.FissionRate)).To(HaveEach(BeZero()))
	})

	It("records setpoint and k_eff only when available", func() {
		cfg.Duration = 1e-3
		cfg.Params.DisableKEff = true
		tr := run(table, control.NewFixed(0, 0))
		Expect(tr.Has(trace.Setpoint)).To(BeFalse())
		Expect(tr.Has(trace.KEff)).To(BeFalse())
		Expect(tr.Has(trace.Power)).To(BeTrue())
	})

	It("feeds metrics with every sample", func() {
		cfg.Duration = 1e-3
		counter := &sampleCounter{n: 42}
		tr := run(table, control.NewFixed(0, 0), WithMetric(counter))
		Expect(tr.Metrics).To(HaveKeyWithValue("samples", 11.0))
	})

	It("surfaces defaulted data as diagnostics", func() {
		cfg.Duration = 1e-3
		tr := run(noHalfLives{table}, control.NewFixed(0, 0))
		Expect(tr.Diagnostics).To(HaveLen(5))
		Expect(tr.Diagnostics[0].Kind).To(Equal(nucdata.MissingHalfLife))
	})

	It("returns no trace for invalid input", func() {
		cfg.Fuel.U235 = -3
		tr, err := NewSimulator(table, control.NewFixed(0, 0)).Run(ctx, cfg)
		Expect(err).To(MatchError(ErrInvalidComposition))
		Expect(tr).To(BeNil())

		cfg = DefaultConfiguration()
		cfg.Dt = 0
		tr, err = NewSimulator(table, control.NewFixed(0, 0)).Run(ctx, cfg)
		Expect(err).To(MatchError(sim.ErrInvalidConfig))
		Expect(tr).To(BeNil())
	})

	It("rejects an integrator that changes the state dimension", func() {
		cfg.Duration = 0.001
		tr, err := NewSimulator(table, control.NewFixed(0, 0), WithIntegrator(truncating{})).Run(ctx, cfg)
		Expect(err).To(MatchError(sim.ErrDimensionMismatch))
		var serr sim.SimError
		Expect(errors.As(err, &serr)).To(BeTrue())
		Expect(serr.Step).To(Equal(0))
		Expect(tr).To(BeNil())
	})

	It("stops when the context is cancelled", func() {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		tr, err := NewSimulator(table, control.NewFixed(0, 0)).Run(cancelled, cfg)
		Expect(err).To(MatchError(context.Canceled))
		Expect(tr).To(BeNil())
	})

	It("is deterministic", func() {
		cfg.Duration = 0.01
		a := run(table, control.NewFixed(0, 16))
		b := run(table, control.NewFixed(0, 16))
		Expect(a.Series(trace.Power)).To(Equal(b.Series(trace.Power)))
	})
})
