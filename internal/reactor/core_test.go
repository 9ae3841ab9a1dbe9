package reactor

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/reactorsim/internal/control"
	"github.com/san-kum/reactorsim/internal/nucdata"
)

var _ = Describe("RateEngine", func() {
	var table *nucdata.Table

	BeforeEach(func() {
		table = defaultTable()
	})

	It("derives k_g from group speed and core volume", func() {
		e, diags, err := NewRateEngine(table, DefaultParams())
		Expect(err).NotTo(HaveOccurred())
		Expect(diags).To(BeEmpty())
		Expect(e.K(Thermal)).To(BeNumerically("~", 2.2e3*1e-28/10, 1e-40))
		Expect(e.K(Fast)).To(BeNumerically("~", 1.4e7*1e-28/10, 1e-36))
	})

	It("looks cross sections up at the group energies", func() {
		e, _, err := NewRateEngine(table, DefaultParams())
		Expect(err).NotTo(HaveOccurred())
		Expect(e.Sigma(Thermal, nucdata.U235, nucdata.Fission)).To(Equal(580.0))
		Expect(e.Sigma(Fast, nucdata.U235, nucdata.Fission)).To(Equal(1.0))
		Expect(e.Sigma(Thermal, nucdata.Xe135, nucdata.Capture)).To(Equal(2.0e6))
	})

	It("computes rate = k·σ·n·N per group", func() {
		e, _, err := NewRateEngine(table, DefaultParams())
		Expect(err).NotTo(HaveOccurred())
		s := State{ThermalNeutrons: 1e10, FastNeutrons: 1e8, U235: 1e24, U238: 3e25}
		r := e.Compute(s)

		want := e.K(Thermal) * 580 * 1e10 * 1e24
		Expect(r.Thermal.U235.Fission).To(BeNumerically("~", want, want*1e-12))
		Expect(r.Thermal.U238.Fission).To(BeZero())
		Expect(r.Fast.U238.Fission).To(BeNumerically(">", 0))
		Expect(r.Thermal.Fission()).To(Equal(r.Thermal.U235.Fission))
		Expect(r.Thermal.Absorption()).To(BeNumerically(">", r.Thermal.Fission()))
	})

	It("collects defaulted lookups as diagnostics", func() {
		p := DefaultParams()
		p.FastEnergy = 5e7
		_, diags, err := NewRateEngine(table, p)
		Expect(err).NotTo(HaveOccurred())
		Expect(diags).NotTo(BeEmpty())
		for _, d := range diags {
			Expect(d.Kind).To(Equal(nucdata.EnergyOutOfRange))
		}
	})

	It("propagates fatal lookup errors", func() {
		_, _, err := NewRateEngine(brokenCrossSections{table}, DefaultParams())
		Expect(err).To(MatchError(nucdata.ErrInvalidEnergy))
	})
})

var _ = Describe("Core", func() {
	var (
		table *nucdata.Table
		cfg   Configuration
	)

	BeforeEach(func() {
		table = defaultTable()
		cfg = DefaultConfiguration()
	})

	newCore := func(p nucdata.Provider) *Core {
		c, _, err := NewCore(p, cfg)
		Expect(err).NotTo(HaveOccurred())
		return c
	}

	It("uses λ = ln2/T½ for every decaying species", func() {
		c := newCore(table)
		Expect(c.DecayConstant(nucdata.U239)).To(BeNumerically("~", math.Ln2/1410, 1e-15))
		Expect(c.DecayConstant(nucdata.Pa233)).To(BeNumerically("~", math.Ln2/2330208, 1e-18))
		Expect(c.SlowdownConstant()).To(BeNumerically("~", math.Ln2/5e-4, 1e-9))
		Expect(c.PrecursorConstant()).To(BeNumerically("~", math.Ln2, 1e-15))
	})

	It("treats missing half-lives as stable", func() {
		c, diags, err := NewCore(noHalfLives{table}, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(diags).To(HaveLen(5))
		Expect(c.DecayConstant(nucdata.Xe135)).To(BeZero())
		Expect(c.DecayConstant(nucdata.U239)).To(BeZero())
	})

	It("conserves the U238 breeding chain without flux", func() {
		c := newCore(table)
		s := State{U239: 1e20, Np239: 3e19, Pu239: 1e18}
		d := c.Evaluate(s, control.Coefficients{}).Derivative
		Expect(d.U239 + d.Np239 + d.Pu239).To(BeNumerically("~", 0, 1e4))
		Expect(d.U239).To(BeNumerically("<", 0))
		Expect(d.Pu239).To(BeNumerically(">", 0))
	})

	It("conserves the Th232 breeding chain without flux", func() {
		c := newCore(table)
		s := State{Th233: 1e20, Pa233: 3e19, U233: 1e18}
		d := c.Evaluate(s, control.Coefficients{}).Derivative
		Expect(d.Th233 + d.Pa233 + d.U233).To(BeNumerically("~", 0, 1e4))
		Expect(d.U233).To(BeNumerically(">", 0))
	})

	It("splits fission products between xenon and precursors", func() {
		c := newCore(table)
		s := State{ThermalNeutrons: 1e10, U235: 1e24}
		ev := c.Evaluate(s, control.Coefficients{})
		Expect(ev.Derivative.Xenon).To(BeNumerically("~", 2*0.05*ev.FissionRate, ev.FissionRate*1e-12))
		Expect(ev.Derivative.Precursors).To(BeNumerically("~", 2*0.95*ev.FissionRate, ev.FissionRate*1e-12))
		Expect(ev.Derivative.FastNeutrons).To(BeNumerically("~", 2*ev.FissionRate, ev.FissionRate*1e-12))
	})

	It("computes power from fission, fission-product decay and slowdown", func() {
		c := newCore(table)
		s := State{FastNeutrons: 1e9, ThermalNeutrons: 1e10, U235: 1e24, Xenon: 1e18, Precursors: 1e15}
		ev := c.Evaluate(s, control.Coefficients{})
		want := ev.FissionRate*190*nucdata.MeV +
			(c.DecayConstant(nucdata.Xe135)*1e18+c.PrecursorConstant()*1e15)*7*nucdata.MeV +
			c.SlowdownConstant()*1e9*2*nucdata.MeV
		Expect(ev.Power).To(BeNumerically("~", want, want*1e-12))
	})

	It("removes neutrons through control absorption", func() {
		c := newCore(table)
		s := State{FastNeutrons: 1e9, ThermalNeutrons: 1e10, U235: 1e24}
		free := c.Evaluate(s, control.Coefficients{})
		held := c.Evaluate(s, control.Coefficients{Fast: 3, Thermal: 10})
		Expect(free.Derivative.FastNeutrons - held.Derivative.FastNeutrons).To(BeNumerically("~", 3e9, 1))
		Expect(free.Derivative.ThermalNeutrons - held.Derivative.ThermalNeutrons).To(BeNumerically("~", 1e11, 10))
		Expect(held.KEff).To(BeNumerically("<", free.KEff))
	})

	It("reports k_eff as production over loss", func() {
		c := newCore(table)
		s := State{ThermalNeutrons: 1e10, U235: 1e24}
		ev := c.Evaluate(s, control.Coefficients{})
		Expect(ev.KEff).To(BeNumerically("~", ev.Production/ev.Loss, 1e-12))
		Expect(c.Evaluate(State{}, control.Coefficients{}).KEff).To(BeZero())
	})

	It("skips k_eff when disabled", func() {
		cfg.Params.DisableKEff = true
		c := newCore(table)
		ev := c.Evaluate(State{ThermalNeutrons: 1e10, U235: 1e24}, control.Coefficients{})
		Expect(ev.KEff).To(BeZero())
	})

	Context("with fast reactions", func() {
		It("ignores fast-group reactions by default", func() {
			c := newCore(table)
			ev := c.Evaluate(State{FastNeutrons: 1e10, U238: 1e25}, control.Coefficients{})
			Expect(ev.FissionRate).To(BeZero())
			Expect(ev.Derivative.U238).To(BeZero())
		})

		It("lets fast fission deplete fuel and absorb fast neutrons when enabled", func() {
			cfg.Params.FastReactions = true
			c := newCore(table)
			s := State{FastNeutrons: 1e10, U238: 1e25}
			ev := c.Evaluate(s, control.Coefficients{})
			Expect(ev.FissionRate).To(BeNumerically("~", ev.Rates.Fast.U238.Fission, 1e-6))
			Expect(ev.Derivative.U238).To(BeNumerically("~", -ev.Rates.Fast.U238.Absorption(), 1e-6))
			Expect(ev.Derivative.U239).To(BeNumerically("~", ev.Rates.Fast.U238.Capture, 1e-6))

			slowdown := c.SlowdownConstant() * 1e10
			want := 2*ev.FissionRate - slowdown - ev.Rates.Fast.Absorption()
			Expect(ev.Derivative.FastNeutrons).To(BeNumerically("~", want, math.Abs(want)*1e-12))
		})
	})

	It("implements sim.Dynamics over the state vector", func() {
		c := newCore(table)
		s := State{ThermalNeutrons: 1e10, U235: 1e24}
		d := c.Derivative(s.Vector(), controlVector(control.Coefficients{Thermal: 5}), 0)
		Expect(d).To(HaveLen(c.StateDim()))
		Expect(StateFromVector(d)).To(Equal(c.Evaluate(s, control.Coefficients{Thermal: 5}).Derivative))
		Expect(c.ControlDim()).To(Equal(2))
	})
})
