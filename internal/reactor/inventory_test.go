package reactor

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/reactorsim/internal/nucdata"
	"github.com/san-kum/reactorsim/internal/sim"
)

var _ = Describe("InitialState", func() {
	var (
		table *nucdata.Table
		cfg   Configuration
	)

	BeforeEach(func() {
		table = defaultTable()
		cfg = DefaultConfiguration()
	})

	It("converts mass fractions into atom counts", func() {
		s, diags, err := InitialState(cfg, table)
		Expect(err).NotTo(HaveOccurred())
		Expect(diags).To(BeEmpty())

		want235 := 0.03 * 25 / 0.235 * nucdata.Avogadro
		want238 := 0.97 * 25 / 0.238 * nucdata.Avogadro
		Expect(s.U235).To(BeNumerically("~", want235, want235*1e-12))
		Expect(s.U238).To(BeNumerically("~", want238, want238*1e-12))
		Expect(s.ThermalNeutrons).To(Equal(1e10))
		Expect(s.FastNeutrons).To(BeZero())
	})

	It("starts bred nuclides, xenon and precursors empty", func() {
		s, _, err := InitialState(cfg, table)
		Expect(err).NotTo(HaveOccurred())
		for _, v := range []float64{s.U239, s.Np239, s.Pu239, s.Th233, s.Pa233, s.U233, s.Xenon, s.Precursors} {
			Expect(v).To(BeZero())
		}
	})

	It("adds seeds on top of the fuel inventory", func() {
		cfg.Seeds = map[nucdata.Nuclide]float64{nucdata.U239: 1e20, nucdata.U235: 5}
		base, _, err := InitialState(DefaultConfiguration(), table)
		Expect(err).NotTo(HaveOccurred())

		s, _, err := InitialState(cfg, table)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.U239).To(Equal(1e20))
		Expect(s.U235).To(Equal(base.U235 + 5))
	})

	It("reports a composition that does not sum to 100%", func() {
		cfg.Fuel = FuelComposition{U235: 3, U238: 90}
		_, diags, err := InitialState(cfg, table)
		Expect(err).NotTo(HaveOccurred())
		Expect(diags).To(HaveLen(1))
		Expect(diags[0].Kind).To(Equal(nucdata.CompositionNotNormalized))
		Expect(diags[0].Value).To(BeNumerically("~", 93, 1e-9))
	})

	It("fails when a fuel nuclide has no molar mass", func() {
		_, _, err := InitialState(cfg, noMolarMasses{table})
		Expect(err).To(MatchError(nucdata.ErrNoMolarMass))
	})

	It("skips the molar mass of absent fuel nuclides", func() {
		cfg.Fuel = FuelComposition{}
		_, diags, err := InitialState(cfg, noMolarMasses{table})
		Expect(err).NotTo(HaveOccurred())
		Expect(diags).To(HaveLen(1))
	})

	DescribeTable("rejects invalid input",
		func(mutate func(*Configuration), target error) {
			mutate(&cfg)
			_, _, err := InitialState(cfg, table)
			Expect(err).To(MatchError(target))
		},
		Entry("negative fraction", func(c *Configuration) { c.Fuel.U235 = -1 }, ErrInvalidComposition),
		Entry("negative xenon share", func(c *Configuration) { c.FissionProducts.Xe135 = -5 }, ErrInvalidComposition),
		Entry("zero fuel mass", func(c *Configuration) { c.FuelMass = 0 }, ErrInvalidInput),
		Entry("negative neutrons", func(c *Configuration) { c.Initial.ThermalNeutrons = -1 }, ErrInvalidInput),
		Entry("untracked seed", func(c *Configuration) {
			c.Seeds = map[nucdata.Nuclide]float64{nucdata.Pu240: 1}
		}, ErrInvalidInput),
		Entry("negative seed", func(c *Configuration) {
			c.Seeds = map[nucdata.Nuclide]float64{nucdata.U239: -1}
		}, ErrInvalidInput),
		Entry("zero dt", func(c *Configuration) { c.Dt = 0 }, sim.ErrInvalidConfig),
		Entry("negative duration", func(c *Configuration) { c.Duration = -1 }, sim.ErrInvalidConfig),
		Entry("zero core volume", func(c *Configuration) { c.Params.CoreVolume = 0 }, ErrInvalidParams),
	)
})

var _ = Describe("State", func() {
	It("round-trips through its vector form", func() {
		s := State{FastNeutrons: 1, ThermalNeutrons: 2, U235: 3, U238: 4, U239: 5, Np239: 6,
			Pu239: 7, Th232: 8, Th233: 9, Pa233: 10, U233: 11, Precursors: 12, Xenon: 13}
		v := s.Vector()
		Expect(v).To(HaveLen(StateDim))
		Expect(v[IdxXenon]).To(Equal(13.0))
		Expect(StateFromVector(v)).To(Equal(s))
	})

	It("looks up tracked nuclides", func() {
		s := State{Pa233: 4}
		n, ok := s.Atoms(nucdata.Pa233)
		Expect(ok).To(BeTrue())
		Expect(n).To(Equal(4.0))
		_, ok = s.Atoms(nucdata.Neutron)
		Expect(ok).To(BeFalse())
	})
})
