package composite_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/laminate/internal/composite"
	"github.com/san-kum/laminate/internal/material"
	"github.com/san-kum/laminate/internal/mech"
)

var (
	refAngles  = []float64{0, 10, 20, 30, 40, 50, 60, 70, 80}
	refWeights = []float64{0.0693, 0.1360, 0.1360, 0.1226, 0.1146, 0.1054, 0.0974, 0.0920, 0.0880}
)

func mustModel(angles, weights []float64, vf float64) *composite.Model {
	m, err := composite.New(angles, weights, vf, material.Default(), composite.DefaultFiberFactor)
	Expect(err).NotTo(HaveOccurred())
	return m
}

var _ = Describe("Model construction", func() {
	It("accepts matching angles and weights", func() {
		m := mustModel([]float64{0, 45, 90}, []float64{0.5, 0.3, 0.2}, 0.1)
		Expect(m.Angles()).To(HaveLen(3))
		Expect(m.Vf()).To(Equal(0.1))
		Expect(m.FiberFactor()).To(Equal(525.0))
	})

	It("rejects mismatched lengths", func() {
		_, err := composite.New([]float64{0, 10}, []float64{0.5}, 0.1, material.Default(), 525)
		Expect(err).To(MatchError(mech.ErrDimensionMismatch))
	})

	DescribeTable("rejects out-of-range volume fractions",
		func(vf float64) {
			_, err := composite.New([]float64{0}, []float64{1}, vf, material.Default(), 525)
			Expect(err).To(MatchError(mech.ErrInvalidParameter))
		},
		Entry("above one", 1.5),
		Entry("negative", -0.01),
		Entry("NaN", math.NaN()),
	)

	It("accepts the closed bounds of vf", func() {
		mustModel([]float64{0}, []float64{1}, 0)
		mustModel([]float64{0}, []float64{1}, 1)
	})

	It("rejects an invalid material", func() {
		bad := material.Default()
		bad.Em = 0
		_, err := composite.New([]float64{0}, []float64{1}, 0.1, bad, 525)
		Expect(err).To(MatchError(mech.ErrInvalidParameter))
	})

	It("copies its inputs", func() {
		angles := []float64{0, 45}
		weights := []float64{0.5, 0.5}
		m := mustModel(angles, weights, 0.2)
		angles[0], weights[0] = 90, 9
		Expect(m.Angles()[0]).To(Equal(0.0))
		Expect(m.Weights()[0]).To(Equal(0.5))
	})

	It("derives fresh instances for parameter variations", func() {
		m := mustModel(refAngles, refWeights, 0.1)
		m2, err := m.WithVf(0.4)
		Expect(err).NotTo(HaveOccurred())
		Expect(m2.Vf()).To(Equal(0.4))
		Expect(m.Vf()).To(Equal(0.1))

		_, err = m.WithWeights([]float64{1})
		Expect(err).To(MatchError(mech.ErrDimensionMismatch))
	})
})

var _ = Describe("Weighted law", func() {
	It("reproduces the single-fiber reference value", func() {
		m := mustModel([]float64{0}, []float64{1.0}, 0.1)
		stress, err := m.StressWeighted(mech.Series{0.01}, composite.Cos4)
		Expect(err).NotTo(HaveOccurred())
		Expect(stress[0]).To(BeNumerically("~", 0.525, 1e-12))
	})

	It("rejects unknown weightings", func() {
		m := mustModel(refAngles, refWeights, 0.1)
		_, err := m.StressWeighted(mech.Series{0.01}, composite.Weighting("cos3"))
		Expect(err).To(MatchError(mech.ErrInvalidParameter))
		_, err = m.StressComponents(mech.Series{0.01}, composite.Weighting(""))
		Expect(err).To(MatchError(mech.ErrInvalidParameter))
		_, err = composite.ParseWeighting("cos6")
		Expect(err).To(MatchError(mech.ErrInvalidParameter))
	})

	DescribeTable("is linear in strain",
		func(w composite.Weighting, k float64) {
			m := mustModel(refAngles, refWeights, 0.3)
			strain := mech.Series{0.001, 0.01, 0.05, 0.3}
			base, err := m.StressWeighted(strain, w)
			Expect(err).NotTo(HaveOccurred())
			scaled, err := m.StressWeighted(strain.Scale(k), w)
			Expect(err).NotTo(HaveOccurred())
			for j := range strain {
				Expect(scaled[j]).To(BeNumerically("~", k*base[j], 1e-9*math.Abs(k*base[j])+1e-15))
			}
		},
		Entry("cos4 doubled", composite.Cos4, 2.0),
		Entry("cos2 scaled down", composite.Cos2, 0.125),
		Entry("cos4 negated", composite.Cos4, -3.0),
	)

	DescribeTable("decomposes exactly into per-angle components",
		func(w composite.Weighting) {
			m := mustModel(refAngles, refWeights, 0.1)
			strain := mech.Series{0.001, 0.0123, 0.2, 0.3}
			stress, err := m.StressWeighted(strain, w)
			Expect(err).NotTo(HaveOccurred())
			comps, err := m.StressComponents(strain, w)
			Expect(err).NotTo(HaveOccurred())
			Expect(comps).To(HaveLen(len(refAngles)))

			for j := range strain {
				sum := 0.0
				for i := range comps {
					sum += comps[i][j]
				}
				Expect(sum).To(Equal(stress[j]))
			}
		},
		Entry("cos4", composite.Cos4),
		Entry("cos2", composite.Cos2),
	)

	It("weights cos2 at least as heavily as cos4", func() {
		m := mustModel(refAngles, refWeights, 0.1)
		e4, err := m.WeightedModulus(composite.Cos4)
		Expect(err).NotTo(HaveOccurred())
		e2, err := m.WeightedModulus(composite.Cos2)
		Expect(err).NotTo(HaveOccurred())
		Expect(e2).To(BeNumerically(">", e4))
	})

	It("gives zero stress at zero volume fraction", func() {
		m := mustModel(refAngles, refWeights, 0)
		stress, err := m.StressWeighted(mech.Series{0.1, 0.2}, composite.Cos4)
		Expect(err).NotTo(HaveOccurred())
		Expect(stress).To(Equal(mech.Series{0, 0}))
	})
})

var _ = Describe("Halpin-Tsai law", func() {
	var p material.Properties

	BeforeEach(func() {
		p = material.Default()
	})

	It("computes lamina constants", func() {
		m := mustModel([]float64{0}, []float64{1}, 0.1)
		l, err := m.LaminaConstants()
		Expect(err).NotTo(HaveOccurred())

		Expect(l.E1).To(BeNumerically("~", p.Ef*0.1+p.Em*0.9, 1e-9))
		Expect(l.Nu12).To(BeNumerically("~", p.NuF*0.1+p.NuM*0.9, 1e-12))

		ratio := p.Ef / p.Em
		eta := (ratio - 1) / (ratio + 2)
		Expect(l.E2).To(BeNumerically("~", p.Em*(1+2*eta*0.1)/(1-eta*0.1), 1e-9))

		ratioG := p.Gf / p.Gm
		etaG := (ratioG - 1) / (ratioG + 1)
		Expect(l.G12).To(BeNumerically("~", p.Gm*(1+etaG*0.1)/(1-etaG*0.1), 1e-9))
	})

	It("returns E1 for fibers along the load axis and E2 across it", func() {
		l, err := mustModel([]float64{0}, []float64{1}, 0.3).LaminaConstants()
		Expect(err).NotTo(HaveOccurred())

		e0, err := mustModel([]float64{0}, []float64{1}, 0.3).HalpinTsaiModulus()
		Expect(err).NotTo(HaveOccurred())
		Expect(e0).To(BeNumerically("~", l.E1, 1e-6))

		e90, err := mustModel([]float64{90}, []float64{1}, 0.3).HalpinTsaiModulus()
		Expect(err).NotTo(HaveOccurred())
		Expect(e90).To(BeNumerically("~", l.E2, 1e-6))
	})

	It("averages off-axis moduli in parallel by default", func() {
		m := mustModel([]float64{0, 90}, []float64{0.5, 0.5}, 0.2)
		l, err := m.LaminaConstants()
		Expect(err).NotTo(HaveOccurred())

		voigt, err := m.HalpinTsaiModulus()
		Expect(err).NotTo(HaveOccurred())
		Expect(voigt).To(BeNumerically("~", 0.5*l.E1+0.5*l.E2, 1e-6))

		reuss, err := m.HalpinTsaiModulusWith(composite.Reuss)
		Expect(err).NotTo(HaveOccurred())
		Expect(reuss).To(BeNumerically("~", 1/(0.5/l.E1+0.5/l.E2), 1e-6))
		Expect(voigt).To(BeNumerically(">", reuss))
	})

	It("produces positive linear stress", func() {
		m := mustModel([]float64{0, 45, 90}, []float64{0.5, 0.3, 0.2}, 0.1)
		e, err := m.HalpinTsaiModulus()
		Expect(err).NotTo(HaveOccurred())

		stress, err := m.StressHalpinTsai(mech.Series{0.001, 0.002})
		Expect(err).NotTo(HaveOccurred())
		Expect(stress).To(HaveLen(2))
		Expect(stress[0]).To(BeNumerically(">", 0))
		Expect(stress[1]).To(BeNumerically("~", 0.002*e, 1e-9))
	})

	It("reports a transverse denominator collapse as a singularity", func() {
		extreme, err := material.New(material.WithFiber(1e20, 0.2, 50000), material.WithMatrix(1, 0.35, 1200))
		Expect(err).NotTo(HaveOccurred())
		m, err := composite.New([]float64{0}, []float64{1}, 1, extreme, 525)
		Expect(err).NotTo(HaveOccurred())

		_, err = m.HalpinTsaiModulus()
		Expect(err).To(MatchError(mech.ErrDivisionSingularity))
		_, err = m.StressHalpinTsai(mech.Series{0.01})
		Expect(err).To(MatchError(mech.ErrDivisionSingularity))
	})

	It("accepts very stiff plies", func() {
		l := composite.Lamina{E1: 1e26, E2: 1e24, G12: 5e23, Nu12: 0.3}
		for _, angle := range []float64{0, 30, 45, 90} {
			ex, err := l.OffAxisModulus(angle)
			Expect(err).NotTo(HaveOccurred())
			Expect(ex).To(BeNumerically(">=", 1e24*0.99))
			Expect(ex).To(BeNumerically("<=", 1e26*1.01))
		}
	})

	It("reports a ply without stiffness as a singularity", func() {
		_, err := composite.Lamina{}.OffAxisModulus(45)
		Expect(err).To(MatchError(mech.ErrDivisionSingularity))
	})

	It("reports a cancelling off-axis compliance as a singularity", func() {
		// 1/G12 equals 2*nu12/E1 - 1/E1 - 1/E2 at 45 degrees, so the sum is zero.
		l := composite.Lamina{E1: 1, E2: 1, Nu12: 2}
		l.G12 = 1 / (2*l.Nu12/l.E1 - 1/l.E1 - 1/l.E2)
		_, err := l.OffAxisModulus(45)
		Expect(err).To(MatchError(mech.ErrDivisionSingularity))
	})

	It("reports an empty Reuss compliance as a singularity", func() {
		m := mustModel([]float64{0, 45}, []float64{0, 0}, 0.2)
		_, err := m.HalpinTsaiModulusWith(composite.Reuss)
		Expect(err).To(MatchError(mech.ErrDivisionSingularity))
	})

	It("rejects unknown mixing rules", func() {
		m := mustModel(refAngles, refWeights, 0.1)
		_, err := m.HalpinTsaiModulusWith(composite.Mixing("hashin"))
		Expect(err).To(MatchError(mech.ErrInvalidParameter))
		_, err = composite.ParseMixing("geometric")
		Expect(err).To(MatchError(mech.ErrInvalidParameter))
	})
})

var _ = Describe("Tsai-Hill index", func() {
	var m *composite.Model

	BeforeEach(func() {
		m = mustModel([]float64{0, 45, 90}, []float64{0.5, 0.3, 0.2}, 0.1)
	})

	It("separates safe and failing loads along the fibers", func() {
		Expect(m.TsaiHill(100.0, 0)).To(BeNumerically("<", 1))
		Expect(m.TsaiHill(2500.0, 0)).To(BeNumerically(">", 1))
		Expect(m.TsaiHill(100.0, 0)).To(BeNumerically("~", 0.0025, 1e-12))
	})

	It("uses compressive strength for negative fiber stress", func() {
		Expect(m.TsaiHill(-1500.0, 0)).To(BeNumerically("~", 2.25, 1e-12))
	})

	It("uses transverse strength across the fibers", func() {
		Expect(m.TsaiHill(40.0, 90)).To(BeNumerically("~", 0.64, 1e-9))
		Expect(m.TsaiHill(-40.0, 90)).To(BeNumerically("~", (40.0/150)*(40.0/150), 1e-9))
	})

	It("includes the shear term off axis", func() {
		p := material.Default()
		s1, s2, t12 := 50.0*0.5, 50.0*0.5, -50.0*0.5
		want := math.Pow(s1/p.Xt, 2) - s1*s2/(p.Xt*p.Xt) + math.Pow(s2/p.Yt, 2) + math.Pow(t12/p.S, 2)
		Expect(composite.TsaiHill(p, 50, 45)).To(BeNumerically("~", want, 1e-9))
	})

	It("is zero without load", func() {
		Expect(m.TsaiHill(0, 30)).To(Equal(0.0))
	})
})

var _ = Describe("Laws", func() {
	It("dispatch to the model's stress functions", func() {
		m := mustModel(refAngles, refWeights, 0.1)
		strain := mech.Series{0.001, 0.01}

		var law composite.Law = composite.NewWeightedLaw(composite.Cos2)
		Expect(law.Name()).To(Equal(composite.LawWeighted))
		got, err := law.Stress(m, strain)
		Expect(err).NotTo(HaveOccurred())
		want, err := m.StressWeighted(strain, composite.Cos2)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(want))

		law = composite.NewHalpinTsaiLaw(composite.Voigt)
		Expect(law.Name()).To(Equal(composite.LawHalpinTsai))
		e, err := law.Modulus(m)
		Expect(err).NotTo(HaveOccurred())
		ref, err := m.HalpinTsaiModulus()
		Expect(err).NotTo(HaveOccurred())
		Expect(e).To(Equal(ref))
	})
})
