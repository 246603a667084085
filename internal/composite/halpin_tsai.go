package composite

import (
	"math"

	"github.com/san-kum/laminate/internal/mech"
)

// Halpin-Tsai curve-fit parameters.
const (
	XiTransverse = 2.0
	XiShear      = 1.0
)

// singularityTol bounds |1 - eta*vf| and the compliance sums below which a
// modulus is reported as singular.
const singularityTol = 1e-12

// Mixing selects how per-angle off-axis moduli are combined.
type Mixing string

const (
	// Voigt treats orientations as parallel load paths: E = sum(w_i * Ex_i).
	Voigt Mixing = "voigt"
	// Reuss treats orientations in series: 1/E = sum(w_i / Ex_i).
	Reuss Mixing = "reuss"
)

var mixers = map[Mixing]func(weights, ex []float64) (float64, error){
	Voigt: func(weights, ex []float64) (float64, error) {
		sum := 0.0
		for i := range ex {
			sum += weights[i] * ex[i]
		}
		return sum, nil
	},
	Reuss: func(weights, ex []float64) (float64, error) {
		compliance := 0.0
		for i := range ex {
			compliance += weights[i] / ex[i]
		}
		if math.Abs(compliance) < singularityTol {
			return 0, mech.Errorf("composite.Reuss", mech.ErrDivisionSingularity, "sum(w/Ex)", compliance)
		}
		return 1 / compliance, nil
	},
}

// ParseMixing converts a name into a Mixing.
func ParseMixing(name string) (Mixing, error) {
	mx := Mixing(name)
	if _, ok := mixers[mx]; !ok {
		return "", mech.Errorf("composite.ParseMixing", mech.ErrInvalidParameter, "mixing", name)
	}
	return mx, nil
}

// Lamina holds the homogenized unidirectional ply constants.
type Lamina struct {
	E1   float64 `json:"e1"`
	E2   float64 `json:"e2"`
	G12  float64 `json:"g12"`
	Nu12 float64 `json:"nu12"`
}

// halpinTsai returns m_m * (1 + xi*eta*vf) / (1 - eta*vf) with
// eta = (m_f/m_m - 1) / (m_f/m_m + xi).
func halpinTsai(param string, mf, mm, xi, vf float64) (float64, error) {
	ratio := mf / mm
	eta := (ratio - 1) / (ratio + xi)
	denom := 1 - eta*vf
	if math.Abs(denom) < singularityTol || math.IsNaN(denom) {
		return 0, mech.Errorf("composite.HalpinTsai", mech.ErrDivisionSingularity, param, denom)
	}
	return mm * (1 + xi*eta*vf) / denom, nil
}

// LaminaConstants computes E1 and nu12 by rule of mixtures and E2, G12 by
// Halpin-Tsai.
func (m *Model) LaminaConstants() (Lamina, error) {
	p := m.material
	vf := m.vf

	e2, err := halpinTsai("1-eta*vf (E2)", p.Ef, p.Em, XiTransverse, vf)
	if err != nil {
		return Lamina{}, err
	}
	g12, err := halpinTsai("1-eta*vf (G12)", p.Gf, p.Gm, XiShear, vf)
	if err != nil {
		return Lamina{}, err
	}

	return Lamina{
		E1:   p.Ef*vf + p.Em*(1-vf),
		E2:   e2,
		G12:  g12,
		Nu12: p.NuF*vf + p.NuM*(1-vf),
	}, nil
}

// OffAxisModulus rotates the ply compliance to the load axis:
// 1/Ex = c^4/E1 + c^2 s^2 (1/G12 - 2 nu12/E1) + s^4/E2.
func (l Lamina) OffAxisModulus(angleDeg float64) (float64, error) {
	rad := deg2rad(angleDeg)
	c, s := math.Cos(rad), math.Sin(rad)
	c2, s2 := c*c, s*s

	inv := c2*c2/l.E1 + c2*s2*(1/l.G12-2*l.Nu12/l.E1) + s2*s2/l.E2
	// scale is the compliance magnitude without cancellation; inv is
	// singular only relative to it.
	scale := c2*c2/math.Abs(l.E1) + c2*s2*(1/math.Abs(l.G12)+2*math.Abs(l.Nu12/l.E1)) + s2*s2/math.Abs(l.E2)
	if inv == 0 || math.IsNaN(inv) || math.IsInf(inv, 0) || math.Abs(inv) < singularityTol*scale {
		return 0, mech.Errorf("composite.OffAxisModulus", mech.ErrDivisionSingularity, "1/Ex", inv)
	}
	ex := 1 / inv
	if math.IsInf(ex, 0) {
		return 0, mech.Errorf("composite.OffAxisModulus", mech.ErrDivisionSingularity, "Ex", ex)
	}
	return ex, nil
}

// HalpinTsaiModulus returns the Voigt-averaged effective modulus.
func (m *Model) HalpinTsaiModulus() (float64, error) {
	return m.HalpinTsaiModulusWith(Voigt)
}

// HalpinTsaiModulusWith combines the off-axis moduli with the given rule.
func (m *Model) HalpinTsaiModulusWith(mx Mixing) (float64, error) {
	mix, ok := mixers[mx]
	if !ok {
		return 0, mech.Errorf("composite.HalpinTsaiModulus", mech.ErrInvalidParameter, "mixing", string(mx))
	}

	lamina, err := m.LaminaConstants()
	if err != nil {
		return 0, err
	}

	ex := make([]float64, len(m.angles))
	for i, angle := range m.angles {
		if ex[i], err = lamina.OffAxisModulus(angle); err != nil {
			return 0, err
		}
	}
	return mix(m.weights, ex)
}

// StressHalpinTsai applies the Voigt-averaged Halpin-Tsai modulus to every
// strain sample.
func (m *Model) StressHalpinTsai(strain mech.Series) (mech.Series, error) {
	return m.StressHalpinTsaiWith(strain, Voigt)
}

func (m *Model) StressHalpinTsaiWith(strain mech.Series, mx Mixing) (mech.Series, error) {
	e, err := m.HalpinTsaiModulusWith(mx)
	if err != nil {
		return nil, err
	}
	return strain.Scale(e), nil
}
