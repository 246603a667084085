package composite

import (
	"math"

	"github.com/san-kum/laminate/internal/mech"
)

// Weighting selects the orientation factor of the weighted law.
type Weighting string

const (
	// Cos4 projects both strain and stress onto the fiber axis: cos^4.
	Cos4 Weighting = "cos4"
	// Cos2 projects once: cos^2.
	Cos2 Weighting = "cos2"
)

// orientationFactors maps a weighting to its factor as a function of
// cos^2(angle).
var orientationFactors = map[Weighting]func(cosSq float64) float64{
	Cos4: func(cosSq float64) float64 { return cosSq * cosSq },
	Cos2: func(cosSq float64) float64 { return cosSq },
}

// ParseWeighting converts a name into a Weighting.
func ParseWeighting(name string) (Weighting, error) {
	w := Weighting(name)
	if _, ok := orientationFactors[w]; !ok {
		return "", mech.Errorf("composite.ParseWeighting", mech.ErrInvalidParameter, "weighting", name)
	}
	return w, nil
}

// OrientationFactor evaluates the weighting at an angle in degrees.
func (w Weighting) OrientationFactor(angleDeg float64) (float64, error) {
	fn, ok := orientationFactors[w]
	if !ok {
		return 0, mech.Errorf("composite.OrientationFactor", mech.ErrInvalidParameter, "weighting", string(w))
	}
	c := math.Cos(deg2rad(angleDeg))
	return fn(c * c), nil
}

// angleTerms returns E_fiber_factor * vf * weight_i * factor_i for every
// angle. Both the summed stress and the per-angle components are built from
// these exact terms, which keeps the decomposition bit-exact.
func (m *Model) angleTerms(w Weighting) ([]float64, error) {
	terms := make([]float64, len(m.angles))
	for i, angle := range m.angles {
		f, err := w.OrientationFactor(angle)
		if err != nil {
			return nil, err
		}
		terms[i] = m.fiberFactor * m.vf * m.weights[i] * f
	}
	return terms, nil
}

// WeightedModulus returns E_total = E_fiber_factor * vf * sum(weight_i * factor_i).
func (m *Model) WeightedModulus(w Weighting) (float64, error) {
	terms, err := m.angleTerms(w)
	if err != nil {
		return 0, err
	}
	return mech.Series(terms).Sum(), nil
}

// StressWeighted applies the weighted law to every strain sample.
func (m *Model) StressWeighted(strain mech.Series, w Weighting) (mech.Series, error) {
	terms, err := m.angleTerms(w)
	if err != nil {
		return nil, err
	}

	stress := make(mech.Series, len(strain))
	for j, eps := range strain {
		sum := 0.0
		for _, term := range terms {
			sum += term * eps
		}
		stress[j] = sum
	}
	return stress, nil
}

// StressComponents returns the per-angle contribution matrix
// [n_angles][n_strain]. Column sums equal StressWeighted exactly.
func (m *Model) StressComponents(strain mech.Series, w Weighting) ([]mech.Series, error) {
	terms, err := m.angleTerms(w)
	if err != nil {
		return nil, err
	}

	components := make([]mech.Series, len(terms))
	for i, term := range terms {
		row := make(mech.Series, len(strain))
		for j, eps := range strain {
			row[j] = term * eps
		}
		components[i] = row
	}
	return components, nil
}
