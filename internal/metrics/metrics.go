package metrics

import "github.com/san-kum/laminate/internal/mech"

// Metric accumulates a scalar over the samples of a stress-strain curve.
type Metric interface {
	Name() string
	Observe(strain, stress float64)
	Value() float64
	Reset()
}

// ObserveCurve resets each metric and feeds it the curve in order.
func ObserveCurve(ms []Metric, strain, stress mech.Series) error {
	if len(strain) != len(stress) {
		return mech.Errorf("metrics.ObserveCurve", mech.ErrDimensionMismatch,
			"len(strain)/len(stress)", [2]int{len(strain), len(stress)})
	}
	for _, m := range ms {
		m.Reset()
		for i := range strain {
			m.Observe(strain[i], stress[i])
		}
	}
	return nil
}

func Values(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}

// Standard is the metric set recorded for every run.
func Standard() []Metric {
	return []Metric{
		NewPeakStress(),
		NewSecantModulus(),
		NewStrainEnergy(),
	}
}
