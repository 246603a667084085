package analysis

import (
	"github.com/san-kum/laminate/internal/composite"
	"github.com/san-kum/laminate/internal/mech"
)

// Envelope is the Tsai-Hill index of a ply across angles at one applied
// stress.
type Envelope struct {
	Stress  float64     `json:"stress"`
	Angles  mech.Series `json:"angles"`
	Indices mech.Series `json:"indices"`
}

// FailureEnvelope evaluates the model's Tsai-Hill index at each angle.
func FailureEnvelope(m *composite.Model, stress float64, angles []float64) Envelope {
	env := Envelope{
		Stress:  stress,
		Angles:  mech.Series(angles).Clone(),
		Indices: make(mech.Series, len(angles)),
	}
	for i, a := range angles {
		env.Indices[i] = m.TsaiHill(stress, a)
	}
	return env
}

// CriticalAngle returns the angle with the largest index. Ties keep the
// first angle.
func CriticalAngle(e Envelope) (angle, index float64, err error) {
	if len(e.Indices) == 0 {
		return 0, 0, mech.Errorf("analysis.CriticalAngle", mech.ErrInsufficientData, "angles", 0)
	}
	best := 0
	for i, v := range e.Indices {
		if v > e.Indices[best] {
			best = i
		}
	}
	return e.Angles[best], e.Indices[best], nil
}

// Fails reports whether any ply angle reaches an index of 1.
func (e Envelope) Fails() bool {
	for _, v := range e.Indices {
		if v >= 1 {
			return true
		}
	}
	return false
}
