package composite

import (
	"math"

	"github.com/san-kum/laminate/internal/material"
	"github.com/san-kum/laminate/internal/mech"
)

// DefaultFiberFactor is the empirical stiffness scale of the weighted law,
// in MPa per unit volume fraction (5.25 x 100 in the reference data set).
const DefaultFiberFactor = 525.0

// DefaultVf is the reference fiber volume fraction.
const DefaultVf = 0.1

// Model is an immutable composite description. angles[i] always pairs with
// weights[i].
type Model struct {
	angles      []float64
	weights     []float64
	vf          float64
	material    material.Properties
	fiberFactor float64
}

// New validates inputs and builds a Model. Angles and weights are copied, so
// later changes to the caller's slices do not leak into the model. Weights
// are not renormalized.
func New(angles, weights []float64, vf float64, mat material.Properties, fiberFactor float64) (*Model, error) {
	if len(angles) != len(weights) {
		return nil, mech.Errorf("composite.New", mech.ErrDimensionMismatch,
			"len(angles)/len(weights)", [2]int{len(angles), len(weights)})
	}
	if !(vf >= 0 && vf <= 1) {
		return nil, mech.Errorf("composite.New", mech.ErrInvalidParameter, "vf", vf)
	}
	if math.IsNaN(fiberFactor) || math.IsInf(fiberFactor, 0) || fiberFactor < 0 {
		return nil, mech.Errorf("composite.New", mech.ErrInvalidParameter, "fiber_factor", fiberFactor)
	}
	if err := mat.Validate(); err != nil {
		return nil, err
	}

	m := &Model{
		angles:      make([]float64, len(angles)),
		weights:     make([]float64, len(weights)),
		vf:          vf,
		material:    mat,
		fiberFactor: fiberFactor,
	}
	copy(m.angles, angles)
	copy(m.weights, weights)
	return m, nil
}

// WithVf returns a new model identical to m except for the volume fraction.
func (m *Model) WithVf(vf float64) (*Model, error) {
	return New(m.angles, m.weights, vf, m.material, m.fiberFactor)
}

// WithWeights returns a new model identical to m except for the weights.
func (m *Model) WithWeights(weights []float64) (*Model, error) {
	return New(m.angles, weights, m.vf, m.material, m.fiberFactor)
}

func (m *Model) Angles() []float64 {
	out := make([]float64, len(m.angles))
	copy(out, m.angles)
	return out
}

func (m *Model) Weights() []float64 {
	out := make([]float64, len(m.weights))
	copy(out, m.weights)
	return out
}

func (m *Model) Vf() float64                   { return m.vf }
func (m *Model) FiberFactor() float64          { return m.fiberFactor }
func (m *Model) Material() material.Properties { return m.material }

func deg2rad(deg float64) float64 {
	return deg * math.Pi / 180
}
