package analysis

import (
	"github.com/san-kum/laminate/internal/composite"
	"github.com/san-kum/laminate/internal/material"
)

// Laminate is the fixed part of a parameter study: the orientation
// distribution and constituents. Volume fraction and weights vary per point.
type Laminate struct {
	Angles      []float64
	Weights     []float64
	Material    material.Properties
	FiberFactor float64
}

// NewLaminate uses the default material and fiber factor.
func NewLaminate(angles, weights []float64) Laminate {
	return Laminate{
		Angles:      angles,
		Weights:     weights,
		Material:    material.Default(),
		FiberFactor: composite.DefaultFiberFactor,
	}
}

// Model builds the composite model at vf.
func (l Laminate) Model(vf float64) (*composite.Model, error) {
	return composite.New(l.Angles, l.Weights, vf, l.Material, l.FiberFactor)
}

func defaultLaw(law composite.Law) composite.Law {
	if law == nil {
		return composite.NewWeightedLaw(composite.Cos4)
	}
	return law
}
