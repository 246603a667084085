package composite

import (
	"math"

	"github.com/san-kum/laminate/internal/material"
)

// TsaiHill returns the Tsai-Hill failure index of a ply at angleDeg under a
// uniaxial global stress. Index >= 1 predicts failure.
func TsaiHill(p material.Properties, stress, angleDeg float64) float64 {
	rad := deg2rad(angleDeg)
	c, s := math.Cos(rad), math.Sin(rad)

	sigma1 := stress * c * c
	sigma2 := stress * s * s
	tau12 := -stress * s * c

	x := p.Xt
	if sigma1 < 0 {
		x = p.Xc
	}
	y := p.Yt
	if sigma2 < 0 {
		y = p.Yc
	}

	r1 := sigma1 / x
	r2 := sigma2 / y
	r12 := tau12 / p.S
	return r1*r1 - sigma1*sigma2/(x*x) + r2*r2 + r12*r12
}

// TsaiHill evaluates the criterion with the model's strengths.
func (m *Model) TsaiHill(stress, angleDeg float64) float64 {
	return TsaiHill(m.material, stress, angleDeg)
}
