// Package composite implements the stress-strain model of a fiber-reinforced
// laminate built from a discrete distribution of fiber orientation angles.
//
// A [Model] pairs angles (degrees) with orientation weights, a fiber volume
// fraction and constituent [material.Properties]. It exposes two stress laws
// and a ply failure criterion:
//
//   - [Model.StressWeighted]: empirical weighted rule of mixtures, with the
//     orientation factor chosen by a [Weighting] strategy (cos4, cos2)
//   - [Model.StressHalpinTsai]: Halpin-Tsai lamina constants rotated to the
//     load axis and combined by a [Mixing] strategy (voigt, reuss)
//   - [Model.TsaiHill]: Tsai-Hill failure index of a single ply under
//     uniaxial load
//
// Both laws are linear: one effective modulus is applied across the whole
// strain range. Strain is dimensionless; moduli, stresses and strengths are
// in MPa.
//
// # Example
//
//	m, err := composite.New(angles, weights, 0.1, material.Default(), composite.DefaultFiberFactor)
//	if err != nil {
//	    return err
//	}
//	stress, err := m.StressWeighted(strain, composite.Cos4)
//
// # Thread Safety
//
// A Model is immutable after New and may be shared freely between goroutines.
package composite
