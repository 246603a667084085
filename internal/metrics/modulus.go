package metrics

import "math"

// SecantModulus is stress/strain at the last nonzero-strain sample.
type SecantModulus struct {
	name    string
	modulus float64
}

func NewSecantModulus() *SecantModulus {
	return &SecantModulus{name: "secant_modulus"}
}

func (s *SecantModulus) Name() string { return s.name }

func (s *SecantModulus) Observe(strain, stress float64) {
	if strain != 0 {
		s.modulus = stress / strain
	}
}

func (s *SecantModulus) Value() float64 { return s.modulus }

func (s *SecantModulus) Reset() { s.modulus = 0 }

// ModulusError is the relative distance between the secant modulus and a
// target stiffness. The optimizer minimizes it.
type ModulusError struct {
	name   string
	target float64
	secant SecantModulus
}

func NewModulusError(target float64) *ModulusError {
	return &ModulusError{name: "modulus_error", target: target}
}

func (m *ModulusError) Name() string { return m.name }

func (m *ModulusError) Observe(strain, stress float64) {
	m.secant.Observe(strain, stress)
}

func (m *ModulusError) Value() float64 {
	if m.target == 0 {
		return math.Abs(m.secant.Value())
	}
	return math.Abs(m.secant.Value()-m.target) / math.Abs(m.target)
}

func (m *ModulusError) Reset() { m.secant.Reset() }
