// Package material holds constituent elastic constants and lamina strength
// limits for a fiber/matrix system. All moduli and strengths are in MPa.
package material

import (
	"github.com/san-kum/laminate/internal/mech"
)

// Default constituent values: carbon fiber in an epoxy matrix.
const (
	DefaultEf  = 230000.0
	DefaultEm  = 3000.0
	DefaultNuF = 0.2
	DefaultNuM = 0.35
	DefaultGf  = 50000.0
	DefaultGm  = 1200.0
	DefaultXt  = 2000.0
	DefaultXc  = 1000.0
	DefaultYt  = 50.0
	DefaultYc  = 150.0
	DefaultS   = 70.0
)

// Properties is an immutable record of fiber/matrix constants and lamina
// strengths. Build it with New or Default; do not mutate a value that has
// been handed to a composite model.
type Properties struct {
	Ef  float64 `json:"e_f" yaml:"e_f"`   // fiber modulus
	Em  float64 `json:"e_m" yaml:"e_m"`   // matrix modulus
	NuF float64 `json:"nu_f" yaml:"nu_f"` // fiber Poisson ratio
	NuM float64 `json:"nu_m" yaml:"nu_m"` // matrix Poisson ratio
	Gf  float64 `json:"g_f" yaml:"g_f"`   // fiber shear modulus
	Gm  float64 `json:"g_m" yaml:"g_m"`   // matrix shear modulus

	Xt float64 `json:"x_t" yaml:"x_t"` // longitudinal tensile strength
	Xc float64 `json:"x_c" yaml:"x_c"` // longitudinal compressive strength
	Yt float64 `json:"y_t" yaml:"y_t"` // transverse tensile strength
	Yc float64 `json:"y_c" yaml:"y_c"` // transverse compressive strength
	S  float64 `json:"s" yaml:"s"`     // in-plane shear strength
}

// Option overrides part of a Properties value during construction.
type Option func(*Properties)

func WithFiber(e, nu, g float64) Option {
	return func(p *Properties) {
		p.Ef, p.NuF, p.Gf = e, nu, g
	}
}

func WithMatrix(e, nu, g float64) Option {
	return func(p *Properties) {
		p.Em, p.NuM, p.Gm = e, nu, g
	}
}

func WithStrengths(xt, xc, yt, yc, s float64) Option {
	return func(p *Properties) {
		p.Xt, p.Xc, p.Yt, p.Yc, p.S = xt, xc, yt, yc, s
	}
}

// Default returns the carbon/epoxy reference properties.
func Default() Properties {
	return Properties{
		Ef: DefaultEf, Em: DefaultEm,
		NuF: DefaultNuF, NuM: DefaultNuM,
		Gf: DefaultGf, Gm: DefaultGm,
		Xt: DefaultXt, Xc: DefaultXc,
		Yt: DefaultYt, Yc: DefaultYc,
		S: DefaultS,
	}
}

// New applies opts on top of Default and validates the result.
func New(opts ...Option) (Properties, error) {
	p := Default()
	for _, opt := range opts {
		opt(&p)
	}
	if err := p.Validate(); err != nil {
		return Properties{}, err
	}
	return p, nil
}

// Validate checks that every modulus and strength is strictly positive and
// both Poisson ratios lie in (0, 0.5).
func (p Properties) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"E_f", p.Ef}, {"E_m", p.Em},
		{"G_f", p.Gf}, {"G_m", p.Gm},
		{"X_t", p.Xt}, {"X_c", p.Xc},
		{"Y_t", p.Yt}, {"Y_c", p.Yc},
		{"S", p.S},
	}
	for _, c := range positive {
		// negated so NaN fails too
		if !(c.value > 0) {
			return mech.Errorf("material.Validate", mech.ErrInvalidParameter, c.name, c.value)
		}
	}

	ratios := []struct {
		name  string
		value float64
	}{
		{"nu_f", p.NuF}, {"nu_m", p.NuM},
	}
	for _, r := range ratios {
		if !(r.value > 0 && r.value < 0.5) {
			return mech.Errorf("material.Validate", mech.ErrInvalidParameter, r.name, r.value)
		}
	}
	return nil
}
