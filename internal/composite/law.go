package composite

import "github.com/san-kum/laminate/internal/mech"

// Law is a named stress law evaluated against a Model.
type Law interface {
	Name() string
	Modulus(m *Model) (float64, error)
	Stress(m *Model, strain mech.Series) (mech.Series, error)
}

// Law names.
const (
	LawWeighted   = "weighted"
	LawHalpinTsai = "halpin-tsai"
)

// WeightedLaw is the empirical weighted rule of mixtures.
type WeightedLaw struct {
	Weighting Weighting
}

func NewWeightedLaw(w Weighting) *WeightedLaw {
	return &WeightedLaw{Weighting: w}
}

func (l *WeightedLaw) Name() string { return LawWeighted }

func (l *WeightedLaw) Modulus(m *Model) (float64, error) {
	return m.WeightedModulus(l.Weighting)
}

func (l *WeightedLaw) Stress(m *Model, strain mech.Series) (mech.Series, error) {
	return m.StressWeighted(strain, l.Weighting)
}

// HalpinTsaiLaw is the homogenized Halpin-Tsai law.
type HalpinTsaiLaw struct {
	Mixing Mixing
}

func NewHalpinTsaiLaw(mx Mixing) *HalpinTsaiLaw {
	return &HalpinTsaiLaw{Mixing: mx}
}

func (l *HalpinTsaiLaw) Name() string { return LawHalpinTsai }

func (l *HalpinTsaiLaw) Modulus(m *Model) (float64, error) {
	return m.HalpinTsaiModulusWith(l.Mixing)
}

func (l *HalpinTsaiLaw) Stress(m *Model, strain mech.Series) (mech.Series, error) {
	return m.StressHalpinTsaiWith(strain, l.Mixing)
}
