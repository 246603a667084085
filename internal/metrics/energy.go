package metrics

// StrainEnergy integrates stress over strain with the trapezoid rule,
// giving energy per unit volume.
type StrainEnergy struct {
	name       string
	total      float64
	lastStrain float64
	lastStress float64
	samples    int
}

func NewStrainEnergy() *StrainEnergy {
	return &StrainEnergy{name: "strain_energy"}
}

func (e *StrainEnergy) Name() string { return e.name }

func (e *StrainEnergy) Observe(strain, stress float64) {
	if e.samples > 0 {
		e.total += 0.5 * (stress + e.lastStress) * (strain - e.lastStrain)
	}
	e.lastStrain = strain
	e.lastStress = stress
	e.samples++
}

func (e *StrainEnergy) Value() float64 {
	return e.total
}

func (e *StrainEnergy) Reset() {
	e.total = 0
	e.lastStrain = 0
	e.lastStress = 0
	e.samples = 0
}
