package analysis

import (
	"github.com/san-kum/laminate/internal/composite"
	"github.com/san-kum/laminate/internal/mech"
)

// SweepPoint is the stress curve at one volume fraction.
type SweepPoint struct {
	Vf     float64     `json:"vf"`
	Stress mech.Series `json:"stress"`
}

// Sweep keeps points in input order.
type Sweep []SweepPoint

// Get returns the curve for vf.
func (s Sweep) Get(vf float64) (mech.Series, bool) {
	for _, p := range s {
		if p.Vf == vf {
			return p.Stress, true
		}
	}
	return nil, false
}

func (s Sweep) Vfs() []float64 {
	vfs := make([]float64, len(s))
	for i, p := range s {
		vfs[i] = p.Vf
	}
	return vfs
}

// VfSweep builds one model per vf and evaluates law on strain. A nil law
// means the weighted cos4 law. Duplicate vf values are rejected so each
// key maps to exactly one curve.
func VfSweep(lam Laminate, vfs []float64, strain mech.Series, law composite.Law) (Sweep, error) {
	seen := make(map[float64]bool, len(vfs))
	for _, vf := range vfs {
		if seen[vf] {
			return nil, mech.Errorf("analysis.VfSweep", mech.ErrInvalidParameter, "duplicate vf", vf)
		}
		seen[vf] = true
	}

	grid, err := evaluateGrid(lam, vfs, strain, defaultLaw(law))
	if err != nil {
		return nil, err
	}

	sweep := make(Sweep, len(vfs))
	for i, vf := range vfs {
		sweep[i] = SweepPoint{Vf: vf, Stress: grid[i]}
	}
	return sweep, nil
}

// ResponseSurface returns stress indexed [vf_index][strain_index].
func ResponseSurface(lam Laminate, vfs []float64, strain mech.Series, law composite.Law) ([]mech.Series, error) {
	return evaluateGrid(lam, vfs, strain, defaultLaw(law))
}

// evaluateGrid fills one row per vf in parallel. The first error in input
// order wins.
func evaluateGrid(lam Laminate, vfs []float64, strain mech.Series, law composite.Law) ([]mech.Series, error) {
	rows := make([]mech.Series, len(vfs))
	errs := make([]error, len(vfs))

	mech.ParallelFor(len(vfs), 4, func(start, end int) {
		for i := start; i < end; i++ {
			m, err := lam.Model(vfs[i])
			if err != nil {
				errs[i] = err
				continue
			}
			rows[i], errs[i] = law.Stress(m, strain)
		}
	})

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return rows, nil
}
