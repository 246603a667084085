package analysis

import (
	"math"
	"math/rand"

	"github.com/san-kum/laminate/internal/composite"
	"github.com/san-kum/laminate/internal/mech"
)

// DefaultNoiseStd is the default multiplicative weight noise.
const DefaultNoiseStd = 0.05

// MonteCarloConfig defines an uncertainty study over orientation weights.
type MonteCarloConfig struct {
	Laminate   Laminate
	Vf         float64
	Strain     mech.Series
	Iterations int
	NoiseStd   float64
	Law        composite.Law
}

// MonteCarloResult holds one stress curve and one perturbed weight vector
// per trial.
type MonteCarloResult struct {
	Curves  []mech.Series `json:"curves"`
	Weights [][]float64   `json:"weights"`
}

// Perturb draws w_i * (1 + N(0, noiseStd)), floors at zero and rescales to
// the base sum. Rescaling is skipped when every weight floored to zero.
func Perturb(base []float64, noiseStd float64, rng *rand.Rand) []float64 {
	target := mech.Series(base).Sum()

	out := make([]float64, len(base))
	for i, w := range base {
		noise := rng.NormFloat64() * noiseStd
		out[i] = math.Max(w*(1+noise), 0)
	}

	current := mech.Series(out).Sum()
	if current != 0 {
		scale := target / current
		for i := range out {
			out[i] *= scale
		}
	}
	return out
}

// MonteCarlo runs cfg.Iterations independent trials. Noise is drawn
// sequentially from rng, so a seeded source gives a reproducible stack;
// the curves themselves are evaluated in parallel.
func MonteCarlo(cfg MonteCarloConfig, rng *rand.Rand) (*MonteCarloResult, error) {
	if rng == nil {
		return nil, mech.Errorf("analysis.MonteCarlo", mech.ErrInvalidParameter, "rng", nil)
	}
	if cfg.Iterations <= 0 {
		return nil, mech.Errorf("analysis.MonteCarlo", mech.ErrInvalidParameter, "iterations", cfg.Iterations)
	}
	if !(cfg.NoiseStd >= 0) {
		return nil, mech.Errorf("analysis.MonteCarlo", mech.ErrInvalidParameter, "noise_std", cfg.NoiseStd)
	}
	// fail fast on the unperturbed inputs before drawing anything
	if _, err := cfg.Laminate.Model(cfg.Vf); err != nil {
		return nil, err
	}

	law := defaultLaw(cfg.Law)
	result := &MonteCarloResult{
		Curves:  make([]mech.Series, cfg.Iterations),
		Weights: make([][]float64, cfg.Iterations),
	}
	for trial := range result.Weights {
		result.Weights[trial] = Perturb(cfg.Laminate.Weights, cfg.NoiseStd, rng)
	}

	errs := make([]error, cfg.Iterations)
	mech.ParallelFor(cfg.Iterations, 16, func(start, end int) {
		for trial := start; trial < end; trial++ {
			lam := cfg.Laminate
			lam.Weights = result.Weights[trial]
			m, err := lam.Model(cfg.Vf)
			if err != nil {
				errs[trial] = err
				continue
			}
			result.Curves[trial], errs[trial] = law.Stress(m, cfg.Strain)
		}
	})

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}
