// Package analysis provides procedures built on the composite model.
//
// Every procedure is stateless and constructs fresh [composite.Model]
// instances per parameter point:
//
//   - [TangentModulus]: pointwise dσ/dε of a sampled curve
//   - [VfSweep]: one stress curve per volume fraction
//   - [MonteCarlo]: stress curves under multiplicative weight noise
//   - [ResponseSurface]: stress over the (vf, strain) grid
//   - [FailureEnvelope]: Tsai-Hill index over a range of ply angles
//   - [Summarize]: mean and ±2σ band over a stack of curves
//
// # Uncertainty
//
// Monte Carlo draws come from the caller's *rand.Rand; seed it for
// reproducible stacks:
//
//	rng := rand.New(rand.NewSource(42))
//	res, err := analysis.MonteCarlo(cfg, rng)
//	band, err := analysis.Summarize(res.Curves)
package analysis
