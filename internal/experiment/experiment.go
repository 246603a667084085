package experiment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/san-kum/laminate/internal/analysis"
	"github.com/san-kum/laminate/internal/composite"
	"github.com/san-kum/laminate/internal/config"
	"github.com/san-kum/laminate/internal/mech"
	"github.com/san-kum/laminate/internal/metrics"
)

// ErrUnknownParameter is returned when Params names a field that cannot
// be overridden.
var ErrUnknownParameter = errors.New("experiment: unknown parameter")

type Config struct {
	Law       string
	Weighting string
	Mixing    string
	Laminate  analysis.Laminate
	Vf        float64
	Strain    mech.Series

	// FailureStress is the applied stress for the Tsai-Hill envelope;
	// zero uses the peak of the computed curve.
	FailureStress float64
	FailureAngles []float64

	// Params overrides numeric fields by name: "vf", "fiber_factor".
	Params map[string]float64
}

// FromConfig builds an experiment config from the file configuration.
func FromConfig(c *config.Config) Config {
	return Config{
		Law:       c.Laminate.Law,
		Weighting: c.Laminate.Weighting,
		Mixing:    c.Laminate.Mixing,
		Laminate: analysis.Laminate{
			Angles:      c.Laminate.Angles,
			Weights:     c.Laminate.Weights,
			Material:    c.Material,
			FiberFactor: c.Laminate.FiberFactor,
		},
		Vf:            c.Laminate.Vf,
		Strain:        c.StrainGrid(),
		FailureAngles: c.FailureAngles(),
	}
}

// Result is one evaluated stress-strain analysis.
type Result struct {
	Law         string             `json:"law"`
	Weighting   string             `json:"weighting,omitempty"`
	Mixing      string             `json:"mixing,omitempty"`
	Vf          float64            `json:"vf"`
	FiberFactor float64            `json:"fiber_factor"`
	Angles      []float64          `json:"angles"`
	Weights     []float64          `json:"weights"`
	Strain      mech.Series        `json:"strain"`
	Stress      mech.Series        `json:"stress"`
	Tangent     mech.Series        `json:"tangent"`
	Modulus     float64            `json:"modulus"`
	Components  []mech.Series      `json:"components,omitempty"`
	Metrics     map[string]float64 `json:"metrics"`
	Failure     *analysis.Envelope `json:"failure,omitempty"`
	Elapsed     time.Duration      `json:"elapsed"`
}

type Experiment struct {
	cfg      Config
	registry *Registry
	metrics  []metrics.Metric
	logger   *slog.Logger
}

func New(cfg Config, registry *Registry, logger *slog.Logger) *Experiment {
	if registry == nil {
		registry = NewRegistry()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Experiment{
		cfg:      cfg,
		registry: registry,
		metrics:  registry.DefaultMetrics(),
		logger:   logger,
	}
}

func (e *Experiment) AddMetric(m metrics.Metric) {
	e.metrics = append(e.metrics, m)
}

func (e *Experiment) Config() Config { return e.cfg }

// resolve applies Params and builds the law and laminate.
func (e *Experiment) resolve() (composite.Law, analysis.Laminate, float64, error) {
	lam := e.cfg.Laminate
	vf := e.cfg.Vf
	for name, v := range e.cfg.Params {
		switch name {
		case "vf":
			vf = v
		case "fiber_factor":
			lam.FiberFactor = v
		default:
			return nil, lam, 0, fmt.Errorf("%w: %s", ErrUnknownParameter, name)
		}
	}

	law, err := e.registry.GetLaw(e.cfg.Law, LawOptions{Weighting: e.cfg.Weighting, Mixing: e.cfg.Mixing})
	if err != nil {
		return nil, lam, 0, err
	}
	return law, lam, vf, nil
}

func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	law, lam, vf, err := e.resolve()
	if err != nil {
		return nil, err
	}
	m, err := lam.Model(vf)
	if err != nil {
		return nil, err
	}

	stress, err := law.Stress(m, e.cfg.Strain)
	if err != nil {
		return nil, fmt.Errorf("stress: %w", err)
	}
	tangent, err := analysis.TangentModulus(e.cfg.Strain, stress)
	if err != nil {
		return nil, fmt.Errorf("tangent: %w", err)
	}
	modulus, err := law.Modulus(m)
	if err != nil {
		return nil, fmt.Errorf("modulus: %w", err)
	}

	res := &Result{
		Law:         law.Name(),
		Vf:          vf,
		FiberFactor: m.FiberFactor(),
		Angles:      m.Angles(),
		Weights:     m.Weights(),
		Strain:      e.cfg.Strain.Clone(),
		Stress:      stress,
		Tangent:     tangent,
		Modulus:     modulus,
	}

	switch l := law.(type) {
	case *composite.WeightedLaw:
		res.Weighting = string(l.Weighting)
		res.Components, err = m.StressComponents(e.cfg.Strain, l.Weighting)
		if err != nil {
			return nil, fmt.Errorf("components: %w", err)
		}
	case *composite.HalpinTsaiLaw:
		res.Mixing = string(l.Mixing)
	}

	if err := metrics.ObserveCurve(e.metrics, e.cfg.Strain, stress); err != nil {
		return nil, err
	}
	res.Metrics = metrics.Values(e.metrics)

	if len(e.cfg.FailureAngles) > 0 {
		level := e.cfg.FailureStress
		if level == 0 {
			level = stress.Max()
		}
		env := analysis.FailureEnvelope(m, level, e.cfg.FailureAngles)
		res.Failure = &env
	}

	res.Elapsed = time.Since(start)
	e.logger.Debug("experiment complete",
		"law", res.Law,
		"vf", vf,
		"samples", len(stress),
		"modulus", modulus,
		"elapsed", res.Elapsed,
	)
	return res, nil
}

func (e *Experiment) Sweep(ctx context.Context, vfs []float64) (analysis.Sweep, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	law, lam, _, err := e.resolve()
	if err != nil {
		return nil, err
	}
	sweep, err := analysis.VfSweep(lam, vfs, e.cfg.Strain, law)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("sweep complete", "law", law.Name(), "points", len(sweep))
	return sweep, nil
}

func (e *Experiment) Surface(ctx context.Context, vfs []float64) ([]mech.Series, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	law, lam, _, err := e.resolve()
	if err != nil {
		return nil, err
	}
	grid, err := analysis.ResponseSurface(lam, vfs, e.cfg.Strain, law)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("surface complete", "law", law.Name(), "rows", len(grid), "cols", len(e.cfg.Strain))
	return grid, nil
}

func (e *Experiment) MonteCarlo(ctx context.Context, iterations int, noiseStd float64, seed int64) (*analysis.MonteCarloResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	law, lam, vf, err := e.resolve()
	if err != nil {
		return nil, err
	}
	res, err := analysis.MonteCarlo(analysis.MonteCarloConfig{
		Laminate:   lam,
		Vf:         vf,
		Strain:     e.cfg.Strain,
		Iterations: iterations,
		NoiseStd:   noiseStd,
		Law:        law,
	}, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, err
	}
	e.logger.Debug("monte carlo complete", "law", law.Name(), "iterations", iterations, "seed", seed)
	return res, nil
}

// Failure evaluates the Tsai-Hill envelope at a fixed applied stress.
func (e *Experiment) Failure(ctx context.Context, stress float64) (analysis.Envelope, error) {
	if err := ctx.Err(); err != nil {
		return analysis.Envelope{}, err
	}
	_, lam, vf, err := e.resolve()
	if err != nil {
		return analysis.Envelope{}, err
	}
	m, err := lam.Model(vf)
	if err != nil {
		return analysis.Envelope{}, err
	}
	return analysis.FailureEnvelope(m, stress, e.cfg.FailureAngles), nil
}
