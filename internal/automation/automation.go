package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/laminate/internal/analysis"
	"github.com/san-kum/laminate/internal/config"
	"github.com/san-kum/laminate/internal/experiment"
	"github.com/san-kum/laminate/internal/mech"
	"github.com/san-kum/laminate/internal/storage"
)

// Step kinds.
const (
	KindRun        = "run"
	KindSweep      = "sweep"
	KindMonteCarlo = "montecarlo"
	KindSurface    = "surface"
	KindFailure    = "failure"
)

// Scenario defines a scripted sequence of analyses
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is a single analysis. Unset fields inherit the base config.
type Step struct {
	Name       string    `yaml:"name"`
	Kind       string    `yaml:"kind"`
	Law        string    `yaml:"law"`
	Weighting  string    `yaml:"weighting"`
	Mixing     string    `yaml:"mixing"`
	Vf         *float64  `yaml:"vf"`
	Vfs        []float64 `yaml:"vfs"`
	Iterations int       `yaml:"iterations"`
	NoiseStd   *float64  `yaml:"noise_std"`
	Seed       *int64    `yaml:"seed"`
	Stress     float64   `yaml:"stress"`
	Save       bool      `yaml:"save"`
}

// StepResult holds whichever output the step kind produces. Err is set
// when the step failed.
type StepResult struct {
	Name       string
	Kind       string
	Run        *experiment.Result
	RunID      string
	Sweep      analysis.Sweep
	Surface    []mech.Series
	MonteCarlo *analysis.MonteCarloResult
	Band       *analysis.Band
	Failure    *analysis.Envelope
	Err        error
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	return &scenario, nil
}

func (s *Scenario) Validate() error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("scenario %q has no steps", s.Name)
	}
	for i, step := range s.Steps {
		switch step.Kind {
		case KindRun, KindSweep, KindMonteCarlo, KindSurface, KindFailure:
		default:
			return fmt.Errorf("step %d: unknown kind %q", i+1, step.Kind)
		}
	}
	return nil
}

// Runner executes scenarios against a base configuration.
type Runner struct {
	base     *config.Config
	registry *experiment.Registry
	store    *storage.Store
	logger   *slog.Logger
}

// NewRunner builds a runner. store may be nil, in which case save flags
// are ignored.
func NewRunner(base *config.Config, registry *experiment.Registry, store *storage.Store, logger *slog.Logger) *Runner {
	if registry == nil {
		registry = experiment.NewRegistry()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{base: base, registry: registry, store: store, logger: logger}
}

// RunScenario executes all steps in order. A failing step is recorded in
// its result and the next step still runs; only cancellation stops early.
func (r *Runner) RunScenario(ctx context.Context, scenario *Scenario) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		name := step.Name
		if name == "" {
			name = fmt.Sprintf("%s-%d", step.Kind, i+1)
		}
		r.logger.Info("running step", "step", i+1, "of", len(scenario.Steps), "name", name, "kind", step.Kind)

		res := r.runStep(ctx, step)
		res.Name = name
		res.Kind = step.Kind
		if res.Err != nil {
			r.logger.Warn("step failed", "step", i+1, "name", name, "err", res.Err)
		}
		results = append(results, res)
	}

	return results, nil
}

func (r *Runner) stepConfig(step Step) (*config.Config, error) {
	cfg := *r.base

	if step.Law != "" {
		cfg.Laminate.Law = step.Law
	}
	if step.Weighting != "" {
		cfg.Laminate.Weighting = step.Weighting
	}
	if step.Mixing != "" {
		cfg.Laminate.Mixing = step.Mixing
	}
	if step.Vf != nil {
		cfg.Laminate.Vf = *step.Vf
	}
	if step.Iterations != 0 {
		cfg.MonteCarlo.Iterations = step.Iterations
	}
	if step.NoiseStd != nil {
		cfg.MonteCarlo.NoiseStd = *step.NoiseStd
	}
	if step.Seed != nil {
		cfg.MonteCarlo.Seed = *step.Seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *Runner) runStep(ctx context.Context, step Step) StepResult {
	var res StepResult

	cfg, err := r.stepConfig(step)
	if err != nil {
		res.Err = err
		return res
	}
	expCfg := experiment.FromConfig(cfg)
	expCfg.FailureStress = step.Stress
	exp := experiment.New(expCfg, r.registry, r.logger)

	switch step.Kind {
	case KindRun:
		res.Run, res.Err = exp.Run(ctx)
		if res.Err == nil && step.Save && r.store != nil {
			res.RunID, res.Err = r.store.Save(res.Run)
		}

	case KindSweep:
		vfs := step.Vfs
		if len(vfs) == 0 {
			vfs = cfg.Sweep.Vfs
		}
		res.Sweep, res.Err = exp.Sweep(ctx, vfs)

	case KindSurface:
		vfs := step.Vfs
		if len(vfs) == 0 {
			vfs = cfg.SurfaceGrid()
		}
		res.Surface, res.Err = exp.Surface(ctx, vfs)

	case KindMonteCarlo:
		mc, err := exp.MonteCarlo(ctx, cfg.MonteCarlo.Iterations, cfg.MonteCarlo.NoiseStd, cfg.MonteCarlo.Seed)
		if err != nil {
			res.Err = err
			break
		}
		band, err := analysis.Summarize(mc.Curves)
		if err != nil {
			res.Err = err
			break
		}
		res.MonteCarlo, res.Band = mc, &band

	case KindFailure:
		if step.Stress <= 0 {
			res.Err = mech.Errorf("automation.failure", mech.ErrInvalidParameter, "stress", step.Stress)
			break
		}
		env, err := exp.Failure(ctx, step.Stress)
		if err != nil {
			res.Err = err
			break
		}
		res.Failure = &env

	default:
		res.Err = fmt.Errorf("unknown step kind: %s", step.Kind)
	}

	return res
}

// Failed counts results with an error.
func Failed(results []StepResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
