package experiment

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/laminate/internal/config"
	"github.com/san-kum/laminate/internal/mech"
	"github.com/san-kum/laminate/internal/metrics"
)

func defaultExperimentConfig() Config {
	return FromConfig(config.DefaultConfig())
}

func TestRegistry_GetLaw(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name    string
		law     string
		opts    LawOptions
		wantErr bool
	}{
		{"weighted default", "weighted", LawOptions{}, false},
		{"weighted cos2", "weighted", LawOptions{Weighting: "cos2"}, false},
		{"halpin-tsai reuss", "halpin-tsai", LawOptions{Mixing: "reuss"}, false},
		{"bad weighting", "weighted", LawOptions{Weighting: "cos8"}, true},
		{"bad mixing", "halpin-tsai", LawOptions{Mixing: "hashin"}, true},
		{"unknown law", "mori-tanaka", LawOptions{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			law, err := r.GetLaw(tt.law, tt.opts)
			if tt.wantErr {
				if !errors.Is(err, mech.ErrInvalidParameter) {
					t.Errorf("expected invalid parameter, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if law.Name() != tt.law {
				t.Errorf("expected law %s, got %s", tt.law, law.Name())
			}
		})
	}
}

func TestRegistry_ListLaws(t *testing.T) {
	laws := NewRegistry().ListLaws()
	if len(laws) != 2 || laws[0] != "halpin-tsai" || laws[1] != "weighted" {
		t.Errorf("unexpected laws: %v", laws)
	}
}

func TestRun_Weighted(t *testing.T) {
	exp := New(defaultExperimentConfig(), nil, nil)

	res, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Stress) != 300 || len(res.Tangent) != 300 {
		t.Fatalf("expected 300 samples, got %d and %d", len(res.Stress), len(res.Tangent))
	}
	if len(res.Components) != 9 {
		t.Errorf("expected 9 components, got %d", len(res.Components))
	}
	if res.Weighting != "cos4" {
		t.Errorf("expected weighting cos4, got %s", res.Weighting)
	}

	// linear law: tangent equals the modulus everywhere
	for i, v := range res.Tangent {
		if math.Abs(v-res.Modulus) > 1e-6*res.Modulus {
			t.Fatalf("sample %d: expected tangent %f, got %f", i, res.Modulus, v)
		}
	}

	if res.Metrics["peak_stress"] != res.Stress.Max() {
		t.Errorf("expected peak %f, got %f", res.Stress.Max(), res.Metrics["peak_stress"])
	}
	if res.Failure == nil || len(res.Failure.Indices) != 91 {
		t.Fatal("expected a 91-angle failure envelope")
	}
	if res.Failure.Stress != res.Stress.Max() {
		t.Errorf("expected envelope at peak stress, got %f", res.Failure.Stress)
	}
}

func TestRun_HalpinTsai(t *testing.T) {
	cfg := defaultExperimentConfig()
	cfg.Law = "halpin-tsai"
	cfg.Mixing = "reuss"

	res, err := New(cfg, nil, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Components != nil {
		t.Error("expected no per-angle components for halpin-tsai")
	}
	if res.Mixing != "reuss" {
		t.Errorf("expected mixing reuss, got %s", res.Mixing)
	}
	if res.Modulus <= 0 {
		t.Errorf("expected positive modulus, got %f", res.Modulus)
	}
}

func TestRun_Params(t *testing.T) {
	cfg := defaultExperimentConfig()
	cfg.Params = map[string]float64{"vf": 0.4, "fiber_factor": 100}

	res, err := New(cfg, nil, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Vf != 0.4 || res.FiberFactor != 100 {
		t.Errorf("expected vf 0.4 and fiber factor 100, got %f and %f", res.Vf, res.FiberFactor)
	}

	cfg.Params = map[string]float64{"temperature": 20}
	_, err = New(cfg, nil, nil).Run(context.Background())
	if !errors.Is(err, ErrUnknownParameter) {
		t.Errorf("expected unknown parameter error, got %v", err)
	}
	if errors.Is(err, mech.ErrInvalidParameter) {
		t.Error("expected unknown parameter to be distinct from an invalid value")
	}
	if err != nil && !strings.Contains(err.Error(), "temperature") {
		t.Errorf("expected parameter name in error, got %v", err)
	}
}

func TestRun_Errors(t *testing.T) {
	cfg := defaultExperimentConfig()
	cfg.Vf = 1.5
	if _, err := New(cfg, nil, nil).Run(context.Background()); !errors.Is(err, mech.ErrInvalidParameter) {
		t.Errorf("expected vf error, got %v", err)
	}

	cfg = defaultExperimentConfig()
	cfg.Strain = mech.Series{0.01}
	if _, err := New(cfg, nil, nil).Run(context.Background()); !errors.Is(err, mech.ErrInsufficientData) {
		t.Errorf("expected insufficient data, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(defaultExperimentConfig(), nil, nil).Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context canceled, got %v", err)
	}
}

func TestAddMetric(t *testing.T) {
	exp := New(defaultExperimentConfig(), nil, nil)
	exp.AddMetric(metrics.NewModulusError(1))

	res, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := res.Metrics["modulus_error"]; !ok {
		t.Error("expected modulus_error metric")
	}
}

func TestSweepSurfaceMonteCarlo(t *testing.T) {
	ctx := context.Background()
	exp := New(defaultExperimentConfig(), nil, nil)

	sweep, err := exp.Sweep(ctx, config.DefaultSweep)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if len(sweep) != len(config.DefaultSweep) {
		t.Errorf("expected %d sweep points, got %d", len(config.DefaultSweep), len(sweep))
	}

	grid, err := exp.Surface(ctx, []float64{0.1, 0.2, 0.3})
	if err != nil {
		t.Fatalf("surface: %v", err)
	}
	if len(grid) != 3 {
		t.Errorf("expected 3 rows, got %d", len(grid))
	}

	a, err := exp.MonteCarlo(ctx, 20, 0.05, 42)
	if err != nil {
		t.Fatalf("monte carlo: %v", err)
	}
	b, _ := exp.MonteCarlo(ctx, 20, 0.05, 42)
	if a.Curves[19][299] != b.Curves[19][299] {
		t.Error("expected same seed to reproduce the stack")
	}

	env, err := exp.Failure(ctx, 100)
	if err != nil {
		t.Fatalf("failure: %v", err)
	}
	if math.Abs(env.Indices[0]-0.0025) > 1e-12 {
		t.Errorf("expected index 0.0025 at 0 deg, got %f", env.Indices[0])
	}
}
