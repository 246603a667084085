package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/laminate/internal/mech"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Laminate.Vf != 0.1 {
		t.Errorf("expected vf 0.1, got %f", cfg.Laminate.Vf)
	}
	if len(cfg.Laminate.Angles) != 9 || len(cfg.Laminate.Weights) != 9 {
		t.Errorf("expected 9 angles and weights, got %d and %d", len(cfg.Laminate.Angles), len(cfg.Laminate.Weights))
	}
	if cfg.Laminate.Law != "weighted" {
		t.Errorf("expected law weighted, got %s", cfg.Laminate.Law)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestDefaultConfig_Independent(t *testing.T) {
	a := DefaultConfig()
	a.Laminate.Weights[0] = 99

	b := DefaultConfig()
	if b.Laminate.Weights[0] == 99 {
		t.Error("expected defaults to be copied")
	}
}

func TestGrids(t *testing.T) {
	cfg := DefaultConfig()

	strain := cfg.StrainGrid()
	if len(strain) != 300 {
		t.Fatalf("expected 300 strain samples, got %d", len(strain))
	}
	if strain[0] != 0.001 {
		t.Errorf("expected first strain 0.001, got %f", strain[0])
	}
	if d := strain[299] - 0.3; d > 1e-12 || d < -1e-12 {
		t.Errorf("expected last strain 0.3, got %f", strain[299])
	}
	if !strain.StrictlyIncreasing() {
		t.Error("expected increasing strain grid")
	}

	if n := len(cfg.SurfaceGrid()); n != 50 {
		t.Errorf("expected 50 surface points, got %d", n)
	}
	angles := cfg.FailureAngles()
	if len(angles) != 91 || angles[0] != 0 || angles[45] != 45 {
		t.Errorf("unexpected failure angles: %v", angles)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "laminate.yaml")

	cfg := DefaultConfig()
	cfg.Laminate.Vf = 0.35
	cfg.Laminate.Law = "halpin-tsai"
	cfg.MonteCarlo.Seed = 7
	cfg.Material.Ef = 100000

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if loaded.Laminate.Vf != 0.35 {
		t.Errorf("expected vf 0.35, got %f", loaded.Laminate.Vf)
	}
	if loaded.Laminate.Law != "halpin-tsai" {
		t.Errorf("expected law halpin-tsai, got %s", loaded.Laminate.Law)
	}
	if loaded.MonteCarlo.Seed != 7 {
		t.Errorf("expected seed 7, got %d", loaded.MonteCarlo.Seed)
	}
	if loaded.Material.Ef != 100000 {
		t.Errorf("expected E_f 100000, got %f", loaded.Material.Ef)
	}
}

func TestLoadWith_KeepsBase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("laminate:\n  vf: 0.2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadWith(path, GetPreset("aramid-cross"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Laminate.Vf != 0.2 {
		t.Errorf("expected vf 0.2 from file, got %f", cfg.Laminate.Vf)
	}
	if cfg.Laminate.Law != "halpin-tsai" || len(cfg.Laminate.Angles) != 3 {
		t.Errorf("expected preset law and angles to survive, got %s and %v", cfg.Laminate.Law, cfg.Laminate.Angles)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("LAMINATE_VF", "0.25")
	t.Setenv("LAMINATE_LAW", "halpin-tsai")
	t.Setenv("LAMINATE_WEIGHTING", "cos2")
	t.Setenv("LAMINATE_MC_ITERATIONS", "500")
	t.Setenv("LAMINATE_MC_SEED", "9")
	t.Setenv("LAMINATE_DATA_DIR", "/tmp/runs")

	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Laminate.Vf != 0.25 {
		t.Errorf("expected vf 0.25, got %f", cfg.Laminate.Vf)
	}
	if cfg.Laminate.Law != "halpin-tsai" {
		t.Errorf("expected law halpin-tsai, got %s", cfg.Laminate.Law)
	}
	if cfg.Laminate.Weighting != "cos2" {
		t.Errorf("expected weighting cos2, got %s", cfg.Laminate.Weighting)
	}
	if cfg.MonteCarlo.Iterations != 500 {
		t.Errorf("expected 500 iterations, got %d", cfg.MonteCarlo.Iterations)
	}
	if cfg.MonteCarlo.Seed != 9 {
		t.Errorf("expected seed 9, got %d", cfg.MonteCarlo.Seed)
	}
	if cfg.DataDir != "/tmp/runs" {
		t.Errorf("expected data dir /tmp/runs, got %s", cfg.DataDir)
	}
	if cfg.MonteCarlo.NoiseStd != 0.05 {
		t.Errorf("expected untouched noise 0.05, got %f", cfg.MonteCarlo.NoiseStd)
	}
}

func TestApplyEnv_Invalid(t *testing.T) {
	t.Setenv("LAMINATE_VF", "lots")

	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"mismatched weights", func(c *Config) { c.Laminate.Weights = c.Laminate.Weights[:2] }, mech.ErrDimensionMismatch},
		{"one strain point", func(c *Config) { c.Strain.Points = 1 }, mech.ErrInvalidParameter},
		{"reversed strain", func(c *Config) { c.Strain.Stop = 0 }, mech.ErrInvalidParameter},
		{"one surface point", func(c *Config) { c.Surface.VfPoints = 1 }, mech.ErrInvalidParameter},
		{"zero iterations", func(c *Config) { c.MonteCarlo.Iterations = 0 }, mech.ErrInvalidParameter},
		{"negative noise", func(c *Config) { c.MonteCarlo.NoiseStd = -1 }, mech.ErrInvalidParameter},
		{"one failure angle", func(c *Config) { c.Failure.AnglePoints = 1 }, mech.ErrInvalidParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("carbon-aligned")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Laminate.Vf != 0.4 {
		t.Errorf("expected vf 0.4, got %f", cfg.Laminate.Vf)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected preset to validate, got %v", err)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != 4 {
		t.Fatalf("expected 4 presets, got %v", names)
	}
	for _, name := range names {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}
