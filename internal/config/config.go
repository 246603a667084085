package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/cpmech/gosl/utl"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/laminate/internal/composite"
	"github.com/san-kum/laminate/internal/material"
	"github.com/san-kum/laminate/internal/mech"
)

const (
	DefaultStrainStart  = 0.001
	DefaultStrainStop   = 0.3
	DefaultStrainPoints = 300
	DefaultSurfaceStart = 0.01
	DefaultSurfaceStop  = 0.6
	DefaultSurfacePts   = 50
	DefaultIterations   = 100
	DefaultAnglePoints  = 91
	DefaultDataDir      = ".laminate"

	EnvPrefix = "LAMINATE_"
)

var (
	DefaultAngles  = []float64{0, 10, 20, 30, 40, 50, 60, 70, 80}
	DefaultWeights = []float64{0.0693, 0.1360, 0.1360, 0.1226, 0.1146, 0.1054, 0.0974, 0.0920, 0.0880}
	DefaultSweep   = []float64{0.05, 0.1, 0.2, 0.3, 0.4, 0.5}
)

type Config struct {
	DataDir    string              `yaml:"data_dir" env:"DATA_DIR"`
	Material   material.Properties `yaml:"material"`
	Laminate   LaminateConfig      `yaml:"laminate"`
	Strain     StrainConfig        `yaml:"strain"`
	Sweep      SweepConfig         `yaml:"sweep"`
	Surface    SurfaceConfig       `yaml:"surface"`
	MonteCarlo MonteCarloConfig    `yaml:"monte_carlo" envPrefix:"MC_"`
	Failure    FailureConfig       `yaml:"failure"`
}

type LaminateConfig struct {
	Angles      []float64 `yaml:"angles"`
	Weights     []float64 `yaml:"weights"`
	Vf          float64   `yaml:"vf" env:"VF"`
	FiberFactor float64   `yaml:"fiber_factor"`
	Law         string    `yaml:"law" env:"LAW"`
	Weighting   string    `yaml:"weighting" env:"WEIGHTING"`
	Mixing      string    `yaml:"mixing"`
}

type StrainConfig struct {
	Start  float64 `yaml:"start"`
	Stop   float64 `yaml:"stop"`
	Points int     `yaml:"points"`
}

type SweepConfig struct {
	Vfs []float64 `yaml:"vfs"`
}

type SurfaceConfig struct {
	VfStart  float64 `yaml:"vf_start"`
	VfStop   float64 `yaml:"vf_stop"`
	VfPoints int     `yaml:"vf_points"`
}

type MonteCarloConfig struct {
	Iterations int     `yaml:"iterations" env:"ITERATIONS"`
	NoiseStd   float64 `yaml:"noise_std"`
	Seed       int64   `yaml:"seed" env:"SEED"`
}

type FailureConfig struct {
	AnglePoints int `yaml:"angle_points"`
}

func DefaultConfig() *Config {
	return &Config{
		DataDir:  DefaultDataDir,
		Material: material.Default(),
		Laminate: LaminateConfig{
			Angles:      append([]float64(nil), DefaultAngles...),
			Weights:     append([]float64(nil), DefaultWeights...),
			Vf:          composite.DefaultVf,
			FiberFactor: composite.DefaultFiberFactor,
			Law:         composite.LawWeighted,
			Weighting:   string(composite.Cos4),
			Mixing:      string(composite.Voigt),
		},
		Strain: StrainConfig{
			Start:  DefaultStrainStart,
			Stop:   DefaultStrainStop,
			Points: DefaultStrainPoints,
		},
		Sweep: SweepConfig{Vfs: append([]float64(nil), DefaultSweep...)},
		Surface: SurfaceConfig{
			VfStart:  DefaultSurfaceStart,
			VfStop:   DefaultSurfaceStop,
			VfPoints: DefaultSurfacePts,
		},
		MonteCarlo: MonteCarloConfig{
			Iterations: DefaultIterations,
			NoiseStd:   0.05,
			Seed:       42,
		},
		Failure: FailureConfig{AnglePoints: DefaultAnglePoints},
	}
}

func Load(path string) (*Config, error) {
	return LoadWith(path, DefaultConfig())
}

// LoadWith decodes the file over cfg, so keys absent from the file keep
// their values in cfg.
func LoadWith(path string, cfg *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overlays LAMINATE_* environment variables. Unset variables keep
// the current values.
func (c *Config) ApplyEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks the grids and counts. Physical parameters are checked
// when the model is built.
func (c *Config) Validate() error {
	if len(c.Laminate.Angles) != len(c.Laminate.Weights) {
		return mech.Errorf("config.Validate", mech.ErrDimensionMismatch,
			"laminate.angles/weights", [2]int{len(c.Laminate.Angles), len(c.Laminate.Weights)})
	}
	if c.Strain.Points < 2 {
		return mech.Errorf("config.Validate", mech.ErrInvalidParameter, "strain.points", c.Strain.Points)
	}
	if !(c.Strain.Stop > c.Strain.Start) {
		return mech.Errorf("config.Validate", mech.ErrInvalidParameter, "strain.stop", c.Strain.Stop)
	}
	if c.Surface.VfPoints < 2 {
		return mech.Errorf("config.Validate", mech.ErrInvalidParameter, "surface.vf_points", c.Surface.VfPoints)
	}
	if !(c.Surface.VfStop > c.Surface.VfStart) {
		return mech.Errorf("config.Validate", mech.ErrInvalidParameter, "surface.vf_stop", c.Surface.VfStop)
	}
	if c.MonteCarlo.Iterations <= 0 {
		return mech.Errorf("config.Validate", mech.ErrInvalidParameter, "monte_carlo.iterations", c.MonteCarlo.Iterations)
	}
	if c.MonteCarlo.NoiseStd < 0 {
		return mech.Errorf("config.Validate", mech.ErrInvalidParameter, "monte_carlo.noise_std", c.MonteCarlo.NoiseStd)
	}
	if c.Failure.AnglePoints < 2 {
		return mech.Errorf("config.Validate", mech.ErrInvalidParameter, "failure.angle_points", c.Failure.AnglePoints)
	}
	return nil
}

func (c *Config) StrainGrid() mech.Series {
	return utl.LinSpace(c.Strain.Start, c.Strain.Stop, c.Strain.Points)
}

func (c *Config) SurfaceGrid() []float64 {
	return utl.LinSpace(c.Surface.VfStart, c.Surface.VfStop, c.Surface.VfPoints)
}

// FailureAngles spans [0, 90] degrees.
func (c *Config) FailureAngles() []float64 {
	return utl.LinSpace(0, 90, c.Failure.AnglePoints)
}
