package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/laminate/internal/config"
	"github.com/san-kum/laminate/internal/logger"
	"github.com/san-kum/laminate/internal/storage"
)

var (
	dataDir    string
	configFile string
	preset     string
	debug      bool

	// laminate overrides
	vf          float64
	law         string
	weighting   string
	mixing      string
	fiberFactor float64

	// monte carlo
	iterations int
	noiseStd   float64
	seed       int64

	// output
	svgPath    string
	outPath    string
	noSave     bool
	components bool

	// sweep, surface, failure
	vfs           []float64
	vfPoints      int
	failureStress float64
	angleStep     int

	// optimize
	targetModulus float64
	vfGrid        []float64
	ffGrid        []float64
)

var log = slog.Default()

func main() {
	rootCmd := &cobra.Command{
		Use:           "laminate",
		Short:         "short-fiber composite stress-strain lab",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log = logger.Setup(logger.Config{Debug: debug})
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug logging")

	rootCmd.AddCommand(
		newRunCmd(),
		newSweepCmd(),
		newMonteCarloCmd(),
		newSurfaceCmd(),
		newFailureCmd(),
		&cobra.Command{
			Use:   "list",
			Short: "list runs",
			RunE:  listRuns,
		},
		&cobra.Command{
			Use:   "plot [run_id]",
			Short: "plot stored run",
			Args:  cobra.ExactArgs(1),
			RunE:  plotRun,
		},
		newExportCSVCmd(),
		newExportJSONCmd(),
		newExportSVGCmd(),
		&cobra.Command{
			Use:   "presets",
			Short: "list configuration and material presets",
			RunE:  listPresets,
		},
		&cobra.Command{
			Use:   "init-config [path]",
			Short: "write the resolved configuration as yaml",
			Args:  cobra.ExactArgs(1),
			RunE:  initConfig,
		},
		&cobra.Command{
			Use:   "scenario [file]",
			Short: "run a yaml scenario",
			Args:  cobra.ExactArgs(1),
			RunE:  runScenario,
		},
		newOptimizeCmd(),
		&cobra.Command{
			Use:   "explore",
			Short: "interactive laminate explorer",
			RunE:  runExplore,
		},
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addLaminateFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&vf, "vf", 0.1, "fiber volume fraction")
	cmd.Flags().StringVar(&law, "law", "weighted", "stress law (weighted, halpin-tsai)")
	cmd.Flags().StringVar(&weighting, "weighting", "cos4", "orientation weighting (cos4, cos2)")
	cmd.Flags().StringVar(&mixing, "mixing", "voigt", "halpin-tsai mixing (voigt, reuss)")
	cmd.Flags().Float64Var(&fiberFactor, "fiber-factor", 525, "weighted law fiber factor (MPa)")
}

func addMonteCarloFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&iterations, "iterations", config.DefaultIterations, "monte carlo trials")
	cmd.Flags().Float64Var(&noiseStd, "noise", 0.05, "multiplicative weight noise std")
	cmd.Flags().Int64Var(&seed, "seed", 42, "random seed")
}

// loadConfig resolves defaults, preset, file, environment and explicitly
// set flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		var err error
		cfg, err = config.LoadWith(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("vf") {
		cfg.Laminate.Vf = vf
	}
	if flags.Changed("law") {
		cfg.Laminate.Law = law
	}
	if flags.Changed("weighting") {
		cfg.Laminate.Weighting = weighting
	}
	if flags.Changed("mixing") {
		cfg.Laminate.Mixing = mixing
	}
	if flags.Changed("fiber-factor") {
		cfg.Laminate.FiberFactor = fiberFactor
	}
	if flags.Changed("iterations") {
		cfg.MonteCarlo.Iterations = iterations
	}
	if flags.Changed("noise") {
		cfg.MonteCarlo.NoiseStd = noiseStd
	}
	if flags.Changed("seed") {
		cfg.MonteCarlo.Seed = seed
	}
	if flags.Changed("vfs") {
		cfg.Sweep.Vfs = vfs
	}
	if flags.Changed("vf-points") {
		cfg.Surface.VfPoints = vfPoints
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Debug("config resolved", "preset", preset, "file", configFile, "law", cfg.Laminate.Law, "vf", cfg.Laminate.Vf)
	return cfg, nil
}

func openStore(cfg *config.Config) (*storage.Store, error) {
	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return nil, err
	}
	return st, nil
}

func writeFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return err
	}
	log.Info("wrote file", "path", path, "bytes", len(content))
	return nil
}
