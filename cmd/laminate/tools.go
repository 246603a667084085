package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/laminate/internal/automation"
	"github.com/san-kum/laminate/internal/config"
	"github.com/san-kum/laminate/internal/experiment"
	"github.com/san-kum/laminate/internal/material"
	"github.com/san-kum/laminate/internal/metrics"
	"github.com/san-kum/laminate/internal/optim"
	"github.com/san-kum/laminate/internal/viz"
)

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tLAW\tVF\tANGLES\tEF (MPa)")
	for _, name := range config.ListPresets() {
		c := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%d\t%.0f\n", name, c.Laminate.Law, c.Laminate.Vf, len(c.Laminate.Angles), c.Material.Ef)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MATERIAL\tEF\tEM\tXT\tYT\tS")
	for _, name := range material.Presets() {
		p, _ := material.Preset(name)
		fmt.Fprintf(w, "%s\t%.0f\t%.0f\t%.0f\t%.0f\t%.0f\n", name, p.Ef, p.Em, p.Xt, p.Yt, p.S)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	runner := automation.NewRunner(cfg, experiment.NewRegistry(), st, log)
	results, err := runner.RunScenario(ctx, sc)
	if err != nil {
		return err
	}

	fmt.Printf("scenario %s\n\n", sc.Name)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tKIND\tSTATUS\tDETAIL")
	for _, r := range results {
		status, detail := "ok", stepDetail(r)
		if r.Err != nil {
			status, detail = "failed", r.Err.Error()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Name, r.Kind, status, detail)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if n := automation.Failed(results); n > 0 {
		return fmt.Errorf("%d of %d steps failed", n, len(results))
	}
	return nil
}

func stepDetail(r automation.StepResult) string {
	switch {
	case r.Run != nil:
		if r.RunID != "" {
			return fmt.Sprintf("modulus %.1f MPa, saved %s", r.Run.Modulus, r.RunID)
		}
		return fmt.Sprintf("modulus %.1f MPa", r.Run.Modulus)
	case r.Sweep != nil:
		return fmt.Sprintf("%d volume fractions", len(r.Sweep))
	case r.Surface != nil:
		return fmt.Sprintf("%d×%d grid", len(r.Surface), len(r.Surface[0]))
	case r.Band != nil:
		last := len(r.Band.Mean) - 1
		return fmt.Sprintf("%d trials, final mean %.2f ± %.2f", len(r.MonteCarlo.Curves), r.Band.Mean[last], r.Band.Std[last])
	case r.Failure != nil:
		return fmt.Sprintf("%d angles, fails=%t", len(r.Failure.Angles), r.Failure.Fails())
	}
	return ""
}

func newOptimizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "grid search vf and fiber factor for a target secant modulus",
		RunE:  runOptimize,
	}
	cmd.Flags().StringVar(&law, "law", "weighted", "stress law (weighted, halpin-tsai)")
	cmd.Flags().Float64Var(&targetModulus, "target-modulus", 0, "target secant modulus (MPa)")
	cmd.Flags().Float64SliceVar(&vfGrid, "vf-grid", []float64{0.05, 0.1, 0.2, 0.3, 0.4, 0.5}, "volume fractions to try")
	cmd.Flags().Float64SliceVar(&ffGrid, "ff-grid", []float64{400, 525, 650}, "fiber factors to try")
	_ = cmd.MarkFlagRequired("target-modulus")
	return cmd
}

func runOptimize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	base := experiment.FromConfig(cfg)
	base.FailureAngles = nil
	registry := experiment.NewRegistry()

	build := func(params map[string]float64) (*experiment.Experiment, error) {
		c := base
		c.Params = params
		exp := experiment.New(c, registry, log)
		exp.AddMetric(metrics.NewModulusError(targetModulus))
		return exp, nil
	}

	gs := optim.NewGridSearch([]string{"vf", "fiber_factor"}, [][]float64{vfGrid, ffGrid})
	best, score, err := gs.Search(cmd.Context(), build, "modulus_error")
	if errors.Is(err, optim.ErrNoCandidate) {
		return fmt.Errorf("no valid grid point: %w", err)
	}
	if err != nil {
		return err
	}

	evaluated, skipped := gs.Stats()
	log.Info("search complete", "evaluated", evaluated, "skipped", skipped)

	fmt.Printf("target modulus  %.1f MPa\n", targetModulus)
	fmt.Printf("best vf         %.3f\n", best["vf"])
	fmt.Printf("best fiber fac. %.1f\n", best["fiber_factor"])
	fmt.Printf("relative error  %.4f\n", score)
	return nil
}

func runExplore(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	p := tea.NewProgram(viz.NewExplorer(experiment.FromConfig(cfg), experiment.NewRegistry()), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
