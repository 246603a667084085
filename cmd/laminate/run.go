package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/laminate/internal/analysis"
	"github.com/san-kum/laminate/internal/config"
	"github.com/san-kum/laminate/internal/experiment"
	"github.com/san-kum/laminate/internal/export"
	"github.com/san-kum/laminate/internal/mech"
	"github.com/san-kum/laminate/internal/viz"
)

const (
	svgWidth  = 900
	svgHeight = 500
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "evaluate one stress-strain curve",
		RunE:  runSingle,
	}
	addLaminateFlags(cmd)
	cmd.Flags().BoolVar(&components, "components", false, "plot per-angle components (weighted law)")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	cmd.Flags().StringVar(&svgPath, "svg", "", "write the curve as svg")
	return cmd
}

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "compare curves across fiber volume fractions",
		RunE:  runSweep,
	}
	addLaminateFlags(cmd)
	cmd.Flags().Float64SliceVar(&vfs, "vfs", nil, "volume fractions to evaluate")
	cmd.Flags().StringVar(&svgPath, "svg", "", "write the curves as svg")
	return cmd
}

func newMonteCarloCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "propagate orientation weight noise",
		RunE:  runMonteCarlo,
	}
	addLaminateFlags(cmd)
	addMonteCarloFlags(cmd)
	cmd.Flags().StringVar(&svgPath, "svg", "", "write mean and band as svg")
	return cmd
}

func newSurfaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "surface",
		Short: "stress over a (vf, strain) grid",
		RunE:  runSurface,
	}
	addLaminateFlags(cmd)
	cmd.Flags().IntVar(&vfPoints, "vf-points", config.DefaultSurfacePts, "volume fraction samples")
	cmd.Flags().StringVar(&svgPath, "svg", "", "write the heatmap as svg")
	return cmd
}

func newFailureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "failure",
		Short: "Tsai-Hill index over loading angle",
		RunE:  runFailure,
	}
	addLaminateFlags(cmd)
	cmd.Flags().Float64Var(&failureStress, "stress", 0, "applied stress (MPa), 0 uses the curve peak")
	cmd.Flags().IntVar(&angleStep, "step", 10, "print every n-th angle")
	cmd.Flags().StringVar(&svgPath, "svg", "", "write the envelope as svg")
	return cmd
}

func newExperiment(cmd *cobra.Command) (*config.Config, *experiment.Experiment, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	return cfg, experiment.New(experiment.FromConfig(cfg), nil, log), nil
}

func runSingle(cmd *cobra.Command, args []string) error {
	cfg, exp, err := newExperiment(cmd)
	if err != nil {
		return err
	}

	res, err := exp.Run(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println(viz.Header("LAMINATE RUN", viz.DefaultPlotWidth))
	if err := viz.WriteRunSummary(os.Stdout, res); err != nil {
		return err
	}

	curves := []mech.Series{res.Stress}
	legend := []string{res.Law}
	if components && len(res.Components) > 0 {
		for i, c := range res.Components {
			curves = append(curves, c)
			legend = append(legend, fmt.Sprintf("%g°", res.Angles[i]))
		}
	}
	fmt.Println()
	fmt.Println(viz.RenderCurves(curves, legend, "stress (MPa) vs strain", viz.DefaultPlotHeight, viz.DefaultPlotWidth))

	if svgPath != "" {
		svg := export.CurvesToSVG(res.Strain, curves, legend, svgWidth, svgHeight, "stress-strain")
		if err := writeFile(svgPath, svg); err != nil {
			return err
		}
	}

	if noSave {
		return nil
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	runID, err := st.Save(res)
	if err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}
	fmt.Printf("\nsaved: %s\n", runID)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, exp, err := newExperiment(cmd)
	if err != nil {
		return err
	}

	sweep, err := exp.Sweep(cmd.Context(), cfg.Sweep.Vfs)
	if err != nil {
		return err
	}

	strain := cfg.StrainGrid()
	if err := viz.WriteSweepTable(os.Stdout, sweep, strain); err != nil {
		return err
	}

	curves := make([]mech.Series, len(sweep))
	legend := make([]string, len(sweep))
	for i, p := range sweep {
		curves[i] = p.Stress
		legend[i] = fmt.Sprintf("vf=%.2f", p.Vf)
	}
	fmt.Println()
	fmt.Println(viz.RenderCurves(curves, legend, "stress (MPa) vs strain", viz.DefaultPlotHeight, viz.DefaultPlotWidth))

	if svgPath != "" {
		return writeFile(svgPath, export.CurvesToSVG(strain, curves, legend, svgWidth, svgHeight, "volume fraction sweep"))
	}
	return nil
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, exp, err := newExperiment(cmd)
	if err != nil {
		return err
	}

	log.Info("monte carlo started", "iterations", cfg.MonteCarlo.Iterations, "noise", cfg.MonteCarlo.NoiseStd, "seed", cfg.MonteCarlo.Seed)
	mc, err := exp.MonteCarlo(cmd.Context(), cfg.MonteCarlo.Iterations, cfg.MonteCarlo.NoiseStd, cfg.MonteCarlo.Seed)
	if err != nil {
		return err
	}
	band, err := analysis.Summarize(mc.Curves)
	if err != nil {
		return err
	}
	log.Info("monte carlo complete", "curves", len(mc.Curves))

	strain := cfg.StrainGrid()
	if err := viz.WriteBandSummary(os.Stdout, band, strain, 6); err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(viz.RenderBand(band, "mean ± 2σ stress (MPa)", viz.DefaultPlotHeight, viz.DefaultPlotWidth))

	if svgPath == "" {
		return nil
	}
	chart := export.Chart{
		Title:  fmt.Sprintf("monte carlo (%d trials, σ=%.3f)", cfg.MonteCarlo.Iterations, cfg.MonteCarlo.NoiseStd),
		XLabel: "strain",
		YLabel: "stress (MPa)",
		Width:  svgWidth,
		Height: svgHeight,
		Series: []export.Series{{Name: "mean", X: strain, Y: band.Mean}},
		Bands:  []export.Band{{X: strain, Lower: band.Lower, Upper: band.Upper}},
	}
	return writeFile(svgPath, chart.SVG())
}

func runSurface(cmd *cobra.Command, args []string) error {
	cfg, exp, err := newExperiment(cmd)
	if err != nil {
		return err
	}

	vfs := cfg.SurfaceGrid()
	grid, err := exp.Surface(cmd.Context(), vfs)
	if err != nil {
		return err
	}

	fmt.Printf("vf %.2f..%.2f (top = high) × strain %.3f..%.3f\n\n",
		cfg.Surface.VfStart, cfg.Surface.VfStop, cfg.Strain.Start, cfg.Strain.Stop)
	fmt.Println(viz.Heatmap(grid, 20, 60, true))

	if svgPath != "" {
		return writeFile(svgPath, export.SurfaceToSVG(grid, vfs, cfg.StrainGrid(), svgWidth, svgHeight))
	}
	return nil
}

func runFailure(cmd *cobra.Command, args []string) error {
	cfg, exp, err := newExperiment(cmd)
	if err != nil {
		return err
	}

	env, err := failureEnvelope(cmd.Context(), exp)
	if err != nil {
		return err
	}

	fmt.Println(viz.Header("TSAI-HILL ENVELOPE", viz.DefaultPlotWidth))
	if err := viz.WriteEnvelopeTable(os.Stdout, env, angleStep); err != nil {
		return err
	}
	angle, index, err := analysis.CriticalAngle(env)
	if err != nil {
		return err
	}
	fmt.Printf("\n%s\n", viz.FailureSparkline(env.Indices, viz.DefaultPlotWidth))
	fmt.Printf("critical angle %.1f° index %.4f at %.2f MPa\n", angle, index, env.Stress)
	if env.Fails() {
		fmt.Println(viz.ErrorStyle.Render("laminate fails at some orientation"))
	}

	if svgPath == "" {
		return nil
	}
	angles := cfg.FailureAngles()
	limit := make([]float64, len(angles))
	for i := range limit {
		limit[i] = 1
	}
	chart := export.Chart{
		Title:  fmt.Sprintf("Tsai-Hill envelope at %.2f MPa", env.Stress),
		XLabel: "angle (deg)",
		YLabel: "failure index",
		Width:  svgWidth,
		Height: svgHeight,
		Series: []export.Series{
			{Name: "index", X: env.Angles, Y: env.Indices},
			{Name: "limit", X: angles, Y: limit, Dashed: true},
		},
	}
	return writeFile(svgPath, chart.SVG())
}

// failureEnvelope uses --stress when given, otherwise the run's own
// envelope at peak stress.
func failureEnvelope(ctx context.Context, exp *experiment.Experiment) (analysis.Envelope, error) {
	if failureStress > 0 {
		return exp.Failure(ctx, failureStress)
	}
	if failureStress < 0 {
		return analysis.Envelope{}, mech.Errorf("failure", mech.ErrInvalidParameter, "stress", failureStress)
	}
	res, err := exp.Run(ctx)
	if err != nil {
		return analysis.Envelope{}, err
	}
	if res.Failure == nil {
		return analysis.Envelope{}, mech.Errorf("failure", mech.ErrInsufficientData, "angles", 0)
	}
	return *res.Failure, nil
}
