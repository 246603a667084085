package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/laminate/internal/export"
	"github.com/san-kum/laminate/internal/mech"
	"github.com/san-kum/laminate/internal/storage"
	"github.com/san-kum/laminate/internal/viz"
)

func newExportCSVCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write a stored run as csv to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := runStore(cmd)
			if err != nil {
				return err
			}
			return st.ExportCSV(os.Stdout, args[0])
		},
	}
}

func newExportJSONCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "write a stored run as json to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := runStore(cmd)
			if err != nil {
				return err
			}
			return st.ExportJSON(os.Stdout, args[0])
		},
	}
}

func newExportSVGCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a stored run as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default <run_id>.svg)")
	return cmd
}

// runStore opens the store of the resolved configuration.
func runStore(cmd *cobra.Command) (*storage.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return storage.New(cfg.DataDir), nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := runStore(cmd)
	if err != nil {
		return err
	}

	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLAW\tVF\tMODULUS\tCRITICAL\tTIME")
	for _, r := range runs {
		critical := "-"
		if r.CriticalAngle != nil {
			critical = fmt.Sprintf("%.1f°", *r.CriticalAngle)
		}
		fmt.Fprintf(w, "%s\t%s\t%.3f\t%.1f\t%s\t%s\n",
			r.ID, r.Law, r.Vf, r.Modulus, critical, r.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st, err := runStore(cmd)
	if err != nil {
		return err
	}

	runID := args[0]
	meta, err := st.Load(runID)
	if err != nil {
		return fmt.Errorf("failed to load run: %w", err)
	}
	curves, err := st.LoadCurves(runID)
	if err != nil {
		return fmt.Errorf("failed to load curves: %w", err)
	}

	fmt.Printf("%s  law=%s vf=%.3f modulus=%.1f MPa\n\n", meta.ID, meta.Law, meta.Vf, meta.Modulus)
	fmt.Println(viz.RenderCurves([]mech.Series{curves.Stress}, []string{"stress"}, "stress (MPa)", viz.DefaultPlotHeight, viz.DefaultPlotWidth))
	fmt.Println()
	fmt.Println(viz.RenderCurves([]mech.Series{curves.Tangent}, []string{"tangent"}, "tangent modulus (MPa)", viz.DefaultPlotHeight/2, viz.DefaultPlotWidth))
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st, err := runStore(cmd)
	if err != nil {
		return err
	}

	runID := args[0]
	meta, err := st.Load(runID)
	if err != nil {
		return fmt.Errorf("failed to load run: %w", err)
	}
	curves, err := st.LoadCurves(runID)
	if err != nil {
		return fmt.Errorf("failed to load curves: %w", err)
	}

	series := []mech.Series{curves.Stress}
	names := []string{meta.Law}
	for i, c := range curves.Components {
		series = append(series, c)
		if i < len(meta.Angles) {
			names = append(names, fmt.Sprintf("%g°", meta.Angles[i]))
		}
	}

	path := outPath
	if path == "" {
		path = runID + ".svg"
	}
	title := fmt.Sprintf("%s vf=%.3f", meta.Law, meta.Vf)
	return writeFile(path, export.CurvesToSVG(curves.Strain, series, names, svgWidth, svgHeight, title))
}
