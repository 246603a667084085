package viz

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/san-kum/laminate/internal/analysis"
	"github.com/san-kum/laminate/internal/experiment"
	"github.com/san-kum/laminate/internal/mech"
)

// printer groups thousands in stress and modulus values.
var printer = message.NewPrinter(language.English)

func formatStress(v float64) string {
	return printer.Sprintf("%.2f", v)
}

func WriteRunSummary(w io.Writer, res *experiment.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	law := res.Law
	switch {
	case res.Weighting != "":
		law += " (" + res.Weighting + ")"
	case res.Mixing != "":
		law += " (" + res.Mixing + ")"
	}

	fmt.Fprintf(tw, "law\t%s\n", law)
	fmt.Fprintf(tw, "vf\t%.3f\n", res.Vf)
	fmt.Fprintf(tw, "fiber factor\t%s\n", formatStress(res.FiberFactor))
	fmt.Fprintf(tw, "modulus\t%s MPa\n", formatStress(res.Modulus))
	fmt.Fprintf(tw, "samples\t%d\n", len(res.Stress))

	names := make([]string, 0, len(res.Metrics))
	for name := range res.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(tw, "%s\t%s\n", name, printer.Sprintf("%.4f", res.Metrics[name]))
	}

	if res.Failure != nil {
		if angle, index, err := analysis.CriticalAngle(*res.Failure); err == nil {
			fmt.Fprintf(tw, "critical angle\t%.1f° (index %.3f at %s MPa)\n", angle, index, formatStress(res.Failure.Stress))
		}
	}
	return tw.Flush()
}

// WriteSweepTable prints one row per volume fraction with a sparkline of
// the curve.
func WriteSweepTable(w io.Writer, sweep analysis.Sweep, strain mech.Series) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "VF\tSECANT MODULUS\tPEAK STRESS\tCURVE")
	for _, p := range sweep {
		secant := 0.0
		if n := len(strain); n > 0 && strain[n-1] != 0 {
			secant = p.Stress[n-1] / strain[n-1]
		}
		fmt.Fprintf(tw, "%.3f\t%s\t%s\t%s\n", p.Vf, formatStress(secant), formatStress(p.Stress.Max()), Sparkline(p.Stress, 20))
	}
	return tw.Flush()
}

// WriteEnvelopeTable prints every step-th angle of a failure envelope.
func WriteEnvelopeTable(w io.Writer, env analysis.Envelope, step int) error {
	step = max(step, 1)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ANGLE\tTSAI-HILL\tSTATUS")
	for i := 0; i < len(env.Angles); i += step {
		status := "safe"
		if env.Indices[i] >= 1 {
			status = "FAIL"
		}
		fmt.Fprintf(tw, "%.1f\t%.4f\t%s\n", env.Angles[i], env.Indices[i], status)
	}
	return tw.Flush()
}

// WriteBandSummary prints the band at a few evenly spaced strains.
func WriteBandSummary(w io.Writer, band analysis.Band, strain mech.Series, points int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STRAIN\tMEAN\tSTD\t-2σ\t+2σ")
	n := len(strain)
	if n == 0 || points <= 0 {
		return tw.Flush()
	}
	points = min(points, n)
	for k := 0; k < points; k++ {
		i := (n - 1) * k / max(points-1, 1)
		fmt.Fprintf(tw, "%.4f\t%s\t%s\t%s\t%s\n", strain[i],
			formatStress(band.Mean[i]), formatStress(band.Std[i]),
			formatStress(band.Lower[i]), formatStress(band.Upper[i]))
	}
	return tw.Flush()
}
