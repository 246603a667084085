package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/laminate/internal/analysis"
	"github.com/san-kum/laminate/internal/mech"
)

const (
	DefaultPlotHeight = 15
	DefaultPlotWidth  = 80
)

// RenderCurves plots several stress curves on shared axes with a color
// legend underneath. Empty input renders nothing.
func RenderCurves(curves []mech.Series, legend []string, caption string, height, width int) string {
	data := make([][]float64, 0, len(curves))
	for _, c := range curves {
		if len(c) > 0 {
			data = append(data, c)
		}
	}
	if len(data) == 0 {
		return ""
	}

	colors := make([]asciigraph.AnsiColor, len(data))
	for i := range colors {
		colors[i] = SeriesColors[i%len(SeriesColors)]
	}

	graph := asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(colors...),
	)

	if len(legend) == 0 {
		return graph
	}
	var sb strings.Builder
	sb.WriteString(graph)
	sb.WriteString("\n")
	for i, name := range legend {
		if i >= len(data) {
			break
		}
		sb.WriteString(fmt.Sprintf("%s%s%s %s  ", colors[i], "■", asciigraph.Default, name))
	}
	return strings.TrimRight(sb.String(), " ")
}

// RenderBand plots a Monte Carlo mean with its ±2σ bounds.
func RenderBand(band analysis.Band, caption string, height, width int) string {
	return RenderCurves(
		[]mech.Series{band.Mean, band.Lower, band.Upper},
		[]string{"mean", "-2σ", "+2σ"},
		caption, height, width,
	)
}
