package export

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/san-kum/laminate/internal/mech"
	"github.com/san-kum/laminate/internal/viz"
)

const (
	background = "#0a0a0a"
	axisColor  = "#444466"
	textColor  = "#cccccc"
	margin     = 50.0
)

// Series is one line of a chart.
type Series struct {
	Name   string
	X      []float64
	Y      []float64
	Color  string // empty picks from viz.Palette
	Dashed bool
}

// Band is a shaded region between two curves over shared X.
type Band struct {
	X     []float64
	Lower []float64
	Upper []float64
	Color string
}

// Chart is a line chart with optional shaded bands drawn underneath.
type Chart struct {
	Title  string
	XLabel string
	YLabel string
	Width  int
	Height int
	Series []Series
	Bands  []Band
}

type bounds struct {
	minX, maxX, minY, maxY float64
}

func (b *bounds) include(xs, ys []float64) {
	for _, x := range xs {
		b.minX = math.Min(b.minX, x)
		b.maxX = math.Max(b.maxX, x)
	}
	for _, y := range ys {
		b.minY = math.Min(b.minY, y)
		b.maxY = math.Max(b.maxY, y)
	}
}

func (c Chart) bounds() bounds {
	b := bounds{math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)}
	for _, s := range c.Series {
		b.include(s.X, s.Y)
	}
	for _, band := range c.Bands {
		b.include(band.X, band.Lower)
		b.include(band.X, band.Upper)
	}
	if b.maxX-b.minX == 0 {
		b.maxX = b.minX + 1
	}
	if b.maxY-b.minY == 0 {
		b.maxY = b.minY + 1
	}
	return b
}

// SVG renders the chart. A chart with no series of at least two points
// renders as an empty string.
func (c Chart) SVG() string {
	drawable := false
	for _, s := range c.Series {
		if len(s.X) >= 2 && len(s.X) == len(s.Y) {
			drawable = true
		}
	}
	if !drawable {
		return ""
	}

	b := c.bounds()
	plotW := float64(c.Width) - 2*margin
	plotH := float64(c.Height) - 2*margin
	px := func(x float64) float64 { return margin + (x-b.minX)/(b.maxX-b.minX)*plotW }
	py := func(y float64) float64 { return margin + plotH - (y-b.minY)/(b.maxY-b.minY)*plotH }

	var sb strings.Builder
	writeHeader(&sb, c.Width, c.Height)

	sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s"/>
`, margin, margin, plotW, plotH, axisColor))

	for i, band := range c.Bands {
		if len(band.X) < 2 || len(band.Lower) != len(band.X) || len(band.Upper) != len(band.X) {
			continue
		}
		color := band.Color
		if color == "" {
			color = viz.PaletteColor(i)
		}
		sb.WriteString(fmt.Sprintf(`<path fill="%s" fill-opacity="0.25" stroke="none" d="M`, color))
		for j := range band.X {
			if j > 0 {
				sb.WriteString(" L")
			}
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", px(band.X[j]), py(band.Upper[j])))
		}
		for j := len(band.X) - 1; j >= 0; j-- {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", px(band.X[j]), py(band.Lower[j])))
		}
		sb.WriteString(" Z\"/>\n")
	}

	for i, s := range c.Series {
		if len(s.X) < 2 || len(s.X) != len(s.Y) {
			continue
		}
		color := s.Color
		if color == "" {
			color = viz.PaletteColor(i)
		}
		dash := ""
		if s.Dashed {
			dash = ` stroke-dasharray="6,4"`
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5"%s d="M`, color, dash))
		for j := range s.X {
			if j > 0 {
				sb.WriteString(" L")
			}
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", px(s.X[j]), py(s.Y[j])))
		}
		sb.WriteString("\"/>\n")

		if s.Name != "" {
			ly := margin + 16 + float64(i)*16
			sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s" font-size="12">%s</text>
`, margin+plotW-120, ly, color, html.EscapeString(s.Name)))
		}
	}

	writeAxisLabels(&sb, c, b, plotW, plotH)
	sb.WriteString("</svg>")
	return sb.String()
}

func writeHeader(sb *strings.Builder, width, height int) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))
}

func writeAxisLabels(sb *strings.Builder, c Chart, b bounds, plotW, plotH float64) {
	font := fmt.Sprintf(`fill="%s" font-size="11" font-family="monospace"`, textColor)
	if c.Title != "" {
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" %s text-anchor="middle" font-size="14">%s</text>
`, margin+plotW/2, margin-20, font, html.EscapeString(c.Title)))
	}
	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" %s>%.4g</text>
`, margin, margin+plotH+15, font, b.minX))
	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" %s text-anchor="end">%.4g</text>
`, margin+plotW, margin+plotH+15, font, b.maxX))
	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" %s text-anchor="end">%.4g</text>
`, margin-5, margin+plotH, font, b.minY))
	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" %s text-anchor="end">%.4g</text>
`, margin-5, margin+10, font, b.maxY))
	if c.XLabel != "" {
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" %s text-anchor="middle">%s</text>
`, margin+plotW/2, margin+plotH+35, font, html.EscapeString(c.XLabel)))
	}
	if c.YLabel != "" {
		sb.WriteString(fmt.Sprintf(`<text x="15" y="%.1f" %s text-anchor="middle" transform="rotate(-90 15 %.1f)">%s</text>
`, margin+plotH/2, font, margin+plotH/2, html.EscapeString(c.YLabel)))
	}
}

// CurvesToSVG draws stress curves sharing one strain axis.
func CurvesToSVG(strain mech.Series, curves []mech.Series, names []string, width, height int, title string) string {
	chart := Chart{
		Title:  title,
		XLabel: "strain",
		YLabel: "stress (MPa)",
		Width:  width,
		Height: height,
	}
	for i, c := range curves {
		s := Series{X: strain, Y: c}
		if i < len(names) {
			s.Name = names[i]
		}
		chart.Series = append(chart.Series, s)
	}
	return chart.SVG()
}

// SurfaceToSVG draws grid[vf_index][strain_index] as a heatmap with vf on
// the vertical axis.
func SurfaceToSVG(grid []mech.Series, vfs, strain []float64, width, height int) string {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return ""
	}

	lo, hi := grid[0][0], grid[0][0]
	for _, row := range grid {
		for _, v := range row {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	plotW := float64(width) - 2*margin
	plotH := float64(height) - 2*margin
	cellW := plotW / float64(len(grid[0]))
	cellH := plotH / float64(len(grid))

	var sb strings.Builder
	writeHeader(&sb, width, height)
	sb.WriteString("<g shape-rendering=\"crispEdges\">\n")
	for r, row := range grid {
		y := margin + plotH - float64(r+1)*cellH
		for c, v := range row {
			x := margin + float64(c)*cellW
			sb.WriteString(fmt.Sprintf(`<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>
`, x, y, cellW+0.05, cellH+0.05, viz.HeatColor((v-lo)/span)))
		}
	}
	sb.WriteString("</g>\n")

	chart := Chart{Title: "stress response surface", XLabel: "strain", YLabel: "vf"}
	b := bounds{minX: 0, maxX: 1, minY: 0, maxY: 1}
	if len(strain) > 0 {
		b.minX, b.maxX = strain[0], strain[len(strain)-1]
	}
	if len(vfs) > 0 {
		b.minY, b.maxY = vfs[0], vfs[len(vfs)-1]
	}
	writeAxisLabels(&sb, chart, b, plotW, plotH)
	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s" font-size="11" text-anchor="end">%.4g to %.4g MPa</text>
`, margin+plotW, margin-8, textColor, lo, hi))
	sb.WriteString("</svg>")
	return sb.String()
}
