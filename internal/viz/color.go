package viz

import (
	"math"

	"github.com/guptarohit/asciigraph"
)

// Palette is the series color order for SVG output.
var Palette = []string{"#00ffff", "#ff00ff", "#ffff00", "#00ff88", "#ff8800", "#0088ff", "#ff4444", "#88ff88", "#cccccc"}

// SeriesColors is the matching order for terminal plots.
var SeriesColors = []asciigraph.AnsiColor{
	asciigraph.Cyan, asciigraph.Magenta, asciigraph.Yellow, asciigraph.Green,
	asciigraph.Orange, asciigraph.Blue, asciigraph.Red, asciigraph.LightGreen, asciigraph.Silver,
}

// PaletteColor cycles through Palette.
func PaletteColor(i int) string {
	return Palette[i%len(Palette)]
}

var heatStops = []string{"#0a0a40", "#0077be", "#00ff88", "#ffff00", "#ff4444"}

// HeatColor maps t in [0, 1] onto a blue to red gradient.
func HeatColor(t float64) string {
	if math.IsNaN(t) {
		t = 0
	}
	t = math.Min(math.Max(t, 0), 1)
	segments := float64(len(heatStops) - 1)
	pos := t * segments
	i := int(pos)
	if i >= len(heatStops)-1 {
		return heatStops[len(heatStops)-1]
	}
	return lerpHex(heatStops[i], heatStops[i+1], pos-float64(i))
}

func lerpHex(from, to string, t float64) string {
	sr, sg, sb := parseHex(from)
	er, eg, eb := parseHex(to)
	r := int(float64(sr) + t*float64(er-sr))
	g := int(float64(sg) + t*float64(eg-sg))
	b := int(float64(sb) + t*float64(eb-sb))
	return hexColor(r, g, b)
}

func parseHex(hex string) (r, g, b int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 255, 255, 255
	}
	r = parseHexByte(hex[1:3])
	g = parseHexByte(hex[3:5])
	b = parseHexByte(hex[5:7])
	return
}

func parseHexByte(s string) int {
	var val int
	for _, c := range s {
		val *= 16
		switch {
		case c >= '0' && c <= '9':
			val += int(c - '0')
		case c >= 'a' && c <= 'f':
			val += int(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			val += int(c - 'A' + 10)
		}
	}
	return val
}

func hexColor(r, g, b int) string {
	return "#" + hexByte(r) + hexByte(g) + hexByte(b)
}

func hexByte(v int) string {
	v = min(max(v, 0), 255)
	const hex = "0123456789abcdef"
	return string(hex[v/16]) + string(hex[v%16])
}
