package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	GlassPanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(1, 2)

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899")).
			Width(16)

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#444466"))

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444"))

	// Failure index colors: safe, near, failed.
	SparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
	SparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	SparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
)

// GradientText colors each rune along a gradient.
func GradientText(text string, startColor, endColor lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	var result strings.Builder
	n := len(runes)
	for i, c := range runes {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		color := lipgloss.Color(lerpHex(string(startColor), string(endColor), t))
		result.WriteString(lipgloss.NewStyle().Foreground(color).Render(string(c)))
	}
	return result.String()
}

// ProgressBar renders a fill bar for percent in [0, 1].
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return MetricValue.Render(strings.Repeat("█", filled)) + Subtle.Render(strings.Repeat("░", width-filled))
}

// Sparkline renders values as block characters scaled to their range,
// sampled down to width.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var result strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / span
		idx := int(norm * float64(len(chars)-1))
		idx = min(max(idx, 0), len(chars)-1)
		result.WriteRune(chars[idx])
	}
	return result.String()
}

// FailureSparkline colors a Tsai-Hill index series by how close each angle
// is to failure.
func FailureSparkline(indices []float64, width int) string {
	line := []rune(Sparkline(indices, width))
	step := max(len(indices)/max(width, 1), 1)

	var result strings.Builder
	for i, c := range line {
		v := indices[min(i*step, len(indices)-1)]
		switch {
		case v >= 1:
			result.WriteString(SparkHigh.Render(string(c)))
		case v >= 0.5:
			result.WriteString(SparkMid.Render(string(c)))
		default:
			result.WriteString(SparkLow.Render(string(c)))
		}
	}
	return result.String()
}

// Separator draws a rule of the given width with a centered diamond.
func Separator(width int) string {
	rest := max(width-3, 0)
	left := strings.Repeat("─", rest/2)
	right := strings.Repeat("─", rest-rest/2)
	return Subtle.Render(left + " ◆ " + right)
}

// Header renders a gradient title over a separator rule.
func Header(title string, width int) string {
	return GradientText(title, ThemeCyberpunk.Primary, ThemeCyberpunk.Accent) + "\n" + Separator(width)
}
