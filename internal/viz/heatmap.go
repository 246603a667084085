package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/laminate/internal/mech"
)

const shades = " .:-=+*#%@"

// Heatmap renders grid[row][col] as shaded characters, resampled to
// rows x cols. The first grid row is drawn at the bottom so vf increases
// upward. With color set each cell is also tinted by HeatColor.
func Heatmap(grid []mech.Series, rows, cols int, color bool) string {
	if len(grid) == 0 || len(grid[0]) == 0 || rows <= 0 || cols <= 0 {
		return ""
	}

	lo, hi := grid[0][0], grid[0][0]
	for _, row := range grid {
		for _, v := range row {
			lo = min(lo, v)
			hi = max(hi, v)
		}
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	rows = min(rows, len(grid))
	cols = min(cols, len(grid[0]))

	var sb strings.Builder
	for r := rows - 1; r >= 0; r-- {
		src := grid[r*len(grid)/rows]
		for c := 0; c < cols; c++ {
			t := (src[c*len(src)/cols] - lo) / span
			idx := min(int(t*float64(len(shades)-1)), len(shades)-1)
			ch := string(shades[idx])
			if color {
				ch = lipgloss.NewStyle().Foreground(lipgloss.Color(HeatColor(t))).Render(ch)
			}
			sb.WriteString(ch)
		}
		if r > 0 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
