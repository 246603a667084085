package viz

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/laminate/internal/analysis"
	"github.com/san-kum/laminate/internal/composite"
	"github.com/san-kum/laminate/internal/experiment"
)

var graphStyle = lipgloss.NewStyle().Padding(1, 2)

// Explorer recomputes a laminate analysis on every key press.
type Explorer struct {
	base     experiment.Config
	registry *experiment.Registry
	logger   *slog.Logger

	vf        float64
	law       string
	weighting string
	mixing    string

	result *experiment.Result
	err    error

	theme    Theme
	width    int
	height   int
	showHelp bool
}

func NewExplorer(base experiment.Config, registry *experiment.Registry) Explorer {
	if registry == nil {
		registry = experiment.NewRegistry()
	}
	e := Explorer{
		base:     base,
		registry: registry,
		logger:   slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)})),
		theme:    ThemeCyberpunk,
		width:    DefaultPlotWidth,
		height:   DefaultPlotHeight,
	}
	e.reset()
	return e
}

func (e Explorer) Vf() float64                { return e.vf }
func (e Explorer) Law() string                { return e.law }
func (e Explorer) Weighting() string          { return e.weighting }
func (e Explorer) Mixing() string             { return e.mixing }
func (e Explorer) Result() *experiment.Result { return e.result }
func (e Explorer) Err() error                 { return e.err }

func (e *Explorer) reset() {
	e.vf = e.base.Vf
	e.law = e.base.Law
	e.weighting = e.base.Weighting
	e.mixing = e.base.Mixing
	if e.weighting == "" {
		e.weighting = string(composite.Cos4)
	}
	if e.mixing == "" {
		e.mixing = string(composite.Voigt)
	}
	e.recompute()
}

func (e *Explorer) recompute() {
	cfg := e.base
	cfg.Vf = e.vf
	cfg.Law = e.law
	cfg.Weighting = e.weighting
	cfg.Mixing = e.mixing
	cfg.FailureStress = 0

	e.result, e.err = experiment.New(cfg, e.registry, e.logger).Run(context.Background())
}

// adjustVf moves vf by delta on a 0.001 grid, clamped to [0, 1].
func (e *Explorer) adjustVf(delta float64) {
	vf := math.Round((e.vf+delta)*1000) / 1000
	e.vf = math.Min(math.Max(vf, 0), 1)
	e.recompute()
}

func (e Explorer) Init() tea.Cmd { return nil }

func (e Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		e.width = max(msg.Width-52, 20)
		e.height = max(msg.Height-12, 5)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return e, tea.Quit
		case "up", "k":
			e.adjustVf(0.01)
		case "down", "j":
			e.adjustVf(-0.01)
		case "pgup":
			e.adjustVf(0.1)
		case "pgdown":
			e.adjustVf(-0.1)
		case "tab":
			if e.law == composite.LawWeighted {
				e.law = composite.LawHalpinTsai
			} else {
				e.law = composite.LawWeighted
			}
			e.recompute()
		case "w":
			if e.weighting == string(composite.Cos4) {
				e.weighting = string(composite.Cos2)
			} else {
				e.weighting = string(composite.Cos4)
			}
			e.recompute()
		case "m":
			if e.mixing == string(composite.Voigt) {
				e.mixing = string(composite.Reuss)
			} else {
				e.mixing = string(composite.Voigt)
			}
			e.recompute()
		case "t":
			e.theme = NextTheme(e.theme.Name)
		case "r":
			e.reset()
		case "?":
			e.showHelp = !e.showHelp
		}
	}
	return e, nil
}

func (e Explorer) View() string {
	title := HeaderStyle.Foreground(e.theme.Primary).Render("LAMINATE EXPLORER")
	label := MetricLabel.Foreground(e.theme.Muted)
	value := lipgloss.NewStyle().Foreground(e.theme.Text)
	accent := lipgloss.NewStyle().Foreground(e.theme.Accent).Bold(true)

	var panel strings.Builder
	panel.WriteString(label.Render("law") + accent.Render(e.law) + "\n")
	if e.law == composite.LawWeighted {
		panel.WriteString(label.Render("weighting") + value.Render(e.weighting) + "\n")
	} else {
		panel.WriteString(label.Render("mixing") + value.Render(e.mixing) + "\n")
	}
	panel.WriteString(label.Render("vf") + value.Render(fmt.Sprintf("%.3f ", e.vf)) + ProgressBar(e.vf, 12) + "\n\n")

	var graph string
	if e.err != nil {
		panel.WriteString(lipgloss.NewStyle().Foreground(e.theme.Error).Render("error: "+e.err.Error()) + "\n")
	} else if e.result != nil {
		res := e.result
		panel.WriteString(label.Render("modulus") + value.Render(formatStress(res.Modulus)+" MPa") + "\n")
		panel.WriteString(label.Render("peak stress") + value.Render(formatStress(res.Stress.Max())+" MPa") + "\n")
		panel.WriteString(label.Render("strain energy") + value.Render(printer.Sprintf("%.3f", res.Metrics["strain_energy"])) + "\n")
		if res.Failure != nil {
			if angle, index, err := analysis.CriticalAngle(*res.Failure); err == nil {
				style := value
				if index >= 1 {
					style = lipgloss.NewStyle().Foreground(e.theme.Warning).Bold(true)
				}
				panel.WriteString(label.Render("critical angle") + style.Render(fmt.Sprintf("%.0f° (%.2f)", angle, index)) + "\n")
				panel.WriteString(label.Render("tsai-hill") + FailureSparkline(res.Failure.Indices, 24) + "\n")
			}
		}
		if len(res.Stress) > 1 {
			graph = asciigraph.Plot(res.Stress,
				asciigraph.Height(e.height),
				asciigraph.Width(e.width),
				asciigraph.Caption("stress (MPa) vs strain"),
			)
		}
	}

	panelStyle := GlassPanel.BorderForeground(e.theme.Muted).Width(44)
	body := lipgloss.JoinHorizontal(lipgloss.Top, graphStyle.Render(graph), panelStyle.Render(panel.String()))

	var s strings.Builder
	s.WriteString(title + "\n")
	s.WriteString(body + "\n")
	if e.showHelp {
		themes := strings.Join(ThemeNames(), "/")
		s.WriteString(KeyHint.Render("↑/↓ vf ±0.01 • pgup/pgdn vf ±0.1 • tab law • w weighting • m mixing • t theme (" + themes + ") • r reset • q quit"))
	} else {
		s.WriteString(KeyHint.Render("? help • q quit"))
	}
	return s.String()
}
