// Package viz renders laminate analyses in the terminal.
//
// Static output:
//
//   - [RenderCurves], [RenderBand]: asciigraph stress-strain plots
//   - [Heatmap]: shaded response surface
//   - [WriteRunSummary], [WriteSweepTable], [WriteEnvelopeTable]: reports
//
// [Explorer] is a Bubble Tea program for adjusting the volume fraction and
// law interactively.
//
// # Key Bindings
//
//	Up/Down   - vf ± 0.01
//	PgUp/PgDn - vf ± 0.1
//	Tab       - Toggle law (weighted / halpin-tsai)
//	W         - Toggle weighting (cos4 / cos2)
//	M         - Toggle mixing (voigt / reuss)
//	T         - Cycle color themes
//	R         - Reset
//	?         - Show help overlay
package viz
