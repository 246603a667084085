package config

import (
	"sort"

	"github.com/san-kum/laminate/internal/material"
)

// Presets maps a name to a function that adjusts the defaults.
var Presets = map[string]func(*Config){
	"baseline": func(*Config) {},
	"carbon-aligned": func(c *Config) {
		c.Material, _ = material.Preset("carbon-epoxy")
		c.Laminate.Weights = []float64{0.40, 0.25, 0.15, 0.08, 0.05, 0.03, 0.02, 0.01, 0.01}
		c.Laminate.Vf = 0.4
	},
	"glass-random": func(c *Config) {
		c.Material, _ = material.Preset("eglass-epoxy")
		c.Laminate.Weights = []float64{1, 1, 1, 1, 1, 1, 1, 1, 1}
		for i := range c.Laminate.Weights {
			c.Laminate.Weights[i] /= 9
		}
		c.Laminate.Vf = 0.3
		c.Laminate.Weighting = "cos2"
	},
	"aramid-cross": func(c *Config) {
		c.Material, _ = material.Preset("aramid-epoxy")
		c.Laminate.Angles = []float64{0, 45, 90}
		c.Laminate.Weights = []float64{0.5, 0, 0.5}
		c.Laminate.Vf = 0.5
		c.Laminate.Law = "halpin-tsai"
	},
}

// GetPreset returns a fresh default config with the named preset applied,
// or nil if the name is unknown.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
