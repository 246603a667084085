package material

import "sort"

var presets = map[string]Properties{
	"carbon-epoxy": Default(),
	"eglass-epoxy": {
		Ef: 72000, Em: 3000, NuF: 0.22, NuM: 0.35, Gf: 29500, Gm: 1200,
		Xt: 1100, Xc: 600, Yt: 35, Yc: 120, S: 60,
	},
	"aramid-epoxy": {
		Ef: 124000, Em: 3000, NuF: 0.36, NuM: 0.35, Gf: 2900, Gm: 1200,
		Xt: 1400, Xc: 280, Yt: 30, Yc: 140, S: 50,
	},
}

// Preset returns the named constituent system.
func Preset(name string) (Properties, bool) {
	p, ok := presets[name]
	return p, ok
}

// Presets lists the preset names in sorted order.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
