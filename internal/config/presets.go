package config

import "sort"

// Presets are ready-made scenarios exercising the schemes and media the
// lab supports.
var Presets = map[string]*Config{
	"rod": {
		Scenario: "rod", Scheme: "sem",
		Elements: 10, Order: 3, Length: 10000,
		Rho: 2000, Vs: 2500,
		MassScheme: "lumped", Boundary: "free", Wavelet: "ricker",
		Courant: 0.8, Steps: 3000, SnapshotStride: 10, SourceDOF: -1,
	},
	"layered": {
		Scenario: "layered", Scheme: "sem",
		Elements: 20, Order: 4, Length: 10000,
		Layers: []Layer{
			{From: 0, To: 5000, Rho: 2000, Vs: 2500},
			{From: 5000, To: 10000, Rho: 3000, Vs: 4000},
		},
		MassScheme: "lumped", Boundary: "free", Wavelet: "ricker",
		Courant: 0.6, Steps: 4000, SnapshotStride: 20, SourceDOF: -1,
	},
	"string": {
		Scenario: "string", Scheme: "sem",
		Elements: 16, Order: 2, Length: 1,
		Rho: 1, Vs: 1,
		MassScheme: "consistent", Boundary: "fixed", Wavelet: "gauss",
		Courant: 0.5, Steps: 2000, SnapshotStride: 10, SourceDOF: -1,
	},
	"chebyshev": {
		Scenario: "chebyshev", Scheme: "chebyshev",
		Order: 64, Length: 10000,
		Rho: 2000, Vs: 2500,
		Boundary: "fixed", Wavelet: "gauss",
		Courant: 0.4, Steps: 5000, SnapshotStride: 25, SourceDOF: -1,
	},
}

// GetPreset returns a copy of the named preset, or nil if it does not
// exist. The copy keeps callers from mutating the shared table.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *p
	c.Layers = append([]Layer(nil), p.Layers...)
	c.Receivers = append([]int(nil), p.Receivers...)
	return &c
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
