// Package config defines the declarative run parameters of a simulation
// and their yaml persistence, plus a set of named presets.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultElements = 10
	DefaultOrder    = 3
	DefaultLength   = 10000.0
	DefaultRho      = 2000.0
	DefaultVs       = 2500.0
	DefaultCourant  = 0.8
	DefaultSteps    = 3000
	DefaultStride   = 10
)

// Config is one simulation scenario. Zero values fall back to defaults or
// derived quantities: Dt to the Courant-bounded step, Period to 20 time
// steps, SourceDOF to the domain center.
type Config struct {
	Scenario string `yaml:"scenario"`
	Scheme   string `yaml:"scheme"` // "sem" (element assembly) or "chebyshev" (collocation)

	Elements int     `yaml:"elements"`
	Order    int     `yaml:"order"`
	Length   float64 `yaml:"length"`

	Rho    float64 `yaml:"rho"`
	Vs     float64 `yaml:"vs"`
	Layers []Layer `yaml:"layers,omitempty"` // overrides Rho/Vs when set

	MassScheme string `yaml:"mass_scheme"` // "lumped" or "consistent"
	Boundary   string `yaml:"boundary"`    // "free" or "fixed"

	Wavelet string  `yaml:"wavelet"` // "gauss" or "ricker"
	Period  float64 `yaml:"period"`

	Courant        float64 `yaml:"courant"`
	Dt             float64 `yaml:"dt"`
	Steps          int     `yaml:"steps"`
	SnapshotStride int     `yaml:"snapshot_stride"`

	SourceDOF int   `yaml:"source_dof"`
	Receivers []int `yaml:"receivers,omitempty"`
}

// Layer mirrors mesh.Layer in yaml form.
type Layer struct {
	From float64 `yaml:"from"`
	To   float64 `yaml:"to"`
	Rho  float64 `yaml:"rho"`
	Vs   float64 `yaml:"vs"`
}

// Default returns the homogeneous-rod scenario.
func Default() *Config {
	return &Config{
		Scenario:       "rod",
		Scheme:         "sem",
		Elements:       DefaultElements,
		Order:          DefaultOrder,
		Length:         DefaultLength,
		Rho:            DefaultRho,
		Vs:             DefaultVs,
		MassScheme:     "lumped",
		Boundary:       "free",
		Wavelet:        "ricker",
		Courant:        DefaultCourant,
		Steps:          DefaultSteps,
		SnapshotStride: DefaultStride,
		SourceDOF:      -1, // domain center
	}
}

// Load reads a yaml config over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config as yaml.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
