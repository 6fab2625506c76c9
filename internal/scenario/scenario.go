// Package scenario wires a declarative config into a runnable simulation:
// basis, grid, material, assembled operator, source series, and stepper.
package scenario

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/wavesim/internal/assembly"
	"github.com/san-kum/wavesim/internal/basis"
	"github.com/san-kum/wavesim/internal/config"
	"github.com/san-kum/wavesim/internal/mesh"
	"github.com/san-kum/wavesim/internal/solver"
	"github.com/san-kum/wavesim/internal/source"
)

// Scenario is a fully wired run: everything derived from a Config, ready
// to march.
type Scenario struct {
	Name      string
	Cfg       *config.Config
	Coords    []float64
	Grid      *mesh.Grid     // nil for the collocation scheme
	Material  *mesh.Material // nil for the collocation scheme
	Dt        float64
	Period    float64
	Source    source.Series
	SourceDOF int
	Stepper   *solver.Stepper
	RunCfg    solver.RunConfig
}

// Build resolves every derived quantity of cfg and assembles the run.
func Build(cfg *config.Config) (*Scenario, error) {
	switch cfg.Scheme {
	case "sem", "":
		return buildElement(cfg)
	case "chebyshev":
		return buildChebyshev(cfg)
	default:
		return nil, fmt.Errorf("scenario: unknown scheme %q", cfg.Scheme)
	}
}

// Run marches the scenario to completion.
func (s *Scenario) Run(ctx context.Context) (*solver.Result, error) {
	return s.Stepper.Run(ctx, s.RunCfg)
}

func buildElement(cfg *config.Config) (*Scenario, error) {
	kind, err := assembly.ParseMassKind(cfg.MassScheme)
	if err != nil {
		return nil, err
	}
	boundary, err := solver.ParseBoundary(cfg.Boundary)
	if err != nil {
		return nil, err
	}
	wavelet, err := source.ParseWavelet(cfg.Wavelet)
	if err != nil {
		return nil, err
	}

	b, err := basis.NewLagrangeGLL(cfg.Order)
	if err != nil {
		return nil, err
	}
	grid, err := mesh.NewGrid(cfg.Elements, cfg.Length, b.Nodes)
	if err != nil {
		return nil, err
	}

	var material *mesh.Material
	if len(cfg.Layers) > 0 {
		layers := make([]mesh.Layer, len(cfg.Layers))
		for i, l := range cfg.Layers {
			layers[i] = mesh.Layer{From: l.From, To: l.To, Rho: l.Rho, Vs: l.Vs}
		}
		material, err = mesh.Layered(grid, layers)
	} else {
		material, err = mesh.Uniform(grid, cfg.Rho, cfg.Vs)
	}
	if err != nil {
		return nil, err
	}

	op, err := assembly.Assemble(grid, material, b, kind)
	if err != nil {
		return nil, err
	}

	dt := cfg.Dt
	if dt <= 0 {
		dt, err = solver.StableDt(grid, material, cfg.Courant)
		if err != nil {
			return nil, err
		}
	}

	s := &Scenario{
		Name:     cfg.Scenario,
		Cfg:      cfg,
		Coords:   grid.Coords,
		Grid:     grid,
		Material: material,
		Dt:       dt,
	}

	srcDOF := cfg.SourceDOF
	if srcDOF < 0 {
		srcDOF = grid.CenterDOF()
	}
	if err := s.finish(wavelet, boundary, op.Mass, op.Stiffness, srcDOF); err != nil {
		return nil, err
	}
	return s, nil
}

// buildChebyshev sets up pseudospectral collocation on Chebyshev nodes:
// there is no quadrature and no element overlap, the spatial operator is
// the squared physical differentiation matrix scaled by the shear modulus.
func buildChebyshev(cfg *config.Config) (*Scenario, error) {
	if len(cfg.Layers) > 0 {
		return nil, fmt.Errorf("scenario: the chebyshev scheme supports only uniform media")
	}
	boundary, err := solver.ParseBoundary(cfg.Boundary)
	if err != nil {
		return nil, err
	}
	wavelet, err := source.ParseWavelet(cfg.Wavelet)
	if err != nil {
		return nil, err
	}
	if cfg.Rho <= 0 || cfg.Vs <= 0 {
		return nil, fmt.Errorf("scenario: rho=%g vs=%g: %w", cfg.Rho, cfg.Vs, mesh.ErrInvalidMaterial)
	}
	if cfg.Length <= 0 {
		return nil, fmt.Errorf("scenario: domain length %g must be positive", cfg.Length)
	}

	cheb, err := basis.NewChebyshev(cfg.Order)
	if err != nil {
		return nil, err
	}

	n := cfg.Order + 1
	// Map the descending reference nodes onto [0, Length] ascending:
	// x = (1 - xi)/2 * L, so d/dx = -(2/L) d/dxi.
	coords := make([]float64, n)
	for i, xi := range cheb.Nodes {
		coords[i] = (1 - xi) / 2 * cfg.Length
	}

	mu := cfg.Rho * cfg.Vs * cfg.Vs
	scale := 4 / (cfg.Length * cfg.Length) // (-2/L)^2

	var d2 mat.Dense
	d2.Mul(cheb.Deriv, cheb.Deriv)
	stiff := mat.NewDense(n, n, nil)
	stiff.Scale(-mu*scale, &d2)

	diag := make([]float64, n)
	for i := range diag {
		diag[i] = cfg.Rho
	}
	mass := &assembly.MassMatrix{Kind: assembly.Lumped, Diag: diag}

	dt := cfg.Dt
	if dt <= 0 {
		if cfg.Courant <= 0 || cfg.Courant >= 1 {
			return nil, fmt.Errorf("scenario: courant number %g must be in (0,1)", cfg.Courant)
		}
		dt = cfg.Courant * minSpacing(coords) / cfg.Vs
	}

	s := &Scenario{
		Name:   cfg.Scenario,
		Cfg:    cfg,
		Coords: coords,
		Dt:     dt,
	}

	srcDOF := cfg.SourceDOF
	if srcDOF < 0 {
		srcDOF = centerOf(coords)
	}
	if err := s.finish(wavelet, boundary, mass, stiff, srcDOF); err != nil {
		return nil, err
	}
	return s, nil
}

// finish derives the source series and run config shared by both schemes.
func (s *Scenario) finish(w source.Wavelet, boundary solver.Boundary, mass *assembly.MassMatrix, stiffness mat.Matrix, srcDOF int) error {
	cfg := s.Cfg

	s.Period = cfg.Period
	if s.Period <= 0 {
		s.Period = 20 * s.Dt
	}

	src, err := source.Generate(w, s.Dt, s.Period, cfg.Steps)
	if err != nil {
		return err
	}
	s.Source = src
	s.SourceDOF = srcDOF

	st, err := solver.New(mass, stiffness, src, []int{srcDOF}, boundary)
	if err != nil {
		return err
	}
	s.Stepper = st

	stride := cfg.SnapshotStride
	if stride < 1 {
		stride = 1
	}
	s.RunCfg = solver.RunConfig{
		Steps:          cfg.Steps,
		Dt:             s.Dt,
		SnapshotStride: stride,
		Receivers:      cfg.Receivers,
		ValidateField:  true,
	}
	return nil
}

func minSpacing(coords []float64) float64 {
	min := math.Inf(1)
	for i := 1; i < len(coords); i++ {
		if d := coords[i] - coords[i-1]; d > 0 && d < min {
			min = d
		}
	}
	return min
}

func centerOf(coords []float64) int {
	if len(coords) == 0 {
		return 0
	}
	mid := (coords[0] + coords[len(coords)-1]) / 2
	best, bestDist := 0, math.Inf(1)
	for i, x := range coords {
		if d := math.Abs(x - mid); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
