package mesh

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidMaterial indicates a non-positive density or shear modulus,
// which would make the assembled mass matrix singular or sign-indefinite.
var ErrInvalidMaterial = errors.New("mesh: density and shear modulus must be positive")

// Material holds the per-node elastic parameters of the medium: density
// rho and shear modulus mu = rho*vs^2. Read-only input to assembly.
type Material struct {
	Density []float64
	Mu      []float64
}

// Layer is a contiguous span [From, To) of the domain with its own
// density and shear velocity.
type Layer struct {
	From, To float64
	Rho, Vs  float64
}

// Uniform builds a homogeneous medium over the grid.
func Uniform(g *Grid, rho, vs float64) (*Material, error) {
	if rho <= 0 || vs <= 0 {
		return nil, fmt.Errorf("uniform medium rho=%g vs=%g: %w", rho, vs, ErrInvalidMaterial)
	}
	m := &Material{
		Density: make([]float64, g.NumDOF()),
		Mu:      make([]float64, g.NumDOF()),
	}
	mu := rho * vs * vs
	for i := range m.Density {
		m.Density[i] = rho
		m.Mu[i] = mu
	}
	return m, nil
}

// Layered builds a piecewise medium: each node takes the parameters of the
// first layer whose span contains its coordinate. Layers must cover every
// node; the final layer's To is treated as inclusive so the last node is
// covered.
func Layered(g *Grid, layers []Layer) (*Material, error) {
	if len(layers) == 0 {
		return nil, fmt.Errorf("layered medium: %w", errors.New("mesh: no layers given"))
	}
	for _, l := range layers {
		if l.Rho <= 0 || l.Vs <= 0 {
			return nil, fmt.Errorf("layer [%g,%g) rho=%g vs=%g: %w", l.From, l.To, l.Rho, l.Vs, ErrInvalidMaterial)
		}
	}

	m := &Material{
		Density: make([]float64, g.NumDOF()),
		Mu:      make([]float64, g.NumDOF()),
	}
	for i, x := range g.Coords {
		found := false
		for li, l := range layers {
			last := li == len(layers)-1
			if x >= l.From && (x < l.To || (last && x <= l.To)) {
				m.Density[i] = l.Rho
				m.Mu[i] = l.Rho * l.Vs * l.Vs
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("layered medium: node %d at x=%g covered by no layer", i, x)
		}
	}
	return m, nil
}

// Velocity returns the shear velocity at node i.
func (m *Material) Velocity(i int) float64 {
	return math.Sqrt(m.Mu[i] / m.Density[i])
}

// MaxVelocity returns the fastest shear velocity in the medium, the speed
// entering the Courant stability bound.
func (m *Material) MaxVelocity() float64 {
	max := 0.0
	for i := range m.Density {
		if v := m.Velocity(i); v > max {
			max = v
		}
	}
	return max
}
