package assembly

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/wavesim/internal/basis"
	"github.com/san-kum/wavesim/internal/mesh"
)

// Operator is the assembled matrix pair driving the wave equation
// M u'' = -K u + f.
type Operator struct {
	Mass      *MassMatrix
	Stiffness *mat.SymDense
}

// Assemble builds the global mass and stiffness matrices for the grid and
// material using the given basis and mass scheme. The grid must have been
// built on the basis nodes. Non-positive density or shear modulus anywhere
// in the material yields mesh.ErrInvalidMaterial before any matrix is
// touched.
func Assemble(g *mesh.Grid, m *mesh.Material, b *basis.LagrangeGLL, kind MassKind) (*Operator, error) {
	if g.Order != b.Order {
		return nil, fmt.Errorf("assembly: grid order %d does not match basis order %d", g.Order, b.Order)
	}
	ng := g.NumDOF()
	if len(m.Density) != ng || len(m.Mu) != ng {
		return nil, fmt.Errorf("assembly: material covers %d nodes, grid has %d", len(m.Density), ng)
	}
	for i := 0; i < ng; i++ {
		if m.Density[i] <= 0 || m.Mu[i] <= 0 {
			return nil, fmt.Errorf("assembly: node %d rho=%g mu=%g: %w",
				i, m.Density[i], m.Mu[i], mesh.ErrInvalidMaterial)
		}
	}

	op := &Operator{Stiffness: mat.NewSymDense(ng, nil)}

	var err error
	switch kind {
	case Lumped:
		op.Mass = lumpedMass(g, m, b)
	case Consistent:
		op.Mass, err = consistentMass(g, m, b)
	default:
		return nil, fmt.Errorf("assembly: unknown mass kind %v", kind)
	}
	if err != nil {
		return nil, err
	}

	assembleStiffness(op.Stiffness, g, m, b)
	return op, nil
}

// lumpedMass integrates density on the collocation nodes: each global DOF
// accumulates w_a * rho * J from every element it belongs to, so the
// shared boundary nodes receive two contributions and the matrix stays
// diagonal.
func lumpedMass(g *mesh.Grid, m *mesh.Material, b *basis.LagrangeGLL) *MassMatrix {
	diag := make([]float64, g.NumDOF())
	jac := g.Jacobian()
	for e := 0; e < g.Elements; e++ {
		for a := 0; a <= g.Order; a++ {
			gi := g.GlobalIndex(e, a)
			diag[gi] += b.Weights[a] * m.Density[gi] * jac
		}
	}
	return &MassMatrix{Kind: Lumped, Diag: diag}
}

// consistentMass integrates the exact basis products. The integrand
// l_a*l_b*rho has polynomial degree up to 2N (plus the interpolated
// density), so the element integral is taken on the order-N+1 GLL rule,
// which is exact through degree 2N+1.
func consistentMass(g *mesh.Grid, m *mesh.Material, b *basis.LagrangeGLL) (*MassMatrix, error) {
	quadNodes, quadWeights, err := basis.GaussLobatto(b.Order + 1)
	if err != nil {
		return nil, fmt.Errorf("consistent mass: %w", err)
	}

	n := b.Order + 1
	// Basis values at the finer quadrature nodes, shared by all elements.
	shape := make([][]float64, len(quadNodes))
	for k, x := range quadNodes {
		shape[k] = b.EvalAt(x)
	}

	dense := mat.NewSymDense(g.NumDOF(), nil)
	jac := g.Jacobian()
	for e := 0; e < g.Elements; e++ {
		for k := range quadNodes {
			// Density at the quadrature point, interpolated from the
			// element's nodal values.
			rho := 0.0
			for a := 0; a < n; a++ {
				rho += shape[k][a] * m.Density[g.GlobalIndex(e, a)]
			}
			wk := quadWeights[k] * rho * jac
			for a := 0; a < n; a++ {
				gi := g.GlobalIndex(e, a)
				for c := 0; c < n; c++ {
					gj := g.GlobalIndex(e, c)
					if gi > gj {
						continue
					}
					dense.SetSym(gi, gj, dense.At(gi, gj)+wk*shape[k][a]*shape[k][c])
				}
			}
		}
	}
	return &MassMatrix{Kind: Consistent, Dense: dense}, nil
}

// assembleStiffness sums the per-element blocks
// K_ac = sum_k w_k * mu(xi_k) * Ji^2 * J * l'_a(xi_k) * l'_c(xi_k)
// into the global matrix. The GLL rule is exact here: the integrand degree
// is at most 2N-2.
func assembleStiffness(dst *mat.SymDense, g *mesh.Grid, m *mesh.Material, b *basis.LagrangeGLL) {
	n := b.Order + 1
	jac := g.Jacobian()
	ji := 1 / jac
	for e := 0; e < g.Elements; e++ {
		for k := 0; k < n; k++ {
			wk := b.Weights[k] * m.Mu[g.GlobalIndex(e, k)] * ji * ji * jac
			for a := 0; a < n; a++ {
				gi := g.GlobalIndex(e, a)
				da := b.Deriv.At(k, a)
				for c := 0; c < n; c++ {
					gj := g.GlobalIndex(e, c)
					if gi > gj {
						continue
					}
					dst.SetSym(gi, gj, dst.At(gi, gj)+wk*da*b.Deriv.At(k, c))
				}
			}
		}
	}
}
