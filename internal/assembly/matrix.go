// Package assembly builds the global mass and stiffness matrices of a 1D
// elastic medium from a mesh, its material field, and a Lagrange-GLL
// basis. Element blocks are summed into the global matrices over the
// degrees of freedom shared by adjacent elements; the matrices are
// constructed once per run and never mutated afterwards.
package assembly

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ErrSingularMatrix indicates a mass matrix inversion failed. With a valid
// material field this cannot happen; it is surfaced rather than swallowed
// so a broken configuration is diagnosable.
var ErrSingularMatrix = errors.New("assembly: singular mass matrix")

// MassKind selects how the mass matrix is integrated and stored.
type MassKind int

const (
	// Lumped integrates mass on the collocation nodes themselves,
	// yielding a diagonal matrix inverted entry by entry.
	Lumped MassKind = iota
	// Consistent integrates the exact basis products on a finer rule,
	// yielding a banded matrix inverted explicitly.
	Consistent
)

func (k MassKind) String() string {
	switch k {
	case Lumped:
		return "lumped"
	case Consistent:
		return "consistent"
	default:
		return fmt.Sprintf("MassKind(%d)", int(k))
	}
}

// ParseMassKind maps a configuration name to a MassKind.
func ParseMassKind(name string) (MassKind, error) {
	switch name {
	case "lumped", "":
		return Lumped, nil
	case "consistent":
		return Consistent, nil
	default:
		return 0, fmt.Errorf("assembly: unknown mass scheme %q", name)
	}
}

// MassMatrix is the assembled global mass in one of its two storage
// variants. Exactly one of Diag and Dense is set, per Kind.
type MassMatrix struct {
	Kind  MassKind
	Diag  []float64
	Dense *mat.SymDense
}

// At returns entry (i,j) regardless of variant.
func (m *MassMatrix) At(i, j int) float64 {
	if m.Kind == Lumped {
		if i == j {
			return m.Diag[i]
		}
		return 0
	}
	return m.Dense.At(i, j)
}

// Dim returns the number of degrees of freedom.
func (m *MassMatrix) Dim() int {
	if m.Kind == Lumped {
		return len(m.Diag)
	}
	return m.Dense.SymmetricDim()
}

// Total returns the sum of all entries, the total mass of the domain.
// For a valid assembly it equals the integral of density over the domain
// within quadrature error.
func (m *MassMatrix) Total() float64 {
	sum := 0.0
	if m.Kind == Lumped {
		for _, v := range m.Diag {
			sum += v
		}
		return sum
	}
	n := m.Dense.SymmetricDim()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			sum += m.Dense.At(i, j)
		}
	}
	return sum
}

// Invert produces the inverse applied at every time step. The diagonal
// variant inverts entry-wise; the dense variant inverts explicitly and
// reports ErrSingularMatrix if the factorization fails.
func (m *MassMatrix) Invert() (*InverseMass, error) {
	switch m.Kind {
	case Lumped:
		inv := make([]float64, len(m.Diag))
		for i, v := range m.Diag {
			if v == 0 {
				return nil, fmt.Errorf("diagonal entry %d is zero: %w", i, ErrSingularMatrix)
			}
			inv[i] = 1 / v
		}
		return &InverseMass{diag: inv}, nil
	case Consistent:
		var inv mat.Dense
		if err := inv.Inverse(m.Dense); err != nil {
			return nil, fmt.Errorf("inverting %dx%d mass: %w", m.Dim(), m.Dim(), ErrSingularMatrix)
		}
		return &InverseMass{dense: &inv}, nil
	default:
		return nil, fmt.Errorf("assembly: unknown mass kind %v", m.Kind)
	}
}

// InverseMass applies the inverted mass matrix to a vector. One type
// serves both storage variants so the time stepper never branches on the
// scheme.
type InverseMass struct {
	diag  []float64
	dense *mat.Dense
}

// Apply computes dst = M^-1 * src. dst and src must have equal length and
// may not alias when the dense variant is in use.
func (im *InverseMass) Apply(dst, src []float64) {
	if im.diag != nil {
		for i := range src {
			dst[i] = im.diag[i] * src[i]
		}
		return
	}
	out := mat.NewVecDense(len(dst), dst)
	out.MulVec(im.dense, mat.NewVecDense(len(src), src))
}
