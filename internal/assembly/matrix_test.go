package assembly

import (
	"testing"

	"github.com/onsi/gomega"
)

func TestMatrixSymmetry(t *testing.T) {
	g := gomega.NewWithT(t)

	for _, kind := range []MassKind{Lumped, Consistent} {
		grid, op := buildRod(t, 6, 4, 3000, 2600, 2900, kind)
		ng := grid.NumDOF()
		for i := 0; i < ng; i++ {
			for j := i + 1; j < ng; j++ {
				g.Expect(op.Stiffness.At(i, j)).To(gomega.BeNumerically("~", op.Stiffness.At(j, i), 1e-9),
					"stiffness (%d,%d) vs (%d,%d)", i, j, j, i)
				g.Expect(op.Mass.At(i, j)).To(gomega.BeNumerically("~", op.Mass.At(j, i), 1e-9),
					"mass (%d,%d) vs (%d,%d)", i, j, j, i)
			}
		}
	}
}

// The consistent mass is banded: DOFs of non-adjacent elements never
// couple.
func TestConsistentMassBandwidth(t *testing.T) {
	g := gomega.NewWithT(t)

	grid, op := buildRod(t, 5, 3, 1000, 2000, 2500, Consistent)
	ng := grid.NumDOF()
	for i := 0; i < ng; i++ {
		for j := 0; j < ng; j++ {
			if abs(i-j) > 2*grid.Order {
				g.Expect(op.Mass.At(i, j)).To(gomega.BeZero(), "mass (%d,%d) outside the band", i, j)
			}
		}
	}
}

func TestInverseMassRoundTrip(t *testing.T) {
	g := gomega.NewWithT(t)

	for _, kind := range []MassKind{Lumped, Consistent} {
		grid, op := buildRod(t, 4, 3, 400, 2100, 2400, kind)
		inv, err := op.Mass.Invert()
		g.Expect(err).NotTo(gomega.HaveOccurred())

		ng := grid.NumDOF()
		// Apply M^-1 to each column of M; the result must be the identity.
		col := make([]float64, ng)
		out := make([]float64, ng)
		for j := 0; j < ng; j++ {
			for i := 0; i < ng; i++ {
				col[i] = op.Mass.At(i, j)
			}
			inv.Apply(out, col)
			for i := 0; i < ng; i++ {
				want := 0.0
				if i == j {
					want = 1
				}
				g.Expect(out[i]).To(gomega.BeNumerically("~", want, 1e-8),
					"%v: (M^-1 M)(%d,%d)", kind, i, j)
			}
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
