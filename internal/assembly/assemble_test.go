package assembly

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/wavesim/internal/basis"
	"github.com/san-kum/wavesim/internal/mesh"
)

func buildRod(t *testing.T, ne, order int, length, rho, vs float64, kind MassKind) (*mesh.Grid, *Operator) {
	t.Helper()
	b, err := basis.NewLagrangeGLL(order)
	if err != nil {
		t.Fatal(err)
	}
	g, err := mesh.NewGrid(ne, length, b.Nodes)
	if err != nil {
		t.Fatal(err)
	}
	m, err := mesh.Uniform(g, rho, vs)
	if err != nil {
		t.Fatal(err)
	}
	op, err := Assemble(g, m, b, kind)
	if err != nil {
		t.Fatal(err)
	}
	return g, op
}

func TestMassConservationHomogeneous(t *testing.T) {
	const rho, length = 2500.0, 10000.0
	for _, kind := range []MassKind{Lumped, Consistent} {
		_, op := buildRod(t, 10, 4, length, rho, 3000, kind)
		got := op.Mass.Total()
		want := rho * length
		if math.Abs(got-want)/want > 1e-10 {
			t.Errorf("%v: total mass %.6f, want %.6f", kind, got, want)
		}
	}
}

func TestMassConservationLayered(t *testing.T) {
	b, err := basis.NewLagrangeGLL(3)
	if err != nil {
		t.Fatal(err)
	}
	g, err := mesh.NewGrid(10, 1000, b.Nodes)
	if err != nil {
		t.Fatal(err)
	}
	m, err := mesh.Layered(g, []mesh.Layer{
		{From: 0, To: 500, Rho: 2000, Vs: 2500},
		{From: 500, To: 1000, Rho: 3000, Vs: 4000},
	})
	if err != nil {
		t.Fatal(err)
	}
	op, err := Assemble(g, m, b, Lumped)
	if err != nil {
		t.Fatal(err)
	}
	// Nodal collocation smears the density jump across the shared DOF at
	// the interface, so conservation holds to quadrature error, not
	// machine precision.
	want := 2000*500.0 + 3000*500.0
	got := op.Mass.Total()
	if math.Abs(got-want)/want > 0.01 {
		t.Errorf("layered total mass %.6f, want %.6f within 1%%", got, want)
	}
}

func TestStiffnessNullSpace(t *testing.T) {
	// Free boundaries leave the constant vector in the null space: K*1 = 0.
	g, op := buildRod(t, 8, 5, 5000, 2200, 3200, Lumped)
	ng := g.NumDOF()
	scale := 0.0
	for i := 0; i < ng; i++ {
		if v := math.Abs(op.Stiffness.At(i, i)); v > scale {
			scale = v
		}
	}
	for i := 0; i < ng; i++ {
		row := 0.0
		for j := 0; j < ng; j++ {
			row += op.Stiffness.At(i, j)
		}
		if math.Abs(row) > 1e-10*scale {
			t.Errorf("(K*1)[%d] = %.3e, expected 0 within %.1e", i, row, 1e-10*scale)
		}
	}
}

// Every interior element-boundary DOF must accumulate mass from exactly its
// two incident elements, the first and last DOF from exactly one.
func TestSharedDOFContributions(t *testing.T) {
	order := 3
	b, err := basis.NewLagrangeGLL(order)
	if err != nil {
		t.Fatal(err)
	}
	g, err := mesh.NewGrid(6, 600, b.Nodes)
	if err != nil {
		t.Fatal(err)
	}
	m, err := mesh.Uniform(g, 1000, 1000)
	if err != nil {
		t.Fatal(err)
	}
	op, err := Assemble(g, m, b, Lumped)
	if err != nil {
		t.Fatal(err)
	}

	jac := g.Jacobian()
	single := b.Weights[0] * 1000 * jac // one element's endpoint share
	if math.Abs(op.Mass.Diag[0]-single) > 1e-9 {
		t.Errorf("first DOF mass %.6f, want single contribution %.6f", op.Mass.Diag[0], single)
	}
	if math.Abs(op.Mass.Diag[g.NumDOF()-1]-single) > 1e-9 {
		t.Errorf("last DOF mass %.6f, want single contribution %.6f", op.Mass.Diag[g.NumDOF()-1], single)
	}
	for e := 1; e < g.Elements; e++ {
		gi := g.GlobalIndex(e, 0)
		if math.Abs(op.Mass.Diag[gi]-2*single) > 1e-9 {
			t.Errorf("boundary DOF %d mass %.6f, want two contributions %.6f", gi, op.Mass.Diag[gi], 2*single)
		}
	}
}

func TestAssembleRejectsInvalidMaterial(t *testing.T) {
	b, err := basis.NewLagrangeGLL(2)
	if err != nil {
		t.Fatal(err)
	}
	g, err := mesh.NewGrid(4, 100, b.Nodes)
	if err != nil {
		t.Fatal(err)
	}
	m, err := mesh.Uniform(g, 2000, 2500)
	if err != nil {
		t.Fatal(err)
	}
	m.Density[3] = -1
	if _, err := Assemble(g, m, b, Lumped); !errors.Is(err, mesh.ErrInvalidMaterial) {
		t.Errorf("expected ErrInvalidMaterial, got %v", err)
	}
}

func TestAssembleRejectsOrderMismatch(t *testing.T) {
	b2, _ := basis.NewLagrangeGLL(2)
	b3, _ := basis.NewLagrangeGLL(3)
	g, err := mesh.NewGrid(4, 100, b2.Nodes)
	if err != nil {
		t.Fatal(err)
	}
	m, err := mesh.Uniform(g, 2000, 2500)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Assemble(g, m, b3, Lumped); err == nil {
		t.Error("expected order-mismatch error")
	}
}

func TestInvertSingular(t *testing.T) {
	m := &MassMatrix{Kind: Lumped, Diag: []float64{1, 0, 2}}
	if _, err := m.Invert(); !errors.Is(err, ErrSingularMatrix) {
		t.Errorf("zero diagonal: expected ErrSingularMatrix, got %v", err)
	}
}

func TestParseMassKind(t *testing.T) {
	for name, want := range map[string]MassKind{"lumped": Lumped, "": Lumped, "consistent": Consistent} {
		got, err := ParseMassKind(name)
		if err != nil || got != want {
			t.Errorf("ParseMassKind(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ParseMassKind("banded"); err == nil {
		t.Error("expected error for unknown scheme")
	}
}
