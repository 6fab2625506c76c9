package mesh

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/wavesim/internal/basis"
)

func testGrid(t *testing.T, ne, order int, length float64) *Grid {
	t.Helper()
	b, err := basis.NewLagrangeGLL(order)
	if err != nil {
		t.Fatal(err)
	}
	g, err := NewGrid(ne, length, b.Nodes)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestNewGridLayout(t *testing.T) {
	g := testGrid(t, 10, 3, 10000)

	if g.NumDOF() != 10*3+1 {
		t.Fatalf("expected %d DOFs, got %d", 31, g.NumDOF())
	}
	if g.Coords[0] != 0 || g.Coords[g.NumDOF()-1] != 10000 {
		t.Errorf("domain endpoints: %f, %f", g.Coords[0], g.Coords[g.NumDOF()-1])
	}
	for i := 1; i < g.NumDOF(); i++ {
		if g.Coords[i] <= g.Coords[i-1] {
			t.Errorf("coords not strictly ascending at %d", i)
		}
	}
	// Shared node between elements 0 and 1 sits at one element size.
	shared := g.GlobalIndex(0, g.Order)
	if shared != g.GlobalIndex(1, 0) {
		t.Errorf("boundary DOF mismatch: %d vs %d", shared, g.GlobalIndex(1, 0))
	}
	if math.Abs(g.Coords[shared]-g.ElementSize()) > 1e-9 {
		t.Errorf("shared node at %f, want %f", g.Coords[shared], g.ElementSize())
	}
}

func TestNewGridRejectsDegenerate(t *testing.T) {
	nodes := []float64{-1, 1}
	if _, err := NewGrid(0, 1, nodes); err == nil {
		t.Error("expected error for zero elements")
	}
	if _, err := NewGrid(3, -1, nodes); err == nil {
		t.Error("expected error for negative length")
	}
	if _, err := NewGrid(3, 1, []float64{0}); err == nil {
		t.Error("expected error for a single reference node")
	}
}

func TestMinSpacing(t *testing.T) {
	g := testGrid(t, 4, 4, 8)
	min := g.MinSpacing()
	if min <= 0 {
		t.Fatalf("non-positive min spacing %f", min)
	}
	// GLL nodes cluster at element boundaries, so the minimum is smaller
	// than the uniform spacing.
	uniform := g.Length / float64(g.NumDOF()-1)
	if min >= uniform {
		t.Errorf("min spacing %f not below uniform spacing %f", min, uniform)
	}
}

func TestUniformMaterial(t *testing.T) {
	g := testGrid(t, 5, 2, 100)
	m, err := Uniform(g, 2500, 3000)
	if err != nil {
		t.Fatal(err)
	}
	for i := range m.Density {
		if m.Density[i] != 2500 {
			t.Fatalf("density[%d] = %f", i, m.Density[i])
		}
		if math.Abs(m.Velocity(i)-3000) > 1e-9 {
			t.Fatalf("velocity[%d] = %f", i, m.Velocity(i))
		}
	}
	if math.Abs(m.MaxVelocity()-3000) > 1e-9 {
		t.Errorf("max velocity %f", m.MaxVelocity())
	}
}

func TestUniformMaterialInvalid(t *testing.T) {
	g := testGrid(t, 2, 2, 10)
	if _, err := Uniform(g, -1, 3000); !errors.Is(err, ErrInvalidMaterial) {
		t.Errorf("negative density: got %v", err)
	}
	if _, err := Uniform(g, 2500, 0); !errors.Is(err, ErrInvalidMaterial) {
		t.Errorf("zero velocity: got %v", err)
	}
}

func TestLayeredMaterial(t *testing.T) {
	g := testGrid(t, 10, 2, 100)
	m, err := Layered(g, []Layer{
		{From: 0, To: 50, Rho: 2000, Vs: 2500},
		{From: 50, To: 100, Rho: 3000, Vs: 4000},
	})
	if err != nil {
		t.Fatal(err)
	}
	for i, x := range g.Coords {
		wantRho := 2000.0
		if x >= 50 {
			wantRho = 3000
		}
		if m.Density[i] != wantRho {
			t.Errorf("node %d at x=%f: density %f, want %f", i, x, m.Density[i], wantRho)
		}
	}
	if math.Abs(m.MaxVelocity()-4000) > 1e-9 {
		t.Errorf("max velocity %f, want 4000", m.MaxVelocity())
	}
}

func TestLayeredMaterialGaps(t *testing.T) {
	g := testGrid(t, 4, 2, 100)
	_, err := Layered(g, []Layer{{From: 0, To: 40, Rho: 2000, Vs: 2500}})
	if err == nil {
		t.Error("expected coverage error for partial layering")
	}
}

func TestLayeredMaterialInvalid(t *testing.T) {
	g := testGrid(t, 4, 2, 100)
	_, err := Layered(g, []Layer{{From: 0, To: 100, Rho: 2000, Vs: -5}})
	if !errors.Is(err, ErrInvalidMaterial) {
		t.Errorf("expected ErrInvalidMaterial, got %v", err)
	}
}

func TestCenterDOF(t *testing.T) {
	g := testGrid(t, 10, 3, 10000)
	c := g.CenterDOF()
	if math.Abs(g.Coords[c]-5000) > g.ElementSize() {
		t.Errorf("center DOF at x=%f, expected near 5000", g.Coords[c])
	}
}
