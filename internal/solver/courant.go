package solver

import (
	"fmt"

	"github.com/san-kum/wavesim/internal/mesh"
)

// StableDt returns the Courant-bounded time step eps*dx_min/c_max for the
// grid and medium. Stability is a configuration-time property: the stepper
// does not police it at runtime, it only optionally detects the resulting
// blow-up via field validation.
func StableDt(g *mesh.Grid, m *mesh.Material, eps float64) (float64, error) {
	if eps <= 0 || eps >= 1 {
		return 0, fmt.Errorf("solver: courant number %g must be in (0,1)", eps)
	}
	cmax := m.MaxVelocity()
	if cmax <= 0 {
		return 0, fmt.Errorf("solver: medium has no positive wave speed")
	}
	return eps * g.MinSpacing() / cmax, nil
}
