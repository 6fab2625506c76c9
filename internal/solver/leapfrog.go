package solver

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/wavesim/internal/assembly"
	"github.com/san-kum/wavesim/internal/source"
)

// Boundary is the policy applied to the domain endpoints after every
// update.
type Boundary int

const (
	// Free leaves the endpoints to the weak form: the stress-free
	// condition needs no explicit term.
	Free Boundary = iota
	// Fixed pins both endpoints to zero displacement.
	Fixed
)

func (b Boundary) String() string {
	if b == Fixed {
		return "fixed"
	}
	return "free"
}

// ParseBoundary maps a configuration name to a Boundary.
func ParseBoundary(name string) (Boundary, error) {
	switch name {
	case "free", "":
		return Free, nil
	case "fixed":
		return Fixed, nil
	default:
		return 0, fmt.Errorf("solver: unknown boundary policy %q", name)
	}
}

// Observer is notified once per step with the current field. The field
// slice is reused between steps; observers must copy what they keep.
type Observer interface {
	OnStep(u Field, t float64, step int)
}

// Snapshot is a copy of the field at one captured step.
type Snapshot struct {
	Step   int
	Time   float64
	Energy float64
	Field  Field
}

// RunConfig holds the per-run scalar parameters.
type RunConfig struct {
	Steps          int
	Dt             float64
	SnapshotStride int
	Receivers      []int // DOFs whose displacement is recorded every step
	ValidateField  bool  // stop with FieldError on NaN/Inf
}

// Result is the output of one completed (or stopped) run.
type Result struct {
	Snapshots   []Snapshot
	TraceDOFs   []int
	Traces      [][]float64 // one trace per receiver, one sample per step
	StepsTaken  int
	FinalEnergy float64
}

// Stepper owns the assembled operator and marches the field. It is not
// safe for concurrent use; one Stepper serves one run at a time.
type Stepper struct {
	invMass   *assembly.InverseMass
	mass      *assembly.MassMatrix
	stiffness mat.Matrix
	src       source.Series
	pattern   []float64
	boundary  Boundary
	observers []Observer
}

// New builds a Stepper from an assembled mass/stiffness pair, a source
// series, the DOFs the source is injected at, and the boundary policy. The
// mass matrix is inverted here, once, before any stepping. Stiffness is
// any square matrix over the same DOFs: the element assembler's symmetric
// matrix or a collocation differentiation product.
func New(mass *assembly.MassMatrix, stiffness mat.Matrix, src source.Series, injectAt []int, boundary Boundary) (*Stepper, error) {
	ng := mass.Dim()
	if r, c := stiffness.Dims(); r != ng || c != ng {
		return nil, fmt.Errorf("solver: stiffness is %dx%d, mass has %d DOFs", r, c, ng)
	}
	inv, err := mass.Invert()
	if err != nil {
		return nil, err
	}

	pattern := make([]float64, ng)
	for _, dof := range injectAt {
		if dof < 0 || dof >= ng {
			return nil, fmt.Errorf("solver: source DOF %d out of range [0,%d)", dof, ng)
		}
		pattern[dof] = 1
	}

	return &Stepper{
		invMass:   inv,
		mass:      mass,
		stiffness: stiffness,
		src:       src,
		pattern:   pattern,
		boundary:  boundary,
	}, nil
}

// AddObserver registers a per-step callback.
func (s *Stepper) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Stepper) validate(cfg RunConfig) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("solver: dt %g must be positive", cfg.Dt)
	}
	if cfg.Steps < 1 {
		return fmt.Errorf("solver: step count %d must be at least 1", cfg.Steps)
	}
	if cfg.SnapshotStride < 1 {
		return fmt.Errorf("solver: snapshot stride %d must be at least 1", cfg.SnapshotStride)
	}
	ng := len(s.pattern)
	for _, dof := range cfg.Receivers {
		if dof < 0 || dof >= ng {
			return fmt.Errorf("solver: receiver DOF %d out of range [0,%d)", dof, ng)
		}
	}
	return nil
}

// Run marches the field from rest for cfg.Steps leapfrog steps:
//
//	next = dt^2 * M^-1 * (s(t)*p - K*u) + 2u - prev
//
// The three time levels are rotated, never reallocated; snapshots are
// copies, so later steps cannot alter captured history. Cancellation is
// honored between steps and returns the partial result with the context's
// error.
func (s *Stepper) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if err := s.validate(cfg); err != nil {
		return nil, err
	}

	ng := len(s.pattern)
	prev := make(Field, ng)
	cur := make(Field, ng)
	next := make(Field, ng)
	ku := make([]float64, ng)
	rhs := make([]float64, ng)
	acc := make([]float64, ng)

	res := &Result{
		Snapshots: make([]Snapshot, 0, cfg.Steps/cfg.SnapshotStride+1),
		TraceDOFs: append([]int(nil), cfg.Receivers...),
		Traces:    make([][]float64, len(cfg.Receivers)),
	}
	for i := range res.Traces {
		res.Traces[i] = make([]float64, 0, cfg.Steps)
	}

	kuVec := mat.NewVecDense(ng, ku)
	dt2 := cfg.Dt * cfg.Dt

	for step := 0; step < cfg.Steps; step++ {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}

		t := float64(step) * cfg.Dt
		amp := s.src.At(step)

		kuVec.MulVec(s.stiffness, mat.NewVecDense(ng, cur))
		for i := 0; i < ng; i++ {
			rhs[i] = amp*s.pattern[i] - ku[i]
		}
		s.invMass.Apply(acc, rhs)
		for i := 0; i < ng; i++ {
			next[i] = dt2*acc[i] + 2*cur[i] - prev[i]
		}

		if s.boundary == Fixed {
			next[0] = 0
			next[ng-1] = 0
		}

		prev, cur, next = cur, next, prev
		res.StepsTaken++

		if cfg.ValidateField && !cur.IsValid() {
			return res, &FieldError{Step: step, Time: t}
		}

		for r, dof := range cfg.Receivers {
			res.Traces[r] = append(res.Traces[r], cur[dof])
		}
		for _, o := range s.observers {
			o.OnStep(cur, t+cfg.Dt, step+1)
		}
		if (step+1)%cfg.SnapshotStride == 0 {
			res.Snapshots = append(res.Snapshots, Snapshot{
				Step:   step + 1,
				Time:   t + cfg.Dt,
				Energy: s.Energy(cur, prev, cfg.Dt),
				Field:  cur.Clone(),
			})
		}
	}

	res.FinalEnergy = s.Energy(cur, prev, cfg.Dt)
	return res, nil
}

// Energy evaluates E = 1/2 v^T M v + 1/2 u^T K u with the velocity
// approximated by the backward difference (u - prev)/dt.
func (s *Stepper) Energy(u, prev Field, dt float64) float64 {
	ng := len(u)
	v := make([]float64, ng)
	for i := range v {
		v[i] = (u[i] - prev[i]) / dt
	}

	kinetic := 0.0
	if s.mass.Kind == assembly.Lumped {
		for i := range v {
			kinetic += 0.5 * s.mass.Diag[i] * v[i] * v[i]
		}
	} else {
		mv := mat.NewVecDense(ng, make([]float64, ng))
		mv.MulVec(s.mass.Dense, mat.NewVecDense(ng, v))
		kinetic = 0.5 * mat.Dot(mat.NewVecDense(ng, v), mv)
	}

	kuv := mat.NewVecDense(ng, make([]float64, ng))
	kuv.MulVec(s.stiffness, mat.NewVecDense(ng, u))
	potential := 0.5 * mat.Dot(mat.NewVecDense(ng, u), kuv)

	return kinetic + potential
}
