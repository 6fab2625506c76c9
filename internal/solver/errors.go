package solver

import "fmt"

// FieldError reports a non-finite field detected during the run. It is
// fatal: the run stops at the offending step with no recovery.
type FieldError struct {
	Step int
	Time float64
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("solver: non-finite field at step %d (t=%.6g); time step likely violates the Courant bound", e.Step, e.Time)
}
