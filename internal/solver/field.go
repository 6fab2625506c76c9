// Package solver marches the assembled wave equation
// M u'' = -K u + s(t)*p with an explicit leapfrog scheme, capturing
// snapshots and receiver traces along the way. The loop is synchronous and
// single-threaded; the only suspension point is context cancellation
// between steps.
package solver

import "math"

// Field is the displacement over the global degrees of freedom at one time
// level.
type Field []float64

// Clone returns an independent copy.
func (f Field) Clone() Field {
	c := make(Field, len(f))
	copy(c, f)
	return c
}

// IsValid reports whether every entry is finite.
func (f Field) IsValid() bool {
	for _, v := range f {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// MaxAbs returns the largest absolute entry.
func (f Field) MaxAbs() float64 {
	max := 0.0
	for _, v := range f {
		if a := math.Abs(v); a > max {
			max = a
		}
	}
	return max
}

// Norm returns the Euclidean norm.
func (f Field) Norm() float64 {
	sum := 0.0
	for _, v := range f {
		sum += v * v
	}
	return math.Sqrt(sum)
}
