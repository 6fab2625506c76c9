package basis

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// LagrangeGLL is a Lagrange interpolation basis anchored on the
// Gauss-Lobatto-Legendre nodes of a given order. Nodes, Weights and the
// derivative matrix are computed once at construction and never mutated.
type LagrangeGLL struct {
	Order   int
	Nodes   []float64 // N+1 nodes, ascending on [-1,1]
	Weights []float64 // GLL quadrature weights, sum to 2

	// Deriv holds the first derivative of every basis function at every
	// node: Deriv(i,j) = l'_j(x_i).
	Deriv *mat.Dense

	bary []float64 // barycentric weights for off-node evaluation
}

// NewLagrangeGLL builds the order-N Lagrange-GLL basis. Order must be at
// least 1.
func NewLagrangeGLL(order int) (*LagrangeGLL, error) {
	nodes, weights, err := GaussLobatto(order)
	if err != nil {
		return nil, fmt.Errorf("lagrange basis: %w", err)
	}

	b := &LagrangeGLL{
		Order:   order,
		Nodes:   nodes,
		Weights: weights,
		bary:    barycentric(nodes),
	}
	b.Deriv = b.derivMatrix()
	return b, nil
}

// barycentric computes the weights w_j = 1/prod_{k!=j}(x_j - x_k) used by
// both interpolation and differentiation.
func barycentric(nodes []float64) []float64 {
	w := make([]float64, len(nodes))
	for j := range nodes {
		w[j] = 1
		for k := range nodes {
			if k != j {
				w[j] /= nodes[j] - nodes[k]
			}
		}
	}
	return w
}

// derivMatrix evaluates l'_j at every node via the barycentric formula
// D_ij = (w_j/w_i)/(x_i-x_j) for i != j, with each diagonal entry set so
// every row sums to zero (the derivative of the constant interpolant
// vanishes).
func (b *LagrangeGLL) derivMatrix() *mat.Dense {
	n := len(b.Nodes)
	d := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		sum := 0.0
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			v := (b.bary[j] / b.bary[i]) / (b.Nodes[i] - b.Nodes[j])
			d.Set(i, j, v)
			sum += v
		}
		d.Set(i, i, -sum)
	}
	return d
}

// EvalAt returns the value of every basis function at x, which need not be
// a collocation node. At a node the result is the corresponding unit
// vector.
func (b *LagrangeGLL) EvalAt(x float64) []float64 {
	n := len(b.Nodes)
	vals := make([]float64, n)

	for j := 0; j < n; j++ {
		if x == b.Nodes[j] {
			vals[j] = 1
			return vals
		}
	}

	denom := 0.0
	for j := 0; j < n; j++ {
		t := b.bary[j] / (x - b.Nodes[j])
		vals[j] = t
		denom += t
	}
	for j := 0; j < n; j++ {
		vals[j] /= denom
	}
	return vals
}
