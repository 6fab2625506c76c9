package basis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Chebyshev is a Chebyshev collocation basis: N+1 extrema nodes
// x_i = cos(i*pi/N) on [-1,1] (descending, dense near the boundaries) and
// the closed-form first-derivative matrix. There is no quadrature rule;
// collocation differentiates instead of integrating.
type Chebyshev struct {
	Order int
	Nodes []float64
	Deriv *mat.Dense
}

// NewChebyshev builds the order-N Chebyshev collocation basis. Order must
// be at least 1. The matrix is rebuilt for every order; nothing is cached
// across instances.
func NewChebyshev(order int) (*Chebyshev, error) {
	if order < 1 {
		return nil, fmt.Errorf("chebyshev order %d: %w", order, ErrInvalidOrder)
	}

	n := order
	nodes := make([]float64, n+1)
	for i := 0; i <= n; i++ {
		nodes[i] = math.Cos(math.Pi * float64(i) / float64(n))
	}

	// c_i = 2 at the endpoints, 1 in the interior.
	c := func(i int) float64 {
		if i == 0 || i == n {
			return 2
		}
		return 1
	}

	d := mat.NewDense(n+1, n+1, nil)
	nn := float64(n)
	for i := 0; i <= n; i++ {
		for j := 0; j <= n; j++ {
			switch {
			case i == 0 && j == 0:
				d.Set(i, j, (2*nn*nn+1)/6)
			case i == n && j == n:
				d.Set(i, j, -(2*nn*nn+1)/6)
			case i == j:
				x := nodes[i]
				d.Set(i, j, -x/(2*(1-x*x)))
			default:
				sign := 1.0
				if (i+j)%2 == 1 {
					sign = -1
				}
				d.Set(i, j, (c(i)/c(j))*sign/(nodes[i]-nodes[j]))
			}
		}
	}

	return &Chebyshev{Order: n, Nodes: nodes, Deriv: d}, nil
}
