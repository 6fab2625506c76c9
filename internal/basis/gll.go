package basis

import (
	"fmt"
	"math"
)

const (
	gllTolerance = 1e-15
	gllMaxIter   = 100
)

// legendre evaluates the Legendre polynomials P_n and P_{n-1} at x using
// the three-term recurrence (k)P_k = (2k-1)x P_{k-1} - (k-1)P_{k-2}.
func legendre(n int, x float64) (pn, pnm1 float64) {
	p0, p1 := 1.0, x
	if n == 0 {
		return p0, 0
	}
	for k := 2; k <= n; k++ {
		p0, p1 = p1, ((2*float64(k)-1)*x*p1-(float64(k)-1)*p0)/float64(k)
	}
	return p1, p0
}

// GaussLobatto returns the N+1 Gauss-Lobatto-Legendre collocation nodes on
// [-1,1] in ascending order together with their quadrature weights. The
// interior nodes are the roots of P'_N, found by Newton iteration from
// Chebyshev initial guesses; the endpoints are fixed at -1 and 1. The rule
// integrates polynomials of degree up to 2N-1 exactly and its weights sum
// to 2 within floating-point tolerance.
func GaussLobatto(order int) (nodes, weights []float64, err error) {
	if order < 1 {
		return nil, nil, fmt.Errorf("gauss-lobatto order %d: %w", order, ErrInvalidOrder)
	}

	n := order
	nodes = make([]float64, n+1)
	weights = make([]float64, n+1)

	nodes[0], nodes[n] = -1, 1
	for i := 1; i < n; i++ {
		x := -math.Cos(math.Pi * float64(i) / float64(n))
		for iter := 0; iter < gllMaxIter; iter++ {
			// Newton step for (1-x^2)P'_N(x) = 0, written via the
			// identity (1-x^2)P'_N = N(P_{N-1} - x P_N).
			pn, pnm1 := legendre(n, x)
			dx := (x*pn - pnm1) / (float64(n+1) * pn)
			x -= dx
			if math.Abs(dx) < gllTolerance {
				break
			}
		}
		nodes[i] = x
	}

	nn := float64(n)
	for i := 0; i <= n; i++ {
		pn, _ := legendre(n, nodes[i])
		weights[i] = 2 / (nn * (nn + 1) * pn * pn)
	}
	return nodes, weights, nil
}
