// Package basis provides interpolation bases and quadrature rules on the
// reference interval [-1,1]:
//
//   - [LagrangeGLL]: Lagrange interpolation on Gauss-Lobatto-Legendre
//     nodes with quadrature weights and the first-derivative matrix
//   - [Chebyshev]: Chebyshev collocation nodes with the closed-form
//     differentiation matrix
//
// A basis of order N carries N+1 nodes. GLL quadrature of order N is
// exact for polynomials of degree up to 2N-1, and its weights sum to 2,
// the length of the reference interval.
package basis
