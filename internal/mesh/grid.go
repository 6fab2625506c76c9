// Package mesh describes the discretized 1D physical domain: the global
// node layout shared by all elements and the material parameters attached
// to it. Both are built once and read-only afterwards.
package mesh

import (
	"fmt"
	"math"
)

// Grid is the global node layout of a 1D element mesh. Element e (0-based)
// owns the global degrees of freedom e*Order .. (e+1)*Order; adjacent
// elements share their boundary node.
type Grid struct {
	Elements int
	Order    int
	Length   float64

	// Coords holds the physical coordinate of every global degree of
	// freedom, ascending from 0 to Length.
	Coords []float64
}

// NewGrid maps the reference nodes (ascending on [-1,1]) into ne equally
// sized elements spanning [0, length].
func NewGrid(ne int, length float64, refNodes []float64) (*Grid, error) {
	if ne < 1 {
		return nil, fmt.Errorf("mesh: element count %d must be at least 1", ne)
	}
	if length <= 0 {
		return nil, fmt.Errorf("mesh: domain length %g must be positive", length)
	}
	if len(refNodes) < 2 {
		return nil, fmt.Errorf("mesh: need at least 2 reference nodes, got %d", len(refNodes))
	}

	order := len(refNodes) - 1
	h := length / float64(ne)

	g := &Grid{
		Elements: ne,
		Order:    order,
		Length:   length,
		Coords:   make([]float64, ne*order+1),
	}
	for e := 0; e < ne; e++ {
		left := float64(e) * h
		for a := 0; a <= order; a++ {
			g.Coords[e*order+a] = left + (refNodes[a]+1)/2*h
		}
	}
	// The shared nodes are written twice above; pin the last one exactly.
	g.Coords[len(g.Coords)-1] = length
	return g, nil
}

// NumDOF returns the number of global degrees of freedom.
func (g *Grid) NumDOF() int { return len(g.Coords) }

// GlobalIndex maps local node a of element e to its global index.
func (g *Grid) GlobalIndex(e, a int) int { return e*g.Order + a }

// ElementSize returns the physical length of one element.
func (g *Grid) ElementSize() float64 { return g.Length / float64(g.Elements) }

// Jacobian returns the scale factor from the reference interval [-1,1] to
// one physical element.
func (g *Grid) Jacobian() float64 { return g.ElementSize() / 2 }

// MinSpacing returns the smallest distance between adjacent global nodes,
// the grid scale entering the Courant stability bound.
func (g *Grid) MinSpacing() float64 {
	min := math.Inf(1)
	for i := 1; i < len(g.Coords); i++ {
		if d := g.Coords[i] - g.Coords[i-1]; d > 0 && d < min {
			min = d
		}
	}
	return min
}

// CenterDOF returns the global index of the node closest to the domain
// midpoint, the conventional source location.
func (g *Grid) CenterDOF() int {
	mid := g.Length / 2
	best, bestDist := 0, math.Inf(1)
	for i, x := range g.Coords {
		if d := math.Abs(x - mid); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
