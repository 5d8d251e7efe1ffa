/*package geometry contains the physical-space types used to describe AMR
boxes, along with the cell-center grid math needed to rebuild box bounds
from integer index windows.*/
package geometry

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

// Tolerances used when comparing box coordinates. Box bounds are derived
// quantities (grid value plus or minus half a cell width), so two headers
// describing the same mesh can disagree in the last few bits.
const (
	AbsTol = 1e-8
	RelTol = 1e-5
)

// Box is an axis-aligned rectangular region at a single refinement level.
// Box[i][0] and Box[i][1] are the lower and upper bounds along axis i, in
// physical units.
type Box [][2]float64

// NDims returns the number of axes the box spans.
func (b Box) NDims() int { return len(b) }

// Center returns the geometric center of the box.
func (b Box) Center() []float64 {
	c := make([]float64, len(b))
	for i := range b {
		c[i] = b[i][0] + (b[i][1]-b[i][0])/2
	}
	return c
}

// Close returns true if the two boxes span the same axes and all bounds
// agree within AbsTol/RelTol, and false otherwise.
func Close(x, y Box) bool {
	if len(x) != len(y) { return false }
	for i := range x {
		if !scalar.EqualWithinAbsOrRel(x[i][0], y[i][0], AbsTol, RelTol) {
			return false
		}
		if !scalar.EqualWithinAbsOrRel(x[i][1], y[i][1], AbsTol, RelTol) {
			return false
		}
	}
	return true
}

// BoxesClose returns true if the two box sequences have the same length and
// each pair of boxes is Close, and false otherwise.
func BoxesClose(x, y []Box) bool {
	if len(x) != len(y) { return false }
	for i := range x {
		if !Close(x[i], y[i]) { return false }
	}
	return true
}

// CellCenters returns the coordinates of the n cell centers along one axis
// of a level's logical grid. low and high are the domain bounds on that
// axis and dx is the cell width at that level, so the centers span
// [low + dx/2, high - dx/2].
func CellCenters(low, high, dx float64, n int) []float64 {
	if n == 1 {
		return []float64{low + dx/2}
	}
	return floats.Span(make([]float64, n), low+dx/2, high-dx/2)
}
