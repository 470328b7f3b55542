package index

import "github.com/paulmach/orb"

type CellIndex [2]int

func (c CellIndex) X() int { return c[0] }

func (c CellIndex) Y() int { return c[1] }

// CellExtent is a rectangle of cells, both corners inclusive.
type CellExtent [2]CellIndex

func (c CellExtent) LowerLeftCell() CellIndex { return c[0] }

func (c CellExtent) UpperRightCell() CellIndex { return c[1] }

func (c CellExtent) contains(cell CellIndex) bool {
	return cell.X() >= c.LowerLeftCell().X() && cell.Y() >= c.LowerLeftCell().Y() &&
		cell.X() <= c.UpperRightCell().X() && cell.Y() <= c.UpperRightCell().Y()
}

// clampAxis forces a truncated bbox interval into [0, ubound]. The policy is
// asymmetric: an interval entirely below the grid collapses onto cell 0, an
// interval entirely above collapses onto cell ubound, and an interval
// straddling the upper edge only gets its max clipped.
func clampAxis(min int, max int, ubound int) (int, int) {
	if min < 0 {
		min = 0
		if max < 0 {
			max = 0
		}
	} else if min > ubound {
		min = ubound
		max = ubound
	} else if max > ubound {
		max = ubound
	}
	return min, max
}

// triangleCellExtent computes the cells covered by the bounding box of the
// given triangle. Coordinates are truncated towards zero (not floored), the
// result is clamped into the grid.
func triangleCellExtent(triangle Triangle, ubound int) CellExtent {
	var extent CellExtent

	for axis := 0; axis < 2; axis++ {
		min, max := triangle[0][axis], triangle[1][axis]
		if min > max {
			min, max = max, min
		}
		if triangle[2][axis] > max {
			max = triangle[2][axis]
		}
		if triangle[2][axis] < min {
			min = triangle[2][axis]
		}

		cellMin, cellMax := clampAxis(int(min), int(max), ubound)
		extent[0][axis] = cellMin
		extent[1][axis] = cellMax
	}

	return extent
}

// cellForPoint maps a point that is known to lie within the grid onto its
// cell, again by truncation towards zero.
func cellForPoint(point orb.Point) CellIndex {
	return CellIndex{int(point.X()), int(point.Y())}
}
