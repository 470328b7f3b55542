package mesh

import (
	"github.com/paulmach/orb"
	"trihash/index"
)

// Normalizer maps between the mesh's own coordinate space and the grid's
// [0, resolution) space. The grid index itself is agnostic of the mesh
// coordinates, so all triangles must go through ToGridTriangles before the
// build and all query points through ToGridPoints before the query.
//
// Points exactly on the upper extent edge map onto the value resolution and
// are therefore outside of the half-open query bound. Triangles touching that
// edge are still indexed, because the builder clamps their boxes back onto
// the last cell.
type Normalizer struct {
	Extent     orb.Bound
	Resolution int
}

func NewNormalizer(extent orb.Bound, resolution int) *Normalizer {
	return &Normalizer{
		Extent:     extent,
		Resolution: resolution,
	}
}

func (n *Normalizer) spans() (float64, float64) {
	spanX := n.Extent.Max.X() - n.Extent.Min.X()
	spanY := n.Extent.Max.Y() - n.Extent.Min.Y()

	// A degenerate extent (all geometry on one line or point) would divide by
	// zero, such an axis maps everything onto cell 0.
	if spanX <= 0 {
		spanX = 1
	}
	if spanY <= 0 {
		spanY = 1
	}

	return spanX, spanY
}

// ToGrid maps a point from mesh coordinates into grid coordinates.
func (n *Normalizer) ToGrid(point orb.Point) orb.Point {
	spanX, spanY := n.spans()
	resolution := float64(n.Resolution)
	return orb.Point{
		(point.X() - n.Extent.Min.X()) / spanX * resolution,
		(point.Y() - n.Extent.Min.Y()) / spanY * resolution,
	}
}

// FromGrid maps a point from grid coordinates back into mesh coordinates.
func (n *Normalizer) FromGrid(point orb.Point) orb.Point {
	spanX, spanY := n.spans()
	resolution := float64(n.Resolution)
	return orb.Point{
		point.X()/resolution*spanX + n.Extent.Min.X(),
		point.Y()/resolution*spanY + n.Extent.Min.Y(),
	}
}

func (n *Normalizer) ToGridPoints(points []orb.Point) []orb.Point {
	gridPoints := make([]orb.Point, len(points))
	for i, point := range points {
		gridPoints[i] = n.ToGrid(point)
	}
	return gridPoints
}

func (n *Normalizer) ToGridTriangles(triangles []index.Triangle) []index.Triangle {
	gridTriangles := make([]index.Triangle, len(triangles))
	for i, triangle := range triangles {
		gridTriangles[i] = index.Triangle{
			n.ToGrid(triangle[0]),
			n.ToGrid(triangle[1]),
			n.ToGrid(triangle[2]),
		}
	}
	return gridTriangles
}
