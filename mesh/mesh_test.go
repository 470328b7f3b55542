package mesh

import (
	"testing"

	"github.com/paulmach/orb"
	"trihash/index"
	"trihash/util"
)

func TestFromTriangles_computesExtent(t *testing.T) {
	triangles := []index.Triangle{
		{orb.Point{1, 2}, orb.Point{3, 2}, orb.Point{1, 5}},
		{orb.Point{-2, 0}, orb.Point{0, 0}, orb.Point{0, 7}},
	}

	m := FromTriangles(triangles)

	util.AssertEqual(t, orb.Bound{Min: orb.Point{-2, 0}, Max: orb.Point{3, 7}}, m.Extent)
	util.AssertEqual(t, triangles, m.Triangles)
}

func TestFromTriangles_emptyMesh(t *testing.T) {
	m := FromTriangles(nil)

	util.AssertEqual(t, 0, len(m.Triangles))
	util.AssertEqual(t, orb.Bound{}, m.Extent)
}

func TestFromPolygons_square(t *testing.T) {
	square := orb.Polygon{
		orb.Ring{{0, 0}, {2, 0}, {2, 2}, {0, 2}, {0, 0}},
	}

	m, err := FromPolygons([]orb.Polygon{square})

	util.AssertNil(t, err)
	util.AssertEqual(t, 2, len(m.Triangles))
	util.AssertEqual(t, orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{2, 2}}, m.Extent)

	// The triangulation only uses the original corner points
	corners := map[orb.Point]bool{
		{0, 0}: true,
		{2, 0}: true,
		{2, 2}: true,
		{0, 2}: true,
	}
	for _, triangle := range m.Triangles {
		for _, vertex := range triangle {
			util.AssertTrue(t, corners[vertex])
		}
	}
}

func TestFromPolygons_ignoresDegenerateRings(t *testing.T) {
	degenerate := orb.Polygon{
		orb.Ring{{0, 0}, {1, 1}, {0, 0}},
	}

	m, err := FromPolygons([]orb.Polygon{degenerate})

	util.AssertNil(t, err)
	util.AssertEqual(t, 0, len(m.Triangles))
}

func TestRingToPoints_orientation(t *testing.T) {
	ccwRing := orb.Ring{{0, 0}, {2, 0}, {2, 2}, {0, 2}, {0, 0}}
	cwRing := orb.Ring{{0, 0}, {0, 2}, {2, 2}, {2, 0}, {0, 0}}

	// Solid rings must end up counter-clockwise
	points := ringToPoints(ccwRing, false)
	util.AssertEqual(t, 4, len(points))
	util.AssertEqual(t, 0.0, points[0].X)
	util.AssertEqual(t, 2.0, points[1].X)

	points = ringToPoints(cwRing, false)
	util.AssertEqual(t, 4, len(points))
	// Reversed, so the former last point comes first
	util.AssertEqual(t, 2.0, points[0].X)
	util.AssertEqual(t, 0.0, points[0].Y)
	util.AssertEqual(t, 0.0, points[len(points)-1].X)
	util.AssertEqual(t, 0.0, points[len(points)-1].Y)

	// Holes must end up clockwise
	points = ringToPoints(ccwRing, true)
	util.AssertEqual(t, 4, len(points))
	util.AssertEqual(t, 0.0, points[0].X)
	util.AssertEqual(t, 2.0, points[len(points)-2].X)
}
