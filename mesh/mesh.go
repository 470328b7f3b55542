package mesh

import (
	"time"

	"github.com/hauke96/sigolo/v2"
	"github.com/osuushi/triangulate"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"trihash/index"
)

// Mesh is a dense triangle soup together with its axis-aligned extent. The
// extent is needed to map the triangles (and later the query points) into the
// grid's coordinate space, s. Normalizer.
type Mesh struct {
	Triangles []index.Triangle
	Extent    orb.Bound
}

// FromTriangles creates a mesh from an already triangulated soup.
func FromTriangles(triangles []index.Triangle) *Mesh {
	m := &Mesh{Triangles: triangles}

	if len(triangles) > 0 {
		m.Extent = orb.Bound{Min: triangles[0][0], Max: triangles[0][0]}
		for _, triangle := range triangles {
			for _, vertex := range triangle {
				m.Extent = m.Extent.Extend(vertex)
			}
		}
	}

	return m
}

// FromPolygons triangulates the given polygons and collects the resulting
// triangles into one mesh. Ring orientation is normalized before
// triangulation: outer rings counter-clockwise, holes clockwise.
func FromPolygons(polygons []orb.Polygon) (*Mesh, error) {
	sigolo.Debugf("Triangulate %d polygons", len(polygons))
	triangulationStartTime := time.Now()

	var triangles []index.Triangle

	for i, polygon := range polygons {
		rings := make([][]*triangulate.Point, 0, len(polygon))
		for ringIndex, ring := range polygon {
			points := ringToPoints(ring, ringIndex != 0)
			if len(points) < 3 {
				continue
			}
			rings = append(rings, points)
		}
		if len(rings) == 0 {
			continue
		}

		polygonTriangles, err := triangulate.Triangulate(rings...)
		if err != nil {
			return nil, errors.Wrapf(err, "Unable to triangulate polygon %d", i)
		}

		for _, t := range polygonTriangles {
			triangles = append(triangles, index.Triangle{
				orb.Point{t.A.X, t.A.Y},
				orb.Point{t.B.X, t.B.Y},
				orb.Point{t.C.X, t.C.Y},
			})
		}
	}

	triangulationDuration := time.Since(triangulationStartTime)
	sigolo.Debugf("Triangulated %d polygons into %d triangles in %s", len(polygons), len(triangles), triangulationDuration)

	return FromTriangles(triangles), nil
}

// ringToPoints converts an orb ring (closed, i.e. first point repeated at the
// end) into the open point list the triangulation expects. Solid rings must
// run counter-clockwise, holes clockwise.
func ringToPoints(ring orb.Ring, hole bool) []*triangulate.Point {
	points := []orb.Point(ring)
	if len(points) > 1 && points[0] == points[len(points)-1] {
		points = points[:len(points)-1]
	}

	reversed := hole == (ring.Orientation() == orb.CCW)

	result := make([]*triangulate.Point, len(points))
	for i, p := range points {
		target := i
		if reversed {
			target = len(points) - 1 - i
		}
		result[target] = &triangulate.Point{X: p.X(), Y: p.Y()}
	}
	return result
}
