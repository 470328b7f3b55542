package index

import (
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// Raw buffers arrive in single or double precision, depending on what the
// producing side uses. Mixing precision between build and query buffers is
// not supported.
type Float interface {
	~float32 | ~float64
}

// TrianglesFromBuffer interprets a dense, vertex-major buffer as triangle
// records of the form [v0.x, v0.y, v1.x, v1.y, v2.x, v2.y]. The buffer length
// must be a multiple of 6.
func TrianglesFromBuffer[F Float](buffer []F) ([]Triangle, error) {
	if len(buffer)%6 != 0 {
		return nil, errors.Errorf("Triangle buffer length must be a multiple of 6 but was %d", len(buffer))
	}

	triangles := make([]Triangle, len(buffer)/6)
	for i := range triangles {
		record := buffer[i*6 : i*6+6]
		triangles[i] = Triangle{
			orb.Point{float64(record[0]), float64(record[1])},
			orb.Point{float64(record[2]), float64(record[3])},
			orb.Point{float64(record[4]), float64(record[5])},
		}
	}

	return triangles, nil
}

// PointsFromBuffer interprets a dense buffer as 2D point records. The buffer
// length must be a multiple of 2.
func PointsFromBuffer[F Float](buffer []F) ([]orb.Point, error) {
	if len(buffer)%2 != 0 {
		return nil, errors.Errorf("Point buffer length must be a multiple of 2 but was %d", len(buffer))
	}

	points := make([]orb.Point, len(buffer)/2)
	for i := range points {
		points[i] = orb.Point{float64(buffer[i*2]), float64(buffer[i*2+1])}
	}

	return points, nil
}
