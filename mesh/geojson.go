package mesh

import (
	"os"

	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

// FromGeoJsonFile reads a GeoJSON FeatureCollection and triangulates all
// polygonal features in it. Non-polygonal features are ignored.
func FromGeoJsonFile(filename string) (*Mesh, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to read GeoJSON file %s", filename)
	}

	featureCollection, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to parse GeoJSON file %s", filename)
	}

	var polygons []orb.Polygon
	for _, feature := range featureCollection.Features {
		switch geometry := feature.Geometry.(type) {
		case orb.Polygon:
			polygons = append(polygons, geometry)
		case orb.MultiPolygon:
			polygons = append(polygons, geometry...)
		default:
			sigolo.Tracef("Ignore non-polygonal geometry of type %s", geometry.GeoJSONType())
		}
	}

	sigolo.Debugf("Found %d polygons in GeoJSON file %s", len(polygons), filename)

	return FromPolygons(polygons)
}
