package io

import (
	"os"

	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

// ReadPointsFromGeoJsonFile collects all point geometries from a GeoJSON
// FeatureCollection, in feature order. Non-point features are ignored.
func ReadPointsFromGeoJsonFile(filename string) ([]orb.Point, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to read GeoJSON file %s", filename)
	}

	featureCollection, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to parse GeoJSON file %s", filename)
	}

	var points []orb.Point
	for _, feature := range featureCollection.Features {
		switch geometry := feature.Geometry.(type) {
		case orb.Point:
			points = append(points, geometry)
		case orb.MultiPoint:
			points = append(points, geometry...)
		default:
			sigolo.Tracef("Ignore non-point geometry of type %s", geometry.GeoJSONType())
		}
	}

	sigolo.Debugf("Found %d points in GeoJSON file %s", len(points), filename)

	return points, nil
}
