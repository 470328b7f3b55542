package io

import (
	"bytes"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"trihash/util"
)

func TestWriteCandidatesAsGeoJson(t *testing.T) {
	points := []orb.Point{{1, 2}, {3, 4}, {5, 6}}
	pointIndices := []int{0, 0, 2}
	triangleIndices := []int{3, 5, 1}

	buffer := bytes.NewBuffer([]byte{})
	err := WriteCandidatesAsGeoJson(pointIndices, triangleIndices, points, buffer)
	util.AssertNil(t, err)

	featureCollection, err := geojson.UnmarshalFeatureCollection(buffer.Bytes())
	util.AssertNil(t, err)

	// Point 1 has no candidates and therefore no feature
	util.AssertEqual(t, 2, len(featureCollection.Features))

	first := featureCollection.Features[0]
	util.AssertEqual(t, orb.Point{1, 2}, first.Geometry.(orb.Point))
	// JSON numbers come back as float64
	util.AssertEqual(t, 0.0, first.Properties["point_index"])
	util.AssertEqual(t, []interface{}{3.0, 5.0}, first.Properties["triangle_indices"])

	second := featureCollection.Features[1]
	util.AssertEqual(t, orb.Point{5, 6}, second.Geometry.(orb.Point))
	util.AssertEqual(t, 2.0, second.Properties["point_index"])
	util.AssertEqual(t, []interface{}{1.0}, second.Properties["triangle_indices"])
}

func TestWriteCandidatesAsGeoJson_emptyResult(t *testing.T) {
	buffer := bytes.NewBuffer([]byte{})
	err := WriteCandidatesAsGeoJson(nil, nil, nil, buffer)
	util.AssertNil(t, err)

	featureCollection, err := geojson.UnmarshalFeatureCollection(buffer.Bytes())
	util.AssertNil(t, err)
	util.AssertEqual(t, 0, len(featureCollection.Features))
}
