package io

import (
	"io"
	"os"
	"time"

	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

// WriteCandidatesAsGeoJsonFile writes the query result to the given file.
func WriteCandidatesAsGeoJsonFile(filename string, pointIndices []int, triangleIndices []int, points []orb.Point) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "Unable to create GeoJSON file %s", filename)
	}

	defer func() {
		err = file.Close()
		sigolo.FatalCheck(errors.Wrapf(err, "Unable to close file handle for GeoJSON file %s", filename))
	}()

	return WriteCandidatesAsGeoJson(pointIndices, triangleIndices, points, file)
}

// WriteCandidatesAsGeoJson writes the candidate correspondences of a query as
// a GeoJSON FeatureCollection. Each point that has at least one candidate
// triangle becomes one point feature with the properties "point_index" and
// "triangle_indices". The two index slices are the parallel slices returned
// by the query, points are the queried points in their original (i.e.
// non-normalized) coordinates.
func WriteCandidatesAsGeoJson(pointIndices []int, triangleIndices []int, points []orb.Point, writer io.Writer) error {
	sigolo.Debug("Write candidates to GeoJSON")
	writeStartTime := time.Now()

	featureCollection := geojson.NewFeatureCollection()

	// The result is grouped by point, so each run of equal point indices
	// becomes one feature.
	for k := 0; k < len(pointIndices); {
		pointIndex := pointIndices[k]

		var candidates []int
		for ; k < len(pointIndices) && pointIndices[k] == pointIndex; k++ {
			candidates = append(candidates, triangleIndices[k])
		}

		feature := geojson.NewFeature(points[pointIndex])
		feature.Properties["point_index"] = pointIndex
		feature.Properties["triangle_indices"] = candidates
		featureCollection.Features = append(featureCollection.Features, feature)
	}

	geojsonBytes, err := featureCollection.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "Unable to marshal candidates to GeoJSON")
	}

	_, err = writer.Write(geojsonBytes)
	if err != nil {
		return errors.Wrap(err, "Unable to write GeoJSON output")
	}

	writeDuration := time.Since(writeStartTime)
	sigolo.Debugf("Finished writing in %s", writeDuration)

	return nil
}
