package mesh

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
)

// FromOsmFile reads an .osm or .pbf file and triangulates all closed ways
// (building footprints, landuse areas etc.) into one mesh. Nodes appear
// before ways in OSM files, so a single pass is enough: Node coordinates are
// cached and later resolved when their ways come by.
func FromOsmFile(filename string) (*Mesh, error) {
	if !strings.HasSuffix(filename, ".osm") && !strings.HasSuffix(filename, ".pbf") {
		return nil, errors.Errorf("Input file %s must be an .osm or .pbf file", filename)
	}

	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to open OSM input file %s", filename)
	}
	defer f.Close()

	var scanner osm.Scanner
	if strings.HasSuffix(filename, ".osm") {
		scanner = osmxml.New(context.Background(), f)
	} else {
		scanner = osmpbf.New(context.Background(), f, 1)
	}
	defer scanner.Close()

	sigolo.Debugf("Start processing geometries from OSM file %s", filename)
	importStartTime := time.Now()

	nodeCache := map[osm.NodeID]orb.Point{}
	var polygons []orb.Polygon
	skippedWays := 0

	for scanner.Scan() {
		switch osmObj := scanner.Object().(type) {
		case *osm.Node:
			nodeCache[osmObj.ID] = orb.Point{osmObj.Lon, osmObj.Lat}
		case *osm.Way:
			if len(osmObj.Nodes) < 4 || osmObj.Nodes[0].ID != osmObj.Nodes[len(osmObj.Nodes)-1].ID {
				// Open ways (roads, rivers, ...) have no area to triangulate.
				continue
			}

			ring, ok := wayToRing(osmObj, nodeCache)
			if !ok {
				skippedWays++
				continue
			}

			polygons = append(polygons, orb.Polygon{ring})
		}
	}

	if err = scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "Error scanning OSM input file %s", filename)
	}

	if skippedWays > 0 {
		sigolo.Debugf("Skipped %d closed ways with unresolvable nodes", skippedWays)
	}

	importDuration := time.Since(importStartTime)
	sigolo.Debugf("Collected %d area polygons from OSM data in %s", len(polygons), importDuration)

	return FromPolygons(polygons)
}

func wayToRing(way *osm.Way, nodeCache map[osm.NodeID]orb.Point) (orb.Ring, bool) {
	ring := make(orb.Ring, len(way.Nodes))
	for i, wayNode := range way.Nodes {
		point, ok := nodeCache[wayNode.ID]
		if !ok {
			sigolo.Tracef("Way %d references unknown node %d", way.ID, wayNode.ID)
			return nil, false
		}
		ring[i] = point
	}
	return ring, true
}
