package index

import (
	"sync"
	"time"

	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// Triangle is an ordered triple of 2D vertices. A triangle has no own ID, it
// is identified by its position in the slice passed to BuildTriangleIndex.
type Triangle [3]orb.Point

// TriangleIndex is a square grid of resolution x resolution cells, each cell
// listing the triangles whose bounding box overlaps it. The index is built
// once and read-only afterwards, so concurrent queries need no locking.
//
// Triangle and point coordinates are expected to already be mapped into the
// [0, resolution) coordinate space (s. mesh.Normalizer), the index itself
// does no coordinate normalization.
type TriangleIndex struct {
	resolution int
	cells      [][]int // Linear cell address is cellX * resolution + cellY.
}

// BuildTriangleIndex creates the grid index for the given triangles. The
// resolution must be positive, otherwise an error is returned and no grid is
// created.
func BuildTriangleIndex(triangles []Triangle, resolution int) (*TriangleIndex, error) {
	if resolution <= 0 {
		return nil, errors.Errorf("Resolution must be positive but was %d", resolution)
	}

	sigolo.Debugf("Build triangle index with resolution %d for %d triangles", resolution, len(triangles))
	buildStartTime := time.Now()

	grid := &TriangleIndex{
		resolution: resolution,
		cells:      make([][]int, resolution*resolution),
	}

	ubound := resolution - 1
	for i, triangle := range triangles {
		extent := triangleCellExtent(triangle, ubound)
		for cellX := extent.LowerLeftCell().X(); cellX <= extent.UpperRightCell().X(); cellX++ {
			for cellY := extent.LowerLeftCell().Y(); cellY <= extent.UpperRightCell().Y(); cellY++ {
				address := cellX*resolution + cellY
				grid.cells[address] = append(grid.cells[address], i)
			}
		}
	}

	buildDuration := time.Since(buildStartTime)
	sigolo.Debugf("Built triangle index in %s", buildDuration)

	return grid, nil
}

func (g *TriangleIndex) Resolution() int {
	return g.resolution
}

// CellTriangles returns the triangle indices stored in the given cell, in
// insertion (i.e. ascending) order. The returned slice is owned by the grid
// and must not be modified.
func (g *TriangleIndex) CellTriangles(cell CellIndex) []int {
	return g.cells[cell.X()*g.resolution+cell.Y()]
}

// Query determines for each point the triangles whose bounding box covers the
// point's cell. The result are two parallel slices of equal length: Position
// k in both slices together forms one (point index, triangle index) pair.
// Such a pair is a candidate for an exact point-in-triangle test, not a
// guarantee of containment. Pairs are grouped by ascending point index and
// within one point ordered by the cell's insertion order.
//
// Points outside of [0, resolution) on any axis contribute no pairs and are silently
// skipped. This also covers NaN coordinates. Note that the upper grid edge is
// exclusive here while the builder clamps triangle boxes onto that edge, so a
// point exactly at the edge never finds the triangles indexed there.
func (g *TriangleIndex) Query(points []orb.Point) ([]int, []int) {
	return g.queryRange(points, 0, len(points))
}

func (g *TriangleIndex) queryRange(points []orb.Point, from int, to int) ([]int, []int) {
	var pointIndices []int
	var triangleIndices []int

	upperBound := float64(g.resolution)

	for i := from; i < to; i++ {
		x := points[i].X()
		y := points[i].Y()

		// Inclusion form so that NaN coordinates fail the check and the point
		// gets skipped instead of producing a bogus cell address.
		if !(x >= 0 && x < upperBound && y >= 0 && y < upperBound) {
			continue
		}

		for _, triangleIndex := range g.CellTriangles(cellForPoint(points[i])) {
			pointIndices = append(pointIndices, i)
			triangleIndices = append(triangleIndices, triangleIndex)
		}
	}

	return pointIndices, triangleIndices
}

// QueryParallel behaves exactly like Query but distributes the points over
// numThreads goroutines. The grid is only read, so the workers share it
// without synchronization. Chunk results are concatenated in chunk order, the
// output is therefore identical to a plain Query call.
func (g *TriangleIndex) QueryParallel(points []orb.Point, numThreads int) ([]int, []int) {
	if numThreads <= 1 || len(points) <= numThreads {
		return g.Query(points)
	}

	type chunkResult struct {
		pointIndices    []int
		triangleIndices []int
	}

	chunkSize := (len(points) + numThreads - 1) / numThreads
	results := make([]chunkResult, numThreads)

	var wg sync.WaitGroup
	wg.Add(numThreads)

	for thread := 0; thread < numThreads; thread++ {
		from := thread * chunkSize
		to := from + chunkSize
		if to > len(points) {
			to = len(points)
		}

		go func(thread int, from int, to int) {
			pointIndices, triangleIndices := g.queryRange(points, from, to)
			results[thread] = chunkResult{pointIndices, triangleIndices}
			wg.Done()
		}(thread, from, to)
	}

	wg.Wait()

	var pointIndices []int
	var triangleIndices []int
	for _, result := range results {
		pointIndices = append(pointIndices, result.pointIndices...)
		triangleIndices = append(triangleIndices, result.triangleIndices...)
	}

	return pointIndices, triangleIndices
}
