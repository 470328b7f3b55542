package storage

import (
	"path"
	"testing"

	"github.com/paulmach/orb"
	"trihash/index"
	"trihash/mesh"
	"trihash/util"
)

func TestSaveAndLoad_roundTrip(t *testing.T) {
	m := mesh.FromTriangles([]index.Triangle{
		{orb.Point{10, 10}, orb.Point{20, 10}, orb.Point{10, 20}},
		{orb.Point{15, 15}, orb.Point{30, 15}, orb.Point{15, 30}},
	})

	normalizer := mesh.NewNormalizer(m.Extent, 4)
	grid, err := index.BuildTriangleIndex(normalizer.ToGridTriangles(m.Triangles), 4)
	util.AssertNil(t, err)

	baseFolder := path.Join(t.TempDir(), "store")
	err = Save(baseFolder, grid, m)
	util.AssertNil(t, err)

	store, err := Load(baseFolder)
	util.AssertNil(t, err)

	util.AssertEqual(t, 4, store.Grid.Resolution())
	util.AssertEqual(t, m.Extent, store.Normalizer.Extent)
	util.AssertEqual(t, m.Triangles, store.Mesh.Triangles)

	// The loaded store must answer queries exactly like the original grid
	points := normalizer.ToGridPoints([]orb.Point{{12, 12}, {25, 16}, {50, 50}})
	expectedPointIndices, expectedTriangleIndices := grid.Query(points)
	actualPointIndices, actualTriangleIndices := store.Grid.Query(points)
	util.AssertEqual(t, expectedPointIndices, actualPointIndices)
	util.AssertEqual(t, expectedTriangleIndices, actualTriangleIndices)
}

func TestSave_replacesExistingStore(t *testing.T) {
	baseFolder := path.Join(t.TempDir(), "store")

	firstMesh := mesh.FromTriangles([]index.Triangle{
		{orb.Point{0, 0}, orb.Point{1, 0}, orb.Point{0, 1}},
	})
	firstGrid, err := index.BuildTriangleIndex(firstMesh.Triangles, 2)
	util.AssertNil(t, err)
	err = Save(baseFolder, firstGrid, firstMesh)
	util.AssertNil(t, err)

	secondMesh := mesh.FromTriangles(nil)
	secondGrid, err := index.BuildTriangleIndex(nil, 8)
	util.AssertNil(t, err)
	err = Save(baseFolder, secondGrid, secondMesh)
	util.AssertNil(t, err)

	store, err := Load(baseFolder)
	util.AssertNil(t, err)
	util.AssertEqual(t, 8, store.Grid.Resolution())
	util.AssertEqual(t, 0, len(store.Mesh.Triangles))
}

func TestLoad_missingFolder(t *testing.T) {
	store, err := Load(path.Join(t.TempDir(), "does-not-exist"))

	util.AssertNotNil(t, err)
	util.AssertTrue(t, store == nil)
}
