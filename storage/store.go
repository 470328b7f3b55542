package storage

import (
	"encoding/binary"
	"math"
	"os"
	"path"
	"time"

	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"trihash/index"
	"trihash/mesh"
)

const (
	gridFileName     = "grid.index"
	extentFileName   = "extent.meta"
	triangleFileName = "triangles.bin"
)

// IndexStore bundles everything the query side needs: the grid itself, the
// mesh it was built from and the normalizer that maps world coordinates into
// the grid's space.
type IndexStore struct {
	Grid       *index.TriangleIndex
	Mesh       *mesh.Mesh
	Normalizer *mesh.Normalizer
}

// Save writes the grid and its source mesh into the given folder, replacing
// any previous store.
func Save(baseFolder string, grid *index.TriangleIndex, m *mesh.Mesh) error {
	sigolo.Debugf("Save index store to folder %s", baseFolder)
	saveStartTime := time.Now()

	err := os.RemoveAll(baseFolder)
	if err != nil {
		return errors.Wrapf(err, "Unable to remove old index store folder %s", baseFolder)
	}
	err = os.MkdirAll(baseFolder, os.ModePerm)
	if err != nil {
		return errors.Wrapf(err, "Unable to create index store folder %s", baseFolder)
	}

	err = grid.SaveToFile(path.Join(baseFolder, gridFileName))
	if err != nil {
		return err
	}

	err = saveExtent(path.Join(baseFolder, extentFileName), m.Extent)
	if err != nil {
		return err
	}

	err = saveTriangles(path.Join(baseFolder, triangleFileName), m.Triangles)
	if err != nil {
		return err
	}

	saveDuration := time.Since(saveStartTime)
	sigolo.Debugf("Saved index store in %s", saveDuration)

	return nil
}

// Load reads a store previously written by Save.
func Load(baseFolder string) (*IndexStore, error) {
	grid, err := index.LoadFromFile(path.Join(baseFolder, gridFileName))
	if err != nil {
		return nil, err
	}

	extent, err := loadExtent(path.Join(baseFolder, extentFileName))
	if err != nil {
		return nil, err
	}

	triangles, err := loadTriangles(path.Join(baseFolder, triangleFileName))
	if err != nil {
		return nil, err
	}

	return &IndexStore{
		Grid:       grid,
		Mesh:       &mesh.Mesh{Triangles: triangles, Extent: extent},
		Normalizer: mesh.NewNormalizer(extent, grid.Resolution()),
	}, nil
}

/*
	Extent file format:

	Names: | minX | minY | maxX | maxY |
	Bytes: |  8   |  8   |  8   |  8   |

	All values are little-endian float64 bit patterns.
*/

func saveExtent(filename string, extent orb.Bound) error {
	data := make([]byte, 32)
	binary.LittleEndian.PutUint64(data[0:], math.Float64bits(extent.Min.X()))
	binary.LittleEndian.PutUint64(data[8:], math.Float64bits(extent.Min.Y()))
	binary.LittleEndian.PutUint64(data[16:], math.Float64bits(extent.Max.X()))
	binary.LittleEndian.PutUint64(data[24:], math.Float64bits(extent.Max.Y()))

	err := os.WriteFile(filename, data, 0644)
	if err != nil {
		return errors.Wrapf(err, "Unable to write extent file %s", filename)
	}
	return nil
}

func loadExtent(filename string) (orb.Bound, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return orb.Bound{}, errors.Wrapf(err, "Unable to read extent file %s", filename)
	}
	if len(data) != 32 {
		return orb.Bound{}, errors.Errorf("Extent file %s must be 32 bytes long but was %d", filename, len(data))
	}

	return orb.Bound{
		Min: orb.Point{
			math.Float64frombits(binary.LittleEndian.Uint64(data[0:])),
			math.Float64frombits(binary.LittleEndian.Uint64(data[8:])),
		},
		Max: orb.Point{
			math.Float64frombits(binary.LittleEndian.Uint64(data[16:])),
			math.Float64frombits(binary.LittleEndian.Uint64(data[24:])),
		},
	}, nil
}

/*
	Triangle file format: One 48 byte record per triangle, vertex-major:

	Names: | v0.x | v0.y | v1.x | v1.y | v2.x | v2.y |
	Bytes: |  8   |  8   |  8   |  8   |  8   |  8   |

	All values are little-endian float64 bit patterns, coordinates are in the
	mesh's own (non-normalized) space.
*/

func saveTriangles(filename string, triangles []index.Triangle) error {
	data := make([]byte, len(triangles)*48)
	for i, triangle := range triangles {
		record := data[i*48:]
		for v, vertex := range triangle {
			binary.LittleEndian.PutUint64(record[v*16:], math.Float64bits(vertex.X()))
			binary.LittleEndian.PutUint64(record[v*16+8:], math.Float64bits(vertex.Y()))
		}
	}

	err := os.WriteFile(filename, data, 0644)
	if err != nil {
		return errors.Wrapf(err, "Unable to write triangle file %s", filename)
	}
	return nil
}

func loadTriangles(filename string) ([]index.Triangle, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to read triangle file %s", filename)
	}
	if len(data)%48 != 0 {
		return nil, errors.Errorf("Triangle file %s must contain 48 byte records but has %d bytes", filename, len(data))
	}

	triangles := make([]index.Triangle, len(data)/48)
	for i := range triangles {
		record := data[i*48:]
		for v := 0; v < 3; v++ {
			triangles[i][v] = orb.Point{
				math.Float64frombits(binary.LittleEndian.Uint64(record[v*16:])),
				math.Float64frombits(binary.LittleEndian.Uint64(record[v*16+8:])),
			}
		}
	}

	return triangles, nil
}
