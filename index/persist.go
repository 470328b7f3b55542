package index

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/hauke96/sigolo/v2"
	"github.com/pkg/errors"
)

/*
	Index file format:

	Header: | resolution |
	Bytes:  |     4      |

	Then one entry per cell, in linear address order (resolution * resolution entries):

	Cell:  | num. triangles | triangle indices      |
	Bytes: |       4        | <num. triangles> * 4  |

	All values are little-endian uint32.
*/

// Save writes the grid to the given writer so it can be rebuilt via Load
// without re-processing the triangles.
func (g *TriangleIndex) Save(writer io.Writer) error {
	bufferedWriter := bufio.NewWriter(writer)

	err := binary.Write(bufferedWriter, binary.LittleEndian, uint32(g.resolution))
	if err != nil {
		return errors.Wrap(err, "Unable to write resolution header")
	}

	for address, cell := range g.cells {
		err = binary.Write(bufferedWriter, binary.LittleEndian, uint32(len(cell)))
		if err != nil {
			return errors.Wrapf(err, "Unable to write triangle count of cell %d", address)
		}
		for _, triangle := range cell {
			err = binary.Write(bufferedWriter, binary.LittleEndian, uint32(triangle))
			if err != nil {
				return errors.Wrapf(err, "Unable to write triangle index of cell %d", address)
			}
		}
	}

	return bufferedWriter.Flush()
}

// Load reads a grid previously written by Save.
func Load(reader io.Reader) (*TriangleIndex, error) {
	bufferedReader := bufio.NewReader(reader)

	var resolution uint32
	err := binary.Read(bufferedReader, binary.LittleEndian, &resolution)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to read resolution header")
	}
	if resolution == 0 {
		return nil, errors.Errorf("Resolution in index file must be positive but was %d", resolution)
	}

	grid := &TriangleIndex{
		resolution: int(resolution),
		cells:      make([][]int, resolution*resolution),
	}

	for address := range grid.cells {
		var numTriangles uint32
		err = binary.Read(bufferedReader, binary.LittleEndian, &numTriangles)
		if err != nil {
			return nil, errors.Wrapf(err, "Unable to read triangle count of cell %d", address)
		}

		if numTriangles == 0 {
			continue
		}

		cell := make([]int, numTriangles)
		for i := range cell {
			var triangle uint32
			err = binary.Read(bufferedReader, binary.LittleEndian, &triangle)
			if err != nil {
				return nil, errors.Wrapf(err, "Unable to read triangle index %d of cell %d", i, address)
			}
			cell[i] = int(triangle)
		}
		grid.cells[address] = cell
	}

	return grid, nil
}

// SaveToFile writes the grid to the given file, creating or truncating it.
func (g *TriangleIndex) SaveToFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "Unable to create index file %s", filename)
	}

	defer func() {
		err = file.Close()
		sigolo.FatalCheck(errors.Wrapf(err, "Unable to close file handle for index file %s", filename))
	}()

	return g.Save(file)
}

// LoadFromFile reads a grid from the given file.
func LoadFromFile(filename string) (*TriangleIndex, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to open index file %s", filename)
	}

	defer func() {
		err = file.Close()
		sigolo.FatalCheck(errors.Wrapf(err, "Unable to close file handle for index file %s", filename))
	}()

	return Load(file)
}
