// Package dbg renders a built triangle index to an image for visual
// inspection of cell occupancy and bbox clamping.
package dbg

import (
	"github.com/fogleman/gg"
	"github.com/hauke96/sigolo/v2"
	"github.com/pkg/errors"
	"trihash/index"
)

const cellPixels = 16

// RenderGrid draws the per-cell triangle counts as a heatmap with the
// triangle outlines on top and saves the result as PNG. The triangles must be
// the grid-space triangles the index was built from.
func RenderGrid(grid *index.TriangleIndex, triangles []index.Triangle, filename string) error {
	resolution := grid.Resolution()
	size := resolution * cellPixels
	dc := gg.NewContext(size, size)

	dc.SetRGB(1, 1, 1)
	dc.Clear()

	maxOccupancy := 0
	for cellX := 0; cellX < resolution; cellX++ {
		for cellY := 0; cellY < resolution; cellY++ {
			if n := len(grid.CellTriangles(index.CellIndex{cellX, cellY})); n > maxOccupancy {
				maxOccupancy = n
			}
		}
	}

	if maxOccupancy > 0 {
		for cellX := 0; cellX < resolution; cellX++ {
			for cellY := 0; cellY < resolution; cellY++ {
				occupancy := len(grid.CellTriangles(index.CellIndex{cellX, cellY}))
				if occupancy == 0 {
					continue
				}

				intensity := float64(occupancy) / float64(maxOccupancy)
				dc.SetRGB(1, 1-intensity, 1-intensity)
				// Image y axis points down, grid y axis up.
				dc.DrawRectangle(float64(cellX*cellPixels), float64(size-(cellY+1)*cellPixels), cellPixels, cellPixels)
				dc.Fill()
			}
		}
	}

	dc.SetRGB(0.85, 0.85, 0.85)
	dc.SetLineWidth(1)
	for i := 1; i < resolution; i++ {
		offset := float64(i * cellPixels)
		dc.DrawLine(offset, 0, offset, float64(size))
		dc.DrawLine(0, offset, float64(size), offset)
	}
	dc.Stroke()

	dc.SetRGB(0, 0, 0.8)
	dc.SetLineWidth(1.5)
	for _, triangle := range triangles {
		dc.MoveTo(triangle[0].X()*cellPixels, float64(size)-triangle[0].Y()*cellPixels)
		dc.LineTo(triangle[1].X()*cellPixels, float64(size)-triangle[1].Y()*cellPixels)
		dc.LineTo(triangle[2].X()*cellPixels, float64(size)-triangle[2].Y()*cellPixels)
		dc.ClosePath()
	}
	dc.Stroke()

	err := dc.SavePNG(filename)
	if err != nil {
		return errors.Wrapf(err, "Unable to save rendering to %s", filename)
	}

	sigolo.Infof("Saved rendering of %d triangles to %s", len(triangles), filename)

	return nil
}
