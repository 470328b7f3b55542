package mesh

import (
	"testing"

	"github.com/paulmach/orb"
	"trihash/index"
	"trihash/util"
)

func TestNormalizer_toGrid(t *testing.T) {
	normalizer := NewNormalizer(orb.Bound{Min: orb.Point{10, 20}, Max: orb.Point{30, 40}}, 4)

	util.AssertEqual(t, orb.Point{0, 0}, normalizer.ToGrid(orb.Point{10, 20}))
	util.AssertEqual(t, orb.Point{2, 2}, normalizer.ToGrid(orb.Point{20, 30}))

	// The upper extent edge maps exactly onto the resolution and is therefore
	// outside of the half-open query bound.
	util.AssertEqual(t, orb.Point{4, 4}, normalizer.ToGrid(orb.Point{30, 40}))
}

func TestNormalizer_roundTrip(t *testing.T) {
	normalizer := NewNormalizer(orb.Bound{Min: orb.Point{-5, 3}, Max: orb.Point{7, 12}}, 16)

	for _, point := range []orb.Point{{-5, 3}, {0, 5.5}, {6.9, 11.9}} {
		roundTripped := normalizer.FromGrid(normalizer.ToGrid(point))
		util.AssertApprox(t, point.X(), roundTripped.X(), 1e-12)
		util.AssertApprox(t, point.Y(), roundTripped.Y(), 1e-12)
	}
}

func TestNormalizer_degenerateExtent(t *testing.T) {
	normalizer := NewNormalizer(orb.Bound{Min: orb.Point{5, 5}, Max: orb.Point{5, 5}}, 8)

	util.AssertEqual(t, orb.Point{0, 0}, normalizer.ToGrid(orb.Point{5, 5}))
}

func TestNormalizer_toGridTriangles(t *testing.T) {
	normalizer := NewNormalizer(orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{10, 10}}, 5)

	triangles := []index.Triangle{
		{orb.Point{0, 0}, orb.Point{10, 0}, orb.Point{0, 10}},
	}

	gridTriangles := normalizer.ToGridTriangles(triangles)

	util.AssertEqual(t, []index.Triangle{
		{orb.Point{0, 0}, orb.Point{5, 0}, orb.Point{0, 5}},
	}, gridTriangles)

	// Input triangles stay untouched
	util.AssertEqual(t, orb.Point{10, 0}, triangles[0][1])
}

func TestNormalizer_toGridPoints(t *testing.T) {
	normalizer := NewNormalizer(orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{100, 100}}, 10)

	points := normalizer.ToGridPoints([]orb.Point{{50, 50}, {25, 75}})

	util.AssertEqual(t, []orb.Point{{5, 5}, {2.5, 7.5}}, points)
}
