// Copyright 2023 The orthotree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package orthotree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type xyAdaptor struct{}

func (xyAdaptor) ToPoint(p [2]float64) Point { return Point{p[0], p[1]} }

func newTestPoints() SliceContainer[[2]float64] {
	return SliceContainer[[2]float64]{
		{1, 1}, {9, 9}, {1, 9}, {9, 1}, {5, 5},
	}
}

func TestNewPointTreeBulkBuild(t *testing.T) {
	c := newTestPoints()
	tr := NewPointTree[int, [2]float64, xyAdaptor](2, c, xyAdaptor{}, WithMaxEntitiesPerNode(2))
	assert.Equal(t, 2, tr.Dim())
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4}, tr.CollectAllEntitiesInBFS())
}

func TestPointTreeRangeSearch(t *testing.T) {
	c := newTestPoints()
	tr := NewPointTree[int, [2]float64, xyAdaptor](2, c, xyAdaptor{}, WithMaxEntitiesPerNode(2))
	got := tr.RangeSearch(Box{Min: Point{0, 0}, Max: Point{2, 2}}, false)
	assert.ElementsMatch(t, []int{0}, got)
}

func TestPointTreePickSearch(t *testing.T) {
	c := newTestPoints()
	tr := NewPointTree[int, [2]float64, xyAdaptor](2, c, xyAdaptor{}, WithMaxEntitiesPerNode(2))
	got := tr.PickSearch(Point{5, 5})
	assert.Equal(t, []int{4}, got)
}

func TestPointTreeNearestNeighbors(t *testing.T) {
	c := newTestPoints()
	tr := NewPointTree[int, [2]float64, xyAdaptor](2, c, xyAdaptor{}, WithMaxEntitiesPerNode(2))
	got := tr.GetNearestNeighbors(Point{5.5, 5.5}, 1, 0)
	assert.Equal(t, []int{4}, got)
}

func TestPointTreeInsertAndErase(t *testing.T) {
	// MapContainer, not SliceContainer: the tree keeps the container
	// reference it was built with, and a slice's length is fixed at
	// that moment, while a map's entries remain visible through any
	// copy of the map header as they are added.
	c := MapContainer[int, [2]float64]{}
	tr := NewPointTree[int, [2]float64, xyAdaptor](2, c, xyAdaptor{},
		WithWorldBox(Box{Min: Point{0, 0}, Max: Point{10, 10}}),
		WithMaxDepth(3), WithMaxEntitiesPerNode(1))
	c[0] = [2]float64{2, 2}
	assert.NoError(t, tr.Insert(0, c[0]))
	got := tr.PickSearch(Point{2, 2})
	assert.Equal(t, []int{0}, got)
	assert.NoError(t, tr.EraseAt(0, c[0]))
	assert.Empty(t, tr.PickSearch(Point{2, 2}))
}

func TestPointTreeInsertWithRebalancing(t *testing.T) {
	c := MapContainer[int, [2]float64]{}
	tr := NewPointTree[int, [2]float64, xyAdaptor](2, c, xyAdaptor{},
		WithWorldBox(Box{Min: Point{0, 0}, Max: Point{10, 10}}),
		WithMaxDepth(4), WithMaxEntitiesPerNode(1))
	pts := map[int][2]float64{0: {1, 1}, 1: {1.1, 1.1}, 2: {1.2, 1.2}}
	for i, p := range pts {
		c[i] = p
		assert.NoError(t, tr.InsertWithRebalancing(i, p))
	}
	assert.ElementsMatch(t, []int{0, 1, 2}, tr.CollectAllEntitiesInBFS())
}

func TestPointTreeOutOfWorld(t *testing.T) {
	c := MapContainer[int, [2]float64]{}
	tr := NewPointTree[int, [2]float64, xyAdaptor](2, c, xyAdaptor{},
		WithWorldBox(Box{Min: Point{0, 0}, Max: Point{10, 10}}), WithMaxDepth(3))
	err := tr.Insert(0, [2]float64{100, 100})
	assert.ErrorIs(t, err, ErrOutOfWorld)
}

func TestPointTreeCollisionDetection(t *testing.T) {
	c := SliceContainer[[2]float64]{{1, 1}, {1, 1}, {5, 5}}
	tr := NewPointTree[int, [2]float64, xyAdaptor](2, c, xyAdaptor{}, WithMaxEntitiesPerNode(2))
	var pairs [][2]int
	tr.CollisionDetection(func(a, b int) {
		pairs = append(pairs, [2]int{a, b})
	})
	assert.Len(t, pairs, 1)
}

func TestPointTreeInsertUnique(t *testing.T) {
	c := MapContainer[int, [2]float64]{}
	tr := NewPointTree[int, [2]float64, xyAdaptor](2, c, xyAdaptor{},
		WithWorldBox(Box{Min: Point{0, 0}, Max: Point{10, 10}}),
		WithMaxDepth(4), WithMaxEntitiesPerNode(1))

	c[0] = [2]float64{5, 5}
	inserted, err := tr.InsertUnique(0, c[0], 0.5)
	assert.NoError(t, err)
	assert.True(t, inserted)

	c[1] = [2]float64{5.1, 5.1}
	inserted, err = tr.InsertUnique(1, c[1], 0.5)
	assert.NoError(t, err)
	assert.False(t, inserted)
	assert.ElementsMatch(t, []int{0}, tr.CollectAllEntitiesInBFS())

	c[2] = [2]float64{9, 9}
	inserted, err = tr.InsertUnique(2, c[2], 0.5)
	assert.NoError(t, err)
	assert.True(t, inserted)
	assert.ElementsMatch(t, []int{0, 2}, tr.CollectAllEntitiesInBFS())
}

func TestPointTreePlaneSearchAndPositiveSegmentation(t *testing.T) {
	c := newTestPoints() // {1,1}, {9,9}, {1,9}, {9,1}, {5,5}
	tr := NewPointTree[int, [2]float64, xyAdaptor](2, c, xyAdaptor{}, WithMaxEntitiesPerNode(2))
	pl := Plane{Normal: Point{1, 0}, Dist: -5} // x == 5 boundary

	// Only the point exactly on the boundary straddles it.
	assert.Equal(t, []int{4}, tr.PlaneSearch(pl))

	// Every point with x >= 5 is admitted, including the boundary point.
	assert.ElementsMatch(t, []int{1, 3, 4}, tr.PlanePositiveSegmentation(pl))
}

func TestPointTreeGetNearestNeighborsMaxDistance(t *testing.T) {
	c := newTestPoints()
	tr := NewPointTree[int, [2]float64, xyAdaptor](2, c, xyAdaptor{}, WithMaxEntitiesPerNode(2))
	got := tr.GetNearestNeighbors(Point{5.5, 5.5}, 5, 1)
	assert.Equal(t, []int{4}, got)
	got = tr.GetNearestNeighbors(Point{5.5, 5.5}, 5, 0)
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4}, got)
}
