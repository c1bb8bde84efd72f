// Copyright 2023 The orthotree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package orthotree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type boxAdaptor struct{}

func (boxAdaptor) ToBox(b [4]float64) Box {
	return Box{Min: Point{b[0], b[1]}, Max: Point{b[2], b[3]}}
}

func newTestBoxes() SliceContainer[[4]float64] {
	return SliceContainer[[4]float64]{
		{0, 0, 1, 1},
		{8, 8, 9, 9},
		{4.5, 4.5, 5.5, 5.5},
	}
}

func TestNewBoxTreeBulkBuild(t *testing.T) {
	c := newTestBoxes()
	tr := NewBoxTree[int, [4]float64, boxAdaptor](2, c, boxAdaptor{}, WithMaxEntitiesPerNode(1))
	assert.ElementsMatch(t, []int{0, 1, 2}, tr.CollectAllEntitiesInBFS())
}

func TestBoxTreeRangeSearchOverlapAndContain(t *testing.T) {
	c := newTestBoxes()
	tr := NewBoxTree[int, [4]float64, boxAdaptor](2, c, boxAdaptor{}, WithMaxEntitiesPerNode(1))
	overlap := tr.RangeSearch(Box{Min: Point{0, 0}, Max: Point{6, 6}}, false)
	assert.ElementsMatch(t, []int{0, 2}, overlap)
	contain := tr.RangeSearch(Box{Min: Point{0, 0}, Max: Point{0.5, 0.5}}, true)
	assert.Empty(t, contain)
	containAll := tr.RangeSearch(Box{Min: Point{-1, -1}, Max: Point{2, 2}}, true)
	assert.ElementsMatch(t, []int{0}, containAll)
}

func TestBoxTreePickSearch(t *testing.T) {
	c := newTestBoxes()
	tr := NewBoxTree[int, [4]float64, boxAdaptor](2, c, boxAdaptor{}, WithMaxEntitiesPerNode(1))
	got := tr.PickSearch(Point{5, 5})
	assert.Equal(t, []int{2}, got)
}

func TestBoxTreeInsertEraseUpdate(t *testing.T) {
	c := MapContainer[int, [4]float64]{}
	tr := NewBoxTree[int, [4]float64, boxAdaptor](2, c, boxAdaptor{},
		WithWorldBox(Box{Min: Point{0, 0}, Max: Point{10, 10}}),
		WithMaxDepth(3), WithMaxEntitiesPerNode(1))
	oldBx := [4]float64{1, 1, 2, 2}
	c[0] = oldBx
	assert.NoError(t, tr.InsertWithRebalancing(0, oldBx))
	assert.Equal(t, []int{0}, tr.PickSearch(Point{1.5, 1.5}))

	newBx := [4]float64{7, 7, 8, 8}
	c[0] = newBx
	assert.NoError(t, tr.Update(0, oldBx, newBx, true))
	assert.Empty(t, tr.PickSearch(Point{1.5, 1.5}))
	assert.Equal(t, []int{0}, tr.PickSearch(Point{7.5, 7.5}))

	assert.NoError(t, tr.EraseAt(0, newBx))
	assert.Empty(t, tr.PickSearch(Point{7.5, 7.5}))
}

func TestBoxTreeCollisionDetectionSelf(t *testing.T) {
	c := SliceContainer[[4]float64]{
		{0, 0, 2, 2},
		{1, 1, 3, 3},
		{8, 8, 9, 9},
	}
	tr := NewBoxTree[int, [4]float64, boxAdaptor](2, c, boxAdaptor{}, WithMaxEntitiesPerNode(1))
	var pairs [][2]int
	tr.CollisionDetection(func(a, b int) {
		pairs = append(pairs, [2]int{a, b})
	})
	assert.Len(t, pairs, 1)
}

func TestBoxTreeCollisionDetectionDedupsReplicatedPairs(t *testing.T) {
	// Both boxes straddle the root's midplane in every dimension, so
	// DO_SPLIT_PARENT_ENTITIES replicates each of them into all four
	// depth-1 children; without dedup the same overlapping pair would be
	// reported once per shared child instead of once overall.
	c := SliceContainer[[4]float64]{
		{1.5, 1.5, 2.5, 2.5},
		{1.6, 1.6, 2.6, 2.6},
	}
	tr := NewBoxTree[int, [4]float64, boxAdaptor](2, c, boxAdaptor{},
		WithWorldBox(Box{Min: Point{0, 0}, Max: Point{4, 4}}),
		WithMaxDepth(2))
	var pairs [][2]int
	tr.CollisionDetection(func(a, b int) {
		pairs = append(pairs, [2]int{a, b})
	})
	assert.Len(t, pairs, 1)
}

func TestCollisionDetectionBetweenTwoBoxTrees(t *testing.T) {
	c1 := SliceContainer[[4]float64]{{0, 0, 2, 2}}
	c2 := SliceContainer[[4]float64]{{1, 1, 3, 3}, {8, 8, 9, 9}}
	tr1 := NewBoxTree[int, [4]float64, boxAdaptor](2, c1, boxAdaptor{}, WithWorldBox(Box{Min: Point{0, 0}, Max: Point{10, 10}}))
	tr2 := NewBoxTree[int, [4]float64, boxAdaptor](2, c2, boxAdaptor{}, WithWorldBox(Box{Min: Point{0, 0}, Max: Point{10, 10}}))
	var pairs [][2]int
	CollisionDetectionWith(tr1, tr2, func(a, b int) {
		pairs = append(pairs, [2]int{a, b})
	})
	assert.Equal(t, [][2]int{{0, 0}}, pairs)
}
