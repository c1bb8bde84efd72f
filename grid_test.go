// Copyright 2023 The orthotree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package orthotree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewGridSpaceFlatDimension(t *testing.T) {
	// A world box flat along dimension 1 (size 0) must not divide by
	// zero when computing rasterFactor; every coordinate along that
	// dimension rasterizes to cell 0, per grid.go's "flat dimension"
	// branch.
	g := newGridSpace(2, 3, Box{Min: Point{0, 5}, Max: Point{10, 5}})
	assert.Equal(t, 1.0, g.rasterFactor[1])

	ids, ok := g.pointGridIDs(Point{3, 5}, false)
	assert.True(t, ok)
	assert.Equal(t, gridID(0), ids[1])

	ids, ok = g.pointGridIDs(Point{9, 5}, false)
	assert.True(t, ok)
	assert.Equal(t, gridID(0), ids[1])
}

func TestGridSpacePointGridIDsOutOfWorld(t *testing.T) {
	g := newGridSpace(2, 2, Box{Min: Point{0, 0}, Max: Point{4, 4}})
	_, ok := g.pointGridIDs(Point{10, 10}, false)
	assert.False(t, ok)
	ids, ok := g.pointGridIDs(Point{10, 10}, true)
	assert.True(t, ok)
	assert.Equal(t, gridID(3), ids[0])
	assert.Equal(t, gridID(3), ids[1])
}

func TestGridSpaceBoxGridIDsBoundarySnap(t *testing.T) {
	g := newGridSpace(1, 2, Box{Min: Point{0}, Max: Point{4}})
	// A box whose max lands exactly on a cell boundary decrements into
	// the lower cell, so two boxes meeting edge to edge land in
	// disjoint cells.
	min, max, ok := g.boxGridIDs(Box{Min: Point{0}, Max: Point{1}}, false)
	assert.True(t, ok)
	assert.Equal(t, gridID(0), min[0])
	assert.Equal(t, gridID(0), max[0])

	min2, _, ok := g.boxGridIDs(Box{Min: Point{1}, Max: Point{2}}, false)
	assert.True(t, ok)
	assert.Equal(t, gridID(1), min2[0])
}
