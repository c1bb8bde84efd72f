// Copyright 2023 The orthotree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package orthotree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	const dim, maxDepth = 3, 10
	cases := [][]gridID{
		{0, 0, 0},
		{1023, 0, 1},
		{5, 777, 1023},
		{1023, 1023, 1023},
	}
	for _, g := range cases {
		loc := encode(g, dim, maxDepth)
		got := decode(loc, dim, maxDepth)
		assert.Equal(t, g, got)
	}
}

func TestNodeHashRootIsOne(t *testing.T) {
	k := nodeHash(0, zeroKey, 2, 8)
	assert.Equal(t, rootKey, k)
}

func TestParentChildRoundTrip(t *testing.T) {
	const dim = 2
	parent := nodeHash(1, encode([]gridID{2, 3}, dim, 4), dim, 4)
	for cid := uint64(0); cid < (1 << dim); cid++ {
		child := childKey(parent, cid, dim)
		assert.Equal(t, parent, parentKey(child, dim))
		assert.Equal(t, cid, childID(child, dim))
	}
}

func TestKeyDepth(t *testing.T) {
	const dim = 2
	assert.Equal(t, 0, keyDepth(rootKey, dim))
	k := nodeHash(3, encode([]gridID{5, 6}, dim, 8), dim, 8)
	assert.Equal(t, 3, keyDepth(k, dim))
}

func TestRangeLocationMetaDataFitsAtMaxDepth(t *testing.T) {
	const dim, maxDepth = 2, 4
	gmin := []gridID{4, 4}
	gmax := []gridID{4, 4}
	m := rangeLocationMetaData(gmin, gmax, dim, maxDepth)
	assert.Equal(t, maxDepth, m.depth)
}

func TestRangeLocationMetaDataStraddles(t *testing.T) {
	const dim, maxDepth = 2, 3
	// A box spanning grid ids 3..4 along x straddles the midpoint of the
	// whole space at the root's children, so it cannot fit deeper than
	// level 0 along that dimension.
	gmin := []gridID{3, 0}
	gmax := []gridID{4, 1}
	m := rangeLocationMetaData(gmin, gmax, dim, maxDepth)
	assert.Less(t, m.depth, maxDepth)
	assert.NotZero(t, m.touchedDims&1, "x dimension must be marked touched")
}

func TestRangeLocationMetaOrdering(t *testing.T) {
	const dim, maxDepth = 2, 4
	a := rangeLocationMetaData([]gridID{0, 0}, []gridID{0, 0}, dim, maxDepth)
	b := rangeLocationMetaData([]gridID{15, 15}, []gridID{15, 15}, dim, maxDepth)
	assert.True(t, a.less(b))
	assert.False(t, b.less(a))
}

func TestMaxTheoreticalDepth(t *testing.T) {
	assert.Equal(t, 63, maxTheoreticalDepth(1))
	assert.Equal(t, 4, maxTheoreticalDepth(20))
}
