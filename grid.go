// Copyright 2023 The orthotree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package orthotree

import "math"

// gridID is a per-dimension integer raster coordinate in [0, R), where
// R = 2^maxDepth (spec.md §3 "GridID").
type gridID = uint64

// gridSpace maps world-space coordinates to per-dimension integer grid
// cell ids at the tree's maximum depth (spec.md §4.3).
type gridSpace struct {
	dim          int
	maxDepth     int
	worldBox     Box
	rasterFactor Point
	// r is 2^maxDepth, the raster resolution along every dimension.
	r uint64
}

func newGridSpace(dim, maxDepth int, worldBox Box) gridSpace {
	g := gridSpace{
		dim:          dim,
		maxDepth:     maxDepth,
		worldBox:     worldBox,
		rasterFactor: newPoint(dim),
		r:            uint64(1) << uint(maxDepth),
	}
	sz := worldBox.size()
	for d := 0; d < dim; d++ {
		if sz[d] == 0 {
			// Flat dimension: every coordinate maps to cell 0.
			g.rasterFactor[d] = 1.0
		} else {
			g.rasterFactor[d] = float64(g.r) / sz[d]
		}
	}
	return g
}

// pointGridIDs rasterizes a point into a D-tuple of grid ids. Out-of-
// world coordinates are clamped into [0, R) when handleOutOfTree is
// true; otherwise the second return value is false and the caller
// (§7 "Out-of-world geometry") must reject the operation.
func (g gridSpace) pointGridIDs(p Point, handleOutOfTree bool) ([]gridID, bool) {
	ids := make([]gridID, g.dim)
	ok := true
	for d := 0; d < g.dim; d++ {
		if p[d] < g.worldBox.Min[d] || p[d] > g.worldBox.Max[d] {
			if !handleOutOfTree {
				ok = false
			}
		}
		ids[d] = g.rasterize(p[d], d)
	}
	return ids, ok
}

// rasterize converts a single coordinate in dimension d to a clamped
// grid id in [0, R).
func (g gridSpace) rasterize(c float64, d int) gridID {
	v := (c - g.worldBox.Min[d]) * g.rasterFactor[d]
	id := int64(math.Floor(v))
	max := int64(g.r) - 1
	if id < 0 {
		id = 0
	} else if id > max {
		id = max
	}
	return gridID(id)
}

// boxGridIDs rasterizes a box into its lower and upper grid-id corners.
// Per spec.md §4.3, the max corner is decremented by one cell when it
// lands exactly on a cell boundary, so that two boxes meeting edge to
// edge are rasterized into disjoint cells.
func (g gridSpace) boxGridIDs(b Box, handleOutOfTree bool) (min, max []gridID, ok bool) {
	min = make([]gridID, g.dim)
	max = make([]gridID, g.dim)
	ok = true
	for d := 0; d < g.dim; d++ {
		if b.Min[d] < g.worldBox.Min[d] || b.Max[d] > g.worldBox.Max[d] {
			if !handleOutOfTree {
				ok = false
			}
		}
		min[d] = g.rasterize(b.Min[d], d)
		hi := (b.Max[d] - g.worldBox.Min[d]) * g.rasterFactor[d]
		hiID := int64(math.Floor(hi))
		if hi == math.Floor(hi) && hiID > 0 {
			hiID--
		}
		maxCell := int64(g.r) - 1
		if hiID < 0 {
			hiID = 0
		} else if hiID > maxCell {
			hiID = maxCell
		}
		max[d] = gridID(hiID)
	}
	return
}

// cellCenter returns the world-space midpoint of the cell of size
// 2^centerLevel anchored at id, in dimension d (spec.md §4.3
// "cellCenter").
func (g gridSpace) cellCenter(id gridID, centerLevel, d int) float64 {
	cellSize := float64(uint64(1)<<uint(centerLevel)) / float64(g.r) * (g.worldBox.Max[d] - g.worldBox.Min[d])
	lo := g.worldBox.Min[d] + float64(id)/float64(g.r)*(g.worldBox.Max[d]-g.worldBox.Min[d])
	return lo + cellSize/2
}
