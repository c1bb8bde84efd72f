// Copyright 2023 The orthotree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package orthotree

// expandTouchedChildren enumerates every ChildID reachable from lower
// by flipping some subset of the bits named in touched, per spec.md
// §4.8's description of a box straddling its depth-node's midplane in
// more than one dimension: with k touched dimensions there are 2^k
// children the box overlaps.
func expandTouchedChildren(lower, touched uint64, dim int) []uint64 {
	var touchedBits []int
	for d := 0; d < dim; d++ {
		if touched&(uint64(1)<<uint(d)) != 0 {
			touchedBits = append(touchedBits, d)
		}
	}
	n := 1 << len(touchedBits)
	out := make([]uint64, n)
	for mask := 0; mask < n; mask++ {
		v := lower
		for i, d := range touchedBits {
			if mask&(1<<i) != 0 {
				v |= uint64(1) << uint(d)
			} else {
				v &^= uint64(1) << uint(d)
			}
		}
		out[mask] = v
	}
	return out
}

// insertBox places id according to meta, either at the single node
// where it fits exactly (touchedDims == 0), anchored at its straddling
// parent (splitParentEntities == false), or replicated across every
// child it touches (splitParentEntities == true), per spec.md §4.8.
func (b *base[EID]) insertBox(meta rangeLocationMeta, id EID) {
	parent := nodeHash(meta.depth, meta.locID, b.dim, b.maxDepth)
	if meta.touchedDims == 0 {
		b.appendEntity(parent, id)
		return
	}
	if !b.splitParentEntities {
		b.appendEntity(parent, id)
		return
	}
	b.ensureNode(parent)
	for _, c := range expandTouchedChildren(meta.lowerSegment, meta.touchedDims, b.dim) {
		b.nodes[parent].children.add(c)
		b.appendEntity(childKey(parent, c, b.dim), id)
	}
}

// eraseBox removes id from every node insertBox would have placed it
// in, per spec.md §4.9 "Erase by id and geometry, box variant".
func (b *base[EID]) eraseBox(meta rangeLocationMeta, id EID) bool {
	parent := nodeHash(meta.depth, meta.locID, b.dim, b.maxDepth)
	if meta.touchedDims == 0 || !b.splitParentEntities {
		found := b.removeEntityAt(parent, id)
		if found {
			b.collectGC(parent)
		}
		return found
	}
	found := false
	for _, c := range expandTouchedChildren(meta.lowerSegment, meta.touchedDims, b.dim) {
		ck := childKey(parent, c, b.dim)
		if b.removeEntityAt(ck, id) {
			found = true
			b.collectGC(ck)
		}
	}
	return found
}
