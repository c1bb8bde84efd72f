// Copyright 2023 The orthotree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package orthotree

// rootKey is the key of the tree's permanent root node (spec.md §3
// "The root has key 1").
var rootKey = keyFromUint64(1)

// maxTheoreticalDepth returns the deepest maxDepth the representation
// can support for a given dimension, per spec.md §4.4:
//   - dim < 15: keys must fit the 63 payload bits available below the
//     sentinel bit of a 64-bit NodeID (kept as the ceiling here even
//     though this Go port stores every key in a wider array — the
//     ceiling exists to bound the branching factor's growth, not
//     merely to fit a machine word).
//   - dim >= 15: capped at MAX_NONLINEAR_DEPTH.
func maxTheoreticalDepth(dim int) int {
	if dim < 15 {
		return 63 / dim
	}
	return maxNonLinearDepth
}

// maxNonLinearDepth is MAX_NONLINEAR_DEPTH from spec.md §3.
const maxNonLinearDepth = 4

// encode interleaves the bits of a D-tuple of grid ids into a single
// LocationID, per spec.md §4.4 "Encoding". Bit i of gridIDs[d] lands at
// output bit position i*dim+d; this is the direct generalization of the
// classic 2D/3D "Part1By1"/"Part1By2" bit-spread to arbitrary D. A
// PDEP-based or per-width fast path (spec.md §9) is not implemented:
// this is a pure performance optimization with no observable behavior
// difference.
func encode(gridIDs []gridID, dim, maxDepth int) key {
	var out key
	for d := 0; d < dim; d++ {
		v := gridIDs[d]
		for i := 0; i < maxDepth; i++ {
			if (v>>uint(i))&1 != 0 {
				out = out.setBit(i*dim + d)
			}
		}
	}
	return out
}

// decode reverses encode, recovering the D-tuple of grid ids implied by
// a LocationID at the given maxDepth resolution.
func decode(loc key, dim, maxDepth int) []gridID {
	out := make([]gridID, dim)
	for d := 0; d < dim; d++ {
		var v uint64
		for i := 0; i < maxDepth; i++ {
			if loc.bit(i*dim+d) != 0 {
				v |= uint64(1) << uint(i)
			}
		}
		out[d] = v
	}
	return out
}

// nodeHash computes a NodeID from a depth and a LocationID expressed at
// maxDepth resolution, per spec.md §4.4:
//
//	hash(depth, locID) = (1 << (depth·D)) | (locID >> ((maxDepth - depth)·D))
func nodeHash(depth int, locID key, dim, maxDepth int) key {
	prefix := locID.shr((maxDepth - depth) * dim)
	return prefix.setBit(depth * dim)
}

// parentKey returns the NodeID of k's parent: k >> D.
func parentKey(k key, dim int) key {
	return k.shr(dim)
}

// keyDepth recovers the depth encoded in a NodeID: (bit_width(k)-1)/D.
func keyDepth(k key, dim int) int {
	bl := k.bitLen()
	if bl == 0 {
		return 0
	}
	return (bl - 1) / dim
}

// childID extracts the least-significant D bits of a NodeID, the
// ChildID of the segment k occupies within its parent.
func childID(k key, dim int) uint64 {
	return k.bits(0, dim)
}

// childIDAtLevel extracts the ChildID a LocationID (at maxDepth
// resolution) occupies at a given 1-based level counted from the leaf.
func childIDAtLevel(locID key, level, dim int) uint64 {
	return locID.bits((level-1)*dim, dim)
}

// childKey composes a child's NodeID from its parent's NodeID and its
// ChildID: (parent << D) | childID.
func childKey(parent key, child uint64, dim int) key {
	return parent.shl(dim).or(keyFromUint64(child))
}

// rangeLocationMeta is RangeLocationMetaData from spec.md §3/§4.4: for a
// box, the deepest depth at which it fits in a single cell, the touched
// dimensions flag at that depth, and the child segment id of the box's
// lower corner.
type rangeLocationMeta struct {
	// depth is the deepest level at which the box fits in one node.
	depth int
	// locID is the box's lower-corner LocationID at maxDepth resolution;
	// combined with depth via nodeHash it yields the box's NodeID.
	locID key
	// touchedDims has a set bit in dimension d iff the box straddles the
	// midplane of its depth-node in dimension d.
	touchedDims uint64
	// lowerSegment is the ChildID containing the box's lower corner.
	lowerSegment uint64
}

// rangeLocationMetaData computes rangeLocationMeta for a box given as
// rasterized grid-id corners, per spec.md §4.4 "Range metadata for a
// box".
func rangeLocationMetaData(gridMin, gridMax []gridID, dim, maxDepth int) rangeLocationMeta {
	locMin := encode(gridMin, dim, maxDepth)
	locMax := encode(gridMax, dim, maxDepth)
	diff := locMin.xor(locMax)
	if diff.isZero() {
		return rangeLocationMeta{depth: maxDepth, locID: locMin}
	}
	bl := diff.bitLen()
	levelsFromBottom := (bl + dim - 1) / dim
	shiftAmt := (levelsFromBottom - 1) * dim
	return rangeLocationMeta{
		depth:        maxDepth - levelsFromBottom,
		locID:        locMin,
		touchedDims:  diff.bits(shiftAmt, dim),
		lowerSegment: locMin.bits(shiftAmt, dim),
	}
}

// nodeKeyOf returns the NodeID identified by a rangeLocationMeta.
func (m rangeLocationMeta) nodeKeyOf(dim, maxDepth int) key {
	return nodeHash(m.depth, m.locID, dim, maxDepth)
}

// less orders two rangeLocationMeta values by location id primarily,
// then by depth (deeper first at equal prefix), per spec.md §4.4
// "Ordering".
func (m rangeLocationMeta) less(o rangeLocationMeta) bool {
	if c := m.locID.cmp(o.locID); c != 0 {
		return c < 0
	}
	return m.depth > o.depth
}
