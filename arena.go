// Copyright 2023 The orthotree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package orthotree

import "sort"

// memorySegment is the handle a Node holds for its entity id slice,
// per spec.md §3 "Node" / §4.5. It names a page and an offset/length
// range within that page's backing array; it carries no data itself.
type memorySegment struct {
	pageID int
	offset int
	length int
}

// freeRegion is an unused [offset, offset+length) range within the main
// page's backing array.
type freeRegion struct {
	offset, length int
}

// entityArena is the paged arena of spec.md §4.5: page 0 ("the main
// page") is pre-sized at construction time from the caller's
// EstimatedEntityNo and serves most allocations out of an
// ascending-by-capacity, binary-searched free list; allocations that
// cannot be satisfied from the main page's free list become their own
// dedicated satellite page. It is not safe for concurrent use; bulk
// build's parallel stages only mutate it from the serial finalization
// step, per spec.md §5.
type entityArena[EID comparable] struct {
	pages [][]EID
	// free is page 0's free list, kept sorted ascending by length so
	// smallest-fit allocation can binary search it with
	// sort.Search/partition-point.
	free []freeRegion
}

func newEntityArena[EID comparable](estimatedEntityNo int) *entityArena[EID] {
	if estimatedEntityNo < 1 {
		estimatedEntityNo = 1
	}
	a := &entityArena[EID]{
		pages: make([][]EID, 1, 8),
	}
	a.pages[0] = make([]EID, estimatedEntityNo)
	a.free = []freeRegion{{offset: 0, length: estimatedEntityNo}}
	return a
}

// view returns the live slice a segment names.
func (a *entityArena[EID]) view(seg memorySegment) []EID {
	if seg.length == 0 {
		return nil
	}
	return a.pages[seg.pageID][seg.offset : seg.offset+seg.length]
}

// alloc reserves a new segment of length n, preferring a smallest-fit
// region of the main page's free list and falling back to a dedicated
// satellite page when no region is large enough.
func (a *entityArena[EID]) alloc(n int) memorySegment {
	if n == 0 {
		return memorySegment{}
	}
	if i := a.findFit(n); i >= 0 {
		return a.carve(i, n)
	}
	pageID := len(a.pages)
	a.pages = append(a.pages, make([]EID, n))
	return memorySegment{pageID: pageID, offset: 0, length: n}
}

// findFit returns the index in a.free of the smallest region whose
// length is >= n, or -1 if none qualifies. a.free is sorted ascending
// by length, so this is a partition-point binary search.
func (a *entityArena[EID]) findFit(n int) int {
	i := sort.Search(len(a.free), func(i int) bool {
		return a.free[i].length >= n
	})
	if i == len(a.free) {
		return -1
	}
	return i
}

// carve removes n elements from free region i, re-inserting whatever
// remains of that region in sorted position, and returns the carved
// segment.
func (a *entityArena[EID]) carve(i, n int) memorySegment {
	r := a.free[i]
	a.free = append(a.free[:i], a.free[i+1:]...)
	seg := memorySegment{pageID: 0, offset: r.offset, length: n}
	if remaining := r.length - n; remaining > 0 {
		a.insertFree(freeRegion{offset: r.offset + n, length: remaining})
	}
	return seg
}

// insertFree inserts r into a.free in ascending-length order.
func (a *entityArena[EID]) insertFree(r freeRegion) {
	i := sort.Search(len(a.free), func(i int) bool {
		return a.free[i].length >= r.length
	})
	a.free = append(a.free, freeRegion{})
	copy(a.free[i+1:], a.free[i:])
	a.free[i] = r
}

// release returns seg to the arena. Main-page segments return to the
// free list and are coalesced with any physically adjoining free
// region; satellite pages are simply abandoned (per spec.md §4.5,
// "Satellite pages are per-allocation").
func (a *entityArena[EID]) release(seg memorySegment) {
	if seg.length == 0 || seg.pageID != 0 {
		return
	}
	r := freeRegion{offset: seg.offset, length: seg.length}
	// Coalesce with a region that ends exactly where r begins, and one
	// that begins exactly where r ends.
	for {
		merged := false
		for i, f := range a.free {
			if f.offset+f.length == r.offset {
				r.offset = f.offset
				r.length += f.length
				a.free = append(a.free[:i], a.free[i+1:]...)
				merged = true
				break
			}
			if r.offset+r.length == f.offset {
				r.length += f.length
				a.free = append(a.free[:i], a.free[i+1:]...)
				merged = true
				break
			}
		}
		if !merged {
			break
		}
	}
	a.insertFree(r)
}

// grow extends seg by delta elements, preserving its content, and
// returns the (possibly relocated) resulting segment.
func (a *entityArena[EID]) grow(seg memorySegment, delta int) memorySegment {
	if delta <= 0 {
		return seg
	}
	if seg.length == 0 {
		return a.alloc(delta)
	}
	if seg.pageID == 0 {
		// Try to extend in place: is there a free region immediately
		// following seg with enough capacity?
		for i, f := range a.free {
			if f.offset == seg.offset+seg.length && f.length >= delta {
				a.free = append(a.free[:i], a.free[i+1:]...)
				if remaining := f.length - delta; remaining > 0 {
					a.insertFree(freeRegion{offset: f.offset + delta, length: remaining})
				}
				return memorySegment{pageID: 0, offset: seg.offset, length: seg.length + delta}
			}
		}
	}
	newSeg := a.alloc(seg.length + delta)
	copy(a.view(newSeg), a.view(seg))
	a.release(seg)
	return newSeg
}

// shrink trims seg by delta elements from the tail, returning the freed
// tail to the main page's free list (satellite pages just shrink their
// logical length, leaving dead space behind them).
func (a *entityArena[EID]) shrink(seg memorySegment, delta int) memorySegment {
	if delta <= 0 || delta > seg.length {
		return seg
	}
	newLen := seg.length - delta
	if seg.pageID == 0 {
		a.insertFree(freeRegion{offset: seg.offset + newLen, length: delta})
	}
	return memorySegment{pageID: seg.pageID, offset: seg.offset, length: newLen}
}
