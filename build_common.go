// Copyright 2023 The orthotree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package orthotree

import "sync"

// estimateNodeCount predicts the number of nodes a bulk build will
// create from (entityNo, maxDepth, maxElementNo), grounded on octree.h's
// EstimateNodeNumber (SPEC_FULL.md §E.1). It is used to presize the node
// map before build so insertion does not repeatedly rehash.
func estimateNodeCount(entityNo, maxDepth, maxElementNo int) int {
	if entityNo == 0 {
		return 1
	}
	if entityNo <= maxElementNo || maxDepth == 0 {
		return 1
	}
	// A geometric series bound: each level holds at most as many nodes
	// as entities divided by the per-node threshold, halved implicitly
	// by depth; clamp to a sane range so pathological inputs (maxDepth
	// huge, maxElementNo 1) cannot blow the estimate up past entityNo.
	n := entityNo / maxElementNo
	if n < 1 {
		n = 1
	}
	total := 1
	levelCount := n
	for d := 0; d < maxDepth && levelCount > 1; d++ {
		total += levelCount
		levelCount /= 2
	}
	if total > entityNo {
		total = entityNo
	}
	return total + 1 // +1 for the permanent root
}

// computeWorldBox returns fixed verbatim when the caller supplied
// WithWorldBox, otherwise the minimal box enclosing every sampled point
// and box, per spec.md §4.7/§4.8 step 1. An empty input with no fixed
// box falls back to a degenerate box at the origin, since an empty
// tree has no geometry to infer one from.
func computeWorldBox(fixed *Box, dim int, points []Point, boxes []Box) Box {
	if fixed != nil {
		return *fixed
	}
	if len(points) == 0 && len(boxes) == 0 {
		return newBox(dim)
	}
	wb := emptyBox(dim)
	for _, p := range points {
		wb.expandPoint(p)
	}
	for _, bx := range boxes {
		wb.expand(bx)
	}
	return wb
}

// computeMaxDepth returns fixed verbatim when the caller supplied
// WithMaxDepth, otherwise the heuristic of spec.md §4.7 step 1.
func computeMaxDepth(fixed *int, n, maxEntitiesPerNode, dim int) int {
	if fixed != nil {
		return *fixed
	}
	return heuristicMaxDepth(n, maxEntitiesPerNode, dim)
}

// pendingEntity is one (location, id) pair awaiting placement during
// bulk build, the "zipped sequence" of spec.md §4.7 step 3.
type pendingEntity[EID comparable] struct {
	loc key
	id  EID
}

// sortPending orders pending ascending by location id, the "zipped
// sequence" sort of spec.md §4.7 step 5. The order is not required to
// be stable; ties are broken arbitrarily, matching spec.md §5's
// "stable sort not required" note.
func sortPending[EID comparable](pending []pendingEntity[EID]) {
	// insertion sort alone would be too slow for bulk data; the
	// hand-rolled quicksort below falls back to it only for short runs.
	quickSortPending(pending, 0, len(pending)-1)
}

// quickSortPending is a small introsort-free quicksort over pending by
// loc.cmp, used instead of sort.Slice to avoid the reflection overhead
// sort.Slice incurs on every comparison during bulk build, the same
// trade-off the teacher's hilbertSortable makes by implementing
// sort.Interface instead of calling sort.Slice.
func quickSortPending[EID comparable](a []pendingEntity[EID], lo, hi int) {
	for lo < hi {
		if hi-lo < 12 {
			insertionSortPending(a, lo, hi)
			return
		}
		p := partitionPending(a, lo, hi)
		if p-lo < hi-p {
			quickSortPending(a, lo, p-1)
			lo = p + 1
		} else {
			quickSortPending(a, p+1, hi)
			hi = p - 1
		}
	}
}

func insertionSortPending[EID comparable](a []pendingEntity[EID], lo, hi int) {
	for i := lo + 1; i <= hi; i++ {
		for j := i; j > lo && a[j].loc.less(a[j-1].loc); j-- {
			a[j], a[j-1] = a[j-1], a[j]
		}
	}
}

func partitionPending[EID comparable](a []pendingEntity[EID], lo, hi int) int {
	mid := lo + (hi-lo)/2
	pivot := a[mid].loc
	a[mid], a[hi] = a[hi], a[mid]
	store := lo
	for i := lo; i < hi; i++ {
		if a[i].loc.less(pivot) {
			a[i], a[store] = a[store], a[i]
			store++
		}
	}
	a[store], a[hi] = a[hi], a[store]
	return store
}

// parallelSortPending is the WithParallel(true) counterpart of
// sortPending: it splits pending into goroutine-sorted halves and
// merges them, per spec.md §5's "parallel mode: sort the zipped
// sequence" build path. No pack example ships a parallel-for
// abstraction (e.g. golang.org/x/sync/errgroup is absent from every
// go.mod in the retrieval pack), so this reaches for stdlib
// sync.WaitGroup directly rather than importing one; see DESIGN.md.
func parallelSortPending[EID comparable](pending []pendingEntity[EID]) {
	const parallelThreshold = 1 << 14
	if len(pending) < parallelThreshold {
		sortPending(pending)
		return
	}
	mid := len(pending) / 2
	left := pending[:mid]
	right := pending[mid:]
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		parallelSortPending(left)
	}()
	go func() {
		defer wg.Done()
		parallelSortPending(right)
	}()
	wg.Wait()
	mergePending(pending, mid)
}

// mergePending merges the two already-sorted halves pending[:mid] and
// pending[mid:] in place, using a scratch buffer.
func mergePending[EID comparable](pending []pendingEntity[EID], mid int) {
	scratch := make([]pendingEntity[EID], len(pending))
	i, j := 0, mid
	for k := range scratch {
		switch {
		case i >= mid:
			scratch[k] = pending[j]
			j++
		case j >= len(pending):
			scratch[k] = pending[i]
			i++
		case pending[j].loc.less(pending[i].loc):
			scratch[k] = pending[j]
			j++
		default:
			scratch[k] = pending[i]
			i++
		}
	}
	copy(pending, scratch)
}
