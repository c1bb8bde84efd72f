// Copyright 2023 The orthotree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package orthotree

// pointBuildFrame is one pending node on the iterative DFS stack used
// by bulkBuildPoint: the node's key, the [lo,hi) range of the sorted
// pending slice it owns, and its depth.
type pointBuildFrame struct {
	key    key
	lo, hi int
	depth  int
}

// bulkBuildPoint constructs the tree from a sorted pending sequence,
// per spec.md §4.7 steps 6-8: commit a leaf when the range fits M or
// maxDepth is reached, otherwise split the sorted range into
// contiguous per-child runs (a side effect of sorting on the full
// LocationID, which already groups every level's children together)
// and push one frame per run.
func (b *base[EID]) bulkBuildPoint(pending []pendingEntity[EID]) {
	if len(pending) == 0 {
		return
	}
	stack := []pointBuildFrame{{key: rootKey, lo: 0, hi: len(pending), depth: 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := b.ensureNode(f.key)
		if f.hi-f.lo <= b.maxEntitiesPerNode || f.depth == b.maxDepth {
			seg := b.arena.alloc(f.hi - f.lo)
			view := b.arena.view(seg)
			for i := f.lo; i < f.hi; i++ {
				view[i-f.lo] = pending[i].id
			}
			n.entities = seg
			continue
		}
		level := b.maxDepth - f.depth
		i := f.lo
		for i < f.hi {
			c := childIDAtLevel(pending[i].loc, level, b.dim)
			j := i + 1
			for j < f.hi && childIDAtLevel(pending[j].loc, level, b.dim) == c {
				j++
			}
			n.children.add(c)
			stack = append(stack, pointBuildFrame{key: childKey(f.key, c, b.dim), lo: i, hi: j, depth: f.depth + 1})
			i = j
		}
	}
}

// collectPointPending rasterizes every entity in container into a
// pending (LocationID, id) pair, per spec.md §4.7 steps 2-4. Entities
// outside the world box are dropped unless the tree handles out-of-
// tree geometry, logging at Warn level when verbose.
func collectPointPending[EID comparable, P any, A PointAdaptor[P]](b *base[EID], container PointContainer[EID, P], adaptor A) []pendingEntity[EID] {
	var pending []pendingEntity[EID]
	container.ForEach(func(id EID, p P) bool {
		pt := adaptor.ToPoint(p)
		ids, ok := b.grid.pointGridIDs(pt, b.handleOutOfTree)
		if !ok {
			if b.verbose {
				log.WithField("id", id).Warn("orthotree: point outside world box, skipped")
			}
			return true
		}
		loc := encode(ids, b.dim, b.maxDepth)
		pending = append(pending, pendingEntity[EID]{loc: loc, id: id})
		return true
	})
	return pending
}
