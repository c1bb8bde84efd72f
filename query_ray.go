// Copyright 2023 The orthotree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package orthotree

import (
	"container/heap"
	"math"
)

// rayIntersectedAll collects every resident entity r intersects within
// tol, per spec.md §4.10 "Ray intersection, all hits".
func (b *base[EID]) rayIntersectedAll(r Ray, tol float64, geom func(EID) Box) []EID {
	seen := make(map[EID]struct{})
	var out []EID
	b.VisitNodes(rootKey, func(nodeBox Box) classification {
		if _, hit := rayBoxDistance(r, nodeBox, tol); !hit {
			return negative
		}
		return intersecting
	}, func(_ key, n *treeNode[EID]) {
		for _, id := range b.arena.view(n.entities) {
			if _, dup := seen[id]; dup {
				continue
			}
			if _, hit := rayBoxDistance(r, geom(id), tol); hit {
				seen[id] = struct{}{}
				out = append(out, id)
			}
		}
	})
	return out
}

// rayIntersectedFirst returns the resident entity r hits nearest to its
// origin, per spec.md §4.10 "Ray intersection, first hit": the same
// incremental best-first search as getNearestNeighbors, ordered by each
// node's ray-entry distance instead of wall distance.
func (b *base[EID]) rayIntersectedFirst(r Ray, tol float64, geom func(EID) Box) (EID, bool) {
	frontier := &knnNodeHeap{}
	if d, hit := rayBoxDistance(r, b.worldBox, tol); hit {
		heap.Push(frontier, knnNodeItem{key: rootKey, dist: d})
	}
	var best EID
	bestDist := math.Inf(1)
	found := false
	for frontier.Len() > 0 {
		item := heap.Pop(frontier).(knnNodeItem)
		if found && item.dist > bestDist-tol {
			break
		}
		n, ok := b.nodes[item.key]
		if !ok {
			continue
		}
		for _, id := range b.arena.view(n.entities) {
			if d, hit := rayBoxDistance(r, geom(id), tol); hit && d < bestDist {
				best, bestDist, found = id, d, true
			}
		}
		n.children.forEach(func(c uint64) {
			ck := childKey(item.key, c, b.dim)
			if d, hit := rayBoxDistance(r, b.nodeBox(ck), tol); hit {
				heap.Push(frontier, knnNodeItem{key: ck, dist: d})
			}
		})
	}
	return best, found
}
