// Copyright 2023 The orthotree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package orthotree

import "container/heap"

// squaredDistanceToBox returns the squared Euclidean distance from p
// to the nearest point of b (0 if p is inside b), the "wall distance"
// spec.md §4.10 prunes nearest-neighbor search with.
func squaredDistanceToBox(p Point, b Box) float64 {
	var s float64
	for d := range p {
		c := p[d]
		if c < b.Min[d] {
			c = b.Min[d]
		} else if c > b.Max[d] {
			c = b.Max[d]
		}
		diff := p[d] - c
		s += diff * diff
	}
	return s
}

// knnNodeItem is one frontier entry in getNearestNeighbors' incremental
// search: a node, and the squared wall distance from the query point to
// that node's box.
type knnNodeItem struct {
	key  key
	dist float64
}

type knnNodeHeap []knnNodeItem

func (h knnNodeHeap) Len() int            { return len(h) }
func (h knnNodeHeap) Less(i, j int) bool  { return h[i].dist < h[j].dist }
func (h knnNodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *knnNodeHeap) Push(x interface{}) { *h = append(*h, x.(knnNodeItem)) }
func (h *knnNodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

type knnResultItem[EID comparable] struct {
	id   EID
	dist float64
}

// knnResultHeap is a bounded max-heap: the root is always the current
// worst (farthest) of the k best candidates seen so far, so a closer
// candidate can replace it in O(log k).
type knnResultHeap[EID comparable] []knnResultItem[EID]

func (h knnResultHeap[EID]) Len() int           { return len(h) }
func (h knnResultHeap[EID]) Less(i, j int) bool { return h[i].dist > h[j].dist }
func (h knnResultHeap[EID]) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *knnResultHeap[EID]) Push(x interface{}) {
	*h = append(*h, x.(knnResultItem[EID]))
}
func (h *knnResultHeap[EID]) Pop() interface{} {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

// getNearestNeighbors returns up to kCount resident entity ids within
// maxDistance of query, nearest first, per spec.md §6's
// GetNearestNeighbors(point, k, maxDistance, container): an incremental
// best-first search over node boxes, ordered by wall distance, bounded
// by a max-heap of the kCount best candidates found so far. maxDistance
// <= 0 means unbounded. An entity is admissible only when its distance
// to query is strictly less than maxDistance, per testable property 8;
// the frontier is pruned as soon as its nearest remaining node is
// farther than maxDistance, or farther than the current worst kept
// candidate once kCount candidates have been found.
func (b *base[EID]) getNearestNeighbors(query Point, kCount int, maxDistance float64, geom func(EID) Box) []EID {
	if kCount <= 0 {
		return nil
	}
	var limitSq float64
	bounded := maxDistance > 0
	if bounded {
		limitSq = maxDistance * maxDistance
	}
	rootDist := squaredDistanceToBox(query, b.worldBox)
	if bounded && rootDist >= limitSq {
		return nil
	}
	frontier := &knnNodeHeap{{key: rootKey, dist: rootDist}}
	results := &knnResultHeap[EID]{}
	seen := make(map[EID]struct{})
	for frontier.Len() > 0 {
		item := heap.Pop(frontier).(knnNodeItem)
		if bounded && item.dist >= limitSq {
			break
		}
		if results.Len() >= kCount && item.dist > (*results)[0].dist {
			break
		}
		n, ok := b.nodes[item.key]
		if !ok {
			continue
		}
		for _, id := range b.arena.view(n.entities) {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			d := squaredDistanceToBox(query, geom(id))
			if bounded && d >= limitSq {
				continue
			}
			switch {
			case results.Len() < kCount:
				heap.Push(results, knnResultItem[EID]{id: id, dist: d})
			case d < (*results)[0].dist:
				heap.Pop(results)
				heap.Push(results, knnResultItem[EID]{id: id, dist: d})
			}
		}
		n.children.forEach(func(c uint64) {
			ck := childKey(item.key, c, b.dim)
			cd := squaredDistanceToBox(query, b.nodeBox(ck))
			if bounded && cd >= limitSq {
				return
			}
			heap.Push(frontier, knnNodeItem{key: ck, dist: cd})
		})
	}
	out := make([]EID, results.Len())
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(results).(knnResultItem[EID]).id
	}
	return out
}
