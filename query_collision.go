// Copyright 2023 The orthotree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package orthotree

// pairSeen records which unordered pairs of ids have already been
// reported, so that a box replicated into several nodes by
// DO_SPLIT_PARENT_ENTITIES (box_edit.go's expandTouchedChildren) is
// reported at most once per colliding pair, per spec.md's S4 scenario
// and testable property 9.
type pairSeen[EID comparable] map[EID]map[EID]struct{}

func (s pairSeen[EID]) markAndCheck(a, b EID) bool {
	if inner, ok := s[a]; ok {
		if _, dup := inner[b]; dup {
			return false
		}
	}
	if s[a] == nil {
		s[a] = make(map[EID]struct{})
	}
	s[a][b] = struct{}{}
	if s[b] == nil {
		s[b] = make(map[EID]struct{})
	}
	s[b][a] = struct{}{}
	return true
}

// sweepAndPruneAxis reports every overlapping pair among ids using a
// sweep along axis 0: sort by minimum coordinate, then for each id scan
// forward only while the next id's minimum coordinate still falls
// before the current id's maximum, per spec.md §1's "pairwise collision
// with sweep-and-prune". The sort is an insertion sort (matching
// build_common.go's small-n sort idiom), quadratic in len(ids). len(ids)
// is one node's entity count, which maxEntitiesPerNode does not bound:
// box-tree nodes and point-tree leaves at maxDepth hold any number.
func sweepAndPruneAxis[EID comparable](ids []EID, geom func(EID) Box, report func(EID, EID)) {
	order := make([]EID, len(ids))
	copy(order, ids)
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && geom(order[j]).Min[0] < geom(order[j-1]).Min[0]; j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}
	for i := 0; i < len(order); i++ {
		bi := geom(order[i])
		for j := i + 1; j < len(order); j++ {
			bj := geom(order[j])
			if bj.Min[0] > bi.Max[0] {
				break
			}
			if bi.overlaps(bj) {
				report(order[i], order[j])
			}
		}
	}
}

// collisionDetectionSelf reports every pair of distinct resident
// entities whose geometry overlaps, per spec.md §4.10 "Collision
// detection, single tree". Because grid cells partition the world box
// disjointly, two entities can only overlap if they are resident at the
// same node or one is resident at an ancestor of the other's node
// (the anchored-box case when DO_SPLIT_PARENT_ENTITIES is off); a
// sweep down the tree carrying the chain of ancestor-resident entities
// finds every such pair. pairSeen collapses the duplicate reports that
// would otherwise occur when a replicated box shares more than one
// child with another replicated box.
func (b *base[EID]) collisionDetectionSelf(geom func(EID) Box, report func(EID, EID)) {
	seen := make(pairSeen[EID])
	var walk func(k key, ancestors []EID)
	walk = func(k key, ancestors []EID) {
		n, ok := b.nodes[k]
		if !ok {
			return
		}
		here := b.arena.view(n.entities)
		sweepAndPruneAxis(here, geom, func(x, y EID) {
			if seen.markAndCheck(x, y) {
				report(x, y)
			}
		})
		for _, a := range ancestors {
			ga := geom(a)
			for _, h := range here {
				if ga.overlaps(geom(h)) && seen.markAndCheck(a, h) {
					report(a, h)
				}
			}
		}
		if len(here) > 0 {
			next := make([]EID, len(ancestors)+len(here))
			copy(next, ancestors)
			copy(next[len(ancestors):], here)
			ancestors = next
		}
		n.children.forEach(func(c uint64) {
			walk(childKey(k, c, b.dim), ancestors)
		})
	}
	walk(rootKey, nil)
}

// collisionDetectionTwoTrees reports every pair (entity of tree 1,
// entity of tree 2) whose geometry overlaps, per spec.md §4.10
// "Collision detection, two trees". It is a standard dual-tree
// traversal: prune as soon as two node boxes stop overlapping, and
// otherwise descend one side at a time (the shallower node) so that
// every pair of resident-node boxes is visited exactly once. pairSeen
// still collapses duplicate reports of the same (entity1, entity2) pair
// when a replicated box on either side is resident at more than one
// node overlapping the other side.
func collisionDetectionTwoTrees[EID1 comparable, EID2 comparable](
	b1 *base[EID1], geom1 func(EID1) Box,
	b2 *base[EID2], geom2 func(EID2) Box,
	report func(EID1, EID2),
) {
	seen := make(map[EID1]map[EID2]struct{})
	var walk func(k1, k2 key)
	walk = func(k1, k2 key) {
		n1, ok1 := b1.nodes[k1]
		n2, ok2 := b2.nodes[k2]
		if !ok1 || !ok2 {
			return
		}
		if !b1.nodeBox(k1).overlaps(b2.nodeBox(k2)) {
			return
		}
		e1 := b1.arena.view(n1.entities)
		e2 := b2.arena.view(n2.entities)
		for _, a := range e1 {
			ga := geom1(a)
			for _, c := range e2 {
				if !ga.overlaps(geom2(c)) {
					continue
				}
				inner, ok := seen[a]
				if ok {
					if _, dup := inner[c]; dup {
						continue
					}
				} else {
					inner = make(map[EID2]struct{})
					seen[a] = inner
				}
				inner[c] = struct{}{}
				report(a, c)
			}
		}
		if n1.children.isEmpty() && n2.children.isEmpty() {
			return
		}
		d1 := keyDepth(k1, b1.dim)
		d2 := keyDepth(k2, b2.dim)
		if n2.children.isEmpty() || (!n1.children.isEmpty() && d1 <= d2) {
			n1.children.forEach(func(c uint64) {
				walk(childKey(k1, c, b1.dim), k2)
			})
			return
		}
		n2.children.forEach(func(c uint64) {
			walk(k1, childKey(k2, c, b2.dim))
		})
	}
	walk(rootKey, rootKey)
}
