// Copyright 2023 The orthotree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package orthotree

// rangeSearch collects every resident entity whose geometry overlaps
// query or, when containFully is true, is fully contained by it, per
// spec.md §4.10 "Range search". A node whose box does not overlap
// query is pruned along with its whole subtree. Dedup by id is
// required because DO_SPLIT_PARENT_ENTITIES can leave a box entity
// resident at more than one node.
func (b *base[EID]) rangeSearch(query Box, containFully bool, geom func(EID) Box) []EID {
	seen := make(map[EID]struct{})
	var out []EID
	b.VisitNodes(rootKey, func(nodeBox Box) classification {
		if !nodeBox.overlaps(query) {
			return negative
		}
		return intersecting
	}, func(_ key, n *treeNode[EID]) {
		for _, id := range b.arena.view(n.entities) {
			if _, dup := seen[id]; dup {
				continue
			}
			g := geom(id)
			match := query.overlaps(g)
			if containFully {
				match = query.contains(g)
			}
			if match {
				seen[id] = struct{}{}
				out = append(out, id)
			}
		}
	})
	return out
}
