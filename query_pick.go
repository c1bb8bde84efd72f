// Copyright 2023 The orthotree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package orthotree

// pickSearch collects every resident entity whose geometry contains p,
// inclusive of the boundary, per spec.md §4.10 "Pick search".
func (b *base[EID]) pickSearch(p Point, geom func(EID) Box) []EID {
	seen := make(map[EID]struct{})
	var out []EID
	b.VisitNodes(rootKey, func(nodeBox Box) classification {
		if !nodeBox.containsPoint(p) {
			return negative
		}
		return intersecting
	}, func(_ key, n *treeNode[EID]) {
		for _, id := range b.arena.view(n.entities) {
			if _, dup := seen[id]; dup {
				continue
			}
			if geom(id).containsPoint(p) {
				seen[id] = struct{}{}
				out = append(out, id)
			}
		}
	})
	return out
}
