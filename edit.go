// Copyright 2023 The orthotree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package orthotree

// ensureNode returns the node at k, creating it and every missing
// ancestor up to the nearest already-resident one, per spec.md §4.9's
// "create-only-one-child" and "full-rebalance" insert paths.
func (b *base[EID]) ensureNode(k key) *treeNode[EID] {
	if n, ok := b.nodes[k]; ok {
		return n
	}
	n := newTreeNode[EID](k, b.dim)
	if b.cachedCenters {
		n.center = b.nodeBox(k).center()
	}
	b.nodes[k] = n
	cur := k
	for cur != rootKey {
		parent := parentKey(cur, b.dim)
		pn, ok := b.nodes[parent]
		if !ok {
			pn = newTreeNode[EID](parent, b.dim)
			if b.cachedCenters {
				pn.center = b.nodeBox(parent).center()
			}
			b.nodes[parent] = pn
		}
		pn.children.add(childID(cur, b.dim))
		if ok {
			break
		}
		cur = parent
	}
	return n
}

// appendEntity adds id to node k's entity segment, creating k (and its
// ancestor chain) if necessary.
func (b *base[EID]) appendEntity(k key, id EID) {
	n := b.ensureNode(k)
	seg := b.arena.grow(n.entities, 1)
	view := b.arena.view(seg)
	view[len(view)-1] = id
	n.entities = seg
}

// removeEntityAt removes id from node k's own entity segment (order is
// not preserved), reporting whether it was found there.
func (b *base[EID]) removeEntityAt(k key, id EID) bool {
	n, ok := b.nodes[k]
	if !ok {
		return false
	}
	view := b.arena.view(n.entities)
	for i, e := range view {
		if e == id {
			last := len(view) - 1
			view[i] = view[last]
			n.entities = b.arena.shrink(n.entities, 1)
			return true
		}
	}
	return false
}

// insertWithoutRebalancing appends id at whatever node is already
// resident along loc's path to the deepest level, never splitting or
// creating new nodes, per spec.md §4.9 "Insert without rebalancing".
func (b *base[EID]) insertWithoutRebalancing(loc key, id EID) {
	k := b.smallestAncestor(nodeHash(b.maxDepth, loc, b.dim, b.maxDepth))
	b.appendEntity(k, id)
}

// insertWithRebalancing walks from the smallest resident ancestor of
// loc's natural leaf toward that leaf, appending id into the first
// under-capacity node it meets; if the node is already at capacity it
// is split into its children and every one of its current occupants
// (plus id) is redistributed by locate, per spec.md §4.9 "Insert with
// rebalancing"'s insert-in-parent / split-to-children / create-only-
// one-child / full-rebalance paths.
func (b *base[EID]) insertWithRebalancing(loc key, id EID, locate func(EID) key) {
	leaf := nodeHash(b.maxDepth, loc, b.dim, b.maxDepth)
	cur := b.smallestAncestor(leaf)
	for {
		n := b.nodes[cur]
		depth := keyDepth(cur, b.dim)
		if depth == b.maxDepth {
			b.appendEntity(cur, id)
			return
		}
		if n.children.isEmpty() {
			occupants := b.arena.view(n.entities)
			if len(occupants) < b.maxEntitiesPerNode {
				b.appendEntity(cur, id)
				return
			}
			all := make([]EID, len(occupants), len(occupants)+1)
			copy(all, occupants)
			all = append(all, id)
			b.arena.release(n.entities)
			n.entities = memorySegment{}
			level := b.maxDepth - depth
			for _, e := range all {
				c := childIDAtLevel(locate(e), level, b.dim)
				n.children.add(c)
				b.appendEntity(childKey(cur, c, b.dim), e)
			}
			return
		}
		level := b.maxDepth - depth
		c := childIDAtLevel(loc, level, b.dim)
		ck := childKey(cur, c, b.dim)
		if !n.children.contains(c) {
			n.children.add(c)
			b.appendEntity(ck, id)
			return
		}
		cur = ck
	}
}

// eraseWithLocation removes id, searching every node along loc's
// natural path from the deepest resident node up to the root, since
// insertWithoutRebalancing may have left id at any ancestor along that
// path. It garbage-collects any node left empty.
func (b *base[EID]) eraseWithLocation(loc key, id EID) bool {
	k := b.smallestAncestor(nodeHash(b.maxDepth, loc, b.dim, b.maxDepth))
	for {
		if b.removeEntityAt(k, id) {
			b.collectGC(k)
			return true
		}
		if k == rootKey {
			return false
		}
		k = parentKey(k, b.dim)
	}
}

// eraseScan removes id wherever it resides, without the benefit of a
// known location, per spec.md §4.9 "Erase by id" when the caller
// cannot supply the entity's geometry. It is the fallback path: O(node
// count) rather than O(depth).
func (b *base[EID]) eraseScan(id EID) bool {
	for k, n := range b.nodes {
		for _, e := range b.arena.view(n.entities) {
			if e == id {
				b.removeEntityAt(k, id)
				b.collectGC(k)
				return true
			}
		}
	}
	return false
}

// updateIndexes rewrites every resident entity id through remap,
// leaving an id untouched when remap's second return is false, per
// spec.md §4.9 "UpdateIndexes" / the DO_UPDATE_ENTITY_IDS policy.
func (b *base[EID]) updateIndexes(remap func(EID) (EID, bool)) {
	for _, n := range b.nodes {
		view := b.arena.view(n.entities)
		for i, e := range view {
			if ne, ok := remap(e); ok {
				view[i] = ne
			}
		}
	}
}
