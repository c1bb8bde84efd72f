// Copyright 2023 The orthotree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package orthotree

import "math"

// base holds everything the node store, arena, builders, edit engine
// and query engine share regardless of whether the tree indexes points
// or boxes: spec.md's "Node + Node Store", "Entity Memory Resource" and
// the supplemented per-depth size cache (SPEC_FULL.md §E.2).
type base[EID comparable] struct {
	dim                 int
	maxDepth            int
	maxEntitiesPerNode  int
	worldBox            Box
	grid                gridSpace
	nodes               nodeStore[EID]
	arena               *entityArena[EID]
	nodeSizes           []Point // nodeSizes[depth] is the cell size at that depth
	splitParentEntities bool
	updateEntityIDs     bool
	handleOutOfTree     bool
	cachedCenters       bool
	verbose             bool
}

// validateConfig enforces spec.md §7's fatal configuration
// preconditions.
func validateConfig(dim, maxDepth, maxEntitiesPerNode int) {
	if dim < 1 || dim > 63 {
		fmtPanic("dimension must be in [1,63], got %d", dim)
	}
	if maxDepth == 0 {
		textPanic("maxDepth must be > 0")
	}
	if mx := maxTheoreticalDepth(dim); maxDepth > mx {
		fmtPanic("maxDepth %d exceeds the theoretical maximum %d for dimension %d", maxDepth, mx, dim)
	}
	if maxEntitiesPerNode == 0 {
		textPanic("maxEntitiesPerNode must be > 0")
	}
}

// heuristicMaxDepth implements spec.md §4.7 step 1's fallback:
// clamp(log2(N/M)/D, 2, MAX_THEORETICAL).
func heuristicMaxDepth(n, m, dim int) int {
	if n <= m {
		return 2
	}
	d := math.Log2(float64(n)/float64(m)) / float64(dim)
	depth := int(d)
	if depth < 2 {
		depth = 2
	}
	if mx := maxTheoreticalDepth(dim); depth > mx {
		depth = mx
	}
	return depth
}

func newBase[EID comparable](dim int, worldBox Box, maxDepth, maxEntitiesPerNode, estimatedEntityNo int, opts options) *base[EID] {
	validateConfig(dim, maxDepth, maxEntitiesPerNode)
	b := &base[EID]{
		dim:                 dim,
		maxDepth:            maxDepth,
		maxEntitiesPerNode:  maxEntitiesPerNode,
		worldBox:            worldBox,
		grid:                newGridSpace(dim, maxDepth, worldBox),
		nodes:               make(nodeStore[EID], estimateNodeCount(estimatedEntityNo, maxDepth, maxEntitiesPerNode)),
		arena:               newEntityArena[EID](estimatedEntityNo),
		splitParentEntities: opts.splitParentEntities,
		updateEntityIDs:     opts.updateEntityIDs,
		handleOutOfTree:     opts.handleOutOfTree,
		cachedCenters:       opts.cachedCenters,
		verbose:             opts.verbose,
	}
	b.buildSizeCache()
	root := newTreeNode[EID](rootKey, dim)
	if b.cachedCenters {
		root.center = b.worldBox.center()
	}
	b.nodes[rootKey] = root
	return b
}

// buildSizeCache precomputes the per-depth cell size, the supplemented
// feature of SPEC_FULL.md §E.2 grounded on octree.h's GetNodeSize.
func (b *base[EID]) buildSizeCache() {
	b.nodeSizes = make([]Point, b.maxDepth+1)
	full := b.worldBox.size()
	for depth := 0; depth <= b.maxDepth; depth++ {
		sz := make(Point, b.dim)
		scale := float64(uint64(1) << uint(depth))
		for d := 0; d < b.dim; d++ {
			sz[d] = full[d] / scale
		}
		b.nodeSizes[depth] = sz
	}
}

// nodeBox returns the world-space box of the node identified by key k,
// computed from the size cache rather than from scratch, per
// SPEC_FULL.md §E.2.
func (b *base[EID]) nodeBox(k key) Box {
	depth := keyDepth(k, b.dim)
	locAtDepth := k.bits(0, depth*b.dim)
	anchors := decode(keyFromUint64(locAtDepth), b.dim, depth)
	box := newBox(b.dim)
	cellSize := b.nodeSizes[depth]
	for d := 0; d < b.dim; d++ {
		box.Min[d] = b.worldBox.Min[d] + float64(anchors[d])*cellSize[d]
		box.Max[d] = box.Min[d] + cellSize[d]
	}
	return box
}

// nodeCenter returns the node's world-space center, either from the
// cache or freshly computed, per spec.md §9's cached-vs-recomputed
// trade.
func (b *base[EID]) nodeCenter(n *treeNode[EID]) Point {
	if n.center != nil {
		return n.center
	}
	return b.nodeBox(n.key).center()
}

// smallestAncestor walks up from candidate until it finds a resident
// node, per octree.h's FindSmallestNodeKey (SPEC_FULL.md §E.3). It
// always terminates at the root, which is permanent for the tree's
// lifetime.
func (b *base[EID]) smallestAncestor(candidate key) key {
	k := candidate
	for {
		if _, ok := b.nodes[k]; ok {
			return k
		}
		if k == rootKey {
			return rootKey
		}
		k = parentKey(k, b.dim)
	}
}

// collectGC removes k and any now-empty-and-childless ancestor chain
// above it, except the root, per spec.md §4.9 "After removal, empty-
// and-childless nodes are garbage-collected upward" and invariant 4.
func (b *base[EID]) collectGC(k key) {
	for k != rootKey {
		n, ok := b.nodes[k]
		if !ok {
			return
		}
		if n.entities.length != 0 || !n.children.isEmpty() {
			return
		}
		b.arena.release(n.entities)
		delete(b.nodes, k)
		parent := parentKey(k, b.dim)
		if pn, ok := b.nodes[parent]; ok {
			pn.children.remove(childID(k, b.dim))
		}
		k = parent
	}
}

// Reset tears down all nodes and the arena, per spec.md §3 "Lifecycle".
// It removes the root node as well, and no method of the tree
// re-creates it.
func (b *base[EID]) Reset(estimatedEntityNo int) {
	b.nodes = make(nodeStore[EID])
	b.arena = newEntityArena[EID](estimatedEntityNo)
}

// Clear removes every node except the permanent root, per spec.md §3.
func (b *base[EID]) Clear() {
	root := b.nodes[rootKey]
	b.arena.release(root.entities)
	root.entities = memorySegment{}
	root.children = newChildSet(b.dim)
	b.nodes = nodeStore[EID]{rootKey: root}
}

// Move translates the tree's world box and every cached center by v,
// per spec.md §6 "Move(vector)" and testable property 11 ("Move
// commutes with queries"). It does not touch entity geometry, which the
// caller owns; queries after Move must supply coordinates already
// shifted by v to see the same results as before the move.
func (b *base[EID]) Move(v Point) {
	b.worldBox.Min = b.worldBox.Min.add(v)
	b.worldBox.Max = b.worldBox.Max.add(v)
	b.grid = newGridSpace(b.dim, b.maxDepth, b.worldBox)
	if b.cachedCenters {
		for _, n := range b.nodes {
			n.center = n.center.add(v)
		}
	}
}

// Dim returns the tree's compile-time-in-spirit dimension.
func (b *base[EID]) Dim() int { return b.dim }

// MaxDepth returns the tree's maximum depth.
func (b *base[EID]) MaxDepth() int { return b.maxDepth }

// WorldBox returns the tree's world-space bounding box.
func (b *base[EID]) WorldBox() Box { return b.worldBox }

// NumNodes returns the number of live nodes, including the root.
func (b *base[EID]) NumNodes() int { return len(b.nodes) }

// selector classifies a node's box during plane/frustum descent,
// spec.md §4.10 "Plane intersection / positive segmentation / frustum
// culling".
type selector func(nodeBox Box) classification

// VisitNodes performs a BFS traversal starting at root, calling
// procedure for every node whose box selector does not classify as
// negative (selector nil visits every node), per spec.md §6
// "VisitNodes(root, selector, procedure)".
func (b *base[EID]) VisitNodes(root key, sel selector, procedure func(k key, n *treeNode[EID])) {
	queue := []key{root}
	for len(queue) > 0 {
		k := queue[0]
		queue = queue[1:]
		n, ok := b.nodes[k]
		if !ok {
			continue
		}
		if sel != nil && sel(b.nodeBox(k)) == negative {
			continue
		}
		procedure(k, n)
		n.children.forEach(func(cid uint64) {
			queue = append(queue, childKey(k, cid, b.dim))
		})
	}
}

// CollectAllEntitiesInBFS dumps every resident entity id in BFS
// traversal order, per spec.md §6 "CollectAllEntitiesInBFS". It is
// promoted to PointTree and BoxTree through their embedding of base,
// forming part of the library's external interface alongside
// VisitNodes.
func (b *base[EID]) CollectAllEntitiesInBFS() []EID {
	var out []EID
	b.VisitNodes(rootKey, nil, func(_ key, n *treeNode[EID]) {
		out = append(out, b.arena.view(n.entities)...)
	})
	return out
}

// CollectAllEntitiesInDFS dumps every resident entity id in DFS
// traversal order, per spec.md §6 "CollectAllEntitiesInDFS".
func (b *base[EID]) CollectAllEntitiesInDFS() []EID {
	var out []EID
	var visit func(k key)
	visit = func(k key) {
		n, ok := b.nodes[k]
		if !ok {
			return
		}
		out = append(out, b.arena.view(n.entities)...)
		n.children.forEach(func(cid uint64) {
			visit(childKey(k, cid, b.dim))
		})
	}
	visit(rootKey)
	return out
}
