// Copyright 2023 The orthotree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package orthotree

// BoxTree indexes box entities of caller type B, read from and looked
// up in container through adaptor, per spec.md §3 "Box tree". Like
// PointTree it owns no entity geometry.
type BoxTree[EID comparable, B any, A BoxAdaptor[B]] struct {
	*base[EID]
	container BoxContainer[EID, B]
	adaptor   A
}

// NewBoxTree bulk-builds a BoxTree from every entity container
// currently holds, per spec.md §4.8 "Tree Builder (Box)" / §6
// "Create".
func NewBoxTree[EID comparable, B any, A BoxAdaptor[B]](dim int, container BoxContainer[EID, B], adaptor A, opts ...Option) *BoxTree[EID, B, A] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var boxes []Box
	var n int
	container.ForEach(func(_ EID, bx B) bool {
		boxes = append(boxes, adaptor.ToBox(bx))
		n++
		return true
	})

	worldBox := computeWorldBox(o.worldBox, dim, nil, boxes)
	maxDepth := computeMaxDepth(o.maxDepth, n, o.maxEntitiesPerNode, dim)
	estimated := o.estimatedEntityNo
	if n > estimated {
		estimated = n
	}

	b := newBase[EID](dim, worldBox, maxDepth, o.maxEntitiesPerNode, estimated, o)
	t := &BoxTree[EID, B, A]{base: b, container: container, adaptor: adaptor}

	pending := collectBoxPending[EID, B, A](b, container, adaptor)
	b.bulkBuildBox(pending)
	return t
}

func (t *BoxTree[EID, B, A]) geomBox(id EID) Box {
	bx, ok := t.container.Get(id)
	if !ok {
		return newBox(t.dim)
	}
	return t.adaptor.ToBox(bx)
}

func (t *BoxTree[EID, B, A]) metaOf(bx B) (rangeLocationMeta, bool) {
	box := t.adaptor.ToBox(bx)
	gridMin, gridMax, ok := t.grid.boxGridIDs(box, t.handleOutOfTree)
	if !ok {
		return rangeLocationMeta{}, false
	}
	return rangeLocationMetaData(gridMin, gridMax, t.dim, t.maxDepth), true
}

// Insert anchors id at whatever node is already resident covering its
// natural depth, never creating nodes or replicating it across
// children, per spec.md §4.9 "Insert without rebalancing".
func (t *BoxTree[EID, B, A]) Insert(id EID, bx B) error {
	meta, ok := t.metaOf(bx)
	if !ok {
		return ErrOutOfWorld
	}
	k := t.smallestAncestor(nodeHash(meta.depth, meta.locID, t.dim, t.maxDepth))
	t.appendEntity(k, id)
	return nil
}

// InsertWithRebalancing places id per spec.md §4.8's policy: exactly at
// its natural node when it fits one cell, anchored at the parent when
// splitParentEntities is off, or replicated across every child it
// touches when splitParentEntities is on, creating nodes as needed.
func (t *BoxTree[EID, B, A]) InsertWithRebalancing(id EID, bx B) error {
	meta, ok := t.metaOf(bx)
	if !ok {
		return ErrOutOfWorld
	}
	t.insertBox(meta, id)
	return nil
}

// Erase removes id without the benefit of its geometry, per spec.md
// §4.9 "Erase by id".
func (t *BoxTree[EID, B, A]) Erase(id EID) error {
	if !t.eraseScan(id) {
		return ErrUnknownEntity
	}
	return nil
}

// EraseAt removes id from every node InsertWithRebalancing would have
// placed it in, using bx to navigate directly, per spec.md §4.9 "Erase
// by id and geometry".
func (t *BoxTree[EID, B, A]) EraseAt(id EID, bx B) error {
	meta, ok := t.metaOf(bx)
	if !ok {
		return ErrOutOfWorld
	}
	if !t.eraseBox(meta, id) {
		return ErrUnknownEntity
	}
	return nil
}

// Update moves id from oldBx to newBx, per spec.md §4.9 "Update".
func (t *BoxTree[EID, B, A]) Update(id EID, oldBx, newBx B, rebalance bool) error {
	if err := t.EraseAt(id, oldBx); err != nil {
		return err
	}
	if rebalance {
		return t.InsertWithRebalancing(id, newBx)
	}
	return t.Insert(id, newBx)
}

// UpdateIndexes rewrites every resident id through remap, per spec.md
// §4.9 "UpdateIndexes" / DO_UPDATE_ENTITY_IDS.
func (t *BoxTree[EID, B, A]) UpdateIndexes(remap func(EID) (EID, bool)) {
	t.base.updateIndexes(remap)
}

// RangeSearch returns every resident entity whose box overlaps query,
// or, when containFully is true, is fully contained by it.
func (t *BoxTree[EID, B, A]) RangeSearch(query Box, containFully bool) []EID {
	return t.base.rangeSearch(query, containFully, t.geomBox)
}

// PickSearch returns every resident entity whose box contains p.
func (t *BoxTree[EID, B, A]) PickSearch(p Point) []EID {
	return t.base.pickSearch(p, t.geomBox)
}

// GetNearestNeighbors returns up to k resident entities within
// maxDistance of query, nearest first, per spec.md §6
// GetNearestNeighbors(point, k, maxDistance, container); the container
// is the tree's own, read back through t.geomBox. maxDistance <= 0
// means unbounded; otherwise only entities strictly closer than
// maxDistance are admissible.
func (t *BoxTree[EID, B, A]) GetNearestNeighbors(query Point, k int, maxDistance float64) []EID {
	return t.base.getNearestNeighbors(query, k, maxDistance, t.geomBox)
}

// PlaneSearch returns every resident entity whose box intersects pl.
func (t *BoxTree[EID, B, A]) PlaneSearch(pl Plane) []EID {
	return t.base.planeSearch(pl, t.geomBox)
}

// PlanePositiveSegmentation returns every resident entity not strictly
// behind pl: those in front of it and those intersecting it.
func (t *BoxTree[EID, B, A]) PlanePositiveSegmentation(pl Plane) []EID {
	return t.base.planePositiveSegmentation(pl, t.geomBox)
}

// FrustumCulling returns every resident entity not rejected by any of
// planes.
func (t *BoxTree[EID, B, A]) FrustumCulling(planes []Plane) []EID {
	return t.base.frustumCulling(planes, t.geomBox)
}

// RayIntersectedAll returns every resident entity r hits within tol.
func (t *BoxTree[EID, B, A]) RayIntersectedAll(r Ray, tol float64) []EID {
	return t.base.rayIntersectedAll(r, tol, t.geomBox)
}

// RayIntersectedFirst returns the resident entity nearest to r's origin
// that r hits within tol.
func (t *BoxTree[EID, B, A]) RayIntersectedFirst(r Ray, tol float64) (EID, bool) {
	return t.base.rayIntersectedFirst(r, tol, t.geomBox)
}

// CollisionDetection reports every pair of distinct resident entities
// whose boxes overlap.
func (t *BoxTree[EID, B, A]) CollisionDetection(report func(EID, EID)) {
	t.base.collisionDetectionSelf(t.geomBox, report)
}

// CollisionDetectionWith reports every pair (entity of t, entity of
// other) whose boxes overlap, per spec.md §4.10 "Collision detection,
// two trees".
func CollisionDetectionWith[EID1, EID2 comparable, B1, B2 any, A1 BoxAdaptor[B1], A2 BoxAdaptor[B2]](
	t *BoxTree[EID1, B1, A1], other *BoxTree[EID2, B2, A2], report func(EID1, EID2),
) {
	collisionDetectionTwoTrees(t.base, t.geomBox, other.base, other.geomBox, report)
}

// NodeBoxFor returns the world-space box of the node named by k, per
// SPEC_FULL.md §E.2.
func (t *BoxTree[EID, B, A]) NodeBoxFor(k key) Box {
	return t.nodeBox(k)
}

// Locate returns the key of the deepest resident node covering bx's
// natural position, per SPEC_FULL.md §E.3.
func (t *BoxTree[EID, B, A]) Locate(bx B) (key, bool) {
	meta, ok := t.metaOf(bx)
	if !ok {
		return zeroKey, false
	}
	return t.smallestAncestor(nodeHash(meta.depth, meta.locID, t.dim, t.maxDepth)), true
}

// NodeKeyForBox returns the node key bx would naturally occupy,
// computed purely from bx and the tree's grid, without consulting
// which nodes actually exist, per SPEC_FULL.md §E.4 (octree.h's
// GetNodeID(maxDepth, gridRange) convenience overload).
func (t *BoxTree[EID, B, A]) NodeKeyForBox(bx B) (key, bool) {
	meta, ok := t.metaOf(bx)
	if !ok {
		return zeroKey, false
	}
	return nodeHash(meta.depth, meta.locID, t.dim, t.maxDepth), true
}
