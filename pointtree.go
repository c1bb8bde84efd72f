// Copyright 2023 The orthotree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package orthotree

// PointTree indexes point entities of caller type P, read from and
// looked up in container through adaptor, per spec.md §3 "Point tree".
// The tree owns no entity geometry; container remains the caller's,
// and must already hold id's geometry by the time Insert or
// InsertWithRebalancing is called with that id, since rebalancing may
// need to re-read any resident entity's point.
type PointTree[EID comparable, P any, A PointAdaptor[P]] struct {
	*base[EID]
	container PointContainer[EID, P]
	adaptor   A
}

// NewPointTree bulk-builds a PointTree from every entity container
// currently holds, per spec.md §4.7 "Tree Builder (Point)" / §6
// "Create". With no entities and no WithWorldBox option, the resulting
// tree's world box is degenerate at the origin; callers building an
// empty tree to Insert into later should supply WithWorldBox
// explicitly.
func NewPointTree[EID comparable, P any, A PointAdaptor[P]](dim int, container PointContainer[EID, P], adaptor A, opts ...Option) *PointTree[EID, P, A] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var points []Point
	var n int
	container.ForEach(func(_ EID, p P) bool {
		points = append(points, adaptor.ToPoint(p))
		n++
		return true
	})

	worldBox := computeWorldBox(o.worldBox, dim, points, nil)
	maxDepth := computeMaxDepth(o.maxDepth, n, o.maxEntitiesPerNode, dim)
	estimated := o.estimatedEntityNo
	if n > estimated {
		estimated = n
	}

	b := newBase[EID](dim, worldBox, maxDepth, o.maxEntitiesPerNode, estimated, o)
	t := &PointTree[EID, P, A]{base: b, container: container, adaptor: adaptor}

	pending := collectPointPending[EID, P, A](b, container, adaptor)
	if o.parallel {
		parallelSortPending(pending)
	} else {
		sortPending(pending)
	}
	b.bulkBuildPoint(pending)
	return t
}

func (t *PointTree[EID, P, A]) geomBox(id EID) Box {
	p, ok := t.container.Get(id)
	if !ok {
		return newBox(t.dim)
	}
	pt := t.adaptor.ToPoint(p)
	return Box{Min: pt, Max: pt}
}

// locationOf converts a caller point into its full-resolution
// LocationID.
func (t *PointTree[EID, P, A]) locationOf(p P) (key, bool) {
	pt := t.adaptor.ToPoint(p)
	ids, ok := t.grid.pointGridIDs(pt, t.handleOutOfTree)
	if !ok {
		return zeroKey, false
	}
	return encode(ids, t.dim, t.maxDepth), true
}

// Insert adds id at whatever node is already resident along its
// location's path, never splitting or creating nodes, per spec.md §4.9
// "Insert without rebalancing".
func (t *PointTree[EID, P, A]) Insert(id EID, p P) error {
	loc, ok := t.locationOf(p)
	if !ok {
		return ErrOutOfWorld
	}
	t.insertWithoutRebalancing(loc, id)
	return nil
}

// InsertWithRebalancing adds id, per spec.md §4.9 "Insert with
// rebalancing". When the childless node id reaches already holds
// maxEntitiesPerNode entities, that node's entities plus id are moved
// one level down into its children; a child that then holds more than
// maxEntitiesPerNode entities is not split further. Splitting re-reads
// every displaced sibling's point from container.
func (t *PointTree[EID, P, A]) InsertWithRebalancing(id EID, p P) error {
	loc, ok := t.locationOf(p)
	if !ok {
		return ErrOutOfWorld
	}
	t.insertWithRebalancing(loc, id, func(e EID) key {
		l, _ := t.locationOf(mustGet(t.container, e))
		return l
	})
	return nil
}

// InsertUnique inserts id at p with rebalancing unless some resident
// entity already lies strictly within tolerance of p, per spec.md §6
// InsertUnique(entityId, point, tolerance) and the Glossary's "Wall
// distance" entry. It reports whether id was actually inserted.
// tolerance <= 0 disables the uniqueness check and always inserts.
func (t *PointTree[EID, P, A]) InsertUnique(id EID, p P, tolerance float64) (bool, error) {
	pt := t.adaptor.ToPoint(p)
	if tolerance > 0 {
		nearest := t.base.getNearestNeighbors(pt, 1, tolerance, t.geomBox)
		if len(nearest) > 0 {
			return false, nil
		}
	}
	if err := t.InsertWithRebalancing(id, p); err != nil {
		return false, err
	}
	return true, nil
}

// Erase removes id without the benefit of its geometry, per spec.md
// §4.9 "Erase by id". It is an O(node count) scan; prefer EraseAt when
// the point is still known.
func (t *PointTree[EID, P, A]) Erase(id EID) error {
	if !t.eraseScan(id) {
		return ErrUnknownEntity
	}
	return nil
}

// EraseAt removes id, using p to navigate directly to its node, per
// spec.md §4.9 "Erase by id and geometry".
func (t *PointTree[EID, P, A]) EraseAt(id EID, p P) error {
	loc, ok := t.locationOf(p)
	if !ok {
		return ErrOutOfWorld
	}
	if !t.eraseWithLocation(loc, id) {
		return ErrUnknownEntity
	}
	return nil
}

// Update moves id from oldP to newP, per spec.md §4.9 "Update": erase
// then insert, preserving whichever insert discipline rebalance
// selects.
func (t *PointTree[EID, P, A]) Update(id EID, oldP, newP P, rebalance bool) error {
	if err := t.EraseAt(id, oldP); err != nil {
		return err
	}
	if rebalance {
		return t.InsertWithRebalancing(id, newP)
	}
	return t.Insert(id, newP)
}

// UpdateIndexes rewrites every resident id through remap, per spec.md
// §4.9 "UpdateIndexes" / DO_UPDATE_ENTITY_IDS.
func (t *PointTree[EID, P, A]) UpdateIndexes(remap func(EID) (EID, bool)) {
	t.base.updateIndexes(remap)
}

// RangeSearch returns every resident entity whose point lies in query
// (containFully has no effect for points beyond matching spec.md's
// BoxTree signature: a point is either in query or not).
func (t *PointTree[EID, P, A]) RangeSearch(query Box, containFully bool) []EID {
	return t.base.rangeSearch(query, containFully, t.geomBox)
}

// PickSearch returns every resident entity whose point equals p.
func (t *PointTree[EID, P, A]) PickSearch(p Point) []EID {
	return t.base.pickSearch(p, t.geomBox)
}

// GetNearestNeighbors returns up to k resident entities within
// maxDistance of query, nearest first, per spec.md §6
// GetNearestNeighbors(point, k, maxDistance, container); the container
// is the tree's own, read back through t.geomBox. maxDistance <= 0
// means unbounded; otherwise only entities strictly closer than
// maxDistance are admissible.
func (t *PointTree[EID, P, A]) GetNearestNeighbors(query Point, k int, maxDistance float64) []EID {
	return t.base.getNearestNeighbors(query, k, maxDistance, t.geomBox)
}

// PlaneSearch returns every resident entity whose point lies on pl.
func (t *PointTree[EID, P, A]) PlaneSearch(pl Plane) []EID {
	return t.base.planeSearch(pl, t.geomBox)
}

// PlanePositiveSegmentation returns every resident entity not strictly
// behind pl: those in front of it and those lying on it.
func (t *PointTree[EID, P, A]) PlanePositiveSegmentation(pl Plane) []EID {
	return t.base.planePositiveSegmentation(pl, t.geomBox)
}

// FrustumCulling returns every resident entity not rejected by any of
// planes.
func (t *PointTree[EID, P, A]) FrustumCulling(planes []Plane) []EID {
	return t.base.frustumCulling(planes, t.geomBox)
}

// RayIntersectedAll returns every resident entity r hits within tol.
func (t *PointTree[EID, P, A]) RayIntersectedAll(r Ray, tol float64) []EID {
	return t.base.rayIntersectedAll(r, tol, t.geomBox)
}

// RayIntersectedFirst returns the resident entity nearest to r's origin
// that r hits within tol.
func (t *PointTree[EID, P, A]) RayIntersectedFirst(r Ray, tol float64) (EID, bool) {
	return t.base.rayIntersectedFirst(r, tol, t.geomBox)
}

// CollisionDetection reports every pair of distinct resident entities
// occupying the same point.
func (t *PointTree[EID, P, A]) CollisionDetection(report func(EID, EID)) {
	t.base.collisionDetectionSelf(t.geomBox, report)
}

// Locate returns the key of the deepest resident node covering p,
// without regard to whether any entity actually sits there, per
// SPEC_FULL.md §E.3.
func (t *PointTree[EID, P, A]) Locate(p P) (key, bool) {
	loc, ok := t.locationOf(p)
	if !ok {
		return zeroKey, false
	}
	return t.smallestAncestor(nodeHash(t.maxDepth, loc, t.dim, t.maxDepth)), true
}

// NodeBoxFor returns the world-space box of the node named by k, per
// SPEC_FULL.md §E.2.
func (t *PointTree[EID, P, A]) NodeBoxFor(k key) Box {
	return t.nodeBox(k)
}

// NodeKeyForPoint returns the full-depth node key p would occupy,
// computed purely from p and the tree's grid, without consulting
// which nodes actually exist, per SPEC_FULL.md §E.4 (octree.h's
// GetNodeID(maxDepth, gridRange) convenience overload).
func (t *PointTree[EID, P, A]) NodeKeyForPoint(p P) (key, bool) {
	loc, ok := t.locationOf(p)
	if !ok {
		return zeroKey, false
	}
	return nodeHash(t.maxDepth, loc, t.dim, t.maxDepth), true
}

func mustGet[EID comparable, P any](c PointContainer[EID, P], id EID) P {
	p, _ := c.Get(id)
	return p
}
