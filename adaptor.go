// Copyright 2023 The orthotree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package orthotree

// PointAdaptor converts a caller-owned point type P into the library's
// internal Point representation. Implementations must return a Point of
// exactly the dimension the owning tree was constructed with, and must
// preserve the arithmetic precision of the caller's own scalar type up
// to the float64 promotion described in spec.md §4.1.
type PointAdaptor[P any] interface {
	ToPoint(p P) Point
}

// BoxAdaptor converts a caller-owned box type B into the library's
// internal Box representation.
type BoxAdaptor[B any] interface {
	ToBox(b B) Box
}

// PointContainer is the "container protocol" (spec.md §6): a caller's
// collection of point entities, indexed by a stable key EID, iterable
// without copying the collection itself. ForEach must visit every
// resident entity exactly once; it may stop early if visit returns
// false. Get resolves a single id's geometry, used by the query and
// edit engines whenever they need one entity's exact shape rather than
// the whole collection — e.g. the boundary test in RangeSearch, or the
// redistribution step of a rebalancing Insert.
type PointContainer[EID comparable, P any] interface {
	ForEach(visit func(id EID, p P) bool)
	Get(id EID) (P, bool)
}

// BoxContainer is the box-geometry counterpart of PointContainer.
type BoxContainer[EID comparable, B any] interface {
	ForEach(visit func(id EID, b B) bool)
	Get(id EID) (B, bool)
}

// SliceContainer adapts a contiguous []P slice to PointContainer /
// BoxContainer, using the slice index as the stable entity key, per
// spec.md §6 "contiguous sequence — the key is the integer index".
type SliceContainer[G any] []G

func (s SliceContainer[G]) ForEach(visit func(id int, g G) bool) {
	for i, g := range s {
		if !visit(i, g) {
			return
		}
	}
}

func (s SliceContainer[G]) Get(id int) (G, bool) {
	if id < 0 || id >= len(s) {
		var zero G
		return zero, false
	}
	return s[id], true
}

// MapContainer adapts a map[K]G to PointContainer / BoxContainer, using
// the map key as the stable entity key, per spec.md §6 "mapping — the
// key is the map's key type".
type MapContainer[K comparable, G any] map[K]G

func (m MapContainer[K, G]) ForEach(visit func(id K, g G) bool) {
	for k, g := range m {
		if !visit(k, g) {
			return
		}
	}
}

func (m MapContainer[K, G]) Get(id K) (G, bool) {
	g, ok := m[id]
	return g, ok
}
