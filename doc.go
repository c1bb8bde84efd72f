// Copyright 2023 The orthotree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package orthotree provides an N-dimensional linear orthotree, the
// generalization of the binary/quad/oct tree to an arbitrary number of
// dimensions, usable as a non-owning spatial index over a caller-owned
// collection of points or axis-aligned bounding boxes.
//
// The tree never stores or copies geometry: it holds only entity
// identifiers and a sparse, hash-keyed node topology derived from a
// Morton (Z-order) encoding of each entity's location. Callers supply
// their own point/box types through a small Adaptor interface and their
// own collection through a Container interface, and get back range,
// pick, k-nearest-neighbor, ray, plane/frustum and pairwise-collision
// queries that exploit the Morton key structure for pruning.
package orthotree
