// Copyright 2023 The orthotree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package orthotree

// defaultMaxEntitiesPerNode and defaultEstimatedEntityNo mirror
// spec.md §6 "Tree construction options": maxEntitiesPerNode default
// 20, estimatedEntityNo default 4096.
const (
	defaultMaxEntitiesPerNode = 20
	defaultEstimatedEntityNo  = 4096
)

// options collects the construction-time choices of spec.md §6 plus the
// edit/build policy flags named throughout §4.8-§4.9
// (DO_SPLIT_PARENT_ENTITIES, DO_UPDATE_ENTITY_IDS,
// HANDLE_OUT_OF_TREE_GEOMETRY) and the cached-vs-recomputed center
// trade of §9.
type options struct {
	worldBox            *Box
	maxDepth            *int
	maxEntitiesPerNode  int
	estimatedEntityNo   int
	parallel            bool
	splitParentEntities bool
	updateEntityIDs     bool
	handleOutOfTree     bool
	cachedCenters       bool
	verbose             bool
}

func defaultOptions() options {
	return options{
		maxEntitiesPerNode:  defaultMaxEntitiesPerNode,
		estimatedEntityNo:   defaultEstimatedEntityNo,
		splitParentEntities: true,
	}
}

// Option configures a tree at construction time.
type Option func(*options)

// WithWorldBox fixes the tree's world box instead of computing it from
// the input geometry.
func WithWorldBox(b Box) Option {
	return func(o *options) { o.worldBox = &b }
}

// WithMaxDepth fixes the tree's maximum depth instead of choosing it
// heuristically from the entity count.
func WithMaxDepth(d int) Option {
	return func(o *options) { o.maxDepth = &d }
}

// WithMaxEntitiesPerNode sets M, the node-splitting threshold. The
// default is 20.
func WithMaxEntitiesPerNode(m int) Option {
	return func(o *options) { o.maxEntitiesPerNode = m }
}

// WithEstimatedEntityNo sizes the entity arena's main page up front. The
// default is 4096.
func WithEstimatedEntityNo(n int) Option {
	return func(o *options) { o.estimatedEntityNo = n }
}

// WithParallel requests the parallel execution mode (spec.md §5). Only
// NewPointTree reads it, sorting its pending locations across
// goroutines; BoxTree construction and every query method run
// sequentially whatever its value.
func WithParallel(p bool) Option {
	return func(o *options) { o.parallel = p }
}

// WithSplitParentEntities controls whether a box touching more than one
// child at its natural depth is replicated into each touched child
// (true, the default) or anchored at the parent (false). See spec.md
// §4.8 and the GLOSSARY entry "Split-parent-entities".
func WithSplitParentEntities(split bool) Option {
	return func(o *options) { o.splitParentEntities = split }
}

// WithUpdateEntityIDs records the DO_UPDATE_ENTITY_IDS erase policy
// flag of spec.md §4.9 on the tree. No erase path reads it: erasing an
// id never renumbers the remaining ids, whatever its value.
// UpdateIndexes is the only operation that rewrites resident ids.
func WithUpdateEntityIDs(b bool) Option {
	return func(o *options) { o.updateEntityIDs = b }
}

// WithHandleOutOfTreeGeometry controls whether geometry outside the
// world box is clamped into it (true) or rejected (false, the
// default), per spec.md §4.3 and §9.
func WithHandleOutOfTreeGeometry(b bool) Option {
	return func(o *options) { o.handleOutOfTree = b }
}

// WithCachedCenters stores each node's world-space center on the node
// when the node is created, and Move keeps the stored centers current
// (spec.md §9 "Cached node center vs recomputed"). The query methods do
// not read the stored centers: they compute every node's box and
// center from the depth-indexed size cache whatever its value.
func WithCachedCenters(b bool) Option {
	return func(o *options) { o.cachedCenters = b }
}

// WithVerboseLogging emits a Warn-level logrus entry for each entity
// that bulk build skips because its geometry lies outside the world
// box. Nothing else is logged, and queries never log, per
// spec.md §7 "queries never fail".
func WithVerboseLogging(b bool) Option {
	return func(o *options) { o.verbose = b }
}
