// Copyright 2023 The orthotree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package orthotree

// pendingBox is one entity's RangeLocationMetaData awaiting placement
// during bulk build, the box-tree counterpart of pendingEntity.
type pendingBox[EID comparable] struct {
	meta rangeLocationMeta
	id   EID
}

// collectBoxPending rasterizes every entity in container into its
// RangeLocationMetaData, per spec.md §4.8 steps 2-3.
func collectBoxPending[EID comparable, B any, A BoxAdaptor[B]](base *base[EID], container BoxContainer[EID, B], adaptor A) []pendingBox[EID] {
	var pending []pendingBox[EID]
	container.ForEach(func(id EID, bx B) bool {
		box := adaptor.ToBox(bx)
		gridMin, gridMax, ok := base.grid.boxGridIDs(box, base.handleOutOfTree)
		if !ok {
			if base.verbose {
				log.WithField("id", id).Warn("orthotree: box outside world box, skipped")
			}
			return true
		}
		meta := rangeLocationMetaData(gridMin, gridMax, base.dim, base.maxDepth)
		pending = append(pending, pendingBox[EID]{meta: meta, id: id})
		return true
	})
	return pending
}

// bulkBuildBox places every pending box, per spec.md §4.8: unlike the
// point builder there is no recursive descent to perform, since
// RangeLocationMetaData already names the exact node (or the exact set
// of children, under DO_SPLIT_PARENT_ENTITIES) a box belongs in. Bulk
// build is therefore insertBox run once per entity, with no separate
// sort/partition stage.
func (b *base[EID]) bulkBuildBox(pending []pendingBox[EID]) {
	for _, p := range pending {
		b.insertBox(p.meta, p.id)
	}
}
