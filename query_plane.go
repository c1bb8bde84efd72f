// Copyright 2023 The orthotree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package orthotree

// planeSearch collects only the entities straddling pl's boundary, per
// spec.md §4.10 "Plane intersection" and octree.h's
// PlaneIntersectionBase: the selector prunes positive subtrees along
// with negative ones, since a subtree classified positive cannot
// contain an entity that straddles the plane, and each entity itself
// must classify intersecting, not merely non-negative.
func (b *base[EID]) planeSearch(pl Plane, geom func(EID) Box) []EID {
	seen := make(map[EID]struct{})
	var out []EID
	b.VisitNodes(rootKey, func(nodeBox Box) classification {
		if classifyBox(nodeBox.center(), nodeBox.halfSize(), pl) == intersecting {
			return intersecting
		}
		return negative
	}, func(_ key, n *treeNode[EID]) {
		for _, id := range b.arena.view(n.entities) {
			if _, dup := seen[id]; dup {
				continue
			}
			g := geom(id)
			if classifyBox(g.center(), g.halfSize(), pl) == intersecting {
				seen[id] = struct{}{}
				out = append(out, id)
			}
		}
	})
	return out
}

// planePositiveSegmentation collects every entity not strictly on the
// negative side of pl, per spec.md §4.10 "Plane positive segmentation"
// and octree.h's PlanePositiveSegmentationBase, which admits any
// non-Negative relation (positive or intersecting).
func (b *base[EID]) planePositiveSegmentation(pl Plane, geom func(EID) Box) []EID {
	seen := make(map[EID]struct{})
	var out []EID
	b.VisitNodes(rootKey, func(nodeBox Box) classification {
		return classifyBox(nodeBox.center(), nodeBox.halfSize(), pl)
	}, func(_ key, n *treeNode[EID]) {
		for _, id := range b.arena.view(n.entities) {
			if _, dup := seen[id]; dup {
				continue
			}
			g := geom(id)
			if classifyBox(g.center(), g.halfSize(), pl) != negative {
				seen[id] = struct{}{}
				out = append(out, id)
			}
		}
	})
	return out
}

// frustumCulling collects every resident entity not rejected by any of
// planes, per spec.md §4.10 "Frustum culling": a node or entity is
// rejected as soon as it classifies negative against any one plane.
func (b *base[EID]) frustumCulling(planes []Plane, geom func(EID) Box) []EID {
	seen := make(map[EID]struct{})
	var out []EID
	sel := func(nodeBox Box) classification {
		c, h := nodeBox.center(), nodeBox.halfSize()
		result := positive
		for _, pl := range planes {
			switch classifyBox(c, h, pl) {
			case negative:
				return negative
			case intersecting:
				result = intersecting
			}
		}
		return result
	}
	b.VisitNodes(rootKey, sel, func(_ key, n *treeNode[EID]) {
		for _, id := range b.arena.view(n.entities) {
			if _, dup := seen[id]; dup {
				continue
			}
			g := geom(id)
			gc, gh := g.center(), g.halfSize()
			inside := true
			for _, pl := range planes {
				if classifyBox(gc, gh, pl) == negative {
					inside = false
					break
				}
			}
			if inside {
				seen[id] = struct{}{}
				out = append(out, id)
			}
		}
	})
	return out
}
