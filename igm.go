// Copyright 2023 The orthotree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package orthotree

import "math"

// Point is the library's internal representation of a D-dimensional
// coordinate. Every Point produced or consumed inside the tree has
// exactly D elements, D being the dimension the owning tree was built
// with. A caller's own point type is converted to a Point by a
// PointAdaptor; query arguments (query points, boxes, rays, planes) are
// built from Points by the caller directly.
type Point []float64

// Box is the library's internal representation of a D-dimensional
// axis-aligned bounding box. Min and Max are Points of length D; Min[d]
// must be <= Max[d] for every dimension d.
type Box struct {
	Min Point
	Max Point
}

// Ray is a half-line used by RayIntersectedAll and RayIntersectedFirst.
// Direction need not be normalized; a zero-length Direction degenerates
// the ray to its Origin point, per spec.
type Ray struct {
	Origin    Point
	Direction Point
}

// Plane is a hyperplane used by PlaneSearch, PlanePositiveSegmentation
// and FrustumCulling, expressed in Hessian normal form: a point p lies
// on the plane when dot(Normal, p) + Dist == 0. Normal is expected to be
// a unit vector; the library does not normalize it (§4.1: "Caller
// responsibility").
type Plane struct {
	Normal Point
	Dist   float64
}

// newPoint allocates a zeroed Point of the given dimension.
func newPoint(d int) Point {
	return make(Point, d)
}

func (p Point) clone() Point {
	c := make(Point, len(p))
	copy(c, p)
	return c
}

func (p Point) sub(o Point) Point {
	r := make(Point, len(p))
	for d := range p {
		r[d] = p[d] - o[d]
	}
	return r
}

func (p Point) add(o Point) Point {
	r := make(Point, len(p))
	for d := range p {
		r[d] = p[d] + o[d]
	}
	return r
}

// sumSquares returns the sum of the squares of p's components, i.e. the
// squared Euclidean norm.
func (p Point) sumSquares() float64 {
	var s float64
	for _, c := range p {
		s += c * c
	}
	return s
}

// squaredDistance returns the squared Euclidean distance between two
// points of the same dimension.
func squaredDistance(a, b Point) float64 {
	var s float64
	for d := range a {
		diff := a[d] - b[d]
		s += diff * diff
	}
	return s
}

// newBox allocates a Box of the given dimension with Min/Max both
// zeroed.
func newBox(d int) Box {
	return Box{Min: newPoint(d), Max: newPoint(d)}
}

// emptyBox returns a Box positioned so that expanding it with any real
// Box or Point always yields that operand unchanged: Min is +Inf and Max
// is -Inf in every dimension. Mirrors the teacher's EmptyBox sentinel,
// generalized to D dimensions.
func emptyBox(d int) Box {
	b := newBox(d)
	for i := 0; i < d; i++ {
		b.Min[i] = math.Inf(1)
		b.Max[i] = math.Inf(-1)
	}
	return b
}

func (b Box) dim() int {
	return len(b.Min)
}

// center returns the box's midpoint.
func (b Box) center() Point {
	c := make(Point, b.dim())
	for d := range c {
		c[d] = (b.Min[d] + b.Max[d]) / 2
	}
	return c
}

// halfSize returns half the box's extent in every dimension.
func (b Box) halfSize() Point {
	h := make(Point, b.dim())
	for d := range h {
		h[d] = (b.Max[d] - b.Min[d]) / 2
	}
	return h
}

// size returns the box's full extent in every dimension.
func (b Box) size() Point {
	s := make(Point, b.dim())
	for d := range s {
		s[d] = b.Max[d] - b.Min[d]
	}
	return s
}

// volume returns the product of the box's per-dimension extents.
func (b Box) volume() float64 {
	v := 1.0
	for d := range b.Min {
		v *= b.Max[d] - b.Min[d]
	}
	return v
}

// expand grows b in place so that it also contains o.
func (b *Box) expand(o Box) {
	for d := range b.Min {
		if o.Min[d] < b.Min[d] {
			b.Min[d] = o.Min[d]
		}
		if o.Max[d] > b.Max[d] {
			b.Max[d] = o.Max[d]
		}
	}
}

// expandPoint grows b in place so that it also contains p.
func (b *Box) expandPoint(p Point) {
	for d := range b.Min {
		if p[d] < b.Min[d] {
			b.Min[d] = p[d]
		}
		if p[d] > b.Max[d] {
			b.Max[d] = p[d]
		}
	}
}

// containsPoint reports whether p lies within b, inclusive of the
// boundary.
func (b Box) containsPoint(p Point) bool {
	for d := range p {
		if p[d] < b.Min[d] || p[d] > b.Max[d] {
			return false
		}
	}
	return true
}

// overlaps reports whether b and o share at least one point, using the
// strict separating-axis test: boxes that merely touch along a face are
// considered overlapping (non-strict on the boundary).
func (b Box) overlaps(o Box) bool {
	for d := range b.Min {
		if b.Max[d] < o.Min[d] || b.Min[d] > o.Max[d] {
			return false
		}
	}
	return true
}

// overlapsCenterHalfSize is the center/half-size form of the separating
// axis test (§4.2), equivalent to overlaps but expressed the way the
// collision and plane-classification code already has center/halfSize
// on hand.
func overlapsCenterHalfSize(c1, h1, c2, h2 Point) bool {
	for d := range c1 {
		if math.Abs(c1[d]-c2[d]) > h1[d]+h2[d] {
			return false
		}
	}
	return true
}

// contains reports whether b fully contains o.
func (b Box) contains(o Box) bool {
	for d := range b.Min {
		if o.Min[d] < b.Min[d] || o.Max[d] > b.Max[d] {
			return false
		}
	}
	return true
}

// classification is the result of testing a box or point against a
// Plane.
type classification int

const (
	negative classification = iota
	positive
	intersecting
)

// classifyBox classifies a box, given as center+halfSize, against a
// plane: the box's extent is projected onto the plane normal and
// compared against the signed distance of the center (§4.2).
func classifyBox(center, halfSize Point, pl Plane) classification {
	dist := dot(pl.Normal, center) + pl.Dist
	var radius float64
	for d := range center {
		radius += math.Abs(halfSize[d] * pl.Normal[d])
	}
	switch {
	case dist > radius:
		return positive
	case dist < -radius:
		return negative
	default:
		return intersecting
	}
}

// classifyPoint classifies a point against a plane.
func classifyPoint(p Point, pl Plane) classification {
	dist := dot(pl.Normal, p) + pl.Dist
	switch {
	case dist > 0:
		return positive
	case dist < 0:
		return negative
	default:
		return intersecting
	}
}

func dot(a, b Point) float64 {
	var s float64
	for d := range a {
		s += a[d] * b[d]
	}
	return s
}

// rayBoxDistance implements the slab method described in spec.md §4.10.
// It returns the distance along the ray at which it enters b and
// whether the ray hits b at all. tol does not enlarge b; it only
// selects the strictness of the axis-parallel test: when tol is exactly zero, axis-parallel rays whose
// origin lies exactly on a slab boundary are treated as a hit
// (non-strict); for any other tol the test is strict. This preserves the
// faithfully-reimplemented, possibly-surprising behavior flagged as an
// Open Question in spec.md §9.
func rayBoxDistance(r Ray, b Box, tol float64) (float64, bool) {
	tMin := math.Inf(-1)
	tMax := math.Inf(1)
	for d := range r.Origin {
		dir := r.Direction[d]
		if dir == 0 {
			if tol == 0 {
				if r.Origin[d] < b.Min[d] || r.Origin[d] > b.Max[d] {
					return 0, false
				}
			} else {
				if r.Origin[d] <= b.Min[d] || r.Origin[d] >= b.Max[d] {
					return 0, false
				}
			}
			continue
		}
		t1 := (b.Min[d] - r.Origin[d]) / dir
		t2 := (b.Max[d] - r.Origin[d]) / dir
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tMin {
			tMin = t1
		}
		if t2 < tMax {
			tMax = t2
		}
	}
	if tMin > tMax || tMax < 0 {
		return 0, false
	}
	if tMin >= 0 {
		return tMin, true
	}
	return tMax, true
}
