// Copyright 2023 The orthotree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package orthotree

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoxCenterHalfSizeSize(t *testing.T) {
	b := Box{Min: Point{0, 0}, Max: Point{2, 4}}
	assert.Equal(t, Point{1, 2}, b.center())
	assert.Equal(t, Point{1, 2}, b.halfSize())
	assert.Equal(t, Point{2, 4}, b.size())
	assert.Equal(t, 8.0, b.volume())
}

func TestEmptyBoxExpandsToOperand(t *testing.T) {
	b := emptyBox(2)
	o := Box{Min: Point{1, 1}, Max: Point{3, 3}}
	b.expand(o)
	assert.Equal(t, o, b)
}

func TestBoxOverlaps(t *testing.T) {
	a := Box{Min: Point{0, 0}, Max: Point{1, 1}}
	b := Box{Min: Point{1, 1}, Max: Point{2, 2}}
	c := Box{Min: Point{5, 5}, Max: Point{6, 6}}
	assert.True(t, a.overlaps(b), "touching boxes overlap")
	assert.False(t, a.overlaps(c))
}

func TestBoxContains(t *testing.T) {
	outer := Box{Min: Point{0, 0}, Max: Point{10, 10}}
	inner := Box{Min: Point{1, 1}, Max: Point{2, 2}}
	assert.True(t, outer.contains(inner))
	assert.False(t, inner.contains(outer))
}

func TestClassifyBox(t *testing.T) {
	pl := Plane{Normal: Point{0, 1}, Dist: 0}
	above := Box{Min: Point{-1, 1}, Max: Point{1, 2}}
	below := Box{Min: Point{-1, -2}, Max: Point{1, -1}}
	straddle := Box{Min: Point{-1, -1}, Max: Point{1, 1}}

	assert.Equal(t, positive, classifyBox(above.center(), above.halfSize(), pl))
	assert.Equal(t, negative, classifyBox(below.center(), below.halfSize(), pl))
	assert.Equal(t, intersecting, classifyBox(straddle.center(), straddle.halfSize(), pl))
}

func TestRayBoxDistanceHit(t *testing.T) {
	b := Box{Min: Point{-1, -1, -1}, Max: Point{0, 0, 0}}
	r := Ray{Origin: Point{0.5, 0.5, 0.5}, Direction: Point{-1, -1, -1}}
	dist, ok := rayBoxDistance(r, b, 0)
	assert.True(t, ok)
	assert.InDelta(t, 0.5, dist, 1e-9)
}

func TestRayBoxDistanceMiss(t *testing.T) {
	b := Box{Min: Point{-1, -1}, Max: Point{0, 0}}
	r := Ray{Origin: Point{5, 5}, Direction: Point{1, 1}}
	_, ok := rayBoxDistance(r, b, 0)
	assert.False(t, ok)
}

func TestSquaredDistance(t *testing.T) {
	a := Point{0, 0}
	b := Point{3, 4}
	assert.Equal(t, 25.0, squaredDistance(a, b))
	assert.Equal(t, math.Sqrt(25.0), math.Sqrt(squaredDistance(a, b)))
}
