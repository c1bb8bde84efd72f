// Copyright 2023 The orthotree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package orthotree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyShiftRoundTrip(t *testing.T) {
	k := keyFromUint64(0xABCD)
	shifted := k.shl(70) // crosses a word boundary
	back := shifted.shr(70)
	assert.Equal(t, k, back)
}

func TestKeySetBitAndBits(t *testing.T) {
	k := zeroKey
	k = k.setBit(5)
	k = k.setBit(130)
	assert.Equal(t, uint64(1), k.bit(5))
	assert.Equal(t, uint64(1), k.bit(130))
	assert.Equal(t, uint64(0), k.bit(6))
}

func TestKeyCompareOrdering(t *testing.T) {
	a := keyFromUint64(1)
	b := keyFromUint64(2)
	c := a.shl(64) // word boundary: 1<<64, now bigger than b
	assert.True(t, a.less(b))
	assert.True(t, b.less(c))
	assert.Equal(t, 0, a.cmp(a))
}

func TestKeyBitLen(t *testing.T) {
	assert.Equal(t, 0, zeroKey.bitLen())
	assert.Equal(t, 1, keyFromUint64(1).bitLen())
	assert.Equal(t, 8, keyFromUint64(0x80).bitLen())
	assert.Equal(t, 65, keyFromUint64(1).shl(64).bitLen())
}

func TestKeyBitsField(t *testing.T) {
	k := keyFromUint64(0b1011010)
	assert.Equal(t, uint64(0b101), k.bits(4, 3))
}
