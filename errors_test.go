// Copyright 2023 The orthotree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package orthotree

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors(t *testing.T) {
	t.Run("textErr", func(t *testing.T) {
		assert.Error(t, textErr("foo"), errors.New("orthotree: foo"))
	})

	t.Run("fmtErr", func(t *testing.T) {
		assert.Error(t, fmtErr("my %s is %s-ed to %d", "bar", "baz", 11), errors.New("orthotree: my bar is baz-ed to 11"))
	})

	t.Run("wrapErr", func(t *testing.T) {
		cause := errors.New("the root cause")
		err := wrapErr("the error is %q by", cause, "caused")

		assert.ErrorIs(t, err, cause)
		assert.Equal(t, err.Error(), `orthotree: the error is "caused" by: the root cause`)
	})

	t.Run("textPanic", func(t *testing.T) {
		assert.PanicsWithValue(t, "orthotree: foo", func() {
			textPanic("foo")
		})
	})

	t.Run("fmtPanic", func(t *testing.T) {
		assert.PanicsWithValue(t, "orthotree: my bar is baz-ed to 10", func() {
			fmtPanic("my %s is %s-ed to %d", "bar", "baz", 10)
		})
	})
}
