// Copyright 2023 The orthotree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package orthotree

import (
	"errors"
	"fmt"
)

const packageName = "orthotree: "

// ErrOutOfWorld is returned by mutating operations (Insert, Update) when
// the supplied geometry falls outside the tree's world box and the tree
// was not configured with WithHandleOutOfTreeGeometry.
var ErrOutOfWorld = textErr("geometry is outside the tree's world box")

// ErrUnknownEntity is returned by Erase/Update when the entity id is not
// resident in the tree.
var ErrUnknownEntity = textErr("entity id is not present in the tree")

func textErr(text string) error {
	return errors.New(packageName + text)
}

func fmtErr(format string, a ...interface{}) error {
	return fmt.Errorf(packageName+format, a...)
}

func wrapErr(text string, err error, a ...interface{}) error {
	return fmt.Errorf(packageName+text+": %w", append(a, err)...)
}

func textPanic(text string) {
	panic(packageName + text)
}

func fmtPanic(format string, a ...interface{}) {
	panic(fmt.Sprintf(packageName+format, a...))
}
