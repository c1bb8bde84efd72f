// Copyright 2023 The orthotree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package orthotree

import "github.com/sirupsen/logrus"

// log is the package-wide structured logger. It is silent by default;
// callers who pass WithVerboseLogging(true) get a Warn entry for each
// entity bulk build skips as outside the world box.
// Queries never log: per spec.md §7 "queries never fail — they may
// return empty."
var log = logrus.New()

func init() {
	log.SetLevel(logrus.WarnLevel)
}
