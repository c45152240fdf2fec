// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package udlg

import "github.com/sirupsen/logrus"

var log logrus.FieldLogger

func init() {
	// Default logger so a caller that never calls SetLogger still gets
	// output instead of a nil-pointer panic.
	log = logrus.New()
}

// SetLogger replaces the package-level logger used for non-fatal
// diagnostics (e.g. a recoverable anomaly found while walking a
// directory of candidate files). Decode/encode errors are always
// returned, never just logged.
func SetLogger(logger logrus.FieldLogger) {
	log = logger
}

// Logger returns the package-level logger, so callers driving their own
// directory walks (e.g. the udlgtool CLI) can report per-file skip and
// failure diagnostics through the same logrus sink Parse uses
// instead of reaching for the standard library's log package.
func Logger() logrus.FieldLogger {
	return log
}
