// Package util has small helpers shared by the stated-class packages.
package util

import "log"

// Logging turns on the diagnostics that loaders and factories write
// with Logf.  The statedclass command sets it from STATES_VERBOSE.
var Logging = false

// Logf calls log.Printf when Logging is true.
func Logf(format string, args ...interface{}) {
	if !Logging {
		return
	}
	log.Printf(format, args...)
}
