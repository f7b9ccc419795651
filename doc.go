// Package states provides stated classes: objects whose behavior is
// composed from named states that can be enabled and disabled at
// runtime.
//
// The core code is in package 'core'.  Package 'loader' finds and
// builds states (and reads classes from YAML), 'factory' makes
// instances, and 'interpreters' runs method bodies written in
// ECMAScript or expr.  A command-line tool is in `cmd/statedclass`.
package states
