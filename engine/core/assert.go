//go:build !debug

package core

import "github.com/mashenka/mashenka/engine/logging"

// Assert reports cond. Release builds log a failed assertion and let the
// caller fall back to a safe no-op; build with -tags debug to make it fatal.
func Assert(cond bool, msg string, args ...any) bool {
	if !cond {
		logging.Core().Error("assertion failed: "+msg, args...)
	}
	return cond
}
