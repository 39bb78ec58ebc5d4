//go:build debug

package core

import (
	"fmt"

	"github.com/mashenka/mashenka/engine/logging"
)

func Assert(cond bool, msg string, args ...any) bool {
	if !cond {
		logging.Core().Error("assertion failed: "+msg, args...)
		panic(fmt.Sprint("assertion failed: ", msg))
	}
	return true
}
