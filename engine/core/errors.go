package core

import "errors"

var (
	// ErrLayerNotFound is returned when popping a layer the stack does not hold.
	ErrLayerNotFound = errors.New("core: layer not in stack")
	// ErrNotConstructing is returned when Run is called twice.
	ErrNotConstructing = errors.New("core: application already started")
)
