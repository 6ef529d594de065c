package scene

import "errors"

var (
	// ErrCycle is returned when a reparent would make a node its own ancestor.
	ErrCycle = errors.New("parent cycle")

	// ErrInvalidNode is returned for node ids outside the scene.
	ErrInvalidNode = errors.New("invalid node id")

	// ErrUnknownEndpoint is returned when a network edge references a node
	// that was not mapped into the scene.
	ErrUnknownEndpoint = errors.New("unknown edge endpoint")
)
