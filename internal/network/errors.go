package network

import "errors"

var (
	// ErrUnknownMode is returned for a graph keyed by an unrecognised mode.
	ErrUnknownMode = errors.New("unknown transport mode")

	// ErrInvalidEdge is returned when an edge references a node outside its graph.
	ErrInvalidEdge = errors.New("edge endpoint out of range")

	// ErrEmptyGraph is returned when a mode key has no graph body.
	ErrEmptyGraph = errors.New("empty mode graph")

	// ErrUnsupportedFormat is returned for file extensions the loader cannot read.
	ErrUnsupportedFormat = errors.New("unsupported network format")
)
