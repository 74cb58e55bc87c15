package construct

import "errors"

// Sentinel errors for graph construction.
var (
	// ErrMalformedSegment is returned when a segment's Kind is not one of
	// SB, PORT, REG, RMUX.
	ErrMalformedSegment = errors.New("construct: segment has unrecognized kind")

	// ErrMissingTileForAdjacency is returned when a PORT or REG segment's
	// owning tile cannot be found at its coordinate. Construction does not
	// abort on this: the adjacency edge is skipped and the error is
	// returned alongside a graph that is otherwise complete, so callers can
	// choose to treat it as fatal or log-and-continue.
	ErrMissingTileForAdjacency = errors.New("construct: no tile found for port/reg adjacency")
)
