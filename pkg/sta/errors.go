package sta

import "errors"

// Sentinel errors for STA traversal.
var (
	// ErrNonPortRegPredecessor is returned when a TileNode's predecessor
	// during traversal is neither a PORT nor a REG RouteNode. Tiles must
	// always be fed by routing fabric through one of those two adjacency
	// points (see pkg/construct); any other predecessor indicates a
	// graph-construction bug, not a timing condition to recover from.
	ErrNonPortRegPredecessor = errors.New("sta: tile predecessor is neither PORT nor REG")

	// ErrEmptyGraph is returned when Run is asked to traverse a graph with
	// no nodes at all; there is no critical path to report.
	ErrEmptyGraph = errors.New("sta: graph has no nodes")
)
