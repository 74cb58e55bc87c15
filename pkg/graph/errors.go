package graph

import "errors"

// Sentinel errors for graph operations.
var (
	ErrNodeNotFound = errors.New("graph: node not found")
	ErrInvalidEdge  = errors.New("graph: edge references a node not in the graph")
)
