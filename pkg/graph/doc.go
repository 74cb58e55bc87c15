// Package graph implements RoutingResultGraph, the fused tile/routing DAG
// produced by place-and-route.
//
// # Overview
//
// A routing result is two interleaved graphs: a coarse graph of placed
// tiles (PEs, memories, registers, ponds, IOs) and a fine graph of the
// physical routing resources connecting their ports (switchbox junctions,
// routing muxes, pipeline registers, and the ports adjacent to each tile
// pin). Graph fuses both into one DAG so a single topological walk and a
// single delay-accumulation pass (see pkg/sta) can cross tile and routing
// edges uniformly.
//
// # Node Identity
//
// Nodes are never compared by pointer. Every Node carries a deterministic
// Identity() string (see pkg/types), and every adjacency index in this
// package — sources, sinks, the node and tile-ID maps — is keyed on that
// string. Constructing the same tile or routing segment twice and adding it
// twice is a no-op, not a duplicate.
//
// # Topological Sort and Cycle Breaking
//
// TopologicalSort performs a reverse post-order DFS from every source node
// (nodes with no incoming edges), matching the recursive algorithm in the
// original place-and-route tooling but using an explicit stack so routing
// graphs with long register chains never risk exhausting call depth.
//
// Real routing results are sometimes not quite acyclic: a handful of
// feedback edges through register routing can survive place-and-route.
// FixCycles finds and removes the first back-edge it encounters via a single
// DFS pass; construction calls it in a loop until the graph sorts cleanly.
//
// # Category Views
//
// GetMems, GetROMs, GetRegs, GetShiftRegs, GetPonds, GetPEs, GetInputIOs,
// and GetOutputIOs classify the placed tiles for STA and reporting. Each is
// computed once and cached; call them only after construction has finished
// mutating the graph (added every node and edge, run FixCycles to
// exhaustion, and called UpdateEdgeKernels), since the cache does not
// invalidate on further edits.
package graph
