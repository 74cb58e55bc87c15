// Package sta implements the delay-accumulating topological traversal that
// turns a constructed RoutingResultGraph into a critical path delay and a
// maximum clock frequency.
//
// Run walks the graph's topological order exactly once, accumulating a
// PathComponents counter per node from its predecessors' accumulators, and
// reports the node with the largest total delay as the critical path
// endpoint. Nothing in this package mutates the graph; it is the read-only
// consumer construction hands off to.
package sta
