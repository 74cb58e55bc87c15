// Package types defines the two node variants that make up a routing-result
// graph — TileNode (a placed compute block) and RouteNode (a physical routing
// resource) — along with the identity rules the graph dedups nodes by.
//
// Downstream packages (pkg/graph, pkg/construct, pkg/sta) are polymorphic
// over Node at every adjacency position; nothing here depends on them, which
// keeps this package import-cycle-free the way the teacher's pkg/types is
// the leaf of its own dependency graph.
package types
