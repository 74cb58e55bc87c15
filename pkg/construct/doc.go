// Package construct fuses placement, per-net routing, and netlist
// connectivity into a populated routing-result graph.
//
// # Algorithm
//
// Construct runs eight phases in order:
//
//  1. Derive id_to_ports from every netlist connection (driver and sinks
//     alike).
//  2. Populate the placement index from the placement input.
//  3. Create one TileNode per placed block; derive its kernel from the
//     display name's prefix before the first '$'; track the highest
//     numeric tile-ID suffix to seed AddedRegs.
//  4. Walk every net's routed paths segment-pair by segment-pair,
//     materializing each segment into a RouteNode, wiring the segment
//     chain, and wiring PORT/REG segments to the tile adjacent to them.
//  5. Rebuild sources/sinks from the accumulated edges.
//  6. Annotate every tile's input ports with a latency and break-path flag
//     per the fixed per-tile-type table.
//  7. Propagate kernel ownership onto the routing fabric.
//  8. Break cycles until none remain.
//
// # Errors
//
// A malformed segment (an unrecognized Kind) aborts construction
// immediately — this is ErrMalformedSegment. A PORT or REG segment whose
// adjacent tile cannot be located does not abort construction; the edge is
// skipped and ErrMissingTileForAdjacency is returned alongside the
// otherwise-complete graph, so callers can decide whether that counts as
// fatal for their input.
package construct
