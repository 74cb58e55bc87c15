// Package construct fuses placement, routing, and netlist data into a
// populated RoutingResultGraph.
package construct

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cgra-tools/sta/pkg/graph"
	"github.com/cgra-tools/sta/pkg/types"
)

// Construct runs the full construction algorithm: tile creation, segment
// materialization, port/reg tile adjacency, per-port latency and
// break-path annotation, kernel propagation, and cycle breaking.
//
// peLatency is the PE input latency in cycles (0 unless pipelined PEs are
// requested); the caller — not this package — is responsible for deriving
// it from the environment.
//
// A non-nil error returned together with a non-nil graph is always
// ErrMissingTileForAdjacency-class: that graph is complete except for the
// specific adjacency edges that could not be resolved. A malformed segment
// aborts immediately and returns a nil graph.
func Construct(placement Placement, routes Routes, idToName IDToName, netlist Netlist, peLatency int) (*graph.Graph, error) {
	g := graph.New()
	g.IDToName = idToName

	netIDs := sortedKeys(netlist)

	idToPorts := make(map[string][]string)
	for _, netID := range netIDs {
		for _, conn := range netlist[netID] {
			idToPorts[conn.BlockID] = append(idToPorts[conn.BlockID], conn.Port)
		}
	}
	g.IDToPorts = idToPorts

	blockIDs := sortedKeys(placement)
	for _, blockID := range blockIDs {
		pt := placement[blockID]
		g.Placement[graph.Point{X: pt.X, Y: pt.Y}] = append(g.Placement[graph.Point{X: pt.X, Y: pt.Y}], blockID)
	}

	maxRegID := 0
	for _, blockID := range blockIDs {
		pt := placement[blockID]
		kernel := deriveKernel(idToName[blockID])
		g.AddNode(types.NewTileNode(pt.X, pt.Y, blockID, kernel))
		if n, err := strconv.Atoi(blockID[1:]); err == nil && n > maxRegID {
			maxRegID = n
		}
	}
	g.AddedRegs = maxRegID + 1

	var warn error
	for _, netID := range sortedKeys(routes) {
		for _, path := range routes[netID] {
			for i := 0; i+1 < len(path); i++ {
				n1, err := segmentToNode(path[i], netID)
				if err != nil {
					return nil, err
				}
				n2, err := segmentToNode(path[i+1], netID)
				if err != nil {
					return nil, err
				}
				g.AddNode(n1)
				g.AddNode(n2)
				if err := g.AddEdge(n1, n2); err != nil {
					return nil, err
				}

				if err := connectTileAdjacency(g, n1, true); err != nil {
					warn = err
				}
				if err := connectTileAdjacency(g, n2, false); err != nil {
					warn = err
				}
			}
		}
	}

	g.UpdateSourcesAndSinks()

	idToInputPorts := make(map[string][]string)
	for _, netID := range netIDs {
		for _, conn := range netlist[netID][1:] {
			idToInputPorts[conn.BlockID] = append(idToInputPorts[conn.BlockID], conn.Port)
		}
	}

	for _, tile := range g.GetTiles() {
		ports, ok := idToInputPorts[tile.TileID]
		if !ok {
			continue
		}
		for _, port := range ports {
			latency, breakPath := latencyAndBreakPath(g, tile, port, peLatency)
			tile.InputPortLatencies[port] = latency
			tile.InputPortBreakPath[port] = breakPath
		}
	}

	g.UpdateEdgeKernels()

	for g.FixCycles() {
		g.UpdateSourcesAndSinks()
	}

	return g, warn
}

// deriveKernel returns the substring before the first '$' in a display
// name, or "" if the name contains no '$' (the block has no kernel).
func deriveKernel(name string) string {
	if i := strings.Index(name, "$"); i >= 0 {
		return name[:i]
	}
	return ""
}

// connectTileAdjacency wires a PORT or REG segment to the tile it sits
// next to. isSource selects the edge direction: true means the tile drives
// the segment (tile -> seg, seg is a path's first element); false means the
// segment drives the tile (seg -> tile, seg is a path's second element).
func connectTileAdjacency(g *graph.Graph, seg *types.RouteNode, isSource bool) error {
	var tile *types.TileNode
	var ok bool
	switch seg.RouteType {
	case types.RoutePORT:
		tile, ok = g.GetTileAt(seg.X, seg.Y, seg.Port)
	case types.RouteREG:
		tile, ok = g.GetRegAt(seg.X, seg.Y)
	default:
		return nil
	}
	if !ok {
		return fmt.Errorf("%w: %s at (%d,%d)", ErrMissingTileForAdjacency, seg.RouteType, seg.X, seg.Y)
	}
	if isSource {
		return g.AddEdge(tile, seg)
	}
	return g.AddEdge(seg, tile)
}

func segmentToNode(seg Segment, netID string) (*types.RouteNode, error) {
	var routeType types.RouteType
	switch seg.Kind {
	case SegSB:
		routeType = types.RouteSB
	case SegPORT:
		routeType = types.RoutePORT
	case SegREG:
		routeType = types.RouteREG
	case SegRMUX:
		routeType = types.RouteRMUX
	default:
		return nil, fmt.Errorf("%w: kind %d", ErrMalformedSegment, seg.Kind)
	}

	n := types.NewRouteNode(routeType, seg.X, seg.Y, seg.BitWidth, netID)
	n.Track = seg.Track
	n.Side = seg.Side
	n.IO = seg.IO
	n.Port = seg.Port
	n.RegName = seg.RegName
	n.RMUXName = seg.RMUXName
	n.Finalize()
	return n, nil
}

// latencyAndBreakPath computes input_port_latencies/input_port_break_path
// for one tile input port, per the fixed per-tile-type rule table.
func latencyAndBreakPath(g *graph.Graph, tile *types.TileNode, port string, peLatency int) (int, bool) {
	switch tile.Type() {
	case types.TilePE:
		return peLatency, peLatency != 0
	case types.TileMEM:
		if strings.Contains(port, "flush") || strings.Contains(port, "chain") {
			return 0, false
		}
		return 0, true
	case types.TileREG:
		if isShiftReg(g, tile) {
			return 0, true
		}
		return 1, true
	case types.TilePOND:
		return 0, true
	case types.TileIO1, types.TileIO16:
		return 0, false
	default:
		return 0, false
	}
}

// isShiftReg reports whether tile is one of the graph's shift registers.
// Shift registers are MEM tiles (see GetShiftRegs); a REG-type tile is
// never a member of that set, so this is always false for REG tiles.
func isShiftReg(g *graph.Graph, tile *types.TileNode) bool {
	for _, n := range g.GetShiftRegs() {
		if n.Identity() == tile.Identity() {
			return true
		}
	}
	return false
}

// sortedKeys returns m's keys in ascending order. Go map iteration order is
// randomized, but construction must be deterministic (identical input
// produces an identical node/edge insertion order, per spec); sorting by key
// is the Go-native stand-in for the input dict's preserved insertion order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
