// Package types provides the tagged-variant node model shared by the graph,
// construction, and STA packages. All node identity and equality rules live
// here so every consumer agrees on what "the same node" means.
package types

import "fmt"

// TileType is the logical kind of a placed compute tile, derived from the
// first character of its tile ID. This derivation is authoritative: no other
// field may be used to determine a tile's type.
type TileType int

const (
	TileUnknown TileType = iota
	TilePE
	TileMEM
	TilePOND
	TileREG
	TileIO16
	TileIO1
)

func (t TileType) String() string {
	switch t {
	case TilePE:
		return "PE"
	case TileMEM:
		return "MEM"
	case TilePOND:
		return "POND"
	case TileREG:
		return "REG"
	case TileIO16:
		return "IO16"
	case TileIO1:
		return "IO1"
	default:
		return "UNKNOWN"
	}
}

// TileTypeFromID derives a TileType from a tile_id's leading character, per
// the encoding contract: p/m/M/r/I/i.
func TileTypeFromID(tileID string) TileType {
	if tileID == "" {
		return TileUnknown
	}
	switch tileID[0] {
	case 'p':
		return TilePE
	case 'm':
		return TileMEM
	case 'M':
		return TilePOND
	case 'r':
		return TileREG
	case 'I':
		return TileIO16
	case 'i':
		return TileIO1
	default:
		return TileUnknown
	}
}

// RouteType is the variant discriminator for a RouteNode.
type RouteType int

const (
	RouteUnknown RouteType = iota
	RouteSB
	RoutePORT
	RouteREG
	RouteRMUX
)

func (t RouteType) String() string {
	switch t {
	case RouteSB:
		return "SB"
	case RoutePORT:
		return "PORT"
	case RouteREG:
		return "REG"
	case RouteRMUX:
		return "RMUX"
	default:
		return "UNKNOWN"
	}
}

// Node is the tagged sum Node = TileNode | RouteNode. Both variants carry
// their own identity; the graph never owns a node through any other type.
type Node interface {
	// Identity returns the deterministic string every adjacency index keys
	// on. Two nodes with equal Identity() are the same node.
	Identity() string
	// node is unexported so Node can only be implemented within this package.
	node()
}

// TileNode is a logical block placed on the grid.
type TileNode struct {
	X, Y   int
	TileID string
	Kernel string // "" if the tile has no kernel prefix

	// InputPortLatencies and InputPortBreakPath are populated during graph
	// construction phase 6 (see pkg/construct) and consumed read-only by STA.
	InputPortLatencies map[string]int
	InputPortBreakPath map[string]bool
}

// NewTileNode creates a TileNode with its type derived from tileID and its
// per-port maps initialized empty.
func NewTileNode(x, y int, tileID, kernel string) *TileNode {
	return &TileNode{
		X:                  x,
		Y:                  y,
		TileID:             tileID,
		Kernel:             kernel,
		InputPortLatencies: make(map[string]int),
		InputPortBreakPath: make(map[string]bool),
	}
}

// Type returns the tile's derived TileType, authoritative per TileID[0].
func (t *TileNode) Type() TileType { return TileTypeFromID(t.TileID) }

// Identity for a TileNode is simply its tile_id.
func (t *TileNode) Identity() string { return t.TileID }

func (t *TileNode) node() {}

// RouteNode is a physical routing resource: a switchbox junction, a routing
// mux, a port adjacent to a tile pin, or a pipeline register in the fabric.
// Exactly one variant's fields are meaningful per RouteType.
type RouteNode struct {
	RouteType RouteType
	X, Y      int
	BitWidth  int
	NetID     string
	Kernel    string

	// SB
	Track int
	Side  int
	IO    int

	// PORT
	Port string

	// REG (shares Track with SB per the identity field order)
	RegName string

	// RMUX
	RMUXName string

	identity string
}

// NewRouteNode builds a RouteNode and pre-computes its identity string. All
// fields not meaningful to routeType should be left zero/empty; Identity()
// substitutes 0 for absent fields per the fixed field order in spec.
func NewRouteNode(routeType RouteType, x, y, bitWidth int, netID string) *RouteNode {
	n := &RouteNode{RouteType: routeType, X: x, Y: y, BitWidth: bitWidth, NetID: netID}
	n.recomputeIdentity()
	return n
}

func (n *RouteNode) recomputeIdentity() {
	regFlag := false
	if n.RouteType == RouteREG {
		regFlag = true
	}
	n.identity = fmt.Sprintf("%d,%d,%d,%d,%d,%d,%d,%s,%s,%s,%s,%t",
		n.RouteType, n.X, n.Y, n.Track, n.Side, n.IO,
		n.BitWidth, zeroIfEmptyString(n.Port), zeroIfEmptyString(n.NetID),
		zeroIfEmptyString(n.RegName), zeroIfEmptyString(n.RMUXName), regFlag)
}

func zeroIfEmptyString(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

// Identity concatenates every variant-discriminating field in a fixed order,
// substituting 0 for fields the variant does not use.
func (n *RouteNode) Identity() string {
	if n.identity == "" {
		n.recomputeIdentity()
	}
	return n.identity
}

// Finalize recomputes the node's identity string from its current field
// values. Callers that set variant-specific fields (Track, Port, RegName,
// ...) after NewRouteNode must call Finalize before the node is added to a
// graph, since Identity is otherwise cached from construction time.
func (n *RouteNode) Finalize() { n.recomputeIdentity() }

func (n *RouteNode) node() {}

// Describe renders a RouteNode in the human-readable shape used by the CLI
// report and DOT emitter; never consulted by construction or STA.
func (n *RouteNode) Describe() string {
	switch n.RouteType {
	case RouteSB:
		return fmt.Sprintf("SB(track=%d @ %d,%d side=%d io=%d)", n.Track, n.X, n.Y, n.Side, n.IO)
	case RoutePORT:
		return fmt.Sprintf("PORT(%s @ %d,%d)", n.Port, n.X, n.Y)
	case RouteREG:
		return fmt.Sprintf("REG(%s track=%d @ %d,%d)", n.RegName, n.Track, n.X, n.Y)
	case RouteRMUX:
		return fmt.Sprintf("RMUX(%s @ %d,%d)", n.RMUXName, n.X, n.Y)
	default:
		return fmt.Sprintf("UNKNOWN(%d,%d)", n.X, n.Y)
	}
}
