package construct

// Point is a placed block's grid coordinate.
type Point struct {
	X, Y int
}

// Placement maps a block ID to the grid cell it was placed in.
type Placement map[string]Point

// NetConn is one endpoint of a net: the block ID and the port it connects
// on. Index 0 within a NetConn list is the net's driver; the rest are
// sinks.
type NetConn struct {
	BlockID string
	Port    string
}

// Netlist maps a net ID to its ordered connections.
type Netlist map[string][]NetConn

// IDToName maps a block ID to its display name. A tile's kernel is the
// substring of its display name before the first '$'.
type IDToName map[string]string

// SegmentKind discriminates the four routing-segment shapes a path can
// contain.
type SegmentKind int

const (
	SegUnknown SegmentKind = iota
	SegSB
	SegPORT
	SegREG
	SegRMUX
)

// Segment is a tagged union mirroring the four wire shapes a routing path
// emits. Exactly one field group is meaningful per Kind.
type Segment struct {
	Kind SegmentKind
	X, Y int
	BitWidth int

	// SB
	Track int
	Side  int
	IO    int

	// PORT
	Port string

	// REG (reuses Track)
	RegName string

	// RMUX
	RMUXName string
}

// Path is one routed sequence of segments belonging to a net.
type Path []Segment

// Routes maps a net ID to every path routed for it.
type Routes map[string][]Path
