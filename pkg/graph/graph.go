// Package graph implements RoutingResultGraph: the fused tile/routing DAG
// that graph construction populates and STA walks. It owns adjacency,
// topological ordering, cycle breaking, and the node-category views STA and
// reporting consume (PEs, memories, ROMs, shift registers, ponds, IOs).
package graph

import (
	"fmt"
	"io"

	"github.com/cgra-tools/sta/pkg/types"
)

// Point is a grid coordinate used to key the placement map.
type Point struct{ X, Y int }

// Edge is a directed connection between two nodes, identified by their
// Node.Identity() strings so the graph never compares node values directly.
type Edge struct {
	From types.Node
	To   types.Node
}

// Graph is the routing-result graph: a fused DAG of TileNodes and RouteNodes.
// All iteration (nodes, edges, adjacency) follows insertion order, which is
// what makes topological sort and cycle breaking deterministic.
type Graph struct {
	nodes    []types.Node
	nodeByID map[string]types.Node
	tileByID map[string]*types.TileNode
	edges    []Edge
	edgeSeen map[string]bool
	sources  map[string][]types.Node
	sinks    map[string][]types.Node
	inputs   []types.Node
	outputs  []types.Node

	// Construction-time bookkeeping, populated by pkg/construct.
	Placement map[Point][]string
	IDToPorts map[string][]string
	IDToName  map[string]string
	AddedRegs int

	// Category caches: nil until first request, then frozen. Populating one
	// of these after the graph is still being edited will return a stale
	// view; construction must finish editing (including FixCycles) before
	// any of these getters are called.
	mems      []types.Node
	roms      []types.Node
	regs      []types.Node
	shiftRegs []types.Node
	ponds     []types.Node
	pes       []types.Node
	inputIOs  []types.Node
	outputIOs []types.Node
}

// New creates an empty RoutingResultGraph.
func New() *Graph {
	return &Graph{
		nodeByID:  make(map[string]types.Node),
		tileByID:  make(map[string]*types.TileNode),
		edgeSeen:  make(map[string]bool),
		sources:   make(map[string][]types.Node),
		sinks:     make(map[string][]types.Node),
		Placement: make(map[Point][]string),
		IDToPorts: make(map[string][]string),
		IDToName:  make(map[string]string),
	}
}

// AddNode registers n in the node list, idempotently. TileNodes are also
// indexed by tile ID for GetTile/GetTileAt/GetRegAt.
func (g *Graph) AddNode(n types.Node) {
	id := n.Identity()
	if _, ok := g.nodeByID[id]; ok {
		return
	}
	g.nodeByID[id] = n
	g.nodes = append(g.nodes, n)
	if tile, ok := n.(*types.TileNode); ok {
		g.tileByID[tile.TileID] = tile
	}
}

// AddEdge adds a directed edge u->v, idempotently. Both nodes must already
// have been added via AddNode.
func (g *Graph) AddEdge(u, v types.Node) error {
	if _, ok := g.nodeByID[u.Identity()]; !ok {
		return fmt.Errorf("%w: source %s", ErrInvalidEdge, u.Identity())
	}
	if _, ok := g.nodeByID[v.Identity()]; !ok {
		return fmt.Errorf("%w: target %s", ErrInvalidEdge, v.Identity())
	}
	key := u.Identity() + "->" + v.Identity()
	if g.edgeSeen[key] {
		return nil
	}
	g.edgeSeen[key] = true
	g.edges = append(g.edges, Edge{From: u, To: v})
	g.sources[v.Identity()] = append(g.sources[v.Identity()], u)
	g.sinks[u.Identity()] = append(g.sinks[u.Identity()], v)
	return nil
}

// RemoveEdge removes u->v from the edge list and both adjacency indices.
// Tolerates edges that are not present.
func (g *Graph) RemoveEdge(u, v types.Node) {
	key := u.Identity() + "->" + v.Identity()
	if !g.edgeSeen[key] {
		return
	}
	delete(g.edgeSeen, key)
	for i, e := range g.edges {
		if e.From.Identity() == u.Identity() && e.To.Identity() == v.Identity() {
			g.edges = append(g.edges[:i], g.edges[i+1:]...)
			break
		}
	}
	g.sources[v.Identity()] = removeByIdentity(g.sources[v.Identity()], u.Identity())
	g.sinks[u.Identity()] = removeByIdentity(g.sinks[u.Identity()], v.Identity())
}

func removeByIdentity(list []types.Node, id string) []types.Node {
	for i, n := range list {
		if n.Identity() == id {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// Nodes returns the node list in insertion order.
func (g *Graph) Nodes() []types.Node { return g.nodes }

// Edges returns the edge list in insertion order.
func (g *Graph) Edges() []Edge { return g.edges }

// Sources returns the nodes with an edge into n, in insertion order.
func (g *Graph) Sources(n types.Node) []types.Node { return g.sources[n.Identity()] }

// Sinks returns the nodes with an edge out of n, in insertion order.
func (g *Graph) Sinks(n types.Node) []types.Node { return g.sinks[n.Identity()] }

// Inputs returns the nodes with no sources, as of the last
// UpdateSourcesAndSinks call.
func (g *Graph) Inputs() []types.Node { return g.inputs }

// Outputs returns the nodes with no sinks, as of the last
// UpdateSourcesAndSinks call.
func (g *Graph) Outputs() []types.Node { return g.outputs }

// GetTile looks up a tile by its tile ID.
func (g *Graph) GetTile(tileID string) (*types.TileNode, bool) {
	t, ok := g.tileByID[tileID]
	return t, ok
}

// UpdateSourcesAndSinks rebuilds sources, sinks, inputs, and outputs from
// scratch using the current edge list. Must be called after any bulk edit
// that didn't go through AddEdge/RemoveEdge (construction does this once
// after the full segment walk).
func (g *Graph) UpdateSourcesAndSinks() {
	g.sources = make(map[string][]types.Node, len(g.nodes))
	g.sinks = make(map[string][]types.Node, len(g.nodes))
	for _, n := range g.nodes {
		g.sources[n.Identity()] = nil
		g.sinks[n.Identity()] = nil
	}
	for _, e := range g.edges {
		g.sources[e.To.Identity()] = append(g.sources[e.To.Identity()], e.From)
		g.sinks[e.From.Identity()] = append(g.sinks[e.From.Identity()], e.To)
	}
	g.inputs = nil
	g.outputs = nil
	for _, n := range g.nodes {
		if len(g.sources[n.Identity()]) == 0 {
			g.inputs = append(g.inputs, n)
		}
		if len(g.sinks[n.Identity()]) == 0 {
			g.outputs = append(g.outputs, n)
		}
	}
}

// IsReachable reports whether dst is reachable from src by following sinks.
func (g *Graph) IsReachable(src, dst types.Node) bool {
	if src.Identity() == dst.Identity() {
		return true
	}
	visited := map[string]bool{src.Identity(): true}
	stack := []types.Node{src}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range g.sinks[n.Identity()] {
			if next.Identity() == dst.Identity() {
				return true
			}
			if !visited[next.Identity()] {
				visited[next.Identity()] = true
				stack = append(stack, next)
			}
		}
	}
	return false
}

// TopologicalSort returns an order where every edge goes from a
// lower-indexed node to a higher-indexed one: a reverse post-order DFS from
// every input node. The DFS uses an explicit stack rather than recursion so
// routing graphs with chains deeper than Go's default stack growth headroom
// sort without risk.
func (g *Graph) TopologicalSort() []types.Node {
	visited := make(map[string]bool, len(g.nodes))
	var postorder []types.Node

	type frame struct {
		n   types.Node
		idx int
	}
	for _, start := range g.inputs {
		if visited[start.Identity()] {
			continue
		}
		visited[start.Identity()] = true
		stack := []*frame{{n: start}}
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			children := g.sinks[top.n.Identity()]
			if top.idx < len(children) {
				next := children[top.idx]
				top.idx++
				if !visited[next.Identity()] {
					visited[next.Identity()] = true
					stack = append(stack, &frame{n: next})
				}
				continue
			}
			postorder = append(postorder, top.n)
			stack = stack[:len(stack)-1]
		}
	}

	order := make([]types.Node, len(postorder))
	for i, n := range postorder {
		order[len(postorder)-1-i] = n
	}
	return order
}

// FixCycles runs one pass of DFS-with-recursion-stack from every input node,
// then from every node still unvisited (in insertion order), so a cycle that
// no input reaches is found too. On the first back-edge discovered it
// removes that edge and returns true.
// Callers must invoke it repeatedly until it returns false. Cycle breaking
// never errors: it mutates the graph to restore acyclicity silently, since a
// handful of feedback edges from register routing are an expected artifact
// of place-and-route, not a malformed design.
func (g *Graph) FixCycles() bool {
	visited := make(map[string]bool, len(g.nodes))

	type frame struct {
		n   types.Node
		idx int
	}
	starts := append(append([]types.Node{}, g.inputs...), g.nodes...)
	for _, start := range starts {
		if visited[start.Identity()] {
			continue
		}
		onStack := map[string]bool{start.Identity(): true}
		visited[start.Identity()] = true
		stack := []*frame{{n: start}}
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			children := g.sinks[top.n.Identity()]
			descended := false
			for top.idx < len(children) {
				next := children[top.idx]
				top.idx++
				if onStack[next.Identity()] {
					g.RemoveEdge(top.n, next)
					return true
				}
				if !visited[next.Identity()] {
					visited[next.Identity()] = true
					onStack[next.Identity()] = true
					stack = append(stack, &frame{n: next})
					descended = true
					break
				}
			}
			if descended {
				continue
			}
			onStack[top.n.Identity()] = false
			stack = stack[:len(stack)-1]
		}
	}
	return false
}

// GetTiles returns every TileNode in insertion order.
func (g *Graph) GetTiles() []*types.TileNode {
	var out []*types.TileNode
	for _, n := range g.nodes {
		if t, ok := n.(*types.TileNode); ok {
			out = append(out, t)
		}
	}
	return out
}

// GetRoutes returns every RouteNode in insertion order.
func (g *Graph) GetRoutes() []*types.RouteNode {
	var out []*types.RouteNode
	for _, n := range g.nodes {
		if r, ok := n.(*types.RouteNode); ok {
			out = append(out, r)
		}
	}
	return out
}

// GetMems returns every MEM tile. Memoized on first call.
func (g *Graph) GetMems() []types.Node {
	if g.mems == nil {
		g.mems = g.filterTiles(types.TileMEM, nil)
	}
	return g.mems
}

// GetROMs returns every MEM tile whose incoming sources include a PORT named
// ren_in_0. Memoized on first call.
func (g *Graph) GetROMs() []types.Node {
	if g.roms == nil {
		g.roms = g.filterTiles(types.TileMEM, func(t *types.TileNode) bool {
			for _, src := range g.sources[t.Identity()] {
				if r, ok := src.(*types.RouteNode); ok && r.RouteType == types.RoutePORT && r.Port == "ren_in_0" {
					return true
				}
			}
			return false
		})
	}
	return g.roms
}

// GetRegs returns every REG tile. Memoized on first call.
func (g *Graph) GetRegs() []types.Node {
	if g.regs == nil {
		g.regs = g.filterTiles(types.TileREG, nil)
	}
	return g.regs
}

// GetShiftRegs returns every MEM tile used as a fixed-depth delay line,
// identified by its display name containing "d_reg_". Memoized on first
// call.
func (g *Graph) GetShiftRegs() []types.Node {
	if g.shiftRegs == nil {
		g.shiftRegs = g.filterTiles(types.TileMEM, func(t *types.TileNode) bool {
			return containsSubstring(g.IDToName[t.TileID], "d_reg_")
		})
	}
	return g.shiftRegs
}

// GetPonds returns every POND tile. Memoized on first call.
func (g *Graph) GetPonds() []types.Node {
	if g.ponds == nil {
		g.ponds = g.filterTiles(types.TilePOND, nil)
	}
	return g.ponds
}

// GetPEs returns every PE tile. Memoized on first call.
//
// The Python original filters on TileType.POND here, almost certainly a
// copy-paste slip from get_ponds(); this port filters on TilePE, the
// evidently intended behavior (see DESIGN.md).
func (g *Graph) GetPEs() []types.Node {
	if g.pes == nil {
		g.pes = g.filterTiles(types.TilePE, nil)
	}
	return g.pes
}

// GetInputIOs returns every IO1/IO16 tile with no sources. Memoized on first
// call.
func (g *Graph) GetInputIOs() []types.Node {
	if g.inputIOs == nil {
		g.inputIOs = g.filterIOs(func(t *types.TileNode) bool {
			return len(g.sources[t.Identity()]) == 0
		})
	}
	return g.inputIOs
}

// GetOutputIOs returns every IO1/IO16 tile with no sinks. Memoized on first
// call.
func (g *Graph) GetOutputIOs() []types.Node {
	if g.outputIOs == nil {
		g.outputIOs = g.filterIOs(func(t *types.TileNode) bool {
			return len(g.sinks[t.Identity()]) == 0
		})
	}
	return g.outputIOs
}

func (g *Graph) filterTiles(want types.TileType, pred func(*types.TileNode) bool) []types.Node {
	var out []types.Node
	for _, t := range g.GetTiles() {
		if t.Type() != want {
			continue
		}
		if pred != nil && !pred(t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func (g *Graph) filterIOs(pred func(*types.TileNode) bool) []types.Node {
	var out []types.Node
	for _, t := range g.GetTiles() {
		tt := t.Type()
		if tt != types.TileIO1 && tt != types.TileIO16 {
			continue
		}
		if pred(t) {
			out = append(out, t)
		}
	}
	return out
}

func containsSubstring(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}

// GetTileAt returns the tile placed at (x, y) whose port list contains port.
func (g *Graph) GetTileAt(x, y int, port string) (*types.TileNode, bool) {
	for _, tileID := range g.Placement[Point{x, y}] {
		for _, p := range g.IDToPorts[tileID] {
			if p == port {
				if t, ok := g.tileByID[tileID]; ok {
					return t, true
				}
			}
		}
	}
	return nil, false
}

// GetRegAt returns the register tile placed at (x, y), if any.
func (g *Graph) GetRegAt(x, y int) (*types.TileNode, bool) {
	for _, tileID := range g.Placement[Point{x, y}] {
		if len(tileID) > 0 && tileID[0] == 'r' {
			if t, ok := g.tileByID[tileID]; ok {
				return t, true
			}
		}
	}
	return nil, false
}

// UpdateEdgeKernels propagates tile kernel ownership onto the routing fabric.
//
// It walks from each input node using a LIFO queue (a stack, not a true
// FIFO), matching the original implementation's queue.pop() behavior: when a
// RouteNode is reachable from more than one kernel's walk, whichever visits
// it last wins, not necessarily the nearest kernel. The final pass below —
// every tile overwriting the kernel of its own feeding RouteNodes — corrects
// the routing immediately adjacent to each tile regardless of which walk
// visited it last, which is the property reporting actually depends on.
func (g *Graph) UpdateEdgeKernels() {
	for _, in := range g.inputs {
		visited := map[string]bool{in.Identity(): true}
		stack := []types.Node{in}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			kernel := kernelOf(n)
			for _, next := range g.sinks[n.Identity()] {
				if visited[next.Identity()] {
					continue
				}
				visited[next.Identity()] = true
				stack = append(stack, next)
				if r, ok := next.(*types.RouteNode); ok {
					r.Kernel = kernel
				}
			}
		}
	}

	for _, tile := range g.GetTiles() {
		for _, src := range g.sources[tile.Identity()] {
			if r, ok := src.(*types.RouteNode); ok {
				r.Kernel = tile.Kernel
			}
		}
	}
}

func kernelOf(n types.Node) string {
	switch v := n.(type) {
	case *types.TileNode:
		return v.Kernel
	case *types.RouteNode:
		return v.Kernel
	default:
		return ""
	}
}

// WriteDOT renders the graph in Graphviz DOT format. Optional visualization
// hook; never consulted by construction or STA.
func (g *Graph) WriteDOT(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "digraph routing_result {"); err != nil {
		return err
	}
	for _, n := range g.nodes {
		if _, err := fmt.Fprintf(w, "  %q;\n", label(n)); err != nil {
			return err
		}
	}
	for _, e := range g.edges {
		if _, err := fmt.Fprintf(w, "  %q -> %q;\n", label(e.From), label(e.To)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}

func label(n types.Node) string {
	if r, ok := n.(*types.RouteNode); ok {
		return r.Describe()
	}
	return n.Identity()
}
