package sta

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/cgra-tools/sta/pkg/delaytable"
	"github.com/cgra-tools/sta/pkg/graph"
	"github.com/cgra-tools/sta/pkg/types"
)

// Run performs the delay-accumulating topological traversal described in the
// design and returns the critical path report.
//
// g is assumed fully constructed (acyclic, sources/sinks populated, every
// tile's InputPortLatencies/InputPortBreakPath annotated) — Run never
// mutates it.
func Run(g *graph.Graph, table *delaytable.Table) (*Report, error) {
	report, _, err := Analyze(g, table)
	return report, err
}

// Analyze is Run plus the full per-node accumulator table, keyed by node
// identity. The CLI's near-critical-path report (scoped by pkg/reportfilter)
// walks this map directly instead of re-running the traversal.
func Analyze(g *graph.Graph, table *delaytable.Table) (*Report, map[string]PathComponents, error) {
	nodes := g.Nodes()
	if len(nodes) == 0 {
		return nil, nil, ErrEmptyGraph
	}

	order := g.TopologicalSort()
	timing := make(map[string]PathComponents, len(order))

	for _, n := range order {
		preds := g.Sources(n)

		var candidates []PathComponents
		if len(preds) == 0 && isInputIO(n) {
			candidates = []PathComponents{{Glbs: 1}}
		} else {
			candidates = []PathComponents{{}}
		}

		for _, p := range preds {
			c := timing[p.Identity()]
			c.Parent = p

			switch node := n.(type) {
			case *types.TileNode:
				switch node.Type() {
				case types.TilePE:
					c.PEs++
				case types.TileMEM:
					c.Mems++
				case types.TileIO1, types.TileIO16:
					c.Glbs++
					// POND and REG contribute no tile-level delay.
				}

				breakPath, err := inputBreakPath(node, p)
				if err != nil {
					return nil, nil, err
				}
				if breakPath {
					// The register boundary resets accumulation — even the
					// increment just applied above is discarded.
					c = PathComponents{Parent: p}
				}

			case *types.RouteNode:
				if node.RouteType == types.RouteSB && node.IO == 1 {
					switch node.Side {
					case 3:
						c.UHops++
					case 1:
						c.DHops++
					default:
						c.HHops++
					}
				}
				if node.RouteType == types.RouteRMUX {
					if reg, ok := p.(*types.RouteNode); !ok || reg.RouteType != types.RouteREG {
						c.AvailableRegs++
					}
				}
			}

			candidates = append(candidates, c)
		}

		timing[n.Identity()] = selectMax(candidates, table)
	}

	best, bestTotal := pickCriticalEndpoint(nodes, timing, table)

	clockMHz := math.Inf(1)
	if bestTotal > 0 {
		clockMHz = 1.0e6 / float64(bestTotal)
	}

	return &Report{
		RunID:          uuid.NewString(),
		ClockMHz:       clockMHz,
		CriticalPathPS: bestTotal,
		Endpoint:       Breakdown{Node: best, Components: timing[best.Identity()]},
	}, timing, nil
}

// isInputIO reports whether n is an IO1/IO16 tile — the only node kind the
// traversal seeds with a global-buffer access rather than an empty
// accumulator.
func isInputIO(n types.Node) bool {
	tile, ok := n.(*types.TileNode)
	if !ok {
		return false
	}
	t := tile.Type()
	return t == types.TileIO1 || t == types.TileIO16
}

// inputBreakPath looks up whether the edge from p into tile crosses a
// register boundary. p must be a PORT or REG RouteNode; anything else means
// graph construction produced a tile fed by fabric-internal routing (SB,
// RMUX), which is a construction bug, not a timing condition.
func inputBreakPath(tile *types.TileNode, p types.Node) (bool, error) {
	route, ok := p.(*types.RouteNode)
	if !ok {
		return false, fmt.Errorf("%w: tile %s fed by tile %s", ErrNonPortRegPredecessor, tile.TileID, p.Identity())
	}
	switch route.RouteType {
	case types.RoutePORT:
		return tile.InputPortBreakPath[route.Port], nil
	case types.RouteREG:
		return tile.InputPortBreakPath["reg"], nil
	default:
		return false, fmt.Errorf("%w: tile %s fed by %s", ErrNonPortRegPredecessor, tile.TileID, route.Describe())
	}
}

// selectMax returns the candidate with the largest total delay, the first
// one seen winning ties.
func selectMax(candidates []PathComponents, table *delaytable.Table) PathComponents {
	best := candidates[0]
	bestTotal := best.Total(table)
	for _, c := range candidates[1:] {
		if total := c.Total(table); total > bestTotal {
			best, bestTotal = c, total
		}
	}
	return best
}

// pickCriticalEndpoint finds the node with the largest accumulated total,
// walking the node list in reverse so that among equal totals the
// later-inserted node wins. This mirrors the original tool's sort-after-
// reversing behavior; the tie-break is presentational only.
func pickCriticalEndpoint(nodes []types.Node, timing map[string]PathComponents, table *delaytable.Table) (types.Node, int) {
	var best types.Node
	bestTotal := -1
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		total := timing[n.Identity()].Total(table)
		if total > bestTotal {
			bestTotal = total
			best = n
		}
	}
	return best, bestTotal
}
