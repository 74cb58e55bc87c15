package reportfilter

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/cgra-tools/sta/pkg/delaytable"
	"github.com/cgra-tools/sta/pkg/sta"
	"github.com/cgra-tools/sta/pkg/types"
)

// Record is the flattened view of one node's timing breakdown a filter
// expression is evaluated against.
type Record struct {
	Identity  string
	Kernel    string
	NodeKind  string // "tile" or "route"
	TileType  string // PE, MEM, POND, REG, IO16, IO1 ("" for route nodes)
	RouteType string // SB, PORT, REG, RMUX ("" for tile nodes)

	Glb           int
	HHops         int
	UHops         int
	DHops         int
	PEs           int
	Mems          int
	AvailableRegs int
	TotalPicosecs int
}

// RecordOf builds a Record for n from its accumulated PathComponents.
func RecordOf(n types.Node, c sta.PathComponents, table *delaytable.Table) Record {
	r := Record{
		Identity:      n.Identity(),
		Glb:           c.Glbs,
		HHops:         c.HHops,
		UHops:         c.UHops,
		DHops:         c.DHops,
		PEs:           c.PEs,
		Mems:          c.Mems,
		AvailableRegs: c.AvailableRegs,
		TotalPicosecs: c.Total(table),
	}
	switch node := n.(type) {
	case *types.TileNode:
		r.NodeKind = "tile"
		r.TileType = node.Type().String()
		r.Kernel = node.Kernel
	case *types.RouteNode:
		r.NodeKind = "route"
		r.RouteType = node.RouteType.String()
		r.Kernel = node.Kernel
	}
	return r
}

func (r Record) env() map[string]interface{} {
	return map[string]interface{}{
		"identity":       r.Identity,
		"kernel":         r.Kernel,
		"node_kind":      r.NodeKind,
		"tile_type":      r.TileType,
		"route_type":     r.RouteType,
		"glb":            r.Glb,
		"hhops":          r.HHops,
		"uhops":          r.UHops,
		"dhops":          r.DHops,
		"pes":            r.PEs,
		"mems":           r.Mems,
		"available_regs": r.AvailableRegs,
		"total_ps":       r.TotalPicosecs,
	}
}

// Predicate is a compiled boolean expression over a Record, cached so
// repeated evaluation across a whole node list only compiles once.
type Predicate struct {
	source  string
	program *vm.Program
}

// Compile parses and type-checks expression as a boolean predicate over a
// Record's fields. A zero-value Record is used to build the type
// environment, so the expression is checked against the Record shape, not
// against live data.
func Compile(expression string) (*Predicate, error) {
	program, err := expr.Compile(expression, expr.Env(Record{}.env()), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("reportfilter: compile %q: %w", expression, err)
	}
	return &Predicate{source: expression, program: program}, nil
}

// Match evaluates the predicate against r.
func (p *Predicate) Match(r Record) (bool, error) {
	out, err := expr.Run(p.program, r.env())
	if err != nil {
		return false, fmt.Errorf("reportfilter: evaluate %q: %w", p.source, err)
	}
	b, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %q produced %T", ErrNotBoolean, p.source, out)
	}
	return b, nil
}

// FilterBreakdowns applies a compiled predicate over every node in timing,
// returning the matching records sorted by descending total delay — the
// shape the CLI's near-critical-path report walks.
func FilterBreakdowns(nodes []types.Node, timing map[string]sta.PathComponents, table *delaytable.Table, pred *Predicate) ([]Record, error) {
	var out []Record
	for _, n := range nodes {
		c, ok := timing[n.Identity()]
		if !ok {
			continue
		}
		rec := RecordOf(n, c, table)
		matched, err := pred.Match(rec)
		if err != nil {
			return nil, err
		}
		if matched {
			out = append(out, rec)
		}
	}
	sortRecordsDescending(out)
	return out, nil
}

func sortRecordsDescending(recs []Record) {
	for i := 1; i < len(recs); i++ {
		for j := i; j > 0 && recs[j].TotalPicosecs > recs[j-1].TotalPicosecs; j-- {
			recs[j], recs[j-1] = recs[j-1], recs[j]
		}
	}
}
