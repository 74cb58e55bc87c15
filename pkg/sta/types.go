package sta

import (
	"fmt"

	"github.com/cgra-tools/sta/pkg/delaytable"
	"github.com/cgra-tools/sta/pkg/types"
)

// PathComponents is the per-node delay accumulator: a tuple of hop/tile
// counters plus a parent back-link to the predecessor the winning candidate
// came from. AvailableRegs is tracked but never contributes to Total; it is
// reserved for retiming tooling that does not exist in this port.
type PathComponents struct {
	Glbs          int
	HHops         int
	UHops         int
	DHops         int
	PEs           int
	Mems          int
	AvailableRegs int

	Parent types.Node
}

// Total sums every counter against its corresponding delay-table entry, in
// picoseconds.
func (c PathComponents) Total(t *delaytable.Table) int {
	return c.Glbs*t.GlobalBuf +
		c.HHops*t.SBHoriz +
		c.UHops*t.SBUp +
		c.DHops*t.SBDown +
		c.PEs*t.PE +
		c.Mems*t.Mem
}

// Breakdown pairs a node with the accumulator that produced its total delay.
type Breakdown struct {
	Node       types.Node
	Components PathComponents
}

// Report is the outcome of a single STA run: the critical path delay, the
// maximum clock frequency it implies, and the endpoint that produced it.
type Report struct {
	// RunID tags this run so repeated analyses of the same design are
	// distinguishable in aggregated logs and metrics.
	RunID string

	ClockMHz       float64
	CriticalPathPS int
	Endpoint       Breakdown
}

// String renders the report in the console shape the original CLI used:
// clock frequency, critical path delay, and the endpoint's per-counter
// breakdown.
func (r *Report) String() string {
	n := r.Endpoint.Node
	c := r.Endpoint.Components
	label := n.Identity()
	if rn, ok := n.(*types.RouteNode); ok {
		label = rn.Describe()
	}
	return fmt.Sprintf(
		"run %s\nmax clock frequency: %.3f MHz\ncritical path delay: %d ps (%.3f ns)\n"+
			"critical path endpoint: %s\n"+
			"  glb=%d hhops=%d uhops=%d dhops=%d pes=%d mems=%d available_regs=%d\n",
		r.RunID, r.ClockMHz, r.CriticalPathPS, float64(r.CriticalPathPS)/1000.0,
		label, c.Glbs, c.HHops, c.UHops, c.DHops, c.PEs, c.Mems, c.AvailableRegs,
	)
}
