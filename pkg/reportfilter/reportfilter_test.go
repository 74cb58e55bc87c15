package reportfilter

import (
	"testing"

	"github.com/cgra-tools/sta/pkg/delaytable"
	"github.com/cgra-tools/sta/pkg/sta"
	"github.com/cgra-tools/sta/pkg/types"
)

func testTable(t *testing.T) *delaytable.Table {
	t.Helper()
	tbl, err := delaytable.FromMap(map[string]int{
		"glb": 100, "sb_horiz": 20, "sb_up": 30, "sb_down": 30, "pe": 200, "mem": 150,
	})
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	return tbl
}

func TestCompileRejectsNonBooleanExpression(t *testing.T) {
	if _, err := Compile("pes + mems"); err == nil {
		t.Fatalf("expected compile error for non-boolean expression")
	}
}

func TestCompileRejectsUnknownField(t *testing.T) {
	if _, err := Compile("bogus_field > 1"); err == nil {
		t.Fatalf("expected compile error for unknown field")
	}
}

func TestMatchAgainstKernelAndHops(t *testing.T) {
	pred, err := Compile(`kernel == "conv2d" && hhops > 1`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	table := testTable(t)
	pe := types.NewTileNode(0, 0, "p0", "conv2d")
	rec := RecordOf(pe, sta.PathComponents{HHops: 2, PEs: 1}, table)

	matched, err := pred.Match(rec)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if !matched {
		t.Errorf("expected record %+v to match", rec)
	}

	rec2 := RecordOf(pe, sta.PathComponents{HHops: 0, PEs: 1}, table)
	matched2, err := pred.Match(rec2)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if matched2 {
		t.Errorf("expected record %+v not to match", rec2)
	}
}

func TestFilterBreakdownsSortsByDescendingTotal(t *testing.T) {
	table := testTable(t)
	pred, err := Compile("total_ps >= 0")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	low := types.NewTileNode(0, 0, "p0", "")
	high := types.NewTileNode(1, 0, "p1", "")
	nodes := []types.Node{low, high}
	timing := map[string]sta.PathComponents{
		"p0": {PEs: 1},
		"p1": {PEs: 1, Mems: 1},
	}

	recs, err := FilterBreakdowns(nodes, timing, table, pred)
	if err != nil {
		t.Fatalf("FilterBreakdowns: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("len(recs) = %d, want 2", len(recs))
	}
	if recs[0].Identity != "p1" {
		t.Errorf("recs[0].Identity = %q, want %q (higher total first)", recs[0].Identity, "p1")
	}
}

func TestFilterBreakdownsSkipsNodesMissingFromTiming(t *testing.T) {
	table := testTable(t)
	pred, err := Compile("total_ps >= 0")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	only := types.NewTileNode(0, 0, "p0", "")
	untimed := types.NewTileNode(1, 0, "p1", "")
	timing := map[string]sta.PathComponents{"p0": {PEs: 1}}

	recs, err := FilterBreakdowns([]types.Node{only, untimed}, timing, table, pred)
	if err != nil {
		t.Fatalf("FilterBreakdowns: %v", err)
	}
	if len(recs) != 1 || recs[0].Identity != "p0" {
		t.Errorf("recs = %+v, want exactly the p0 record", recs)
	}
}
