// Command sta runs static timing analysis over a post-place-and-route CGRA
// design and prints the critical path delay and maximum clock frequency.
//
// Usage:
//
//	sta -placement placement.json -netlist netlist.json -routes routes.json \
//	    -names names.json -delay-table delays.json [-filter expr] [-dot out.dot]
//
// Flags:
//
//	-placement string   JSON-encoded construct.Placement
//	-netlist string     JSON-encoded construct.Netlist
//	-routes string       JSON-encoded construct.Routes
//	-names string        JSON-encoded construct.IDToName
//	-delay-table string  JSON delay table (see pkg/delaytable)
//	-filter string       optional reportfilter expression scoping the printed breakdown
//	-dot string          optional path to write a DOT rendering of the graph
//
// PIPELINED and PE_LATENCY environment variables control PE pipelining (see
// pkg/config.FromEnv); this command reads them once at startup and passes
// the resulting latency into pkg/construct explicitly — the core packages
// never read the environment themselves.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cgra-tools/sta/pkg/config"
	"github.com/cgra-tools/sta/pkg/construct"
	"github.com/cgra-tools/sta/pkg/delaytable"
	"github.com/cgra-tools/sta/pkg/graph"
	"github.com/cgra-tools/sta/pkg/logging"
	"github.com/cgra-tools/sta/pkg/observer"
	"github.com/cgra-tools/sta/pkg/reportfilter"
	"github.com/cgra-tools/sta/pkg/sta"
	"github.com/cgra-tools/sta/pkg/telemetry"
)

func main() {
	placementPath := flag.String("placement", "", "JSON-encoded construct.Placement (required)")
	netlistPath := flag.String("netlist", "", "JSON-encoded construct.Netlist (required)")
	routesPath := flag.String("routes", "", "JSON-encoded construct.Routes (required)")
	namesPath := flag.String("names", "", "JSON-encoded construct.IDToName (required)")
	delayTablePath := flag.String("delay-table", "", "JSON delay table (required)")
	filterExpr := flag.String("filter", "", "optional reportfilter expression scoping the breakdown")
	dotPath := flag.String("dot", "", "optional path to write a DOT rendering of the graph")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")

	flag.Parse()

	logger := logging.New(logging.Config{Level: *logLevel, Output: os.Stdout})

	if *placementPath == "" || *netlistPath == "" || *routesPath == "" || *namesPath == "" || *delayTablePath == "" {
		fmt.Fprintln(os.Stderr, "sta: -placement, -netlist, -routes, -names, and -delay-table are all required")
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	if cfg.DelayTablePath == "" {
		cfg.DelayTablePath = *delayTablePath
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("invalid configuration: %v", err)
	}

	placement, err := decodePlacement(*placementPath)
	if err != nil {
		logger.Fatalf("load placement: %v", err)
	}
	netlist, err := decodeNetlist(*netlistPath)
	if err != nil {
		logger.Fatalf("load netlist: %v", err)
	}
	routes, err := decodeRoutes(*routesPath)
	if err != nil {
		logger.Fatalf("load routes: %v", err)
	}
	names, err := decodeNames(*namesPath)
	if err != nil {
		logger.Fatalf("load names: %v", err)
	}

	table, err := delaytable.Load(cfg.DelayTablePath)
	if err != nil {
		logger.Fatalf("load delay table: %v", err)
	}

	ctx := context.Background()

	telemetryProvider, err := telemetry.NewProvider(ctx, telemetry.DefaultConfig())
	if err != nil {
		logger.Warnf("telemetry disabled: %v", err)
		telemetryProvider = nil
	}

	obsManager := observer.NewManager()
	obsManager.Register(observer.NewConsoleObserverWithLogger(consoleLoggerAdapter{logger}))
	if telemetryProvider != nil {
		obsManager.Register(telemetry.NewTelemetryObserver(telemetryProvider))
		defer telemetryProvider.Shutdown(ctx)
	}

	obsManager.Notify(ctx, observer.Event{Type: observer.EventConstructionStart, Status: observer.StatusStarted, Timestamp: time.Now()})
	g, err := construct.Construct(placement, routes, names, netlist, cfg.EffectivePELatency())
	if err != nil {
		if g != nil && errors.Is(err, construct.ErrMissingTileForAdjacency) {
			logger.Warnf("construction: %v", err)
		} else {
			obsManager.Notify(ctx, observer.Event{Type: observer.EventConstructionEnd, Status: observer.StatusFailure, Error: err})
			logger.Fatalf("construction failed: %v", err)
		}
	}
	obsManager.Notify(ctx, observer.Event{
		Type:   observer.EventConstructionEnd,
		Status: observer.StatusSuccess,
		Metadata: map[string]interface{}{
			"node_count": len(g.Nodes()),
			"edge_count": len(g.Edges()),
		},
	})

	if *dotPath != "" {
		if err := writeDOT(g, *dotPath); err != nil {
			logger.Warnf("write dot: %v", err)
		}
	}

	obsManager.Notify(ctx, observer.Event{Type: observer.EventSTAStart, Status: observer.StatusStarted, Timestamp: time.Now()})
	report, timing, err := sta.Analyze(g, table)
	if err != nil {
		obsManager.Notify(ctx, observer.Event{Type: observer.EventSTAEnd, Status: observer.StatusFailure, Error: err})
		logger.Fatalf("sta run failed: %v", err)
	}
	obsManager.Notify(ctx, observer.Event{
		Type:   observer.EventSTAEnd,
		Status: observer.StatusSuccess,
		RunID:  report.RunID,
		Metadata: map[string]interface{}{
			"critical_path_ps": report.CriticalPathPS,
			"clock_mhz":        report.ClockMHz,
		},
	})

	fmt.Println(report.String())

	if *filterExpr != "" {
		pred, err := reportfilter.Compile(*filterExpr)
		if err != nil {
			logger.Fatalf("invalid filter: %v", err)
		}
		records, err := reportfilter.FilterBreakdowns(g.Nodes(), timing, table, pred)
		if err != nil {
			logger.Fatalf("apply filter: %v", err)
		}
		fmt.Printf("\nMatching nodes (%d):\n", len(records))
		for _, r := range records {
			fmt.Printf("  %-24s %-6s total=%dps hhops=%d uhops=%d dhops=%d pes=%d mems=%d glb=%d\n",
				r.Identity, r.Kernel, r.TotalPicosecs, r.HHops, r.UHops, r.DHops, r.PEs, r.Mems, r.Glb)
		}
	}
}

func decodePlacement(path string) (construct.Placement, error) {
	var v construct.Placement
	err := decodeJSONFile(path, &v)
	return v, err
}

func decodeNetlist(path string) (construct.Netlist, error) {
	var v construct.Netlist
	err := decodeJSONFile(path, &v)
	return v, err
}

func decodeRoutes(path string) (construct.Routes, error) {
	var v construct.Routes
	err := decodeJSONFile(path, &v)
	return v, err
}

func decodeNames(path string) (construct.IDToName, error) {
	var v construct.IDToName
	err := decodeJSONFile(path, &v)
	return v, err
}

func decodeJSONFile(path string, v interface{}) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

func writeDOT(g *graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return g.WriteDOT(f)
}

// consoleLoggerAdapter lets the CLI's structured logging.Logger back the
// observer package's simpler Logger interface, so pkg/observer stays free
// of a direct pkg/logging dependency.
type consoleLoggerAdapter struct {
	logger *logging.Logger
}

func (a consoleLoggerAdapter) Debug(msg string, fields map[string]interface{}) {
	a.logger.WithFields(fields).Debug(msg)
}
func (a consoleLoggerAdapter) Info(msg string, fields map[string]interface{}) {
	a.logger.WithFields(fields).Info(msg)
}
func (a consoleLoggerAdapter) Warn(msg string, fields map[string]interface{}) {
	a.logger.WithFields(fields).Warn(msg)
}
func (a consoleLoggerAdapter) Error(msg string, fields map[string]interface{}) {
	a.logger.WithFields(fields).Error(msg)
}
