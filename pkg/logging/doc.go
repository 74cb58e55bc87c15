// Package logging provides structured logging for graph construction and
// STA runs.
//
// # Overview
//
// The logging package implements a structured logging system built on
// log/slog, with log levels, contextual fields for the run/tile/kernel/net
// a log line belongs to, and context propagation.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//	    Level:  "info",
//	    Output: os.Stdout,
//	})
//
//	logger.Info("construction complete")
//
//	logger.WithRunID(report.RunID).
//	    WithNode(tile.TileID).
//	    Warn("missing tile for adjacency")
//
// # Context Integration
//
//	ctx = logger.WithContext(ctx)
//	...
//	logging.FromContext(ctx).Info("sta run complete")
//
// # Output Formats
//
// JSON (default):
//
//	{"time":"2024-01-15T10:30:00Z","level":"INFO","msg":"sta run complete","run_id":"..."}
//
// Pretty (Config.Pretty = true, for local development):
//
//	2024-01-15T10:30:00Z INFO sta run complete run_id=...
//
// # Thread Safety
//
// Logger wraps an slog.Logger; all operations are safe for concurrent use,
// though the core packages this logger serves never call it concurrently.
package logging
