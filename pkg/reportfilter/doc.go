// Package reportfilter lets a caller scope the STA near-critical-path report
// to nodes matching a boolean expression over a node's timing breakdown
// (e.g. "kernel == \"conv2d\" && hhops > 2"), evaluated with expr-lang/expr.
package reportfilter
