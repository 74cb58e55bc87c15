// Package telemetry provides OpenTelemetry integration for distributed tracing
// and Prometheus-exported metrics. It enables observability for
// graph-construction and STA runs:
//   - Distributed tracing spans around pkg/construct.Construct and pkg/sta.Run
//   - Prometheus metrics for construction duration, graph size, STA duration,
//     critical path delay, and derived clock frequency
//   - A TelemetryObserver that drives both from pkg/observer's phase events
package telemetry
