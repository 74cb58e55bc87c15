package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/cgra-tools/sta/pkg/observer"
)

// TelemetryObserver implements observer.Observer and records telemetry data
// for graph-construction and STA run events.
type TelemetryObserver struct {
	provider *Provider

	constructionSpan      trace.Span
	staSpan               trace.Span
	constructionStartTime time.Time
	staStartTime          time.Time
}

// NewTelemetryObserver creates a new telemetry observer
func NewTelemetryObserver(provider *Provider) *TelemetryObserver {
	return &TelemetryObserver{provider: provider}
}

// OnEvent handles construction/STA events and records telemetry data
func (o *TelemetryObserver) OnEvent(ctx context.Context, event observer.Event) {
	switch event.Type {
	case observer.EventConstructionStart:
		o.handleConstructionStart(ctx, event)
	case observer.EventConstructionEnd:
		o.handleConstructionEnd(ctx, event)
	case observer.EventSTAStart:
		o.handleSTAStart(ctx, event)
	case observer.EventSTAEnd:
		o.handleSTAEnd(ctx, event)
	}
}

func (o *TelemetryObserver) handleConstructionStart(ctx context.Context, event observer.Event) {
	_, span := o.provider.Tracer().Start(ctx, "construct.construct",
		trace.WithAttributes(
			attribute.String("run.id", event.RunID),
		),
	)

	o.constructionSpan = span
	o.constructionStartTime = event.Timestamp
}

func (o *TelemetryObserver) handleConstructionEnd(ctx context.Context, event observer.Event) {
	duration := time.Since(o.constructionStartTime)

	nodeCount, edgeCount := 0, 0
	if val, ok := event.Metadata["node_count"].(int); ok {
		nodeCount = val
	}
	if val, ok := event.Metadata["edge_count"].(int); ok {
		edgeCount = val
	}

	o.provider.RecordConstruction(ctx, float64(duration.Milliseconds()), nodeCount, edgeCount)

	if o.constructionSpan != nil {
		if event.Error != nil {
			o.constructionSpan.RecordError(event.Error)
			o.constructionSpan.SetStatus(codes.Error, event.Error.Error())
		} else {
			o.constructionSpan.SetStatus(codes.Ok, "construction completed successfully")
		}
		o.constructionSpan.End()
	}
}

func (o *TelemetryObserver) handleSTAStart(ctx context.Context, event observer.Event) {
	var spanCtx context.Context
	if o.constructionSpan != nil {
		spanCtx = trace.ContextWithSpan(ctx, o.constructionSpan)
	} else {
		spanCtx = ctx
	}

	_, span := o.provider.Tracer().Start(spanCtx, "sta.run",
		trace.WithAttributes(
			attribute.String("run.id", event.RunID),
		),
	)

	o.staSpan = span
	o.staStartTime = event.Timestamp
}

func (o *TelemetryObserver) handleSTAEnd(ctx context.Context, event observer.Event) {
	duration := time.Since(o.staStartTime)

	criticalPathPS := 0
	if val, ok := event.Metadata["critical_path_ps"].(int); ok {
		criticalPathPS = val
	}
	clockMHz := 0.0
	if val, ok := event.Metadata["clock_mhz"].(float64); ok {
		clockMHz = val
	}

	o.provider.RecordSTARun(ctx, float64(duration.Milliseconds()), criticalPathPS, clockMHz)

	if o.staSpan != nil {
		o.staSpan.SetAttributes(attribute.String("run.id", event.RunID))
		if event.Error != nil {
			o.staSpan.RecordError(event.Error)
			o.staSpan.SetStatus(codes.Error, event.Error.Error())
		} else {
			o.staSpan.SetStatus(codes.Ok, "sta run completed successfully")
		}
		o.staSpan.End()
	}
}
