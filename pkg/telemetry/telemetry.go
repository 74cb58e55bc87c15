package telemetry

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	// Service name for telemetry
	serviceName = "cgra-sta"

	// Metric names
	metricConstructions        = "construction.runs.total"
	metricConstructionDuration = "construction.duration"
	metricGraphNodes           = "construction.graph.nodes"
	metricGraphEdges           = "construction.graph.edges"
	metricSTARuns              = "sta.runs.total"
	metricSTADuration          = "sta.duration"
	metricCriticalPathDelay    = "sta.critical_path.delay_ps"
	metricClockFrequency       = "sta.clock.frequency_mhz"
)

// Provider manages OpenTelemetry setup and provides access to tracers and meters.
type Provider struct {
	meterProvider  *sdkmetric.MeterProvider
	tracerProvider trace.TracerProvider
	meter          metric.Meter
	tracer         trace.Tracer

	// Metrics instruments
	constructions        metric.Int64Counter
	constructionDuration metric.Float64Histogram
	graphNodes           metric.Int64Histogram
	graphEdges           metric.Int64Histogram
	staRuns              metric.Int64Counter
	staDuration          metric.Float64Histogram
	criticalPathDelay    metric.Int64Histogram
	clockFrequency       metric.Float64Histogram

	mu sync.RWMutex
}

// Config holds telemetry configuration
type Config struct {
	// ServiceName is the name of the service for telemetry
	ServiceName string

	// ServiceVersion is the version of the service
	ServiceVersion string

	// Environment (e.g., "production", "staging", "development")
	Environment string

	// EnableTracing enables distributed tracing
	EnableTracing bool

	// EnableMetrics enables metrics collection
	EnableMetrics bool
}

// DefaultConfig returns default telemetry configuration
func DefaultConfig() Config {
	return Config{
		ServiceName:    serviceName,
		ServiceVersion: "0.1.0",
		Environment:    "development",
		EnableTracing:  true,
		EnableMetrics:  true,
	}
}

// NewProvider creates a new telemetry provider with Prometheus metrics exporter.
// It initializes OpenTelemetry with the given configuration and returns a provider
// that can be used to create tracers and record metrics.
func NewProvider(ctx context.Context, config Config) (*Provider, error) {
	provider := &Provider{}

	// Create resource with service information
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(config.ServiceName),
			semconv.ServiceVersion(config.ServiceVersion),
			attribute.String("environment", config.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	// Initialize metrics if enabled
	if config.EnableMetrics {
		if err := provider.initMetrics(res); err != nil {
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
	}

	// Initialize tracing if enabled
	if config.EnableTracing {
		provider.initTracing()
	}

	return provider, nil
}

// initMetrics initializes the metrics provider with Prometheus exporter
func (p *Provider) initMetrics(res *resource.Resource) error {
	// Create Prometheus exporter
	exporter, err := prometheus.New()
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	// Create meter provider with the exporter
	p.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)

	// Set as global meter provider
	otel.SetMeterProvider(p.meterProvider)

	// Create meter
	p.meter = p.meterProvider.Meter(serviceName)

	// Create metric instruments
	if err := p.createMetricInstruments(); err != nil {
		return fmt.Errorf("failed to create metric instruments: %w", err)
	}

	return nil
}

// initTracing initializes the tracing provider
func (p *Provider) initTracing() {
	// For now, use the global tracer provider. In production this should be
	// configured with appropriate exporters (OTLP, Jaeger, etc.).
	p.tracerProvider = otel.GetTracerProvider()
	p.tracer = p.tracerProvider.Tracer(serviceName)
}

// createMetricInstruments creates all metric instruments
func (p *Provider) createMetricInstruments() error {
	var err error

	p.constructions, err = p.meter.Int64Counter(
		metricConstructions,
		metric.WithDescription("Total number of graph-construction runs"),
	)
	if err != nil {
		return err
	}

	p.constructionDuration, err = p.meter.Float64Histogram(
		metricConstructionDuration,
		metric.WithDescription("Graph construction duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return err
	}

	p.graphNodes, err = p.meter.Int64Histogram(
		metricGraphNodes,
		metric.WithDescription("Number of nodes in the constructed graph"),
	)
	if err != nil {
		return err
	}

	p.graphEdges, err = p.meter.Int64Histogram(
		metricGraphEdges,
		metric.WithDescription("Number of edges in the constructed graph"),
	)
	if err != nil {
		return err
	}

	p.staRuns, err = p.meter.Int64Counter(
		metricSTARuns,
		metric.WithDescription("Total number of STA traversal runs"),
	)
	if err != nil {
		return err
	}

	p.staDuration, err = p.meter.Float64Histogram(
		metricSTADuration,
		metric.WithDescription("STA traversal duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return err
	}

	p.criticalPathDelay, err = p.meter.Int64Histogram(
		metricCriticalPathDelay,
		metric.WithDescription("Reported critical path delay in picoseconds"),
		metric.WithUnit("ps"),
	)
	if err != nil {
		return err
	}

	p.clockFrequency, err = p.meter.Float64Histogram(
		metricClockFrequency,
		metric.WithDescription("Derived maximum clock frequency in MHz"),
		metric.WithUnit("MHz"),
	)
	if err != nil {
		return err
	}

	return nil
}

// Tracer returns the tracer for creating spans
func (p *Provider) Tracer() trace.Tracer {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.tracer
}

// Meter returns the meter for recording metrics
func (p *Provider) Meter() metric.Meter {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.meter
}

// RecordConstruction records metrics for one graph-construction run.
func (p *Provider) RecordConstruction(ctx context.Context, durationMS float64, nodeCount, edgeCount int) {
	if p.meter == nil {
		return
	}

	p.constructions.Add(ctx, 1)
	p.constructionDuration.Record(ctx, durationMS)
	p.graphNodes.Record(ctx, int64(nodeCount))
	p.graphEdges.Record(ctx, int64(edgeCount))
}

// RecordSTARun records metrics for one STA traversal.
func (p *Provider) RecordSTARun(ctx context.Context, durationMS float64, criticalPathPS int, clockMHz float64) {
	if p.meter == nil {
		return
	}

	attrs := []attribute.KeyValue{}

	p.staRuns.Add(ctx, 1, metric.WithAttributes(attrs...))
	p.staDuration.Record(ctx, durationMS, metric.WithAttributes(attrs...))
	p.criticalPathDelay.Record(ctx, int64(criticalPathPS), metric.WithAttributes(attrs...))
	p.clockFrequency.Record(ctx, clockMHz, metric.WithAttributes(attrs...))
}

// Shutdown gracefully shuts down the telemetry provider
func (p *Provider) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.meterProvider != nil {
		if err := p.meterProvider.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown meter provider: %w", err)
		}
	}

	return nil
}
