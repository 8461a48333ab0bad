// Package telemetry exports overlay session traces over OTLP/HTTP.
package telemetry

import (
	"context"
	"os"

	"github.com/riordanpawley/morphpop/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// EndpointEnv is consulted when the config names no endpoint
const EndpointEnv = "OTEL_EXPORTER_OTLP_ENDPOINT"

// Provider owns the tracer provider for the life of the program. A nil or
// disabled Provider hands out no-op tracers.
type Provider struct {
	provider *sdktrace.TracerProvider
}

// Option customizes Setup
type Option func(*setup)

type setup struct {
	exporter sdktrace.SpanExporter
	syncer   bool
}

// WithExporter replaces the OTLP exporter. Spans are exported as soon as
// they end, which suits in-memory exporters in tests.
func WithExporter(exporter sdktrace.SpanExporter) Option {
	return func(s *setup) {
		s.exporter = exporter
		s.syncer = true
	}
}

// Setup creates the provider and installs it globally. Without an endpoint
// in cfg or the environment it returns a disabled Provider and a nil error.
func Setup(ctx context.Context, cfg config.TelemetryConfig, opts ...Option) (*Provider, error) {
	var s setup
	for _, opt := range opts {
		opt(&s)
	}

	if s.exporter == nil {
		endpoint := Endpoint(cfg)
		if endpoint == "" {
			return &Provider{}, nil // Disabled
		}
		exporter, err := otlptracehttp.New(ctx,
			otlptracehttp.WithEndpoint(endpoint),
			otlptracehttp.WithInsecure(),
		)
		if err != nil {
			return nil, err
		}
		s.exporter = exporter
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "morphpop"
	}
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)

	export := sdktrace.WithBatcher(s.exporter)
	if s.syncer {
		export = sdktrace.WithSyncer(s.exporter)
	}
	provider := sdktrace.NewTracerProvider(export, sdktrace.WithResource(res))
	otel.SetTracerProvider(provider)

	return &Provider{provider: provider}, nil
}

// Endpoint returns the configured OTLP endpoint, falling back to the
// environment
func Endpoint(cfg config.TelemetryConfig) string {
	if cfg.Endpoint != "" {
		return cfg.Endpoint
	}
	return os.Getenv(EndpointEnv)
}

// Enabled reports whether spans leave the process
func (p *Provider) Enabled() bool {
	return p != nil && p.provider != nil
}

// Tracer returns a named tracer, or a no-op one when disabled
func (p *Provider) Tracer(name string) oteltrace.Tracer {
	if !p.Enabled() {
		return noop.NewTracerProvider().Tracer(name)
	}
	return p.provider.Tracer(name)
}

// Shutdown flushes and closes the exporter
func (p *Provider) Shutdown(ctx context.Context) error {
	if !p.Enabled() {
		return nil
	}
	return p.provider.Shutdown(ctx)
}
