package telemetry

import (
	"context"
	"testing"

	"github.com/riordanpawley/morphpop/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSetup_DisabledWithoutEndpoint(t *testing.T) {
	t.Setenv(EndpointEnv, "")

	p, err := Setup(context.Background(), config.TelemetryConfig{ServiceName: "test"})

	require.NoError(t, err)
	assert.False(t, p.Enabled())
	assert.NoError(t, p.Shutdown(context.Background()))

	_, span := p.Tracer("x").Start(context.Background(), "noop")
	assert.False(t, span.SpanContext().IsValid(), "disabled tracers record nothing")
	span.End()
}

func TestEndpoint(t *testing.T) {
	t.Setenv(EndpointEnv, "collector:4318")

	assert.Equal(t, "collector:4318", Endpoint(config.TelemetryConfig{}))
	assert.Equal(t, "localhost:4318", Endpoint(config.TelemetryConfig{Endpoint: "localhost:4318"}))
}

func TestSetup_ExportsSpans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()

	p, err := Setup(context.Background(), config.TelemetryConfig{ServiceName: "morphpop-test"}, WithExporter(exporter))
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Shutdown(context.Background()) })

	require.True(t, p.Enabled())
	_, span := p.Tracer("morphpop/session").Start(context.Background(), "overlay")
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "overlay", spans[0].Name)
	assert.Contains(t, spans[0].Resource.Attributes(), attribute.String("service.name", "morphpop-test"))
}

func TestProvider_NilIsDisabled(t *testing.T) {
	var p *Provider

	assert.False(t, p.Enabled())
	assert.NotNil(t, p.Tracer("x"))
	assert.NoError(t, p.Shutdown(context.Background()))
}
