package telemetry

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestInitOtel_Disabled(t *testing.T) {
	var buf bytes.Buffer
	before := otel.GetTracerProvider()

	shutdown, err := InitOtel(context.Background(), Config{Enabled: false}, &buf)

	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
	assert.Equal(t, before, otel.GetTracerProvider())
	assert.Zero(t, buf.Len())
}

func TestInitOtel_Local(t *testing.T) {
	// Given: telemetry enabled with no collector endpoint
	tracerProvider, meterProvider := otel.GetTracerProvider(), otel.GetMeterProvider()
	t.Cleanup(func() {
		otel.SetTracerProvider(tracerProvider)
		otel.SetMeterProvider(meterProvider)
	})
	var buf bytes.Buffer
	ctx := context.Background()

	shutdown, err := InitOtel(ctx, Config{Enabled: true, ServiceName: "ttt-test"}, &buf)
	require.NoError(t, err)

	// When: a span is recorded and the providers are shut down
	_, span := otel.Tracer("test").Start(ctx, "agent.move")
	span.End()
	require.NoError(t, shutdown(ctx))

	// Then: the span was written to the writer with the service name
	assert.Contains(t, buf.String(), "agent.move")
	assert.Contains(t, buf.String(), "ttt-test")
}
