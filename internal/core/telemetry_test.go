// AngelaMos | 2026
// telemetry_test.go

package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/carterperez-dev/drycleaning-api/internal/config"
)

func useRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(previous)
		_ = tp.Shutdown(context.Background())
	})

	return recorder
}

func TestNewTelemetry_Disabled(t *testing.T) {
	tel, err := NewTelemetry(
		context.Background(),
		config.OtelConfig{Enabled: false, Endpoint: "collector:4317", ServiceName: "drycleaning-api"},
		config.AppConfig{Version: "1.0.0"},
	)
	require.NoError(t, err)
	require.NotNil(t, tel.Tracer)
	assert.NoError(t, tel.Shutdown(context.Background()))
}

func TestSampleRatio(t *testing.T) {
	assert.InDelta(t, defaultSampleRatio, sampleRatio(0), 1e-9)
	assert.InDelta(t, defaultSampleRatio, sampleRatio(-0.5), 1e-9)
	assert.InDelta(t, defaultSampleRatio, sampleRatio(1.5), 1e-9)
	assert.InDelta(t, 0.25, sampleRatio(0.25), 1e-9)
	assert.InDelta(t, 1.0, sampleRatio(1), 1e-9)
}

func TestServiceAttributes(t *testing.T) {
	attrs := attribute.NewSet(serviceAttributes(
		config.OtelConfig{ServiceName: "drycleaning-api"},
		config.AppConfig{Version: "2.1.0", Environment: "production"},
	)...)

	name, ok := attrs.Value("service.name")
	require.True(t, ok)
	assert.Equal(t, "drycleaning-api", name.AsString())

	env, ok := attrs.Value("environment")
	require.True(t, ok)
	assert.Equal(t, "production", env.AsString())
}

func TestStartSpan_RecordsErrors(t *testing.T) {
	recorder := useRecorder(t)

	assert.Empty(t, TraceIDFromContext(context.Background()))

	ctx, span := StartSpan(context.Background(), "ledger.create_entry",
		attribute.String("ledger.customer", "Ada"))
	assert.Len(t, TraceIDFromContext(ctx), 32)

	SetSpanError(span, nil)
	SetSpanError(span, errors.New("store contention"))
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "ledger.create_entry", ended[0].Name())
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "store contention", ended[0].Status().Description)
	assert.Len(t, ended[0].Events(), 1)
}
