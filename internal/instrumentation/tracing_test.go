package instrumentation

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
)

// withSpanRecorder installs a recording tracer provider for the duration
// of a test and restores the global provider afterwards.
func withSpanRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	return recorder
}

func TestStartToolSpan(t *testing.T) {
	recorder := withSpanRecorder(t)

	ctx, span := StartToolSpan(context.Background(), "check_replica_capacity",
		attribute.String(SpanAttrNamespace, "backend"),
		attribute.String(SpanAttrAppName, "api"),
		attribute.Int(SpanAttrReplicas, 3),
	)
	SetSpanSuccess(span)
	span.End()

	assert.NotEmpty(t, GetTraceID(ctx))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "tool.check_replica_capacity", spans[0].Name())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)

	attrs := spans[0].Attributes()
	assert.Contains(t, attrs, attribute.String(SpanAttrTool, "check_replica_capacity"))
	assert.Contains(t, attrs, attribute.String(SpanAttrNamespace, "backend"))
	assert.Contains(t, attrs, attribute.Int(SpanAttrReplicas, 3))
}

func TestStartListSpanRecordsError(t *testing.T) {
	recorder := withSpanRecorder(t)

	_, span := StartListSpan(context.Background(), "nodes")
	SetSpanError(span, errors.New("connection refused"))
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "k8s.list.nodes", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "connection refused", spans[0].Status().Description)
	assert.Contains(t, spans[0].Attributes(), attribute.String(SpanAttrResource, "nodes"))
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "exception", spans[0].Events()[0].Name)
}

func TestSetSpanErrorIgnoresNil(t *testing.T) {
	recorder := withSpanRecorder(t)

	_, span := StartSpan(context.Background(), "snapshot")
	SetSpanError(span, nil)
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Empty(t, spans[0].Events())
}

func TestSpanContextString(t *testing.T) {
	withSpanRecorder(t)

	assert.Empty(t, SpanContextString(context.Background()))
	assert.Empty(t, GetTraceID(context.Background()))

	ctx, span := StartSpan(context.Background(), "snapshot")
	defer span.End()

	assert.Contains(t, SpanContextString(ctx), "trace_id=")
	assert.Contains(t, SpanContextString(ctx), "span_id=")
}
