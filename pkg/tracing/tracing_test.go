package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestExtractTraceIDWithoutSpan(t *testing.T) {
	assert.Empty(t, ExtractTraceID(context.Background()))
}

func TestStartSpanProducesTraceID(t *testing.T) {
	// 不挂Exporter的Provider,Span只在内存中流转
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ctx, span := StartSpan(context.Background(), "bookmall-test", "TestOperation")
	defer span.End()

	traceID := ExtractTraceID(ctx)
	assert.Len(t, traceID, 32)

	// 子Span与父Span共享TraceID
	childCtx, child := StartSpan(ctx, "bookmall-test", "ChildOperation")
	defer child.End()
	assert.Equal(t, traceID, ExtractTraceID(childCtx))
}
