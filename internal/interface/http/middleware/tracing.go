package middleware

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/liuwen/bookmall/pkg/tracing"
)

const tracerName = "bookmall-http"

// Tracing HTTP请求追踪中间件
// 从请求头提取上游traceparent接续链路,Span命名使用路由模板,
// 响应头回写X-Trace-Id便于排查
func Tracing() gin.HandlerFunc {
	propagator := otel.GetTextMapPropagator()
	return func(c *gin.Context) {
		ctx := propagator.Extract(c.Request.Context(),
			propagation.HeaderCarrier(c.Request.Header))

		spanName := c.FullPath()
		if spanName == "" {
			spanName = "unmatched"
		}

		ctx, span := otel.Tracer(tracerName).Start(ctx, c.Request.Method+" "+spanName,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", c.Request.Method),
				attribute.String("http.route", spanName),
			),
		)
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		if traceID := tracing.ExtractTraceID(ctx); traceID != "" {
			c.Header("X-Trace-Id", traceID)
		}

		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(attribute.Int("http.status_code", status))
		if status >= 500 {
			span.SetStatus(codes.Error, "server error")
		}
	}
}
