// Package tracing 基于OpenTelemetry的分布式追踪
//
// 设计说明:
// 1. 使用OTLP gRPC协议导出,厂商中立,Jaeger/Tempo都能接收
// 2. TracerProvider设置为全局,业务代码通过StartSpan创建Span,
//    无需显式传递Provider
// 3. 采样率可配置:开发环境100%,生产环境建议1%-10%
package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/liuwen/bookmall/pkg/errors"
)

// InitTracer 初始化全局TracerProvider
//
// endpoint是OTLP gRPC端点(如localhost:4317),sampleRatio取值(0,1]。
// 返回的shutdown必须在程序退出前调用,否则最后一批Span会丢失。
func InitTracer(serviceName, endpoint string, sampleRatio float64) (func(context.Context) error, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "创建OTLP exporter失败")
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(serviceName)),
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "创建资源属性失败")
	}

	if sampleRatio <= 0 || sampleRatio > 1 {
		sampleRatio = 1
	}

	tp := sdktrace.NewTracerProvider(
		// ParentBased保证上游已采样的链路在本服务不断链
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRatio))),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	shutdown := func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	}
	return shutdown, nil
}

// StartSpan 创建Span
// ctx包含父Span时自动挂为子Span,否则成为根Span
func StartSpan(ctx context.Context, tracerName, spanName string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, spanName)
}

// ExtractTraceID 提取当前TraceID,用于日志关联;无有效Span时返回空串
func ExtractTraceID(ctx context.Context) string {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return ""
	}
	return sc.TraceID().String()
}
