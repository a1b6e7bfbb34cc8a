package otel

import (
	"context"
	"fmt"

	"community-portal/config"
	"community-portal/internal/global/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.25.0"
)

var tracerProvider *sdktrace.TracerProvider

// OTLP Exporter
func newOTLPExporter(ctx context.Context, cfg config.OTel) (sdktrace.SpanExporter, error) {
	opts := []otlptracehttp.Option{
		otlptracehttp.WithInsecure(), // 禁用 TLS
		otlptracehttp.WithEndpoint(fmt.Sprintf("%s:%s", cfg.AgentHost, cfg.AgentPort)),
	}
	return otlptracehttp.New(ctx, opts...)
}

// Init 创建全局 TracerProvider，导出到 OTel.AgentHost:AgentPort
func Init(ctx context.Context) error {
	cfg := config.Get().OTel
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = logger.AppName
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
			semconv.DeploymentEnvironment(string(config.Get().Mode)),
		),
	)
	if err != nil {
		return err
	}

	exp, err := newOTLPExporter(ctx, cfg)
	if err != nil {
		return err
	}

	tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exp),
	)
	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))
	return nil
}

// Shutdown 确保优雅关闭
func Shutdown(ctx context.Context) error {
	if tracerProvider != nil {
		return tracerProvider.Shutdown(ctx)
	}
	return nil
}
