package telemetry

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
)

const (
	exportTimeout  = 3 * time.Second
	metricInterval = 15 * time.Second
)

// OtlpConnConfig is where one signal is exported, grpc wins when both
// endpoints are set.
type OtlpConnConfig struct {
	GrpcEndpoint string            `json:"grpc_endpoint"`
	HttpEndpoint string            `json:"http_endpoint"`
	Headers      map[string]string `json:"headers"`
}

func (c OtlpConnConfig) protocol() string {
	switch {
	case c.GrpcEndpoint != "":
		return "grpc"
	case c.HttpEndpoint != "":
		return "http"
	default:
		return ""
	}
}

func (c OtlpConnConfig) configured() bool {
	return c.protocol() != ""
}

type OtlpConfig struct {
	Traces  OtlpConnConfig `json:"traces"`
	Metrics OtlpConnConfig `json:"metrics"`
}

// Config is the shape of telemetry.json5.
type Config struct {
	Otlp OtlpConfig `json:"otlp"`
}

// newExporter builds the grpc or http exporter of a signal.
func newExporter[T any](
	ctx context.Context,
	signal string,
	c OtlpConnConfig,
	grpc func(context.Context, OtlpConnConfig) (T, error),
	http func(context.Context, OtlpConnConfig) (T, error),
) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, exportTimeout)
	defer cancel()

	protocol := c.protocol()
	endpoint := c.HttpEndpoint
	if protocol == "grpc" {
		endpoint = c.GrpcEndpoint
	}
	slog.Info(
		"otlp exporter initialized",
		"signal", signal,
		"type", protocol,
		"endpoint", endpoint,
		"headers", len(c.Headers) > 0,
	)
	if protocol == "grpc" {
		return grpc(ctx, c)
	}
	return http(ctx, c)
}

func newTraceProvider(ctx context.Context, r *resource.Resource, c OtlpConnConfig) (*trace.TracerProvider, error) {
	exporter, err := newExporter(
		ctx, "traces", c,
		func(ctx context.Context, c OtlpConnConfig) (trace.SpanExporter, error) {
			return otlptracegrpc.New(
				ctx,
				otlptracegrpc.WithEndpointURL(c.GrpcEndpoint),
				otlptracegrpc.WithHeaders(c.Headers),
			)
		},
		func(ctx context.Context, c OtlpConnConfig) (trace.SpanExporter, error) {
			return otlptracehttp.New(
				ctx,
				otlptracehttp.WithEndpointURL(c.HttpEndpoint),
				otlptracehttp.WithHeaders(c.Headers),
			)
		},
	)
	if err != nil {
		return nil, err
	}
	return trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(r),
	), nil
}

func newMetricProvider(ctx context.Context, r *resource.Resource, c OtlpConnConfig) (*metric.MeterProvider, error) {
	exporter, err := newExporter(
		ctx, "metrics", c,
		func(ctx context.Context, c OtlpConnConfig) (metric.Exporter, error) {
			return otlpmetricgrpc.New(
				ctx,
				otlpmetricgrpc.WithEndpointURL(c.GrpcEndpoint),
				otlpmetricgrpc.WithHeaders(c.Headers),
			)
		},
		func(ctx context.Context, c OtlpConnConfig) (metric.Exporter, error) {
			return otlpmetrichttp.New(
				ctx,
				otlpmetrichttp.WithEndpointURL(c.HttpEndpoint),
				otlpmetrichttp.WithHeaders(c.Headers),
			)
		},
	)
	if err != nil {
		return nil, err
	}
	return metric.NewMeterProvider(
		metric.WithReader(metric.NewPeriodicReader(exporter, metric.WithInterval(metricInterval))),
		metric.WithResource(r),
	), nil
}
