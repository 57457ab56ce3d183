package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"github.com/inercia/go-oai/pkg/transport"
)

var telemetryFlags struct {
	metricsFile  string
	otlpEndpoint string
	otlpInsecure bool
}

// tel is set up before a subcommand runs and flushed when Execute returns
var tel *telemetry

// telemetry holds the optional metrics and tracing of one CLI invocation
type telemetry struct {
	metricsFile string
	registry    *prometheus.Registry
	metrics     *transport.Metrics
	tracer      *sdktrace.TracerProvider
}

func init() {
	rootCmd.PersistentFlags().StringVar(&telemetryFlags.metricsFile, "metrics-file", "",
		"write request metrics in Prometheus text format to this file on exit")
	rootCmd.PersistentFlags().StringVar(&telemetryFlags.otlpEndpoint, "otlp-endpoint", "",
		"export request traces to this OTLP gRPC endpoint (host:port)")
	rootCmd.PersistentFlags().BoolVar(&telemetryFlags.otlpInsecure, "otlp-insecure", false,
		"connect to the OTLP endpoint without TLS")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		var err error
		tel, err = startTelemetry(commandContext(cmd))
		return err
	}
}

// startTelemetry builds the telemetry requested on the command line. It
// returns nil when neither metrics nor tracing is enabled.
func startTelemetry(ctx context.Context) (*telemetry, error) {
	var exporter sdktrace.SpanExporter
	if telemetryFlags.otlpEndpoint != "" {
		opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(telemetryFlags.otlpEndpoint)}
		if telemetryFlags.otlpInsecure {
			opts = append(opts, otlptracegrpc.WithInsecure())
		}
		exp, err := otlptracegrpc.New(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
		exporter = exp
	}
	if exporter == nil && telemetryFlags.metricsFile == "" {
		return nil, nil
	}
	return newTelemetry(telemetryFlags.metricsFile, exporter)
}

// newTelemetry enables metrics when metricsFile is set and tracing when
// exporter is not nil
func newTelemetry(metricsFile string, exporter sdktrace.SpanExporter) (*telemetry, error) {
	t := &telemetry{metricsFile: metricsFile}

	if metricsFile != "" {
		t.registry = prometheus.NewRegistry()
		m, err := transport.NewMetrics(t.registry, "oai")
		if err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		t.metrics = m
	}

	if exporter != nil {
		res := sdkresource.NewSchemaless(
			semconv.ServiceName("oai"),
			semconv.ServiceVersion(Version),
		)
		t.tracer = sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(res),
		)
	}
	return t, nil
}

// middlewares returns the transport middlewares for the enabled telemetry
func (t *telemetry) middlewares() []transport.Middleware {
	if t == nil {
		return nil
	}
	var mws []transport.Middleware
	if t.tracer != nil {
		mws = append(mws, transport.Tracing(otelhttp.WithTracerProvider(t.tracer)))
	}
	if t.metrics != nil {
		mws = append(mws, t.metrics.Middleware())
	}
	return mws
}

// flush writes the metrics file and sends the remaining spans
func (t *telemetry) flush(ctx context.Context) error {
	if t == nil {
		return nil
	}
	var errs []error
	if t.registry != nil {
		if err := prometheus.WriteToTextfile(t.metricsFile, t.registry); err != nil {
			errs = append(errs, fmt.Errorf("failed to write metrics: %w", err))
		}
	}
	if t.tracer != nil {
		if err := t.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to flush traces: %w", err))
		}
	}
	return errors.Join(errs...)
}
