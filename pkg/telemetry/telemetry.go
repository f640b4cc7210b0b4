// Package telemetry installs the global OpenTelemetry tracer and meter providers.
package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/dskvich/oracai/pkg/logger"
)

const (
	serviceName    = "oracai"
	exportInterval = 10 * time.Second
)

type Config struct {
	Enabled bool
	Dir     string
}

// Init exports spans and metrics as JSON into rotated files under cfg.Dir. When telemetry is
// disabled the global no-op providers stay in place and the returned shutdown does nothing.
func Init(ctx context.Context, cfg Config) (func(), error) {
	if !cfg.Enabled {
		return func() {}, nil
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(serviceName)))
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating telemetry directory: %w", err)
	}

	traceFile := rotatedFile(filepath.Join(cfg.Dir, "traces.log"))
	traceExporter, err := stdouttrace.New(stdouttrace.WithWriter(traceFile))
	if err != nil {
		return nil, fmt.Errorf("creating trace exporter: %w", err)
	}

	metricsFile := rotatedFile(filepath.Join(cfg.Dir, "metrics.log"))
	metricExporter, err := stdoutmetric.New(stdoutmetric.WithWriter(metricsFile))
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter, sdkmetric.WithInterval(exportInterval))),
		sdkmetric.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)

	slog.InfoContext(ctx, "Telemetry enabled", "dir", cfg.Dir)

	shutdown := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := tp.Shutdown(ctx); err != nil {
			slog.Error("Shutting down tracer provider", logger.Err(err))
		}
		if err := mp.Shutdown(ctx); err != nil {
			slog.Error("Shutting down meter provider", logger.Err(err))
		}
		for _, f := range []*lumberjack.Logger{traceFile, metricsFile} {
			if err := f.Close(); err != nil {
				slog.Error("Closing telemetry file", "file", f.Filename, logger.Err(err))
			}
		}
	}

	return shutdown, nil
}

func rotatedFile(name string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   name,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
}
