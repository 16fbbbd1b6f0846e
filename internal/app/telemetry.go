package app

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.uber.org/zap"
)

const serviceName = "hydration-bot"

// setupMetrics installs the global MeterProvider. With METRICS_OTLP_ENDPOINT
// set, measurements are pushed over OTLP/HTTP every METRICS_INTERVAL.
func (a *App) setupMetrics(ctx context.Context) (*sdkmetric.MeterProvider, error) {
	opts := []sdkmetric.Option{
		sdkmetric.WithResource(resource.NewSchemaless(
			attribute.String("service.name", serviceName),
		)),
	}
	if a.cfg.MetricsEndpoint != "" {
		exp, err := otlpmetrichttp.New(ctx, otlpmetrichttp.WithEndpointURL(a.cfg.MetricsEndpoint))
		if err != nil {
			return nil, fmt.Errorf("otlp metric exporter: %w", err)
		}
		opts = append(opts, sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(a.cfg.MetricsInterval)),
		))
		a.log.Info("metrics export enabled",
			zap.String("endpoint", a.cfg.MetricsEndpoint),
			zap.Duration("interval", a.cfg.MetricsInterval),
		)
	} else {
		a.log.Info("metrics export disabled: no METRICS_OTLP_ENDPOINT")
	}

	mp := sdkmetric.NewMeterProvider(opts...)
	otel.SetMeterProvider(mp)
	a.meters = mp
	return mp, nil
}
