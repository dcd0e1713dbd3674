package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
)

// ProviderConfig configures metric export to an OpenTelemetry collector.
type ProviderConfig struct {
	ServiceName       string
	CollectorEndpoint string
	ExportInterval    time.Duration
}

// NewMeterProvider creates a meter provider that pushes to the collector over
// OTLP/gRPC every ExportInterval. Extra options are appended, e.g. more readers.
// The caller owns Shutdown, which flushes the last interval.
func NewMeterProvider(ctx context.Context, cfg ProviderConfig, opts ...sdkmetric.Option) (*sdkmetric.MeterProvider, error) {
	exp, err := otlpmetricgrpc.New(ctx,
		otlpmetricgrpc.WithEndpoint(cfg.CollectorEndpoint),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}

	res := sdkresource.NewSchemaless(attribute.String("service.name", cfg.ServiceName))

	options := append([]sdkmetric.Option{
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(cfg.ExportInterval))),
	}, opts...)

	return sdkmetric.NewMeterProvider(options...), nil
}
