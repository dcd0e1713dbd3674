// Package telemetry exports transfer engine observations as OpenTelemetry metrics.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	transfersTotalName   = "transfers_total"
	transferDurationName = "transfer_duration_seconds"
)

// TransferMetrics implements transfer.MetricsCollector on top of an OTel meter.
type TransferMetrics struct {
	total    metric.Int64Counter
	duration metric.Float64Histogram
}

func NewTransferMetrics(meter metric.Meter) (*TransferMetrics, error) {
	total, err := meter.Int64Counter(transfersTotalName,
		metric.WithDescription("Finished transfers by outcome code"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", transfersTotalName, err)
	}

	duration, err := meter.Float64Histogram(transferDurationName,
		metric.WithDescription("Time from request to commit or rollback"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", transferDurationName, err)
	}

	return &TransferMetrics{total: total, duration: duration}, nil
}

func (m *TransferMetrics) RecordTransfer(ctx context.Context, currency, outcome string, d time.Duration) {
	m.total.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
		attribute.String("currency", currency),
	))
	m.duration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}
