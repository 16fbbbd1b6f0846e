package scheduler

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "hydration.scheduler"

// Metrics records dispatcher activity.
type Metrics struct {
	schedulesGenerated metric.Int64Counter
	remindersSent      metric.Int64Counter
	remindersSkipped   metric.Int64Counter
	deliveryFailures   metric.Int64Counter
	tickDuration       metric.Float64Histogram
}

// NewMetrics creates the instruments on mp, or on the global provider when
// mp is nil.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(meterName)

	schedulesGenerated, err := meter.Int64Counter(
		"hydration_schedules_generated_total",
		metric.WithDescription("Daily schedules generated or regenerated"),
		metric.WithUnit("{schedule}"),
	)
	if err != nil {
		return nil, err
	}

	remindersSent, err := meter.Int64Counter(
		"hydration_reminders_sent_total",
		metric.WithDescription("Reminders delivered and marked sent"),
		metric.WithUnit("{reminder}"),
	)
	if err != nil {
		return nil, err
	}

	remindersSkipped, err := meter.Int64Counter(
		"hydration_reminders_suppressed_total",
		metric.WithDescription("Plain reminders suppressed by goal or focus mode"),
		metric.WithUnit("{reminder}"),
	)
	if err != nil {
		return nil, err
	}

	deliveryFailures, err := meter.Int64Counter(
		"hydration_delivery_failures_total",
		metric.WithDescription("Failed deliveries and per-user tick errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	tickDuration, err := meter.Float64Histogram(
		"hydration_tick_duration_seconds",
		metric.WithDescription("Duration of one dispatcher tick"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30,
		),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		schedulesGenerated: schedulesGenerated,
		remindersSent:      remindersSent,
		remindersSkipped:   remindersSkipped,
		deliveryFailures:   deliveryFailures,
		tickDuration:       tickDuration,
	}, nil
}

func (m *Metrics) RecordScheduleGenerated(ctx context.Context, reason string) {
	m.schedulesGenerated.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reason", reason),
	))
}

func (m *Metrics) RecordSent(ctx context.Context, kind string) {
	m.remindersSent.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
	))
}

func (m *Metrics) RecordSuppressed(ctx context.Context, reason string) {
	m.remindersSkipped.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reason", reason),
	))
}

func (m *Metrics) RecordFailure(ctx context.Context, phase string) {
	m.deliveryFailures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("phase", phase),
	))
}

func (m *Metrics) RecordTickDuration(ctx context.Context, d time.Duration) {
	m.tickDuration.Record(ctx, d.Seconds())
}
