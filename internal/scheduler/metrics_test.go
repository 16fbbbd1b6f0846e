package scheduler

import (
	"context"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/mock/gomock"
)

func counterTotal(rm metricdata.ResourceMetrics, name string) int64 {
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					total += dp.Value
				}
			}
		}
	}
	return total
}

func TestMetrics_TickIsRecorded(t *testing.T) {
	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(ctx) })

	m, err := NewMetrics(mp)
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	f := newFixture(t, nil)
	f.disp.metrics = m
	f.seedUser(t, 1, "UTC", nil)
	f.sink.EXPECT().Send(gomock.Any(), int64(1), morning2750).Return(nil)

	f.disp.Tick(ctx, mustUTC(t, "2026-03-10 08:00"))

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	if got := counterTotal(rm, "hydration_schedules_generated_total"); got != 1 {
		t.Fatalf("schedules generated = %d", got)
	}
	if got := counterTotal(rm, "hydration_reminders_sent_total"); got != 1 {
		t.Fatalf("reminders sent = %d", got)
	}
}
