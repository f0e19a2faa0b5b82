package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const feederMeterName = "feeder.service"

type FeederMetrics struct {
	weightUpdates     metric.Int64Counter
	criticalReadings  metric.Int64Counter
	triggerDispatches metric.Int64Counter
	scheduleLookups   metric.Int64Counter
}

func NewFeederMetrics() (*FeederMetrics, error) {
	meter := otel.Meter(feederMeterName)

	weightUpdates, err := meter.Int64Counter(
		"feeder_weight_updates_total",
		metric.WithDescription("Weight readings delivered to live observers"),
		metric.WithUnit("{reading}"),
	)
	if err != nil {
		return nil, err
	}

	criticalReadings, err := meter.Int64Counter(
		"feeder_critical_readings_total",
		metric.WithDescription("Weight readings evaluated at or below the critical threshold"),
		metric.WithUnit("{reading}"),
	)
	if err != nil {
		return nil, err
	}

	triggerDispatches, err := meter.Int64Counter(
		"feeder_trigger_dispatches_total",
		metric.WithDescription("Manual dispense triggers written"),
		metric.WithUnit("{trigger}"),
	)
	if err != nil {
		return nil, err
	}

	scheduleLookups, err := meter.Int64Counter(
		"feeder_schedule_lookups_total",
		metric.WithDescription("Next-distribution-time computations"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	return &FeederMetrics{
		weightUpdates:     weightUpdates,
		criticalReadings:  criticalReadings,
		triggerDispatches: triggerDispatches,
		scheduleLookups:   scheduleLookups,
	}, nil
}

func (m *FeederMetrics) RecordWeightUpdate(ctx context.Context, distributorID string) {
	if m == nil {
		return
	}
	m.weightUpdates.Add(ctx, 1, metric.WithAttributes(
		attribute.String("distributor_id", distributorID),
	))
}

func (m *FeederMetrics) RecordCriticalReading(ctx context.Context, distributorID string) {
	if m == nil {
		return
	}
	m.criticalReadings.Add(ctx, 1, metric.WithAttributes(
		attribute.String("distributor_id", distributorID),
	))
}

func (m *FeederMetrics) RecordTriggerDispatch(ctx context.Context, distributorID string, accepted bool) {
	if m == nil {
		return
	}
	m.triggerDispatches.Add(ctx, 1, metric.WithAttributes(
		attribute.String("distributor_id", distributorID),
		attribute.Bool("accepted", accepted),
	))
}

func (m *FeederMetrics) RecordScheduleLookup(ctx context.Context, found bool) {
	if m == nil {
		return
	}
	m.scheduleLookups.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("found", found),
	))
}
