package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MeterName names the meter used for business metrics
const MeterName = "sale-workflow"

// Metric attribute keys
var (
	MetricAttrPaymentType = attribute.Key("payment_type")
	MetricAttrCurrency    = attribute.Key("currency")
	MetricAttrOutcome     = attribute.Key("outcome")
)

// Outcomes of an advance payment submission
const (
	OutcomePosted    = "posted"
	OutcomeRejected  = "rejected"
	OutcomeDuplicate = "duplicate"
	OutcomeFailed    = "failed"
)

// AdvancePaymentMetrics counts advance payment submissions and records the
// amounts that were posted.
type AdvancePaymentMetrics struct {
	submissions metric.Int64Counter
	amount      metric.Float64Histogram
}

// NewAdvancePaymentMetrics creates the instruments on meter. A nil meter
// uses the global meter provider.
func NewAdvancePaymentMetrics(meter metric.Meter) (*AdvancePaymentMetrics, error) {
	if meter == nil {
		meter = otel.Meter(MeterName)
	}
	submissions, err := meter.Int64Counter("advance_payments_total",
		metric.WithDescription("Advance payment submissions by outcome"),
		metric.WithUnit("{payment}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create advance_payments_total: %w", err)
	}
	amount, err := meter.Float64Histogram("advance_payment_amount",
		metric.WithDescription("Amounts of posted advance payments in the journal currency"),
		metric.WithUnit("{amount}"),
		metric.WithExplicitBucketBoundaries(10, 50, 100, 500, 1000, 5000, 10000, 50000),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create advance_payment_amount: %w", err)
	}
	return &AdvancePaymentMetrics{submissions: submissions, amount: amount}, nil
}

// RecordOutcome counts one submission
func (m *AdvancePaymentMetrics) RecordOutcome(ctx context.Context, paymentType, outcome string) {
	if m == nil {
		return
	}
	m.submissions.Add(ctx, 1, metric.WithAttributes(
		MetricAttrPaymentType.String(paymentType),
		MetricAttrOutcome.String(outcome),
	))
}

// RecordAmount records the amount of a posted payment
func (m *AdvancePaymentMetrics) RecordAmount(ctx context.Context, paymentType, currency string, amount float64) {
	if m == nil {
		return
	}
	m.amount.Record(ctx, amount, metric.WithAttributes(
		MetricAttrPaymentType.String(paymentType),
		MetricAttrCurrency.String(currency),
	))
}
