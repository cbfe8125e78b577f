package advance

import (
	"context"
	"fmt"

	"github.com/dixmit/sale-workflow/internal/domain/finance"
	"github.com/dixmit/sale-workflow/internal/domain/shared"
	"github.com/dixmit/sale-workflow/internal/domain/shared/valueobject"
	"github.com/dixmit/sale-workflow/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// PaymentPostedHandler records posted advance payments in the logs and
// the advance_payment_amount histogram.
type PaymentPostedHandler struct {
	metrics *telemetry.AdvancePaymentMetrics
	logger  *zap.Logger
}

// NewPaymentPostedHandler creates a new handler for payment posted events
func NewPaymentPostedHandler(metrics *telemetry.AdvancePaymentMetrics, logger *zap.Logger) *PaymentPostedHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentPostedHandler{metrics: metrics, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *PaymentPostedHandler) EventTypes() []string {
	return []string{finance.EventTypePaymentPosted}
}

// Handle processes a PaymentPostedEvent. Payments that are not linked to
// a sales order are ignored.
func (h *PaymentPostedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	posted, ok := event.(*finance.PaymentPostedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			finance.EventTypePaymentPosted, event.EventType())
	}
	if posted.SalesOrderID == nil {
		return nil
	}

	h.metrics.RecordAmount(ctx, string(posted.PaymentType), string(posted.Currency), posted.Amount.InexactFloat64())
	h.logger.Info("advance payment posted",
		zap.String("tenant_id", posted.TenantID().String()),
		zap.String("payment_id", posted.PaymentID.String()),
		zap.String("payment_number", posted.PaymentNumber),
		zap.String("order_id", posted.SalesOrderID.String()),
		zap.String("payment_type", string(posted.PaymentType)),
		zap.Stringer("amount", valueobject.MustMoney(posted.Amount, posted.Currency)),
	)
	return nil
}

var _ shared.EventHandler = (*PaymentPostedHandler)(nil)
