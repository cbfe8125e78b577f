package trade

import (
	"github.com/dixmit/sale-workflow/internal/domain/finance"
	"github.com/dixmit/sale-workflow/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeSalesOrder = "SalesOrder"

// Event type constants
const (
	EventTypeAdvancePaymentRegistered = "SalesOrderAdvancePaymentRegistered"
)

// AdvancePaymentRegisteredEvent is raised when a payment is linked to an order
type AdvancePaymentRegisteredEvent struct {
	shared.BaseDomainEvent
	OrderID        uuid.UUID            `json:"order_id"`
	OrderNumber    string               `json:"order_number"`
	PaymentID      uuid.UUID            `json:"payment_id"`
	PaymentType    finance.PaymentType  `json:"payment_type"`
	Amount         decimal.Decimal      `json:"amount"`
	ResidualAmount decimal.Decimal      `json:"residual_amount"`
	AdvanceStatus  AdvancePaymentStatus `json:"advance_status"`
}

// NewAdvancePaymentRegisteredEvent creates a new AdvancePaymentRegisteredEvent
func NewAdvancePaymentRegisteredEvent(order *SalesOrder, paymentID uuid.UUID, amount decimal.Decimal, paymentType finance.PaymentType) *AdvancePaymentRegisteredEvent {
	return &AdvancePaymentRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAdvancePaymentRegistered, AggregateTypeSalesOrder, order.ID, order.TenantID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		PaymentID:       paymentID,
		PaymentType:     paymentType,
		Amount:          amount,
		ResidualAmount:  order.ResidualAmount,
		AdvanceStatus:   order.AdvanceStatus,
	}
}
