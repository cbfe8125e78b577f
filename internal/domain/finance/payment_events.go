package finance

import (
	"time"

	"github.com/dixmit/sale-workflow/internal/domain/shared"
	"github.com/dixmit/sale-workflow/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypePayment = "Payment"

// Event type constants
const (
	EventTypePaymentCreated = "PaymentCreated"
	EventTypePaymentPosted  = "PaymentPosted"
)

// PaymentCreatedEvent is raised when a draft payment is created
type PaymentCreatedEvent struct {
	shared.BaseDomainEvent
	PaymentID     uuid.UUID            `json:"payment_id"`
	PaymentNumber string               `json:"payment_number"`
	PaymentType   PaymentType          `json:"payment_type"`
	Amount        decimal.Decimal      `json:"amount"`
	Currency      valueobject.Currency `json:"currency"`
	PartnerID     uuid.UUID            `json:"partner_id"`
	JournalID     uuid.UUID            `json:"journal_id"`
}

// NewPaymentCreatedEvent creates a new PaymentCreatedEvent
func NewPaymentCreatedEvent(p *Payment) *PaymentCreatedEvent {
	return &PaymentCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentCreated, AggregateTypePayment, p.ID, p.TenantID),
		PaymentID:       p.ID,
		PaymentNumber:   p.PaymentNumber,
		PaymentType:     p.PaymentType,
		Amount:          p.Amount,
		Currency:        p.Currency,
		PartnerID:       p.PartnerID,
		JournalID:       p.JournalID,
	}
}

// PaymentPostedEvent is raised when a payment is posted
type PaymentPostedEvent struct {
	shared.BaseDomainEvent
	PaymentID     uuid.UUID            `json:"payment_id"`
	PaymentNumber string               `json:"payment_number"`
	PaymentType   PaymentType          `json:"payment_type"`
	Amount        decimal.Decimal      `json:"amount"`
	Currency      valueobject.Currency `json:"currency"`
	SalesOrderID  *uuid.UUID           `json:"sales_order_id,omitempty"`
	PostedAt      time.Time            `json:"posted_at"`
}

// NewPaymentPostedEvent creates a new PaymentPostedEvent
func NewPaymentPostedEvent(p *Payment) *PaymentPostedEvent {
	postedAt := time.Now()
	if p.PostedAt != nil {
		postedAt = *p.PostedAt
	}
	return &PaymentPostedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentPosted, AggregateTypePayment, p.ID, p.TenantID),
		PaymentID:       p.ID,
		PaymentNumber:   p.PaymentNumber,
		PaymentType:     p.PaymentType,
		Amount:          p.Amount,
		Currency:        p.Currency,
		SalesOrderID:    p.SalesOrderID,
		PostedAt:        postedAt,
	}
}
