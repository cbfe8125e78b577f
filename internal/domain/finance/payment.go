package finance

import (
	"fmt"
	"time"

	"github.com/dixmit/sale-workflow/internal/domain/shared"
	"github.com/dixmit/sale-workflow/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentState represents the state of a payment
type PaymentState string

const (
	PaymentStateDraft     PaymentState = "draft"
	PaymentStatePosted    PaymentState = "posted"
	PaymentStateCancelled PaymentState = "cancelled"
)

// IsValid checks if the state is a valid PaymentState
func (s PaymentState) IsValid() bool {
	switch s {
	case PaymentStateDraft, PaymentStatePosted, PaymentStateCancelled:
		return true
	}
	return false
}

// PartnerType tells whether the counterpart is a customer or a supplier
type PartnerType string

const (
	PartnerTypeCustomer PartnerType = "customer"
	PartnerTypeSupplier PartnerType = "supplier"
)

// ErrNonPositiveAdvance is returned when a payment would be created with a
// negative or zero amount. The direction is carried by the payment type.
var ErrNonPositiveAdvance = shared.NewValidationError(
	"The amount to advance must always be positive. Please use the payment type to indicate if this is an inbound or an outbound payment.",
)

// PaymentValues are the values a payment is created from
type PaymentValues struct {
	Date                time.Time
	Amount              decimal.Decimal
	PaymentType         PaymentType
	PartnerType         PartnerType
	Ref                 string
	JournalID           uuid.UUID
	Currency            valueobject.Currency
	PartnerID           uuid.UUID
	PaymentMethodLineID *uuid.UUID
}

// Payment is a customer or supplier payment booked on a bank or cash journal
type Payment struct {
	shared.TenantAggregateRoot
	PaymentNumber       string
	Date                time.Time
	Amount              decimal.Decimal
	Currency            valueobject.Currency
	PaymentType         PaymentType
	PartnerType         PartnerType
	PartnerID           uuid.UUID
	JournalID           uuid.UUID
	PaymentMethodLineID *uuid.UUID
	Ref                 string
	SalesOrderID        *uuid.UUID
	OrderAmount         decimal.Decimal
	State               PaymentState
	PostedAt            *time.Time
	CancelledAt         *time.Time
	CancelReason        string
}

// NewPayment creates a draft payment from prepared values
func NewPayment(tenantID uuid.UUID, paymentNumber string, vals PaymentValues) (*Payment, error) {
	if paymentNumber == "" {
		return nil, shared.NewDomainError("INVALID_PAYMENT_NUMBER", "Payment number cannot be empty")
	}
	if len(paymentNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_PAYMENT_NUMBER", "Payment number cannot exceed 50 characters")
	}
	if !vals.Amount.IsPositive() {
		return nil, ErrNonPositiveAdvance
	}
	if !vals.PaymentType.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_TYPE", "Invalid payment type")
	}
	if vals.PartnerType != PartnerTypeCustomer && vals.PartnerType != PartnerTypeSupplier {
		return nil, shared.NewDomainError("INVALID_PARTNER_TYPE", "Invalid partner type")
	}
	if vals.JournalID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_JOURNAL", "Journal is required")
	}
	if vals.PartnerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARTNER", "Partner is required")
	}
	if err := vals.Currency.Validate(); err != nil {
		return nil, shared.NewDomainError("INVALID_CURRENCY", err.Error())
	}
	if vals.Date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Payment date is required")
	}
	if len(vals.Ref) > 255 {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Payment reference cannot exceed 255 characters")
	}

	p := &Payment{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		PaymentNumber:       paymentNumber,
		Date:                vals.Date,
		Amount:              vals.Amount,
		Currency:            vals.Currency,
		PaymentType:         vals.PaymentType,
		PartnerType:         vals.PartnerType,
		PartnerID:           vals.PartnerID,
		JournalID:           vals.JournalID,
		PaymentMethodLineID: vals.PaymentMethodLineID,
		Ref:                 vals.Ref,
		State:               PaymentStateDraft,
	}
	p.AddDomainEvent(NewPaymentCreatedEvent(p))
	return p, nil
}

// LinkSalesOrder attaches the payment to a sales order. orderAmount is the
// payment amount expressed in the order currency.
func (p *Payment) LinkSalesOrder(orderID uuid.UUID, orderAmount decimal.Decimal) error {
	if p.State == PaymentStateCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cannot link a cancelled payment")
	}
	if orderID == uuid.Nil {
		return shared.NewDomainError("INVALID_ORDER", "Sales order cannot be empty")
	}
	if p.SalesOrderID != nil && *p.SalesOrderID != orderID {
		return shared.NewDomainError("ALREADY_LINKED", "Payment is already linked to another sales order")
	}
	p.SalesOrderID = &orderID
	p.OrderAmount = orderAmount
	p.Touch()
	return nil
}

// Post validates the draft payment
func (p *Payment) Post() error {
	if p.State != PaymentStateDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot post payment in %s state", p.State))
	}
	now := time.Now()
	p.State = PaymentStatePosted
	p.PostedAt = &now
	p.Touch()

	p.AddDomainEvent(NewPaymentPostedEvent(p))
	return nil
}

// AmountMoney returns the amount as Money in the payment currency
func (p *Payment) AmountMoney() valueobject.Money {
	return valueobject.MustMoney(p.Amount, p.Currency)
}
