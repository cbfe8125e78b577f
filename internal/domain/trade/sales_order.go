package trade

import (
	"time"

	"github.com/dixmit/sale-workflow/internal/domain/finance"
	"github.com/dixmit/sale-workflow/internal/domain/shared"
	"github.com/dixmit/sale-workflow/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of a sales order
type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "DRAFT"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusDraft, OrderStatusConfirmed, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// AdvancePaymentStatus summarizes how much of the order is covered by
// advance payments.
type AdvancePaymentStatus string

const (
	AdvancePaymentNotPaid AdvancePaymentStatus = "not_paid"
	AdvancePaymentPartial AdvancePaymentStatus = "partial"
	AdvancePaymentPaid    AdvancePaymentStatus = "paid"
)

// SalesOrder is the part of a sales order that advance payments work on:
// its amounts, currencies, invoicing partner and linked payments.
type SalesOrder struct {
	shared.TenantAggregateRoot
	OrderNumber       string
	CompanyID         uuid.UUID
	CustomerID        uuid.UUID
	InvoicePartnerID  uuid.UUID
	Currency          valueobject.Currency
	PricelistCurrency valueobject.Currency
	TotalAmount       decimal.Decimal
	ResidualAmount    decimal.Decimal
	AdvanceStatus     AdvancePaymentStatus
	PaymentIDs        []uuid.UUID
	Status            OrderStatus
	ConfirmedAt       *time.Time
	CancelledAt       *time.Time
}

// NewSalesOrder creates a draft sales order with nothing paid yet
func NewSalesOrder(tenantID uuid.UUID, orderNumber string, companyID, customerID uuid.UUID, currency valueobject.Currency, total decimal.Decimal) (*SalesOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if len(orderNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot exceed 50 characters")
	}
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COMPANY", "Company cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer cannot be empty")
	}
	if err := currency.Validate(); err != nil {
		return nil, shared.NewDomainError("INVALID_CURRENCY", err.Error())
	}
	if total.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Order total cannot be negative")
	}

	order := &SalesOrder{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		OrderNumber:         orderNumber,
		CompanyID:           companyID,
		CustomerID:          customerID,
		InvoicePartnerID:    customerID,
		Currency:            currency,
		TotalAmount:         total,
		ResidualAmount:      total,
		AdvanceStatus:       AdvancePaymentNotPaid,
		PaymentIDs:          make([]uuid.UUID, 0),
		Status:              OrderStatusDraft,
	}
	order.refreshAdvanceStatus()
	return order, nil
}

// SetInvoicePartner sets the invoicing address of the order
func (o *SalesOrder) SetInvoicePartner(partnerID uuid.UUID) error {
	if partnerID == uuid.Nil {
		return shared.NewDomainError("INVALID_PARTNER", "Invoice partner cannot be empty")
	}
	o.InvoicePartnerID = partnerID
	o.Touch()
	return nil
}

// SetPricelistCurrency sets the currency of the order's pricelist
func (o *SalesOrder) SetPricelistCurrency(currency valueobject.Currency) error {
	if !currency.IsZero() {
		if err := currency.Validate(); err != nil {
			return shared.NewDomainError("INVALID_CURRENCY", err.Error())
		}
	}
	o.PricelistCurrency = currency
	o.Touch()
	return nil
}

// OrderCurrency is the currency advance payments are measured in: the
// pricelist currency when there is one, the order currency otherwise.
func (o *SalesOrder) OrderCurrency() valueobject.Currency {
	return valueobject.Coalesce(o.PricelistCurrency, o.Currency)
}

// HasPayment reports whether the payment is linked to the order
func (o *SalesOrder) HasPayment(paymentID uuid.UUID) bool {
	for _, id := range o.PaymentIDs {
		if id == paymentID {
			return true
		}
	}
	return false
}

// RegisterAdvancePayment links a payment to the order and moves the
// residual by its amount expressed in the order currency: inbound
// payments reduce what is still due, outbound refunds increase it.
func (o *SalesOrder) RegisterAdvancePayment(paymentID uuid.UUID, amount decimal.Decimal, paymentType finance.PaymentType) error {
	if o.Status == OrderStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cannot register payments on a cancelled order")
	}
	if paymentID == uuid.Nil {
		return shared.NewDomainError("INVALID_PAYMENT", "Payment cannot be empty")
	}
	if !paymentType.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_TYPE", "Invalid payment type")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if o.HasPayment(paymentID) {
		return shared.NewDomainError("ALREADY_EXISTS", "Payment is already linked to the order")
	}

	o.PaymentIDs = append(o.PaymentIDs, paymentID)
	if paymentType == finance.PaymentTypeInbound {
		o.ResidualAmount = o.ResidualAmount.Sub(amount)
	} else {
		o.ResidualAmount = o.ResidualAmount.Add(amount)
	}
	o.refreshAdvanceStatus()
	o.Touch()

	o.AddDomainEvent(NewAdvancePaymentRegisteredEvent(o, paymentID, amount, paymentType))
	return nil
}

func (o *SalesOrder) refreshAdvanceStatus() {
	digits := o.OrderCurrency().DecimalPlaces()
	switch {
	case valueobject.FloatCompare(o.ResidualAmount, decimal.Zero, digits) <= 0 && o.TotalAmount.IsPositive():
		o.AdvanceStatus = AdvancePaymentPaid
	case valueobject.FloatCompare(o.ResidualAmount, o.TotalAmount, digits) >= 0:
		o.AdvanceStatus = AdvancePaymentNotPaid
	default:
		o.AdvanceStatus = AdvancePaymentPartial
	}
}
