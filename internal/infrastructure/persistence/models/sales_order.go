package models

import (
	"time"

	"github.com/dixmit/sale-workflow/internal/domain/shared/valueobject"
	"github.com/dixmit/sale-workflow/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesOrderModel is the persistence model for trade.SalesOrder. Linked
// payments live in the payments table and are loaded by the repository.
type SalesOrderModel struct {
	TenantAggregateModel
	OrderNumber       string          `gorm:"type:varchar(50);not null;index"`
	CompanyID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	InvoicePartnerID  uuid.UUID       `gorm:"type:uuid;not null"`
	Currency          string          `gorm:"type:varchar(3);not null"`
	PricelistCurrency *string         `gorm:"type:varchar(3)"`
	TotalAmount       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ResidualAmount    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	AdvanceStatus     string          `gorm:"type:varchar(20);not null;default:'not_paid'"`
	Status            string          `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	ConfirmedAt       *time.Time
	CancelledAt       *time.Time
}

// TableName returns the table name for GORM
func (SalesOrderModel) TableName() string {
	return "sales_orders"
}

// ToDomain converts the model to a domain SalesOrder without payment ids
func (m *SalesOrderModel) ToDomain() *trade.SalesOrder {
	order := &trade.SalesOrder{
		OrderNumber:       m.OrderNumber,
		CompanyID:         m.CompanyID,
		CustomerID:        m.CustomerID,
		InvoicePartnerID:  m.InvoicePartnerID,
		Currency:          valueobject.Currency(m.Currency),
		PricelistCurrency: currencyFromNullable(m.PricelistCurrency),
		TotalAmount:       m.TotalAmount,
		ResidualAmount:    m.ResidualAmount,
		AdvanceStatus:     trade.AdvancePaymentStatus(m.AdvanceStatus),
		PaymentIDs:        make([]uuid.UUID, 0),
		Status:            trade.OrderStatus(m.Status),
		ConfirmedAt:       m.ConfirmedAt,
		CancelledAt:       m.CancelledAt,
	}
	m.PopulateTenantAggregateRoot(&order.TenantAggregateRoot)
	return order
}

// FromDomain populates the model from a domain SalesOrder
func (m *SalesOrderModel) FromDomain(o *trade.SalesOrder) {
	m.FromDomainTenantAggregateRoot(o.TenantAggregateRoot)
	m.OrderNumber = o.OrderNumber
	m.CompanyID = o.CompanyID
	m.CustomerID = o.CustomerID
	m.InvoicePartnerID = o.InvoicePartnerID
	m.Currency = string(o.Currency)
	m.PricelistCurrency = NullableCurrency(o.PricelistCurrency)
	m.TotalAmount = o.TotalAmount
	m.ResidualAmount = o.ResidualAmount
	m.AdvanceStatus = string(o.AdvanceStatus)
	m.Status = string(o.Status)
	m.ConfirmedAt = o.ConfirmedAt
	m.CancelledAt = o.CancelledAt
}

// SalesOrderModelFromDomain creates a model from a domain SalesOrder
func SalesOrderModelFromDomain(o *trade.SalesOrder) *SalesOrderModel {
	m := &SalesOrderModel{}
	m.FromDomain(o)
	return m
}
