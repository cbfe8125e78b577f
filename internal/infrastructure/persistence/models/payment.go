package models

import (
	"time"

	"github.com/dixmit/sale-workflow/internal/domain/finance"
	"github.com/dixmit/sale-workflow/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentModel is the persistence model for finance.Payment
type PaymentModel struct {
	TenantAggregateModel
	PaymentNumber       string          `gorm:"type:varchar(50);not null"`
	Date                time.Time       `gorm:"type:date;not null"`
	Amount              decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Currency            string          `gorm:"type:varchar(3);not null"`
	PaymentType         string          `gorm:"type:varchar(10);not null"`
	PartnerType         string          `gorm:"type:varchar(10);not null"`
	PartnerID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	JournalID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	PaymentMethodLineID *uuid.UUID      `gorm:"type:uuid"`
	Ref                 string          `gorm:"type:varchar(255)"`
	SalesOrderID        *uuid.UUID      `gorm:"type:uuid;index"`
	OrderAmount         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	State               string          `gorm:"type:varchar(20);not null;default:'draft'"`
	PostedAt            *time.Time
	CancelledAt         *time.Time
	CancelReason        string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the model to a domain Payment
func (m *PaymentModel) ToDomain() *finance.Payment {
	p := &finance.Payment{
		PaymentNumber:       m.PaymentNumber,
		Date:                m.Date,
		Amount:              m.Amount,
		Currency:            valueobject.Currency(m.Currency),
		PaymentType:         finance.PaymentType(m.PaymentType),
		PartnerType:         finance.PartnerType(m.PartnerType),
		PartnerID:           m.PartnerID,
		JournalID:           m.JournalID,
		PaymentMethodLineID: m.PaymentMethodLineID,
		Ref:                 m.Ref,
		SalesOrderID:        m.SalesOrderID,
		OrderAmount:         m.OrderAmount,
		State:               finance.PaymentState(m.State),
		PostedAt:            m.PostedAt,
		CancelledAt:         m.CancelledAt,
		CancelReason:        m.CancelReason,
	}
	m.PopulateTenantAggregateRoot(&p.TenantAggregateRoot)
	return p
}

// FromDomain populates the model from a domain Payment
func (m *PaymentModel) FromDomain(p *finance.Payment) {
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	m.PaymentNumber = p.PaymentNumber
	m.Date = p.Date
	m.Amount = p.Amount
	m.Currency = string(p.Currency)
	m.PaymentType = string(p.PaymentType)
	m.PartnerType = string(p.PartnerType)
	m.PartnerID = p.PartnerID
	m.JournalID = p.JournalID
	m.PaymentMethodLineID = p.PaymentMethodLineID
	m.Ref = p.Ref
	m.SalesOrderID = p.SalesOrderID
	m.OrderAmount = p.OrderAmount
	m.State = string(p.State)
	m.PostedAt = p.PostedAt
	m.CancelledAt = p.CancelledAt
	m.CancelReason = p.CancelReason
}

// PaymentModelFromDomain creates a model from a domain Payment
func PaymentModelFromDomain(p *finance.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}
