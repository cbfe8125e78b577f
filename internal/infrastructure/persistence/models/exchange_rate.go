package models

import (
	"time"

	"github.com/dixmit/sale-workflow/internal/domain/currency"
	"github.com/dixmit/sale-workflow/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExchangeRateModel is the persistence model for currency.ExchangeRate
type ExchangeRateModel struct {
	TenantModel
	CompanyID uuid.UUID       `gorm:"type:uuid;not null;index:idx_exchange_rates_lookup,priority:1"`
	Currency  string          `gorm:"type:varchar(3);not null;index:idx_exchange_rates_lookup,priority:2"`
	Rate      decimal.Decimal `gorm:"type:decimal(18,6);not null"`
	ValidFrom time.Time       `gorm:"type:date;not null;index:idx_exchange_rates_lookup,priority:3"`
}

// TableName returns the table name for GORM
func (ExchangeRateModel) TableName() string {
	return "exchange_rates"
}

// ToDomain converts the model to a domain ExchangeRate
func (m *ExchangeRateModel) ToDomain() *currency.ExchangeRate {
	return &currency.ExchangeRate{
		BaseEntity: m.BaseModel.ToDomain(),
		TenantID:   m.TenantID,
		CompanyID:  m.CompanyID,
		Currency:   valueobject.Currency(m.Currency),
		Rate:       m.Rate,
		ValidFrom:  m.ValidFrom,
	}
}

// FromDomain populates the model from a domain ExchangeRate
func (m *ExchangeRateModel) FromDomain(r *currency.ExchangeRate) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.TenantID = r.TenantID
	m.CompanyID = r.CompanyID
	m.Currency = string(r.Currency)
	m.Rate = r.Rate
	m.ValidFrom = r.ValidFrom
}

// ExchangeRateModelFromDomain creates a model from a domain ExchangeRate
func ExchangeRateModelFromDomain(r *currency.ExchangeRate) *ExchangeRateModel {
	m := &ExchangeRateModel{}
	m.FromDomain(r)
	return m
}
