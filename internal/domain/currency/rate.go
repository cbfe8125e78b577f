package currency

import (
	"context"
	"time"

	"github.com/dixmit/sale-workflow/internal/domain/shared"
	"github.com/dixmit/sale-workflow/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExchangeRate is the number of units of Currency worth one unit of the
// company currency, valid from ValidFrom until a later rate replaces it.
type ExchangeRate struct {
	shared.BaseEntity
	TenantID  uuid.UUID
	CompanyID uuid.UUID
	Currency  valueobject.Currency
	Rate      decimal.Decimal
	ValidFrom time.Time
}

// NewExchangeRate creates a new exchange rate
func NewExchangeRate(tenantID, companyID uuid.UUID, currency valueobject.Currency, rate decimal.Decimal, validFrom time.Time) (*ExchangeRate, error) {
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COMPANY", "Company cannot be empty")
	}
	if err := currency.Validate(); err != nil {
		return nil, shared.NewDomainError("INVALID_CURRENCY", err.Error())
	}
	if !rate.IsPositive() {
		return nil, shared.NewDomainError("INVALID_RATE", "Exchange rate must be positive")
	}
	if validFrom.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Rate date is required")
	}
	return &ExchangeRate{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   tenantID,
		CompanyID:  companyID,
		Currency:   currency,
		Rate:       rate,
		ValidFrom:  truncateToDay(validFrom),
	}, nil
}

// RateRepository defines the interface for exchange rate persistence
type RateRepository interface {
	// FindRate returns the latest rate of currency for the company valid
	// on date, or nil, nil when there is none.
	FindRate(ctx context.Context, tenantID, companyID uuid.UUID, currency valueobject.Currency, date time.Time) (*ExchangeRate, error)
	Save(ctx context.Context, rate *ExchangeRate) error
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
