package currency

import (
	"context"
	"fmt"
	"time"

	"github.com/dixmit/sale-workflow/internal/domain/shared"
	"github.com/dixmit/sale-workflow/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Company is what the converter needs to know about the company whose
// rates apply.
type Company struct {
	TenantID uuid.UUID
	ID       uuid.UUID
	Currency valueobject.Currency
}

// Converter converts amounts between currencies using company rates
type Converter struct {
	rates RateRepository
	now   func() time.Time
}

// NewConverter creates a new Converter
func NewConverter(rates RateRepository) *Converter {
	return &Converter{rates: rates, now: time.Now}
}

// Convert converts amount from one currency to another at the rates valid
// on date. The result is rounded to the target currency. Amounts in the
// same currency are returned unchanged. A zero date means today.
func (c *Converter) Convert(ctx context.Context, amount decimal.Decimal, from, to valueobject.Currency, company Company, date time.Time) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}
	if date.IsZero() {
		date = c.now()
	}

	fromRate, err := c.rate(ctx, company, from, date)
	if err != nil {
		return decimal.Zero, err
	}
	toRate, err := c.rate(ctx, company, to, date)
	if err != nil {
		return decimal.Zero, err
	}

	converted := amount.Mul(toRate).Div(fromRate)
	return converted.Round(to.DecimalPlaces()), nil
}

func (c *Converter) rate(ctx context.Context, company Company, cur valueobject.Currency, date time.Time) (decimal.Decimal, error) {
	if cur == company.Currency {
		return decimal.NewFromInt(1), nil
	}
	rate, err := c.rates.FindRate(ctx, company.TenantID, company.ID, cur, date)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to find exchange rate: %w", err)
	}
	if rate == nil {
		return decimal.Zero, shared.NewDomainError("RATE_NOT_FOUND",
			fmt.Sprintf("No exchange rate for %s on %s", cur, date.Format("2006-01-02")))
	}
	return rate.Rate, nil
}
