package advance

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/dixmit/sale-workflow/internal/domain/currency"
	"github.com/dixmit/sale-workflow/internal/domain/finance"
	"github.com/dixmit/sale-workflow/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// AmountConverter converts amounts between currencies at a date
type AmountConverter interface {
	Convert(ctx context.Context, amount decimal.Decimal, from, to valueobject.Currency, company currency.Company, date time.Time) (decimal.Decimal, error)
}

// Env is what the computed fields read besides the wizard itself
type Env struct {
	// Journal is the selected journal, nil when none is selected
	Journal *finance.Journal
	// JournalCompany owns Journal
	JournalCompany *finance.Company
	// OrderCompany provides the rates used for conversions. Falls back to
	// JournalCompany when the wizard is not bound to an order.
	OrderCompany *finance.Company
	Converter    AmountConverter
	// ExcludedMethodCodes are payment method codes never offered
	ExcludedMethodCodes []string
	Today               func() time.Time
}

func (e Env) today() time.Time {
	if e.Today != nil {
		return e.Today()
	}
	return time.Now()
}

func (e Env) conversionCompany() *finance.Company {
	if e.OrderCompany != nil {
		return e.OrderCompany
	}
	return e.JournalCompany
}

type computeFunc func(ctx context.Context, w *Wizard, env Env) error

type computedField struct {
	name      string
	dependsOn []string
	compute   computeFunc
}

// computedFields is ordered so that every field comes after the fields it
// depends on.
var computedFields = []computedField{
	{
		name:      FieldJournalCurrency,
		dependsOn: []string{FieldJournal},
		compute:   computeJournalCurrency,
	},
	{
		name:      FieldAvailablePaymentMethodLines,
		dependsOn: []string{FieldPaymentType, FieldJournal, FieldCurrency},
		compute:   computeAvailablePaymentMethodLines,
	},
	{
		name:      FieldPaymentMethodLine,
		dependsOn: []string{FieldAvailablePaymentMethodLines},
		compute:   computePaymentMethodLine,
	},
	{
		name:      FieldCurrencyAmount,
		dependsOn: []string{FieldJournal, FieldDate, FieldAmountAdvance, FieldJournalCurrency},
		compute:   computeCurrencyAmount,
	},
}

// Onchange recomputes every computed field that depends, directly or
// through other computed fields, on one of the changed fields. It returns
// the names of the recomputed fields in the order they were computed.
func (w *Wizard) Onchange(ctx context.Context, env Env, changed ...string) ([]string, error) {
	dirty := make(map[string]bool, len(changed))
	for _, f := range changed {
		dirty[f] = true
	}

	recomputed := make([]string, 0, len(computedFields))
	for _, field := range computedFields {
		if !slices.ContainsFunc(field.dependsOn, func(dep string) bool { return dirty[dep] }) {
			continue
		}
		if err := field.compute(ctx, w, env); err != nil {
			return recomputed, fmt.Errorf("failed to compute %s: %w", field.name, err)
		}
		dirty[field.name] = true
		recomputed = append(recomputed, field.name)
	}
	return recomputed, nil
}

// Recompute computes every computed field, as done for a new wizard
func (w *Wizard) Recompute(ctx context.Context, env Env) error {
	_, err := w.Onchange(ctx, env, AllFields...)
	return err
}

func computeJournalCurrency(_ context.Context, w *Wizard, env Env) error {
	w.JournalCurrency = finance.JournalCurrency(env.Journal, env.JournalCompany)
	return nil
}

func computeAvailablePaymentMethodLines(_ context.Context, w *Wizard, env Env) error {
	if env.Journal == nil {
		w.AvailablePaymentMethodLines = nil
		return nil
	}
	lines := env.Journal.AvailablePaymentMethodLines(w.PaymentType)
	if len(env.ExcludedMethodCodes) > 0 {
		lines = slices.DeleteFunc(lines, func(line finance.PaymentMethodLine) bool {
			return slices.Contains(env.ExcludedMethodCodes, line.Code)
		})
	}
	w.AvailablePaymentMethodLines = lines
	return nil
}

// computePaymentMethodLine keeps the current line while it stays
// available, otherwise selects the first available one.
func computePaymentMethodLine(_ context.Context, w *Wizard, _ Env) error {
	if w.PaymentMethodLine() != nil {
		return nil
	}
	if len(w.AvailablePaymentMethodLines) > 0 {
		id := w.AvailablePaymentMethodLines[0].ID
		w.PaymentMethodLineID = &id
		return nil
	}
	w.PaymentMethodLineID = nil
	return nil
}

func computeCurrencyAmount(ctx context.Context, w *Wizard, env Env) error {
	w.roundAmountAdvance()
	if w.JournalCurrency == w.Currency || w.JournalCurrency.IsZero() || w.Currency.IsZero() {
		w.CurrencyAmount = w.AmountAdvance
		return nil
	}
	company := env.conversionCompany()
	if company == nil || env.Converter == nil {
		return fmt.Errorf("no company rates to convert %s to %s", w.JournalCurrency, w.Currency)
	}
	date := w.Date
	if date.IsZero() {
		date = env.today()
	}
	amount, err := env.Converter.Convert(ctx, w.AmountAdvance, w.JournalCurrency, w.Currency, currency.Company{
		TenantID: company.TenantID,
		ID:       company.ID,
		Currency: company.Currency,
	}, date)
	if err != nil {
		return err
	}
	w.CurrencyAmount = amount.Round(w.Currency.DecimalPlaces())
	return nil
}
