// Package advance holds the advance payment wizard: the short-lived form
// used to register a payment against a sales order before it is invoiced.
package advance

import (
	"slices"
	"time"

	"github.com/dixmit/sale-workflow/internal/domain/finance"
	"github.com/dixmit/sale-workflow/internal/domain/shared/valueobject"
	"github.com/dixmit/sale-workflow/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Field names, as used by default_get field lists and onchange requests
const (
	FieldOrder                       = "order_id"
	FieldJournal                     = "journal_id"
	FieldPaymentMethodLine           = "payment_method_line_id"
	FieldAvailablePaymentMethodLines = "available_payment_method_line_ids"
	FieldJournalCurrency             = "journal_currency_id"
	FieldCurrency                    = "currency_id"
	FieldAmountTotal                 = "amount_total"
	FieldAmountAdvance               = "amount_advance"
	FieldDate                        = "date"
	FieldCurrencyAmount              = "currency_amount"
	FieldPaymentRef                  = "payment_ref"
	FieldPaymentType                 = "payment_type"
)

// AllFields lists every wizard field
var AllFields = []string{
	FieldOrder, FieldJournal, FieldPaymentMethodLine, FieldAvailablePaymentMethodLines,
	FieldJournalCurrency, FieldCurrency, FieldAmountTotal, FieldAmountAdvance,
	FieldDate, FieldCurrencyAmount, FieldPaymentRef, FieldPaymentType,
}

// Wizard is the transient advance payment form. It lives for one
// interaction and is never persisted.
//
// AmountAdvance is expressed in JournalCurrency. CurrencyAmount is the same
// amount expressed in Currency, the currency of the order.
type Wizard struct {
	OrderID                     *uuid.UUID
	JournalID                   *uuid.UUID
	PaymentMethodLineID         *uuid.UUID
	AvailablePaymentMethodLines []finance.PaymentMethodLine
	JournalCurrency             valueobject.Currency
	Currency                    valueobject.Currency
	AmountTotal                 decimal.Decimal
	AmountAdvance               decimal.Decimal
	Date                        time.Time
	CurrencyAmount              decimal.Decimal
	PaymentRef                  string
	PaymentType                 finance.PaymentType

	// OrderBound is set when the wizard was opened from an order, which
	// enables the amount bound checks.
	OrderBound bool
}

// NewWizard returns a wizard holding the static defaults
func NewWizard(today time.Time) *Wizard {
	return &Wizard{
		Date:        truncateToDay(today),
		PaymentType: finance.DefaultPaymentType,
	}
}

// DefaultGet fills the defaults that come from the active order. fields is
// the list of requested fields; an empty list requests all of them. When
// order is nil only the static defaults are kept.
func (w *Wizard) DefaultGet(order *trade.SalesOrder, fields []string) {
	if order == nil {
		return
	}
	w.OrderBound = true
	if len(fields) == 0 || slices.Contains(fields, FieldAmountTotal) {
		orderID := order.ID
		w.OrderID = &orderID
		w.AmountTotal = order.ResidualAmount
		w.Currency = order.OrderCurrency()
	}
}

// Validate checks the required fields
func (w *Wizard) Validate() error {
	switch {
	case w.OrderID == nil || *w.OrderID == uuid.Nil:
		return requiredError("Sales order")
	case w.JournalID == nil || *w.JournalID == uuid.Nil:
		return requiredError("Journal")
	case w.Date.IsZero():
		return requiredError("Date")
	case !w.PaymentType.IsValid():
		return requiredError("Payment type")
	}
	return nil
}

// roundAmountAdvance rounds AmountAdvance to the minor unit of the journal
// currency, the precision the amount is stored and posted at. Amounts
// below half a unit become zero and fail the positive check.
func (w *Wizard) roundAmountAdvance() {
	if w.JournalCurrency.IsZero() {
		return
	}
	w.AmountAdvance = w.AmountAdvance.Round(w.JournalCurrency.DecimalPlaces())
}

// PaymentMethodLine returns the selected line among the available ones
func (w *Wizard) PaymentMethodLine() *finance.PaymentMethodLine {
	if w.PaymentMethodLineID == nil {
		return nil
	}
	for i := range w.AvailablePaymentMethodLines {
		if w.AvailablePaymentMethodLines[i].ID == *w.PaymentMethodLineID {
			return &w.AvailablePaymentMethodLines[i]
		}
	}
	return nil
}

// PreparePaymentValues builds the values of the payment registered by the
// wizard. partnerID is the commercial partner of the order's invoice
// address.
func (w *Wizard) PreparePaymentValues(order *trade.SalesOrder, partnerID uuid.UUID) (finance.PaymentValues, error) {
	w.roundAmountAdvance()
	if w.AmountAdvance.IsNegative() {
		return finance.PaymentValues{}, finance.ErrNonPositiveAdvance
	}
	if w.JournalID == nil {
		return finance.PaymentValues{}, requiredError("Journal")
	}

	ref := w.PaymentRef
	if ref == "" {
		ref = order.OrderNumber
	}

	var lineID *uuid.UUID
	if w.PaymentMethodLineID != nil {
		id := *w.PaymentMethodLineID
		lineID = &id
	}

	return finance.PaymentValues{
		Date:                w.Date,
		Amount:              w.AmountAdvance,
		PaymentType:         w.PaymentType,
		PartnerType:         finance.PartnerTypeCustomer,
		Ref:                 ref,
		JournalID:           *w.JournalID,
		Currency:            w.JournalCurrency,
		PartnerID:           partnerID,
		PaymentMethodLineID: lineID,
	}, nil
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
