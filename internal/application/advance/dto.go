package advance

import (
	"time"

	"github.com/dixmit/sale-workflow/internal/domain/advance"
	"github.com/dixmit/sale-workflow/internal/domain/finance"
	"github.com/dixmit/sale-workflow/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WizardInput is the wizard state sent by the client
type WizardInput struct {
	OrderID             *uuid.UUID
	JournalID           *uuid.UUID
	PaymentMethodLineID *uuid.UUID
	Currency            valueobject.Currency
	AmountTotal         decimal.Decimal
	AmountAdvance       decimal.Decimal
	Date                time.Time
	PaymentRef          string
	PaymentType         finance.PaymentType
}

// PaymentMethodLineView is a selectable payment method
type PaymentMethodLineView struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	PaymentType string    `json:"payment_type"`
}

// WizardView is the wizard state returned to the client
type WizardView struct {
	OrderID                     *uuid.UUID              `json:"order_id"`
	JournalID                   *uuid.UUID              `json:"journal_id"`
	PaymentMethodLineID         *uuid.UUID              `json:"payment_method_line_id"`
	AvailablePaymentMethodLines []PaymentMethodLineView `json:"available_payment_method_line_ids"`
	JournalCurrency             string                  `json:"journal_currency_id"`
	Currency                    string                  `json:"currency_id"`
	AmountTotal                 decimal.Decimal         `json:"amount_total"`
	AmountAdvance               decimal.Decimal         `json:"amount_advance"`
	Date                        string                  `json:"date"`
	CurrencyAmount              decimal.Decimal         `json:"currency_amount"`
	PaymentRef                  string                  `json:"payment_ref"`
	PaymentType                 string                  `json:"payment_type"`
	// Recomputed lists the computed fields refreshed by an onchange
	Recomputed []string `json:"recomputed,omitempty"`
}

// JournalView is a journal offered for advance payments
type JournalView struct {
	ID       uuid.UUID `json:"id"`
	Code     string    `json:"code"`
	Name     string    `json:"name"`
	Type     string    `json:"type"`
	Currency string    `json:"currency,omitempty"`
}

// PaymentView is a payment linked to a sales order
type PaymentView struct {
	ID                  uuid.UUID       `json:"id"`
	PaymentNumber       string          `json:"payment_number"`
	Date                string          `json:"date"`
	Amount              decimal.Decimal `json:"amount"`
	Currency            string          `json:"currency"`
	Formatted           string          `json:"formatted"`
	OrderAmount         decimal.Decimal `json:"order_amount"`
	PaymentType         string          `json:"payment_type"`
	PartnerID           uuid.UUID       `json:"partner_id"`
	JournalID           uuid.UUID       `json:"journal_id"`
	PaymentMethodLineID *uuid.UUID      `json:"payment_method_line_id,omitempty"`
	Ref                 string          `json:"ref"`
	State               string          `json:"state"`
	PostedAt            *time.Time      `json:"posted_at,omitempty"`
}

// DateLayout is the wire format of wizard and payment dates
const DateLayout = "2006-01-02"

func (in WizardInput) toWizard(today time.Time) *advance.Wizard {
	w := advance.NewWizard(today)
	w.OrderID = in.OrderID
	w.JournalID = in.JournalID
	w.PaymentMethodLineID = in.PaymentMethodLineID
	w.Currency = in.Currency
	w.AmountTotal = in.AmountTotal
	w.AmountAdvance = in.AmountAdvance
	w.PaymentRef = in.PaymentRef
	if !in.Date.IsZero() {
		w.Date = in.Date
	}
	if in.PaymentType != "" {
		w.PaymentType = in.PaymentType
	}
	return w
}

func toWizardView(w *advance.Wizard, recomputed []string) *WizardView {
	lines := make([]PaymentMethodLineView, len(w.AvailablePaymentMethodLines))
	for i, l := range w.AvailablePaymentMethodLines {
		lines[i] = PaymentMethodLineView{
			ID:          l.ID,
			Code:        l.Code,
			Name:        l.Name,
			PaymentType: string(l.PaymentType),
		}
	}
	view := &WizardView{
		OrderID:                     w.OrderID,
		JournalID:                   w.JournalID,
		PaymentMethodLineID:         w.PaymentMethodLineID,
		AvailablePaymentMethodLines: lines,
		JournalCurrency:             string(w.JournalCurrency),
		Currency:                    string(w.Currency),
		AmountTotal:                 w.AmountTotal,
		AmountAdvance:               w.AmountAdvance,
		CurrencyAmount:              w.CurrencyAmount,
		PaymentRef:                  w.PaymentRef,
		PaymentType:                 string(w.PaymentType),
		Recomputed:                  recomputed,
	}
	if !w.Date.IsZero() {
		view.Date = w.Date.Format(DateLayout)
	}
	return view
}

func toJournalView(j *finance.Journal) JournalView {
	return JournalView{
		ID:       j.ID,
		Code:     j.Code,
		Name:     j.Name,
		Type:     string(j.Type),
		Currency: string(j.Currency),
	}
}

func toPaymentView(p *finance.Payment) PaymentView {
	return PaymentView{
		ID:                  p.ID,
		PaymentNumber:       p.PaymentNumber,
		Date:                p.Date.Format(DateLayout),
		Amount:              p.Amount,
		Currency:            string(p.Currency),
		Formatted:           p.AmountMoney().String(),
		OrderAmount:         p.OrderAmount,
		PaymentType:         string(p.PaymentType),
		PartnerID:           p.PartnerID,
		JournalID:           p.JournalID,
		PaymentMethodLineID: p.PaymentMethodLineID,
		Ref:                 p.Ref,
		State:               string(p.State),
		PostedAt:            p.PostedAt,
	}
}
