package handler

import (
	"fmt"
	"time"

	advanceapp "github.com/dixmit/sale-workflow/internal/application/advance"
	"github.com/dixmit/sale-workflow/internal/domain/finance"
	"github.com/dixmit/sale-workflow/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WizardRequest is the wizard state posted by the client. Amounts are
// accepted as JSON strings or numbers.
// @Description Advance payment wizard state
type WizardRequest struct {
	JournalID           string          `json:"journal_id" binding:"omitempty,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	PaymentMethodLineID string          `json:"payment_method_line_id" binding:"omitempty,uuid"`
	Currency            string          `json:"currency_id" binding:"omitempty,len=3,uppercase" example:"EUR"`
	AmountTotal         decimal.Decimal `json:"amount_total" swaggertype:"string" example:"1000.00"`
	AmountAdvance       decimal.Decimal `json:"amount_advance" swaggertype:"string" example:"250.00"`
	Date                string          `json:"date" binding:"omitempty,datetime=2006-01-02" example:"2024-03-15"`
	PaymentRef          string          `json:"payment_ref" binding:"max=255" example:"Wire 42"`
	PaymentType         string          `json:"payment_type" binding:"omitempty,oneof=inbound outbound" example:"inbound"`
}

// OnchangeRequest is the wizard state plus the fields the user changed
// @Description Advance payment wizard onchange request
type OnchangeRequest struct {
	WizardRequest
	Changed []string `json:"changed" binding:"required,min=1,dive,oneof=order_id journal_id payment_method_line_id currency_id amount_total amount_advance date payment_ref payment_type" example:"journal_id"`
}

// JournalQuery selects the journals offered for an order
type JournalQuery struct {
	OrderID string `form:"order_id" binding:"required,uuid"`
}

// toInput converts the request for the wizard bound to orderID
func (r WizardRequest) toInput(orderID uuid.UUID) (advanceapp.WizardInput, error) {
	in := advanceapp.WizardInput{
		OrderID:       &orderID,
		Currency:      valueobject.Currency(r.Currency),
		AmountTotal:   r.AmountTotal,
		AmountAdvance: r.AmountAdvance,
		PaymentRef:    r.PaymentRef,
		PaymentType:   finance.PaymentType(r.PaymentType),
	}
	var err error
	if in.JournalID, err = parseOptionalUUID(r.JournalID); err != nil {
		return in, fmt.Errorf("journal_id: %w", err)
	}
	if in.PaymentMethodLineID, err = parseOptionalUUID(r.PaymentMethodLineID); err != nil {
		return in, fmt.Errorf("payment_method_line_id: %w", err)
	}
	if r.Date != "" {
		if in.Date, err = time.Parse(advanceapp.DateLayout, r.Date); err != nil {
			return in, fmt.Errorf("date: %w", err)
		}
	}
	return in, nil
}

func parseOptionalUUID(s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
