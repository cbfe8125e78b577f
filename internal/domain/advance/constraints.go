package advance

import (
	"github.com/dixmit/sale-workflow/internal/domain/finance"
	"github.com/dixmit/sale-workflow/internal/domain/shared"
	"github.com/dixmit/sale-workflow/internal/domain/shared/valueobject"
	"github.com/dixmit/sale-workflow/internal/domain/trade"
)

// DefaultCompareDigits is the precision amounts are compared at
const DefaultCompareDigits int32 = 2

// Validation messages shown to the user
const (
	MsgAdvanceNotPositive   = "Amount of advance must be positive."
	MsgInboundOverResidual  = "Inbound amount of advance is greater than residual amount on sale"
	MsgOutboundOverAdvanced = "Outbound amount of advance is greater than the advanced paid amount"
)

// CheckAmount enforces the advance amount constraint. The amount must be
// positive. When the wizard is bound to an order, an inbound advance may
// not exceed the order residual and an outbound one may not exceed what
// was already advanced, both compared in the order currency.
func (w *Wizard) CheckAmount(order *trade.SalesOrder, digits int32) error {
	w.roundAmountAdvance()
	if !w.AmountAdvance.IsPositive() {
		return shared.NewValidationError(MsgAdvanceNotPositive)
	}
	if !w.OrderBound || order == nil {
		return nil
	}

	if w.PaymentType == finance.PaymentTypeInbound {
		if valueobject.FloatCompare(w.CurrencyAmount, order.ResidualAmount, digits) > 0 {
			return shared.NewValidationError(MsgInboundOverResidual)
		}
		return nil
	}

	paidInAdvance := order.TotalAmount.Sub(w.AmountTotal)
	if valueobject.FloatCompare(w.CurrencyAmount, paidInAdvance, digits) > 0 {
		return shared.NewValidationError(MsgOutboundOverAdvanced)
	}
	return nil
}

func requiredError(label string) error {
	return shared.NewValidationError(label + " is required.")
}
