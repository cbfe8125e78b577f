package trade

import (
	"testing"

	"github.com/dixmit/sale-workflow/internal/domain/finance"
	"github.com/dixmit/sale-workflow/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestOrder(t *testing.T, total string) *SalesOrder {
	t.Helper()
	order, err := NewSalesOrder(uuid.New(), "SO001", uuid.New(), uuid.New(), valueobject.EUR, decimal.RequireFromString(total))
	require.NoError(t, err)
	return order
}

func TestOrderStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  OrderStatus
		isValid bool
	}{
		{OrderStatusDraft, true},
		{OrderStatusConfirmed, true},
		{OrderStatusCompleted, true},
		{OrderStatusCancelled, true},
		{OrderStatus("INVALID"), false},
		{OrderStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestNewSalesOrder(t *testing.T) {
	t.Run("starts unpaid with residual equal to total", func(t *testing.T) {
		order := createTestOrder(t, "1000")
		assert.Equal(t, OrderStatusDraft, order.Status)
		assert.True(t, order.ResidualAmount.Equal(order.TotalAmount))
		assert.Equal(t, AdvancePaymentNotPaid, order.AdvanceStatus)
		assert.Equal(t, order.CustomerID, order.InvoicePartnerID)
	})

	t.Run("validates input", func(t *testing.T) {
		_, err := NewSalesOrder(uuid.New(), "", uuid.New(), uuid.New(), valueobject.EUR, decimal.Zero)
		assert.Error(t, err)
		_, err = NewSalesOrder(uuid.New(), "SO1", uuid.Nil, uuid.New(), valueobject.EUR, decimal.Zero)
		assert.Error(t, err)
		_, err = NewSalesOrder(uuid.New(), "SO1", uuid.New(), uuid.New(), "EURO", decimal.Zero)
		assert.Error(t, err)
		_, err = NewSalesOrder(uuid.New(), "SO1", uuid.New(), uuid.New(), valueobject.EUR, decimal.NewFromInt(-1))
		assert.Error(t, err)
	})
}

func TestSalesOrder_OrderCurrency(t *testing.T) {
	order := createTestOrder(t, "10")
	assert.Equal(t, valueobject.EUR, order.OrderCurrency())

	require.NoError(t, order.SetPricelistCurrency(valueobject.USD))
	assert.Equal(t, valueobject.USD, order.OrderCurrency())

	require.NoError(t, order.SetPricelistCurrency(""))
	assert.Equal(t, valueobject.EUR, order.OrderCurrency())
}

func TestSalesOrder_RegisterAdvancePayment(t *testing.T) {
	t.Run("inbound reduces residual", func(t *testing.T) {
		order := createTestOrder(t, "1000")
		paymentID := uuid.New()

		require.NoError(t, order.RegisterAdvancePayment(paymentID, decimal.NewFromInt(400), finance.PaymentTypeInbound))
		assert.Equal(t, "600", order.ResidualAmount.String())
		assert.Equal(t, AdvancePaymentPartial, order.AdvanceStatus)
		assert.True(t, order.HasPayment(paymentID))

		events := order.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeAdvancePaymentRegistered, events[0].EventType())
	})

	t.Run("full payment marks order paid", func(t *testing.T) {
		order := createTestOrder(t, "1000")
		require.NoError(t, order.RegisterAdvancePayment(uuid.New(), decimal.NewFromInt(1000), finance.PaymentTypeInbound))
		assert.Equal(t, AdvancePaymentPaid, order.AdvanceStatus)
	})

	t.Run("outbound increases residual", func(t *testing.T) {
		order := createTestOrder(t, "1000")
		require.NoError(t, order.RegisterAdvancePayment(uuid.New(), decimal.NewFromInt(1000), finance.PaymentTypeInbound))
		require.NoError(t, order.RegisterAdvancePayment(uuid.New(), decimal.NewFromInt(250), finance.PaymentTypeOutbound))
		assert.Equal(t, "250", order.ResidualAmount.String())
		assert.Equal(t, AdvancePaymentPartial, order.AdvanceStatus)
	})

	t.Run("rejects duplicates and bad input", func(t *testing.T) {
		order := createTestOrder(t, "1000")
		paymentID := uuid.New()
		require.NoError(t, order.RegisterAdvancePayment(paymentID, decimal.NewFromInt(1), finance.PaymentTypeInbound))
		assert.Error(t, order.RegisterAdvancePayment(paymentID, decimal.NewFromInt(1), finance.PaymentTypeInbound))
		assert.Error(t, order.RegisterAdvancePayment(uuid.New(), decimal.Zero, finance.PaymentTypeInbound))
		assert.Error(t, order.RegisterAdvancePayment(uuid.New(), decimal.NewFromInt(1), finance.PaymentType("sideways")))
		assert.Error(t, order.RegisterAdvancePayment(uuid.Nil, decimal.NewFromInt(1), finance.PaymentTypeInbound))
	})

	t.Run("cancelled orders reject payments", func(t *testing.T) {
		order := createTestOrder(t, "1000")
		order.Status = OrderStatusCancelled
		assert.Error(t, order.RegisterAdvancePayment(uuid.New(), decimal.NewFromInt(1), finance.PaymentTypeInbound))
	})
}
