package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/dixmit/sale-workflow/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ shared.TransactionManager = (*Database)(nil)

func TestDatabase_InTransaction(t *testing.T) {
	ctx := context.Background()
	gormDB := newSQLiteDB(t)
	db := NewDatabaseFromGorm(gormDB)
	orders := NewGormSalesOrderRepository(gormDB)
	payments := NewGormPaymentRepository(gormDB)
	tenantID := uuid.New()

	t.Run("commits all writes", func(t *testing.T) {
		order := newTestOrder(t, tenantID, "SO-2024-00010")
		insertOrder(t, gormDB, order)
		payment := newTestPayment(t, tenantID, "PAY-2024-00010")

		err := db.InTransaction(ctx, func(ctx context.Context) error {
			if err := payments.Save(ctx, payment); err != nil {
				return err
			}
			if err := order.RegisterAdvancePayment(payment.ID, payment.Amount, payment.PaymentType); err != nil {
				return err
			}
			return orders.SaveWithLock(ctx, order)
		})
		require.NoError(t, err)

		found, err := orders.FindByIDForTenant(ctx, tenantID, order.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, 2, found.Version)
		assert.True(t, found.ResidualAmount.Equal(decimal.RequireFromString("749.50")))
		foundPayment, err := payments.FindByIDForTenant(ctx, tenantID, payment.ID)
		require.NoError(t, err)
		assert.NotNil(t, foundPayment)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		payment := newTestPayment(t, tenantID, "PAY-2024-00011")
		boom := errors.New("boom")

		err := db.InTransaction(ctx, func(ctx context.Context) error {
			if err := payments.Save(ctx, payment); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		found, err := payments.FindByIDForTenant(ctx, tenantID, payment.ID)
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("nested calls join the outer transaction", func(t *testing.T) {
		payment := newTestPayment(t, tenantID, "PAY-2024-00012")
		boom := errors.New("boom")

		err := db.InTransaction(ctx, func(ctx context.Context) error {
			if err := db.InTransaction(ctx, func(ctx context.Context) error {
				return payments.Save(ctx, payment)
			}); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		found, err := payments.FindByIDForTenant(ctx, tenantID, payment.ID)
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestDatabase_PingAndStats(t *testing.T) {
	db := NewDatabaseFromGorm(newSQLiteDB(t))
	require.NoError(t, db.Ping(context.Background()))
	stats, err := db.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.MaxOpenConnections)
}
