package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/dixmit/sale-workflow/internal/domain/shared"
	"github.com/dixmit/sale-workflow/internal/domain/trade"
	"github.com/dixmit/sale-workflow/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSalesOrderRepository implements trade.SalesOrderRepository using GORM
type GormSalesOrderRepository struct {
	db *gorm.DB
}

// NewGormSalesOrderRepository creates a new GormSalesOrderRepository
func NewGormSalesOrderRepository(db *gorm.DB) *GormSalesOrderRepository {
	return &GormSalesOrderRepository{db: db}
}

// FindByIDForTenant finds a sales order by ID for a specific tenant,
// together with the ids of the payments linked to it.
func (r *GormSalesOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.SalesOrder, error) {
	db := conn(ctx, r.db)

	var model models.SalesOrderModel
	if err := db.First(&model, "id = ? AND tenant_id = ?", id, tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var paymentIDs []uuid.UUID
	if err := db.Model(&models.PaymentModel{}).
		Where("tenant_id = ? AND sales_order_id = ?", tenantID, id).
		Order("created_at ASC").
		Pluck("id", &paymentIDs).Error; err != nil {
		return nil, err
	}

	order := model.ToDomain()
	order.PaymentIDs = append(order.PaymentIDs, paymentIDs...)
	return order, nil
}

// SaveWithLock saves with optimistic locking (version check). On success
// the order's version is incremented.
func (r *GormSalesOrderRepository) SaveWithLock(ctx context.Context, order *trade.SalesOrder) error {
	return withTx(ctx, r.db, func(tx *gorm.DB) error {
		var currentVersion int
		result := tx.Model(&models.SalesOrderModel{}).
			Where("id = ? AND tenant_id = ?", order.ID, order.TenantID).
			Select("version").
			Scan(&currentVersion)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		if currentVersion != order.Version {
			return shared.ErrConcurrencyConflict
		}

		nextVersion := order.Version + 1
		updatedAt := time.Now()

		update := tx.Model(&models.SalesOrderModel{}).
			Where("id = ? AND version = ?", order.ID, currentVersion).
			Updates(map[string]any{
				"invoice_partner_id": order.InvoicePartnerID,
				"pricelist_currency": models.NullableCurrency(order.PricelistCurrency),
				"total_amount":       order.TotalAmount,
				"residual_amount":    order.ResidualAmount,
				"advance_status":     string(order.AdvanceStatus),
				"status":             string(order.Status),
				"confirmed_at":       order.ConfirmedAt,
				"cancelled_at":       order.CancelledAt,
				"version":            nextVersion,
				"updated_at":         updatedAt,
			})
		if update.Error != nil {
			return update.Error
		}
		if update.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}

		order.Version = nextVersion
		order.UpdatedAt = updatedAt
		return nil
	})
}

var _ trade.SalesOrderRepository = (*GormSalesOrderRepository)(nil)
