package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/dixmit/sale-workflow/internal/domain/currency"
	"github.com/dixmit/sale-workflow/internal/domain/shared/valueobject"
	"github.com/dixmit/sale-workflow/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormExchangeRateRepository implements currency.RateRepository using GORM
type GormExchangeRateRepository struct {
	db *gorm.DB
}

// NewGormExchangeRateRepository creates a new GormExchangeRateRepository
func NewGormExchangeRateRepository(db *gorm.DB) *GormExchangeRateRepository {
	return &GormExchangeRateRepository{db: db}
}

// FindRate returns the most recent rate valid on date, or nil when the
// company has no rate for the currency yet.
func (r *GormExchangeRateRepository) FindRate(ctx context.Context, tenantID, companyID uuid.UUID, cur valueobject.Currency, date time.Time) (*currency.ExchangeRate, error) {
	var model models.ExchangeRateModel
	err := conn(ctx, r.db).
		Where("tenant_id = ? AND company_id = ? AND currency = ? AND valid_from <= ?", tenantID, companyID, string(cur), date).
		Order("valid_from DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates an exchange rate
func (r *GormExchangeRateRepository) Save(ctx context.Context, rate *currency.ExchangeRate) error {
	return conn(ctx, r.db).Save(models.ExchangeRateModelFromDomain(rate)).Error
}

var _ currency.RateRepository = (*GormExchangeRateRepository)(nil)
