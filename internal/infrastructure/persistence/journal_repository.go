package persistence

import (
	"context"
	"errors"

	"github.com/dixmit/sale-workflow/internal/domain/finance"
	"github.com/dixmit/sale-workflow/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormJournalRepository implements finance.JournalRepository using GORM
type GormJournalRepository struct {
	db *gorm.DB
}

// NewGormJournalRepository creates a new GormJournalRepository
func NewGormJournalRepository(db *gorm.DB) *GormJournalRepository {
	return &GormJournalRepository{db: db}
}

// FindByIDForTenant finds a journal with its payment method lines
func (r *GormJournalRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.Journal, error) {
	var model models.JournalModel
	if err := conn(ctx, r.db).
		Preload("PaymentMethodLines").
		First(&model, "id = ? AND tenant_id = ?", id, tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindPaymentJournals returns the active bank and cash journals of a company
func (r *GormJournalRepository) FindPaymentJournals(ctx context.Context, tenantID, companyID uuid.UUID) ([]finance.Journal, error) {
	var journalModels []models.JournalModel
	if err := conn(ctx, r.db).
		Where("tenant_id = ? AND company_id = ? AND active = ? AND type IN ?",
			tenantID, companyID, true,
			[]string{string(finance.JournalTypeBank), string(finance.JournalTypeCash)}).
		Order("code ASC").
		Preload("PaymentMethodLines").
		Find(&journalModels).Error; err != nil {
		return nil, err
	}
	journals := make([]finance.Journal, len(journalModels))
	for i := range journalModels {
		journals[i] = *journalModels[i].ToDomain()
	}
	return journals, nil
}

// Save creates or updates a journal. Payment method lines are replaced
// wholesale by the journal's current set.
func (r *GormJournalRepository) Save(ctx context.Context, journal *finance.Journal) error {
	model := models.JournalModelFromDomain(journal)
	lines := model.PaymentMethodLines
	model.PaymentMethodLines = nil

	save := func(tx *gorm.DB) error {
		if err := tx.Save(model).Error; err != nil {
			return err
		}
		if err := tx.Where("journal_id = ?", journal.ID).Delete(&models.PaymentMethodLineModel{}).Error; err != nil {
			return err
		}
		if len(lines) > 0 {
			if err := tx.Create(&lines).Error; err != nil {
				return err
			}
		}
		return nil
	}

	return withTx(ctx, r.db, save)
}

var _ finance.JournalRepository = (*GormJournalRepository)(nil)
