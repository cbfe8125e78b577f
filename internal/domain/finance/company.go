package finance

import (
	"github.com/dixmit/sale-workflow/internal/domain/shared"
	"github.com/dixmit/sale-workflow/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Company is the legal entity that owns journals and books payments.
// Its currency is the reference for exchange rates.
type Company struct {
	shared.BaseEntity
	TenantID uuid.UUID
	Name     string
	Currency valueobject.Currency
}

// NewCompany creates a new company
func NewCompany(tenantID uuid.UUID, name string, currency valueobject.Currency) (*Company, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Company name cannot be empty")
	}
	if err := currency.Validate(); err != nil {
		return nil, shared.NewDomainError("INVALID_CURRENCY", err.Error())
	}
	return &Company{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   tenantID,
		Name:       name,
		Currency:   currency,
	}, nil
}
