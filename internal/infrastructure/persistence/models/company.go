package models

import (
	"github.com/dixmit/sale-workflow/internal/domain/finance"
	"github.com/dixmit/sale-workflow/internal/domain/shared/valueobject"
)

// CompanyModel is the persistence model for finance.Company
type CompanyModel struct {
	TenantModel
	Name     string `gorm:"type:varchar(200);not null"`
	Currency string `gorm:"type:varchar(3);not null"`
}

// TableName returns the table name for GORM
func (CompanyModel) TableName() string {
	return "companies"
}

// ToDomain converts the model to a domain Company
func (m *CompanyModel) ToDomain() *finance.Company {
	return &finance.Company{
		BaseEntity: m.BaseModel.ToDomain(),
		TenantID:   m.TenantID,
		Name:       m.Name,
		Currency:   valueobject.Currency(m.Currency),
	}
}

// FromDomain populates the model from a domain Company
func (m *CompanyModel) FromDomain(c *finance.Company) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.TenantID = c.TenantID
	m.Name = c.Name
	m.Currency = string(c.Currency)
}

// CompanyModelFromDomain creates a model from a domain Company
func CompanyModelFromDomain(c *finance.Company) *CompanyModel {
	m := &CompanyModel{}
	m.FromDomain(c)
	return m
}
