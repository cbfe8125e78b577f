package models

import (
	"github.com/dixmit/sale-workflow/internal/domain/partner"
	"github.com/google/uuid"
)

// PartnerModel is the persistence model for partner.Partner
type PartnerModel struct {
	TenantModel
	Name      string     `gorm:"type:varchar(200);not null"`
	Type      string     `gorm:"type:varchar(20);not null"`
	ParentID  *uuid.UUID `gorm:"type:uuid;index"`
	Email     string     `gorm:"type:varchar(200)"`
	Reference string     `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (PartnerModel) TableName() string {
	return "partners"
}

// ToDomain converts the model to a domain Partner
func (m *PartnerModel) ToDomain() *partner.Partner {
	return &partner.Partner{
		BaseEntity: m.BaseModel.ToDomain(),
		TenantID:   m.TenantID,
		Name:       m.Name,
		Type:       partner.PartnerType(m.Type),
		ParentID:   m.ParentID,
		Email:      m.Email,
		Reference:  m.Reference,
	}
}

// FromDomain populates the model from a domain Partner
func (m *PartnerModel) FromDomain(p *partner.Partner) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.TenantID = p.TenantID
	m.Name = p.Name
	m.Type = string(p.Type)
	m.ParentID = p.ParentID
	m.Email = p.Email
	m.Reference = p.Reference
}

// PartnerModelFromDomain creates a model from a domain Partner
func PartnerModelFromDomain(p *partner.Partner) *PartnerModel {
	m := &PartnerModel{}
	m.FromDomain(p)
	return m
}
