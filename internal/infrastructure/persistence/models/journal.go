package models

import (
	"github.com/dixmit/sale-workflow/internal/domain/finance"
	"github.com/google/uuid"
)

// JournalModel is the persistence model for finance.Journal
type JournalModel struct {
	TenantModel
	CompanyID          uuid.UUID                `gorm:"type:uuid;not null;index"`
	Code               string                   `gorm:"type:varchar(10);not null"`
	Name               string                   `gorm:"type:varchar(100);not null"`
	Type               string                   `gorm:"type:varchar(20);not null;index"`
	Currency           *string                  `gorm:"type:varchar(3)"`
	Active             bool                     `gorm:"not null;default:true"`
	PaymentMethodLines []PaymentMethodLineModel `gorm:"foreignKey:JournalID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (JournalModel) TableName() string {
	return "journals"
}

// PaymentMethodLineModel is a payment method enabled on a journal
type PaymentMethodLineModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	JournalID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Code        string    `gorm:"type:varchar(50);not null"`
	Name        string    `gorm:"type:varchar(100);not null"`
	PaymentType string    `gorm:"type:varchar(10);not null"`
	Sequence    int       `gorm:"not null;default:10"`
}

// TableName returns the table name for GORM
func (PaymentMethodLineModel) TableName() string {
	return "payment_method_lines"
}

// ToDomain converts the model to a domain Journal
func (m *JournalModel) ToDomain() *finance.Journal {
	lines := make([]finance.PaymentMethodLine, len(m.PaymentMethodLines))
	for i, l := range m.PaymentMethodLines {
		lines[i] = finance.PaymentMethodLine{
			ID:          l.ID,
			JournalID:   l.JournalID,
			Code:        l.Code,
			Name:        l.Name,
			PaymentType: finance.PaymentType(l.PaymentType),
			Sequence:    l.Sequence,
		}
	}
	return &finance.Journal{
		BaseEntity:         m.BaseModel.ToDomain(),
		TenantID:           m.TenantID,
		CompanyID:          m.CompanyID,
		Code:               m.Code,
		Name:               m.Name,
		Type:               finance.JournalType(m.Type),
		Currency:           currencyFromNullable(m.Currency),
		Active:             m.Active,
		PaymentMethodLines: lines,
	}
}

// FromDomain populates the model from a domain Journal
func (m *JournalModel) FromDomain(j *finance.Journal) {
	m.FromDomainBaseEntity(j.BaseEntity)
	m.TenantID = j.TenantID
	m.CompanyID = j.CompanyID
	m.Code = j.Code
	m.Name = j.Name
	m.Type = string(j.Type)
	m.Currency = NullableCurrency(j.Currency)
	m.Active = j.Active
	m.PaymentMethodLines = make([]PaymentMethodLineModel, len(j.PaymentMethodLines))
	for i, l := range j.PaymentMethodLines {
		m.PaymentMethodLines[i] = PaymentMethodLineModel{
			ID:          l.ID,
			JournalID:   j.ID,
			Code:        l.Code,
			Name:        l.Name,
			PaymentType: string(l.PaymentType),
			Sequence:    l.Sequence,
		}
	}
}

// JournalModelFromDomain creates a model from a domain Journal
func JournalModelFromDomain(j *finance.Journal) *JournalModel {
	m := &JournalModel{}
	m.FromDomain(j)
	return m
}
