package partner

import (
	"github.com/dixmit/sale-workflow/internal/domain/shared"
	"github.com/google/uuid"
)

// PartnerType tells companies from their contacts and addresses
type PartnerType string

const (
	PartnerTypeCompany    PartnerType = "company"
	PartnerTypeIndividual PartnerType = "individual"
)

// Partner is a customer, one of its contacts or one of its addresses.
// Contacts and addresses point to their parent.
type Partner struct {
	shared.BaseEntity
	TenantID  uuid.UUID
	Name      string
	Type      PartnerType
	ParentID  *uuid.UUID
	Email     string
	Reference string
}

// NewPartner creates a new partner without a parent
func NewPartner(tenantID uuid.UUID, name string, partnerType PartnerType) (*Partner, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Partner name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Partner name cannot exceed 200 characters")
	}
	if partnerType != PartnerTypeCompany && partnerType != PartnerTypeIndividual {
		return nil, shared.NewDomainError("INVALID_PARTNER_TYPE", "Partner type is not valid")
	}
	return &Partner{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   tenantID,
		Name:       name,
		Type:       partnerType,
	}, nil
}

// NewContact creates a contact or address attached to parent
func NewContact(parent *Partner, name string) (*Partner, error) {
	if parent == nil {
		return nil, shared.NewDomainError("INVALID_PARENT", "Parent partner is required")
	}
	contact, err := NewPartner(parent.TenantID, name, PartnerTypeIndividual)
	if err != nil {
		return nil, err
	}
	parentID := parent.ID
	contact.ParentID = &parentID
	return contact, nil
}

// IsCompany returns true for company partners
func (p *Partner) IsCompany() bool {
	return p.Type == PartnerTypeCompany
}
