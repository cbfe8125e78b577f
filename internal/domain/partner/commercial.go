package partner

import (
	"context"
	"fmt"

	"github.com/dixmit/sale-workflow/internal/domain/shared"
	"github.com/google/uuid"
)

// maxParentDepth bounds the walk up the partner hierarchy
const maxParentDepth = 16

// CommercialPartner returns the partner accounting entries are booked
// against: the first company found walking up from partnerID, or the top
// of the hierarchy when there is no company.
func CommercialPartner(ctx context.Context, repo PartnerRepository, tenantID, partnerID uuid.UUID) (*Partner, error) {
	current, err := repo.FindByIDForTenant(ctx, tenantID, partnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find partner: %w", err)
	}
	if current == nil {
		return nil, shared.NewDomainError("PARTNER_NOT_FOUND", "Partner not found")
	}

	for depth := 0; !current.IsCompany() && current.ParentID != nil; depth++ {
		if depth >= maxParentDepth {
			return nil, shared.NewDomainError("PARTNER_HIERARCHY_TOO_DEEP", "Partner hierarchy is too deep or cyclic")
		}
		parent, err := repo.FindByIDForTenant(ctx, tenantID, *current.ParentID)
		if err != nil {
			return nil, fmt.Errorf("failed to find parent partner: %w", err)
		}
		if parent == nil {
			break
		}
		current = parent
	}
	return current, nil
}
