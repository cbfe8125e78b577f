package partner

import (
	"context"

	"github.com/google/uuid"
)

// PartnerRepository defines the interface for partner persistence
type PartnerRepository interface {
	// FindByIDForTenant returns nil, nil when the partner does not exist
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Partner, error)
	Save(ctx context.Context, partner *Partner) error
}
