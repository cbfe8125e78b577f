package trade

import (
	"context"

	"github.com/google/uuid"
)

// SalesOrderRepository is the view of sales orders the advance wizard
// needs. Orders are created by the sales flow; this service only reads
// them and records advances on them.
type SalesOrderRepository interface {
	// FindByIDForTenant finds a sales order by ID for a specific tenant.
	// Returns nil, nil when the order does not exist.
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*SalesOrder, error)

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, order *SalesOrder) error
}
