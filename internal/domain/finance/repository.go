package finance

import (
	"context"

	"github.com/google/uuid"
)

// CompanyRepository defines the interface for company persistence
type CompanyRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Company, error)
	Save(ctx context.Context, company *Company) error
}

// JournalRepository defines the interface for journal persistence
type JournalRepository interface {
	// FindByIDForTenant loads a journal with its payment method lines.
	// Returns nil, nil when the journal does not exist.
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Journal, error)

	// FindPaymentJournals returns the active bank and cash journals of a company
	FindPaymentJournals(ctx context.Context, tenantID, companyID uuid.UUID) ([]Journal, error)

	// Save creates or updates a journal and its payment method lines
	Save(ctx context.Context, journal *Journal) error
}

// PaymentRepository defines the interface for payment persistence
type PaymentRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Payment, error)

	// FindBySalesOrder returns the payments linked to a sales order, oldest first
	FindBySalesOrder(ctx context.Context, tenantID, orderID uuid.UUID) ([]Payment, error)

	Save(ctx context.Context, payment *Payment) error

	// GeneratePaymentNumber generates a unique payment number for a tenant
	GeneratePaymentNumber(ctx context.Context, tenantID uuid.UUID) (string, error)
}
