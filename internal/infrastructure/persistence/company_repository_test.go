package persistence

import (
	"context"
	"testing"

	"github.com/dixmit/sale-workflow/internal/domain/finance"
	"github.com/dixmit/sale-workflow/internal/domain/partner"
	"github.com/dixmit/sale-workflow/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormCompanyRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGormCompanyRepository(newSQLiteDB(t))
	tenantID := uuid.New()

	company, err := finance.NewCompany(tenantID, "Dixmit", valueobject.EUR)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, company))

	found, err := repo.FindByIDForTenant(ctx, tenantID, company.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, valueobject.EUR, found.Currency)

	missing, err := repo.FindByIDForTenant(ctx, uuid.New(), company.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGormPartnerRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGormPartnerRepository(newSQLiteDB(t))
	tenantID := uuid.New()

	parent, err := partner.NewPartner(tenantID, "Acme", partner.PartnerTypeCompany)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, parent))
	invoicing, err := partner.NewContact(parent, "Acme Billing")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, invoicing))

	found, err := repo.FindByIDForTenant(ctx, tenantID, invoicing.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	require.NotNil(t, found.ParentID)
	assert.Equal(t, parent.ID, *found.ParentID)

	commercial, err := partner.CommercialPartner(ctx, repo, tenantID, found.ID)
	require.NoError(t, err)
	assert.Equal(t, parent.ID, commercial.ID)
}
