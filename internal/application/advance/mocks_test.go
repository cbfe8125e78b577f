package advance

import (
	"context"
	"time"

	"github.com/dixmit/sale-workflow/internal/domain/currency"
	"github.com/dixmit/sale-workflow/internal/domain/finance"
	"github.com/dixmit/sale-workflow/internal/domain/partner"
	"github.com/dixmit/sale-workflow/internal/domain/shared"
	"github.com/dixmit/sale-workflow/internal/domain/shared/valueobject"
	"github.com/dixmit/sale-workflow/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockSalesOrderRepository struct {
	mock.Mock
}

func (m *MockSalesOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.SalesOrder, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) SaveWithLock(ctx context.Context, order *trade.SalesOrder) error {
	return m.Called(ctx, order).Error(0)
}

type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.Journal, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindPaymentJournals(ctx context.Context, tenantID, companyID uuid.UUID) ([]finance.Journal, error) {
	args := m.Called(ctx, tenantID, companyID)
	return args.Get(0).([]finance.Journal), args.Error(1)
}

func (m *MockJournalRepository) Save(ctx context.Context, journal *finance.Journal) error {
	return m.Called(ctx, journal).Error(0)
}

type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.Company, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Company), args.Error(1)
}

func (m *MockCompanyRepository) Save(ctx context.Context, company *finance.Company) error {
	return m.Called(ctx, company).Error(0)
}

type MockPartnerRepository struct {
	mock.Mock
}

func (m *MockPartnerRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Partner, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Partner), args.Error(1)
}

func (m *MockPartnerRepository) Save(ctx context.Context, p *partner.Partner) error {
	return m.Called(ctx, p).Error(0)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.Payment, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindBySalesOrder(ctx context.Context, tenantID, orderID uuid.UUID) ([]finance.Payment, error) {
	args := m.Called(ctx, tenantID, orderID)
	return args.Get(0).([]finance.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Save(ctx context.Context, payment *finance.Payment) error {
	return m.Called(ctx, payment).Error(0)
}

func (m *MockPaymentRepository) GeneratePaymentNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	args := m.Called(ctx, tenantID)
	return args.String(0), args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	return m.Called(ctx, events).Error(0)
}

// passThroughTx runs the unit of work without a database
type passThroughTx struct {
	calls int
}

func (t *passThroughTx) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

// memoryRates is an in-memory currency.RateRepository
type memoryRates struct {
	rates []*currency.ExchangeRate
}

func (m *memoryRates) FindRate(_ context.Context, tenantID, companyID uuid.UUID, cur valueobject.Currency, date time.Time) (*currency.ExchangeRate, error) {
	var best *currency.ExchangeRate
	for _, r := range m.rates {
		if r.TenantID != tenantID || r.CompanyID != companyID || r.Currency != cur || r.ValidFrom.After(date) {
			continue
		}
		if best == nil || r.ValidFrom.After(best.ValidFrom) {
			best = r
		}
	}
	return best, nil
}

func (m *memoryRates) Save(_ context.Context, r *currency.ExchangeRate) error {
	m.rates = append(m.rates, r)
	return nil
}
