// Package advance registers advance payments against sales orders.
package advance

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/dixmit/sale-workflow/internal/domain/advance"
	"github.com/dixmit/sale-workflow/internal/domain/finance"
	"github.com/dixmit/sale-workflow/internal/domain/partner"
	"github.com/dixmit/sale-workflow/internal/domain/shared"
	"github.com/dixmit/sale-workflow/internal/domain/trade"
	"github.com/dixmit/sale-workflow/internal/infrastructure/logger"
	"github.com/dixmit/sale-workflow/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Config tunes the advance payment service
type Config struct {
	// ExcludedMethodCodes are payment method codes never offered
	ExcludedMethodCodes []string
	// CompareDigits is the precision of the amount checks
	CompareDigits int32
	// IdempotencyTTL is how long a submitted Idempotency-Key is remembered
	IdempotencyTTL time.Duration
}

// DefaultConfig returns the service defaults
func DefaultConfig() Config {
	return Config{
		CompareDigits:  advance.DefaultCompareDigits,
		IdempotencyTTL: shared.DefaultIdempotencyConfig().TTL,
	}
}

// Service runs the advance payment wizard
type Service struct {
	orders      trade.SalesOrderRepository
	journals    finance.JournalRepository
	companies   finance.CompanyRepository
	partners    partner.PartnerRepository
	payments    finance.PaymentRepository
	converter   advance.AmountConverter
	tx          shared.TransactionManager
	events      shared.EventPublisher
	idempotency shared.IdempotencyStore
	metrics     *telemetry.AdvancePaymentMetrics
	config      Config
	now         func() time.Time
}

// Option configures optional collaborators of the Service
type Option func(*Service)

// WithEventPublisher publishes the domain events raised by a payment
func WithEventPublisher(p shared.EventPublisher) Option {
	return func(s *Service) { s.events = p }
}

// WithIdempotencyStore enables Idempotency-Key deduplication
func WithIdempotencyStore(store shared.IdempotencyStore) Option {
	return func(s *Service) { s.idempotency = store }
}

// WithMetrics records submission outcomes
func WithMetrics(m *telemetry.AdvancePaymentMetrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithConfig replaces the default configuration
func WithConfig(cfg Config) Option {
	return func(s *Service) {
		if cfg.CompareDigits <= 0 {
			cfg.CompareDigits = advance.DefaultCompareDigits
		}
		if cfg.IdempotencyTTL <= 0 {
			cfg.IdempotencyTTL = shared.DefaultIdempotencyConfig().TTL
		}
		s.config = cfg
	}
}

// WithClock overrides the clock that provides today's date
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a new advance payment service
func NewService(
	orders trade.SalesOrderRepository,
	journals finance.JournalRepository,
	companies finance.CompanyRepository,
	partners partner.PartnerRepository,
	payments finance.PaymentRepository,
	converter advance.AmountConverter,
	tx shared.TransactionManager,
	opts ...Option,
) *Service {
	s := &Service{
		orders:    orders,
		journals:  journals,
		companies: companies,
		partners:  partners,
		payments:  payments,
		converter: converter,
		tx:        tx,
		config:    DefaultConfig(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultGet returns a new wizard filled from the first active order.
// With no active order only the static defaults are set.
func (s *Service) DefaultGet(ctx context.Context, tenantID uuid.UUID, activeIDs []uuid.UUID, fields []string) (*WizardView, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "advance_payment", "default_get")
	defer span.End()

	w := advance.NewWizard(s.now())
	var order *trade.SalesOrder
	if len(activeIDs) > 0 {
		var err error
		order, err = s.loadOrder(ctx, tenantID, activeIDs[0])
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		telemetry.SetAttributes(span, telemetry.AttrOrderID, order.ID.String())
	}
	w.DefaultGet(order, fields)

	env, err := s.buildEnv(ctx, tenantID, w, order)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := w.Recompute(ctx, env); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return toWizardView(w, nil), nil
}

// Onchange recomputes the fields depending on changed and returns the
// updated wizard.
func (s *Service) Onchange(ctx context.Context, tenantID uuid.UUID, input WizardInput, changed []string) (*WizardView, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "advance_payment", "onchange")
	defer span.End()

	w := input.toWizard(s.now())
	var order *trade.SalesOrder
	if w.OrderID != nil {
		var err error
		order, err = s.loadOrder(ctx, tenantID, *w.OrderID)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		w.OrderBound = true
	}

	env, err := s.buildEnv(ctx, tenantID, w, order)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	recomputed, err := w.Onchange(ctx, env, changed...)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return toWizardView(w, recomputed), nil
}

// MakeAdvancePayment creates and posts the payment described by input for
// the first active order, links it to the order and returns the action
// closing the wizard. Without active orders nothing is created.
//
// A non-empty idempotencyKey already used by the tenant is rejected with
// shared.ErrDuplicateRequest. The key is released when the payment could
// not be registered so that the client may retry.
func (s *Service) MakeAdvancePayment(ctx context.Context, tenantID uuid.UUID, activeIDs []uuid.UUID, input WizardInput, idempotencyKey string) (result advance.ActionResult, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "advance_payment", "make_advance_payment")
	defer span.End()
	log := logger.FromContext(ctx)

	if len(activeIDs) == 0 {
		return advance.CloseAction(), nil
	}
	paymentType := string(input.PaymentType)
	if paymentType == "" {
		paymentType = string(finance.DefaultPaymentType)
	}
	telemetry.SetAttributes(span,
		telemetry.AttrTenantID, tenantID.String(),
		telemetry.AttrOrderID, activeIDs[0].String(),
		telemetry.AttrPaymentType, paymentType,
		telemetry.AttrAmount, input.AmountAdvance.String(),
	)

	if idempotencyKey != "" && s.idempotency != nil {
		key := requestKey(tenantID, idempotencyKey)
		fresh, markErr := s.idempotency.MarkProcessed(ctx, key, s.config.IdempotencyTTL)
		if markErr != nil {
			telemetry.RecordError(span, markErr)
			s.metrics.RecordOutcome(ctx, paymentType, telemetry.OutcomeFailed)
			return advance.ActionResult{}, fmt.Errorf("failed to check idempotency key: %w", markErr)
		}
		if !fresh {
			s.metrics.RecordOutcome(ctx, paymentType, telemetry.OutcomeDuplicate)
			log.Info("Duplicate advance payment request", zap.String("idempotency_key", idempotencyKey))
			return advance.ActionResult{}, shared.ErrDuplicateRequest
		}
		defer func() {
			if err == nil {
				return
			}
			if releaseErr := s.idempotency.Release(context.WithoutCancel(ctx), key); releaseErr != nil {
				log.Warn("Failed to release idempotency key", zap.String("idempotency_key", idempotencyKey), zap.Error(releaseErr))
			}
		}()
	}

	payment, order, err := s.registerPayment(ctx, tenantID, activeIDs[0], input)
	if err != nil {
		telemetry.RecordError(span, err)
		outcome := telemetry.OutcomeFailed
		if shared.IsValidationError(err) {
			outcome = telemetry.OutcomeRejected
		}
		s.metrics.RecordOutcome(ctx, paymentType, outcome)
		return advance.ActionResult{}, err
	}

	telemetry.SetAttributes(span,
		telemetry.AttrPaymentID, payment.ID.String(),
		telemetry.AttrCurrency, string(payment.Currency),
	)
	s.metrics.RecordOutcome(ctx, paymentType, telemetry.OutcomePosted)
	log.Info("Advance payment posted",
		zap.String("payment_id", payment.ID.String()),
		zap.String("payment_number", payment.PaymentNumber),
		zap.String("order_number", order.OrderNumber),
		zap.String("amount", payment.Amount.String()),
		zap.String("currency", string(payment.Currency)),
	)

	s.publishEvents(ctx, payment, order)
	return advance.CloseAction(), nil
}

// registerPayment runs the wizard for orderID and persists its outcome
func (s *Service) registerPayment(ctx context.Context, tenantID, orderID uuid.UUID, input WizardInput) (*finance.Payment, *trade.SalesOrder, error) {
	order, err := s.loadOrder(ctx, tenantID, orderID)
	if err != nil {
		return nil, nil, err
	}

	w := input.toWizard(s.now())
	// order-derived fields always come from the stored order
	w.DefaultGet(order, nil)
	if err := w.Validate(); err != nil {
		return nil, nil, err
	}

	env, err := s.buildEnv(ctx, tenantID, w, order)
	if err != nil {
		return nil, nil, err
	}
	if err := checkJournal(env.Journal, order); err != nil {
		return nil, nil, err
	}
	if err := w.Recompute(ctx, env); err != nil {
		return nil, nil, err
	}
	if err := w.CheckAmount(order, s.config.CompareDigits); err != nil {
		return nil, nil, err
	}

	commercial, err := partner.CommercialPartner(ctx, s.partners, tenantID, order.InvoicePartnerID)
	if err != nil {
		return nil, nil, err
	}
	vals, err := w.PreparePaymentValues(order, commercial.ID)
	if err != nil {
		return nil, nil, err
	}

	var payment *finance.Payment
	err = s.tx.InTransaction(ctx, func(ctx context.Context) error {
		number, err := s.payments.GeneratePaymentNumber(ctx, tenantID)
		if err != nil {
			return fmt.Errorf("failed to generate payment number: %w", err)
		}
		payment, err = finance.NewPayment(tenantID, number, vals)
		if err != nil {
			return err
		}
		if err := payment.LinkSalesOrder(order.ID, w.CurrencyAmount); err != nil {
			return err
		}
		if err := payment.Post(); err != nil {
			return err
		}
		if err := s.payments.Save(ctx, payment); err != nil {
			return fmt.Errorf("failed to save payment: %w", err)
		}
		if err := order.RegisterAdvancePayment(payment.ID, w.CurrencyAmount, payment.PaymentType); err != nil {
			return err
		}
		if err := s.orders.SaveWithLock(ctx, order); err != nil {
			if errors.Is(err, shared.ErrConcurrencyConflict) {
				return err
			}
			return fmt.Errorf("failed to save sales order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return payment, order, nil
}

// ListPaymentJournals returns the journals an advance payment on the order
// can be booked on.
func (s *Service) ListPaymentJournals(ctx context.Context, tenantID, orderID uuid.UUID) ([]JournalView, error) {
	order, err := s.loadOrder(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	journals, err := s.journals.FindPaymentJournals(ctx, tenantID, order.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list journals: %w", err)
	}
	views := make([]JournalView, len(journals))
	for i := range journals {
		views[i] = toJournalView(&journals[i])
	}
	return views, nil
}

// ListOrderPayments returns the payments linked to the order, oldest first
func (s *Service) ListOrderPayments(ctx context.Context, tenantID, orderID uuid.UUID) ([]PaymentView, error) {
	if _, err := s.loadOrder(ctx, tenantID, orderID); err != nil {
		return nil, err
	}
	payments, err := s.payments.FindBySalesOrder(ctx, tenantID, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	views := make([]PaymentView, len(payments))
	for i := range payments {
		views[i] = toPaymentView(&payments[i])
	}
	return views, nil
}

func (s *Service) loadOrder(ctx context.Context, tenantID, orderID uuid.UUID) (*trade.SalesOrder, error) {
	order, err := s.orders.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sales order: %w", err)
	}
	if order == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Sales order not found")
	}
	return order, nil
}

// buildEnv loads what the computed fields of w read
func (s *Service) buildEnv(ctx context.Context, tenantID uuid.UUID, w *advance.Wizard, order *trade.SalesOrder) (advance.Env, error) {
	env := advance.Env{
		Converter:           s.converter,
		ExcludedMethodCodes: s.config.ExcludedMethodCodes,
		Today:               s.now,
	}

	if w.JournalID != nil && *w.JournalID != uuid.Nil {
		journal, err := s.journals.FindByIDForTenant(ctx, tenantID, *w.JournalID)
		if err != nil {
			return env, fmt.Errorf("failed to get journal: %w", err)
		}
		if journal == nil {
			return env, shared.NewDomainError("NOT_FOUND", "Journal not found")
		}
		company, err := s.findCompany(ctx, tenantID, journal.CompanyID)
		if err != nil {
			return env, err
		}
		env.Journal = journal
		env.JournalCompany = company
	}

	if order != nil {
		if env.JournalCompany != nil && env.JournalCompany.ID == order.CompanyID {
			env.OrderCompany = env.JournalCompany
		} else {
			company, err := s.findCompany(ctx, tenantID, order.CompanyID)
			if err != nil {
				return env, err
			}
			env.OrderCompany = company
		}
	}
	return env, nil
}

func (s *Service) findCompany(ctx context.Context, tenantID, companyID uuid.UUID) (*finance.Company, error) {
	company, err := s.companies.FindByIDForTenant(ctx, tenantID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	if company == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Company not found")
	}
	return company, nil
}

// checkJournal restricts the journal to the payment journals of the
// order's company.
func checkJournal(journal *finance.Journal, order *trade.SalesOrder) error {
	if journal == nil {
		return shared.NewValidationError("Journal is required.")
	}
	if !journal.IsPaymentJournal() || !journal.Active {
		return shared.NewValidationError("The journal must be an active bank or cash journal.")
	}
	if journal.CompanyID != order.CompanyID {
		return shared.NewValidationError("The journal belongs to another company than the sales order.")
	}
	return nil
}

func (s *Service) publishEvents(ctx context.Context, payment *finance.Payment, order *trade.SalesOrder) {
	events := slices.Concat(payment.GetDomainEvents(), order.GetDomainEvents())
	payment.ClearDomainEvents()
	order.ClearDomainEvents()
	if s.events == nil || len(events) == 0 {
		return
	}
	// the payment is committed; a failing subscriber must not fail the request
	if err := s.events.Publish(ctx, events...); err != nil {
		logger.FromContext(ctx).Error("Failed to publish advance payment events",
			zap.String("payment_id", payment.ID.String()),
			zap.Error(err),
		)
	}
}

func requestKey(tenantID uuid.UUID, key string) string {
	return "advance-payment:" + tenantID.String() + ":" + key
}
