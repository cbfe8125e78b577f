package handler

import (
	"context"
	"strings"

	advanceapp "github.com/dixmit/sale-workflow/internal/application/advance"
	"github.com/dixmit/sale-workflow/internal/domain/advance"
	"github.com/dixmit/sale-workflow/internal/interfaces/http/dto"
	"github.com/dixmit/sale-workflow/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxIdempotencyKeyLength bounds the Idempotency-Key header
const maxIdempotencyKeyLength = 255

// AdvancePaymentService is the application service behind the handler
type AdvancePaymentService interface {
	DefaultGet(ctx context.Context, tenantID uuid.UUID, activeIDs []uuid.UUID, fields []string) (*advanceapp.WizardView, error)
	Onchange(ctx context.Context, tenantID uuid.UUID, input advanceapp.WizardInput, changed []string) (*advanceapp.WizardView, error)
	MakeAdvancePayment(ctx context.Context, tenantID uuid.UUID, activeIDs []uuid.UUID, input advanceapp.WizardInput, idempotencyKey string) (advance.ActionResult, error)
	ListPaymentJournals(ctx context.Context, tenantID, orderID uuid.UUID) ([]advanceapp.JournalView, error)
	ListOrderPayments(ctx context.Context, tenantID, orderID uuid.UUID) ([]advanceapp.PaymentView, error)
}

// AdvancePaymentHandler serves the advance payment wizard
type AdvancePaymentHandler struct {
	BaseHandler
	service AdvancePaymentService
}

// NewAdvancePaymentHandler creates a new AdvancePaymentHandler
func NewAdvancePaymentHandler(service AdvancePaymentService) *AdvancePaymentHandler {
	return &AdvancePaymentHandler{service: service}
}

// GetDefaults godoc
// @ID           getAdvancePaymentDefaults
// @Summary      Open the advance payment wizard
// @Description  Returns the wizard defaults for the sales order with its computed fields
// @Tags         advance-payment
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        id path string true "Sales order ID" format(uuid)
// @Param        fields query string false "Comma separated fields to default; all when empty"
// @Success      200 {object} APIResponse[advanceapp.WizardView]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /trade/sales-orders/{id}/advance-payment/defaults [get]
func (h *AdvancePaymentHandler) GetDefaults(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}
	var fields []string
	for _, v := range c.QueryArray("fields") {
		for _, f := range strings.Split(v, ",") {
			if f = strings.TrimSpace(f); f != "" {
				fields = append(fields, f)
			}
		}
	}

	view, err := h.service.DefaultGet(c.Request.Context(), tenantID(c), []uuid.UUID{orderID}, fields)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Onchange godoc
// @ID           onchangeAdvancePayment
// @Summary      Recompute the wizard after a field change
// @Tags         advance-payment
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        id path string true "Sales order ID" format(uuid)
// @Param        request body OnchangeRequest true "Wizard state and changed fields"
// @Success      200 {object} APIResponse[advanceapp.WizardView]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /trade/sales-orders/{id}/advance-payment/onchange [post]
func (h *AdvancePaymentHandler) Onchange(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}
	var req OnchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	input, err := req.toInput(orderID)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	view, err := h.service.Onchange(c.Request.Context(), tenantID(c), input, req.Changed)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// MakeAdvancePayment godoc
// @ID           makeAdvancePayment
// @Summary      Register an advance payment
// @Description  Creates and posts the payment described by the wizard, links it to the sales order and returns the action closing the wizard
// @Tags         advance-payment
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        Idempotency-Key header string false "Deduplicates retried submissions"
// @Param        id path string true "Sales order ID" format(uuid)
// @Param        request body WizardRequest true "Wizard state"
// @Success      200 {object} APIResponse[advance.ActionResult]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /trade/sales-orders/{id}/advance-payment [post]
func (h *AdvancePaymentHandler) MakeAdvancePayment(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}
	key := c.GetHeader(middleware.IdempotencyKeyHeader)
	if len(key) > maxIdempotencyKeyLength {
		h.BadRequest(c, "Idempotency-Key is too long")
		return
	}
	var req WizardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	input, err := req.toInput(orderID)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.MakeAdvancePayment(c.Request.Context(), tenantID(c), []uuid.UUID{orderID}, input, key)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ListOrderPayments godoc
// @ID           listSalesOrderPayments
// @Summary      List the payments of a sales order
// @Tags         advance-payment
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        id path string true "Sales order ID" format(uuid)
// @Success      200 {object} APIResponse[[]advanceapp.PaymentView]
// @Failure      404 {object} ErrorResponse
// @Router       /trade/sales-orders/{id}/payments [get]
func (h *AdvancePaymentHandler) ListOrderPayments(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}
	payments, err := h.service.ListOrderPayments(c.Request.Context(), tenantID(c), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payments)
}

// ListJournals godoc
// @ID           listPaymentJournals
// @Summary      List the journals an advance payment can be booked on
// @Tags         finance
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        order_id query string true "Sales order ID" format(uuid)
// @Success      200 {object} APIResponse[[]advanceapp.JournalView]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /finance/journals [get]
func (h *AdvancePaymentHandler) ListJournals(c *gin.Context) {
	var q JournalQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindingError(c, err)
		return
	}
	journals, err := h.service.ListPaymentJournals(c.Request.Context(), tenantID(c), uuid.MustParse(q.OrderID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, journals)
}

func (h *AdvancePaymentHandler) orderID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid sales order ID")
		return uuid.Nil, false
	}
	return uuid.MustParse(req.ID), true
}
