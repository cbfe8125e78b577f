package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	advanceapp "github.com/dixmit/sale-workflow/internal/application/advance"
	"github.com/dixmit/sale-workflow/internal/domain/advance"
	"github.com/dixmit/sale-workflow/internal/domain/finance"
	"github.com/dixmit/sale-workflow/internal/domain/shared"
	"github.com/dixmit/sale-workflow/internal/interfaces/http/dto"
	"github.com/dixmit/sale-workflow/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

type MockAdvancePaymentService struct {
	mock.Mock
}

func (m *MockAdvancePaymentService) DefaultGet(ctx context.Context, tenantID uuid.UUID, activeIDs []uuid.UUID, fields []string) (*advanceapp.WizardView, error) {
	args := m.Called(ctx, tenantID, activeIDs, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*advanceapp.WizardView), args.Error(1)
}

func (m *MockAdvancePaymentService) Onchange(ctx context.Context, tenantID uuid.UUID, input advanceapp.WizardInput, changed []string) (*advanceapp.WizardView, error) {
	args := m.Called(ctx, tenantID, input, changed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*advanceapp.WizardView), args.Error(1)
}

func (m *MockAdvancePaymentService) MakeAdvancePayment(ctx context.Context, tenantID uuid.UUID, activeIDs []uuid.UUID, input advanceapp.WizardInput, idempotencyKey string) (advance.ActionResult, error) {
	args := m.Called(ctx, tenantID, activeIDs, input, idempotencyKey)
	return args.Get(0).(advance.ActionResult), args.Error(1)
}

func (m *MockAdvancePaymentService) ListPaymentJournals(ctx context.Context, tenantID, orderID uuid.UUID) ([]advanceapp.JournalView, error) {
	args := m.Called(ctx, tenantID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]advanceapp.JournalView), args.Error(1)
}

func (m *MockAdvancePaymentService) ListOrderPayments(ctx context.Context, tenantID, orderID uuid.UUID) ([]advanceapp.PaymentView, error) {
	args := m.Called(ctx, tenantID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]advanceapp.PaymentView), args.Error(1)
}

var testTenant = uuid.MustParse("6f1c1e4a-0d2b-4c55-9a43-1b1f0f3b2c10")

func setupAdvanceRouter(svc AdvancePaymentService) *gin.Engine {
	h := NewAdvancePaymentHandler(svc)
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Tenant(middleware.DefaultTenantConfig()))
	api := r.Group("/api/v1")
	orders := api.Group("/trade/sales-orders/:id")
	orders.GET("/advance-payment/defaults", h.GetDefaults)
	orders.POST("/advance-payment/onchange", h.Onchange)
	orders.POST("/advance-payment", h.MakeAdvancePayment)
	orders.GET("/payments", h.ListOrderPayments)
	api.GET("/finance/journals", h.ListJournals)
	return r
}

func doRequest(r http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.TenantHeaderKey, testTenant.String())
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) *dto.ErrorInfo {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	return resp.Error
}

func TestAdvancePaymentHandler_GetDefaults(t *testing.T) {
	orderID := uuid.New()

	t.Run("returns the wizard", func(t *testing.T) {
		svc := new(MockAdvancePaymentService)
		svc.On("DefaultGet", mock.Anything, testTenant, []uuid.UUID{orderID}, []string{"amount_total", "date"}).
			Return(&advanceapp.WizardView{
				OrderID:     &orderID,
				Currency:    "EUR",
				AmountTotal: decimal.NewFromInt(1000),
				Date:        "2024-03-15",
				PaymentType: "inbound",
			}, nil)

		w := doRequest(setupAdvanceRouter(svc), http.MethodGet,
			"/api/v1/trade/sales-orders/"+orderID.String()+"/advance-payment/defaults?fields=amount_total,date", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp APIResponse[advanceapp.WizardView]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "EUR", resp.Data.Currency)
		assert.True(t, resp.Data.AmountTotal.Equal(decimal.NewFromInt(1000)))
		svc.AssertExpectations(t)
	})

	t.Run("invalid order id", func(t *testing.T) {
		svc := new(MockAdvancePaymentService)
		w := doRequest(setupAdvanceRouter(svc), http.MethodGet, "/api/v1/trade/sales-orders/abc/advance-payment/defaults", nil, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "DefaultGet", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("order not found", func(t *testing.T) {
		svc := new(MockAdvancePaymentService)
		svc.On("DefaultGet", mock.Anything, testTenant, mock.Anything, mock.Anything).
			Return(nil, shared.NewDomainError("NOT_FOUND", "Sales order not found"))
		w := doRequest(setupAdvanceRouter(svc), http.MethodGet,
			"/api/v1/trade/sales-orders/"+orderID.String()+"/advance-payment/defaults", nil, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		errInfo := decodeError(t, w)
		assert.Equal(t, dto.ErrCodeNotFound, errInfo.Code)
		assert.NotEmpty(t, errInfo.RequestID)
	})
}

func TestAdvancePaymentHandler_Onchange(t *testing.T) {
	orderID := uuid.New()
	journalID := uuid.New()

	t.Run("passes the wizard state", func(t *testing.T) {
		svc := new(MockAdvancePaymentService)
		svc.On("Onchange", mock.Anything, testTenant, mock.MatchedBy(func(in advanceapp.WizardInput) bool {
			return *in.OrderID == orderID &&
				in.JournalID != nil && *in.JournalID == journalID &&
				in.AmountAdvance.Equal(decimal.RequireFromString("110")) &&
				in.Date.Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)) &&
				in.PaymentType == finance.PaymentTypeInbound
		}), []string{"journal_id"}).Return(&advanceapp.WizardView{
			JournalID:       &journalID,
			JournalCurrency: "USD",
			CurrencyAmount:  decimal.NewFromInt(100),
			Recomputed:      []string{"journal_currency_id", "currency_amount"},
		}, nil)

		w := doRequest(setupAdvanceRouter(svc), http.MethodPost,
			"/api/v1/trade/sales-orders/"+orderID.String()+"/advance-payment/onchange",
			map[string]any{
				"journal_id":     journalID.String(),
				"amount_advance": "110",
				"date":           "2024-03-15",
				"payment_type":   "inbound",
				"changed":        []string{"journal_id"},
			}, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp APIResponse[advanceapp.WizardView]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "USD", resp.Data.JournalCurrency)
		assert.Equal(t, []string{"journal_currency_id", "currency_amount"}, resp.Data.Recomputed)
	})

	t.Run("unknown changed field", func(t *testing.T) {
		svc := new(MockAdvancePaymentService)
		w := doRequest(setupAdvanceRouter(svc), http.MethodPost,
			"/api/v1/trade/sales-orders/"+orderID.String()+"/advance-payment/onchange",
			map[string]any{"changed": []string{"colour"}}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		errInfo := decodeError(t, w)
		assert.Equal(t, dto.ErrCodeValidation, errInfo.Code)
		require.NotEmpty(t, errInfo.Details)
	})
}

func TestAdvancePaymentHandler_MakeAdvancePayment(t *testing.T) {
	orderID := uuid.New()
	journalID := uuid.New()
	path := "/api/v1/trade/sales-orders/" + orderID.String() + "/advance-payment"
	body := map[string]any{
		"journal_id":     journalID.String(),
		"amount_advance": 250.5,
		"payment_type":   "inbound",
		"payment_ref":    "Wire 42",
	}

	t.Run("returns the close action", func(t *testing.T) {
		svc := new(MockAdvancePaymentService)
		svc.On("MakeAdvancePayment", mock.Anything, testTenant, []uuid.UUID{orderID}, mock.MatchedBy(func(in advanceapp.WizardInput) bool {
			return in.AmountAdvance.Equal(decimal.RequireFromString("250.5")) && in.PaymentRef == "Wire 42" && in.Date.IsZero()
		}), "key-1").Return(advance.CloseAction(), nil)

		w := doRequest(setupAdvanceRouter(svc), http.MethodPost, path, body,
			map[string]string{middleware.IdempotencyKeyHeader: "key-1"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.JSONEq(t, `{"success":true,"data":{"type":"ir.actions.act_window_close"}}`, w.Body.String())
	})

	tests := []struct {
		name     string
		err      error
		status   int
		wantCode string
	}{
		{"amount over residual", shared.NewValidationError("Inbound amount of advance is greater than residual amount on sale"), http.StatusUnprocessableEntity, dto.ErrCodeBusinessRule},
		{"duplicate submission", shared.ErrDuplicateRequest, http.StatusConflict, dto.ErrCodeDuplicateRequest},
		{"concurrent update", shared.ErrConcurrencyConflict, http.StatusConflict, dto.ErrCodeConcurrencyConflict},
		{"missing rate", shared.NewDomainError("RATE_NOT_FOUND", "No exchange rate for USD on 2024-03-15"), http.StatusUnprocessableEntity, dto.ErrCodeRateNotFound},
		{"infrastructure failure", errors.New("connection refused"), http.StatusInternalServerError, dto.ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockAdvancePaymentService)
			svc.On("MakeAdvancePayment", mock.Anything, testTenant, mock.Anything, mock.Anything, "").
				Return(advance.ActionResult{}, tt.err)
			w := doRequest(setupAdvanceRouter(svc), http.MethodPost, path, body, nil)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, w).Code)
		})
	}

	t.Run("rejects malformed fields", func(t *testing.T) {
		svc := new(MockAdvancePaymentService)
		w := doRequest(setupAdvanceRouter(svc), http.MethodPost, path, map[string]any{
			"journal_id":   "not-a-uuid",
			"payment_type": "sideways",
			"date":         "15/03/2024",
		}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		fields := make([]string, 0)
		for _, d := range decodeError(t, w).Details {
			fields = append(fields, d.Field)
		}
		assert.ElementsMatch(t, []string{"journal_id", "date", "payment_type"}, fields)
		svc.AssertNotCalled(t, "MakeAdvancePayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		svc := new(MockAdvancePaymentService)
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(`{"amount_advance":`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		setupAdvanceRouter(svc).ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeBadRequest, decodeError(t, w).Code)
	})
}

func TestAdvancePaymentHandler_Lists(t *testing.T) {
	orderID := uuid.New()

	t.Run("journals", func(t *testing.T) {
		svc := new(MockAdvancePaymentService)
		svc.On("ListPaymentJournals", mock.Anything, testTenant, orderID).Return([]advanceapp.JournalView{
			{ID: uuid.New(), Code: "BNK1", Name: "Bank", Type: "bank"},
		}, nil)
		w := doRequest(setupAdvanceRouter(svc), http.MethodGet, "/api/v1/finance/journals?order_id="+orderID.String(), nil, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp APIResponse[[]advanceapp.JournalView]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "BNK1", resp.Data[0].Code)
	})

	t.Run("journals need an order", func(t *testing.T) {
		w := doRequest(setupAdvanceRouter(new(MockAdvancePaymentService)), http.MethodGet, "/api/v1/finance/journals", nil, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("payments", func(t *testing.T) {
		svc := new(MockAdvancePaymentService)
		svc.On("ListOrderPayments", mock.Anything, testTenant, orderID).Return([]advanceapp.PaymentView{
			{ID: uuid.New(), PaymentNumber: "PAY-2024-00001", Amount: decimal.NewFromInt(250), State: "posted"},
		}, nil)
		w := doRequest(setupAdvanceRouter(svc), http.MethodGet, "/api/v1/trade/sales-orders/"+orderID.String()+"/payments", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp APIResponse[[]advanceapp.PaymentView]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "PAY-2024-00001", resp.Data[0].PaymentNumber)
	})
}
