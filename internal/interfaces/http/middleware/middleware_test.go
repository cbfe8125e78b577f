package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dixmit/sale-workflow/internal/infrastructure/logger"
	"github.com/dixmit/sale-workflow/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.Any("/api/v1/test", func(c *gin.Context) {
		tenantID, _ := GetTenantID(c)
		c.JSON(http.StatusOK, gin.H{
			"request_id":    GetRequestID(c),
			"tenant_id":     tenantID.String(),
			"ctx_tenant_id": logger.GetTenantID(c.Request.Context()).String(),
		})
	})
	r.GET("/health", func(c *gin.Context) {
		_, ok := GetTenantID(c)
		c.JSON(http.StatusOK, gin.H{"has_tenant": ok})
	})
	return r
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRequestID(t *testing.T) {
	r := newEngine(RequestID())

	t.Run("generates an id", func(t *testing.T) {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/test", nil))
		id := w.Header().Get(RequestIDHeader)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
		assert.Equal(t, id, decode(t, w)["request_id"])
	})

	t.Run("keeps the client id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/test", nil)
		req.Header.Set(RequestIDHeader, "client-1")
		w := serve(r, req)
		assert.Equal(t, "client-1", w.Header().Get(RequestIDHeader))
	})

	t.Run("replaces oversized ids", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/test", nil)
		req.Header.Set(RequestIDHeader, strings.Repeat("x", MaxRequestIDLength+1))
		w := serve(r, req)
		assert.Len(t, w.Header().Get(RequestIDHeader), 36)
	})
}

func TestTenant(t *testing.T) {
	tenantID := uuid.New()

	t.Run("header", func(t *testing.T) {
		r := newEngine(RequestID(), Tenant(DefaultTenantConfig()))
		req := httptest.NewRequest(http.MethodGet, "/api/v1/test", nil)
		req.Header.Set(TenantHeaderKey, tenantID.String())
		w := serve(r, req)
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, tenantID.String(), body["tenant_id"])
		assert.Equal(t, tenantID.String(), body["ctx_tenant_id"])
	})

	t.Run("development default", func(t *testing.T) {
		r := newEngine(Tenant(DefaultTenantConfig()))
		w := serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/test", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, DevelopmentTenantID.String(), decode(t, w)["tenant_id"])
	})

	t.Run("required", func(t *testing.T) {
		cfg := DefaultTenantConfig()
		cfg.Required = true
		r := newEngine(Tenant(cfg))
		w := serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/test", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid header", func(t *testing.T) {
		r := newEngine(RequestID(), Tenant(DefaultTenantConfig()))
		req := httptest.NewRequest(http.MethodGet, "/api/v1/test", nil)
		req.Header.Set(TenantHeaderKey, "acme")
		w := serve(r, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeTenant, resp.Error.Code)
		assert.NotEmpty(t, resp.Error.RequestID)
	})

	t.Run("skipped paths", func(t *testing.T) {
		r := newEngine(Tenant(DefaultTenantConfig()))
		w := serve(r, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, false, decode(t, w)["has_tenant"])
	})
}

func TestCORS(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowOrigins = []string{"https://erp.example.com"}
	r := newEngine(CORSWithConfig(cfg))

	t.Run("preflight from an allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/test", nil)
		req.Header.Set("Origin", "https://erp.example.com")
		w := serve(r, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://erp.example.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), IdempotencyKeyHeader)
	})

	t.Run("unknown origin gets no headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/test", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		w := serve(r, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestSecure(t *testing.T) {
	w := serve(newEngine(Secure()), httptest.NewRequest(http.MethodGet, "/api/v1/test", nil))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestBodyLimit(t *testing.T) {
	r := newEngine(BodyLimit(16))

	w := serve(r, httptest.NewRequest(http.MethodPost, "/api/v1/test", strings.NewReader(`{"amount_advance":"100.00"}`)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	w = serve(r, httptest.NewRequest(http.MethodPost, "/api/v1/test", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSwaggerProtection(t *testing.T) {
	handler := func(cfg SwaggerConfig) *gin.Engine {
		r := gin.New()
		r.GET("/swagger/*any", SwaggerProtection(cfg), func(c *gin.Context) { c.Status(http.StatusOK) })
		return r
	}

	w := serve(handler(SwaggerConfig{Enabled: false}), httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(handler(SwaggerConfig{Enabled: true}), httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	req.RemoteAddr = "203.0.113.9:4000"
	w = serve(handler(SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.0/8"}}), req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	req.RemoteAddr = "10.1.2.3:4000"
	w = serve(handler(SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.0/8"}}), req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestValidationDetails(t *testing.T) {
	SetupValidator()
	type request struct {
		JournalID   string `json:"journal_id" binding:"required,uuid"`
		PaymentType string `json:"payment_type" binding:"omitempty,oneof=inbound outbound"`
	}

	r := gin.New()
	r.POST("/validate", func(c *gin.Context) {
		var req request
		err := c.ShouldBindJSON(&req)
		c.JSON(http.StatusBadRequest, ValidationDetails(err))
	})

	w := serve(r, httptest.NewRequest(http.MethodPost, "/validate", strings.NewReader(`{"journal_id":"x","payment_type":"sideways"}`)))
	var details []dto.ValidationDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &details))
	require.Len(t, details, 2)
	assert.Equal(t, dto.ValidationDetail{Field: "journal_id", Message: "Invalid UUID format"}, details[0])
	assert.Equal(t, "payment_type", details[1].Field)

	assert.Nil(t, ValidationDetails(assert.AnError))
}
