package middleware

import (
	"net/http"
	"strings"

	"github.com/dixmit/sale-workflow/internal/infrastructure/logger"
	"github.com/dixmit/sale-workflow/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Tenant keys
const (
	TenantIDKey     = "tenant_id"
	TenantHeaderKey = "X-Tenant-ID"
)

// DevelopmentTenantID is used when a request names no tenant and the
// middleware is not configured to require one
var DevelopmentTenantID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// TenantConfig holds configuration for the tenant middleware
type TenantConfig struct {
	// Required rejects requests without X-Tenant-ID. When false the
	// DefaultTenantID is used.
	Required        bool
	DefaultTenantID uuid.UUID
	// SkipPaths don't need a tenant (health checks, docs)
	SkipPaths []string
}

// DefaultTenantConfig returns the development configuration
func DefaultTenantConfig() TenantConfig {
	return TenantConfig{
		Required:        false,
		DefaultTenantID: DevelopmentTenantID,
		SkipPaths:       []string{"/health", "/api/v1/ping", "/swagger"},
	}
}

// Tenant resolves the tenant of the request from the X-Tenant-ID header
// and stores it in the gin context and in the request context.
func Tenant(cfg TenantConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skip := range cfg.SkipPaths {
			if path == skip || strings.HasPrefix(path, skip+"/") {
				c.Next()
				return
			}
		}

		tenantID := cfg.DefaultTenantID
		header := c.GetHeader(TenantHeaderKey)
		switch {
		case header != "":
			if len(header) > MaxTenantIDLength {
				abortTenant(c, "Invalid tenant ID format")
				return
			}
			parsed, err := uuid.Parse(header)
			if err != nil || parsed == uuid.Nil {
				abortTenant(c, "Invalid tenant ID format")
				return
			}
			tenantID = parsed
		case cfg.Required || tenantID == uuid.Nil:
			abortTenant(c, "Tenant identification required")
			return
		}

		c.Set(TenantIDKey, tenantID)
		ctx := logger.WithTenantID(c.Request.Context(), tenantID)
		c.Request = c.Request.WithContext(ctx)
		if header == "" {
			logger.FromContext(ctx).Debug("Using default tenant", zap.String("path", path))
		}
		c.Next()
	}
}

// GetTenantID returns the tenant resolved by Tenant
func GetTenantID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(TenantIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok && id != uuid.Nil
}

func abortTenant(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeTenant, message, GetRequestID(c),
	))
}
