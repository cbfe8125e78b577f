package middleware

import (
	"context"

	"github.com/dixmit/sale-workflow/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
)

// ProfilingLabels tags the CPU samples of each request with its route,
// method and tenant. Unmatched routes are labelled "unmatched" to bound
// cardinality.
func ProfilingLabels(enabled bool) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		labels := map[string]string{
			"route":  route,
			"method": c.Request.Method,
		}
		if id, ok := GetTenantID(c); ok {
			labels["tenant_id"] = id.String()
		}
		telemetry.WithProfilingLabels(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}
