package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func serveSystem(h *SystemHandler, path string) *httptest.ResponseRecorder {
	r := gin.New()
	r.GET("/health", h.Health)
	r.GET("/api/v1/ping", h.Ping)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestSystemHandler_Health(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		h := NewSystemHandler("sale-workflow", "1.0.0", map[string]Pinger{
			"database": pingFunc(func(context.Context) error { return nil }),
		})
		w := serveSystem(h, "/health")
		require.Equal(t, http.StatusOK, w.Code)

		var resp APIResponse[HealthResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "ok", resp.Data.Status)
		assert.Equal(t, "sale-workflow", resp.Data.Name)
		assert.Equal(t, map[string]string{"database": "ok"}, resp.Data.Checks)
		assert.NotEmpty(t, resp.Data.GoVersion)
	})

	t.Run("degraded", func(t *testing.T) {
		h := NewSystemHandler("sale-workflow", "1.0.0", map[string]Pinger{
			"database": pingFunc(func(context.Context) error { return errors.New("down") }),
		})
		w := serveSystem(h, "/health")
		require.Equal(t, http.StatusServiceUnavailable, w.Code)

		var resp APIResponse[HealthResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, "degraded", resp.Data.Status)
		assert.Equal(t, "unavailable", resp.Data.Checks["database"])
	})
}

func TestSystemHandler_Ping(t *testing.T) {
	w := serveSystem(NewSystemHandler("sale-workflow", "1.0.0", nil), "/api/v1/ping")
	require.Equal(t, http.StatusOK, w.Code)

	var resp APIResponse[PingResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "pong", resp.Data.Message)
}
