package router

import (
	"time"

	"github.com/dixmit/sale-workflow/internal/infrastructure/config"
	"github.com/dixmit/sale-workflow/internal/infrastructure/logger"
	"github.com/dixmit/sale-workflow/internal/interfaces/http/handler"
	"github.com/dixmit/sale-workflow/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/dixmit/sale-workflow/docs"
)

// Handlers are the HTTP handlers mounted by NewEngine
type Handlers struct {
	System         *handler.SystemHandler
	AdvancePayment *handler.AdvancePaymentHandler
}

// NewEngine builds the gin engine with the middleware stack and every route
func NewEngine(cfg *config.Config, log *zap.Logger, h Handlers) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Request ID first so recovery and access logs carry it.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(corsConfig(cfg.HTTP)))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	tenantCfg := middleware.DefaultTenantConfig()
	tenantCfg.Required = cfg.App.Env == "production"
	engine.Use(middleware.Tenant(tenantCfg))
	engine.Use(middleware.SpanAttributes(), middleware.SpanErrorMarker())
	engine.Use(middleware.ProfilingLabels(cfg.Profiling.Enabled))

	engine.GET("/health", h.System.Health)
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{Enabled: cfg.Swagger.Enabled}),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	r := NewRouter(engine, WithAPIVersion("v1"))

	system := NewDomainGroup("system", "")
	system.GET("/ping", h.System.Ping)

	trade := NewDomainGroup("trade", "/trade")
	orders := trade.Group("sales-orders", "/sales-orders/:id")
	orders.GET("/advance-payment/defaults", h.AdvancePayment.GetDefaults)
	orders.POST("/advance-payment/onchange", h.AdvancePayment.Onchange)
	orders.POST("/advance-payment", h.AdvancePayment.MakeAdvancePayment)
	orders.GET("/payments", h.AdvancePayment.ListOrderPayments)

	finance := NewDomainGroup("finance", "/finance")
	finance.GET("/journals", h.AdvancePayment.ListJournals)

	r.Register(system).Register(trade).Register(finance)
	r.Setup()

	return engine
}

func corsConfig(cfg config.HTTPConfig) middleware.CORSConfig {
	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.CORSAllowOrigins
	if len(cfg.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.CORSAllowMethods
	}
	if len(cfg.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.CORSAllowHeaders
	}
	cors.MaxAge = 12 * time.Hour
	return cors
}
