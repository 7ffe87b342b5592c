package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/capframe/capframe-backend/internal/http/handlers"
	httpMW "github.com/capframe/capframe-backend/internal/http/middleware"
	"github.com/capframe/capframe-backend/internal/observability"
	"github.com/capframe/capframe-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log     *logger.Logger
	Metrics *observability.Metrics

	HealthHandler     *httpH.HealthHandler
	CapabilityHandler *httpH.CapabilityHandler
	ImportHandler     *httpH.ImportHandler
	VendorHandler     *httpH.VendorHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("capframe-backend"))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.CORS())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Capabilities
		if cfg.CapabilityHandler != nil {
			api.POST("/capabilities", cfg.CapabilityHandler.CreateCapability)
			api.GET("/capabilities", cfg.CapabilityHandler.ListCapabilities)
			api.GET("/capabilities/:id", cfg.CapabilityHandler.GetCapability)
			api.DELETE("/capabilities/:id", cfg.CapabilityHandler.DeleteCapability)
			api.GET("/capabilities/:id/domains", cfg.CapabilityHandler.GetCapabilityDomains)
		}

		// Imports
		if cfg.ImportHandler != nil {
			api.POST("/capabilities/:id/imports/research", cfg.ImportHandler.ImportResearch)
			api.POST("/capabilities/:id/imports/domains", cfg.ImportHandler.ImportDomains)
			api.GET("/capabilities/:id/imports", cfg.ImportHandler.GetImportHistory)
			api.POST("/capabilities/:id/domains/rename", cfg.ImportHandler.RenameDomain)
		}

		// Vendors
		if cfg.VendorHandler != nil {
			api.GET("/vendors", cfg.VendorHandler.ListVendors)
		}
	}

	return r
}
