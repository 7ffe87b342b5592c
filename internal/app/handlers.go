package app

import (
	nethttp "net/http"

	apphttp "github.com/capframe/capframe-backend/internal/http"
	httpH "github.com/capframe/capframe-backend/internal/http/handlers"
	"github.com/capframe/capframe-backend/internal/observability"
	"github.com/capframe/capframe-backend/internal/platform/logger"
)

type Handlers struct {
	Health     *httpH.HealthHandler
	Capability *httpH.CapabilityHandler
	Import     *httpH.ImportHandler
	Vendor     *httpH.VendorHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:     httpH.NewHealthHandler(),
		Capability: httpH.NewCapabilityHandler(services.Capability),
		Import:     httpH.NewImportHandler(log, services.Importer),
		Vendor:     httpH.NewVendorHandler(services.Capability),
	}
}

func wireServer(cfg Config, log *logger.Logger, metrics *observability.Metrics, handlers Handlers) *nethttp.Server {
	return apphttp.NewServer(cfg.HTTPAddr, apphttp.RouterConfig{
		Log:               log,
		Metrics:           metrics,
		HealthHandler:     handlers.Health,
		CapabilityHandler: handlers.Capability,
		ImportHandler:     handlers.Import,
		VendorHandler:     handlers.Vendor,
	})
}
