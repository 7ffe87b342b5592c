package app

import (
	"gorm.io/gorm"

	"github.com/capframe/capframe-backend/internal/importer"
	"github.com/capframe/capframe-backend/internal/platform/logger"
	"github.com/capframe/capframe-backend/internal/services"
)

type Services struct {
	Capability services.CapabilityService
	Importer   *importer.Orchestrator
	Seeder     *services.Seeder
}

func wireServices(db *gorm.DB, log *logger.Logger, reposet Repos) Services {
	log.Info("Wiring services...")
	return Services{
		Capability: services.NewCapabilityService(db, log, reposet.Capability, reposet.Domain, reposet.Attribute, reposet.Vendor),
		Importer: importer.NewOrchestrator(
			importer.NewGormTxRunner(db),
			reposet.Capability,
			reposet.Domain,
			reposet.Attribute,
			reposet.Vendor,
			log,
		),
		Seeder: services.NewSeeder(db, log, reposet.Capability),
	}
}
