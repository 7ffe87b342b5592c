package app

import (
	"gorm.io/gorm"

	"github.com/capframe/capframe-backend/internal/data/repos/catalog"
	"github.com/capframe/capframe-backend/internal/platform/logger"
)

type Repos struct {
	Capability catalog.CapabilityRepo
	Domain     catalog.CapabilityDomainRepo
	Attribute  catalog.CapabilityAttributeRepo
	Vendor     catalog.VendorRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Capability: catalog.NewCapabilityRepo(db, log),
		Domain:     catalog.NewCapabilityDomainRepo(db, log),
		Attribute:  catalog.NewCapabilityAttributeRepo(db, log),
		Vendor:     catalog.NewVendorRepo(db, log),
	}
}
