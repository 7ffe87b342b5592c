package services

import (
	"context"
	"embed"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	repos "github.com/capframe/capframe-backend/internal/data/repos/catalog"
	types "github.com/capframe/capframe-backend/internal/domain"
	"github.com/capframe/capframe-backend/internal/importer"
	"github.com/capframe/capframe-backend/internal/platform/dbctx"
	"github.com/capframe/capframe-backend/internal/platform/logger"
)

const seedYAMLEnv = "CAPFRAME_SEED_YAML"

//go:embed capability_seed.yaml
var seedFS embed.FS

type yamlSeedSpec struct {
	Catalog      string               `yaml:"catalog"`
	Version      int                  `yaml:"version"`
	Capabilities []yamlSeedCapability `yaml:"capabilities"`
}

type yamlSeedCapability struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Status      string `yaml:"status"`
}

// Seeder installs the baseline capability catalog at boot. Seeding is
// insert-if-absent by exact name, so rerunning it against a populated
// database is a no-op.
type Seeder struct {
	db           *gorm.DB
	log          *logger.Logger
	capabilities repos.CapabilityRepo
}

func NewSeeder(db *gorm.DB, baseLog *logger.Logger, capabilities repos.CapabilityRepo) *Seeder {
	return &Seeder{
		db:           db,
		log:          baseLog.With("service", "Seeder"),
		capabilities: capabilities,
	}
}

// Seed loads the catalog spec and creates every capability that does not
// exist yet. Returns how many rows were created.
func (s *Seeder) Seed(ctx context.Context) (int, error) {
	spec, source, err := loadSeedSpec()
	if err != nil {
		return 0, err
	}

	dbc := dbctx.Context{Ctx: ctx}
	created := 0
	for i, entry := range spec.Capabilities {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			return created, fmt.Errorf("seed catalog %s: capabilities[%d] has no name", source, i)
		}
		existing, err := s.capabilities.GetByName(dbc, name)
		if err != nil {
			return created, importer.MapError("services.seeder", err)
		}
		if existing != nil {
			continue
		}
		status := strings.TrimSpace(entry.Status)
		if status == "" {
			status = "active"
		}
		row := &types.Capability{
			ID:           uuid.New(),
			Name:         name,
			Description:  strings.TrimSpace(entry.Description),
			Status:       status,
			VersionMajor: 1,
		}
		if _, err := s.capabilities.Create(dbc, []*types.Capability{row}); err != nil {
			return created, importer.MapError("services.seeder", err)
		}
		created++
	}

	s.log.Info("capability catalog seeded",
		"source", source, "catalog", spec.Catalog, "created", created, "total", len(spec.Capabilities))
	return created, nil
}

// loadSeedSpec prefers the CAPFRAME_SEED_YAML override file and falls back
// to the embedded catalog.
func loadSeedSpec() (*yamlSeedSpec, string, error) {
	if path := strings.TrimSpace(os.Getenv(seedYAMLEnv)); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, "", fmt.Errorf("read seed yaml %s: %w", path, err)
		}
		spec, err := parseSeedSpec(raw)
		if err != nil {
			return nil, "", fmt.Errorf("parse seed yaml %s: %w", path, err)
		}
		return spec, path, nil
	}

	raw, err := seedFS.ReadFile("capability_seed.yaml")
	if err != nil {
		return nil, "", fmt.Errorf("read embedded seed yaml: %w", err)
	}
	spec, err := parseSeedSpec(raw)
	if err != nil {
		return nil, "", fmt.Errorf("parse embedded seed yaml: %w", err)
	}
	return spec, "embedded", nil
}

func parseSeedSpec(raw []byte) (*yamlSeedSpec, error) {
	var spec yamlSeedSpec
	if err := yaml.Unmarshal(raw, &spec); err != nil {
		return nil, err
	}
	if len(spec.Capabilities) == 0 {
		return nil, fmt.Errorf("seed catalog lists no capabilities")
	}
	return &spec, nil
}
