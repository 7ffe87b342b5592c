package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	types "github.com/capframe/capframe-backend/internal/domain"
	"github.com/capframe/capframe-backend/internal/platform/envutil"
	"github.com/capframe/capframe-backend/internal/platform/logger"
)

// Service owns the gorm handle for the catalog database. The driver is
// selected with DB_DRIVER: "postgres" (default) for deployments, "sqlite"
// for local single-binary runs and CI.
type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewService(log *logger.Logger) (*Service, error) {
	serviceLog := log.With("service", "DBService")

	driver := envutil.Str("DB_DRIVER", "postgres")
	var (
		gdb *gorm.DB
		err error
	)
	switch driver {
	case "postgres":
		gdb, err = openPostgres(log)
	case "sqlite":
		gdb, err = openSQLite(log)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
	if err != nil {
		return nil, err
	}

	return &Service{db: gdb, log: serviceLog}, nil
}

func openPostgres(log *logger.Logger) (*gorm.DB, error) {
	host := envutil.Str("POSTGRES_HOST", "localhost")
	port := envutil.Str("POSTGRES_PORT", "5432")
	user := envutil.Str("POSTGRES_USER", "postgres")
	password := envutil.Str("POSTGRES_PASSWORD", "")
	name := envutil.Str("POSTGRES_NAME", "capframe")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)

	log.Info("Connecting to Postgres...")
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}
	if err := gdb.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		log.Error("Failed to enable uuid-ossp extension", "error", err)
		return nil, fmt.Errorf("failed to enable uuid-ossp extension: %w", err)
	}
	return gdb, nil
}

func openSQLite(log *logger.Logger) (*gorm.DB, error) {
	path := envutil.Str("SQLITE_PATH", "capframe.db")

	log.Info("Opening SQLite database...", "path", path)
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Error("Failed to open SQLite database", "error", err)
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	return gdb, nil
}

func (s *Service) DB() *gorm.DB {
	return s.db
}

func (s *Service) Migrate() error {
	s.log.Info("Auto migrating catalog tables...")
	if err := MigrateAll(s.db); err != nil {
		s.log.Error("Catalog migration failed", "error", err)
		return err
	}
	s.log.Info("Catalog migration complete")
	return nil
}

// MigrateAll creates the catalog schema on the given handle. Shared with the
// repo test harness so tests run against the same indexes as deployments.
func MigrateAll(gdb *gorm.DB) error {
	err := gdb.AutoMigrate(
		&types.Capability{},
		&types.CapabilityDomain{},
		&types.CapabilityAttribute{},
		&types.Vendor{},
	)
	if err != nil {
		return err
	}

	// Uniqueness is scoped to the live rows only: superseded rows stay in
	// place with is_active=false and must not collide with their
	// replacements. Partial indexes express that in both Postgres and
	// SQLite, so they are created with raw SQL rather than gorm tags.
	stmts := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_capability_domain_active
		   ON capability_domain (capability_id, domain_name)
		   WHERE is_active`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_capability_attribute_active
		   ON capability_attribute (capability_id, domain_name, attribute_name)
		   WHERE is_active`,
	}
	for _, stmt := range stmts {
		if err := gdb.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create partial unique index: %w", err)
		}
	}
	return nil
}
