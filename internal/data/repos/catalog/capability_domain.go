package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/capframe/capframe-backend/internal/domain"
	"github.com/capframe/capframe-backend/internal/platform/dbctx"
	"github.com/capframe/capframe-backend/internal/platform/logger"
)

// BatchCount is the per-batch rollup used by import history. ImportDate is
// the earliest import_date inside the batch.
type BatchCount struct {
	ImportBatch string    `gorm:"column:import_batch"`
	ImportDate  time.Time `gorm:"column:import_date"`
	RowCount    int64     `gorm:"column:row_count"`
}

type CapabilityDomainRepo interface {
	Create(dbc dbctx.Context, rows []*types.CapabilityDomain) ([]*types.CapabilityDomain, error)

	GetActiveByHash(dbc dbctx.Context, capabilityID uuid.UUID, contentHash string) (*types.CapabilityDomain, error)
	GetActiveByName(dbc dbctx.Context, capabilityID uuid.UUID, domainName string) (*types.CapabilityDomain, error)
	GetActiveByCapability(dbc dbctx.Context, capabilityID uuid.UUID) ([]*types.CapabilityDomain, error)

	Deactivate(dbc dbctx.Context, ids []uuid.UUID) error

	CountByBatch(dbc dbctx.Context, capabilityID uuid.UUID) ([]BatchCount, error)
}

type capabilityDomainRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCapabilityDomainRepo(db *gorm.DB, baseLog *logger.Logger) CapabilityDomainRepo {
	return &capabilityDomainRepo{db: db, log: baseLog.With("repo", "CapabilityDomainRepo")}
}

func (r *capabilityDomainRepo) Create(dbc dbctx.Context, rows []*types.CapabilityDomain) ([]*types.CapabilityDomain, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.CapabilityDomain{}, nil
	}
	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
	}
	if err := t.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *capabilityDomainRepo) GetActiveByHash(dbc dbctx.Context, capabilityID uuid.UUID, contentHash string) (*types.CapabilityDomain, error) {
	if capabilityID == uuid.Nil || contentHash == "" {
		return nil, nil
	}
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var row types.CapabilityDomain
	err := t.WithContext(dbc.Ctx).
		Where("capability_id = ? AND content_hash = ? AND is_active = ?", capabilityID, contentHash, true).
		Limit(1).
		Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *capabilityDomainRepo) GetActiveByName(dbc dbctx.Context, capabilityID uuid.UUID, domainName string) (*types.CapabilityDomain, error) {
	if capabilityID == uuid.Nil || domainName == "" {
		return nil, nil
	}
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var row types.CapabilityDomain
	err := t.WithContext(dbc.Ctx).
		Where("capability_id = ? AND domain_name = ? AND is_active = ?", capabilityID, domainName, true).
		Limit(1).
		Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *capabilityDomainRepo) GetActiveByCapability(dbc dbctx.Context, capabilityID uuid.UUID) ([]*types.CapabilityDomain, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.CapabilityDomain
	if capabilityID == uuid.Nil {
		return out, nil
	}
	err := t.WithContext(dbc.Ctx).
		Where("capability_id = ? AND is_active = ?", capabilityID, true).
		Order("domain_name ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *capabilityDomainRepo) Deactivate(dbc dbctx.Context, ids []uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(ids) == 0 {
		return nil
	}
	return t.WithContext(dbc.Ctx).
		Model(&types.CapabilityDomain{}).
		Where("id IN ?", ids).
		Update("is_active", false).Error
}

// CountByBatch rolls up every row (active and superseded) per import batch.
// Superseded rows keep their batch so history survives later imports.
func (r *capabilityDomainRepo) CountByBatch(dbc dbctx.Context, capabilityID uuid.UUID) ([]BatchCount, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []BatchCount
	if capabilityID == uuid.Nil {
		return out, nil
	}
	err := t.WithContext(dbc.Ctx).
		Model(&types.CapabilityDomain{}).
		Select("import_batch, MIN(import_date) AS import_date, COUNT(*) AS row_count").
		Where("capability_id = ? AND import_batch <> ''", capabilityID).
		Group("import_batch").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
