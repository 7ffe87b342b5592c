package catalog

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/capframe/capframe-backend/internal/domain"
	"github.com/capframe/capframe-backend/internal/platform/dbctx"
	"github.com/capframe/capframe-backend/internal/platform/logger"
)

type CapabilityAttributeRepo interface {
	Create(dbc dbctx.Context, rows []*types.CapabilityAttribute) ([]*types.CapabilityAttribute, error)

	GetActiveByHash(dbc dbctx.Context, capabilityID uuid.UUID, contentHash string) (*types.CapabilityAttribute, error)
	GetActiveByName(dbc dbctx.Context, capabilityID uuid.UUID, domainName, attributeName string) (*types.CapabilityAttribute, error)
	GetActiveByDomainName(dbc dbctx.Context, capabilityID uuid.UUID, domainName string) ([]*types.CapabilityAttribute, error)
	GetActiveByCapability(dbc dbctx.Context, capabilityID uuid.UUID) ([]*types.CapabilityAttribute, error)

	Deactivate(dbc dbctx.Context, ids []uuid.UUID) error
	ReassignDomain(dbc dbctx.Context, capabilityID uuid.UUID, domainName string, domainID uuid.UUID) error

	CountByBatch(dbc dbctx.Context, capabilityID uuid.UUID) ([]BatchCount, error)
}

type capabilityAttributeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCapabilityAttributeRepo(db *gorm.DB, baseLog *logger.Logger) CapabilityAttributeRepo {
	return &capabilityAttributeRepo{db: db, log: baseLog.With("repo", "CapabilityAttributeRepo")}
}

func (r *capabilityAttributeRepo) Create(dbc dbctx.Context, rows []*types.CapabilityAttribute) ([]*types.CapabilityAttribute, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.CapabilityAttribute{}, nil
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

func (r *capabilityAttributeRepo) GetActiveByHash(dbc dbctx.Context, capabilityID uuid.UUID, contentHash string) (*types.CapabilityAttribute, error) {
	if capabilityID == uuid.Nil || contentHash == "" {
		return nil, nil
	}
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var row types.CapabilityAttribute
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

func (r *capabilityAttributeRepo) GetActiveByName(dbc dbctx.Context, capabilityID uuid.UUID, domainName, attributeName string) (*types.CapabilityAttribute, error) {
	if capabilityID == uuid.Nil || domainName == "" || attributeName == "" {
		return nil, nil
	}
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var row types.CapabilityAttribute
	err := t.WithContext(dbc.Ctx).
		Where("capability_id = ? AND domain_name = ? AND attribute_name = ? AND is_active = ?",
			capabilityID, domainName, attributeName, true).
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

func (r *capabilityAttributeRepo) GetActiveByDomainName(dbc dbctx.Context, capabilityID uuid.UUID, domainName string) ([]*types.CapabilityAttribute, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.CapabilityAttribute
	if capabilityID == uuid.Nil || domainName == "" {
		return out, nil
	}
	err := t.WithContext(dbc.Ctx).
		Where("capability_id = ? AND domain_name = ? AND is_active = ?", capabilityID, domainName, true).
		Order("attribute_name ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *capabilityAttributeRepo) GetActiveByCapability(dbc dbctx.Context, capabilityID uuid.UUID) ([]*types.CapabilityAttribute, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.CapabilityAttribute
	if capabilityID == uuid.Nil {
		return out, nil
	}
	err := t.WithContext(dbc.Ctx).
		Where("capability_id = ? AND is_active = ?", capabilityID, true).
		Order("domain_name ASC, attribute_name ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *capabilityAttributeRepo) Deactivate(dbc dbctx.Context, ids []uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(ids) == 0 {
		return nil
	}
	return t.WithContext(dbc.Ctx).
		Model(&types.CapabilityAttribute{}).
		Where("id IN ?", ids).
		Update("is_active", false).Error
}

// ReassignDomain re-points the active attributes of a domain name at a
// successor domain row. Only the foreign key moves; domain_name stays the
// hash-identity snapshot it was written with.
func (r *capabilityAttributeRepo) ReassignDomain(dbc dbctx.Context, capabilityID uuid.UUID, domainName string, domainID uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if capabilityID == uuid.Nil || domainName == "" || domainID == uuid.Nil {
		return nil
	}
	return t.WithContext(dbc.Ctx).
		Model(&types.CapabilityAttribute{}).
		Where("capability_id = ? AND domain_name = ? AND is_active = ?", capabilityID, domainName, true).
		Update("domain_id", domainID).Error
}

func (r *capabilityAttributeRepo) CountByBatch(dbc dbctx.Context, capabilityID uuid.UUID) ([]BatchCount, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []BatchCount
	if capabilityID == uuid.Nil {
		return out, nil
	}
	err := t.WithContext(dbc.Ctx).
		Model(&types.CapabilityAttribute{}).
		Select("import_batch, MIN(import_date) AS import_date, COUNT(*) AS row_count").
		Where("capability_id = ? AND import_batch <> ''", capabilityID).
		Group("import_batch").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
