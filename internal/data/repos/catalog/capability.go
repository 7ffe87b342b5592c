package catalog

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/capframe/capframe-backend/internal/domain"
	"github.com/capframe/capframe-backend/internal/platform/dbctx"
	"github.com/capframe/capframe-backend/internal/platform/logger"
)

type CapabilityRepo interface {
	Create(dbc dbctx.Context, rows []*types.Capability) ([]*types.Capability, error)

	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Capability, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Capability, error)
	GetByName(dbc dbctx.Context, name string) (*types.Capability, error)
	List(dbc dbctx.Context, statuses []string) ([]*types.Capability, error)

	LockByID(dbc dbctx.Context, id uuid.UUID) (*types.Capability, error)

	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	UpdateVersion(dbc dbctx.Context, id uuid.UUID, major, minor, patch, build int) error

	SoftDeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
}

type capabilityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCapabilityRepo(db *gorm.DB, baseLog *logger.Logger) CapabilityRepo {
	return &capabilityRepo{db: db, log: baseLog.With("repo", "CapabilityRepo")}
}

func (r *capabilityRepo) Create(dbc dbctx.Context, rows []*types.Capability) ([]*types.Capability, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.Capability{}, nil
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

func (r *capabilityRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Capability, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Capability
	if len(ids) == 0 {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *capabilityRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Capability, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	rows, err := r.GetByIDs(dbc, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *capabilityRepo) GetByName(dbc dbctx.Context, name string) (*types.Capability, error) {
	if name == "" {
		return nil, nil
	}
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var row types.Capability
	if err := t.WithContext(dbc.Ctx).Where("name = ?", name).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *capabilityRepo) List(dbc dbctx.Context, statuses []string) ([]*types.Capability, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	q := t.WithContext(dbc.Ctx)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	var out []*types.Capability
	if err := q.Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// LockByID takes the per-capability write lock that serializes concurrent
// imports against the same capability. SQLite has a single writer per
// database, so the row lock clause is applied on Postgres only.
func (r *capabilityRepo) LockByID(dbc dbctx.Context, id uuid.UUID) (*types.Capability, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	q := t.WithContext(dbc.Ctx)
	if t.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var row types.Capability
	err := q.Where("id = ?", id).Limit(1).Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *capabilityRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil || len(updates) == 0 {
		return nil
	}
	return t.WithContext(dbc.Ctx).
		Model(&types.Capability{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *capabilityRepo) UpdateVersion(dbc dbctx.Context, id uuid.UUID, major, minor, patch, build int) error {
	return r.UpdateFields(dbc, id, map[string]interface{}{
		"version_major": major,
		"version_minor": minor,
		"version_patch": patch,
		"version_build": build,
	})
}

func (r *capabilityRepo) SoftDeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(ids) == 0 {
		return nil
	}
	return t.WithContext(dbc.Ctx).Where("id IN ?", ids).Delete(&types.Capability{}).Error
}
