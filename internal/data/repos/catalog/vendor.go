package catalog

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/capframe/capframe-backend/internal/domain"
	"github.com/capframe/capframe-backend/internal/platform/dbctx"
	"github.com/capframe/capframe-backend/internal/platform/logger"
)

type VendorRepo interface {
	Create(dbc dbctx.Context, rows []*types.Vendor) ([]*types.Vendor, error)

	GetByName(dbc dbctx.Context, name string) (*types.Vendor, error)
	GetByNames(dbc dbctx.Context, names []string) ([]*types.Vendor, error)
	List(dbc dbctx.Context) ([]*types.Vendor, error)

	// CreateIfAbsent inserts the vendor unless a row with the same name
	// already exists. Returns the persisted row and whether this call
	// created it.
	CreateIfAbsent(dbc dbctx.Context, row *types.Vendor) (*types.Vendor, bool, error)
}

type vendorRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVendorRepo(db *gorm.DB, baseLog *logger.Logger) VendorRepo {
	return &vendorRepo{db: db, log: baseLog.With("repo", "VendorRepo")}
}

func (r *vendorRepo) Create(dbc dbctx.Context, rows []*types.Vendor) ([]*types.Vendor, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.Vendor{}, nil
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

func (r *vendorRepo) GetByName(dbc dbctx.Context, name string) (*types.Vendor, error) {
	if name == "" {
		return nil, nil
	}
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var row types.Vendor
	if err := t.WithContext(dbc.Ctx).Where("name = ?", name).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *vendorRepo) GetByNames(dbc dbctx.Context, names []string) ([]*types.Vendor, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Vendor
	if len(names) == 0 {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).Where("name IN ?", names).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *vendorRepo) List(dbc dbctx.Context) ([]*types.Vendor, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Vendor
	if err := t.WithContext(dbc.Ctx).Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// CreateIfAbsent relies on the unique name index: a losing concurrent insert
// is downgraded to a no-op by ON CONFLICT DO NOTHING, and the surviving row
// is read back so callers always get the persisted vendor.
func (r *vendorRepo) CreateIfAbsent(dbc dbctx.Context, row *types.Vendor) (*types.Vendor, bool, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if row == nil || row.Name == "" {
		return nil, false, nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	res := t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(row)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected > 0 {
		return row, true, nil
	}
	existing, err := r.GetByName(dbc, row.Name)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}
