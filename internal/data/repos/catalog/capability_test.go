package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/capframe/capframe-backend/internal/data/repos/testutil"
	types "github.com/capframe/capframe-backend/internal/domain"
	"github.com/capframe/capframe-backend/internal/platform/dbctx"
)

func TestCapabilityRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewCapabilityRepo(db, testutil.Logger(t))

	// Scope List assertions to this test's rows with a throwaway status.
	status := "test-" + uuid.NewString()[:8]

	billing := &types.Capability{
		ID:           uuid.New(),
		Name:         "aaa-billing-" + uuid.NewString()[:8],
		Description:  "billing capability",
		Status:       status,
		VersionMajor: 1,
	}
	charging := &types.Capability{
		Name:         "bbb-charging-" + uuid.NewString()[:8],
		Description:  "charging capability",
		Status:       status,
		VersionMajor: 1,
	}

	created, err := repo.Create(dbc, []*types.Capability{billing, charging})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("Create: expected 2, got %d", len(created))
	}
	if charging.ID == uuid.Nil {
		t.Fatalf("Create: missing ID was not filled in")
	}

	if rows, err := repo.GetByIDs(dbc, []uuid.UUID{billing.ID, charging.ID}); err != nil || len(rows) != 2 {
		t.Fatalf("GetByIDs: err=%v len=%d", err, len(rows))
	}

	got, err := repo.GetByID(dbc, billing.ID)
	if err != nil || got == nil || got.Name != billing.Name {
		t.Fatalf("GetByID: err=%v row=%+v", err, got)
	}
	if got, err := repo.GetByID(dbc, uuid.Nil); err != nil || got != nil {
		t.Fatalf("GetByID(nil): err=%v row=%v", err, got)
	}
	if got, err := repo.GetByID(dbc, uuid.New()); err != nil || got != nil {
		t.Fatalf("GetByID(unknown): err=%v row=%v", err, got)
	}

	got, err = repo.GetByName(dbc, charging.Name)
	if err != nil || got == nil || got.ID != charging.ID {
		t.Fatalf("GetByName: err=%v row=%+v", err, got)
	}
	if got, err := repo.GetByName(dbc, ""); err != nil || got != nil {
		t.Fatalf("GetByName(empty): err=%v row=%v", err, got)
	}

	list, err := repo.List(dbc, []string{status})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].ID != billing.ID || list[1].ID != charging.ID {
		t.Fatalf("List: expected name order [%s %s], got %d rows", billing.Name, charging.Name, len(list))
	}

	locked, err := repo.LockByID(dbc, billing.ID)
	if err != nil || locked == nil || locked.ID != billing.ID {
		t.Fatalf("LockByID: err=%v row=%+v", err, locked)
	}
	if locked, err := repo.LockByID(dbc, uuid.New()); err != nil || locked != nil {
		t.Fatalf("LockByID(unknown): err=%v row=%v", err, locked)
	}

	if err := repo.UpdateFields(dbc, billing.ID, map[string]interface{}{"description": "updated"}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	if err := repo.UpdateVersion(dbc, billing.ID, 2, 1, 0, 0); err != nil {
		t.Fatalf("UpdateVersion: %v", err)
	}
	got, err = repo.GetByID(dbc, billing.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID after update: err=%v", err)
	}
	if got.Description != "updated" {
		t.Fatalf("UpdateFields not applied: %+v", got)
	}
	if got.VersionMajor != 2 || got.VersionMinor != 1 || got.VersionPatch != 0 || got.VersionBuild != 0 {
		t.Fatalf("UpdateVersion not applied: %+v", got)
	}

	// Soft delete hides the row from every read path but keeps it on disk.
	if err := repo.SoftDeleteByIDs(dbc, []uuid.UUID{billing.ID}); err != nil {
		t.Fatalf("SoftDeleteByIDs: %v", err)
	}
	if got, err := repo.GetByID(dbc, billing.ID); err != nil || got != nil {
		t.Fatalf("GetByID after delete: err=%v row=%v", err, got)
	}
	var n int64
	if err := tx.Unscoped().Model(&types.Capability{}).Where("id = ?", billing.ID).Count(&n).Error; err != nil || n != 1 {
		t.Fatalf("soft-deleted row physically removed: err=%v count=%d", err, n)
	}
}
