package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/capframe/capframe-backend/internal/data/repos/testutil"
	types "github.com/capframe/capframe-backend/internal/domain"
	"github.com/capframe/capframe-backend/internal/platform/dbctx"
)

func TestCapabilityDomainRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewCapabilityDomainRepo(db, testutil.Logger(t))

	capRow := testutil.SeedCapability(t, ctx, tx, "domains-"+uuid.NewString()[:8])
	now := time.Now().UTC()

	charging := &types.CapabilityDomain{
		CapabilityID: capRow.ID,
		DomainName:   "Charging",
		Description:  "realtime charging",
		Importance:   "high",
		ContentHash:  "hash-charging-v1",
		Version:      "1.0.0.0",
		ImportBatch:  "import_20250101000000_aaaaaaaa",
		ImportDate:   now.Add(-2 * time.Hour),
		IsActive:     true,
	}
	mediation := &types.CapabilityDomain{
		CapabilityID: capRow.ID,
		DomainName:   "Mediation",
		Description:  "event mediation",
		Importance:   "medium",
		ContentHash:  "hash-mediation-v1",
		Version:      "1.0.0.0",
		ImportBatch:  "import_20250101000000_aaaaaaaa",
		ImportDate:   now.Add(-2 * time.Hour),
		IsActive:     true,
	}
	created, err := repo.Create(dbc, []*types.CapabilityDomain{charging, mediation})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 2 || charging.ID == uuid.Nil {
		t.Fatalf("Create: len=%d id=%v", len(created), charging.ID)
	}

	got, err := repo.GetActiveByHash(dbc, capRow.ID, "hash-charging-v1")
	if err != nil || got == nil || got.ID != charging.ID {
		t.Fatalf("GetActiveByHash: err=%v row=%+v", err, got)
	}
	if got, err := repo.GetActiveByHash(dbc, capRow.ID, "no-such-hash"); err != nil || got != nil {
		t.Fatalf("GetActiveByHash(miss): err=%v row=%v", err, got)
	}
	if got, err := repo.GetActiveByHash(dbc, uuid.New(), "hash-charging-v1"); err != nil || got != nil {
		t.Fatalf("GetActiveByHash(wrong capability): err=%v row=%v", err, got)
	}

	got, err = repo.GetActiveByName(dbc, capRow.ID, "Mediation")
	if err != nil || got == nil || got.ID != mediation.ID {
		t.Fatalf("GetActiveByName: err=%v row=%+v", err, got)
	}
	if got, err := repo.GetActiveByName(dbc, capRow.ID, "mediation"); err != nil || got != nil {
		t.Fatalf("GetActiveByName should be case-sensitive: row=%v", got)
	}

	active, err := repo.GetActiveByCapability(dbc, capRow.ID)
	if err != nil || len(active) != 2 {
		t.Fatalf("GetActiveByCapability: err=%v len=%d", err, len(active))
	}
	if active[0].DomainName != "Charging" || active[1].DomainName != "Mediation" {
		t.Fatalf("GetActiveByCapability order: %s, %s", active[0].DomainName, active[1].DomainName)
	}

	// Supersede Charging: deactivate, then insert the successor. The partial
	// unique index only watches active rows, so the lineage coexists.
	if err := repo.Deactivate(dbc, []uuid.UUID{charging.ID}); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	successor := &types.CapabilityDomain{
		CapabilityID: capRow.ID,
		DomainName:   "Charging",
		Description:  "realtime and offline charging",
		Importance:   "high",
		ContentHash:  "hash-charging-v2",
		Version:      "1.1.0.0",
		ImportBatch:  "import_20250102000000_bbbbbbbb",
		ImportDate:   now.Add(-1 * time.Hour),
		IsActive:     true,
	}
	if _, err := repo.Create(dbc, []*types.CapabilityDomain{successor}); err != nil {
		t.Fatalf("Create successor: %v", err)
	}

	got, err = repo.GetActiveByName(dbc, capRow.ID, "Charging")
	if err != nil || got == nil || got.ID != successor.ID {
		t.Fatalf("GetActiveByName after supersede: err=%v row=%+v", err, got)
	}
	if got, err := repo.GetActiveByHash(dbc, capRow.ID, "hash-charging-v1"); err != nil || got != nil {
		t.Fatalf("superseded hash still active: row=%v", got)
	}

	counts, err := repo.CountByBatch(dbc, capRow.ID)
	if err != nil {
		t.Fatalf("CountByBatch: %v", err)
	}
	byBatch := map[string]int64{}
	for _, c := range counts {
		byBatch[c.ImportBatch] = c.RowCount
	}
	// Superseded rows keep contributing to their original batch.
	if byBatch["import_20250101000000_aaaaaaaa"] != 2 || byBatch["import_20250102000000_bbbbbbbb"] != 1 {
		t.Fatalf("CountByBatch: %v", byBatch)
	}

	if err := repo.Deactivate(dbc, nil); err != nil {
		t.Fatalf("Deactivate(nil): %v", err)
	}

	// A second active row for the same name must trip the partial index.
	// Last check in the walkthrough: the failed insert aborts the
	// transaction on Postgres.
	dup := &types.CapabilityDomain{
		CapabilityID: capRow.ID,
		DomainName:   "Charging",
		ContentHash:  "hash-charging-v3",
		Version:      "1.1.0.0",
		ImportBatch:  "import_20250103000000_cccccccc",
		ImportDate:   now,
		IsActive:     true,
	}
	if _, err := repo.Create(dbc, []*types.CapabilityDomain{dup}); err == nil {
		t.Fatalf("Create duplicate active row: expected unique violation")
	}
}
