package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	repos "github.com/capframe/capframe-backend/internal/data/repos/catalog"
	"github.com/capframe/capframe-backend/internal/data/repos/testutil"
	"github.com/capframe/capframe-backend/internal/domain/importing"
)

func newCapabilityService(t *testing.T) CapabilityService {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	return NewCapabilityService(db, log,
		repos.NewCapabilityRepo(db, log),
		repos.NewCapabilityDomainRepo(db, log),
		repos.NewCapabilityAttributeRepo(db, log),
		repos.NewVendorRepo(db, log),
	)
}

func TestCapabilityService(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	svc := newCapabilityService(t)

	status := "test-" + uuid.NewString()[:8]
	name := "Roaming-" + uuid.NewString()[:8]

	if _, err := svc.Create(ctx, tx, CreateCapabilityInput{Name: "  "}); !importing.IsCode(err, importing.CodeValidation) {
		t.Fatalf("Create(blank): want code=%s got err=%v", importing.CodeValidation, err)
	}

	detail, err := svc.Create(ctx, tx, CreateCapabilityInput{Name: "  " + name + "  ", Description: " wholesale roaming ", Status: status})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if detail.Name != name || detail.Description != "wholesale roaming" {
		t.Fatalf("Create did not trim input: %+v", detail.Capability)
	}
	if detail.Version != "1.0.0.0" {
		t.Fatalf("Create version: want=1.0.0.0 got=%s", detail.Version)
	}

	if _, err := svc.Create(ctx, tx, CreateCapabilityInput{Name: name}); !importing.IsCode(err, importing.CodeConflict) {
		t.Fatalf("Create(duplicate): want code=%s got err=%v", importing.CodeConflict, err)
	}

	// Status defaults to active when omitted.
	other, err := svc.Create(ctx, tx, CreateCapabilityInput{Name: name + "-other"})
	if err != nil {
		t.Fatalf("Create(default status): %v", err)
	}
	if other.Status != "active" {
		t.Fatalf("default status: want=active got=%s", other.Status)
	}

	got, err := svc.Get(ctx, tx, detail.ID)
	if err != nil || got.ID != detail.ID {
		t.Fatalf("Get: err=%v", err)
	}
	if _, err := svc.Get(ctx, tx, uuid.Nil); !importing.IsCode(err, importing.CodeValidation) {
		t.Fatalf("Get(nil): want code=%s got err=%v", importing.CodeValidation, err)
	}
	if _, err := svc.Get(ctx, tx, uuid.New()); !importing.IsCode(err, importing.CodeNotFound) {
		t.Fatalf("Get(unknown): want code=%s got err=%v", importing.CodeNotFound, err)
	}

	list, err := svc.List(ctx, tx, []string{status})
	if err != nil || len(list) != 1 || list[0].ID != detail.ID {
		t.Fatalf("List: err=%v len=%d", err, len(list))
	}

	if err := svc.Delete(ctx, tx, detail.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(ctx, tx, detail.ID); !importing.IsCode(err, importing.CodeNotFound) {
		t.Fatalf("Get after delete: want code=%s got err=%v", importing.CodeNotFound, err)
	}
	if err := svc.Delete(ctx, tx, detail.ID); !importing.IsCode(err, importing.CodeNotFound) {
		t.Fatalf("Delete twice: want code=%s got err=%v", importing.CodeNotFound, err)
	}
}

func TestCapabilityServiceDomainTree(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	svc := newCapabilityService(t)

	capRow := testutil.SeedCapability(t, ctx, tx, "tree-"+uuid.NewString()[:8])
	charging := testutil.SeedDomainRow(t, ctx, tx, capRow.ID, "Charging", "h-dom-1", "b1", true)
	mediation := testutil.SeedDomainRow(t, ctx, tx, capRow.ID, "Mediation", "h-dom-2", "b1", true)
	testutil.SeedDomainRow(t, ctx, tx, capRow.ID, "Retired", "h-dom-3", "b1", false)

	testutil.SeedAttributeRow(t, ctx, tx, capRow.ID, charging.ID, "Charging", "Latency", "h-attr-1", "b1", true)
	testutil.SeedAttributeRow(t, ctx, tx, capRow.ID, charging.ID, "Charging", "Throughput", "h-attr-2", "b1", true)
	testutil.SeedAttributeRow(t, ctx, tx, capRow.ID, charging.ID, "Charging", "Old", "h-attr-3", "b1", false)

	tree, err := svc.DomainTree(ctx, tx, capRow.ID)
	if err != nil {
		t.Fatalf("DomainTree: %v", err)
	}
	if len(tree) != 2 {
		t.Fatalf("DomainTree: want=2 domains got=%d", len(tree))
	}
	if tree[0].Domain.ID != charging.ID || tree[1].Domain.ID != mediation.ID {
		t.Fatalf("DomainTree order: %s, %s", tree[0].Domain.DomainName, tree[1].Domain.DomainName)
	}
	if len(tree[0].Attributes) != 2 {
		t.Fatalf("Charging attributes: want=2 got=%d", len(tree[0].Attributes))
	}
	if tree[1].Attributes == nil || len(tree[1].Attributes) != 0 {
		t.Fatalf("Mediation attributes: want empty slice got %v", tree[1].Attributes)
	}

	if _, err := svc.DomainTree(ctx, tx, uuid.New()); !importing.IsCode(err, importing.CodeNotFound) {
		t.Fatalf("DomainTree(unknown): want code=%s got err=%v", importing.CodeNotFound, err)
	}
}

func TestCapabilityServiceListVendors(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	svc := newCapabilityService(t)

	seeded := testutil.SeedVendor(t, ctx, tx, "Juniper-"+uuid.NewString()[:8])
	rows, err := svc.ListVendors(ctx, tx)
	if err != nil {
		t.Fatalf("ListVendors: %v", err)
	}
	found := false
	for _, v := range rows {
		if v.ID == seeded.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("ListVendors missing seeded vendor")
	}
}
