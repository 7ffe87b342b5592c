package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/capframe/capframe-backend/internal/domain"
)

func SeedCapability(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Capability {
	tb.Helper()
	c := &types.Capability{
		ID:           uuid.New(),
		Name:         name,
		Description:  "seeded capability",
		Status:       "active",
		VersionMajor: 1,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed capability: %v", err)
	}
	return c
}

func SeedDomainRow(tb testing.TB, ctx context.Context, tx *gorm.DB, capabilityID uuid.UUID, domainName, contentHash, batch string, active bool) *types.CapabilityDomain {
	tb.Helper()
	d := &types.CapabilityDomain{
		ID:           uuid.New(),
		CapabilityID: capabilityID,
		DomainName:   domainName,
		Description:  "seeded domain",
		Importance:   "medium",
		ContentHash:  contentHash,
		Version:      "1.0.0.0",
		ImportBatch:  batch,
		ImportDate:   time.Now().UTC(),
		IsActive:     active,
	}
	if err := tx.WithContext(ctx).Create(d).Error; err != nil {
		tb.Fatalf("seed domain row: %v", err)
	}
	return d
}

func SeedAttributeRow(tb testing.TB, ctx context.Context, tx *gorm.DB, capabilityID, domainID uuid.UUID, domainName, attributeName, contentHash, batch string, active bool) *types.CapabilityAttribute {
	tb.Helper()
	a := &types.CapabilityAttribute{
		ID:            uuid.New(),
		CapabilityID:  capabilityID,
		DomainID:      domainID,
		DomainName:    domainName,
		AttributeName: attributeName,
		Definition:    "seeded attribute",
		Importance:    "medium",
		ContentHash:   contentHash,
		Version:       "1.0.0.0",
		ImportBatch:   batch,
		ImportDate:    time.Now().UTC(),
		IsActive:      active,
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed attribute row: %v", err)
	}
	return a
}

func SeedVendor(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Vendor {
	tb.Helper()
	v := &types.Vendor{
		ID:          uuid.New(),
		Name:        name,
		DisplayName: name,
		Description: "seeded vendor",
		IsActive:    true,
	}
	if err := tx.WithContext(ctx).Create(v).Error; err != nil {
		tb.Fatalf("seed vendor: %v", err)
	}
	return v
}
