package importer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	types "github.com/capframe/capframe-backend/internal/domain"
	"github.com/capframe/capframe-backend/internal/domain/importing"
	"github.com/capframe/capframe-backend/internal/observability"
	"github.com/capframe/capframe-backend/internal/platform/dbctx"
)

const opRename = "importer.rename"

// RenameDomain retires the active row of oldName and writes a successor
// carrying newName, then does the same for every active attribute of the
// domain so their hash identity follows the new name. The supersession runs
// as its own batch under the capability lock and bumps domain scope once.
func (o *Orchestrator) RenameDomain(ctx context.Context, capabilityID uuid.UUID, oldName, newName string) (*importing.ImportStats, error) {
	oldName = strings.TrimSpace(oldName)
	newName = strings.TrimSpace(newName)
	if oldName == "" || newName == "" {
		return nil, importing.NewError(importing.CodeMalformedInput, opRename,
			"old_name and new_name are required", nil)
	}

	start := o.now().UTC()
	batchID := newBatchID(batchPrefixRename, start)

	stats := &importing.ImportStats{ImportBatch: batchID, ImportDate: start}
	err := o.tx.InTx(ctx, func(dbc dbctx.Context) error {
		capRow, err := o.capabilities.LockByID(dbc, capabilityID)
		if err != nil {
			return MapError(opRename, err)
		}
		if capRow == nil {
			return importing.NewError(importing.CodeNotFound, opRename,
				fmt.Sprintf("capability %s not found", capabilityID), nil)
		}

		oldRow, err := o.domains.GetActiveByName(dbc, capabilityID, oldName)
		if err != nil {
			return MapError(opRename, err)
		}
		if oldRow == nil {
			return importing.NewError(importing.CodeNotFound, opRename,
				fmt.Sprintf("domain %q has no active row", oldName), nil)
		}
		taken, err := o.domains.GetActiveByName(dbc, capabilityID, newName)
		if err != nil {
			return MapError(opRename, err)
		}
		if taken != nil {
			return importing.NewError(importing.CodeConflict, opRename,
				fmt.Sprintf("domain %q is already active", newName), nil)
		}

		pre := VersionOf(capRow)
		successor, err := o.renameDomainRow(dbc, oldRow, newName, pre.String(), batchID, start)
		if err != nil {
			return err
		}
		renamedAttrs, err := o.renameAttributeRows(dbc, capabilityID, successor.ID, oldName, newName, pre.String(), batchID, start)
		if err != nil {
			return err
		}

		post := pre.Bump(BumpDomain)
		if err := o.capabilities.UpdateVersion(dbc, capabilityID, post.Major, post.Minor, post.Patch, post.Build); err != nil {
			return MapError(opRename, err)
		}

		stats.TotalDomains = 1
		stats.UpdatedDomains = 1
		stats.TotalAttributes = renamedAttrs
		stats.UpdatedAttributes = renamedAttrs
		stats.CapabilityVersion = post.String()
		return nil
	})

	status := "success"
	if err != nil {
		status = "error"
	}
	if m := observability.Current(); m != nil {
		m.IncRename(status)
	}
	if err != nil {
		o.log.Error("domain rename failed",
			"capability_id", capabilityID, "old_name", oldName, "new_name", newName, "error", err)
		return nil, err
	}

	o.log.Info("domain renamed",
		"capability_id", capabilityID, "old_name", oldName, "new_name", newName,
		"batch", batchID, "attributes", stats.UpdatedAttributes, "version", stats.CapabilityVersion)
	return stats, nil
}

func (o *Orchestrator) renameDomainRow(dbc dbctx.Context, oldRow *types.CapabilityDomain, newName, version, batchID string, at time.Time) (*types.CapabilityDomain, error) {
	if err := o.domains.Deactivate(dbc, []uuid.UUID{oldRow.ID}); err != nil {
		return nil, MapError(opRename, err)
	}
	successor := &types.CapabilityDomain{
		ID:           uuid.New(),
		CapabilityID: oldRow.CapabilityID,
		DomainName:   newName,
		Description:  oldRow.Description,
		Importance:   oldRow.Importance,
		ContentHash:  DomainHash(newName, oldRow.Description, oldRow.Importance),
		Version:      version,
		ImportBatch:  batchID,
		ImportDate:   at,
		IsActive:     true,
	}
	if _, err := o.domains.Create(dbc, []*types.CapabilityDomain{successor}); err != nil {
		return nil, MapError(opRename, err)
	}
	return successor, nil
}

// renameAttributeRows supersedes every active attribute of oldName with a
// copy keyed under newName. Copies, not updates: the old rows stay in
// history under their original name.
func (o *Orchestrator) renameAttributeRows(dbc dbctx.Context, capabilityID, domainID uuid.UUID, oldName, newName, version, batchID string, at time.Time) (int, error) {
	attrs, err := o.attributes.GetActiveByDomainName(dbc, capabilityID, oldName)
	if err != nil {
		return 0, MapError(opRename, err)
	}
	if len(attrs) == 0 {
		return 0, nil
	}

	ids := make([]uuid.UUID, 0, len(attrs))
	successors := make([]*types.CapabilityAttribute, 0, len(attrs))
	for _, a := range attrs {
		ids = append(ids, a.ID)
		successors = append(successors, &types.CapabilityAttribute{
			ID:             uuid.New(),
			CapabilityID:   capabilityID,
			DomainID:       domainID,
			DomainName:     newName,
			AttributeName:  a.AttributeName,
			Definition:     a.Definition,
			TMForumMapping: a.TMForumMapping,
			Importance:     a.Importance,
			ContentHash:    AttributeHash(newName, a.AttributeName, a.Definition, a.TMForumMapping, a.Importance),
			Version:        version,
			ImportBatch:    batchID,
			ImportDate:     at,
			IsActive:       true,
		})
	}
	if err := o.attributes.Deactivate(dbc, ids); err != nil {
		return 0, MapError(opRename, err)
	}
	if _, err := o.attributes.Create(dbc, successors); err != nil {
		return 0, MapError(opRename, err)
	}
	return len(successors), nil
}
