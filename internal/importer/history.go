package importer

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/capframe/capframe-backend/internal/domain/importing"
	"github.com/capframe/capframe-backend/internal/platform/dbctx"
)

const opHistory = "importer.history"

// History rebuilds the capability's import timeline from the batch tags on
// its domain and attribute rows, superseded rows included. Entries are
// newest first.
func (o *Orchestrator) History(ctx context.Context, capabilityID uuid.UUID) ([]importing.HistoryEntry, error) {
	dbc := dbctx.Context{Ctx: ctx}

	capRow, err := o.capabilities.GetByID(dbc, capabilityID)
	if err != nil {
		return nil, MapError(opHistory, err)
	}
	if capRow == nil {
		return nil, importing.NewError(importing.CodeNotFound, opHistory,
			fmt.Sprintf("capability %s not found", capabilityID), nil)
	}

	domainCounts, err := o.domains.CountByBatch(dbc, capabilityID)
	if err != nil {
		return nil, MapError(opHistory, err)
	}
	attrCounts, err := o.attributes.CountByBatch(dbc, capabilityID)
	if err != nil {
		return nil, MapError(opHistory, err)
	}

	byBatch := make(map[string]*importing.HistoryEntry, len(domainCounts)+len(attrCounts))
	for _, c := range domainCounts {
		byBatch[c.ImportBatch] = &importing.HistoryEntry{
			ImportBatch:  c.ImportBatch,
			ImportDate:   c.ImportDate,
			DomainsCount: int(c.RowCount),
		}
	}
	for _, c := range attrCounts {
		entry, ok := byBatch[c.ImportBatch]
		if !ok {
			entry = &importing.HistoryEntry{ImportBatch: c.ImportBatch, ImportDate: c.ImportDate}
			byBatch[c.ImportBatch] = entry
		}
		entry.AttributesCount = int(c.RowCount)
		// An attribute-only batch can carry the earlier timestamp.
		if entry.ImportDate.IsZero() || c.ImportDate.Before(entry.ImportDate) {
			entry.ImportDate = c.ImportDate
		}
	}

	out := make([]importing.HistoryEntry, 0, len(byBatch))
	for _, entry := range byBatch {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ImportDate.Equal(out[j].ImportDate) {
			return out[i].ImportDate.After(out[j].ImportDate)
		}
		return out[i].ImportBatch > out[j].ImportBatch
	})
	return out, nil
}
