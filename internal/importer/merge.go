package importer

import (
	"time"

	"github.com/google/uuid"

	repos "github.com/capframe/capframe-backend/internal/data/repos/catalog"
	types "github.com/capframe/capframe-backend/internal/domain"
	"github.com/capframe/capframe-backend/internal/domain/importing"
	"github.com/capframe/capframe-backend/internal/platform/dbctx"
	"github.com/capframe/capframe-backend/internal/platform/logger"
)

const (
	opMergeDomains    = "importer.merge.domains"
	opMergeAttributes = "importer.merge.attributes"

	uqDomainActive    = "uq_capability_domain_active"
	uqAttributeActive = "uq_capability_attribute_active"
)

// Merger classifies each incoming domain and attribute as new, updated or
// skipped, writing successor rows and deactivating superseded ones. Rows are
// never mutated in place and never physically deleted.
type Merger struct {
	domains    repos.CapabilityDomainRepo
	attributes repos.CapabilityAttributeRepo
	log        *logger.Logger
}

func NewMerger(domains repos.CapabilityDomainRepo, attributes repos.CapabilityAttributeRepo, baseLog *logger.Logger) *Merger {
	return &Merger{
		domains:    domains,
		attributes: attributes,
		log:        baseLog.With("component", "Merger"),
	}
}

// MergeResult aggregates outcomes per row kind for one batch.
type MergeResult struct {
	Domains    importing.Counts
	Attributes importing.Counts
}

// Merge runs the dedup pass over the canonical domain list in document
// order, inside the caller's transaction. version is the capability's
// pre-bump version string snapshotted onto every row this batch writes.
func (m *Merger) Merge(dbc dbctx.Context, capabilityID uuid.UUID, domains []importing.DomainInput, version, batchID string, importDate time.Time) (MergeResult, error) {
	var res MergeResult
	for _, d := range domains {
		activeRow, outcome, err := m.mergeDomain(dbc, capabilityID, d, version, batchID, importDate)
		if err != nil {
			return res, err
		}
		res.Domains.Record(outcome)

		for _, a := range d.Attributes {
			attrOutcome, err := m.mergeAttribute(dbc, capabilityID, activeRow.ID, d.DomainName, a, version, batchID, importDate)
			if err != nil {
				return res, err
			}
			res.Attributes.Record(attrOutcome)
		}
	}
	return res, nil
}

// mergeDomain resolves one incoming domain against the active rows:
// hash match → skipped, name match → supersede + insert (updated),
// otherwise insert (new). Returns the row that is active afterwards.
func (m *Merger) mergeDomain(dbc dbctx.Context, capabilityID uuid.UUID, d importing.DomainInput, version, batchID string, importDate time.Time) (*types.CapabilityDomain, importing.MergeOutcome, error) {
	hash := DomainHash(d.DomainName, d.Description, d.Importance)

	byHash, err := m.domains.GetActiveByHash(dbc, capabilityID, hash)
	if err != nil {
		return nil, "", MapError(opMergeDomains, err)
	}
	if byHash != nil {
		return byHash, importing.OutcomeSkipped, nil
	}

	outcome := importing.OutcomeNew
	byName, err := m.domains.GetActiveByName(dbc, capabilityID, d.DomainName)
	if err != nil {
		return nil, "", MapError(opMergeDomains, err)
	}
	if byName != nil {
		if err := m.domains.Deactivate(dbc, []uuid.UUID{byName.ID}); err != nil {
			return nil, "", MapError(opMergeDomains, err)
		}
		outcome = importing.OutcomeUpdated
	}

	row := &types.CapabilityDomain{
		ID:           uuid.New(),
		CapabilityID: capabilityID,
		DomainName:   d.DomainName,
		Description:  d.Description,
		Importance:   d.Importance,
		ContentHash:  hash,
		Version:      version,
		ImportBatch:  batchID,
		ImportDate:   importDate,
		IsActive:     true,
	}
	retried, err := m.insertDomainRow(dbc, row)
	if err != nil {
		return nil, "", err
	}
	if retried {
		outcome = importing.OutcomeUpdated
	}

	// Attributes of a superseded domain follow the successor row; their
	// name snapshot is untouched.
	if outcome == importing.OutcomeUpdated {
		if err := m.attributes.ReassignDomain(dbc, capabilityID, d.DomainName, row.ID); err != nil {
			return nil, "", MapError(opMergeDomains, err)
		}
	}
	return row, outcome, nil
}

func (m *Merger) mergeAttribute(dbc dbctx.Context, capabilityID, domainID uuid.UUID, domainName string, a importing.AttributeInput, version, batchID string, importDate time.Time) (importing.MergeOutcome, error) {
	hash := AttributeHash(domainName, a.AttributeName, a.Definition, a.TMForumMapping, a.Importance)

	byHash, err := m.attributes.GetActiveByHash(dbc, capabilityID, hash)
	if err != nil {
		return "", MapError(opMergeAttributes, err)
	}
	if byHash != nil {
		return importing.OutcomeSkipped, nil
	}

	outcome := importing.OutcomeNew
	byName, err := m.attributes.GetActiveByName(dbc, capabilityID, domainName, a.AttributeName)
	if err != nil {
		return "", MapError(opMergeAttributes, err)
	}
	if byName != nil {
		if err := m.attributes.Deactivate(dbc, []uuid.UUID{byName.ID}); err != nil {
			return "", MapError(opMergeAttributes, err)
		}
		outcome = importing.OutcomeUpdated
	}

	row := &types.CapabilityAttribute{
		ID:             uuid.New(),
		CapabilityID:   capabilityID,
		DomainID:       domainID,
		DomainName:     domainName,
		AttributeName:  a.AttributeName,
		Definition:     a.Definition,
		TMForumMapping: a.TMForumMapping,
		Importance:     a.Importance,
		ContentHash:    hash,
		Version:        version,
		ImportBatch:    batchID,
		ImportDate:     importDate,
		IsActive:       true,
	}
	retried, err := m.insertAttributeRow(dbc, row)
	if err != nil {
		return "", err
	}
	if retried {
		outcome = importing.OutcomeUpdated
	}
	return outcome, nil
}

// insertDomainRow writes the row inside a savepoint. Losing an insert race
// to a concurrent import surfaces as a unique violation on the active-row
// index; the winner's row is superseded and the insert retried once, so the
// race resolves as updated instead of failing the batch.
func (m *Merger) insertDomainRow(dbc dbctx.Context, row *types.CapabilityDomain) (bool, error) {
	err := inSavepoint(dbc, func(spc dbctx.Context) error {
		_, cerr := m.domains.Create(spc, []*types.CapabilityDomain{row})
		return cerr
	})
	if err == nil {
		return false, nil
	}
	if !isUniqueViolation(err, uqDomainActive) {
		return false, MapError(opMergeDomains, err)
	}

	m.log.Warn("domain insert lost active-row race, superseding",
		"capability_id", row.CapabilityID, "domain_name", row.DomainName)
	winner, lerr := m.domains.GetActiveByName(dbc, row.CapabilityID, row.DomainName)
	if lerr != nil {
		return false, MapError(opMergeDomains, lerr)
	}
	if winner != nil {
		if derr := m.domains.Deactivate(dbc, []uuid.UUID{winner.ID}); derr != nil {
			return false, MapError(opMergeDomains, derr)
		}
	}
	if _, cerr := m.domains.Create(dbc, []*types.CapabilityDomain{row}); cerr != nil {
		return false, MapError(opMergeDomains, cerr)
	}
	return true, nil
}

func (m *Merger) insertAttributeRow(dbc dbctx.Context, row *types.CapabilityAttribute) (bool, error) {
	err := inSavepoint(dbc, func(spc dbctx.Context) error {
		_, cerr := m.attributes.Create(spc, []*types.CapabilityAttribute{row})
		return cerr
	})
	if err == nil {
		return false, nil
	}
	if !isUniqueViolation(err, uqAttributeActive) {
		return false, MapError(opMergeAttributes, err)
	}

	m.log.Warn("attribute insert lost active-row race, superseding",
		"capability_id", row.CapabilityID, "domain_name", row.DomainName, "attribute_name", row.AttributeName)
	winner, lerr := m.attributes.GetActiveByName(dbc, row.CapabilityID, row.DomainName, row.AttributeName)
	if lerr != nil {
		return false, MapError(opMergeAttributes, lerr)
	}
	if winner != nil {
		if derr := m.attributes.Deactivate(dbc, []uuid.UUID{winner.ID}); derr != nil {
			return false, MapError(opMergeAttributes, derr)
		}
	}
	if _, cerr := m.attributes.Create(dbc, []*types.CapabilityAttribute{row}); cerr != nil {
		return false, MapError(opMergeAttributes, cerr)
	}
	return true, nil
}
