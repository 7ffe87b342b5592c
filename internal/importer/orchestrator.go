package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	repos "github.com/capframe/capframe-backend/internal/data/repos/catalog"
	"github.com/capframe/capframe-backend/internal/domain/importing"
	"github.com/capframe/capframe-backend/internal/observability"
	"github.com/capframe/capframe-backend/internal/platform/dbctx"
	"github.com/capframe/capframe-backend/internal/platform/logger"
)

const (
	opImport = "importer.import"

	tracerName = "github.com/capframe/capframe-backend/internal/importer"

	batchPrefixResearch = "research_import"
	batchPrefixDomains  = "import"
	batchPrefixRename   = "rename"
)

// Orchestrator drives one import end to end: normalize, lock, merge,
// register vendors, bump the capability version. One call is one
// transaction; any failure rolls back every row the batch wrote.
type Orchestrator struct {
	tx           TxRunner
	capabilities repos.CapabilityRepo
	domains      repos.CapabilityDomainRepo
	attributes   repos.CapabilityAttributeRepo
	merger       *Merger
	registrar    *Registrar
	log          *logger.Logger

	now func() time.Time
}

func NewOrchestrator(
	tx TxRunner,
	capabilities repos.CapabilityRepo,
	domains repos.CapabilityDomainRepo,
	attributes repos.CapabilityAttributeRepo,
	vendors repos.VendorRepo,
	baseLog *logger.Logger,
) *Orchestrator {
	return &Orchestrator{
		tx:           tx,
		capabilities: capabilities,
		domains:      domains,
		attributes:   attributes,
		merger:       NewMerger(domains, attributes, baseLog),
		registrar:    NewRegistrar(vendors, baseLog),
		log:          baseLog.With("component", "Orchestrator"),
		now:          time.Now,
	}
}

// ProcessResearchImport ingests one raw research document against a
// capability. Normalization runs before the transaction opens, so malformed
// and unsupported documents are rejected with zero side effects.
func (o *Orchestrator) ProcessResearchImport(ctx context.Context, capabilityID uuid.UUID, raw []byte) (*importing.ImportStats, error) {
	doc, err := Normalize(raw)
	if err != nil {
		if m := observability.Current(); m != nil {
			m.ObserveImport(string(importing.FormatUnknown), "rejected", 0)
		}
		return nil, err
	}
	return o.runImport(ctx, capabilityID, doc, batchPrefixResearch)
}

// ProcessDomainImport ingests an already-shaped domain list, bypassing
// document parsing. Dedup, versioning and history behave exactly as for a
// research document.
func (o *Orchestrator) ProcessDomainImport(ctx context.Context, capabilityID uuid.UUID, domains []importing.DomainInput) (*importing.ImportStats, error) {
	normalized, err := NormalizeInputs(domains)
	if err != nil {
		if m := observability.Current(); m != nil {
			m.ObserveImport(string(importing.FormatSimpleDomains), "rejected", 0)
		}
		return nil, err
	}
	doc := &importing.CanonicalDocument{
		Format:  importing.FormatSimpleDomains,
		Domains: normalized,
	}
	return o.runImport(ctx, capabilityID, doc, batchPrefixDomains)
}

func (o *Orchestrator) runImport(ctx context.Context, capabilityID uuid.UUID, doc *importing.CanonicalDocument, batchPrefix string) (*importing.ImportStats, error) {
	start := o.now().UTC()
	batchID := newBatchID(batchPrefix, start)

	ctx, span := otel.Tracer(tracerName).Start(ctx, "importer.run",
		trace.WithAttributes(
			attribute.String("capability.id", capabilityID.String()),
			attribute.String("import.batch", batchID),
			attribute.String("import.format", string(doc.Format)),
		))
	defer span.End()

	stats := &importing.ImportStats{
		ImportBatch:        batchID,
		ImportDate:         start,
		MarketVendors:      doc.Meta.MarketVendors,
		PriorityDomains:    doc.Meta.PriorityDomains,
		PriorityAttributes: doc.Meta.PriorityAttributes,
	}

	var res MergeResult
	var vendorsCreated int
	err := o.tx.InTx(ctx, func(dbc dbctx.Context) error {
		capRow, err := o.capabilities.LockByID(dbc, capabilityID)
		if err != nil {
			return MapError(opImport, err)
		}
		if capRow == nil {
			return importing.NewError(importing.CodeNotFound, opImport,
				fmt.Sprintf("capability %s not found", capabilityID), nil)
		}

		// Rows snapshot the version the capability had when the batch ran;
		// the bump lands after they are written.
		pre := VersionOf(capRow)
		res, err = o.merger.Merge(dbc, capRow.ID, doc.Domains, pre.String(), batchID, start)
		if err != nil {
			return err
		}

		if len(doc.Meta.MarketVendors) > 0 {
			registered, created, rerr := o.registrar.RegisterVendors(dbc, doc.Meta.MarketVendors, doc.Meta.VendorSources)
			if rerr != nil {
				return rerr
			}
			stats.ImportedVendors = registered
			vendorsCreated = created
		}

		post := pre
		switch {
		case res.Domains.Changed():
			post = pre.Bump(BumpDomain)
		case res.Attributes.Changed():
			post = pre.Bump(BumpAttribute)
		}
		if post != pre {
			if uerr := o.capabilities.UpdateVersion(dbc, capRow.ID, post.Major, post.Minor, post.Patch, post.Build); uerr != nil {
				return MapError(opImport, uerr)
			}
		}
		stats.CapabilityVersion = post.String()
		return nil
	})

	status := "success"
	if err != nil {
		status = "error"
		span.RecordError(err)
	}
	if m := observability.Current(); m != nil {
		m.ObserveImport(string(doc.Format), status, time.Since(start))
		if err == nil {
			m.AddImportRows("domain", res.Domains.New, res.Domains.Updated, res.Domains.Skipped)
			m.AddImportRows("attribute", res.Attributes.New, res.Attributes.Updated, res.Attributes.Skipped)
			m.AddVendorsRegistered(vendorsCreated)
		}
	}
	if err != nil {
		o.log.Error("import failed",
			"capability_id", capabilityID, "batch", batchID,
			"format", string(doc.Format), "error", err)
		return nil, err
	}

	stats.TotalDomains = res.Domains.Total
	stats.NewDomains = res.Domains.New
	stats.UpdatedDomains = res.Domains.Updated
	stats.SkippedDomains = res.Domains.Skipped
	stats.TotalAttributes = res.Attributes.Total
	stats.NewAttributes = res.Attributes.New
	stats.UpdatedAttributes = res.Attributes.Updated
	stats.SkippedAttributes = res.Attributes.Skipped

	o.log.Info("import complete",
		"capability_id", capabilityID, "batch", batchID,
		"format", string(doc.Format), "version", stats.CapabilityVersion,
		"domains_new", res.Domains.New, "domains_updated", res.Domains.Updated, "domains_skipped", res.Domains.Skipped,
		"attributes_new", res.Attributes.New, "attributes_updated", res.Attributes.Updated, "attributes_skipped", res.Attributes.Skipped,
		"vendors_new", vendorsCreated)
	return stats, nil
}

// newBatchID allocates tags like research_import_20250114113000_1a2b3c4d.
// The random suffix keeps two imports inside the same second distinct.
func newBatchID(prefix string, at time.Time) string {
	return fmt.Sprintf("%s_%s_%s", prefix, at.UTC().Format("20060102150405"), uuid.NewString()[:8])
}
