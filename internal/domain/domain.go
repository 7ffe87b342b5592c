// Package domain re-exports the persisted catalog models and the import
// value types under one import path, conventionally aliased as types.
package domain

import (
	"github.com/capframe/capframe-backend/internal/domain/catalog"
	"github.com/capframe/capframe-backend/internal/domain/importing"
)

type (
	Capability          = catalog.Capability
	CapabilityDomain    = catalog.CapabilityDomain
	CapabilityAttribute = catalog.CapabilityAttribute
	Vendor              = catalog.Vendor
)

type (
	DocumentFormat    = importing.DocumentFormat
	AttributeInput    = importing.AttributeInput
	DomainInput       = importing.DomainInput
	DocumentMeta      = importing.DocumentMeta
	CanonicalDocument = importing.CanonicalDocument
	MergeOutcome      = importing.MergeOutcome
	Counts            = importing.Counts
	ImportStats       = importing.ImportStats
	HistoryEntry      = importing.HistoryEntry
)

const (
	FormatCurrentFramework  = importing.FormatCurrentFramework
	FormatProposedFramework = importing.FormatProposedFramework
	FormatResearchFile      = importing.FormatResearchFile
	FormatSimpleDomains     = importing.FormatSimpleDomains
	FormatUnknown           = importing.FormatUnknown

	OutcomeNew     = importing.OutcomeNew
	OutcomeUpdated = importing.OutcomeUpdated
	OutcomeSkipped = importing.OutcomeSkipped
)
