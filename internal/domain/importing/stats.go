package importing

import "time"

// MergeOutcome classifies what the merge engine did with one incoming
// domain or attribute.
type MergeOutcome string

const (
	OutcomeNew     MergeOutcome = "new"
	OutcomeUpdated MergeOutcome = "updated"
	OutcomeSkipped MergeOutcome = "skipped"
)

// Counts aggregates merge outcomes for one row kind.
type Counts struct {
	Total   int `json:"total"`
	New     int `json:"new"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// Record tallies one outcome.
func (c *Counts) Record(outcome MergeOutcome) {
	c.Total++
	switch outcome {
	case OutcomeNew:
		c.New++
	case OutcomeUpdated:
		c.Updated++
	case OutcomeSkipped:
		c.Skipped++
	}
}

// Changed reports whether anything was written for this kind.
func (c Counts) Changed() bool { return c.New > 0 || c.Updated > 0 }

// ImportStats is the aggregate result of one orchestrator invocation.
type ImportStats struct {
	ImportBatch string    `json:"import_batch"`
	ImportDate  time.Time `json:"import_date"`

	TotalDomains   int `json:"total_domains"`
	NewDomains     int `json:"new_domains"`
	UpdatedDomains int `json:"updated_domains"`
	SkippedDomains int `json:"skipped_domains"`

	TotalAttributes   int `json:"total_attributes"`
	NewAttributes     int `json:"new_attributes"`
	UpdatedAttributes int `json:"updated_attributes"`
	SkippedAttributes int `json:"skipped_attributes"`

	CapabilityVersion string `json:"capability_version"`

	ImportedVendors    []string `json:"imported_vendors,omitempty"`
	MarketVendors      []string `json:"market_vendors,omitempty"`
	PriorityDomains    []string `json:"priority_domains,omitempty"`
	PriorityAttributes []string `json:"priority_attributes,omitempty"`
}

// HistoryEntry summarizes the rows written by one import batch, rebuilt from
// the batch tag on domain/attribute rows; there is no separate ledger table.
type HistoryEntry struct {
	ImportBatch     string    `json:"import_batch"`
	ImportDate      time.Time `json:"import_date"`
	DomainsCount    int       `json:"domains_count"`
	AttributesCount int       `json:"attributes_count"`
}
