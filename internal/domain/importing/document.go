package importing

// AttributeInput is the canonical attribute shape every document format
// normalizes into. All strings are trimmed; Importance is lowercased and
// defaults to "medium".
type AttributeInput struct {
	AttributeName  string `json:"attribute_name"`
	Definition     string `json:"definition"`
	TMForumMapping string `json:"tm_forum_mapping"`
	Importance     string `json:"importance"`
}

// DomainInput is the canonical domain shape every document format normalizes
// into. A domain with no attributes is valid.
type DomainInput struct {
	DomainName  string           `json:"domain_name"`
	Description string           `json:"description"`
	Importance  string           `json:"importance"`
	Attributes  []AttributeInput `json:"attributes"`
}

// DocumentMeta carries auxiliary data extracted alongside the canonical
// domain list. None of it participates in dedup decisions.
type DocumentMeta struct {
	// CapabilityName/CapabilityStatus come from a research_file's capability
	// section when present.
	CapabilityName   string `json:"capability_name,omitempty"`
	CapabilityStatus string `json:"capability_status,omitempty"`

	// MarketVendors are the vendor names referenced by market_research, in
	// document order, before registrar dedup. VendorSources holds the raw
	// entry per name when the document supplied objects rather than bare
	// strings.
	MarketVendors []string                  `json:"market_vendors,omitempty"`
	VendorSources map[string]map[string]any `json:"-"`

	// PriorityDomains/PriorityAttributes are recommendation pass-throughs.
	PriorityDomains    []string `json:"priority_domains,omitempty"`
	PriorityAttributes []string `json:"priority_attributes,omitempty"`

	// Passthrough retains sections the import deliberately ignores, such as
	// the gap_analysis of a current_framework document.
	Passthrough map[string]any `json:"-"`
}

// CanonicalDocument is the single shape the merge engine consumes,
// independent of which format the source document matched.
type CanonicalDocument struct {
	Format  DocumentFormat `json:"format"`
	Domains []DomainInput  `json:"domains"`
	Meta    DocumentMeta   `json:"meta"`
}
