package importing

// DocumentFormat identifies which of the supported research-document shapes
// a payload matched. Detection is priority-ordered: the first matching shape
// wins, so a document carrying both current_framework and gap_analysis is a
// FormatCurrentFramework document and its gap analysis is pass-through only.
type DocumentFormat string

const (
	// FormatCurrentFramework: current_framework.domains holds full domain objects.
	FormatCurrentFramework DocumentFormat = "current_framework"
	// FormatProposedFramework: proposed_framework.domains, same object shape.
	FormatProposedFramework DocumentFormat = "proposed_framework"
	// FormatResearchFile: top-level capability + gap_analysis + market_research
	// + recommendations; domains assembled from gap_analysis.missing_domains.
	FormatResearchFile DocumentFormat = "research_file"
	// FormatSimpleDomains: flat {"domains":[...]} with no research metadata.
	FormatSimpleDomains DocumentFormat = "simple_domains"
	// FormatUnknown: no shape matched; the import aborts with no side effects.
	FormatUnknown DocumentFormat = "unknown"
)
