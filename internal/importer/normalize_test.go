package importer

import (
	"testing"

	"github.com/capframe/capframe-backend/internal/domain/importing"
)

func TestDetectFormatPriority(t *testing.T) {
	cases := []struct {
		name string
		doc  map[string]any
		want importing.DocumentFormat
	}{
		{
			name: "current framework wins over gap analysis",
			doc: map[string]any{
				"current_framework": map[string]any{"domains": []any{}},
				"capability":        map[string]any{"name": "X"},
				"gap_analysis":      map[string]any{},
				"market_research":   map[string]any{},
				"recommendations":   map[string]any{},
			},
			want: importing.FormatCurrentFramework,
		},
		{
			name: "current framework wins over proposed",
			doc: map[string]any{
				"current_framework":  map[string]any{"domains": []any{}},
				"proposed_framework": map[string]any{"domains": []any{}},
			},
			want: importing.FormatCurrentFramework,
		},
		{
			name: "proposed framework",
			doc:  map[string]any{"proposed_framework": map[string]any{"domains": []any{}}},
			want: importing.FormatProposedFramework,
		},
		{
			name: "research file needs all four sections",
			doc: map[string]any{
				"capability":      map[string]any{"name": "X"},
				"gap_analysis":    map[string]any{},
				"market_research": map[string]any{},
				"recommendations": map[string]any{},
			},
			want: importing.FormatResearchFile,
		},
		{
			name: "simple domains",
			doc:  map[string]any{"domains": []any{}},
			want: importing.FormatSimpleDomains,
		},
		{
			name: "framework without domains falls through to simple",
			doc: map[string]any{
				"current_framework": map[string]any{"summary": "no domains key"},
				"domains":           []any{},
			},
			want: importing.FormatSimpleDomains,
		},
		{
			name: "partial research sections are unknown",
			doc: map[string]any{
				"capability":   map[string]any{"name": "X"},
				"gap_analysis": map[string]any{},
			},
			want: importing.FormatUnknown,
		},
		{
			name: "empty document is unknown",
			doc:  map[string]any{},
			want: importing.FormatUnknown,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := DetectFormat(c.doc)
			if err != nil {
				t.Fatalf("DetectFormat: err=%v", err)
			}
			if got != c.want {
				t.Fatalf("DetectFormat: want=%s got=%s", c.want, got)
			}
		})
	}
}

func TestDetectFormatRejectsNonObjectFramework(t *testing.T) {
	_, err := DetectFormat(map[string]any{"current_framework": "not an object"})
	if !importing.IsCode(err, importing.CodeMalformedInput) {
		t.Fatalf("DetectFormat: want code=%s got err=%v", importing.CodeMalformedInput, err)
	}
}

func TestNormalizeCurrentFramework(t *testing.T) {
	raw := []byte(`{
		"current_framework": {
			"domains": [
				{
					"domain_name": " Charging ",
					"description": "realtime charging",
					"importance": "HIGH",
					"attributes": [
						{"attribute_name": "Latency", "definition": "p99", "tm_forum_mapping": "TMF637", "importance": "Critical"},
						{"attribute_name": "Throughput"}
					]
				},
				{"domain_name": "Mediation"}
			]
		},
		"gap_analysis": {"missing_domains": [{"domain_name": "ShouldBeIgnored"}]}
	}`)

	doc, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize: err=%v", err)
	}
	if doc.Format != importing.FormatCurrentFramework {
		t.Fatalf("format: want=%s got=%s", importing.FormatCurrentFramework, doc.Format)
	}
	if len(doc.Domains) != 2 {
		t.Fatalf("domains: want=2 got=%d", len(doc.Domains))
	}

	d := doc.Domains[0]
	if d.DomainName != "Charging" || d.Description != "realtime charging" || d.Importance != "high" {
		t.Fatalf("domain normalized wrong: %+v", d)
	}
	if len(d.Attributes) != 2 {
		t.Fatalf("attributes: want=2 got=%d", len(d.Attributes))
	}
	if a := d.Attributes[0]; a.AttributeName != "Latency" || a.TMForumMapping != "TMF637" || a.Importance != "critical" {
		t.Fatalf("attribute normalized wrong: %+v", a)
	}
	if a := d.Attributes[1]; a.Importance != "medium" {
		t.Fatalf("missing importance should default to medium, got %q", a.Importance)
	}
	if doc.Domains[1].Importance != "medium" {
		t.Fatalf("domain importance default: want=medium got=%q", doc.Domains[1].Importance)
	}

	// The framework's own gap_analysis is pass-through, never merged.
	for _, d := range doc.Domains {
		if d.DomainName == "ShouldBeIgnored" {
			t.Fatalf("gap_analysis leaked into a current_framework import")
		}
	}
	if doc.Meta.Passthrough["gap_analysis"] == nil {
		t.Fatalf("gap_analysis not retained as pass-through")
	}
}

func TestNormalizeResearchFile(t *testing.T) {
	raw := []byte(`{
		"capability": {"name": "5G Core", "status": "active"},
		"gap_analysis": {
			"missing_domains": [
				{"domain_name": "Slicing", "description": "network slicing", "importance": "high"},
				{"domain_name": "Exposure"}
			],
			"missing_attributes": [
				{"domain": "Slicing", "attribute_name": "SLA", "definition": "slice SLA"},
				{"domain": "Exposure", "attribute_name": "NEF", "tm_forum_mapping": "TMF931"},
				{"domain": "Slicing", "attribute_name": "Isolation"},
				{"domain": "Nonexistent", "attribute_name": "Orphan"}
			]
		},
		"market_research": {
			"vendors": ["Ericsson", {"name": "Nokia", "region": "EU"}, {"vendor_name": "Huawei"}, "", {"region": "nameless"}]
		},
		"recommendations": {
			"priority_domains": ["Slicing", " ", "Exposure"],
			"priority_attributes": ["SLA"]
		}
	}`)

	doc, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize: err=%v", err)
	}
	if doc.Format != importing.FormatResearchFile {
		t.Fatalf("format: want=%s got=%s", importing.FormatResearchFile, doc.Format)
	}
	if doc.Meta.CapabilityName != "5G Core" || doc.Meta.CapabilityStatus != "active" {
		t.Fatalf("capability meta: %+v", doc.Meta)
	}

	if len(doc.Domains) != 2 {
		t.Fatalf("domains: want=2 got=%d", len(doc.Domains))
	}
	slicing := doc.Domains[0]
	if slicing.DomainName != "Slicing" || len(slicing.Attributes) != 2 {
		t.Fatalf("Slicing join: name=%s attrs=%d", slicing.DomainName, len(slicing.Attributes))
	}
	if slicing.Attributes[0].AttributeName != "SLA" || slicing.Attributes[1].AttributeName != "Isolation" {
		t.Fatalf("Slicing attributes out of order: %+v", slicing.Attributes)
	}
	exposure := doc.Domains[1]
	if len(exposure.Attributes) != 1 || exposure.Attributes[0].TMForumMapping != "TMF931" {
		t.Fatalf("Exposure join: %+v", exposure.Attributes)
	}

	wantVendors := []string{"Ericsson", "Nokia", "Huawei"}
	if len(doc.Meta.MarketVendors) != len(wantVendors) {
		t.Fatalf("vendors: want=%v got=%v", wantVendors, doc.Meta.MarketVendors)
	}
	for i, name := range wantVendors {
		if doc.Meta.MarketVendors[i] != name {
			t.Fatalf("vendors: want=%v got=%v", wantVendors, doc.Meta.MarketVendors)
		}
	}
	if doc.Meta.VendorSources["Nokia"] == nil || doc.Meta.VendorSources["Nokia"]["region"] != "EU" {
		t.Fatalf("vendor source missing: %+v", doc.Meta.VendorSources)
	}
	if len(doc.Meta.PriorityDomains) != 2 || len(doc.Meta.PriorityAttributes) != 1 {
		t.Fatalf("priorities: domains=%v attributes=%v", doc.Meta.PriorityDomains, doc.Meta.PriorityAttributes)
	}
}

func TestNormalizeSimpleDomains(t *testing.T) {
	raw := []byte(`{"domains": [{"domain_name": "Billing", "attributes": [{"attribute_name": "Rating"}]}]}`)
	doc, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize: err=%v", err)
	}
	if doc.Format != importing.FormatSimpleDomains {
		t.Fatalf("format: want=%s got=%s", importing.FormatSimpleDomains, doc.Format)
	}
	if len(doc.Domains) != 1 || len(doc.Domains[0].Attributes) != 1 {
		t.Fatalf("domains=%d attrs=%d", len(doc.Domains), len(doc.Domains[0].Attributes))
	}
}

func TestNormalizeUnknownFormat(t *testing.T) {
	_, err := Normalize([]byte(`{"something_else": true}`))
	if !importing.IsCode(err, importing.CodeUnsupportedFormat) {
		t.Fatalf("want code=%s got err=%v", importing.CodeUnsupportedFormat, err)
	}
}

func TestNormalizeMalformed(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", `{"domains": `},
		{"top level not object", `[1, 2, 3]`},
		{"domains not a list", `{"domains": {"domain_name": "X"}}`},
		{"domain entry not object", `{"domains": ["X"]}`},
		{"blank domain name", `{"domains": [{"domain_name": "  "}]}`},
		{"attributes not a list", `{"domains": [{"domain_name": "X", "attributes": {}}]}`},
		{"attribute entry not object", `{"domains": [{"domain_name": "X", "attributes": ["Y"]}]}`},
		{"blank attribute name", `{"domains": [{"domain_name": "X", "attributes": [{"definition": "d"}]}]}`},
		{"missing_attributes not a list", `{"capability": {"name": "X"}, "gap_analysis": {"missing_attributes": {}}, "market_research": {}, "recommendations": {}}`},
		{"vendors not a list", `{"capability": {"name": "X"}, "gap_analysis": {}, "market_research": {"vendors": {}}, "recommendations": {}}`},
		{"priority_domains not a list", `{"capability": {"name": "X"}, "gap_analysis": {}, "market_research": {}, "recommendations": {"priority_domains": "X"}}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Normalize([]byte(c.raw))
			if !importing.IsCode(err, importing.CodeMalformedInput) {
				t.Fatalf("want code=%s got err=%v", importing.CodeMalformedInput, err)
			}
		})
	}
}

func TestNormalizeInputs(t *testing.T) {
	in := []importing.DomainInput{
		{
			DomainName:  "  Charging ",
			Description: " realtime ",
			Importance:  "HIGH",
			Attributes: []importing.AttributeInput{
				{AttributeName: " Latency ", Definition: " p99 ", TMForumMapping: " TMF637 "},
			},
		},
	}
	out, err := NormalizeInputs(in)
	if err != nil {
		t.Fatalf("NormalizeInputs: err=%v", err)
	}
	d := out[0]
	if d.DomainName != "Charging" || d.Description != "realtime" || d.Importance != "high" {
		t.Fatalf("domain not canonicalized: %+v", d)
	}
	if a := d.Attributes[0]; a.AttributeName != "Latency" || a.Definition != "p99" || a.TMForumMapping != "TMF637" || a.Importance != "medium" {
		t.Fatalf("attribute not canonicalized: %+v", a)
	}
}

func TestNormalizeInputsRejectsBlankNames(t *testing.T) {
	_, err := NormalizeInputs([]importing.DomainInput{{DomainName: " "}})
	if !importing.IsCode(err, importing.CodeMalformedInput) {
		t.Fatalf("blank domain name: want code=%s got err=%v", importing.CodeMalformedInput, err)
	}

	_, err = NormalizeInputs([]importing.DomainInput{{
		DomainName: "X",
		Attributes: []importing.AttributeInput{{AttributeName: ""}},
	}})
	if !importing.IsCode(err, importing.CodeMalformedInput) {
		t.Fatalf("blank attribute name: want code=%s got err=%v", importing.CodeMalformedInput, err)
	}
}
