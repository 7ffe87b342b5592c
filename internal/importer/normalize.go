package importer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/capframe/capframe-backend/internal/domain/importing"
)

const opNormalize = "importer.normalize"

// Normalize parses a raw research document and canonicalizes it. All format
// and shape errors surface here, before anything touches the database.
func Normalize(raw []byte) (*importing.CanonicalDocument, error) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, importing.NewError(importing.CodeMalformedInput, opNormalize, "document is not a JSON object", err)
	}
	return NormalizeDocument(doc)
}

// NormalizeDocument classifies an already-decoded document and reduces it to
// the canonical domain list plus pass-through metadata.
func NormalizeDocument(doc map[string]any) (*importing.CanonicalDocument, error) {
	format, err := DetectFormat(doc)
	if err != nil {
		return nil, err
	}

	var domains []importing.DomainInput
	switch format {
	case importing.FormatCurrentFramework:
		domains, err = frameworkDomains(doc, "current_framework")
	case importing.FormatProposedFramework:
		domains, err = frameworkDomains(doc, "proposed_framework")
	case importing.FormatResearchFile:
		domains, err = researchDomains(doc)
	case importing.FormatSimpleDomains:
		domains, err = parseDomainList(doc["domains"], "domains")
	default:
		return nil, importing.NewError(importing.CodeUnsupportedFormat, opNormalize,
			"document matches no supported shape", nil)
	}
	if err != nil {
		return nil, err
	}

	meta, err := extractMeta(doc, format)
	if err != nil {
		return nil, err
	}

	return &importing.CanonicalDocument{Format: format, Domains: domains, Meta: meta}, nil
}

// DetectFormat classifies a document into one of the supported shapes.
// Checks run in strict priority order and the first match wins; a document
// carrying both current_framework and gap_analysis is current_framework.
func DetectFormat(doc map[string]any) (importing.DocumentFormat, error) {
	if v, present := doc["current_framework"]; present {
		obj, ok := v.(map[string]any)
		if !ok {
			return importing.FormatUnknown, importing.NewError(importing.CodeMalformedInput, opNormalize,
				"current_framework must be an object", nil)
		}
		if _, has := obj["domains"]; has {
			return importing.FormatCurrentFramework, nil
		}
	}
	if v, present := doc["proposed_framework"]; present {
		obj, ok := v.(map[string]any)
		if !ok {
			return importing.FormatUnknown, importing.NewError(importing.CodeMalformedInput, opNormalize,
				"proposed_framework must be an object", nil)
		}
		if _, has := obj["domains"]; has {
			return importing.FormatProposedFramework, nil
		}
	}
	if hasKeys(doc, "capability", "gap_analysis", "market_research", "recommendations") {
		return importing.FormatResearchFile, nil
	}
	if _, present := doc["domains"]; present {
		return importing.FormatSimpleDomains, nil
	}
	return importing.FormatUnknown, nil
}

// NormalizeInputs validates and canonicalizes an already-shaped domain list,
// the entry path for simple domain imports that bypass document parsing.
func NormalizeInputs(domains []importing.DomainInput) ([]importing.DomainInput, error) {
	out := make([]importing.DomainInput, 0, len(domains))
	for i, d := range domains {
		name := strings.TrimSpace(d.DomainName)
		if name == "" {
			return nil, importing.NewError(importing.CodeMalformedInput, opNormalize,
				fmt.Sprintf("domains[%d]: domain_name is required", i), nil)
		}
		nd := importing.DomainInput{
			DomainName:  name,
			Description: strings.TrimSpace(d.Description),
			Importance:  normalizeImportance(d.Importance),
			Attributes:  make([]importing.AttributeInput, 0, len(d.Attributes)),
		}
		for j, a := range d.Attributes {
			attrName := strings.TrimSpace(a.AttributeName)
			if attrName == "" {
				return nil, importing.NewError(importing.CodeMalformedInput, opNormalize,
					fmt.Sprintf("domains[%d].attributes[%d]: attribute_name is required", i, j), nil)
			}
			nd.Attributes = append(nd.Attributes, importing.AttributeInput{
				AttributeName:  attrName,
				Definition:     strings.TrimSpace(a.Definition),
				TMForumMapping: strings.TrimSpace(a.TMForumMapping),
				Importance:     normalizeImportance(a.Importance),
			})
		}
		out = append(out, nd)
	}
	return out, nil
}

func frameworkDomains(doc map[string]any, key string) ([]importing.DomainInput, error) {
	framework := doc[key].(map[string]any)
	return parseDomainList(framework["domains"], key+".domains")
}

// researchDomains assembles domains from gap_analysis.missing_domains and
// joins each domain's attributes out of gap_analysis.missing_attributes by
// matching the entry's domain field against the domain name.
func researchDomains(doc map[string]any) ([]importing.DomainInput, error) {
	gap, ok := doc["gap_analysis"].(map[string]any)
	if !ok {
		return nil, importing.NewError(importing.CodeMalformedInput, opNormalize,
			"gap_analysis must be an object", nil)
	}

	domains, err := parseDomainList(gap["missing_domains"], "gap_analysis.missing_domains")
	if err != nil {
		return nil, err
	}

	var attrRows []map[string]any
	if v, present := gap["missing_attributes"]; present {
		list, ok := v.([]any)
		if !ok {
			return nil, importing.NewError(importing.CodeMalformedInput, opNormalize,
				"gap_analysis.missing_attributes must be a list", nil)
		}
		attrRows = make([]map[string]any, 0, len(list))
		for i, entry := range list {
			obj, ok := entry.(map[string]any)
			if !ok {
				return nil, importing.NewError(importing.CodeMalformedInput, opNormalize,
					fmt.Sprintf("gap_analysis.missing_attributes[%d] must be an object", i), nil)
			}
			attrRows = append(attrRows, obj)
		}
	}

	for i := range domains {
		for j, row := range attrRows {
			if stringField(row, "domain") != domains[i].DomainName {
				continue
			}
			attr, err := parseAttributeObject(row, fmt.Sprintf("gap_analysis.missing_attributes[%d]", j))
			if err != nil {
				return nil, err
			}
			domains[i].Attributes = append(domains[i].Attributes, attr)
		}
	}
	return domains, nil
}

func parseDomainList(v any, path string) ([]importing.DomainInput, error) {
	if v == nil {
		return []importing.DomainInput{}, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, importing.NewError(importing.CodeMalformedInput, opNormalize,
			fmt.Sprintf("%s must be a list", path), nil)
	}
	out := make([]importing.DomainInput, 0, len(list))
	for i, entry := range list {
		obj, ok := entry.(map[string]any)
		if !ok {
			return nil, importing.NewError(importing.CodeMalformedInput, opNormalize,
				fmt.Sprintf("%s[%d] must be an object", path, i), nil)
		}
		d, err := parseDomainObject(obj, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func parseDomainObject(obj map[string]any, path string) (importing.DomainInput, error) {
	name := stringField(obj, "domain_name")
	if name == "" {
		return importing.DomainInput{}, importing.NewError(importing.CodeMalformedInput, opNormalize,
			path+": domain_name is required", nil)
	}
	d := importing.DomainInput{
		DomainName:  name,
		Description: stringField(obj, "description"),
		Importance:  normalizeImportance(stringField(obj, "importance")),
		Attributes:  []importing.AttributeInput{},
	}
	if v, present := obj["attributes"]; present {
		list, ok := v.([]any)
		if !ok {
			return importing.DomainInput{}, importing.NewError(importing.CodeMalformedInput, opNormalize,
				path+".attributes must be a list", nil)
		}
		for i, entry := range list {
			attrObj, ok := entry.(map[string]any)
			if !ok {
				return importing.DomainInput{}, importing.NewError(importing.CodeMalformedInput, opNormalize,
					fmt.Sprintf("%s.attributes[%d] must be an object", path, i), nil)
			}
			attr, err := parseAttributeObject(attrObj, fmt.Sprintf("%s.attributes[%d]", path, i))
			if err != nil {
				return importing.DomainInput{}, err
			}
			d.Attributes = append(d.Attributes, attr)
		}
	}
	return d, nil
}

func parseAttributeObject(obj map[string]any, path string) (importing.AttributeInput, error) {
	name := stringField(obj, "attribute_name")
	if name == "" {
		return importing.AttributeInput{}, importing.NewError(importing.CodeMalformedInput, opNormalize,
			path+": attribute_name is required", nil)
	}
	return importing.AttributeInput{
		AttributeName:  name,
		Definition:     stringField(obj, "definition"),
		TMForumMapping: stringField(obj, "tm_forum_mapping"),
		Importance:     normalizeImportance(stringField(obj, "importance")),
	}, nil
}

// extractMeta pulls the auxiliary sections out of the document. None of it
// participates in dedup; a current_framework document's gap_analysis in
// particular survives only as pass-through.
func extractMeta(doc map[string]any, format importing.DocumentFormat) (importing.DocumentMeta, error) {
	meta := importing.DocumentMeta{}

	if format == importing.FormatResearchFile {
		capObj, ok := doc["capability"].(map[string]any)
		if !ok {
			return meta, importing.NewError(importing.CodeMalformedInput, opNormalize,
				"capability must be an object", nil)
		}
		meta.CapabilityName = stringField(capObj, "name")
		if meta.CapabilityName == "" {
			meta.CapabilityName = stringField(capObj, "capability_name")
		}
		meta.CapabilityStatus = stringField(capObj, "status")
	}

	if v, present := doc["market_research"]; present {
		mr, ok := v.(map[string]any)
		if !ok {
			return meta, importing.NewError(importing.CodeMalformedInput, opNormalize,
				"market_research must be an object", nil)
		}
		names, sources, err := vendorEntries(mr["vendors"])
		if err != nil {
			return meta, err
		}
		meta.MarketVendors = names
		meta.VendorSources = sources
	}

	if v, present := doc["recommendations"]; present {
		rec, ok := v.(map[string]any)
		if !ok {
			return meta, importing.NewError(importing.CodeMalformedInput, opNormalize,
				"recommendations must be an object", nil)
		}
		var err error
		if meta.PriorityDomains, err = stringList(rec["priority_domains"], "recommendations.priority_domains"); err != nil {
			return meta, err
		}
		if meta.PriorityAttributes, err = stringList(rec["priority_attributes"], "recommendations.priority_attributes"); err != nil {
			return meta, err
		}
	}

	if format != importing.FormatResearchFile {
		if v, present := doc["gap_analysis"]; present {
			meta.Passthrough = map[string]any{"gap_analysis": v}
		}
	}

	return meta, nil
}

// vendorEntries accepts vendor lists of bare name strings or objects
// carrying name/vendor_name, in document order.
func vendorEntries(v any) ([]string, map[string]map[string]any, error) {
	if v == nil {
		return nil, nil, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, nil, importing.NewError(importing.CodeMalformedInput, opNormalize,
			"market_research.vendors must be a list", nil)
	}
	names := make([]string, 0, len(list))
	var sources map[string]map[string]any
	for _, entry := range list {
		switch t := entry.(type) {
		case string:
			if name := strings.TrimSpace(t); name != "" {
				names = append(names, name)
			}
		case map[string]any:
			name := stringField(t, "name")
			if name == "" {
				name = stringField(t, "vendor_name")
			}
			if name == "" {
				continue
			}
			names = append(names, name)
			if sources == nil {
				sources = map[string]map[string]any{}
			}
			sources[name] = t
		}
	}
	if len(names) == 0 {
		return nil, nil, nil
	}
	return names, sources, nil
}

func stringList(v any, path string) ([]string, error) {
	if v == nil {
		return nil, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, importing.NewError(importing.CodeMalformedInput, opNormalize,
			path+" must be a list", nil)
	}
	out := make([]string, 0, len(list))
	for _, entry := range list {
		if s, ok := entry.(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

func hasKeys(doc map[string]any, keys ...string) bool {
	for _, k := range keys {
		if _, present := doc[k]; !present {
			return false
		}
	}
	return true
}

func stringField(obj map[string]any, key string) string {
	if v, ok := obj[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func normalizeImportance(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "medium"
	}
	return s
}
