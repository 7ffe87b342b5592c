package importer

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// Content hashing is the sole identity key for no-op reimport detection.
// Payloads are canonicalized before digesting: fixed field set, trimmed
// values, keys sorted (json.Marshal emits map keys in sorted order), no
// incidental whitespace. Equal semantic content therefore always produces
// an equal hash regardless of how the source document ordered its keys.

// DomainHash digests the semantic fields of a domain.
func DomainHash(domainName, description, importance string) string {
	return contentHash(map[string]string{
		"domain_name": strings.TrimSpace(domainName),
		"description": strings.TrimSpace(description),
		"importance":  strings.TrimSpace(importance),
	})
}

// AttributeHash digests the semantic fields of an attribute. The owning
// domain name is part of the payload, so attributes with identical own
// fields never collide across domains.
func AttributeHash(domainName, attributeName, definition, tmForumMapping, importance string) string {
	return contentHash(map[string]string{
		"domain_name":      strings.TrimSpace(domainName),
		"attribute_name":   strings.TrimSpace(attributeName),
		"definition":       strings.TrimSpace(definition),
		"tm_forum_mapping": strings.TrimSpace(tmForumMapping),
		"importance":       strings.TrimSpace(importance),
	})
}

func contentHash(payload map[string]string) string {
	b, _ := json.Marshal(payload)
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
