package importer

import (
	"strings"
	"testing"
)

func TestDomainHashDeterministic(t *testing.T) {
	a := DomainHash("Charging", "realtime charging", "high")
	b := DomainHash("Charging", "realtime charging", "high")
	if a != b {
		t.Fatalf("identical content hashed differently: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("hash length: want=64 got=%d", len(a))
	}
	if a != strings.ToLower(a) {
		t.Fatalf("hash not lowercase hex: %s", a)
	}
}

func TestDomainHashIgnoresIncidentalWhitespace(t *testing.T) {
	a := DomainHash("Charging", "realtime charging", "high")
	b := DomainHash("  Charging ", "realtime charging\n", " high ")
	if a != b {
		t.Fatalf("trimmed content hashed differently: %s vs %s", a, b)
	}
}

func TestDomainHashChangesPerField(t *testing.T) {
	base := DomainHash("Charging", "realtime charging", "high")
	variants := map[string]string{
		"domain_name": DomainHash("Charging2", "realtime charging", "high"),
		"description": DomainHash("Charging", "offline charging", "high"),
		"importance":  DomainHash("Charging", "realtime charging", "low"),
	}
	for field, h := range variants {
		if h == base {
			t.Fatalf("changing %s did not change the hash", field)
		}
	}
}

func TestAttributeHashDeterministic(t *testing.T) {
	a := AttributeHash("Charging", "Latency", "p99 rating latency", "TMF637", "high")
	b := AttributeHash("Charging", "Latency", "p99 rating latency", "TMF637", "high")
	if a != b {
		t.Fatalf("identical content hashed differently: %s vs %s", a, b)
	}
}

func TestAttributeHashChangesPerField(t *testing.T) {
	base := AttributeHash("Charging", "Latency", "p99 rating latency", "TMF637", "high")
	variants := map[string]string{
		"domain_name":      AttributeHash("Mediation", "Latency", "p99 rating latency", "TMF637", "high"),
		"attribute_name":   AttributeHash("Charging", "Throughput", "p99 rating latency", "TMF637", "high"),
		"definition":       AttributeHash("Charging", "Latency", "p50 rating latency", "TMF637", "high"),
		"tm_forum_mapping": AttributeHash("Charging", "Latency", "p99 rating latency", "TMF678", "high"),
		"importance":       AttributeHash("Charging", "Latency", "p99 rating latency", "TMF637", "medium"),
	}
	for field, h := range variants {
		if h == base {
			t.Fatalf("changing %s did not change the hash", field)
		}
	}
}

// The owning domain is part of the attribute payload, so two attributes with
// identical own fields under different domains must not share an identity.
func TestAttributeHashScopedToDomain(t *testing.T) {
	a := AttributeHash("Charging", "Latency", "d", "", "medium")
	b := AttributeHash("Mediation", "Latency", "d", "", "medium")
	if a == b {
		t.Fatalf("attribute hash collided across domains: %s", a)
	}
}

func TestDomainAndAttributeHashesDisjoint(t *testing.T) {
	d := DomainHash("Charging", "", "medium")
	a := AttributeHash("Charging", "Charging", "", "", "medium")
	if d == a {
		t.Fatalf("domain and attribute payloads collided: %s", d)
	}
}
