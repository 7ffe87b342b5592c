package importing

import "testing"

func TestCountsRecord(t *testing.T) {
	var c Counts
	c.Record(OutcomeNew)
	c.Record(OutcomeUpdated)
	c.Record(OutcomeSkipped)
	c.Record(OutcomeSkipped)
	if c.Total != 4 || c.New != 1 || c.Updated != 1 || c.Skipped != 2 {
		t.Fatalf("Counts: %+v", c)
	}
	if !c.Changed() {
		t.Fatalf("counts with writes should report changed")
	}
}

func TestCountsChanged(t *testing.T) {
	var skippedOnly Counts
	skippedOnly.Record(OutcomeSkipped)
	if skippedOnly.Changed() {
		t.Fatalf("skip-only counts should not report changed")
	}
	if (Counts{}).Changed() {
		t.Fatalf("zero counts should not report changed")
	}
}
