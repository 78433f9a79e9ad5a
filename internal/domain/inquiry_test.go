package domain

import (
	"encoding/json"
	"testing"
)

func TestEnumValidity(t *testing.T) {
	for _, s := range []Status{StatusNew, StatusContacted, StatusInProgress, StatusCompleted, StatusCancelled} {
		if !s.Valid() {
			t.Errorf("status %q should be valid", s)
		}
	}
	if Status("archived").Valid() || Status("").Valid() {
		t.Error("unknown status accepted")
	}

	for _, p := range []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent} {
		if !p.Valid() {
			t.Errorf("priority %q should be valid", p)
		}
	}
	if Priority("critical").Valid() {
		t.Error("unknown priority accepted")
	}

	for _, c := range Categories() {
		if !c.Valid() {
			t.Errorf("category %q should be valid", c)
		}
	}
	// Matching is case-sensitive
	if Category("residential").Valid() {
		t.Error("lowercase category accepted")
	}
}

func TestDocumentsColumnRoundTrip(t *testing.T) {
	docs := Documents{"deed.pdf", "plan.png"}
	value, err := docs.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}

	var scanned Documents
	if err := scanned.Scan(value); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(scanned) != 2 || scanned[0] != "deed.pdf" {
		t.Errorf("round trip lost entries: %v", scanned)
	}
}

func TestDocumentsNeverNull(t *testing.T) {
	// A nil slice still stores a JSON array
	value, err := Documents(nil).Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	if value.(string) != "[]" {
		t.Errorf("expected empty JSON array, got %q", value)
	}

	// NULL and empty columns scan to an empty, non-nil slice
	for _, column := range []any{nil, "", []byte(nil)} {
		var docs Documents
		if err := docs.Scan(column); err != nil {
			t.Fatalf("Scan(%v) failed: %v", column, err)
		}
		if docs == nil || len(docs) != 0 {
			t.Errorf("Scan(%v): expected empty slice, got %v", column, docs)
		}
		raw, _ := json.Marshal(docs)
		if string(raw) != "[]" {
			t.Errorf("Scan(%v): JSON renders %s, want []", column, raw)
		}
	}
}
