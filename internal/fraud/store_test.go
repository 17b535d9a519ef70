package fraud

import (
	"path/filepath"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "fraud_cases.json"))

	cases, err := store.ReadAll()
	if err != nil {
		t.Fatalf("read missing file: %v", err)
	}
	if len(cases) != 0 {
		t.Fatalf("missing file should read as empty collection, got %d", len(cases))
	}

	if err := store.WriteAll(sampleCases()); err != nil {
		t.Fatalf("write: %v", err)
	}

	cases, err = store.ReadAll()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(cases) != 2 {
		t.Fatalf("expected 2 cases, got %d", len(cases))
	}
	if cases[0].CaseID != "CASE-1001" || cases[1].Username != "sam" {
		t.Fatalf("unexpected collection contents: %+v", cases)
	}
}
