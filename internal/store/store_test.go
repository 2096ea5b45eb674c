package store

import (
	"encoding/json"
	"testing"
	"time"
)

// openTestStore opens a store in a temp directory.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// TestOpenCreatesSchema tests that a fresh store is immediately usable.
func TestOpenCreatesSchema(t *testing.T) {
	s := openTestStore(t)

	stats, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.HistoryCount != 0 || stats.ElementCount != 0 {
		t.Errorf("fresh store should be empty: %+v", stats)
	}
}

// TestRecordAndListHistory tests the history round trip.
func TestRecordAndListHistory(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.RecordSearch("Collections", "clinical", "LIST", 3); err != nil {
		t.Fatalf("RecordSearch failed: %v", err)
	}
	if _, err := s.RecordSearch("Glossary Terms", "trial", "DICT", 7); err != nil {
		t.Fatalf("RecordSearch failed: %v", err)
	}

	entries, err := s.RecentSearches(10)
	if err != nil {
		t.Fatalf("RecentSearches failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	for _, e := range entries {
		if e.ID == "" || e.Timestamp.IsZero() {
			t.Errorf("entry missing id or timestamp: %+v", e)
		}
	}
}

// TestRecentSearchesLimit tests that the limit is applied.
func TestRecentSearchesLimit(t *testing.T) {
	s := openTestStore(t)
	for i := 0; i < 5; i++ {
		if _, err := s.RecordSearch("Collections", "q", "LIST", i); err != nil {
			t.Fatalf("RecordSearch failed: %v", err)
		}
	}

	entries, err := s.RecentSearches(2)
	if err != nil {
		t.Fatalf("RecentSearches failed: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 entries, got %d", len(entries))
	}
}

// TestPutGetElement tests element caching, replacement and lookup misses.
func TestPutGetElement(t *testing.T) {
	s := openTestStore(t)

	type payload struct {
		Name string `json:"name"`
	}

	if err := s.PutElement("abc-123", "Collections", payload{Name: "v1"}); err != nil {
		t.Fatalf("PutElement failed: %v", err)
	}
	if err := s.PutElement("abc-123", "Collections", payload{Name: "v2"}); err != nil {
		t.Fatalf("PutElement replace failed: %v", err)
	}

	cached, err := s.GetElement("abc-123")
	if err != nil {
		t.Fatalf("GetElement failed: %v", err)
	}
	if cached == nil {
		t.Fatal("expected a cached element")
	}

	var got payload
	if err := json.Unmarshal(cached.Body, &got); err != nil {
		t.Fatalf("unmarshal cached body: %v", err)
	}
	if got.Name != "v2" {
		t.Errorf("replacement should win, got %q", got.Name)
	}

	missing, err := s.GetElement("nope")
	if err != nil {
		t.Fatalf("GetElement miss failed: %v", err)
	}
	if missing != nil {
		t.Error("missing GUID should return nil, nil")
	}
}

// TestElementsByKind tests kind-scoped listing.
func TestElementsByKind(t *testing.T) {
	s := openTestStore(t)

	for _, guid := range []string{"a", "b"} {
		if err := s.PutElement(guid, "Collections", map[string]string{"guid": guid}); err != nil {
			t.Fatalf("PutElement failed: %v", err)
		}
	}
	if err := s.PutElement("c", "Projects", map[string]string{"guid": "c"}); err != nil {
		t.Fatalf("PutElement failed: %v", err)
	}

	collections, err := s.ElementsByKind("Collections", 0)
	if err != nil {
		t.Fatalf("ElementsByKind failed: %v", err)
	}
	if len(collections) != 2 {
		t.Errorf("expected 2 collections, got %d", len(collections))
	}
}

// TestPruneAndClear tests cache maintenance.
func TestPruneAndClear(t *testing.T) {
	s := openTestStore(t)

	if err := s.PutElement("fresh", "Collections", map[string]string{}); err != nil {
		t.Fatalf("PutElement failed: %v", err)
	}

	// Nothing is older than an hour yet.
	removed, err := s.Prune(time.Hour)
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if removed != 0 {
		t.Errorf("Prune removed %d fresh rows", removed)
	}

	// A negative max age moves the cutoff past "now" and removes everything.
	removed, err = s.Prune(-time.Second)
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected 1 pruned row, got %d", removed)
	}

	if _, err := s.RecordSearch("Collections", "q", "LIST", 1); err != nil {
		t.Fatalf("RecordSearch failed: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	stats, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.HistoryCount != 0 || stats.ElementCount != 0 {
		t.Errorf("store should be empty after Clear: %+v", stats)
	}
}
