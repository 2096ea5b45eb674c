// Package store provides the local SQLite cache for egc: recent search
// history and the last-fetched raw elements, so results can be re-rendered
// offline and `egc history` works without a server round trip.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// DBFileName is the cache database file inside the egc home directory.
const DBFileName = "egc.db"

// Store manages the egc.db SQLite database.
type Store struct {
	db     *sql.DB
	dbPath string
}

// schema creates the tables on first open. Elements are keyed by GUID so a
// re-fetch replaces the cached copy; history rows are append-only.
const schema = `
CREATE TABLE IF NOT EXISTS history (
	id           TEXT PRIMARY KEY,
	ts           TIMESTAMP NOT NULL,
	kind         TEXT NOT NULL,
	query        TEXT NOT NULL,
	mode         TEXT NOT NULL,
	result_count INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_history_ts ON history(ts);

CREATE TABLE IF NOT EXISTS elements (
	guid       TEXT PRIMARY KEY,
	kind       TEXT NOT NULL,
	body       TEXT NOT NULL,
	fetched_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_elements_kind ON elements(kind);
`

// Open opens or creates the cache database in the given directory,
// initializing the schema if the database is new.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	dbPath := filepath.Join(dir, DBFileName)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize cache schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

// HistoryEntry is one recorded search.
type HistoryEntry struct {
	ID          string
	Timestamp   time.Time
	Kind        string
	Query       string
	Mode        string
	ResultCount int
}

// RecordSearch appends one history row and returns its generated ID.
func (s *Store) RecordSearch(kind, query, mode string, resultCount int) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO history (id, ts, kind, query, mode, result_count) VALUES (?, ?, ?, ?, ?, ?)`,
		id, time.Now().UTC(), kind, query, mode, resultCount)
	if err != nil {
		return "", fmt.Errorf("record search: %w", err)
	}
	return id, nil
}

// RecentSearches returns the most recent history entries, newest first.
func (s *Store) RecentSearches(limit int) ([]*HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, ts, kind, query, mode, result_count FROM history ORDER BY ts DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []*HistoryEntry
	for rows.Next() {
		e := &HistoryEntry{}
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Kind, &e.Query, &e.Mode, &e.ResultCount); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CachedElement is one stored raw element.
type CachedElement struct {
	GUID      string
	Kind      string
	Body      json.RawMessage
	FetchedAt time.Time
}

// PutElement caches one element body under its GUID, replacing any previous
// copy.
func (s *Store) PutElement(guid, kind string, body any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode element %s: %w", guid, err)
	}
	_, err = s.db.Exec(
		`INSERT INTO elements (guid, kind, body, fetched_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(guid) DO UPDATE SET kind=excluded.kind, body=excluded.body, fetched_at=excluded.fetched_at`,
		guid, kind, string(encoded), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("cache element %s: %w", guid, err)
	}
	return nil
}

// GetElement returns the cached element for guid, or (nil, nil) when absent.
func (s *Store) GetElement(guid string) (*CachedElement, error) {
	e := &CachedElement{}
	var body string
	err := s.db.QueryRow(
		`SELECT guid, kind, body, fetched_at FROM elements WHERE guid = ?`, guid).
		Scan(&e.GUID, &e.Kind, &body, &e.FetchedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cached element %s: %w", guid, err)
	}
	e.Body = json.RawMessage(body)
	return e, nil
}

// ElementsByKind returns the cached elements of one kind, newest first.
func (s *Store) ElementsByKind(kind string, limit int) ([]*CachedElement, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.Query(
		`SELECT guid, kind, body, fetched_at FROM elements WHERE kind = ? ORDER BY fetched_at DESC LIMIT ?`,
		kind, limit)
	if err != nil {
		return nil, fmt.Errorf("query cached elements: %w", err)
	}
	defer rows.Close()

	var elements []*CachedElement
	for rows.Next() {
		e := &CachedElement{}
		var body string
		if err := rows.Scan(&e.GUID, &e.Kind, &body, &e.FetchedAt); err != nil {
			return nil, fmt.Errorf("scan element row: %w", err)
		}
		e.Body = json.RawMessage(body)
		elements = append(elements, e)
	}
	return elements, rows.Err()
}

// Stats summarizes the cache contents.
type Stats struct {
	HistoryCount int
	ElementCount int
	OldestFetch  time.Time
}

// Stats returns cache counters for `egc cache status`.
func (s *Store) Stats() (*Stats, error) {
	st := &Stats{}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM history`).Scan(&st.HistoryCount); err != nil {
		return nil, fmt.Errorf("count history: %w", err)
	}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM elements`).Scan(&st.ElementCount); err != nil {
		return nil, fmt.Errorf("count elements: %w", err)
	}
	if st.ElementCount > 0 {
		if err := s.db.QueryRow(`SELECT MIN(fetched_at) FROM elements`).Scan(&st.OldestFetch); err != nil {
			return nil, fmt.Errorf("oldest fetch: %w", err)
		}
	}
	return st, nil
}

// Prune removes cached elements older than maxAge and returns the number
// removed. History is kept; it is small and useful.
func (s *Store) Prune(maxAge time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-maxAge)
	res, err := s.db.Exec(`DELETE FROM elements WHERE fetched_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune cache: %w", err)
	}
	return res.RowsAffected()
}

// Clear removes all cached elements and history.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM elements`); err != nil {
		return fmt.Errorf("clear elements: %w", err)
	}
	if _, err := s.db.Exec(`DELETE FROM history`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}
