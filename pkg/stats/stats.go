package stats

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/nathfavour/blubot/pkg/responder"
	_ "modernc.org/sqlite"
)

// FallbackRule is the rule name recorded for unmatched utterances.
const FallbackRule = "(fallback)"

// Hit is the aggregated count for one rule on one surface.
type Hit struct {
	Rule     string    `json:"rule"`
	Surface  string    `json:"surface"`
	Count    int64     `json:"count"`
	LastSeen time.Time `json:"last_seen"`
}

// Recorder receives one event per answered utterance.
type Recorder interface {
	Record(surface string, m responder.Match) error
}

// Store keeps per-rule match counters in SQLite. It never stores
// utterances or replies.
type Store struct {
	db  *sql.DB
	mu  sync.Mutex
	now func() time.Time
}

// Open initializes the SQLite database at path and returns a Store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open stats database: %w", err)
	}
	db.SetMaxOpenConns(1)

	query := `
	CREATE TABLE IF NOT EXISTS rule_hits (
		rule TEXT NOT NULL,
		surface TEXT NOT NULL,
		count INTEGER NOT NULL DEFAULT 0,
		last_seen DATETIME,
		PRIMARY KEY(rule, surface)
	);
	`
	if _, err := db.Exec(query); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize stats tables: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Record increments the counter for the rule that produced m.
func (s *Store) Record(surface string, m responder.Match) error {
	rule := m.Rule
	if m.Fallback {
		rule = FallbackRule
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`
		INSERT INTO rule_hits (rule, surface, count, last_seen) VALUES (?, ?, 1, ?)
		ON CONFLICT(rule, surface) DO UPDATE SET count = count + 1, last_seen = excluded.last_seen`,
		rule, surface, s.now().UTC(),
	)
	return err
}

// List returns all counters, busiest first.
func (s *Store) List() ([]Hit, error) {
	rows, err := s.db.Query("SELECT rule, surface, count, last_seen FROM rule_hits ORDER BY count DESC, rule ASC, surface ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var h Hit
		if err := rows.Scan(&h.Rule, &h.Surface, &h.Count, &h.LastSeen); err != nil {
			return nil, err
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

// Totals sums counts per rule across surfaces.
func (s *Store) Totals() (map[string]int64, error) {
	rows, err := s.db.Query("SELECT rule, SUM(count) FROM rule_hits GROUP BY rule")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[string]int64)
	for rows.Next() {
		var rule string
		var n int64
		if err := rows.Scan(&rule, &n); err != nil {
			return nil, err
		}
		totals[rule] = n
	}
	return totals, rows.Err()
}

// Reset removes all counters.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec("DELETE FROM rule_hits")
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Discard is a Recorder that drops every event.
var Discard Recorder = discard{}

type discard struct{}

func (discard) Record(string, responder.Match) error { return nil }
