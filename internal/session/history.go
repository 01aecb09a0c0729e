// Package session persists per-turn execution history.
//
// Two artifacts live here: a SQLite store of executed turns backing the
// `2g history` subcommand, and the append-only line-history file that backs
// the interactive editor's recall. Neither is read by the routing core.
package session

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Tahsine/2giants-cli/internal/logging"
)

// Turn is one executed utterance and its outcome.
type Turn struct {
	ID        int64
	SessionID string
	Utterance string
	Route     string
	ReplyLen  int
	CreatedAt time.Time
}

// Stats summarizes the stored history.
type Stats struct {
	TotalTurns   int
	TurnsByRoute map[string]int
	FirstTurn    time.Time
	LastTurn     time.Time
}

// Store records executed turns in SQLite.
type Store struct {
	db   *sql.DB
	mu   sync.Mutex
	path string
}

// Open initializes the history database at the given path, creating the
// parent directory and schema as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	store := &Store{db: db, path: path}
	if err := store.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logging.Session("history store opened: %s", path)
	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS turns (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		utterance TEXT NOT NULL,
		route TEXT NOT NULL,
		reply_len INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_turns_session ON turns(session_id);
	CREATE INDEX IF NOT EXISTS idx_turns_created ON turns(created_at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create history schema: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores one executed turn. Failures are the caller's to log;
// history is best-effort and must never fail a user turn.
func (s *Store) Record(sessionID, utterance, route string, replyLen int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	logging.SessionDebug("recording turn: session=%s route=%s", sessionID, route)

	_, err := s.db.Exec(
		"INSERT INTO turns (session_id, utterance, route, reply_len) VALUES (?, ?, ?, ?)",
		sessionID, utterance, route, replyLen,
	)
	if err != nil {
		return fmt.Errorf("failed to record turn: %w", err)
	}
	return nil
}

// Recent returns the most recent turns, newest first.
func (s *Store) Recent(limit int) ([]Turn, error) {
	if limit <= 0 {
		limit = 10
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		`SELECT id, session_id, utterance, route, reply_len, created_at
		 FROM turns ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	return scanTurns(rows)
}

// ByDate returns all turns recorded on the given day (YYYY-MM-DD), oldest first.
func (s *Store) ByDate(date string) ([]Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		`SELECT id, session_id, utterance, route, reply_len, created_at
		 FROM turns WHERE date(created_at) = ? ORDER BY id`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	return scanTurns(rows)
}

// Stats aggregates the stored history.
func (s *Store) Stats() (*Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := &Stats{TurnsByRoute: make(map[string]int)}

	rows, err := s.db.Query("SELECT route, COUNT(*) FROM turns GROUP BY route")
	if err != nil {
		return nil, fmt.Errorf("failed to query history stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var route string
		var count int
		if err := rows.Scan(&route, &count); err != nil {
			continue
		}
		stats.TurnsByRoute[route] = count
		stats.TotalTurns += count
	}

	if stats.TotalTurns > 0 {
		var first, last time.Time
		firstErr := s.db.QueryRow("SELECT created_at FROM turns ORDER BY id LIMIT 1").Scan(&first)
		lastErr := s.db.QueryRow("SELECT created_at FROM turns ORDER BY id DESC LIMIT 1").Scan(&last)
		if firstErr == nil && lastErr == nil {
			stats.FirstTurn = first
			stats.LastTurn = last
		}
	}
	return stats, nil
}

func scanTurns(rows *sql.Rows) ([]Turn, error) {
	var turns []Turn
	for rows.Next() {
		var t Turn
		if err := rows.Scan(&t.ID, &t.SessionID, &t.Utterance, &t.Route, &t.ReplyLen, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		turns = append(turns, t)
	}
	return turns, rows.Err()
}
