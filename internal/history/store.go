// Package history keeps a local SQLite ledger of upload-assistant launches:
// what was dispatched, through which strategy, and whether the dispatch
// itself came off. It exists for the operator's "what did I run against
// this release" question, so a broken ledger is never allowed to block a
// launch.
package history

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"uaman/internal/errors"
	"uaman/internal/log"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Fixed-width UTC text keeps lexicographic order chronological.
const timeFormat = "2006-01-02 15:04:05.000000000"

// Record is one launch.
type Record struct {
	ID        string
	StartedAt time.Time
	Target    string
	Args      string
	Strategy  string
	OK        bool
}

// Store is the SQLite-backed launch ledger.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the ledger at path and applies the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.NewStorageError("cannot create history directory", err).WithOperation("open")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.NewStorageError("cannot open history database", err).WithOperation("open")
	}

	statements := []string{
		// WAL keeps readers and the recording writer out of each other's way
		`PRAGMA journal_mode=WAL;`,
		`PRAGMA synchronous=NORMAL;`,
		`CREATE TABLE IF NOT EXISTS launches (
			id TEXT PRIMARY KEY,
			started_at TIMESTAMP,
			target TEXT,
			args TEXT,
			strategy TEXT,
			ok INTEGER
		);`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, errors.NewStorageError("cannot prepare history database", err).WithOperation("open")
		}
	}

	return &Store{db: db}, nil
}

// Record inserts one launch row, filling in a fresh ID and start time when
// unset. Failures are logged here; callers may ignore the returned error.
func (s *Store) Record(rec Record) error {
	if s == nil || s.db == nil {
		return nil
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.StartedAt.IsZero() {
		rec.StartedAt = time.Now()
	}

	ok := 0
	if rec.OK {
		ok = 1
	}
	_, err := s.db.Exec(
		`INSERT INTO launches (id, started_at, target, args, strategy, ok) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.StartedAt.UTC().Format(timeFormat), rec.Target, rec.Args, rec.Strategy, ok,
	)
	if err != nil {
		serr := errors.NewStorageError("cannot record launch", err).WithOperation("record")
		log.LogWithError(serr).Warn("launch not recorded")
		return serr
	}
	return nil
}

// Recent returns the latest n launches, newest first.
func (s *Store) Recent(n int) ([]Record, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	if n <= 0 {
		n = 20
	}

	rows, err := s.db.Query(
		`SELECT id, started_at, target, args, strategy, ok FROM launches ORDER BY started_at DESC, id LIMIT ?`, n)
	if err != nil {
		return nil, errors.NewStorageError("cannot read launch history", err).WithOperation("recent")
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			rec     Record
			started string
			ok      int
		)
		if err := rows.Scan(&rec.ID, &started, &rec.Target, &rec.Args, &rec.Strategy, &ok); err != nil {
			return nil, errors.NewStorageError("cannot read launch history", err).WithOperation("recent")
		}
		if ts, err := time.Parse(timeFormat, started); err == nil {
			rec.StartedAt = ts
		}
		rec.OK = ok != 0
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStorageError("cannot read launch history", err).WithOperation("recent")
	}

	return records, nil
}

// Close closes the ledger.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
