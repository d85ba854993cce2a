// Package history persists run summaries to a per-user SQLite database so
// past scans can be reviewed with the history subcommand.
package history

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/rcastner/duscan/internal/filelock"
)

//go:embed schema.sql
var schemaSQL string

// Run is one recorded scan.
type Run struct {
	ID         string
	Root       string
	StartedAt  time.Time
	Duration   time.Duration
	Entries    int
	Warnings   int
	TotalBytes uint64
	Flags      string
}

// Store manages the SQLite history database.
type Store struct {
	db       *sql.DB
	dbPath   string
	lockPath string
}

// DefaultPath returns the per-user history database path under the home
// directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".duscan", "history.db"), nil
}

// Open opens (creating if needed) the history database at dbPath.
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	// busy_timeout first so later statements wait on locks instead of
	// failing immediately.
	for _, pragma := range []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath, lockPath: dbPath + ".lock"}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// Save records a run. Writes across concurrent duscan processes are
// serialized through an advisory file lock next to the database.
func (s *Store) Save(r Run) error {
	if r.ID == "" {
		r.ID = NewRunID()
	}

	write := func() error {
		_, err := s.db.Exec(
			`INSERT INTO runs (id, root, started_at, duration_ms, entries, warnings, total_bytes, flags)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.Root, r.StartedAt.UTC(), r.Duration.Milliseconds(),
			r.Entries, r.Warnings, int64(r.TotalBytes), r.Flags,
		)
		if err != nil {
			return fmt.Errorf("save run %s: %w", r.ID, err)
		}
		return nil
	}

	if s.dbPath == ":memory:" {
		return write()
	}
	return filelock.WithLock(s.lockPath, write)
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, root, started_at, duration_ms, entries, warnings, total_bytes, flags
		 FROM runs ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var durMs, total int64
		if err := rows.Scan(&r.ID, &r.Root, &r.StartedAt, &durMs, &r.Entries, &r.Warnings, &total, &r.Flags); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		r.Duration = time.Duration(durMs) * time.Millisecond
		r.TotalBytes = uint64(total)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
