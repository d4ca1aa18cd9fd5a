package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store holds the database handle and provides access to repositories.
// It is the only component that touches durable local state; everything
// else goes through the repo interfaces.
type Store struct {
	db *sql.DB
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates missing tables.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SessionRepo returns the session credential repository.
func (s *Store) SessionRepo() SessionRepo {
	return &sessionRepo{db: s.db}
}

// ContentRepo returns the cached lesson document repository.
func (s *Store) ContentRepo() ContentRepo {
	return &contentRepo{db: s.db}
}

// AttemptRepo returns the quiz attempt history repository.
func (s *Store) AttemptRepo() AttemptRepo {
	return &attemptRepo{db: s.db}
}

// EventRepo returns the API request event repository.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{db: s.db}
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// migrate creates the schema. Statements are idempotent so Open can run
// them on every start.
func migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS session (
			id         INTEGER PRIMARY KEY CHECK (id = 1),
			token      TEXT NOT NULL,
			profile    TEXT NOT NULL,
			remember   INTEGER NOT NULL DEFAULT 0,
			saved_at   TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS contents (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			topic       TEXT NOT NULL,
			difficulty  TEXT NOT NULL,
			document    TEXT NOT NULL,
			fetched_at  TIMESTAMP NOT NULL,
			UNIQUE (topic, difficulty)
		)`,
		`CREATE TABLE IF NOT EXISTS attempts (
			id        TEXT PRIMARY KEY,
			topic     TEXT NOT NULL,
			score     INTEGER NOT NULL,
			total     INTEGER NOT NULL,
			taken_at  TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS api_events (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			endpoint    TEXT NOT NULL,
			method      TEXT NOT NULL,
			status      INTEGER NOT NULL,
			latency_ms  INTEGER NOT NULL,
			success     INTEGER NOT NULL,
			error       TEXT NOT NULL DEFAULT '',
			created_at  TIMESTAMP NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. LERNIX_DB environment variable
// 2. $XDG_DATA_HOME/lernix/lernix.db
// 3. ~/.local/share/lernix/lernix.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("LERNIX_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "lernix", "lernix.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
