package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/eldermyth/cardvault/pkg/types"
)

// Store is the single persistent card store. One process-wide
// readers-writer lock guards the handle: reads take the shared lock,
// writes are fully exclusive. Lock acquisition never times out;
// blocking is acceptable for a single-device local store.
type Store struct {
	mu   sync.RWMutex
	path string
	db   *sql.DB
}

// Open opens (or creates) the store file at path and applies every
// pending schema upgrade. The parent directory is created if missing.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("store path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging store: %w", err)
	}

	s := &Store{path: filepath.Clean(path), db: db}
	if err := s.applyUpgrades(); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema upgrades: %w", err)
	}
	return s, nil
}

// OpenReadOnly opens an existing store file without creating it. Used
// by the migration pipeline to read legacy databases and scratch
// stores.
func OpenReadOnly(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("probing store file: %w", err)
	}
	db, err := sql.Open("sqlite", filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("opening store read-only: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging store: %w", err)
	}
	return &Store{path: filepath.Clean(path), db: db}, nil
}

// Close releases the underlying handle. Close is idempotent; all
// later operations return ErrStoreClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Path returns the store file path.
func (s *Store) Path() string {
	return s.path
}

// DB exposes the raw handle for the migration pipeline's scratch-store
// generation, which needs transaction-scoped pragma control.
func (s *Store) DB() *sql.DB {
	return s.db
}

// applyUpgrades walks schemaUpgrades from the recorded version to
// currentSchemaVersion, applying each transition's statements.
func (s *Store) applyUpgrades() error {
	if _, err := s.db.Exec(createVersion); err != nil {
		return fmt.Errorf("ensuring version table: %w", err)
	}

	var have int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&have)
	if err == sql.ErrNoRows {
		if _, err := s.db.Exec("INSERT INTO schema_version (version) VALUES (0)"); err != nil {
			return fmt.Errorf("seeding version row: %w", err)
		}
		have = 0
	} else if err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for _, up := range schemaUpgrades {
		if up.version <= have {
			continue
		}
		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("beginning upgrade to v%d: %w", up.version, err)
		}
		for _, stmt := range up.statements {
			if _, err := tx.Exec(stmt); err != nil {
				tx.Rollback()
				return fmt.Errorf("upgrading to v%d: %w", up.version, err)
			}
		}
		if _, err := tx.Exec("UPDATE schema_version SET version = ?", up.version); err != nil {
			tx.Rollback()
			return fmt.Errorf("recording version v%d: %w", up.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing upgrade to v%d: %w", up.version, err)
		}
	}
	return nil
}

// checkOpen returns ErrStoreClosed when the handle is gone. Callers
// must hold the lock.
func (s *Store) checkOpen() error {
	if s.db == nil {
		return types.ErrStoreClosed
	}
	return nil
}
