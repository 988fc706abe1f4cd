// Package sqlite is the persistence gateway: it owns the embedded store
// file for the process lifetime and exposes typed record stores. Nothing
// outside this package issues SQL.
package sqlite

import (
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"

	"github.com/lessonlog/lessonlog/internal/domain"
	"github.com/lessonlog/lessonlog/internal/storage/migrations"
	_ "github.com/mattn/go-sqlite3"
)

// DB wraps a sql.DB connection to the SQLite store with migration support.
type DB struct {
	*sql.DB
}

// Open opens (creating if absent) the store at path with WAL mode and
// foreign keys enabled. It is idempotent; opening an existing store is
// safe. An unwritable path or a file that is not a valid store yields a
// StorageError.
func Open(path string) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, domain.Storagef("open store", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, domain.Storagef("open store", err)
	}

	// The driver opens lazily, so a corrupt or foreign file only surfaces
	// on first read. Probe it now rather than on some later operation.
	var ok string
	if err := db.QueryRow("PRAGMA quick_check").Scan(&ok); err != nil || ok != "ok" {
		db.Close()
		if err == nil {
			err = fmt.Errorf("integrity check reported %q", ok)
		}
		return nil, domain.Storagef("validate store", err)
	}

	// Single writer; SQLite serializes writes anyway.
	db.SetMaxOpenConns(1)

	return &DB{DB: db}, nil
}

// Migrate applies all pending SQL migrations from the embedded filesystem.
// Each migration runs in its own transaction and is recorded in
// schema_migrations, so re-running is a no-op.
func (db *DB) Migrate() error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		applied_at DATETIME NOT NULL DEFAULT (datetime('now'))
	)`)
	if err != nil {
		return domain.Storagef("create schema_migrations", err)
	}

	current, err := db.Version()
	if err != nil {
		return err
	}

	names, err := migrationFiles()
	if err != nil {
		return err
	}

	applied := 0
	for _, name := range names {
		version, err := parseVersion(name)
		if err != nil {
			slog.Warn("skipping non-migration file", "name", name, "error", err)
			continue
		}
		if version <= current {
			continue
		}
		if err := db.applyMigration(name, version); err != nil {
			return err
		}
		applied++
		slog.Info("applied migration", "name", name, "version", version)
	}

	if applied > 0 {
		slog.Info("migrations complete", "applied", applied)
	}
	return nil
}

// Version returns the current schema version.
func (db *DB) Version() (int, error) {
	var version int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	if err != nil {
		return 0, domain.Storagef("read schema version", err)
	}
	return version, nil
}

func (db *DB) applyMigration(name string, version int) error {
	data, err := fs.ReadFile(migrations.FS, name)
	if err != nil {
		return domain.Storagef(fmt.Sprintf("read migration %s", name), err)
	}

	tx, err := db.Begin()
	if err != nil {
		return domain.Storagef(fmt.Sprintf("begin migration %s", name), err)
	}
	if _, err := tx.Exec(string(data)); err != nil {
		tx.Rollback()
		return domain.Storagef(fmt.Sprintf("apply migration %s", name), err)
	}
	if _, err := tx.Exec("INSERT OR REPLACE INTO schema_migrations (version) VALUES (?)", version); err != nil {
		tx.Rollback()
		return domain.Storagef(fmt.Sprintf("record migration %s", name), err)
	}
	if err := tx.Commit(); err != nil {
		return domain.Storagef(fmt.Sprintf("commit migration %s", name), err)
	}
	return nil
}

func migrationFiles() ([]string, error) {
	entries, err := fs.ReadDir(migrations.FS, ".")
	if err != nil {
		return nil, domain.Storagef("read migrations dir", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// parseVersion extracts the version number from a migration filename like
// "001_initial.sql".
func parseVersion(name string) (int, error) {
	parts := strings.SplitN(name, "_", 2)
	if len(parts) < 2 {
		return 0, fmt.Errorf("invalid migration filename: %s", name)
	}
	var version int
	if _, err := fmt.Sscanf(parts[0], "%d", &version); err != nil {
		return 0, fmt.Errorf("parse version from %s: %w", name, err)
	}
	return version, nil
}
