package sqlite

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lessonlog/lessonlog/internal/domain"
)

func TestOpen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	var journalMode string
	if err := db.QueryRow("PRAGMA journal_mode").Scan(&journalMode); err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("journal_mode = %q; want wal", journalMode)
	}

	var fk int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("query foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Errorf("foreign_keys = %d; want 1", fk)
	}
}

func TestOpen_Idempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	for i := 0; i < 2; i++ {
		db, err := Open(dbPath)
		if err != nil {
			t.Fatalf("Open() attempt %d error = %v", i+1, err)
		}
		db.Close()
	}
}

func TestOpen_NotAStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "garbage.db")
	if err := os.WriteFile(dbPath, []byte("this is not a sqlite database at all"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Open(dbPath)
	if err == nil {
		t.Fatal("Open() on a non-store file should fail")
	}
	var storageErr *domain.StorageError
	if !errors.As(err, &storageErr) {
		t.Errorf("Open() error = %T; want *domain.StorageError", err)
	}
}

func TestMigrate(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	version, err := db.Version()
	if err != nil {
		t.Fatalf("Version() error = %v", err)
	}
	if version != 2 {
		t.Errorf("Version() = %d; want 2", version)
	}

	tables := []string{"users", "progress", "notes"}
	for _, table := range tables {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %q not found: %v", table, err)
		}
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		t.Fatalf("first Migrate() error = %v", err)
	}
	if err := db.Migrate(); err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}

	version, _ := db.Version()
	if version != 2 {
		t.Errorf("Version() = %d; want 2", version)
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name    string
		want    int
		wantErr bool
	}{
		{"001_initial.sql", 1, false},
		{"002_note_lookups.sql", 2, false},
		{"010_something.sql", 10, false},
		{"notaversion.sql", 0, true},
	}
	for _, tt := range tests {
		got, err := parseVersion(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseVersion(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseVersion(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

// openTestDB is a helper that opens and migrates a test database.
func openTestDB(t *testing.T) *DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := db.Migrate(); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// createTestUser is a helper that inserts and returns a user.
func createTestUser(t *testing.T, db *DB, name string) *domain.User {
	t.Helper()
	u, err := NewUserStore(db).GetOrCreate(name)
	if err != nil {
		t.Fatalf("GetOrCreate(%q) error = %v", name, err)
	}
	return u
}
