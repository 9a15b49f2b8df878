package migration

import (
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestApplyMigrations(t *testing.T) {
	db := openTestDB(t)

	migrationFS := fstest.MapFS{
		"001_create_items.sql": &fstest.MapFile{
			Data: []byte("CREATE TABLE items (id TEXT PRIMARY KEY, data TEXT NOT NULL);"),
		},
		"002_add_notes.sql": &fstest.MapFile{
			Data: []byte("CREATE TABLE notes (id TEXT PRIMARY KEY, data TEXT NOT NULL);"),
		},
	}

	runner := NewRunner(db, migrationFS)
	applied, err := runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if applied != 2 {
		t.Errorf("expected 2 applied migrations, got %d", applied)
	}

	version, err := runner.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion failed: %v", err)
	}
	if version != 2 {
		t.Errorf("expected schema version 2, got %d", version)
	}

	if _, err := db.Exec("INSERT INTO notes (id, data) VALUES ('a', '{}')"); err != nil {
		t.Errorf("migrated table not usable: %v", err)
	}
}

func TestApplyMigrationsIdempotent(t *testing.T) {
	db := openTestDB(t)

	migrationFS := fstest.MapFS{
		"001_create_items.sql": &fstest.MapFile{
			Data: []byte("CREATE TABLE items (id TEXT PRIMARY KEY, data TEXT NOT NULL);"),
		},
	}

	runner := NewRunner(db, migrationFS)
	if _, err := runner.ApplyMigrations(nil); err != nil {
		t.Fatalf("first run failed: %v", err)
	}

	applied, err := runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if applied != 0 {
		t.Errorf("expected no migrations on second run, got %d", applied)
	}
}

func TestReadMigrationFilesRejectsBadNames(t *testing.T) {
	db := openTestDB(t)

	runner := NewRunner(db, fstest.MapFS{
		"init.sql": &fstest.MapFile{Data: []byte("SELECT 1;")},
	})
	if _, err := runner.ReadMigrationFiles(); err == nil {
		t.Error("expected error for filename without version prefix")
	}

	runner = NewRunner(db, fstest.MapFS{
		"001_a.sql": &fstest.MapFile{Data: []byte("SELECT 1;")},
		"001_b.sql": &fstest.MapFile{Data: []byte("SELECT 1;")},
	})
	if _, err := runner.ReadMigrationFiles(); err == nil {
		t.Error("expected error for duplicate versions")
	}
}

func TestValidateVersionRejectsNewerSchema(t *testing.T) {
	db := openTestDB(t)

	migrationFS := fstest.MapFS{
		"001_create_items.sql": &fstest.MapFile{
			Data: []byte("CREATE TABLE items (id TEXT PRIMARY KEY, data TEXT NOT NULL);"),
		},
	}

	runner := NewRunner(db, migrationFS)
	if _, err := runner.ApplyMigrations(nil); err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}

	if _, err := db.Exec("DELETE FROM schema_version"); err != nil {
		t.Fatalf("failed to clear version: %v", err)
	}
	if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (99)"); err != nil {
		t.Fatalf("failed to set version: %v", err)
	}

	if err := runner.ValidateVersion(); err == nil {
		t.Error("expected error when database schema is newer than binary")
	}
}
