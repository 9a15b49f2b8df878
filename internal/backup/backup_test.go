package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func createTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "lifely.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec("CREATE TABLE habits (id TEXT PRIMARY KEY, data TEXT NOT NULL)"); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	if _, err := db.Exec("INSERT INTO habits (id, data) VALUES ('h1', '{\"name\":\"Water\"}')"); err != nil {
		t.Fatalf("failed to insert row: %v", err)
	}
	return dbPath
}

func TestCreateAndListBackups(t *testing.T) {
	dbPath := createTestDB(t)
	manager := NewManager(dbPath)

	backupPath, err := manager.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if _, err := os.Stat(backupPath); err != nil {
		t.Fatalf("backup file missing: %v", err)
	}

	backups, err := manager.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("expected 1 backup, got %d", len(backups))
	}
	if backups[0].Path != backupPath {
		t.Errorf("expected path %s, got %s", backupPath, backups[0].Path)
	}
	if backups[0].Size == 0 {
		t.Error("backup file should not be empty")
	}
}

func TestCreateBackupMissingDatabase(t *testing.T) {
	manager := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := manager.CreateBackup(); err == nil {
		t.Error("expected error for missing database")
	}
}

func TestBackupFilenameCollision(t *testing.T) {
	dbPath := createTestDB(t)
	manager := NewManager(dbPath)

	// Two backups in the same second must get distinct names.
	first, err := manager.CreateBackup()
	if err != nil {
		t.Fatalf("first backup failed: %v", err)
	}
	second, err := manager.CreateBackup()
	if err != nil {
		t.Fatalf("second backup failed: %v", err)
	}
	if first == second {
		t.Errorf("backups share a filename: %s", first)
	}
}

func TestParseBackupTimestamp(t *testing.T) {
	ts, ok := parseBackupTimestamp("lifely-20250310-070000.db")
	if !ok {
		t.Fatal("expected valid timestamp")
	}
	want := time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC)
	if !ts.Equal(want) {
		t.Errorf("expected %v, got %v", want, ts)
	}

	if _, ok := parseBackupTimestamp("lifely-20250310-070000-2.db"); !ok {
		t.Error("counter suffix should still parse")
	}
	if _, ok := parseBackupTimestamp("lifely-garbage.db"); ok {
		t.Error("invalid timestamp should not parse")
	}
}

func TestRestoreBackup(t *testing.T) {
	dbPath := createTestDB(t)
	manager := NewManager(dbPath)

	backupPath, err := manager.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	// Mutate the live database, then restore the snapshot.
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if _, err := db.Exec("DELETE FROM habits"); err != nil {
		t.Fatalf("failed to delete rows: %v", err)
	}
	db.Close()

	if err := manager.RestoreBackup(backupPath); err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}

	db, err = sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to reopen database: %v", err)
	}
	defer db.Close()
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM habits").Scan(&count); err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	if count != 1 {
		t.Errorf("expected restored row, got %d rows", count)
	}
}

func TestRestoreRejectsInvalidBackup(t *testing.T) {
	dbPath := createTestDB(t)
	manager := NewManager(dbPath)

	bogus := filepath.Join(t.TempDir(), "lifely-20250101-000000.db")
	if err := os.WriteFile(bogus, []byte("not a database"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := manager.RestoreBackup(bogus); err == nil {
		t.Error("expected error for invalid backup file")
	}

	if err := manager.RestoreBackup(filepath.Join(t.TempDir(), "missing.db")); err == nil {
		t.Error("expected error for missing backup file")
	}
}
