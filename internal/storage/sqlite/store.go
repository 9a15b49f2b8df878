package sqlite

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/lifely/internal/migration"
	"github.com/julianstephens/lifely/internal/storage"
	"github.com/julianstephens/lifely/migrations"
)

// Store is the SQLite-backed storage engine. All five collections share a
// uniform layout: an id primary key, a JSON document column, and an
// optional sort_key column fed by the collection's secondary index.
type Store struct {
	path string
	db   *sql.DB
}

func New(path string) *Store {
	return &Store{
		path: path,
	}
}

func (s *Store) Init() error {
	// Repeated opens reuse the same live connection.
	if s.db != nil {
		return nil
	}

	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("%w: failed to create config directory: %v", storage.ErrUnavailable, err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("%w: failed to open database: %v", storage.ErrUnavailable, err)
	}
	s.db = db

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'lifely init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("%w: failed to open database: %v", storage.ErrUnavailable, err)
	}
	s.db = db

	// Validate schema version using embedded migrations
	if err := s.validateSchemaVersion(); err != nil {
		return err
	}

	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *Store) ConfigPath() string {
	return s.path
}

func (s *Store) Get(collection, id string) ([]byte, bool, error) {
	var data []byte
	row := s.db.QueryRow(fmt.Sprintf("SELECT data FROM %s WHERE id = ?", collection), id)
	if err := row.Scan(&data); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get %s record: %w", collection, err)
	}
	return data, true, nil
}

func (s *Store) GetAll(collection string) ([][]byte, error) {
	rows, err := s.db.Query(fmt.Sprintf("SELECT data FROM %s ORDER BY rowid", collection))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	defer rows.Close()

	var records [][]byte
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan %s record: %w", collection, err)
		}
		records = append(records, data)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", collection, err)
	}
	return records, nil
}

func (s *Store) Put(collection, id string, data []byte, sortKey *time.Time) error {
	_, err := s.db.Exec(fmt.Sprintf(`
		INSERT INTO %s (id, data, sort_key)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			data = excluded.data,
			sort_key = excluded.sort_key`, collection),
		id, data, formatSortKey(sortKey))
	if err != nil {
		return fmt.Errorf("failed to put %s record: %w", collection, err)
	}
	return nil
}

func (s *Store) Add(collection, id string, data []byte, sortKey *time.Time) error {
	_, err := s.db.Exec(
		fmt.Sprintf("INSERT INTO %s (id, data, sort_key) VALUES (?, ?, ?)", collection),
		id, data, formatSortKey(sortKey))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: %s/%s", storage.ErrDuplicateKey, collection, id)
		}
		return fmt.Errorf("failed to add %s record: %w", collection, err)
	}
	return nil
}

func (s *Store) Delete(collection, id string) error {
	// Deleting an absent key is not an error.
	if _, err := s.db.Exec(fmt.Sprintf("DELETE FROM %s WHERE id = ?", collection), id); err != nil {
		return fmt.Errorf("failed to delete %s record: %w", collection, err)
	}
	return nil
}

func (s *Store) Clear(collection string) error {
	if _, err := s.db.Exec(fmt.Sprintf("DELETE FROM %s", collection)); err != nil {
		return fmt.Errorf("failed to clear %s: %w", collection, err)
	}
	return nil
}

func formatSortKey(sortKey *time.Time) sql.NullString {
	if sortKey == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: sortKey.UTC().Format(time.RFC3339Nano), Valid: true}
}

func (s *Store) runMigrations() error {
	// Get the embedded SQLite migrations sub-filesystem
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}

	runner := migration.NewRunner(s.db, subFS)
	_, err = runner.ApplyMigrations(nil)
	return err
}

func (s *Store) validateSchemaVersion() error {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}

	runner := migration.NewRunner(s.db, subFS)
	return runner.ValidateVersion()
}
