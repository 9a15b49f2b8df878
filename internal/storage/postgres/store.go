package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	pq "github.com/lib/pq"

	"github.com/julianstephens/lifely/internal/constants"
	"github.com/julianstephens/lifely/internal/logger"
	"github.com/julianstephens/lifely/internal/migration"
	"github.com/julianstephens/lifely/internal/storage"
	"github.com/julianstephens/lifely/migrations"
)

// Store is the PostgreSQL-backed storage engine. It mirrors the SQLite
// engine's layout, with an extra seq column standing in for rowid so
// unindexed reads still come back in insertion order.
type Store struct {
	connStr string
	db      *sql.DB
}

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

func New(connStr string) *Store {
	s := &Store{
		connStr: connStr,
	}
	s.ensureSearchPath()
	return s
}

func (s *Store) ensureSearchPath() {
	// All tables live in the lifely schema so a shared database stays clean.
	if strings.HasPrefix(s.connStr, "postgres://") || strings.HasPrefix(s.connStr, "postgresql://") {
		u, err := url.Parse(s.connStr)
		if err != nil {
			logger.Warn("Failed to parse Postgres connection string", "error", err)
			return
		}
		q := u.Query()
		if q.Get("search_path") == "" {
			q.Set("search_path", constants.AppName)
			u.RawQuery = q.Encode()
			s.connStr = u.String()
		}
	} else {
		if !hasDSNParam(s.connStr, "search_path") {
			s.connStr = strings.TrimSpace(s.connStr) + " search_path=" + constants.AppName
		}
	}
}

// hasDSNParam reports whether a DSN-style connection string contains the
// given key (case-insensitive).
func hasDSNParam(connStr, key string) bool {
	for _, part := range strings.Fields(connStr) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 && strings.EqualFold(kv[0], key) {
			return true
		}
	}
	return false
}

func hasSSLMode(connStr string) bool {
	if u, err := url.Parse(connStr); err == nil && u.Scheme != "" {
		for key := range u.Query() {
			if strings.EqualFold(key, "sslmode") {
				return true
			}
		}
	}
	return hasDSNParam(connStr, "sslmode")
}

// ValidateConnString checks that a connection string is a valid PostgreSQL
// URI or DSN and carries no embedded password. Credentials belong in the
// system keyring, never on disk or in shell history.
func ValidateConnString(connStr string) (bool, error) {
	if strings.TrimSpace(connStr) == "" {
		return false, fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}

	if _, err := pq.NewConnector(connStr); err != nil {
		return false, fmt.Errorf("%w: invalid connection string format: %v", ErrInvalidConnectionString, err)
	}

	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		parsedURL, err := url.Parse(connStr)
		if err != nil {
			return false, fmt.Errorf("%w: failed to parse connection URL: %v", ErrInvalidConnectionString, err)
		}

		if _, isSet := parsedURL.User.Password(); isSet {
			return false, ErrEmbeddedCredentials
		}

		if parsedURL.Host == "" && parsedURL.User == nil && (parsedURL.Path == "" || parsedURL.Path == "/") {
			return false, fmt.Errorf("%w: connection URL is incomplete", ErrInvalidConnectionString)
		}
	} else {
		if hasDSNParam(connStr, "password") {
			return false, ErrEmbeddedCredentials
		}
	}

	return true, nil
}

func (s *Store) open() (*sql.DB, error) {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		if strings.Contains(err.Error(), "SSL is not enabled on the server") && !hasSSLMode(s.connStr) {
			return nil, fmt.Errorf("%w: failed to connect to database: %v (hint: try adding ?sslmode=disable to your connection string)", storage.ErrUnavailable, err)
		}
		return nil, fmt.Errorf("%w: failed to connect to database: %v", storage.ErrUnavailable, err)
	}

	return db, nil
}

func (s *Store) Init() error {
	if s.db != nil {
		return nil
	}

	db, err := s.open()
	if err != nil {
		return err
	}

	if _, err := db.Exec("CREATE SCHEMA IF NOT EXISTS " + constants.AppName); err != nil {
		db.Close()
		return fmt.Errorf("failed to create schema: %w", err)
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

	db, err := s.open()
	if err != nil {
		return err
	}
	s.db = db

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
	// Never expose the connection string; it may name hosts and users.
	return "postgresql"
}

func (s *Store) Get(collection, id string) ([]byte, bool, error) {
	var data []byte
	row := s.db.QueryRow(fmt.Sprintf("SELECT data FROM %s WHERE id = $1", collection), id)
	if err := row.Scan(&data); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get %s record: %w", collection, err)
	}
	return data, true, nil
}

func (s *Store) GetAll(collection string) ([][]byte, error) {
	rows, err := s.db.Query(fmt.Sprintf("SELECT data FROM %s ORDER BY seq", collection))
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
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			data = EXCLUDED.data,
			sort_key = EXCLUDED.sort_key`, collection),
		id, data, formatSortKey(sortKey))
	if err != nil {
		return fmt.Errorf("failed to put %s record: %w", collection, err)
	}
	return nil
}

func (s *Store) Add(collection, id string, data []byte, sortKey *time.Time) error {
	_, err := s.db.Exec(
		fmt.Sprintf("INSERT INTO %s (id, data, sort_key) VALUES ($1, $2, $3)", collection),
		id, data, formatSortKey(sortKey))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return fmt.Errorf("%w: %s/%s", storage.ErrDuplicateKey, collection, id)
		}
		return fmt.Errorf("failed to add %s record: %w", collection, err)
	}
	return nil
}

func (s *Store) Delete(collection, id string) error {
	// Deleting an absent key is not an error.
	if _, err := s.db.Exec(fmt.Sprintf("DELETE FROM %s WHERE id = $1", collection), id); err != nil {
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
	subFS, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return fmt.Errorf("failed to access postgres migrations: %w", err)
	}

	runner := migration.NewRunner(s.db, subFS)
	_, err = runner.ApplyMigrations(func(msg string) {
		logger.Info(msg)
	})
	return err
}

func (s *Store) validateSchemaVersion() error {
	subFS, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return fmt.Errorf("failed to access postgres migrations: %w", err)
	}

	runner := migration.NewRunner(s.db, subFS)
	return runner.ValidateVersion()
}
