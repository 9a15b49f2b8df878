package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/lifely/internal/constants"
	"github.com/julianstephens/lifely/internal/models"
)

var (
	// ErrUnavailable is returned when the backing database cannot be
	// opened or created.
	ErrUnavailable = errors.New("persistent storage is unavailable")

	// ErrDuplicateKey is returned by Add when a record with the same id
	// already exists. This indicates an id-generation bug, not user error.
	ErrDuplicateKey = errors.New("record already exists")
)

// Engine is the driver-level contract implemented by the SQLite and
// PostgreSQL backends. Records are opaque JSON documents keyed by id;
// sortKey, when non-nil, is promoted to an indexed column for ordered
// retrieval. Every operation is atomic per record.
type Engine interface {
	// Init opens (creating if necessary) the database and applies
	// pending schema migrations. Calling Init on an open engine is a
	// no-op; the same live connection is reused for the process lifetime.
	Init() error
	// Load opens an existing database without migrating, failing if the
	// schema version is ahead of this binary.
	Load() error
	Close() error

	// ConfigPath identifies the backing store for diagnostics and backups.
	ConfigPath() string

	Get(collection, id string) ([]byte, bool, error)
	// GetAll returns every record in insertion order. Callers impose
	// their own sort; physical order is never load-bearing.
	GetAll(collection string) ([][]byte, error)
	Put(collection, id string, data []byte, sortKey *time.Time) error
	Add(collection, id string, data []byte, sortKey *time.Time) error
	Delete(collection, id string) error
	Clear(collection string) error
}

// Setting is one persisted settings record. The settings collection holds
// one record per setting key rather than a single blob, so partially
// written settings still merge cleanly with defaults on read.
type Setting struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// Store is the typed view over an Engine: five collections with fixed
// schemas, shared by every feature and by the chat orchestrator. Construct
// one per process and pass it down; it is never reopened mid-flight.
type Store struct {
	engine Engine

	Chats    *Collection[models.ChatSession]
	Journal  *Collection[models.JournalEntry]
	Habits   *Collection[models.Habit]
	Alarms   *Collection[models.Alarm]
	Settings *Collection[Setting]
}

// New wires the five collection schemas onto the given engine. Chats carry
// a secondary index on their update time and journal entries on their
// entry date; the remaining collections are key-only.
func New(engine Engine) *Store {
	return &Store{
		engine: engine,
		Chats: NewCollection(engine, constants.CollectionChats,
			func(s *models.ChatSession) string { return s.ID },
			func(s *models.ChatSession) time.Time { return s.UpdatedAt }),
		Journal: NewCollection(engine, constants.CollectionJournal,
			func(e *models.JournalEntry) string { return e.ID },
			func(e *models.JournalEntry) time.Time { return e.Date }),
		Habits: NewCollection(engine, constants.CollectionHabits,
			func(h *models.Habit) string { return h.ID }, nil),
		Alarms: NewCollection(engine, constants.CollectionAlarms,
			func(a *models.Alarm) string { return a.ID }, nil),
		Settings: NewCollection(engine, constants.CollectionSettings,
			func(s *Setting) string { return s.ID }, nil),
	}
}

// Init opens the store and seeds default settings on first run.
func (s *Store) Init() error {
	if err := s.engine.Init(); err != nil {
		return err
	}

	existing, err := s.Settings.GetAll()
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	if len(existing) == 0 {
		if err := s.SaveSettings(models.DefaultSettings()); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}
	return nil
}

func (s *Store) Load() error  { return s.engine.Load() }
func (s *Store) Close() error { return s.engine.Close() }

func (s *Store) GetConfigPath() string { return s.engine.ConfigPath() }

// GetSettings merges the persisted settings subset over the documented
// defaults. Missing keys take their default value.
func (s *Store) GetSettings() (models.Settings, error) {
	records, err := s.Settings.GetAll()
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}

	data := make(map[string]string, len(records))
	for _, r := range records {
		data[r.ID] = r.Value
	}
	return models.MapToSettings(data)
}

// SaveSettings writes one record per setting key.
func (s *Store) SaveSettings(settings models.Settings) error {
	for key, value := range models.SettingsToMap(settings) {
		if err := s.Settings.Put(Setting{ID: key, Value: value}); err != nil {
			return fmt.Errorf("failed to save setting %s: %w", key, err)
		}
	}
	return nil
}

// Wipe clears chats, journal entries, habits and alarms. Settings are
// deliberately preserved.
func (s *Store) Wipe() error {
	for _, collection := range []string{
		constants.CollectionChats,
		constants.CollectionJournal,
		constants.CollectionHabits,
		constants.CollectionAlarms,
	} {
		if err := s.engine.Clear(collection); err != nil {
			return fmt.Errorf("failed to clear %s: %w", collection, err)
		}
	}
	return nil
}
