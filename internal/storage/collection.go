package storage

import (
	"encoding/json"
	"fmt"
	"time"
)

// Collection is a typed view over one engine collection. The id function
// extracts the primary key from a record; indexed, when non-nil, extracts
// the secondary sort timestamp. Record shapes are fixed once the store is
// opened.
type Collection[T any] struct {
	engine  Engine
	name    string
	id      func(*T) string
	indexed func(*T) time.Time
}

// NewCollection binds a record type to an engine collection. Pass a nil
// indexed function for collections without a secondary index.
func NewCollection[T any](engine Engine, name string, id func(*T) string, indexed func(*T) time.Time) *Collection[T] {
	return &Collection[T]{
		engine:  engine,
		name:    name,
		id:      id,
		indexed: indexed,
	}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string { return c.name }

// Get returns the record for the given key. A missing key is not an
// error: found is false and err is nil.
func (c *Collection[T]) Get(id string) (record T, found bool, err error) {
	data, found, err := c.engine.Get(c.name, id)
	if err != nil || !found {
		return record, false, err
	}
	if err := json.Unmarshal(data, &record); err != nil {
		return record, false, fmt.Errorf("failed to decode %s record %s: %w", c.name, id, err)
	}
	return record, true, nil
}

// GetAll returns every record in insertion order.
func (c *Collection[T]) GetAll() ([]T, error) {
	rows, err := c.engine.GetAll(c.name)
	if err != nil {
		return nil, err
	}

	records := make([]T, 0, len(rows))
	for _, data := range rows {
		var record T
		if err := json.Unmarshal(data, &record); err != nil {
			return nil, fmt.Errorf("failed to decode %s record: %w", c.name, err)
		}
		records = append(records, record)
	}
	return records, nil
}

// Put upserts the record by key, overwriting any existing value entirely.
func (c *Collection[T]) Put(record T) error {
	data, sortKey, err := c.encode(&record)
	if err != nil {
		return err
	}
	return c.engine.Put(c.name, c.id(&record), data, sortKey)
}

// Add inserts the record, failing with ErrDuplicateKey if the key exists.
func (c *Collection[T]) Add(record T) error {
	data, sortKey, err := c.encode(&record)
	if err != nil {
		return err
	}
	return c.engine.Add(c.name, c.id(&record), data, sortKey)
}

// Delete removes the record. Deleting an absent key is not an error.
func (c *Collection[T]) Delete(id string) error {
	return c.engine.Delete(c.name, id)
}

// Clear removes every record in this collection and no other.
func (c *Collection[T]) Clear() error {
	return c.engine.Clear(c.name)
}

func (c *Collection[T]) encode(record *T) ([]byte, *time.Time, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode %s record: %w", c.name, err)
	}
	var sortKey *time.Time
	if c.indexed != nil {
		t := c.indexed(record)
		sortKey = &t
	}
	return data, sortKey, nil
}
