package models

import "time"

// JournalEntry is a dated, tagged free-text record.
type JournalEntry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Date      time.Time `json:"date"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *JournalEntry) Validate() error {
	if e.Title == "" {
		return &ValidationError{Field: "title", Reason: "cannot be empty"}
	}
	if e.Content == "" {
		return &ValidationError{Field: "content", Reason: "cannot be empty"}
	}
	return nil
}

// HasTag reports whether the entry carries the given tag (case-sensitive).
func (e *JournalEntry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
