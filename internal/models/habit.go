package models

import "time"

// Frequency is how often a habit goal resets.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// HabitLog is one recorded unit of progress. Logs are append-only and are
// not required to be time-sorted; aggregation buckets them by calendar day.
type HabitLog struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
	Notes string    `json:"notes,omitempty"`
}

// Habit is a tracked recurring goal with its full log history inline.
type Habit struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Goal        float64    `json:"goal"`
	Unit        string     `json:"unit"`
	Frequency   Frequency  `json:"frequency"`
	Logs        []HabitLog `json:"logs"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (h *Habit) Validate() error {
	if h.Name == "" {
		return &ValidationError{Field: "name", Reason: "cannot be empty"}
	}
	// Aggregation divides today's total by the goal, so a zero or negative
	// goal must never reach storage.
	if h.Goal < 1 {
		return &ValidationError{Field: "goal", Reason: "must be at least 1"}
	}
	switch h.Frequency {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
	default:
		return &ValidationError{Field: "frequency", Reason: "must be daily, weekly or monthly"}
	}
	return nil
}

// AddLog appends a progress entry and bumps UpdatedAt.
func (h *Habit) AddLog(log HabitLog) {
	h.Logs = append(h.Logs, log)
	if log.Date.After(h.UpdatedAt) {
		h.UpdatedAt = log.Date
	}
}
