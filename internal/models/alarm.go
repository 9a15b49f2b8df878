package models

import (
	"strings"
	"time"

	"github.com/julianstephens/lifely/internal/constants"
)

// Alarm is a time-of-day reminder. Days is only meaningful for recurring
// alarms; a non-recurring alarm fires once at the next occurrence of Time.
type Alarm struct {
	ID          string         `json:"id"`
	Time        string         `json:"time"` // HH:MM format
	Label       string         `json:"label"`
	Days        []time.Weekday `json:"days"` // 0-6, where 0 is Sunday
	IsEnabled   bool           `json:"is_enabled"`
	IsRecurring bool           `json:"is_recurring"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (a *Alarm) Validate() error {
	if a.Label == "" {
		return &ValidationError{Field: "label", Reason: "cannot be empty"}
	}
	if a.Time == "" {
		return &ValidationError{Field: "time", Reason: "cannot be empty"}
	}
	if _, err := time.Parse(constants.TimeFormat, a.Time); err != nil {
		return &ValidationError{Field: "time", Reason: "expected HH:MM format"}
	}
	// A weekday set on a one-shot alarm would silently never be consulted,
	// so reject it outright instead of leaving it to caller discipline.
	if !a.IsRecurring && len(a.Days) > 0 {
		return &ValidationError{Field: "days", Reason: "weekdays are only valid for recurring alarms"}
	}
	for _, d := range a.Days {
		if d < time.Sunday || d > time.Saturday {
			return &ValidationError{Field: "days", Reason: "weekday index must be between 0 and 6"}
		}
	}
	return nil
}

// IsDueOn reports whether the alarm should fire on the given day.
func (a *Alarm) IsDueOn(day time.Time) bool {
	if !a.IsEnabled {
		return false
	}
	if !a.IsRecurring {
		return true
	}
	// Recurring with no weekday restriction means every day.
	if len(a.Days) == 0 {
		return true
	}
	weekday := day.Weekday()
	for _, d := range a.Days {
		if d == weekday {
			return true
		}
	}
	return false
}

// FormatDays returns a human-readable description of the alarm schedule.
func (a *Alarm) FormatDays() string {
	if !a.IsRecurring {
		return "Once"
	}
	if len(a.Days) == 0 || len(a.Days) == 7 {
		return "Daily"
	}
	days := make([]string, len(a.Days))
	for i, d := range a.Days {
		days[i] = d.String()[:3]
	}
	return strings.Join(days, ", ")
}
