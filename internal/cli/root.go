// Package cli holds the shared command context and helpers used by every
// subcommand package.
package cli

import (
	"strings"
	"time"

	"github.com/julianstephens/lifely/internal/assistant"
	"github.com/julianstephens/lifely/internal/backup"
	"github.com/julianstephens/lifely/internal/constants"
	"github.com/julianstephens/lifely/internal/logger"
	"github.com/julianstephens/lifely/internal/storage"
)

// Context is passed to every command's Run method.
type Context struct {
	Store     *storage.Store
	Assistant *assistant.Orchestrator

	// UsingPostgres disables local file backups, which only make sense
	// for the SQLite backend.
	UsingPostgres bool
}

// PerformAutomaticBackup snapshots the database when the auto-backup
// setting is on. Failures are logged, never surfaced; a missed backup
// must not interrupt the user's workflow.
func (c *Context) PerformAutomaticBackup() {
	if c.UsingPostgres {
		return
	}
	settings, err := c.Store.GetSettings()
	if err != nil || !settings.AutoBackup {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ParseWeekdays parses a comma-separated list of weekday names or
// indices (0=Sunday).
func ParseWeekdays(s string) ([]time.Weekday, error) {
	dayMap := map[string]time.Weekday{
		"sun": time.Sunday, "sunday": time.Sunday,
		"mon": time.Monday, "monday": time.Monday,
		"tue": time.Tuesday, "tuesday": time.Tuesday,
		"wed": time.Wednesday, "wednesday": time.Wednesday,
		"thu": time.Thursday, "thursday": time.Thursday,
		"fri": time.Friday, "friday": time.Friday,
		"sat": time.Saturday, "saturday": time.Saturday,
	}

	var weekdays []time.Weekday
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if wd, ok := dayMap[part]; ok {
			weekdays = append(weekdays, wd)
			continue
		}
		if len(part) == 1 && part[0] >= '0' && part[0] <= '6' {
			weekdays = append(weekdays, time.Weekday(part[0]-'0'))
			continue
		}
		return nil, &InvalidWeekdayError{Value: part}
	}
	return weekdays, nil
}

type InvalidWeekdayError struct {
	Value string
}

func (e *InvalidWeekdayError) Error() string {
	return "invalid weekday: " + e.Value
}

// FormatTimestamp renders a record timestamp for list output.
func FormatTimestamp(t time.Time) string {
	return t.Local().Format(constants.DateFormat + " " + constants.TimeFormat)
}
