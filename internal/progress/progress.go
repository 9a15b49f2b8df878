// Package progress computes habit completion ratios and trend series from a
// habit's log history. Everything here is pure; callers pass "now" so
// day-boundary behavior is deterministic under test.
package progress

import (
	"math"
	"time"

	"github.com/julianstephens/lifely/internal/constants"
	"github.com/julianstephens/lifely/internal/models"
)

// TrendPoint is one day's aggregated total within a trend window.
type TrendPoint struct {
	Label string
	Total float64
}

// TrendDays is the length of the trend window, ending today.
const TrendDays = 7

// startOfDay truncates t to midnight in its own location. Calendar-day
// bucketing always happens in the viewer's local time zone.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// sumWindow totals log values with timestamps in [start, start+24h).
func sumWindow(logs []models.HabitLog, start time.Time) float64 {
	end := start.AddDate(0, 0, 1)
	var total float64
	for _, l := range logs {
		if !l.Date.Before(start) && l.Date.Before(end) {
			total += l.Value
		}
	}
	return total
}

// TodayTotal sums log values recorded during the current calendar day.
// A log stamped exactly at midnight counts toward that day.
func TodayTotal(logs []models.HabitLog, now time.Time) float64 {
	return sumWindow(logs, startOfDay(now))
}

// Ratio converts a total against a goal into a completion percentage,
// floored and capped at 100. Goals below 1 are rejected at habit creation,
// so goal is always positive here.
func Ratio(total, goal float64) int {
	pct := int(math.Floor(total / goal * 100))
	if pct > 100 {
		return 100
	}
	return pct
}

// Trend returns the last TrendDays calendar days of totals, oldest first,
// ending with today's bucket. Days without logs contribute a zero total.
// The two most recent buckets are labeled "Today" and "Yesterday"; older
// buckets carry a short MM/DD date.
func Trend(logs []models.HabitLog, now time.Time) []TrendPoint {
	today := startOfDay(now)
	points := make([]TrendPoint, 0, TrendDays)
	for offset := TrendDays - 1; offset >= 0; offset-- {
		day := today.AddDate(0, 0, -offset)
		label := day.Format(constants.ShortDateFormat)
		switch offset {
		case 0:
			label = "Today"
		case 1:
			label = "Yesterday"
		}
		points = append(points, TrendPoint{
			Label: label,
			Total: sumWindow(logs, day),
		})
	}
	return points
}

// Report bundles the aggregates a habit view needs.
type Report struct {
	TodayTotal float64
	Percent    int
	Trend      []TrendPoint
}

// ForHabit computes the full progress report for one habit.
func ForHabit(habit models.Habit, now time.Time) Report {
	total := TodayTotal(habit.Logs, now)
	return Report{
		TodayTotal: total,
		Percent:    Ratio(total, habit.Goal),
		Trend:      Trend(habit.Logs, now),
	}
}
