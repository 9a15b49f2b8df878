package progress

import (
	"testing"
	"time"

	"github.com/julianstephens/lifely/internal/models"
)

func TestTodayTotalBoundaries(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 30, 0, 0, time.Local)
	midnight := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)

	logs := []models.HabitLog{
		{Date: midnight, Value: 2},                             // exactly at start of day, counts
		{Date: midnight.Add(-time.Millisecond), Value: 100},    // just before midnight, yesterday
		{Date: now, Value: 3},                                  // mid-day
		{Date: midnight.AddDate(0, 0, 1), Value: 50},           // tomorrow's midnight, excluded
		{Date: midnight.AddDate(0, 0, 1).Add(-1), Value: 0.5},  // last instant of today
	}

	got := TodayTotal(logs, now)
	if got != 5.5 {
		t.Errorf("expected today's total 5.5, got %v", got)
	}
}

func TestRatio(t *testing.T) {
	tests := []struct {
		total, goal float64
		want        int
	}{
		{0, 10, 0},
		{3, 10, 30},
		{10, 10, 100},
		{25, 10, 100},
		{1, 3, 33},
		{2.5, 10, 25},
	}
	for _, tt := range tests {
		if got := Ratio(tt.total, tt.goal); got != tt.want {
			t.Errorf("Ratio(%v, %v) = %d, want %d", tt.total, tt.goal, got, tt.want)
		}
	}
}

func TestTrendDeterminism(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	today := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)

	logs := []models.HabitLog{
		{Date: today.Add(2 * time.Hour), Value: 3},
		{Date: today.AddDate(0, 0, -2).Add(20 * time.Hour), Value: 5},
	}

	trend := Trend(logs, now)
	if len(trend) != 7 {
		t.Fatalf("expected 7 trend points, got %d", len(trend))
	}

	last := trend[6]
	if last.Label != "Today" || last.Total != 3 {
		t.Errorf("expected final bucket Today=3, got %s=%v", last.Label, last.Total)
	}
	if trend[5].Label != "Yesterday" || trend[5].Total != 0 {
		t.Errorf("expected Yesterday=0, got %s=%v", trend[5].Label, trend[5].Total)
	}
	if trend[4].Total != 5 {
		t.Errorf("expected two-days-ago bucket 5, got %v", trend[4].Total)
	}
	for _, i := range []int{0, 1, 2, 3} {
		if trend[i].Total != 0 {
			t.Errorf("expected empty bucket at index %d, got %v", i, trend[i].Total)
		}
	}
}

func TestTrendLabels(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	trend := Trend(nil, now)

	if trend[0].Label != "03/04" {
		t.Errorf("expected oldest label 03/04, got %q", trend[0].Label)
	}
	if trend[4].Label != "03/08" {
		t.Errorf("expected short date label 03/08, got %q", trend[4].Label)
	}
	if trend[5].Label != "Yesterday" || trend[6].Label != "Today" {
		t.Errorf("expected Yesterday/Today suffix, got %q/%q", trend[5].Label, trend[6].Label)
	}
}

func TestForHabit(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	habit := models.Habit{
		Name: "Water",
		Goal: 8,
		Unit: "glasses",
		Logs: []models.HabitLog{
			{Date: now.Add(-time.Hour), Value: 4},
		},
	}

	report := ForHabit(habit, now)
	if report.TodayTotal != 4 {
		t.Errorf("expected today total 4, got %v", report.TodayTotal)
	}
	if report.Percent != 50 {
		t.Errorf("expected 50 percent, got %d", report.Percent)
	}
	if len(report.Trend) != 7 {
		t.Errorf("expected 7 trend points, got %d", len(report.Trend))
	}
}
