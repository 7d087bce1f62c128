package progress

import (
	"testing"
	"time"
)

func TestAggregateEmpty(t *testing.T) {
	p := Aggregate(nil, time.UTC)

	if len(p.WeekdayCounts) != 0 {
		t.Errorf("WeekdayCounts = %v, want empty", p.WeekdayCounts)
	}
	if len(p.HourCounts) != 0 {
		t.Errorf("HourCounts = %v, want empty", p.HourCounts)
	}
	if p.BestDay != "" {
		t.Errorf("BestDay = %q, want empty", p.BestDay)
	}
	if p.BestHour != BestHourNone {
		t.Errorf("BestHour = %d, want %d", p.BestHour, BestHourNone)
	}
}

func TestAggregateHours(t *testing.T) {
	// 2025-06-15 is a Sunday.
	completions := []time.Time{
		time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 16, 9, 30, 0, 0, time.UTC),
		time.Date(2025, 6, 17, 14, 0, 0, 0, time.UTC),
	}

	p := Aggregate(completions, time.UTC)

	if got := p.HourCounts[9]; got != 2 {
		t.Errorf("HourCounts[9] = %d, want 2", got)
	}
	if got := p.HourCounts[14]; got != 1 {
		t.Errorf("HourCounts[14] = %d, want 1", got)
	}
	if len(p.HourCounts) != 2 {
		t.Errorf("HourCounts has %d entries, want 2", len(p.HourCounts))
	}
	if p.BestHour != 9 {
		t.Errorf("BestHour = %d, want 9", p.BestHour)
	}
}

func TestAggregateWeekdays(t *testing.T) {
	completions := []time.Time{
		time.Date(2025, 6, 16, 7, 0, 0, 0, time.UTC),  // Monday
		time.Date(2025, 6, 23, 8, 0, 0, 0, time.UTC),  // Monday
		time.Date(2025, 6, 18, 19, 0, 0, 0, time.UTC), // Wednesday
	}

	p := Aggregate(completions, time.UTC)

	if got := p.WeekdayCounts["Monday"]; got != 2 {
		t.Errorf("WeekdayCounts[Monday] = %d, want 2", got)
	}
	if got := p.WeekdayCounts["Wednesday"]; got != 1 {
		t.Errorf("WeekdayCounts[Wednesday] = %d, want 1", got)
	}
	if p.BestDay != "Monday" {
		t.Errorf("BestDay = %q, want Monday", p.BestDay)
	}
}

func TestAggregateTieBreak(t *testing.T) {
	// Sunday and Monday each have one completion; hours 8 and 20 each have
	// one. The lowest weekday index and lowest hour must win.
	completions := []time.Time{
		time.Date(2025, 6, 15, 20, 0, 0, 0, time.UTC), // Sunday 20:00
		time.Date(2025, 6, 16, 8, 0, 0, 0, time.UTC),  // Monday 08:00
	}

	p := Aggregate(completions, time.UTC)

	if p.BestDay != "Sunday" {
		t.Errorf("BestDay = %q, want Sunday (tie broken by weekday order)", p.BestDay)
	}
	if p.BestHour != 8 {
		t.Errorf("BestHour = %d, want 8 (tie broken by lowest hour)", p.BestHour)
	}
}

func TestAggregateTimezone(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}

	// 01:00 UTC on Sunday is Saturday 21:00 in New York.
	completions := []time.Time{
		time.Date(2025, 6, 15, 1, 0, 0, 0, time.UTC),
	}

	p := Aggregate(completions, ny)

	if p.BestDay != "Saturday" {
		t.Errorf("BestDay = %q, want Saturday", p.BestDay)
	}
	if p.BestHour != 21 {
		t.Errorf("BestHour = %d, want 21", p.BestHour)
	}
}
