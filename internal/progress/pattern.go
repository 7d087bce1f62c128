package progress

import (
	"time"
)

// BestHourNone is the sentinel for "no data" in Patterns.BestHour.
const BestHourNone = -1

// Patterns holds on-demand usage histograms for a habit: how often each
// weekday and each hour of day sees a completion, and the arg-max of each.
// Unlike the stored progress snapshot these are computed per analysis
// request, never persisted.
type Patterns struct {
	WeekdayCounts map[string]int `json:"weekday_counts"`
	HourCounts    map[int]int    `json:"hour_counts"`
	BestDay       string         `json:"best_day,omitempty"`
	BestHour      int            `json:"best_hour"`
}

// Aggregate builds weekday and hour-of-day histograms from completion
// instants, normalized to the user's timezone. Ties on the arg-max are
// broken deterministically: the lowest weekday index (Sunday first) and the
// lowest hour win. Empty input yields empty maps, an empty BestDay, and
// BestHour = BestHourNone.
func Aggregate(completions []time.Time, loc *time.Location) Patterns {
	p := Patterns{
		WeekdayCounts: make(map[string]int),
		HourCounts:    make(map[int]int),
		BestHour:      BestHourNone,
	}

	weekdayTotals := make(map[time.Weekday]int)
	for _, c := range completions {
		local := c.In(loc)
		weekdayTotals[local.Weekday()]++
		p.HourCounts[local.Hour()]++
	}

	bestDayCount := 0
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		count, ok := weekdayTotals[wd]
		if !ok {
			continue
		}
		p.WeekdayCounts[wd.String()] = count
		if count > bestDayCount {
			bestDayCount = count
			p.BestDay = wd.String()
		}
	}

	bestHourCount := 0
	for hour := 0; hour < 24; hour++ {
		count, ok := p.HourCounts[hour]
		if !ok {
			continue
		}
		if count > bestHourCount {
			bestHourCount = count
			p.BestHour = hour
		}
	}

	return p
}
