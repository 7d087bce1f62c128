// Package progress holds the pure calculators that turn an unordered set of
// completion instants into streaks, completion rates, and usage patterns.
// Every function takes "now" as an explicit parameter; nothing here reads
// the clock, so results are deterministic for a given input.
package progress

import (
	"sort"
	"time"

	"github.com/jmcalloway/stride/internal/constants"
	"github.com/jmcalloway/stride/internal/utils"
)

// distinctDays normalizes completion instants to calendar days in loc and
// returns the distinct day strings, unsorted.
func distinctDays(completions []time.Time, loc *time.Location) map[string]struct{} {
	days := make(map[string]struct{}, len(completions))
	for _, c := range completions {
		days[utils.DayString(c, loc)] = struct{}{}
	}
	return days
}

// CurrentStreak computes the length of the run of consecutive completed days
// ending at "now". The streak is alive if the most recent completed day is
// today or yesterday; a streak anchored on yesterday is still pending today's
// action and counts in full. Anything older means the streak is broken and
// the result is 0.
func CurrentStreak(completions []time.Time, now time.Time, loc *time.Location) int {
	if len(completions) == 0 {
		return 0
	}

	days := distinctDays(completions, loc)
	today := utils.StartOfDay(now, loc)

	// Anchor the walk on today, or on yesterday when today has no
	// completion yet (the streak is pending, not broken).
	anchor := today
	if _, ok := days[anchor.Format(constants.DateFormat)]; !ok {
		anchor = today.AddDate(0, 0, -1)
		if _, ok := days[anchor.Format(constants.DateFormat)]; !ok {
			return 0
		}
	}

	streak := 0
	for day := anchor; ; day = day.AddDate(0, 0, -1) {
		if _, ok := days[day.Format(constants.DateFormat)]; !ok {
			break
		}
		streak++
	}
	return streak
}

// LongestStreak computes the longest run of consecutive completed days
// anywhere in the habit's history. It has no reference point: a streak broken
// years ago counts the same as one that is still running. Returns 0 for an
// empty history, otherwise at least 1.
func LongestStreak(completions []time.Time, loc *time.Location) int {
	days := distinctDays(completions, loc)
	if len(days) == 0 {
		return 0
	}

	sorted := make([]string, 0, len(days))
	for d := range days {
		sorted = append(sorted, d)
	}
	sort.Strings(sorted)

	longest := 1
	run := 1
	for i := 1; i < len(sorted); i++ {
		prev, err := utils.ParseDateInLocation(sorted[i-1], loc)
		if err != nil {
			run = 1
			continue
		}
		// Calendar arithmetic, not duration arithmetic: a DST transition
		// day is not 24 hours long, so AddDate decides adjacency.
		if utils.DayString(prev.AddDate(0, 0, 1), loc) == sorted[i] {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	return longest
}
