package progress

import (
	"math"
	"time"

	"github.com/jmcalloway/stride/internal/constants"
	"github.com/jmcalloway/stride/internal/utils"
)

// CompletionRate computes the percentage of days with a completion over the
// trailing window of constants.RateWindowDays days ending today (inclusive),
// in the user's timezone. Completions are deduplicated per calendar day, so
// a day counts once no matter how many times it was logged upstream.
// Returns an integer in [0, 100]; an empty window yields 0.
func CompletionRate(completions []time.Time, now time.Time, loc *time.Location) int {
	if len(completions) == 0 {
		return 0
	}

	today := utils.StartOfDay(now, loc)
	cutoff := today.AddDate(0, 0, -constants.RateWindowDays)

	counted := make(map[string]struct{})
	for _, c := range completions {
		day := utils.StartOfDay(c, loc)
		if day.Before(cutoff) || day.After(today) {
			continue
		}
		counted[day.Format(constants.DateFormat)] = struct{}{}
	}

	if len(counted) == 0 {
		return 0
	}

	rate := int(math.Round(float64(len(counted)) / float64(constants.RateWindowDays) * 100))
	if rate > 100 {
		rate = 100
	}
	return rate
}
