package constants

// Frequency represents how often a habit is meant to be performed
type Frequency string

const (
	AppName            = "stride"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/stride/stride.db"
	Version            = "v0.3.1"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// RateWindowDays is the trailing window, in days, over which the
	// completion rate is computed. The window ends today, inclusive.
	RateWindowDays = 30

	// Frequency constants
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
	FrequencyCustom Frequency = "custom"

	// Insight defaults
	DefaultInsightModel   = "gpt-4o-mini"
	DefaultMaxSuggestions = 5
)

// IsValidFrequency reports whether f is one of the supported frequencies
func IsValidFrequency(f Frequency) bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyCustom:
		return true
	}
	return false
}
