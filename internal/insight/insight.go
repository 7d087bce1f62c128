// Package insight produces natural-language coaching text from habit
// statistics. The engine computes the numbers; this package only renders
// them into prompts and hands them to a language model.
package insight

import "context"

// Stats is the flattened habit summary handed to the generator. It carries
// everything the prompt needs so the generator never touches storage.
type Stats struct {
	HabitName        string
	Cue              string
	Routine          string
	Frequency        string
	CurrentStreak    int
	LongestStreak    int
	TotalCompletions int
	CompletionRate   int
	BestDay          string
	BestHour         int
	LastCompletedAt  string
}

// Suggestion is one proposed habit from the suggestion model.
type Suggestion struct {
	Name    string `json:"name"`
	Cue     string `json:"cue"`
	Routine string `json:"routine"`
	Reward  string `json:"reward"`
}

// Generator turns habit statistics into coaching text and new-habit ideas.
type Generator interface {
	// HabitInsight returns a short paragraph of feedback on the habit. The
	// returned text is opaque; callers store or display it as-is.
	HabitInsight(ctx context.Context, stats Stats) (string, error)

	// SuggestHabits proposes up to max new habits that complement the
	// user's existing ones. A model response that cannot be parsed yields
	// an empty list, not an error.
	SuggestHabits(ctx context.Context, existing []string, max int) ([]Suggestion, error)
}
