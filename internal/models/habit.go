package models

import (
	"time"

	"github.com/jmcalloway/stride/internal/constants"
)

// Habit represents a recurring practice owned by a single user
type Habit struct {
	ID          string              `json:"id"`
	UserID      string              `json:"user_id"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Cue         string              `json:"cue,omitempty"`
	Routine     string              `json:"routine,omitempty"`
	Reward      string              `json:"reward,omitempty"`
	Frequency   constants.Frequency `json:"frequency"`
	Active      bool                `json:"active"`
	Progress    Progress            `json:"progress"`
	AINotes     string              `json:"ai_notes,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// Completion records that a habit was performed on a specific calendar day.
// Day (YYYY-MM-DD, user timezone) is the uniqueness key: at most one
// completion may exist per (habit, day). Completions are immutable once
// created; a correction is modeled as remove + re-log.
type Completion struct {
	ID          string    `json:"id"`
	HabitID     string    `json:"habit_id"`
	UserID      string    `json:"user_id"`
	Day         string    `json:"day"` // YYYY-MM-DD format
	CompletedAt time.Time `json:"completed_at"`
}

// Progress is the derived summary of a habit's streaks, totals, and rate.
// It is never hand-edited: the engine replaces it wholesale after every
// completion mutation.
type Progress struct {
	CurrentStreak    int        `json:"current_streak"`
	LongestStreak    int        `json:"longest_streak"`
	TotalCompletions int        `json:"total_completions"`
	CompletionRate   int        `json:"completion_rate"` // 0-100
	LastCompletedAt  *time.Time `json:"last_completed_at,omitempty"`
}
