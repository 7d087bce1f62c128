package storage

import (
	"errors"
	"net/url"
	"strings"

	"github.com/jmcalloway/stride/internal/models"
)

var (
	// ErrNotFound is returned when a requested record does not exist
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateDay is returned when inserting a completion for a
	// (habit, day) pair that already has one. The store's uniqueness
	// constraint is the authoritative source of this signal; callers'
	// existence pre-checks are an optimization only.
	ErrDuplicateDay = errors.New("completion already exists for this day")
)

// HabitStore is the habit side of the persistence collaborator.
type HabitStore interface {
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetHabitByName(name string) (models.Habit, error)
	GetAllHabits(includeInactive bool) ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	// DeleteHabit removes a habit and cascades to its completions.
	DeleteHabit(id string) error
	// ReplaceProgress overwrites the habit's progress snapshot in a single
	// statement; it never merges field by field.
	ReplaceProgress(habitID string, p models.Progress) error
}

// CompletionStore is the completion-log side of the persistence collaborator.
type CompletionStore interface {
	AddCompletion(models.Completion) error
	GetCompletion(habitID, day string) (models.Completion, error)
	GetCompletionsForHabit(habitID string) ([]models.Completion, error)
	// DeleteCompletions removes every completion matching (habitID, day) and
	// reports how many rows went away.
	DeleteCompletions(habitID, day string) (int, error)
	CountCompletions(habitID string) (int, error)
}

// SettingsStore persists application-wide settings.
type SettingsStore interface {
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error
}

// Provider is the full storage contract implemented by each backend.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error
	// Migrate applies pending schema migrations and reports how many were
	// applied. logFn receives per-migration progress messages.
	Migrate(logFn func(string)) (int, error)

	SettingsStore
	HabitStore
	CompletionStore

	// Utils
	GetConfigPath() string
}

// HasEmbeddedCredentials reports whether a PostgreSQL connection string
// carries a password inline. Credentials must come from the environment,
// .pgpass, or the OS keyring instead.
func HasEmbeddedCredentials(connStr string) bool {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		u, err := url.Parse(connStr)
		if err != nil {
			return false
		}
		if u.User != nil {
			if _, hasPassword := u.User.Password(); hasPassword {
				return true
			}
		}
		return false
	}

	// DSN format: space-separated key=value pairs.
	for _, part := range strings.Fields(connStr) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 && strings.EqualFold(kv[0], "password") {
			return true
		}
	}
	return false
}
