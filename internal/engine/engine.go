// Package engine orchestrates habit progress recalculation. Every completion
// mutation flows through here: the engine re-reads the habit's completion
// log, runs the pure calculators, and replaces the stored progress snapshot
// wholesale. Readers therefore always see a snapshot consistent as of the
// last mutation.
package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jmcalloway/stride/internal/errors"
	"github.com/jmcalloway/stride/internal/logger"
	"github.com/jmcalloway/stride/internal/models"
	"github.com/jmcalloway/stride/internal/progress"
	"github.com/jmcalloway/stride/internal/storage"
	"github.com/jmcalloway/stride/internal/utils"
)

// Store is the slice of the persistence contract the engine consumes.
type Store interface {
	storage.HabitStore
	storage.CompletionStore
}

// Engine coordinates the read-compute-write cycle around the progress
// calculators. The calculators themselves never read the clock; the engine
// resolves "now" once per operation from its clock function.
type Engine struct {
	store Store
	loc   *time.Location
	now   func() time.Time
}

// New creates an engine that computes calendar days in the given timezone
// and reads the real clock.
func New(store Store, loc *time.Location) *Engine {
	return NewWithClock(store, loc, time.Now)
}

// NewWithClock creates an engine with an injected clock, for deterministic tests.
func NewWithClock(store Store, loc *time.Location, now func() time.Time) *Engine {
	if loc == nil {
		loc = time.Local
	}
	return &Engine{
		store: store,
		loc:   loc,
		now:   now,
	}
}

// LogResult reports the outcome of a log attempt. AlreadyCompleted is a
// normal result, not an error: logging twice in one day is an expected user
// action.
type LogResult struct {
	AlreadyCompleted bool
	Completion       models.Completion
	Progress         models.Progress
}

// getOwnedHabit fetches a habit and verifies the caller owns it.
func (e *Engine) getOwnedHabit(habitID, userID string) (models.Habit, error) {
	habit, err := e.store.GetHabit(habitID)
	if err != nil {
		if err == storage.ErrNotFound {
			return models.Habit{}, errors.NotFoundf("habit %s", habitID)
		}
		return models.Habit{}, fmt.Errorf("get habit: %w", err)
	}
	if habit.UserID != userID {
		return models.Habit{}, errors.Unauthorizedf("habit %s is not owned by user %s", habitID, userID)
	}
	return habit, nil
}

// RecomputeProgress re-reads every completion for the habit, runs the streak
// and rate calculators, and overwrites the habit's progress snapshot in a
// single replace. On any error the prior snapshot is left untouched.
func (e *Engine) RecomputeProgress(habitID, userID string) (models.Progress, error) {
	if _, err := e.getOwnedHabit(habitID, userID); err != nil {
		return models.Progress{}, err
	}

	completions, err := e.store.GetCompletionsForHabit(habitID)
	if err != nil {
		return models.Progress{}, fmt.Errorf("list completions: %w", err)
	}

	now := e.now()
	snapshot := e.computeSnapshot(completions, now)

	if err := e.store.ReplaceProgress(habitID, snapshot); err != nil {
		return models.Progress{}, fmt.Errorf("replace progress: %w", err)
	}

	logger.Debug("Recomputed progress",
		"habit", habitID,
		"current_streak", snapshot.CurrentStreak,
		"longest_streak", snapshot.LongestStreak,
		"completion_rate", snapshot.CompletionRate)

	return snapshot, nil
}

func (e *Engine) computeSnapshot(completions []models.Completion, now time.Time) models.Progress {
	// Day is the credited calendar day and drives the streak and rate math.
	// CompletedAt is the logging instant: a backfilled day carries today's
	// instant, so feeding instants into the calculators would credit the
	// wrong day. CompletedAt only feeds LastCompletedAt here.
	days := make([]time.Time, 0, len(completions))
	var last *time.Time
	for _, c := range completions {
		day, err := utils.ParseDateInLocation(c.Day, e.loc)
		if err != nil {
			logger.Warn("Skipping completion with malformed day", "completion", c.ID, "day", c.Day)
			continue
		}
		days = append(days, day)
		if last == nil || c.CompletedAt.After(*last) {
			t := c.CompletedAt
			last = &t
		}
	}

	current := progress.CurrentStreak(days, now, e.loc)
	longest := progress.LongestStreak(days, e.loc)
	if current > longest {
		longest = current
	}

	return models.Progress{
		CurrentStreak:    current,
		LongestStreak:    longest,
		TotalCompletions: len(completions),
		CompletionRate:   progress.CompletionRate(days, now, e.loc),
		LastCompletedAt:  last,
	}
}

// LogCompletion records that the habit was performed on the given calendar
// day (empty day means today in the user's timezone), then recomputes
// progress. A day that is already logged yields AlreadyCompleted and leaves
// the stored snapshot exactly as it was.
func (e *Engine) LogCompletion(habitID, userID, day string) (LogResult, error) {
	habit, err := e.getOwnedHabit(habitID, userID)
	if err != nil {
		return LogResult{}, err
	}

	now := e.now()
	if day == "" {
		day = utils.DayString(now, e.loc)
	} else {
		if !utils.ValidateDateFormat(day) {
			return LogResult{}, fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", day)
		}
		if day > utils.DayString(now, e.loc) {
			return LogResult{}, fmt.Errorf("cannot log a completion for a future day: %s", day)
		}
	}

	// Pre-check is an optimization; the store's uniqueness constraint is the
	// final arbiter and closes the gap between check and insert.
	if _, err := e.store.GetCompletion(habitID, day); err == nil {
		return LogResult{AlreadyCompleted: true, Progress: habit.Progress}, nil
	} else if err != storage.ErrNotFound {
		return LogResult{}, fmt.Errorf("check completion: %w", err)
	}

	completion := models.Completion{
		ID:          uuid.New().String(),
		HabitID:     habitID,
		UserID:      userID,
		Day:         day,
		CompletedAt: now,
	}
	if err := e.store.AddCompletion(completion); err != nil {
		if err == storage.ErrDuplicateDay {
			logger.Debug("Duplicate completion raced past the pre-check", "habit", habitID, "day", day)
			return LogResult{AlreadyCompleted: true, Progress: habit.Progress}, nil
		}
		return LogResult{}, fmt.Errorf("insert completion: %w", err)
	}

	snapshot, err := e.RecomputeProgress(habitID, userID)
	if err != nil {
		return LogResult{}, err
	}

	return LogResult{Completion: completion, Progress: snapshot}, nil
}

// RemoveCompletion deletes every completion for (habit, day) and recomputes
// progress. Removing a day that has no completion is a no-op apart from the
// recompute.
func (e *Engine) RemoveCompletion(habitID, userID, day string) (int, models.Progress, error) {
	if _, err := e.getOwnedHabit(habitID, userID); err != nil {
		return 0, models.Progress{}, err
	}
	if !utils.ValidateDateFormat(day) {
		return 0, models.Progress{}, fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", day)
	}

	removed, err := e.store.DeleteCompletions(habitID, day)
	if err != nil {
		return 0, models.Progress{}, fmt.Errorf("delete completions: %w", err)
	}

	snapshot, err := e.RecomputeProgress(habitID, userID)
	if err != nil {
		return removed, models.Progress{}, err
	}

	return removed, snapshot, nil
}

// AnalyzeHabit builds the on-demand usage histograms for a habit. Unlike the
// progress snapshot these are never persisted.
func (e *Engine) AnalyzeHabit(habitID, userID string) (progress.Patterns, error) {
	if _, err := e.getOwnedHabit(habitID, userID); err != nil {
		return progress.Patterns{}, err
	}

	completions, err := e.store.GetCompletionsForHabit(habitID)
	if err != nil {
		return progress.Patterns{}, fmt.Errorf("list completions: %w", err)
	}

	instants := make([]time.Time, 0, len(completions))
	for _, c := range completions {
		instants = append(instants, c.CompletedAt)
	}

	return progress.Aggregate(instants, e.loc), nil
}

// HabitStatus is a habit joined with its freshly recomputed snapshot and
// today's state.
type HabitStatus struct {
	Habit     models.Habit
	DoneToday bool
	// AtRisk means the habit has a live streak that will break unless it is
	// completed before the day ends.
	AtRisk bool
}

// Status recomputes and returns the progress of every active habit owned by
// the user. Recomputing on read keeps now-dependent fields from going stale
// across day boundaries.
func (e *Engine) Status(userID string) ([]HabitStatus, error) {
	habits, err := e.store.GetAllHabits(false)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}

	today := utils.DayString(e.now(), e.loc)

	var statuses []HabitStatus
	for _, habit := range habits {
		if habit.UserID != userID {
			continue
		}

		snapshot, err := e.RecomputeProgress(habit.ID, userID)
		if err != nil {
			return nil, err
		}
		habit.Progress = snapshot

		doneToday := false
		if _, err := e.store.GetCompletion(habit.ID, today); err == nil {
			doneToday = true
		} else if err != storage.ErrNotFound {
			return nil, fmt.Errorf("check completion: %w", err)
		}

		statuses = append(statuses, HabitStatus{
			Habit:     habit,
			DoneToday: doneToday,
			AtRisk:    !doneToday && snapshot.CurrentStreak > 0,
		})
	}

	return statuses, nil
}
