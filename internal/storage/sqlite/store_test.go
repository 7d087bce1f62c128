package sqlite

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/jmcalloway/stride/internal/constants"
	"github.com/jmcalloway/stride/internal/models"
	"github.com/jmcalloway/stride/internal/storage"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store := NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})

	return store
}

func testHabit(name string) models.Habit {
	now := time.Now().UTC().Truncate(time.Second)
	return models.Habit{
		ID:        uuid.New().String(),
		UserID:    "user-1",
		Name:      name,
		Frequency: constants.FrequencyDaily,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestHabitRoundTrip(t *testing.T) {
	store := setupTestStore(t)

	habit := testHabit("meditate")
	habit.Description = "ten minutes, first thing"
	habit.Cue = "after coffee"
	habit.Routine = "sit on the mat"
	habit.Reward = "calm morning"

	if err := store.AddHabit(habit); err != nil {
		t.Fatalf("AddHabit() failed: %v", err)
	}

	got, err := store.GetHabit(habit.ID)
	if err != nil {
		t.Fatalf("GetHabit() failed: %v", err)
	}
	if got.Name != habit.Name || got.UserID != habit.UserID || got.Cue != habit.Cue {
		t.Errorf("GetHabit() = %+v, want fields from %+v", got, habit)
	}
	if got.Frequency != constants.FrequencyDaily {
		t.Errorf("Frequency = %q, want %q", got.Frequency, constants.FrequencyDaily)
	}
	if !got.Active {
		t.Error("Active = false, want true")
	}

	byName, err := store.GetHabitByName("meditate")
	if err != nil {
		t.Fatalf("GetHabitByName() failed: %v", err)
	}
	if byName.ID != habit.ID {
		t.Errorf("GetHabitByName().ID = %q, want %q", byName.ID, habit.ID)
	}
}

func TestGetHabitNotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.GetHabit("no-such-id")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetHabit() error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestAddCompletionDuplicateDay(t *testing.T) {
	store := setupTestStore(t)

	habit := testHabit("journal")
	if err := store.AddHabit(habit); err != nil {
		t.Fatalf("AddHabit() failed: %v", err)
	}

	completion := models.Completion{
		ID:          uuid.New().String(),
		HabitID:     habit.ID,
		UserID:      habit.UserID,
		Day:         "2025-06-15",
		CompletedAt: time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC),
	}
	if err := store.AddCompletion(completion); err != nil {
		t.Fatalf("AddCompletion() failed: %v", err)
	}

	// Second insert for the same (habit, day) must hit the uniqueness
	// constraint even though the row ID differs.
	dup := completion
	dup.ID = uuid.New().String()
	dup.CompletedAt = dup.CompletedAt.Add(4 * time.Hour)
	err := store.AddCompletion(dup)
	if !errors.Is(err, storage.ErrDuplicateDay) {
		t.Errorf("AddCompletion() duplicate error = %v, want %v", err, storage.ErrDuplicateDay)
	}

	count, err := store.CountCompletions(habit.ID)
	if err != nil {
		t.Fatalf("CountCompletions() failed: %v", err)
	}
	if count != 1 {
		t.Errorf("CountCompletions() = %d, want 1", count)
	}
}

func TestCompletionLifecycle(t *testing.T) {
	store := setupTestStore(t)

	habit := testHabit("run")
	if err := store.AddHabit(habit); err != nil {
		t.Fatalf("AddHabit() failed: %v", err)
	}

	days := []string{"2025-06-13", "2025-06-14", "2025-06-15"}
	for _, day := range days {
		completedAt, _ := time.Parse("2006-01-02", day)
		c := models.Completion{
			ID:          uuid.New().String(),
			HabitID:     habit.ID,
			UserID:      habit.UserID,
			Day:         day,
			CompletedAt: completedAt.Add(7 * time.Hour),
		}
		if err := store.AddCompletion(c); err != nil {
			t.Fatalf("AddCompletion(%s) failed: %v", day, err)
		}
	}

	got, err := store.GetCompletion(habit.ID, "2025-06-14")
	if err != nil {
		t.Fatalf("GetCompletion() failed: %v", err)
	}
	if got.Day != "2025-06-14" {
		t.Errorf("GetCompletion().Day = %q, want 2025-06-14", got.Day)
	}

	all, err := store.GetCompletionsForHabit(habit.ID)
	if err != nil {
		t.Fatalf("GetCompletionsForHabit() failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("GetCompletionsForHabit() returned %d rows, want 3", len(all))
	}

	removed, err := store.DeleteCompletions(habit.ID, "2025-06-14")
	if err != nil {
		t.Fatalf("DeleteCompletions() failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("DeleteCompletions() removed %d rows, want 1", removed)
	}

	if _, err := store.GetCompletion(habit.ID, "2025-06-14"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetCompletion() after delete error = %v, want %v", err, storage.ErrNotFound)
	}

	// Deleting a day with no completions is a no-op, not an error.
	removed, err = store.DeleteCompletions(habit.ID, "2025-06-14")
	if err != nil {
		t.Fatalf("DeleteCompletions() on empty day failed: %v", err)
	}
	if removed != 0 {
		t.Errorf("DeleteCompletions() on empty day removed %d rows, want 0", removed)
	}
}

func TestDeleteHabitCascades(t *testing.T) {
	store := setupTestStore(t)

	habit := testHabit("stretch")
	if err := store.AddHabit(habit); err != nil {
		t.Fatalf("AddHabit() failed: %v", err)
	}
	c := models.Completion{
		ID:          uuid.New().String(),
		HabitID:     habit.ID,
		UserID:      habit.UserID,
		Day:         "2025-06-15",
		CompletedAt: time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC),
	}
	if err := store.AddCompletion(c); err != nil {
		t.Fatalf("AddCompletion() failed: %v", err)
	}

	if err := store.DeleteHabit(habit.ID); err != nil {
		t.Fatalf("DeleteHabit() failed: %v", err)
	}

	if _, err := store.GetHabit(habit.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetHabit() after delete error = %v, want %v", err, storage.ErrNotFound)
	}
	count, err := store.CountCompletions(habit.ID)
	if err != nil {
		t.Fatalf("CountCompletions() failed: %v", err)
	}
	if count != 0 {
		t.Errorf("CountCompletions() after cascade = %d, want 0", count)
	}
}

func TestReplaceProgress(t *testing.T) {
	store := setupTestStore(t)

	habit := testHabit("read")
	if err := store.AddHabit(habit); err != nil {
		t.Fatalf("AddHabit() failed: %v", err)
	}

	lastCompleted := time.Date(2025, 6, 15, 21, 30, 0, 0, time.UTC)
	p := models.Progress{
		CurrentStreak:    4,
		LongestStreak:    9,
		TotalCompletions: 31,
		CompletionRate:   47,
		LastCompletedAt:  &lastCompleted,
	}
	if err := store.ReplaceProgress(habit.ID, p); err != nil {
		t.Fatalf("ReplaceProgress() failed: %v", err)
	}

	got, err := store.GetHabit(habit.ID)
	if err != nil {
		t.Fatalf("GetHabit() failed: %v", err)
	}
	if got.Progress.CurrentStreak != 4 || got.Progress.LongestStreak != 9 ||
		got.Progress.TotalCompletions != 31 || got.Progress.CompletionRate != 47 {
		t.Errorf("Progress after replace = %+v, want %+v", got.Progress, p)
	}
	if got.Progress.LastCompletedAt == nil || !got.Progress.LastCompletedAt.Equal(lastCompleted) {
		t.Errorf("LastCompletedAt = %v, want %v", got.Progress.LastCompletedAt, lastCompleted)
	}

	if err := store.ReplaceProgress("no-such-habit", p); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("ReplaceProgress() for missing habit error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestDefaultSettings(t *testing.T) {
	store := setupTestStore(t)

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() failed: %v", err)
	}
	if settings.Timezone != "Local" {
		t.Errorf("default Timezone = %q, want Local", settings.Timezone)
	}
	if settings.InsightModel != constants.DefaultInsightModel {
		t.Errorf("default InsightModel = %q, want %q", settings.InsightModel, constants.DefaultInsightModel)
	}
	if !settings.InsightEnabled {
		t.Error("default InsightEnabled = false, want true")
	}

	settings.Timezone = "Europe/London"
	settings.UserID = "user-42"
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings() failed: %v", err)
	}

	got, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() after save failed: %v", err)
	}
	if got.Timezone != "Europe/London" || got.UserID != "user-42" {
		t.Errorf("GetSettings() = %+v, want timezone Europe/London and user user-42", got)
	}
}
