package cli

import (
	"path/filepath"
	"testing"

	"github.com/jmcalloway/stride/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*Context, func()) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	ctx := &Context{Store: store}

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}

	return ctx, cleanup
}

func TestHabitAddCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	cmd := &HabitAddCmd{Name: "Morning run", Frequency: "daily", Cue: "alarm", Routine: "run 2km"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("habit add failed: %v", err)
	}

	habit, err := ctx.Store.GetHabitByName("Morning run")
	if err != nil {
		t.Fatalf("habit not stored: %v", err)
	}
	if !habit.Active {
		t.Error("new habit is not active")
	}
	if habit.Cue != "alarm" {
		t.Errorf("cue = %q, want %q", habit.Cue, "alarm")
	}

	// Adding the same name again must fail
	if err := cmd.Run(ctx); err == nil {
		t.Error("duplicate habit add did not fail")
	}
}

func TestHabitAddCmd_InvalidFrequency(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	cmd := &HabitAddCmd{Name: "Run", Frequency: "hourly"}
	if err := cmd.Run(ctx); err == nil {
		t.Error("habit add with invalid frequency did not fail")
	}
}

func TestHabitLogCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	add := &HabitAddCmd{Name: "Read", Frequency: "daily"}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("habit add failed: %v", err)
	}

	log := &HabitLogCmd{Name: "Read"}
	if err := log.Run(ctx); err != nil {
		t.Fatalf("habit log failed: %v", err)
	}

	habit, err := ctx.Store.GetHabitByName("Read")
	if err != nil {
		t.Fatalf("failed to get habit: %v", err)
	}
	if habit.Progress.CurrentStreak != 1 {
		t.Errorf("currentStreak = %d, want 1", habit.Progress.CurrentStreak)
	}
	if habit.Progress.TotalCompletions != 1 {
		t.Errorf("totalCompletions = %d, want 1", habit.Progress.TotalCompletions)
	}

	// Logging the same day twice is not an error
	if err := log.Run(ctx); err != nil {
		t.Errorf("second habit log failed: %v", err)
	}
	count, err := ctx.Store.CountCompletions(habit.ID)
	if err != nil {
		t.Fatalf("failed to count completions: %v", err)
	}
	if count != 1 {
		t.Errorf("completion count = %d, want 1", count)
	}
}

func TestHabitLogCmd_UnknownHabit(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	cmd := &HabitLogCmd{Name: "No such habit"}
	if err := cmd.Run(ctx); err == nil {
		t.Error("logging an unknown habit did not fail")
	}
}

func TestHabitUnlogCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	add := &HabitAddCmd{Name: "Stretch", Frequency: "daily"}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("habit add failed: %v", err)
	}
	log := &HabitLogCmd{Name: "Stretch"}
	if err := log.Run(ctx); err != nil {
		t.Fatalf("habit log failed: %v", err)
	}

	unlog := &HabitUnlogCmd{Name: "Stretch"}
	if err := unlog.Run(ctx); err != nil {
		t.Fatalf("habit unlog failed: %v", err)
	}

	habit, err := ctx.Store.GetHabitByName("Stretch")
	if err != nil {
		t.Fatalf("failed to get habit: %v", err)
	}
	if habit.Progress.TotalCompletions != 0 {
		t.Errorf("totalCompletions after unlog = %d, want 0", habit.Progress.TotalCompletions)
	}
	if habit.Progress.CurrentStreak != 0 {
		t.Errorf("currentStreak after unlog = %d, want 0", habit.Progress.CurrentStreak)
	}

	// Unlogging an empty day is a no-op, not an error
	if err := unlog.Run(ctx); err != nil {
		t.Errorf("unlog of empty day failed: %v", err)
	}
}

func TestHabitStatusCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	status := &HabitStatusCmd{}
	if err := status.Run(ctx); err != nil {
		t.Errorf("status with no habits failed: %v", err)
	}

	add := &HabitAddCmd{Name: "Meditate", Frequency: "daily"}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("habit add failed: %v", err)
	}
	log := &HabitLogCmd{Name: "Meditate"}
	if err := log.Run(ctx); err != nil {
		t.Fatalf("habit log failed: %v", err)
	}

	if err := status.Run(ctx); err != nil {
		t.Errorf("status failed: %v", err)
	}
}

func TestHabitReportCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	add := &HabitAddCmd{Name: "Journal", Frequency: "daily"}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("habit add failed: %v", err)
	}
	log := &HabitLogCmd{Name: "Journal"}
	if err := log.Run(ctx); err != nil {
		t.Fatalf("habit log failed: %v", err)
	}

	report := &HabitReportCmd{Name: "Journal"}
	if err := report.Run(ctx); err != nil {
		t.Errorf("report failed: %v", err)
	}
}

func TestHabitDeleteCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	add := &HabitAddCmd{Name: "Hydrate", Frequency: "daily"}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("habit add failed: %v", err)
	}
	log := &HabitLogCmd{Name: "Hydrate"}
	if err := log.Run(ctx); err != nil {
		t.Fatalf("habit log failed: %v", err)
	}

	habit, err := ctx.Store.GetHabitByName("Hydrate")
	if err != nil {
		t.Fatalf("failed to get habit: %v", err)
	}

	del := &HabitDeleteCmd{Name: "Hydrate", Yes: true}
	if err := del.Run(ctx); err != nil {
		t.Fatalf("habit delete failed: %v", err)
	}

	if _, err := ctx.Store.GetHabitByName("Hydrate"); err == nil {
		t.Error("habit still exists after delete")
	}
	count, err := ctx.Store.CountCompletions(habit.ID)
	if err != nil {
		t.Fatalf("failed to count completions: %v", err)
	}
	if count != 0 {
		t.Errorf("completions after delete = %d, want 0", count)
	}
}
