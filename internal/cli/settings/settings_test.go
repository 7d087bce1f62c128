package settings

import (
	"path/filepath"
	"testing"

	"github.com/jmcalloway/stride/internal/cli"
	"github.com/jmcalloway/stride/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, func()) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	ctx := &cli.Context{Store: store}

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}

	return ctx, cleanup
}

func TestSettingsCmd_List(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	cmd := &SettingsCmd{List: true}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("settings list failed: %v", err)
	}
}

func TestSettingsCmd_UpdateTimezone(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	tz := "America/New_York"
	cmd := &SettingsCmd{Timezone: &tz}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("settings update failed: %v", err)
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	if settings.Timezone != tz {
		t.Errorf("timezone = %q, want %q", settings.Timezone, tz)
	}
}

func TestSettingsCmd_InvalidTimezone(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	tz := "Mars/Olympus"
	cmd := &SettingsCmd{Timezone: &tz}
	if err := cmd.Run(ctx); err == nil {
		t.Error("settings update with invalid timezone did not fail")
	}
}

func TestSettingsCmd_ToggleInsight(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}

	newValue := !settings.InsightEnabled
	cmd := &SettingsCmd{InsightEnabled: &newValue}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("settings update failed: %v", err)
	}

	updated, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get updated settings: %v", err)
	}
	if updated.InsightEnabled != newValue {
		t.Errorf("insightEnabled = %v, want %v", updated.InsightEnabled, newValue)
	}
}

func TestSettingsCmd_NoChanges(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	cmd := &SettingsCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("settings with no flags failed: %v", err)
	}
}
