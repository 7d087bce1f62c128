package settings

import (
	"fmt"

	"github.com/jmcalloway/stride/internal/cli"
	"github.com/jmcalloway/stride/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone       *string `help:"IANA timezone for day boundaries (e.g. America/New_York, or Local)."`
	InsightModel   *string `help:"Chat model used for insight generation."`
	InsightEnabled *bool   `help:"Enable or disable insight generation."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Timezone:         %s\n", settings.Timezone)
		fmt.Printf("  Insight Model:    %s\n", settings.InsightModel)
		fmt.Printf("  Insight Enabled:  %v\n", settings.InsightEnabled)
		return nil
	}

	updated := false
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("invalid timezone %q", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.InsightModel != nil {
		settings.InsightModel = *c.InsightModel
		updated = true
	}
	if c.InsightEnabled != nil {
		settings.InsightEnabled = *c.InsightEnabled
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
