package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jmcalloway/stride/internal/engine"
	"github.com/jmcalloway/stride/internal/insight"
	"github.com/jmcalloway/stride/internal/storage"
	"github.com/jmcalloway/stride/internal/utils"
)

// Context carries the shared collaborators kong hands to every command.
type Context struct {
	Store storage.Provider
	// Insight is nil when no API key is configured; commands that need it
	// must check and explain how to enable it.
	Insight insight.Generator
}

// Location resolves the configured timezone.
func (c *Context) Location() (*time.Location, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q in settings: %w", settings.Timezone, err)
	}
	return loc, nil
}

// Engine builds a progress engine bound to the configured timezone.
func (c *Context) Engine() (*engine.Engine, error) {
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}
	return engine.New(c.Store, loc), nil
}

// UserID returns this installation's owner id, minting one on first use.
func (c *Context) UserID() (string, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return "", fmt.Errorf("failed to get settings: %w", err)
	}
	if settings.UserID == "" {
		settings.UserID = uuid.New().String()
		if err := c.Store.SaveSettings(settings); err != nil {
			return "", fmt.Errorf("failed to save settings: %w", err)
		}
	}
	return settings.UserID, nil
}
