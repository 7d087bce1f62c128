package system

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmcalloway/stride/internal/cli"
)

type InitCmd struct {
	Force bool `help:"Force reset by deleting the existing database before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	dbPath := ctx.Store.GetConfigPath()

	if c.Force && !strings.HasPrefix(dbPath, "postgres") {
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}

	shown := dbPath
	if abs, err := filepath.Abs(dbPath); err == nil && !strings.HasPrefix(dbPath, "postgres") {
		shown = abs
	}
	fmt.Printf("Initialized stride storage at: %s\n", shown)
	fmt.Println("Add your first habit with 'stride habit add <name>'.")
	return nil
}
