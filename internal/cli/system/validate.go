package system

import (
	"fmt"

	"github.com/jmcalloway/stride/internal/cli"
	"github.com/jmcalloway/stride/internal/validation"
)

// ValidateCmd checks the stored habits and settings for consistency problems.
type ValidateCmd struct{}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Store.GetAllHabits(true)
	if err != nil {
		return err
	}

	result := validation.ValidateHabits(habits)

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	if err := validation.ValidateSettings(settings); err != nil {
		result.Problems = append(result.Problems, validation.Problem{
			Type:        validation.ProblemInvalidTimezone,
			Description: err.Error(),
		})
	}

	fmt.Print(result.FormatReport())
	if result.HasProblems() {
		return fmt.Errorf("%d problem(s) found", len(result.Problems))
	}
	return nil
}
