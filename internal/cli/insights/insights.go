// Package insights holds the commands that call out to the language model.
package insights

import (
	"context"
	"fmt"
	"time"

	"github.com/jmcalloway/stride/internal/cli"
	"github.com/jmcalloway/stride/internal/constants"
	"github.com/jmcalloway/stride/internal/insight"
)

// checkGenerator verifies insight generation is configured and enabled.
func checkGenerator(ctx *cli.Context) error {
	if ctx.Insight == nil {
		return fmt.Errorf("insight generation requires an OpenAI API key; set OPENAI_API_KEY or STRIDE_OPENAI_API_KEY")
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if !settings.InsightEnabled {
		return fmt.Errorf("insight generation is disabled; enable it with 'stride settings --insight-enabled=true'")
	}
	return nil
}

// InsightCmd generates coaching feedback for one habit and stores it on the
// habit record.
type InsightCmd struct {
	Name    string        `arg:"" help:"Habit name."`
	Timeout time.Duration `help:"Maximum time to wait for the model." default:"30s"`
}

func (c *InsightCmd) Run(ctx *cli.Context) error {
	if err := checkGenerator(ctx); err != nil {
		return err
	}

	userID, err := ctx.UserID()
	if err != nil {
		return err
	}
	habit, err := ctx.Store.GetHabitByName(c.Name)
	if err != nil || habit.UserID != userID {
		return fmt.Errorf("habit %q not found", c.Name)
	}

	eng, err := ctx.Engine()
	if err != nil {
		return err
	}

	snapshot, err := eng.RecomputeProgress(habit.ID, userID)
	if err != nil {
		return err
	}
	patterns, err := eng.AnalyzeHabit(habit.ID, userID)
	if err != nil {
		return err
	}

	stats := insight.Stats{
		HabitName:        habit.Name,
		Cue:              habit.Cue,
		Routine:          habit.Routine,
		Frequency:        string(habit.Frequency),
		CurrentStreak:    snapshot.CurrentStreak,
		LongestStreak:    snapshot.LongestStreak,
		TotalCompletions: snapshot.TotalCompletions,
		CompletionRate:   snapshot.CompletionRate,
		BestDay:          patterns.BestDay,
		BestHour:         patterns.BestHour,
	}
	if snapshot.LastCompletedAt != nil {
		stats.LastCompletedAt = snapshot.LastCompletedAt.Format(constants.DateFormat)
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	text, err := ctx.Insight.HabitInsight(reqCtx, stats)
	if err != nil {
		return fmt.Errorf("insight generation failed: %w", err)
	}

	habit.AINotes = text
	habit.UpdatedAt = time.Now()
	if err := ctx.Store.UpdateHabit(habit); err != nil {
		return fmt.Errorf("failed to save insight: %w", err)
	}

	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Insight for %s", habit.Name)))
	fmt.Println(text)
	return nil
}

// SuggestCmd asks the model for new habit ideas based on the existing ones.
type SuggestCmd struct {
	Max     int           `help:"Maximum number of suggestions." default:"5"`
	Timeout time.Duration `help:"Maximum time to wait for the model." default:"30s"`
}

func (c *SuggestCmd) Run(ctx *cli.Context) error {
	if err := checkGenerator(ctx); err != nil {
		return err
	}

	userID, err := ctx.UserID()
	if err != nil {
		return err
	}

	habits, err := ctx.Store.GetAllHabits(false)
	if err != nil {
		return err
	}
	var names []string
	for _, h := range habits {
		if h.UserID == userID {
			names = append(names, h.Name)
		}
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	suggestions, err := ctx.Insight.SuggestHabits(reqCtx, names, c.Max)
	if err != nil {
		return fmt.Errorf("suggestion generation failed: %w", err)
	}

	if len(suggestions) == 0 {
		fmt.Println(cli.WarningStyle.Render("No suggestions this time. Try again later."))
		return nil
	}

	fmt.Println(cli.TitleStyle.Render("Suggested habits"))
	for _, s := range suggestions {
		fmt.Printf("- %s\n", s.Name)
		if s.Cue != "" {
			fmt.Println(cli.MutedStyle.Render(fmt.Sprintf("    cue: %s", s.Cue)))
		}
		if s.Routine != "" {
			fmt.Println(cli.MutedStyle.Render(fmt.Sprintf("    routine: %s", s.Routine)))
		}
		if s.Reward != "" {
			fmt.Println(cli.MutedStyle.Render(fmt.Sprintf("    reward: %s", s.Reward)))
		}
	}
	fmt.Println("\nAdd one with 'stride habit add <name>'.")
	return nil
}
