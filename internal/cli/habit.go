package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jmcalloway/stride/internal/constants"
	"github.com/jmcalloway/stride/internal/models"
	"github.com/jmcalloway/stride/internal/progress"
	"github.com/jmcalloway/stride/internal/storage"
	"github.com/jmcalloway/stride/internal/utils"
	"github.com/jmcalloway/stride/internal/validation"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List habits."`
	Log    HabitLogCmd    `cmd:"" help:"Log a habit completion for a day."`
	Unlog  HabitUnlogCmd  `cmd:"" help:"Remove a logged completion."`
	Status HabitStatusCmd `cmd:"" help:"Show today's habit status."`
	Report HabitReportCmd `cmd:"" help:"Show a detailed report for a habit."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit and its completion history."`
}

// findHabit resolves a habit by name for the given user.
func findHabit(ctx *Context, name, userID string) (models.Habit, error) {
	habit, err := ctx.Store.GetHabitByName(name)
	if err != nil {
		return models.Habit{}, fmt.Errorf("habit %q not found", name)
	}
	if habit.UserID != userID {
		return models.Habit{}, fmt.Errorf("habit %q not found", name)
	}
	return habit, nil
}

type HabitAddCmd struct {
	Name      string `arg:"" help:"Habit name."`
	Frequency string `help:"Target frequency: daily, weekly, or custom." default:"daily"`
	Cue       string `help:"Trigger that starts the habit." default:""`
	Routine   string `help:"What you actually do." default:""`
	Reward    string `help:"What you get out of it." default:""`
	Desc      string `help:"Free-form description." default:""`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	userID, err := ctx.UserID()
	if err != nil {
		return err
	}

	if _, err := ctx.Store.GetHabitByName(c.Name); err == nil {
		return fmt.Errorf("habit with name %q already exists", c.Name)
	}

	now := time.Now()
	habit := models.Habit{
		ID:          uuid.New().String(),
		UserID:      userID,
		Name:        c.Name,
		Description: c.Desc,
		Cue:         c.Cue,
		Routine:     c.Routine,
		Reward:      c.Reward,
		Frequency:   constants.Frequency(c.Frequency),
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := validation.ValidateHabit(habit); err != nil {
		return err
	}

	if err := ctx.Store.AddHabit(habit); err != nil {
		return err
	}

	fmt.Printf("Added habit: %s\n", c.Name)
	return nil
}

type HabitListCmd struct {
	All bool `help:"Include inactive habits."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	userID, err := ctx.UserID()
	if err != nil {
		return err
	}

	habits, err := ctx.Store.GetAllHabits(c.All)
	if err != nil {
		return err
	}

	shown := 0
	for _, habit := range habits {
		if habit.UserID != userID {
			continue
		}
		status := ""
		if !habit.Active {
			status = MutedStyle.Render(" [INACTIVE]")
		}
		fmt.Printf("%s (%s)%s\n", habit.Name, habit.Frequency, status)
		shown++
	}

	if shown == 0 {
		fmt.Println("No habits found. Add one with 'stride habit add'.")
	}
	return nil
}

type HabitLogCmd struct {
	Name string `arg:"" help:"Habit name."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *HabitLogCmd) Run(ctx *Context) error {
	userID, err := ctx.UserID()
	if err != nil {
		return err
	}
	habit, err := findHabit(ctx, c.Name, userID)
	if err != nil {
		return err
	}

	eng, err := ctx.Engine()
	if err != nil {
		return err
	}

	result, err := eng.LogCompletion(habit.ID, userID, c.Date)
	if err != nil {
		return err
	}

	if result.AlreadyCompleted {
		fmt.Println(WarningStyle.Render(fmt.Sprintf("%q is already logged for that day.", c.Name)))
		return nil
	}

	fmt.Printf("Logged %q for %s\n", c.Name, result.Completion.Day)
	if result.Progress.CurrentStreak > 1 {
		fmt.Println(SuccessStyle.Render(fmt.Sprintf("Streak: %d days", result.Progress.CurrentStreak)))
	}
	return nil
}

type HabitUnlogCmd struct {
	Name string `arg:"" help:"Habit name."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *HabitUnlogCmd) Run(ctx *Context) error {
	userID, err := ctx.UserID()
	if err != nil {
		return err
	}
	habit, err := findHabit(ctx, c.Name, userID)
	if err != nil {
		return err
	}

	eng, err := ctx.Engine()
	if err != nil {
		return err
	}

	day := c.Date
	if day == "" {
		settings, err := ctx.Store.GetSettings()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		day, err = utils.GetTodayInTimezone(settings.Timezone)
		if err != nil {
			return err
		}
	}

	removed, _, err := eng.RemoveCompletion(habit.ID, userID, day)
	if err != nil {
		return err
	}

	if removed == 0 {
		fmt.Printf("Nothing logged for %q on %s\n", c.Name, day)
		return nil
	}
	fmt.Printf("Removed completion of %q for %s\n", c.Name, day)
	return nil
}

type HabitStatusCmd struct{}

func (c *HabitStatusCmd) Run(ctx *Context) error {
	userID, err := ctx.UserID()
	if err != nil {
		return err
	}

	eng, err := ctx.Engine()
	if err != nil {
		return err
	}

	statuses, err := eng.Status(userID)
	if err != nil {
		return err
	}

	if len(statuses) == 0 {
		fmt.Println("No habits found. Add one with 'stride habit add'.")
		return nil
	}

	fmt.Println(TitleStyle.Render("Today"))
	done := 0
	for _, s := range statuses {
		mark := "[ ]"
		if s.DoneToday {
			mark = SuccessStyle.Render("[x]")
			done++
		}
		line := fmt.Sprintf("%s %s", mark, s.Habit.Name)
		if s.Habit.Progress.CurrentStreak > 0 {
			line += MutedStyle.Render(fmt.Sprintf("  (streak: %d)", s.Habit.Progress.CurrentStreak))
		}
		if s.AtRisk {
			line += " " + DangerStyle.Render("streak at risk")
		}
		fmt.Println(line)
	}

	fmt.Printf("\nCompleted: %d/%d\n", done, len(statuses))
	return nil
}

type HabitReportCmd struct {
	Name string `arg:"" help:"Habit name."`
}

func (c *HabitReportCmd) Run(ctx *Context) error {
	userID, err := ctx.UserID()
	if err != nil {
		return err
	}
	habit, err := findHabit(ctx, c.Name, userID)
	if err != nil {
		return err
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

	fmt.Println(TitleStyle.Render(habit.Name))
	if habit.Description != "" {
		fmt.Println(MutedStyle.Render(habit.Description))
	}
	fmt.Printf("  Frequency:        %s\n", habit.Frequency)
	fmt.Printf("  Current streak:   %d days\n", snapshot.CurrentStreak)
	fmt.Printf("  Longest streak:   %d days\n", snapshot.LongestStreak)
	fmt.Printf("  Completions:      %d total\n", snapshot.TotalCompletions)
	fmt.Printf("  30-day rate:      %d%%\n", snapshot.CompletionRate)
	if snapshot.LastCompletedAt != nil {
		fmt.Printf("  Last completed:   %s\n", snapshot.LastCompletedAt.Format(constants.DateFormat))
	}
	if patterns.BestDay != "" {
		fmt.Printf("  Best day:         %s\n", patterns.BestDay)
	}
	if patterns.BestHour != progress.BestHourNone {
		fmt.Printf("  Best hour:        %02d:00\n", patterns.BestHour)
	}
	if habit.AINotes != "" {
		fmt.Println()
		fmt.Println(TitleStyle.Render("Insight"))
		fmt.Println(habit.AINotes)
	}
	return nil
}

type HabitDeleteCmd struct {
	Name string `arg:"" help:"Habit name."`
	Yes  bool   `help:"Skip the confirmation prompt."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	userID, err := ctx.UserID()
	if err != nil {
		return err
	}
	habit, err := findHabit(ctx, c.Name, userID)
	if err != nil {
		return err
	}

	if !c.Yes {
		count, err := ctx.Store.CountCompletions(habit.ID)
		if err != nil {
			return err
		}
		fmt.Printf("This will permanently delete %q and its %d completion(s). Continue? [y/N]: ", c.Name, count)
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := ctx.Store.DeleteHabit(habit.ID); err != nil {
		if err == storage.ErrNotFound {
			return fmt.Errorf("habit %q not found", c.Name)
		}
		return err
	}

	fmt.Printf("Deleted habit: %s\n", c.Name)
	return nil
}
