package validation

import (
	"fmt"
	"strings"

	"github.com/jmcalloway/stride/internal/constants"
	"github.com/jmcalloway/stride/internal/models"
	"github.com/jmcalloway/stride/internal/utils"
)

// ProblemType represents the type of validation problem
type ProblemType string

const (
	ProblemEmptyName        ProblemType = "empty_name"
	ProblemDuplicateName    ProblemType = "duplicate_name"
	ProblemInvalidFrequency ProblemType = "invalid_frequency"
	ProblemInvalidDate      ProblemType = "invalid_date"
	ProblemInvalidTimezone  ProblemType = "invalid_timezone"
)

// Problem represents a detected problem in a habit or setting
type Problem struct {
	Type        ProblemType
	Description string
	HabitIDs    []string // IDs of habits involved (if applicable)
}

// Result contains all detected problems
type Result struct {
	Problems []Problem
}

// HasProblems returns true if there are any problems
func (r *Result) HasProblems() bool {
	return len(r.Problems) > 0
}

// FormatReport returns a human-readable report of all problems
func (r *Result) FormatReport() string {
	if !r.HasProblems() {
		return "No problems detected."
	}

	report := "Problems detected:\n"
	for _, p := range r.Problems {
		report += fmt.Sprintf("- %s\n", p.Description)
	}
	return report
}

// ValidateHabit checks a single habit before it is saved.
func ValidateHabit(habit models.Habit) error {
	if strings.TrimSpace(habit.Name) == "" {
		return fmt.Errorf("habit name cannot be empty")
	}
	if !constants.IsValidFrequency(habit.Frequency) {
		return fmt.Errorf("invalid frequency %q (expected daily, weekly, or custom)", habit.Frequency)
	}
	return nil
}

// ValidateDate checks that a date string is in YYYY-MM-DD form.
func ValidateDate(dateStr string) error {
	if !utils.ValidateDateFormat(dateStr) {
		return fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", dateStr)
	}
	return nil
}

// ValidateSettings checks user settings for consistency.
func ValidateSettings(settings models.Settings) error {
	if !utils.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("invalid timezone %q", settings.Timezone)
	}
	return nil
}

// ValidateHabits checks a habit collection for cross-habit problems.
func ValidateHabits(habits []models.Habit) Result {
	result := Result{Problems: []Problem{}}

	nameCount := make(map[string][]string)
	for _, habit := range habits {
		if habit.Name == "" {
			result.Problems = append(result.Problems, Problem{
				Type:        ProblemEmptyName,
				Description: fmt.Sprintf("habit %s has an empty name", habit.ID),
				HabitIDs:    []string{habit.ID},
			})
			continue
		}
		nameCount[habit.Name] = append(nameCount[habit.Name], habit.ID)
	}

	for name, ids := range nameCount {
		if len(ids) > 1 {
			result.Problems = append(result.Problems, Problem{
				Type:        ProblemDuplicateName,
				Description: fmt.Sprintf("duplicate habit name %q (%d habits)", name, len(ids)),
				HabitIDs:    ids,
			})
		}
	}

	for _, habit := range habits {
		if !constants.IsValidFrequency(habit.Frequency) {
			result.Problems = append(result.Problems, Problem{
				Type:        ProblemInvalidFrequency,
				Description: fmt.Sprintf("habit %q has invalid frequency %q", habit.Name, habit.Frequency),
				HabitIDs:    []string{habit.ID},
			})
		}
	}

	return result
}
