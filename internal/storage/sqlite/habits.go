package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmcalloway/stride/internal/models"
	"github.com/jmcalloway/stride/internal/storage"
)

const habitColumns = `id, user_id, name, description, cue, routine, reward, frequency, active,
	current_streak, longest_streak, total_completions, completion_rate, last_completed_at,
	ai_notes, created_at, updated_at`

func scanHabit(row interface{ Scan(...any) error }) (models.Habit, error) {
	var h models.Habit
	var active int
	var createdAt, updatedAt string
	var lastCompletedAt sql.NullString

	err := row.Scan(&h.ID, &h.UserID, &h.Name, &h.Description, &h.Cue, &h.Routine, &h.Reward,
		&h.Frequency, &active,
		&h.Progress.CurrentStreak, &h.Progress.LongestStreak, &h.Progress.TotalCompletions,
		&h.Progress.CompletionRate, &lastCompletedAt,
		&h.AINotes, &createdAt, &updatedAt)
	if err != nil {
		return models.Habit{}, err
	}

	h.Active = active != 0
	h.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	h.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	if lastCompletedAt.Valid {
		t, err := time.Parse(time.RFC3339, lastCompletedAt.String)
		if err != nil {
			return models.Habit{}, fmt.Errorf("failed to parse last_completed_at: %w", err)
		}
		h.Progress.LastCompletedAt = &t
	}

	return h, nil
}

func (s *Store) AddHabit(habit models.Habit) error {
	return s.UpdateHabit(habit)
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE id = ?`, id)

	h, err := scanHabit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Habit{}, storage.ErrNotFound
	}
	return h, err
}

func (s *Store) GetHabitByName(name string) (models.Habit, error) {
	row := s.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE name = ?`, name)

	h, err := scanHabit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Habit{}, storage.ErrNotFound
	}
	return h, err
}

func (s *Store) GetAllHabits(includeInactive bool) ([]models.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits`
	if !includeInactive {
		query += ` WHERE active = 1`
	}
	query += ` ORDER BY created_at`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}

	return habits, rows.Err()
}

func (s *Store) UpdateHabit(habit models.Habit) error {
	active := 0
	if habit.Active {
		active = 1
	}
	var lastCompletedAt sql.NullString
	if habit.Progress.LastCompletedAt != nil {
		lastCompletedAt = sql.NullString{String: habit.Progress.LastCompletedAt.Format(time.RFC3339), Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO habits (`+habitColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			cue = excluded.cue,
			routine = excluded.routine,
			reward = excluded.reward,
			frequency = excluded.frequency,
			active = excluded.active,
			ai_notes = excluded.ai_notes,
			updated_at = excluded.updated_at`,
		habit.ID, habit.UserID, habit.Name, habit.Description, habit.Cue, habit.Routine, habit.Reward,
		habit.Frequency, active,
		habit.Progress.CurrentStreak, habit.Progress.LongestStreak, habit.Progress.TotalCompletions,
		habit.Progress.CompletionRate, lastCompletedAt,
		habit.AINotes, habit.CreatedAt.Format(time.RFC3339), habit.UpdatedAt.Format(time.RFC3339))

	return err
}

func (s *Store) DeleteHabit(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.Exec(`DELETE FROM habits WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return storage.ErrNotFound
	}

	// Cascade: a deleted habit takes its completion log with it.
	if _, err := tx.Exec(`DELETE FROM completions WHERE habit_id = ?`, id); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) ReplaceProgress(habitID string, p models.Progress) error {
	var lastCompletedAt sql.NullString
	if p.LastCompletedAt != nil {
		lastCompletedAt = sql.NullString{String: p.LastCompletedAt.Format(time.RFC3339), Valid: true}
	}

	result, err := s.db.Exec(`
		UPDATE habits SET
			current_streak = ?,
			longest_streak = ?,
			total_completions = ?,
			completion_rate = ?,
			last_completed_at = ?,
			updated_at = ?
		WHERE id = ?`,
		p.CurrentStreak, p.LongestStreak, p.TotalCompletions, p.CompletionRate,
		lastCompletedAt, time.Now().UTC().Format(time.RFC3339), habitID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return storage.ErrNotFound
	}

	return nil
}
