package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmcalloway/stride/internal/models"
	"github.com/jmcalloway/stride/internal/storage"
)

func scanCompletion(row interface{ Scan(...any) error }) (models.Completion, error) {
	var c models.Completion
	var completedAt string

	if err := row.Scan(&c.ID, &c.HabitID, &c.UserID, &c.Day, &completedAt); err != nil {
		return models.Completion{}, err
	}

	t, err := time.Parse(time.RFC3339, completedAt)
	if err != nil {
		return models.Completion{}, fmt.Errorf("failed to parse completed_at: %w", err)
	}
	c.CompletedAt = t

	return c, nil
}

func (s *Store) AddCompletion(completion models.Completion) error {
	_, err := s.db.Exec(`
		INSERT INTO completions (id, habit_id, user_id, day, completed_at)
		VALUES (?, ?, ?, ?, ?)`,
		completion.ID, completion.HabitID, completion.UserID, completion.Day,
		completion.CompletedAt.Format(time.RFC3339))
	if isUniqueViolation(err) {
		return storage.ErrDuplicateDay
	}
	return err
}

func (s *Store) GetCompletion(habitID, day string) (models.Completion, error) {
	row := s.db.QueryRow(`
		SELECT id, habit_id, user_id, day, completed_at
		FROM completions WHERE habit_id = ? AND day = ?`,
		habitID, day)

	c, err := scanCompletion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Completion{}, storage.ErrNotFound
	}
	return c, err
}

func (s *Store) GetCompletionsForHabit(habitID string) ([]models.Completion, error) {
	rows, err := s.db.Query(`
		SELECT id, habit_id, user_id, day, completed_at
		FROM completions WHERE habit_id = ?
		ORDER BY day`, habitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var completions []models.Completion
	for rows.Next() {
		c, err := scanCompletion(rows)
		if err != nil {
			return nil, err
		}
		completions = append(completions, c)
	}

	return completions, rows.Err()
}

func (s *Store) DeleteCompletions(habitID, day string) (int, error) {
	result, err := s.db.Exec(`DELETE FROM completions WHERE habit_id = ? AND day = ?`, habitID, day)
	if err != nil {
		return 0, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(rows), nil
}

func (s *Store) CountCompletions(habitID string) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM completions WHERE habit_id = ?`, habitID).Scan(&count)
	return count, err
}
