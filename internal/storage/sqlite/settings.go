package sqlite

import (
	"fmt"

	"github.com/jmcalloway/stride/internal/models"
)

func (s *Store) GetSettings() (models.Settings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	settings := models.Settings{}
	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		switch key {
		case "timezone":
			settings.Timezone = value
		case "user_id":
			settings.UserID = value
		case "insight_model":
			settings.InsightModel = value
		case "insight_enabled":
			settings.InsightEnabled = value == "true"
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, err
	}

	if count == 0 {
		return models.Settings{}, fmt.Errorf("settings not found")
	}

	return settings, nil
}

func (s *Store) SaveSettings(settings models.Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	if _, err := stmt.Exec("timezone", settings.Timezone); err != nil {
		return err
	}
	if _, err := stmt.Exec("user_id", settings.UserID); err != nil {
		return err
	}
	if _, err := stmt.Exec("insight_model", settings.InsightModel); err != nil {
		return err
	}
	if _, err := stmt.Exec("insight_enabled", fmt.Sprintf("%v", settings.InsightEnabled)); err != nil {
		return err
	}

	return tx.Commit()
}
