package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/Kishori-12/fitstreak-ai/internal/database"
	"github.com/Kishori-12/fitstreak-ai/internal/models"
)

// SettingsRepository handles per-user notification and display settings
type SettingsRepository struct {
	db *database.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *database.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the settings for a user, falling back to defaults when no
// row exists yet.
func (r *SettingsRepository) Get(userID int64) (*models.Settings, error) {
	var s models.Settings
	err := r.db.QueryRow(
		"SELECT user_id, reminder_time, weekly_reports, achievement_alerts, show_in_leaderboard, daily_target, updated_at FROM user_settings WHERE user_id = ?",
		userID,
	).Scan(&s.UserID, &s.ReminderTime, &s.WeeklyReports, &s.AchievementAlerts, &s.ShowInLeaderboard, &s.DailyTarget, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DefaultSettings(userID), nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Save upserts a settings row
func (r *SettingsRepository) Save(s *models.Settings) error {
	s.UpdatedAt = time.Now()

	result, err := r.db.Exec(
		"UPDATE user_settings SET reminder_time = ?, weekly_reports = ?, achievement_alerts = ?, show_in_leaderboard = ?, daily_target = ?, updated_at = ? WHERE user_id = ?",
		s.ReminderTime, s.WeeklyReports, s.AchievementAlerts, s.ShowInLeaderboard, s.DailyTarget, s.UpdatedAt, s.UserID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	_, err = r.db.Exec(
		"INSERT INTO user_settings (user_id, reminder_time, weekly_reports, achievement_alerts, show_in_leaderboard, daily_target, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		s.UserID, s.ReminderTime, s.WeeklyReports, s.AchievementAlerts, s.ShowInLeaderboard, s.DailyTarget, s.UpdatedAt,
	)
	return err
}

// ListWeeklyReportRecipients returns the users who opted into weekly
// summary emails.
func (r *SettingsRepository) ListWeeklyReportRecipients() ([]models.User, error) {
	rows, err := r.db.Query(`
		SELECT u.id, u.email, u.display_name
		FROM users u
		JOIN user_settings s ON s.user_id = u.id
		WHERE s.weekly_reports = ?`,
		true,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.DisplayName); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
