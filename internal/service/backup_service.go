package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/Kishori-12/fitstreak-ai/internal/database"
)

// BackupData represents the complete database backup structure
type BackupData struct {
	Version    string           `json:"version"`
	ExportedAt time.Time        `json:"exported_at"`
	Users      []UserBackup     `json:"users"`
	Progress   []ProgressBackup `json:"progress"`
	Settings   []SettingsBackup `json:"settings"`
}

// UserBackup represents a user record for backup
type UserBackup struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"password_hash"`
	DisplayName   string    `json:"display_name"`
	OAuthProvider string    `json:"oauth_provider"`
	OAuthSubject  string    `json:"oauth_subject"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProgressBackup represents a progress document for backup. The JSON
// columns are carried as raw text so a backup round-trips byte for byte.
type ProgressBackup struct {
	UserID         int64     `json:"user_id"`
	Completions    string    `json:"completions"`
	CustomHabits   *string   `json:"custom_habits,omitempty"`
	Streak         int       `json:"streak"`
	BestStreak     int       `json:"best_streak"`
	TotalCompleted int       `json:"total_completed"`
	Achievements   string    `json:"achievements"`
	Score          int       `json:"score"`
	LastUpdate     time.Time `json:"last_update"`
}

// SettingsBackup represents a settings record for backup
type SettingsBackup struct {
	UserID            int64     `json:"user_id"`
	ReminderTime      string    `json:"reminder_time"`
	WeeklyReports     bool      `json:"weekly_reports"`
	AchievementAlerts bool      `json:"achievement_alerts"`
	ShowInLeaderboard bool      `json:"show_in_leaderboard"`
	DailyTarget       int       `json:"daily_target"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// BackupService exports and restores the whole database
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export writes a full backup to the given path
func (s *BackupService) Export(outputPath string) error {
	log.Println("Starting database export...")

	backup := &BackupData{
		Version:    "1.0",
		ExportedAt: time.Now(),
	}

	if err := s.exportUsers(backup); err != nil {
		return fmt.Errorf("failed to export users: %w", err)
	}
	if err := s.exportProgress(backup); err != nil {
		return fmt.Errorf("failed to export progress: %w", err)
	}
	if err := s.exportSettings(backup); err != nil {
		return fmt.Errorf("failed to export settings: %w", err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Printf("Database exported successfully to %s", outputPath)
	log.Printf("Exported: %d users, %d progress documents, %d settings",
		len(backup.Users), len(backup.Progress), len(backup.Settings))

	return nil
}

// Import restores a database from a backup file
func (s *BackupService) Import(inputPath string) error {
	log.Printf("Starting database import from %s...", inputPath)

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}

// ImportFromReader restores a database from a backup stream
func (s *BackupService) ImportFromReader(reader io.Reader) error {
	var backup BackupData
	if err := json.NewDecoder(reader).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	// Users first: progress and settings rows reference them
	if err := s.importUsers(backup.Users); err != nil {
		return fmt.Errorf("failed to import users: %w", err)
	}
	if err := s.importProgress(backup.Progress); err != nil {
		return fmt.Errorf("failed to import progress: %w", err)
	}
	if err := s.importSettings(backup.Settings); err != nil {
		return fmt.Errorf("failed to import settings: %w", err)
	}

	log.Println("Database import completed successfully")
	return nil
}

func (s *BackupService) exportUsers(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, email, password_hash, display_name, oauth_provider, oauth_subject, created_at, updated_at FROM users ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var u UserBackup
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.OAuthProvider, &u.OAuthSubject, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return err
		}
		backup.Users = append(backup.Users, u)
	}
	return rows.Err()
}

func (s *BackupService) exportProgress(backup *BackupData) error {
	rows, err := s.db.Query("SELECT user_id, completions, custom_habits, streak, best_streak, total_completed, achievements, score, last_update FROM user_progress ORDER BY user_id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var p ProgressBackup
		var customHabits sql.NullString
		if err := rows.Scan(&p.UserID, &p.Completions, &customHabits, &p.Streak, &p.BestStreak, &p.TotalCompleted, &p.Achievements, &p.Score, &p.LastUpdate); err != nil {
			return err
		}
		if customHabits.Valid {
			p.CustomHabits = &customHabits.String
		}
		backup.Progress = append(backup.Progress, p)
	}
	return rows.Err()
}

func (s *BackupService) exportSettings(backup *BackupData) error {
	rows, err := s.db.Query("SELECT user_id, reminder_time, weekly_reports, achievement_alerts, show_in_leaderboard, daily_target, updated_at FROM user_settings ORDER BY user_id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var st SettingsBackup
		if err := rows.Scan(&st.UserID, &st.ReminderTime, &st.WeeklyReports, &st.AchievementAlerts, &st.ShowInLeaderboard, &st.DailyTarget, &st.UpdatedAt); err != nil {
			return err
		}
		backup.Settings = append(backup.Settings, st)
	}
	return rows.Err()
}

func (s *BackupService) importUsers(users []UserBackup) error {
	log.Printf("Importing %d users...", len(users))
	for _, u := range users {
		_, err := s.db.Exec(
			"INSERT INTO users (id, email, password_hash, display_name, oauth_provider, oauth_subject, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			u.ID, u.Email, u.PasswordHash, u.DisplayName, u.OAuthProvider, u.OAuthSubject, u.CreatedAt, u.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to import user %d: %w", u.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importProgress(progress []ProgressBackup) error {
	log.Printf("Importing %d progress documents...", len(progress))
	for _, p := range progress {
		var customHabits interface{}
		if p.CustomHabits != nil {
			customHabits = *p.CustomHabits
		}
		_, err := s.db.Exec(
			"INSERT INTO user_progress (user_id, completions, custom_habits, streak, best_streak, total_completed, achievements, score, last_update) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
			p.UserID, p.Completions, customHabits, p.Streak, p.BestStreak, p.TotalCompleted, p.Achievements, p.Score, p.LastUpdate,
		)
		if err != nil {
			return fmt.Errorf("failed to import progress for user %d: %w", p.UserID, err)
		}
	}
	return nil
}

func (s *BackupService) importSettings(settings []SettingsBackup) error {
	log.Printf("Importing %d settings...", len(settings))
	for _, st := range settings {
		_, err := s.db.Exec(
			"INSERT INTO user_settings (user_id, reminder_time, weekly_reports, achievement_alerts, show_in_leaderboard, daily_target, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
			st.UserID, st.ReminderTime, st.WeeklyReports, st.AchievementAlerts, st.ShowInLeaderboard, st.DailyTarget, st.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to import settings for user %d: %w", st.UserID, err)
		}
	}
	return nil
}
