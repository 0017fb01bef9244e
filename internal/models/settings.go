package models

import "time"

// Settings holds per-user preferences. They are loaded once per request
// path and passed explicitly to the components that need them, never read
// from ambient storage at call sites.
type Settings struct {
	UserID            int64     `json:"userId"`
	ReminderTime      string    `json:"reminderTime"`      // HH:MM, local
	WeeklyReports     bool      `json:"weeklyReports"`     // weekly summary email
	AchievementAlerts bool      `json:"achievementAlerts"` // email on unlock
	ShowInLeaderboard bool      `json:"showInLeaderboard"`
	DailyTarget       int       `json:"dailyHabitTarget"`
	UpdatedAt         time.Time `json:"-"`
}

// DefaultSettings returns the settings a user starts with.
func DefaultSettings(userID int64) *Settings {
	return &Settings{
		UserID:            userID,
		ReminderTime:      "09:00",
		WeeklyReports:     true,
		AchievementAlerts: true,
		ShowInLeaderboard: true,
		DailyTarget:       5,
	}
}
