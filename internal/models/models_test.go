package models

import (
	"testing"
	"time"
)

func TestCompletionRecordCounts(t *testing.T) {
	record := CompletionRecord{
		"2026-03-13": {"water": true, "steps": true, "sleep": false},
		"2026-03-14": {"water": true},
	}

	if got := record.CompletedOn("2026-03-13"); got != 2 {
		t.Errorf("CompletedOn = %d, want 2 (false entries do not count)", got)
	}
	if got := record.CompletedOn("2026-01-01"); got != 0 {
		t.Errorf("CompletedOn missing day = %d, want 0", got)
	}
	if got := record.Total(); got != 3 {
		t.Errorf("Total = %d, want 3", got)
	}
}

func TestCompletionRecordClone(t *testing.T) {
	record := CompletionRecord{
		"2026-03-14": {"water": true},
	}

	clone := record.Clone()
	clone["2026-03-14"]["steps"] = true
	clone["2026-03-15"] = map[string]bool{"water": true}

	if record.CompletedOn("2026-03-14") != 1 {
		t.Error("mutating the clone changed the original day entry")
	}
	if _, ok := record["2026-03-15"]; ok {
		t.Error("mutating the clone added a day to the original")
	}
}

func TestActiveHabitsFallsBackToDefaults(t *testing.T) {
	p := NewUserProgress(1)
	if got := len(p.ActiveHabits()); got != len(DefaultHabits) {
		t.Errorf("ActiveHabits = %d entries, want default set", got)
	}

	p.CustomHabits = []HabitDefinition{
		{ID: "run", Name: "Run"},
		{ID: "read", Name: "Read"},
		{ID: "stretch", Name: "Stretch"},
	}
	if got := len(p.ActiveHabits()); got != 3 {
		t.Errorf("ActiveHabits = %d entries, want custom set of 3", got)
	}
}

func TestHasAchievement(t *testing.T) {
	p := NewUserProgress(1)
	p.Achievements = []string{"first_habit", "week_warrior"}

	if !p.HasAchievement("week_warrior") {
		t.Error("expected week_warrior to be present")
	}
	if p.HasAchievement("streak_legend") {
		t.Error("streak_legend should not be present")
	}
}

func TestSessionIsExpired(t *testing.T) {
	active := Session{ExpiresAt: time.Now().Add(time.Hour)}
	if active.IsExpired() {
		t.Error("session expiring in an hour should not be expired")
	}

	expired := Session{ExpiresAt: time.Now().Add(-time.Minute)}
	if !expired.IsExpired() {
		t.Error("session that expired a minute ago should be expired")
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings(7)
	if s.UserID != 7 {
		t.Errorf("UserID = %d, want 7", s.UserID)
	}
	if s.ReminderTime != "09:00" {
		t.Errorf("ReminderTime = %q, want 09:00", s.ReminderTime)
	}
	if !s.WeeklyReports || !s.AchievementAlerts || !s.ShowInLeaderboard {
		t.Error("default settings should opt into all notifications")
	}
}
