package service

import (
	"fmt"

	"github.com/Kishori-12/fitstreak-ai/internal/models"
	"github.com/Kishori-12/fitstreak-ai/internal/repository"
	"github.com/Kishori-12/fitstreak-ai/internal/validation"
)

// SettingsService handles notification and display preferences
type SettingsService struct {
	settingsRepo *repository.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo *repository.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// Get returns the user's settings, defaults included
func (s *SettingsService) Get(userID int64) (*models.Settings, error) {
	settings, err := s.settingsRepo.Get(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

// Update validates and persists new settings for a user
func (s *SettingsService) Update(userID int64, updated models.Settings) (*models.Settings, error) {
	if err := validation.ValidateReminderTime(updated.ReminderTime); err != nil {
		return nil, err
	}
	if err := validation.ValidateDailyTarget(updated.DailyTarget); err != nil {
		return nil, err
	}

	updated.UserID = userID
	if err := s.settingsRepo.Save(&updated); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	return &updated, nil
}
