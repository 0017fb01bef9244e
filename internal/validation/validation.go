// Package validation holds input validation rules shared by services.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Habit set size limits for customization.
const (
	MinHabitSetSize = 3
	MaxHabitSetSize = 8
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidatePassword checks if a password meets requirements
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Message: "password is required"}
	}
	if len(password) < 8 {
		return ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}
	return nil
}

// ValidateDisplayName checks if a display name is valid
func ValidateDisplayName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: "displayName", Message: "display name is required"}
	}
	if len(name) < 2 {
		return ValidationError{Field: "displayName", Message: "display name must be at least 2 characters"}
	}
	return nil
}

// ValidateReminderTime checks a HH:MM reminder time
func ValidateReminderTime(value string) error {
	if _, err := time.Parse("15:04", value); err != nil {
		return ValidationError{Field: "reminderTime", Message: "reminder time must be HH:MM"}
	}
	return nil
}

// ValidateDailyTarget checks the daily habit target against the habit set
// size limits.
func ValidateDailyTarget(target int) error {
	if target < 1 || target > MaxHabitSetSize {
		return ValidationError{Field: "dailyTarget", Message: fmt.Sprintf("daily target must be between 1 and %d", MaxHabitSetSize)}
	}
	return nil
}

// ValidateHabitName checks a single habit's name
func ValidateHabitName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: "name", Message: "habit name is required"}
	}
	if len(name) > 100 {
		return ValidationError{Field: "name", Message: "habit name must be at most 100 characters"}
	}
	return nil
}
