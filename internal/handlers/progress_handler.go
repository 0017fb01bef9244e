package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/Kishori-12/fitstreak-ai/internal/dates"
	"github.com/Kishori-12/fitstreak-ai/internal/models"
	"github.com/Kishori-12/fitstreak-ai/internal/service"
	"github.com/Kishori-12/fitstreak-ai/internal/validation"
)

// maxImportSize caps uploaded progress documents at 1 MiB. Real exports
// are a few kilobytes.
const maxImportSize = 1 << 20

// ProgressHandler exposes the habit tracking API
type ProgressHandler struct {
	progressService *service.ProgressService
	settingsService *service.SettingsService
	emailService    *service.EmailService
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(progressService *service.ProgressService, settingsService *service.SettingsService, emailService *service.EmailService) *ProgressHandler {
	return &ProgressHandler{
		progressService: progressService,
		settingsService: settingsService,
		emailService:    emailService,
	}
}

// GetProgress returns the full progress snapshot for the current user
func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	snap, err := h.progressService.Load(user.ID, dates.Today())
	if err != nil {
		h.respondProgressError(w, err, "load progress")
		return
	}
	respondWithJSON(w, http.StatusOK, snap)
}

// CompleteHabit marks one habit done for today
func (h *ProgressHandler) CompleteHabit(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	habitID := r.PathValue("habitID")
	if habitID == "" {
		respondWithError(w, http.StatusBadRequest, "Missing habit ID", "", nil)
		return
	}

	snap, err := h.progressService.CompleteHabit(user.ID, habitID, dates.Today())
	if err != nil {
		h.respondProgressError(w, err, "complete habit")
		return
	}

	if len(snap.NewAchievements) > 0 {
		go h.notifyAchievements(user, snap.NewAchievements)
	}
	respondWithJSON(w, http.StatusOK, snap)
}

// notifyAchievements emails newly unlocked achievements to users who
// opted in. Runs off the request path: a slow or failing send must not
// delay the completion response.
func (h *ProgressHandler) notifyAchievements(user *models.User, achievementIDs []string) {
	if h.emailService == nil || !h.emailService.IsEnabled() {
		return
	}

	settings, err := h.settingsService.Get(user.ID)
	if err != nil {
		log.Printf("Failed to check alert settings for user %d: %v", user.ID, err)
		return
	}
	if !settings.AchievementAlerts {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := h.emailService.SendAchievementEmail(ctx, user.Email, user.DisplayName, achievementIDs); err != nil {
		log.Printf("Failed to send achievement email to user %d: %v", user.ID, err)
	}
}

type replaceHabitsRequest struct {
	Habits []models.HabitDefinition `json:"habits"`
}

// ReplaceHabits swaps the user's active habit set
func (h *ProgressHandler) ReplaceHabits(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var req replaceHabitsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	snap, err := h.progressService.ReplaceHabitSet(user.ID, req.Habits, dates.Today())
	if err != nil {
		h.respondProgressError(w, err, "replace habits")
		return
	}
	respondWithJSON(w, http.StatusOK, snap)
}

// GetAnalytics returns success rate, per-habit rates and the weekly series
func (h *ProgressHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	report, err := h.progressService.Analytics(user.ID, dates.Today())
	if err != nil {
		h.respondProgressError(w, err, "analytics")
		return
	}
	respondWithJSON(w, http.StatusOK, report)
}

// Export downloads the raw progress document
func (h *ProgressHandler) Export(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	doc, err := h.progressService.Export(user.ID)
	if err != nil {
		h.respondProgressError(w, err, "export")
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=fitstreak-export-%s.json", dates.Today()))
	respondWithJSON(w, http.StatusOK, doc)
}

// Import replaces the progress document with an uploaded export
func (h *ProgressHandler) Import(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportSize+1))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Failed to read upload", "", err)
		return
	}
	if len(data) > maxImportSize {
		respondWithError(w, http.StatusRequestEntityTooLarge, "Import file too large", "", nil)
		return
	}

	snap, err := h.progressService.Import(user.ID, data, dates.Today())
	if err != nil {
		h.respondProgressError(w, err, "import")
		return
	}
	respondWithJSON(w, http.StatusOK, snap)
}

func (h *ProgressHandler) respondProgressError(w http.ResponseWriter, err error, op string) {
	var vErr validation.ValidationError
	switch {
	case errors.As(err, &vErr):
		respondWithError(w, http.StatusBadRequest, vErr.Error(), "", nil)
	case errors.Is(err, service.ErrUnknownHabit):
		respondWithError(w, http.StatusNotFound, "Habit not in your active set", "", nil)
	case errors.Is(err, service.ErrInvalidHabitSetSize):
		respondWithError(w, http.StatusBadRequest,
			fmt.Sprintf("Habit set must have between %d and %d habits", validation.MinHabitSetSize, validation.MaxHabitSetSize), "", nil)
	case errors.Is(err, service.ErrMalformedImport):
		respondWithError(w, http.StatusBadRequest, "Import file is not a valid progress export", "", nil)
	case errors.Is(err, service.ErrRemoteUnavailable):
		respondWithError(w, http.StatusServiceUnavailable, "Progress data temporarily unavailable", op, err)
	default:
		respondWithError(w, http.StatusInternalServerError, "Something went wrong", op, err)
	}
}
