package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Kishori-12/fitstreak-ai/internal/models"
	"github.com/Kishori-12/fitstreak-ai/internal/service"
	"github.com/Kishori-12/fitstreak-ai/internal/validation"
)

// SettingsHandler exposes notification and display preferences
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetSettings returns the current user's settings
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	settings, err := h.settingsService.Get(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load settings", "get settings", err)
		return
	}
	respondWithJSON(w, http.StatusOK, settings)
}

// UpdateSettings replaces the current user's settings
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var req models.Settings
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	settings, err := h.settingsService.Update(user.ID, req)
	if err != nil {
		var vErr validation.ValidationError
		if errors.As(err, &vErr) {
			respondWithError(w, http.StatusBadRequest, vErr.Error(), "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to save settings", "update settings", err)
		return
	}
	respondWithJSON(w, http.StatusOK, settings)
}
