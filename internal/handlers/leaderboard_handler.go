package handlers

import (
	"net/http"
	"strconv"

	"github.com/Kishori-12/fitstreak-ai/internal/leaderboard"
	"github.com/Kishori-12/fitstreak-ai/internal/service"
)

const defaultBoardSize = 20

// LeaderboardHandler exposes the ranked board
type LeaderboardHandler struct {
	leaderboardService *service.LeaderboardService
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(leaderboardService *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

type leaderboardResponse struct {
	Entries []leaderboard.Entry `json:"entries"`
	Me      *leaderboard.Entry  `json:"me,omitempty"`
}

// GetLeaderboard returns the top entries plus the caller's own rank, which
// may sit below the cutoff.
func (h *LeaderboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	limit := defaultBoardSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			respondWithError(w, http.StatusBadRequest, "limit must be between 1 and 100", "", nil)
			return
		}
		limit = n
	}

	entries, err := h.leaderboardService.Top(limit)
	if err != nil {
		respondWithError(w, http.StatusServiceUnavailable, "Leaderboard temporarily unavailable", "leaderboard", err)
		return
	}

	me, err := h.leaderboardService.UserRank(user.ID)
	if err != nil {
		respondWithError(w, http.StatusServiceUnavailable, "Leaderboard temporarily unavailable", "leaderboard rank", err)
		return
	}

	respondWithJSON(w, http.StatusOK, leaderboardResponse{Entries: entries, Me: me})
}
