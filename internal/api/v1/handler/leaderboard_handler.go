package handler

import (
	"net/http"

	"app/internal/service"

	"github.com/rs/zerolog"
)

// LeaderboardHandler serves the public ranked projection.
type LeaderboardHandler struct {
	leaderboardSvc service.LeaderboardService
	logger         zerolog.Logger
}

// NewLeaderboardHandler creates a new LeaderboardHandler.
func NewLeaderboardHandler(leaderboardSvc service.LeaderboardService, logger zerolog.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardSvc: leaderboardSvc, logger: logger}
}

// RegisterRoutes mounts v1 leaderboard routes. The leaderboard is public.
func (h *LeaderboardHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("GET /leaderboard", http.HandlerFunc(h.top))
}

// top godoc
// @Summary Top users by lifetime points
// @Tags leaderboard
// @Produce json
// @Success 200 {array} model.LeaderboardEntry
// @Router /leaderboard [get]
func (h *LeaderboardHandler) top(w http.ResponseWriter, r *http.Request) {
	entries, err := h.leaderboardSvc.Top(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to fetch leaderboard")
		http.Error(w, "failed to fetch leaderboard", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
