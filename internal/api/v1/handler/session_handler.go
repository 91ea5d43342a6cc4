package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"app/internal/api/v1/dto"
	"app/internal/middleware"
	"app/internal/repository"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// SessionHandler handles the completed-session endpoints.
type SessionHandler struct {
	ledgerSvc service.LedgerService
	validate  *validator.Validate
	logger    zerolog.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(ledgerSvc service.LedgerService, v *validator.Validate, logger zerolog.Logger) *SessionHandler {
	return &SessionHandler{ledgerSvc: ledgerSvc, validate: v, logger: logger}
}

// RegisterRoutes mounts v1 session routes
func (h *SessionHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("POST /sessions/complete", authMw(http.HandlerFunc(h.completeSession)))
	mux.Handle("GET /sessions", authMw(http.HandlerFunc(h.listSessions)))
}

// completeSession godoc
// @Summary Record a completed practice session
// @Description Applies the session to the user's points ledger and streak. Sessions under 10 seconds are accepted but ignored.
// @Tags sessions
// @Accept json
// @Produce json
// @Param session body dto.SessionCompleteDTO true "Completed session"
// @Success 202 {object} dto.SessionResponseDTO
// @Success 204 "Session too short to count"
// @Failure 400 {string} string "invalid request payload"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "user not found"
// @Router /sessions/complete [post]
func (h *SessionHandler) completeSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req dto.SessionCompleteDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request payload", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	session, err := h.ledgerSvc.CompleteSession(r.Context(), userID, req.PresetID, req.DurationSeconds)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to record session")
		http.Error(w, "failed to record session", http.StatusInternalServerError)
		return
	}
	if session == nil {
		// Too short to count: no-op success.
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusAccepted, dto.SessionResponseDTO{
		ID:              session.ID,
		PresetID:        session.PresetID,
		DurationSeconds: session.DurationSeconds,
		PointsAwarded:   session.PointsAwarded,
		CompletedAt:     session.CompletedAt,
	})
}

// listSessions godoc
// @Summary List the caller's session history
// @Tags sessions
// @Produce json
// @Success 200 {array} dto.SessionResponseDTO
// @Failure 401 {string} string "unauthorized"
// @Router /sessions [get]
func (h *SessionHandler) listSessions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	sessions, err := h.ledgerSvc.ListSessions(r.Context(), userID)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to list sessions")
		http.Error(w, "failed to list sessions", http.StatusInternalServerError)
		return
	}

	out := make([]dto.SessionResponseDTO, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, dto.SessionResponseDTO{
			ID:              s.ID,
			PresetID:        s.PresetID,
			DurationSeconds: s.DurationSeconds,
			PointsAwarded:   s.PointsAwarded,
			CompletedAt:     s.CompletedAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
