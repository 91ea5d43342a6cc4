package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"app/internal/api/v1/dto"
	"app/internal/middleware"
	"app/internal/model"
	"app/internal/repository"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// SubscriptionHandler handles subscription-related endpoints.
type SubscriptionHandler struct {
	subSvc   service.SubscriptionService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewSubscriptionHandler creates a new SubscriptionHandler.
func NewSubscriptionHandler(subSvc service.SubscriptionService, v *validator.Validate, logger zerolog.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{subSvc: subSvc, validate: v, logger: logger}
}

// RegisterRoutes registers the subscription endpoints.
func (h *SubscriptionHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("POST /subscriptions/upgrade", authMw(http.HandlerFunc(h.upgrade)))
	mux.Handle("POST /subscriptions/cancel", authMw(http.HandlerFunc(h.cancel)))
}

// upgrade godoc
// @Summary Apply a confirmed plan purchase
// @Description Called after the external payment processor reports success; activates the plan for one billing period.
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param upgrade body dto.SubscriptionUpgradeDTO true "Confirmed purchase"
// @Success 200 {object} dto.SubscriptionResponseDTO
// @Failure 400 {string} string "invalid request payload"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "user or plan not found"
// @Router /subscriptions/upgrade [post]
func (h *SubscriptionHandler) upgrade(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req dto.SubscriptionUpgradeDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request payload", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	sub, err := h.subSvc.Upgrade(r.Context(), userID, req.PlanID, req.Method)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUnknownPlan):
			http.Error(w, "Plan not found", http.StatusNotFound)
		case errors.Is(err, repository.ErrUserNotFound):
			http.Error(w, "User not found", http.StatusNotFound)
		default:
			h.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to upgrade subscription")
			http.Error(w, "failed to upgrade subscription", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, toSubscriptionDTO(sub))
}

// cancel godoc
// @Summary Cancel the caller's subscription
// @Description Stops renewal. Premium access continues until the current period end.
// @Tags subscriptions
// @Produce json
// @Success 200 {object} dto.SubscriptionResponseDTO
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "user not found"
// @Router /subscriptions/cancel [post]
func (h *SubscriptionHandler) cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.subSvc.Cancel(r.Context(), userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to cancel subscription")
		http.Error(w, "failed to cancel subscription", http.StatusInternalServerError)
		return
	}

	sub, err := h.subSvc.Get(r.Context(), userID)
	if err != nil || sub == nil {
		writeJSON(w, http.StatusOK, dto.SubscriptionResponseDTO{Status: string(model.SubscriptionCanceled)})
		return
	}
	writeJSON(w, http.StatusOK, toSubscriptionDTO(sub))
}

func toSubscriptionDTO(sub *model.Subscription) dto.SubscriptionResponseDTO {
	out := dto.SubscriptionResponseDTO{
		Status:           string(sub.Status),
		PlanID:           sub.PlanID,
		CurrentPeriodEnd: sub.CurrentPeriodEnd,
	}
	if sub.Interval != nil {
		interval := string(*sub.Interval)
		out.Interval = &interval
	}
	return out
}
