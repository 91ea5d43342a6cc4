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

// RewardsHandler handles the coupon catalog and redemption endpoints.
type RewardsHandler struct {
	rewardsSvc service.RewardsService
	validate   *validator.Validate
	logger     zerolog.Logger
}

// NewRewardsHandler creates a new RewardsHandler.
func NewRewardsHandler(rewardsSvc service.RewardsService, v *validator.Validate, logger zerolog.Logger) *RewardsHandler {
	return &RewardsHandler{rewardsSvc: rewardsSvc, validate: v, logger: logger}
}

// RegisterRoutes mounts v1 rewards routes
func (h *RewardsHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("GET /rewards/coupons", authMw(http.HandlerFunc(h.listCoupons)))
	mux.Handle("POST /rewards/redeem", authMw(http.HandlerFunc(h.redeem)))
	mux.Handle("GET /rewards/redemptions", authMw(http.HandlerFunc(h.listRedemptions)))
}

// listCoupons godoc
// @Summary List the redeemable coupon catalog
// @Tags rewards
// @Produce json
// @Success 200 {array} model.Coupon
// @Failure 401 {string} string "unauthorized"
// @Router /rewards/coupons [get]
func (h *RewardsHandler) listCoupons(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.rewardsSvc.Catalog())
}

// redeem godoc
// @Summary Redeem a coupon against the caller's point balance
// @Description Requires an active premium entitlement and sufficient spendable points. The coupon cost is resolved server-side.
// @Tags rewards
// @Accept json
// @Produce json
// @Param redeem body dto.RedeemDTO true "Redemption request"
// @Success 200 {object} dto.RedeemResponseDTO
// @Failure 400 {string} string "invalid request payload"
// @Failure 401 {string} string "unauthorized"
// @Router /rewards/redeem [post]
func (h *RewardsHandler) redeem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req dto.RedeemDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request payload", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	redemption, err := h.rewardsSvc.Redeem(r.Context(), userID, req.CouponID)
	if err != nil {
		if message, status, known := rejectionMessage(err); known {
			writeJSON(w, status, dto.RedeemResponseDTO{Success: false, Message: message})
			return
		}
		h.logger.Error().Err(err).Str("user_id", userID).Msg("Redemption failed")
		http.Error(w, "failed to redeem coupon", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, dto.RedeemResponseDTO{Success: true, Code: redemption.Code})
}

// rejectionMessage maps redemption rejections to the short human-readable
// messages the rewards UI shows. Unknown errors stay internal.
func rejectionMessage(err error) (string, int, bool) {
	switch {
	case errors.Is(err, repository.ErrNotEntitled):
		return "Subscription required", http.StatusForbidden, true
	case errors.Is(err, repository.ErrInsufficientBalance):
		return "Insufficient points", http.StatusConflict, true
	case errors.Is(err, repository.ErrUserNotFound):
		return "User not found", http.StatusNotFound, true
	case errors.Is(err, repository.ErrUnknownCoupon):
		return "Coupon not found", http.StatusNotFound, true
	default:
		return "", 0, false
	}
}

// listRedemptions godoc
// @Summary List the caller's redemption history
// @Tags rewards
// @Produce json
// @Success 200 {array} dto.RedemptionResponseDTO
// @Failure 401 {string} string "unauthorized"
// @Router /rewards/redemptions [get]
func (h *RewardsHandler) listRedemptions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	redemptions, err := h.rewardsSvc.History(r.Context(), userID)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to list redemptions")
		http.Error(w, "failed to list redemptions", http.StatusInternalServerError)
		return
	}

	out := make([]dto.RedemptionResponseDTO, 0, len(redemptions))
	for _, rec := range redemptions {
		out = append(out, dto.RedemptionResponseDTO{
			ID:        rec.ID,
			CouponID:  rec.CouponID,
			Provider:  rec.Provider,
			Code:      rec.Code,
			Cost:      rec.Cost,
			CreatedAt: rec.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
