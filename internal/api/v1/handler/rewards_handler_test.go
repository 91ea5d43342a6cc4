package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"app/internal/api/v1/dto"
	"app/internal/middleware"
	"app/internal/model"
	"app/internal/repository"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type stubRedemptionRepo struct {
	err error
}

func (s *stubRedemptionRepo) Redeem(ctx context.Context, userID string, coupon model.Coupon, now time.Time) (*model.Redemption, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &model.Redemption{
		UserID:   userID,
		CouponID: coupon.ID,
		Provider: coupon.Provider,
		Code:     "AMA-TEST01-2025",
		Cost:     coupon.Cost,
	}, nil
}

func (s *stubRedemptionRepo) ListByUser(ctx context.Context, userID string, limit int) ([]model.Redemption, error) {
	return nil, nil
}

func redeemRequest(t *testing.T, h *RewardsHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/rewards/redeem", strings.NewReader(body))
	ctx := context.WithValue(req.Context(), middleware.UserContextKey, "u1")
	rec := httptest.NewRecorder()
	h.redeem(rec, req.WithContext(ctx))
	return rec
}

func newRewardsHandler(repoErr error) *RewardsHandler {
	svc := service.NewRewardsService(&stubRedemptionRepo{err: repoErr}, nil, "", zerolog.Nop())
	return NewRewardsHandler(svc, validator.New(validator.WithRequiredStructEnabled()), zerolog.Nop())
}

func decodeRedeemResponse(t *testing.T, rec *httptest.ResponseRecorder) dto.RedeemResponseDTO {
	t.Helper()
	var resp dto.RedeemResponseDTO
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestRedeemSuccessReturnsCode(t *testing.T) {
	rec := redeemRequest(t, newRewardsHandler(nil), `{"coupon_id":"amazon-5"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeRedeemResponse(t, rec)
	if !resp.Success || resp.Code == "" {
		t.Fatalf("expected success with code, got %+v", resp)
	}
}

func TestRedeemNotEntitledMessage(t *testing.T) {
	rec := redeemRequest(t, newRewardsHandler(repository.ErrNotEntitled), `{"coupon_id":"amazon-5"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	resp := decodeRedeemResponse(t, rec)
	if resp.Success || resp.Message != "Subscription required" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestRedeemInsufficientBalanceMessage(t *testing.T) {
	rec := redeemRequest(t, newRewardsHandler(repository.ErrInsufficientBalance), `{"coupon_id":"amazon-5"}`)
	resp := decodeRedeemResponse(t, rec)
	if resp.Success || resp.Message != "Insufficient points" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestRedeemUserNotFoundMessage(t *testing.T) {
	rec := redeemRequest(t, newRewardsHandler(repository.ErrUserNotFound), `{"coupon_id":"amazon-5"}`)
	resp := decodeRedeemResponse(t, rec)
	if resp.Success || resp.Message != "User not found" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestRedeemMissingCouponIDRejected(t *testing.T) {
	rec := redeemRequest(t, newRewardsHandler(nil), `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing coupon_id, got %d", rec.Code)
	}
}
