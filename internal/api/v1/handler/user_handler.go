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

// UserHandler handles profile bootstrap and reads.
type UserHandler struct {
	userSvc  service.UserService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userSvc service.UserService, v *validator.Validate, logger zerolog.Logger) *UserHandler {
	return &UserHandler{userSvc: userSvc, validate: v, logger: logger}
}

// RegisterRoutes mounts v1 user routes
func (h *UserHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("POST /users", authMw(http.HandlerFunc(h.createUser)))
	mux.Handle("GET /me", authMw(http.HandlerFunc(h.getProfile)))
}

// createUser godoc
// @Summary Bootstrap the caller's profile
// @Description Creates the profile with zeroed stats and a free subscription. Called once after signup.
// @Tags users
// @Accept json
// @Produce json
// @Param user body dto.UserCreateDTO true "New user"
// @Success 201 {object} dto.UserResponseDTO
// @Failure 400 {string} string "invalid request payload"
// @Failure 401 {string} string "unauthorized"
// @Router /users [post]
func (h *UserHandler) createUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req dto.UserCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request payload", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.userSvc.Create(r.Context(), userID, req.Email, req.DisplayName)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to create user")
		http.Error(w, "failed to create user", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, dto.UserResponseDTO{
		UserID:      user.UserID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	})
}

// getProfile godoc
// @Summary Get the caller's profile, stats and subscription
// @Tags users
// @Produce json
// @Success 200 {object} model.Profile
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "user not found"
// @Router /me [get]
func (h *UserHandler) getProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	profile, err := h.userSvc.GetProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to fetch profile")
		http.Error(w, "failed to fetch profile", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}
