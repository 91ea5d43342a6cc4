package dto

import "time"

// UserCreateDTO is used for incoming create requests
type UserCreateDTO struct {
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"display_name"`
}

// UserResponseDTO is returned in API responses
type UserResponseDTO struct {
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
