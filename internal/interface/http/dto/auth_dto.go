package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/freelance-bidding/internal/domain/entity"
	"github.com/ignatzorin/freelance-bidding/internal/service"
)

type RegisterRequest struct {
	Email       string   `json:"email" binding:"required,email"`
	Password    string   `json:"password" binding:"required"`
	DisplayName string   `json:"display_name" binding:"max=100"`
	Roles       []string `json:"roles" binding:"omitempty,dive,role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type ActivateRoleRequest struct {
	Role string `json:"role" binding:"required,role"`
}

type ProfileResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Roles       []string  `json:"roles"`
	CreatedAt   time.Time `json:"created_at"`
}

type AuthResponse struct {
	Profile ProfileResponse   `json:"profile"`
	Tokens  service.TokenPair `json:"tokens"`
}

func ToProfileResponse(p *entity.Profile) ProfileResponse {
	return ProfileResponse{
		ID:          p.ID,
		Email:       p.Email,
		DisplayName: p.DisplayName,
		Roles:       p.Roles.Strings(),
		CreatedAt:   p.CreatedAt,
	}
}

func ToAuthResponse(res *service.AuthResult) AuthResponse {
	return AuthResponse{
		Profile: ToProfileResponse(res.Profile),
		Tokens:  *res.TokenPair,
	}
}
