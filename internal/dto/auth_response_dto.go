package dto

import (
	"time"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

// LoginRequest is the static credential login payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=64"`
	Password string `json:"password" binding:"required,max=128"`
}

// AuthResponse defines the structure for authentication responses containing access tokens.
type AuthResponse struct {
	OK          bool        `json:"ok"`
	AccessToken string      `json:"accessToken"`
	TokenType   string      `json:"tokenType"`
	ExpiresAt   time.Time   `json:"expiresAt"`
	Role        domain.Role `json:"role"`
	Profile     string      `json:"profile"`
}
