package handler

import (
	"time"

	"github.com/google/uuid"
)

// RegisterRequest represents an account registration request
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8,max=128"`
	Role      string `json:"role" binding:"required,oneof=buyer shop"`
	FirstName string `json:"first_name" binding:"max=100"`
	LastName  string `json:"last_name" binding:"max=100"`
	Company   string `json:"company" binding:"max=200"`
	Position  string `json:"position" binding:"max=100"`
}

// ConfirmEmailRequest carries the confirmation token sent by email
type ConfirmEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	Token string `json:"token" binding:"required"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest represents a token refresh request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest optionally carries the refresh token so it can be revoked
// together with the access token
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// PasswordResetRequest starts the password reset flow
type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// PasswordResetConfirmRequest completes the password reset flow
type PasswordResetConfirmRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}

// TokenResponse represents an issued token pair
type TokenResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// AuthUserResponse represents the account attached to a login response
type AuthUserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Company   string    `json:"company,omitempty"`
	Position  string    `json:"position,omitempty"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
}

// LoginResponse represents a successful login or refresh
type LoginResponse struct {
	Token TokenResponse    `json:"token"`
	User  AuthUserResponse `json:"user"`
}

// StatusResponse is a minimal acknowledgement body
type StatusResponse struct {
	Status string `json:"status"`
}
