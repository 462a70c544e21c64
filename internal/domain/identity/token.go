package identity

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/retailorders/backend/internal/domain/shared"
)

// TokenPurpose says what a confirmation token may be redeemed for
type TokenPurpose string

const (
	TokenPurposeConfirmEmail  TokenPurpose = "confirm_email"
	TokenPurposeResetPassword TokenPurpose = "reset_password"
)

// DefaultTokenTTL is how long a confirmation token stays redeemable
const DefaultTokenTTL = 72 * time.Hour

// ConfirmationToken is a one-time random key bound to a user. It is deleted
// on successful redemption, so a second attempt with the same key fails.
type ConfirmationToken struct {
	shared.BaseEntity
	UserID    uuid.UUID    `gorm:"type:uuid;not null;index"`
	Key       string       `gorm:"type:varchar(64);not null;uniqueIndex"`
	Purpose   TokenPurpose `gorm:"type:varchar(20);not null"`
	ExpiresAt time.Time    `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ConfirmationToken) TableName() string {
	return "confirmation_tokens"
}

// NewConfirmationToken issues a fresh token for the user
func NewConfirmationToken(userID uuid.UUID, purpose TokenPurpose) (*ConfirmationToken, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}

	key, err := generateTokenKey()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_GENERATION_ERROR", "Failed to generate token")
	}

	return &ConfirmationToken{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Key:        key,
		Purpose:    purpose,
		ExpiresAt:  time.Now().Add(DefaultTokenTTL),
	}, nil
}

// IsExpired returns true once the token has passed its expiry
func (t *ConfirmationToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

// Matches checks the submitted key against the stored one
func (t *ConfirmationToken) Matches(key string) bool {
	return t.Key == key
}

func generateTokenKey() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
