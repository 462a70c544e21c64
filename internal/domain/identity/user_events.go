package identity

import (
	"github.com/google/uuid"
	"github.com/retailorders/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeUser = "User"

// Event type constants
const (
	EventTypeUserRegistered         = "UserRegistered"
	EventTypeUserConfirmed          = "UserConfirmed"
	EventTypePasswordResetRequested = "PasswordResetRequested"
)

// UserRegisteredEvent is published when a new account is created
type UserRegisteredEvent struct {
	shared.BaseDomainEvent
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   Role      `json:"role"`
}

// NewUserRegisteredEvent creates a new UserRegisteredEvent
func NewUserRegisteredEvent(user *User) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserRegistered, AggregateTypeUser, user.ID),
		UserID:          user.ID,
		Email:           user.Email,
		Role:            user.Role,
	}
}

// UserConfirmedEvent is published when an account is activated
type UserConfirmedEvent struct {
	shared.BaseDomainEvent
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
}

// NewUserConfirmedEvent creates a new UserConfirmedEvent
func NewUserConfirmedEvent(user *User) *UserConfirmedEvent {
	return &UserConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserConfirmed, AggregateTypeUser, user.ID),
		UserID:          user.ID,
		Email:           user.Email,
	}
}

// PasswordResetRequestedEvent is published when a user asks for a reset token
type PasswordResetRequestedEvent struct {
	shared.BaseDomainEvent
	UserID   uuid.UUID `json:"user_id"`
	Email    string    `json:"email"`
	TokenKey string    `json:"token_key"`
}

// NewPasswordResetRequestedEvent creates a new PasswordResetRequestedEvent
func NewPasswordResetRequestedEvent(user *User, tokenKey string) *PasswordResetRequestedEvent {
	return &PasswordResetRequestedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePasswordResetRequested, AggregateTypeUser, user.ID),
		UserID:          user.ID,
		Email:           user.Email,
		TokenKey:        tokenKey,
	}
}
