package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/retailorders/backend/internal/domain/identity"
)

// RegisterInput contains the input for account registration
type RegisterInput struct {
	Email     string
	Password  string
	Role      identity.Role
	FirstName string
	LastName  string
	Company   string
	Position  string
}

// ConfirmEmailInput contains the input for email confirmation
type ConfirmEmailInput struct {
	Email string
	Token string
}

// LoginInput contains the input for user login
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  UserInfo
}

// LogoutInput contains the token identifiers to revoke
type LogoutInput struct {
	AccessJTI        string
	AccessRemaining  time.Duration
	RefreshJTI       string
	RefreshRemaining time.Duration
}

// ConfirmPasswordResetInput contains the input for completing a password reset
type ConfirmPasswordResetInput struct {
	Email       string
	Token       string
	NewPassword string
}

// UserInfo contains basic account information
type UserInfo struct {
	ID        uuid.UUID
	Email     string
	FirstName string
	LastName  string
	Company   string
	Position  string
	Role      identity.Role
	Active    bool
}

// userInfoFrom maps a user aggregate to its transport shape
func userInfoFrom(user *identity.User) UserInfo {
	return UserInfo{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Company:   user.Company,
		Position:  user.Position,
		Role:      user.Role,
		Active:    user.Active,
	}
}

// UpdateDetailsInput contains the input for a profile update. Nil fields are
// left unchanged; a non-nil password is re-hashed.
type UpdateDetailsInput struct {
	UserID    uuid.UUID
	FirstName *string
	LastName  *string
	Company   *string
	Position  *string
	Password  *string
}

// ContactInput contains the address fields for creating or updating a contact
type ContactInput struct {
	City      string
	Street    string
	House     string
	Building  string
	Apartment string
	Phone     string
}
