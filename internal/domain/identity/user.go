package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/retailorders/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role distinguishes the two kinds of accounts. A shop user owns a supplier
// profile and may upload price lists; a buyer places orders.
type Role string

const (
	RoleBuyer Role = "buyer"
	RoleShop  Role = "shop"
)

// IsValid returns true for a known role
func (r Role) IsValid() bool {
	return r == RoleBuyer || r == RoleShop
}

// Password cost for bcrypt
const bcryptCost = 12

// User represents an account in the system
// It is the aggregate root for identity operations. Email is the login key;
// accounts stay inactive until the confirmation token is redeemed.
type User struct {
	shared.BaseAggregateRoot
	Email        string `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash string `gorm:"type:varchar(100);not null"`
	FirstName    string `gorm:"type:varchar(100)"`
	LastName     string `gorm:"type:varchar(100)"`
	Company      string `gorm:"type:varchar(150)"`
	Position     string `gorm:"type:varchar(100)"`
	Role         Role   `gorm:"type:varchar(10);not null;default:'buyer'"`
	Active       bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new inactive user pending email confirmation
func NewUser(email, password string, role Role) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role must be buyer or shop")
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		PasswordHash:      passwordHash,
		Role:              role,
		Active:            false,
	}

	user.AddDomainEvent(NewUserRegisteredEvent(user))

	return user, nil
}

// SetName sets the user's personal details
func (u *User) SetName(firstName, lastName string) error {
	if len(firstName) > 100 || len(lastName) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 100 characters")
	}

	u.FirstName = strings.TrimSpace(firstName)
	u.LastName = strings.TrimSpace(lastName)
	u.UpdatedAt = time.Now()

	return nil
}

// SetCompany sets the user's company and position
func (u *User) SetCompany(company, position string) error {
	if len(company) > 150 {
		return shared.NewDomainError("INVALID_COMPANY", "Company cannot exceed 150 characters")
	}
	if len(position) > 100 {
		return shared.NewDomainError("INVALID_POSITION", "Position cannot exceed 100 characters")
	}

	u.Company = strings.TrimSpace(company)
	u.Position = strings.TrimSpace(position)
	u.UpdatedAt = time.Now()

	return nil
}

// ChangePassword changes the user's password after verifying the old one
func (u *User) ChangePassword(oldPassword, newPassword string) error {
	if !u.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}

	return u.SetPassword(newPassword)
}

// SetPassword sets a new password without an old password check. Used by the
// reset flow, where the token stands in for the old credential.
func (u *User) SetPassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()

	return nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// Confirm activates the account after email confirmation
func (u *User) Confirm() error {
	if u.Active {
		return shared.NewDomainError("ALREADY_ACTIVE", "Account is already confirmed")
	}

	u.Active = true
	u.UpdatedAt = time.Now()

	u.AddDomainEvent(NewUserConfirmedEvent(u))

	return nil
}

// CanLogin returns true if the account may authenticate
func (u *User) CanLogin() bool {
	return u.Active
}

// IsShop returns true for supplier accounts
func (u *User) IsShop() bool {
	return u.Role == RoleShop
}

// FullName returns the user's display name
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}

// Validation functions

func validatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 128 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	}

	// Check for at least one letter and one number
	hasLetter := regexp.MustCompile(`[a-zA-Z]`).MatchString(password)
	hasNumber := regexp.MustCompile(`[0-9]`).MatchString(password)
	if !hasLetter || !hasNumber {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must contain at least one letter and one number")
	}

	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}

	// Basic email validation
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}

	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
