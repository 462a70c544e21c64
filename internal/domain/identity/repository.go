package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the persistence contract for users
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// ContactRepository defines the persistence contract for shipping contacts
type ContactRepository interface {
	Create(ctx context.Context, contact *Contact) error
	Update(ctx context.Context, contact *Contact) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Contact, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*Contact, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

// ConfirmationTokenRepository defines the persistence contract for one-time
// tokens. Consume deletes the token so it can only be redeemed once.
type ConfirmationTokenRepository interface {
	Create(ctx context.Context, token *ConfirmationToken) error
	FindByKey(ctx context.Context, key string) (*ConfirmationToken, error)
	FindByUserAndPurpose(ctx context.Context, userID uuid.UUID, purpose TokenPurpose) (*ConfirmationToken, error)
	Consume(ctx context.Context, id uuid.UUID) error
	DeleteByUserAndPurpose(ctx context.Context, userID uuid.UUID, purpose TokenPurpose) error
}
