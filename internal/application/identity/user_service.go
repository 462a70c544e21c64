package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/retailorders/backend/internal/domain/identity"
)

// UserService handles profile details
type UserService struct {
	users  identity.UserRepository
	logger *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(users identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// GetDetails returns the account's profile
func (s *UserService) GetDetails(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	info := userInfoFrom(user)
	return &info, nil
}

// UpdateDetails applies a partial profile update. Omitted fields keep their
// current values.
func (s *UserService) UpdateDetails(ctx context.Context, input UpdateDetailsInput) (*UserInfo, error) {
	user, err := s.users.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	firstName, lastName := user.FirstName, user.LastName
	if input.FirstName != nil {
		firstName = *input.FirstName
	}
	if input.LastName != nil {
		lastName = *input.LastName
	}
	if err := user.SetName(firstName, lastName); err != nil {
		return nil, err
	}

	company, position := user.Company, user.Position
	if input.Company != nil {
		company = *input.Company
	}
	if input.Position != nil {
		position = *input.Position
	}
	if err := user.SetCompany(company, position); err != nil {
		return nil, err
	}

	if input.Password != nil {
		if err := user.SetPassword(*input.Password); err != nil {
			return nil, err
		}
	}

	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Error("failed to update user details",
			zap.String("user_id", user.ID.String()), zap.Error(err))
		return nil, err
	}

	s.logger.Info("user details updated", zap.String("user_id", user.ID.String()))

	info := userInfoFrom(user)
	return &info, nil
}
