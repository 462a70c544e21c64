package identity

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/retailorders/backend/internal/domain/identity"
	"github.com/retailorders/backend/internal/domain/shared"
	"github.com/retailorders/backend/internal/infrastructure/auth"
)

// AuthService handles registration, confirmation and token lifecycle
type AuthService struct {
	users     identity.UserRepository
	tokens    identity.ConfirmationTokenRepository
	jwt       *auth.JWTService
	blacklist auth.TokenBlacklist
	events    shared.EventPublisher
	logger    *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	users identity.UserRepository,
	tokens identity.ConfirmationTokenRepository,
	jwt *auth.JWTService,
	blacklist auth.TokenBlacklist,
	events shared.EventPublisher,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		jwt:       jwt,
		blacklist: blacklist,
		events:    events,
		logger:    logger,
	}
}

// Register creates a new inactive account and issues a confirmation token.
// The confirmation email is sent by the event handler once the token exists.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*UserInfo, error) {
	exists, err := s.users.ExistsByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Error("failed to check email existence", zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("EMAIL_EXISTS", "An account with this email already exists")
	}

	user, err := identity.NewUser(input.Email, input.Password, input.Role)
	if err != nil {
		return nil, err
	}
	if err := user.SetName(input.FirstName, input.LastName); err != nil {
		return nil, err
	}
	if err := user.SetCompany(input.Company, input.Position); err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		s.logger.Error("failed to create user", zap.String("email", user.Email), zap.Error(err))
		return nil, err
	}

	token, err := identity.NewConfirmationToken(user.ID, identity.TokenPurposeConfirmEmail)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Create(ctx, token); err != nil {
		s.logger.Error("failed to create confirmation token",
			zap.String("user_id", user.ID.String()), zap.Error(err))
		return nil, err
	}

	// The token must be persisted before the handler looks it up
	if err := s.events.Publish(ctx, user.GetDomainEvents()...); err != nil {
		s.logger.Warn("failed to publish registration events", zap.Error(err))
	}
	user.ClearDomainEvents()

	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.String("role", string(user.Role)),
	)

	info := userInfoFrom(user)
	return &info, nil
}

// ConfirmEmail activates an account using a previously issued token
func (s *AuthService) ConfirmEmail(ctx context.Context, input ConfirmEmailInput) error {
	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_TOKEN", "Invalid email or confirmation token")
		}
		return err
	}

	token, err := s.tokens.FindByKey(ctx, input.Token)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_TOKEN", "Invalid email or confirmation token")
		}
		return err
	}

	if token.UserID != user.ID || token.Purpose != identity.TokenPurposeConfirmEmail || !token.Matches(input.Token) {
		return shared.NewDomainError("INVALID_TOKEN", "Invalid email or confirmation token")
	}
	if token.IsExpired() {
		return shared.NewDomainError("TOKEN_EXPIRED", "Confirmation token has expired")
	}

	if err := user.Confirm(); err != nil {
		return err
	}
	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Error("failed to activate user", zap.String("user_id", user.ID.String()), zap.Error(err))
		return err
	}

	if err := s.tokens.Consume(ctx, token.ID); err != nil {
		s.logger.Warn("failed to consume confirmation token",
			zap.String("token_id", token.ID.String()), zap.Error(err))
	}

	if err := s.events.Publish(ctx, user.GetDomainEvents()...); err != nil {
		s.logger.Warn("failed to publish confirmation events", zap.Error(err))
	}
	user.ClearDomainEvents()

	s.logger.Info("email confirmed", zap.String("user_id", user.ID.String()))
	return nil
}

// Login verifies credentials and issues a token pair
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
		}
		return nil, err
	}

	if !user.VerifyPassword(input.Password) {
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}
	if !user.CanLogin() {
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account is not confirmed")
	}

	pair, err := s.jwt.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err != nil {
		s.logger.Error("failed to generate tokens", zap.String("user_id", user.ID.String()), zap.Error(err))
		return nil, err
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID.String()))

	return &LoginResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		User:                  userInfoFrom(user),
	}, nil
}

// Logout revokes the presented tokens for their remaining lifetime
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if input.AccessJTI != "" && input.AccessRemaining > 0 {
		if err := s.blacklist.AddToBlacklist(ctx, input.AccessJTI, input.AccessRemaining); err != nil {
			s.logger.Error("failed to blacklist access token", zap.Error(err))
			return err
		}
	}
	if input.RefreshJTI != "" && input.RefreshRemaining > 0 {
		if err := s.blacklist.AddToBlacklist(ctx, input.RefreshJTI, input.RefreshRemaining); err != nil {
			s.logger.Error("failed to blacklist refresh token", zap.Error(err))
			return err
		}
	}
	return nil
}

// Refresh exchanges a valid refresh token for a fresh pair. The spent refresh
// token is revoked so it cannot be replayed.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Invalid or expired refresh token")
	}

	revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		s.logger.Warn("blacklist check failed during refresh", zap.Error(err))
	} else if revoked {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Refresh token has been revoked")
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Invalid or expired refresh token")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_TOKEN", "Invalid or expired refresh token")
		}
		return nil, err
	}
	if !user.CanLogin() {
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account is not confirmed")
	}

	pair, err := s.jwt.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err != nil {
		s.logger.Error("failed to generate tokens", zap.String("user_id", user.ID.String()), zap.Error(err))
		return nil, err
	}

	if ttl := claims.GetRemainingTTL(); ttl > 0 {
		if err := s.blacklist.AddToBlacklist(ctx, claims.ID, ttl); err != nil {
			s.logger.Warn("failed to revoke spent refresh token", zap.Error(err))
		}
	}

	return &LoginResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		User:                  userInfoFrom(user),
	}, nil
}

// RequestPasswordReset issues a reset token. An unknown email returns
// success without doing anything, so the endpoint does not leak which
// addresses are registered.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Debug("password reset requested for unknown email")
			return nil
		}
		return err
	}

	// A new request supersedes any outstanding token
	if err := s.tokens.DeleteByUserAndPurpose(ctx, user.ID, identity.TokenPurposeResetPassword); err != nil {
		s.logger.Warn("failed to delete stale reset tokens",
			zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	token, err := identity.NewConfirmationToken(user.ID, identity.TokenPurposeResetPassword)
	if err != nil {
		return err
	}
	if err := s.tokens.Create(ctx, token); err != nil {
		s.logger.Error("failed to create reset token",
			zap.String("user_id", user.ID.String()), zap.Error(err))
		return err
	}

	if err := s.events.Publish(ctx, identity.NewPasswordResetRequestedEvent(user, token.Key)); err != nil {
		s.logger.Warn("failed to publish password reset event", zap.Error(err))
	}

	s.logger.Info("password reset requested", zap.String("user_id", user.ID.String()))
	return nil
}

// ConfirmPasswordReset sets a new password using a reset token
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, input ConfirmPasswordResetInput) error {
	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_TOKEN", "Invalid email or reset token")
		}
		return err
	}

	token, err := s.tokens.FindByKey(ctx, input.Token)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_TOKEN", "Invalid email or reset token")
		}
		return err
	}

	if token.UserID != user.ID || token.Purpose != identity.TokenPurposeResetPassword {
		return shared.NewDomainError("INVALID_TOKEN", "Invalid email or reset token")
	}
	if token.IsExpired() {
		return shared.NewDomainError("TOKEN_EXPIRED", "Reset token has expired")
	}

	if err := user.SetPassword(input.NewPassword); err != nil {
		return err
	}
	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Error("failed to update password", zap.String("user_id", user.ID.String()), zap.Error(err))
		return err
	}

	if err := s.tokens.Consume(ctx, token.ID); err != nil {
		s.logger.Warn("failed to consume reset token",
			zap.String("token_id", token.ID.String()), zap.Error(err))
	}

	s.logger.Info("password reset completed", zap.String("user_id", user.ID.String()))
	return nil
}
