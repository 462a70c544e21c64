package handler

import (
	"github.com/gin-gonic/gin"

	identityapp "github.com/retailorders/backend/internal/application/identity"
	"github.com/retailorders/backend/internal/domain/identity"
	"github.com/retailorders/backend/internal/infrastructure/auth"
	"github.com/retailorders/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
	jwtService  *auth.JWTService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *identityapp.AuthService, jwtService *auth.JWTService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		jwtService:  jwtService,
	}
}

func authUserFrom(user identityapp.UserInfo) AuthUserResponse {
	return AuthUserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Company:   user.Company,
		Position:  user.Position,
		Role:      string(user.Role),
		Active:    user.Active,
	}
}

// Register godoc
// @Summary      Register a new account
// @Tags         auth
// @Param        request body RegisterRequest true "Account details"
// @Success      201 {object} dto.Response{data=AuthUserResponse}
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), identityapp.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		Role:      identity.Role(req.Role),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Company:   req.Company,
		Position:  req.Position,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, authUserFrom(*user))
}

// ConfirmEmail godoc
// @Summary      Confirm a registered email address
// @Tags         auth
// @Param        request body ConfirmEmailRequest true "Confirmation token"
// @Success      200 {object} dto.Response{data=StatusResponse}
// @Router       /auth/register/confirm [post]
func (h *AuthHandler) ConfirmEmail(c *gin.Context) {
	var req ConfirmEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	err := h.authService.ConfirmEmail(c.Request.Context(), identityapp.ConfirmEmailInput{
		Email: req.Email,
		Token: req.Token,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, StatusResponse{Status: "confirmed"})
}

// Login godoc
// @Summary      Log in with email and password
// @Tags         auth
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} dto.Response{data=LoginResponse}
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), identityapp.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, loginResponseFrom(result))
}

// RefreshToken godoc
// @Summary      Exchange a refresh token for a new token pair
// @Tags         auth
// @Param        request body RefreshTokenRequest true "Refresh token"
// @Success      200 {object} dto.Response{data=LoginResponse}
// @Router       /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, loginResponseFrom(result))
}

// Logout godoc
// @Summary      Log out and revoke the current tokens
// @Tags         auth
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=StatusResponse}
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	input := identityapp.LogoutInput{
		AccessJTI:       claims.ID,
		AccessRemaining: claims.GetRemainingTTL(),
	}

	// The body is optional; when the client sends its refresh token along,
	// it gets revoked in the same call
	var req LogoutRequest
	if err := c.ShouldBindJSON(&req); err == nil && req.RefreshToken != "" {
		if refreshClaims, err := h.jwtService.ValidateRefreshToken(req.RefreshToken); err == nil {
			input.RefreshJTI = refreshClaims.ID
			input.RefreshRemaining = refreshClaims.GetRemainingTTL()
		}
	}

	if err := h.authService.Logout(c.Request.Context(), input); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, StatusResponse{Status: "logged_out"})
}

// RequestPasswordReset godoc
// @Summary      Start the password reset flow
// @Tags         auth
// @Param        request body PasswordResetRequest true "Account email"
// @Success      200 {object} dto.Response{data=StatusResponse}
// @Router       /auth/password/reset [post]
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	if err := h.authService.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		h.HandleError(c, err)
		return
	}

	// Unknown emails get the same answer as known ones
	h.Success(c, StatusResponse{Status: "reset_requested"})
}

// ConfirmPasswordReset godoc
// @Summary      Complete the password reset flow
// @Tags         auth
// @Param        request body PasswordResetConfirmRequest true "Reset token and new password"
// @Success      200 {object} dto.Response{data=StatusResponse}
// @Router       /auth/password/reset/confirm [post]
func (h *AuthHandler) ConfirmPasswordReset(c *gin.Context) {
	var req PasswordResetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	err := h.authService.ConfirmPasswordReset(c.Request.Context(), identityapp.ConfirmPasswordResetInput{
		Email:       req.Email,
		Token:       req.Token,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, StatusResponse{Status: "password_reset"})
}

func loginResponseFrom(result *identityapp.LoginResult) LoginResponse {
	return LoginResponse{
		Token: TokenResponse{
			AccessToken:           result.AccessToken,
			RefreshToken:          result.RefreshToken,
			AccessTokenExpiresAt:  result.AccessTokenExpiresAt,
			RefreshTokenExpiresAt: result.RefreshTokenExpiresAt,
			TokenType:             result.TokenType,
		},
		User: authUserFrom(result.User),
	}
}
