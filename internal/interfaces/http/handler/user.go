package handler

import (
	"github.com/gin-gonic/gin"

	identityapp "github.com/retailorders/backend/internal/application/identity"
)

// UserHandler handles profile-related HTTP requests
type UserHandler struct {
	BaseHandler
	userService *identityapp.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *identityapp.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateDetailsRequest carries a partial profile update. Absent fields are
// left unchanged.
type UpdateDetailsRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,max=100"`
	LastName  *string `json:"last_name" binding:"omitempty,max=100"`
	Company   *string `json:"company" binding:"omitempty,max=200"`
	Position  *string `json:"position" binding:"omitempty,max=100"`
	Password  *string `json:"password" binding:"omitempty,min=8,max=128"`
}

// GetDetails godoc
// @Summary      Get the authenticated account's profile
// @Tags         user
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=AuthUserResponse}
// @Router       /user/details [get]
func (h *UserHandler) GetDetails(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	user, err := h.userService.GetDetails(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, authUserFrom(*user))
}

// UpdateDetails godoc
// @Summary      Update the authenticated account's profile
// @Tags         user
// @Security     BearerAuth
// @Param        request body UpdateDetailsRequest true "Fields to change"
// @Success      200 {object} dto.Response{data=AuthUserResponse}
// @Router       /user/details [put]
func (h *UserHandler) UpdateDetails(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req UpdateDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	user, err := h.userService.UpdateDetails(c.Request.Context(), identityapp.UpdateDetailsInput{
		UserID:    userID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Company:   req.Company,
		Position:  req.Position,
		Password:  req.Password,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, authUserFrom(*user))
}
