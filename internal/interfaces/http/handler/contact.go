package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	identityapp "github.com/retailorders/backend/internal/application/identity"
	"github.com/retailorders/backend/internal/domain/identity"
	"github.com/retailorders/backend/internal/interfaces/http/dto"
)

// ContactHandler handles shipping contact HTTP requests
type ContactHandler struct {
	BaseHandler
	contactService *identityapp.ContactService
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contactService *identityapp.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// ContactRequest carries the address fields of a shipping contact
type ContactRequest struct {
	City      string `json:"city" binding:"required,max=100"`
	Street    string `json:"street" binding:"required,max=200"`
	House     string `json:"house" binding:"required,max=20"`
	Building  string `json:"building" binding:"max=20"`
	Apartment string `json:"apartment" binding:"max=20"`
	Phone     string `json:"phone" binding:"required,max=30"`
}

// ContactResponse represents a shipping contact
type ContactResponse struct {
	ID        uuid.UUID `json:"id"`
	City      string    `json:"city"`
	Street    string    `json:"street"`
	House     string    `json:"house"`
	Building  string    `json:"building,omitempty"`
	Apartment string    `json:"apartment,omitempty"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func contactResponseFrom(contact *identity.Contact) ContactResponse {
	return ContactResponse{
		ID:        contact.ID,
		City:      contact.City,
		Street:    contact.Street,
		House:     contact.House,
		Building:  contact.Building,
		Apartment: contact.Apartment,
		Phone:     contact.Phone,
		CreatedAt: contact.CreatedAt,
		UpdatedAt: contact.UpdatedAt,
	}
}

// List godoc
// @Summary      List the caller's shipping contacts
// @Tags         contacts
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=[]ContactResponse}
// @Router       /user/contacts [get]
func (h *ContactHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	contacts, err := h.contactService.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	views := make([]ContactResponse, 0, len(contacts))
	for _, contact := range contacts {
		views = append(views, contactResponseFrom(contact))
	}
	h.Success(c, views)
}

// Create godoc
// @Summary      Add a shipping contact
// @Tags         contacts
// @Security     BearerAuth
// @Param        request body ContactRequest true "Contact address"
// @Success      201 {object} dto.Response{data=ContactResponse}
// @Router       /user/contacts [post]
func (h *ContactHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	contact, err := h.contactService.Create(c.Request.Context(), userID, contactInputFrom(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, contactResponseFrom(contact))
}

// Update godoc
// @Summary      Update one of the caller's shipping contacts
// @Tags         contacts
// @Security     BearerAuth
// @Param        id path string true "Contact ID"
// @Param        request body ContactRequest true "Contact address"
// @Success      200 {object} dto.Response{data=ContactResponse}
// @Router       /user/contacts/{id} [put]
func (h *ContactHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid contact ID")
		return
	}
	contactID := uuid.MustParse(uri.ID)

	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	contact, err := h.contactService.Update(c.Request.Context(), userID, contactID, contactInputFrom(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, contactResponseFrom(contact))
}

// Delete godoc
// @Summary      Remove one of the caller's shipping contacts
// @Tags         contacts
// @Security     BearerAuth
// @Param        id path string true "Contact ID"
// @Success      204
// @Router       /user/contacts/{id} [delete]
func (h *ContactHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid contact ID")
		return
	}

	if err := h.contactService.Delete(c.Request.Context(), userID, uuid.MustParse(uri.ID)); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

func contactInputFrom(req ContactRequest) identityapp.ContactInput {
	return identityapp.ContactInput{
		City:      req.City,
		Street:    req.Street,
		House:     req.House,
		Building:  req.Building,
		Apartment: req.Apartment,
		Phone:     req.Phone,
	}
}
