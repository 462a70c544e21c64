package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"

	orderingapp "github.com/retailorders/backend/internal/application/ordering"
)

// BasketHandler serves the buyer's basket endpoints
type BasketHandler struct {
	BaseHandler
	basketService *orderingapp.BasketService
}

// NewBasketHandler creates a new basket handler
func NewBasketHandler(basketService *orderingapp.BasketService) *BasketHandler {
	return &BasketHandler{basketService: basketService}
}

// AddItemRequest is one listing to put in the basket
type AddItemRequest struct {
	ListingID string `json:"listing_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// AddItemsRequest adds a batch of listings to the basket
type AddItemsRequest struct {
	Items []AddItemRequest `json:"items" binding:"required,min=1,max=100,dive"`
}

// UpdateItemRequest sets the quantity of one basket line
type UpdateItemRequest struct {
	LineID   string `json:"line_id" binding:"required,uuid"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

// UpdateItemsRequest changes quantities for a batch of basket lines
type UpdateItemsRequest struct {
	Items []UpdateItemRequest `json:"items" binding:"required,min=1,max=100,dive"`
}

// RemoveItemsRequest removes a batch of basket lines
type RemoveItemsRequest struct {
	LineIDs []string `json:"line_ids" binding:"required,min=1,max=100,dive,uuid"`
}

// CountResponse reports how many lines an operation touched
type CountResponse struct {
	Updated int `json:"updated,omitempty"`
	Removed int `json:"removed,omitempty"`
}

// Get godoc
// @Summary      Get the caller's basket
// @Tags         basket
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=orderingapp.OrderView}
// @Router       /basket [get]
func (h *BasketHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	basket, err := h.basketService.GetBasket(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, basket)
}

// Add godoc
// @Summary      Add listings to the basket
// @Tags         basket
// @Security     BearerAuth
// @Param        request body AddItemsRequest true "Listings to add"
// @Success      200 {object} dto.Response{data=[]orderingapp.AddLineResult}
// @Router       /basket [post]
func (h *BasketHandler) Add(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req AddItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	lines := lo.Map(req.Items, func(item AddItemRequest, _ int) orderingapp.AddLineInput {
		return orderingapp.AddLineInput{
			ListingID: uuid.MustParse(item.ListingID),
			Quantity:  item.Quantity,
		}
	})

	results, err := h.basketService.AddLines(c.Request.Context(), userID, lines)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, results)
}

// Update godoc
// @Summary      Change quantities of basket lines
// @Tags         basket
// @Security     BearerAuth
// @Param        request body UpdateItemsRequest true "Lines to change"
// @Success      200 {object} dto.Response{data=CountResponse}
// @Router       /basket [put]
func (h *BasketHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req UpdateItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	lines := lo.Map(req.Items, func(item UpdateItemRequest, _ int) orderingapp.LineQuantityInput {
		return orderingapp.LineQuantityInput{
			LineID:   uuid.MustParse(item.LineID),
			Quantity: item.Quantity,
		}
	})

	updated, err := h.basketService.UpdateQuantities(c.Request.Context(), userID, lines)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, CountResponse{Updated: updated})
}

// Remove godoc
// @Summary      Remove lines from the basket
// @Tags         basket
// @Security     BearerAuth
// @Param        request body RemoveItemsRequest true "Lines to remove"
// @Success      200 {object} dto.Response{data=CountResponse}
// @Router       /basket [delete]
func (h *BasketHandler) Remove(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req RemoveItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	lineIDs := lo.Map(req.LineIDs, func(id string, _ int) uuid.UUID { return uuid.MustParse(id) })

	removed, err := h.basketService.RemoveLines(c.Request.Context(), userID, lineIDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, CountResponse{Removed: removed})
}
