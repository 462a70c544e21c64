package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	orderingapp "github.com/retailorders/backend/internal/application/ordering"
	"github.com/retailorders/backend/internal/domain/shared"
	"github.com/retailorders/backend/internal/interfaces/http/dto"
)

// OrderHandler serves the buyer's order endpoints
type OrderHandler struct {
	BaseHandler
	orderService *orderingapp.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *orderingapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// PlaceOrderRequest turns a basket into a placed order
type PlaceOrderRequest struct {
	OrderID   string `json:"order_id" binding:"required,uuid"`
	ContactID string `json:"contact_id" binding:"required,uuid"`
}

// List godoc
// @Summary      List the caller's placed orders
// @Tags         orders
// @Security     BearerAuth
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=[]orderingapp.OrderView}
// @Router       /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}
	req.Normalize()

	filter := shared.DefaultFilter()
	filter.Page = req.Page
	filter.PageSize = req.PageSize

	orders, total, err := h.orderService.ListOrders(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, orders, total, req.Page, req.PageSize)
}

// Place godoc
// @Summary      Place the basket as an order
// @Tags         orders
// @Security     BearerAuth
// @Param        request body PlaceOrderRequest true "Basket and shipping contact"
// @Success      201 {object} dto.Response{data=orderingapp.OrderView}
// @Router       /orders [post]
func (h *OrderHandler) Place(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.orderService.Place(c.Request.Context(), orderingapp.PlaceOrderInput{
		UserID:    userID,
		OrderID:   uuid.MustParse(req.OrderID),
		ContactID: uuid.MustParse(req.ContactID),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// GetByID godoc
// @Summary      Get one of the caller's orders
// @Tags         orders
// @Security     BearerAuth
// @Param        id path string true "Order ID"
// @Success      200 {object} dto.Response{data=orderingapp.OrderView}
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), userID, uuid.MustParse(uri.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}
