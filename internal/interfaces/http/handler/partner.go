package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/retailorders/backend/internal/application/catalog"
	importapp "github.com/retailorders/backend/internal/application/import"
	orderingapp "github.com/retailorders/backend/internal/application/ordering"
	"github.com/retailorders/backend/internal/domain/shared"
	"github.com/retailorders/backend/internal/interfaces/http/dto"
)

// PartnerHandler serves the shop-side endpoints
type PartnerHandler struct {
	BaseHandler
	importService  *importapp.PriceListImportService
	partnerService *catalogapp.PartnerService
	orderService   *orderingapp.OrderService
}

// NewPartnerHandler creates a new partner handler
func NewPartnerHandler(
	importService *importapp.PriceListImportService,
	partnerService *catalogapp.PartnerService,
	orderService *orderingapp.OrderService,
) *PartnerHandler {
	return &PartnerHandler{
		importService:  importService,
		partnerService: partnerService,
		orderService:   orderService,
	}
}

// PartnerUpdateRequest points at the YAML price list to import
type PartnerUpdateRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// PartnerStateRequest switches order acceptance on or off
type PartnerStateRequest struct {
	AcceptingOrders *bool `json:"accepting_orders" binding:"required"`
}

// Update godoc
// @Summary      Import a price list, replacing the shop's catalog
// @Tags         partner
// @Security     BearerAuth
// @Param        request body PartnerUpdateRequest true "Price list URL"
// @Success      200 {object} dto.Response{data=importapp.ImportResult}
// @Router       /partner/update [post]
func (h *PartnerHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req PartnerUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.importService.Import(c.Request.Context(), importapp.ImportInput{
		URL:    req.URL,
		UserID: userID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GetState godoc
// @Summary      Get the shop's order-accepting state
// @Tags         partner
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=catalogapp.PartnerStateResult}
// @Router       /partner/state [get]
func (h *PartnerHandler) GetState(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	state, err := h.partnerService.GetState(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, state)
}

// SetState godoc
// @Summary      Switch the shop's order acceptance on or off
// @Tags         partner
// @Security     BearerAuth
// @Param        request body PartnerStateRequest true "Desired state"
// @Success      200 {object} dto.Response{data=catalogapp.PartnerStateResult}
// @Router       /partner/state [post]
func (h *PartnerHandler) SetState(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req PartnerStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	state, err := h.partnerService.SetState(c.Request.Context(), userID, *req.AcceptingOrders)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, state)
}

// Orders godoc
// @Summary      List orders containing the shop's listings
// @Tags         partner
// @Security     BearerAuth
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=[]orderingapp.OrderView}
// @Router       /partner/orders [get]
func (h *PartnerHandler) Orders(c *gin.Context) {
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

	orders, total, err := h.orderService.ListPartnerOrders(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, orders, total, req.Page, req.PageSize)
}
