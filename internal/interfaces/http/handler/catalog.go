package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogapp "github.com/retailorders/backend/internal/application/catalog"
	"github.com/retailorders/backend/internal/domain/shared"
	"github.com/retailorders/backend/internal/interfaces/http/dto"
)

// CatalogHandler serves the public catalog endpoints
type CatalogHandler struct {
	BaseHandler
	catalogService *catalogapp.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *catalogapp.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListProductsRequest narrows the public product search
type ListProductsRequest struct {
	dto.ListRequest
	ShopID     string `form:"shop_id" binding:"omitempty,uuid"`
	CategoryID string `form:"category_id" binding:"omitempty,uuid"`
}

// ListCategories godoc
// @Summary      List product categories
// @Tags         catalog
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=[]catalogapp.CategoryView}
// @Router       /categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}
	req.Normalize()

	filter := shared.DefaultFilter()
	filter.Page = req.Page
	filter.PageSize = req.PageSize
	filter.Search = req.Search

	categories, total, err := h.catalogService.ListCategories(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, categories, total, req.Page, req.PageSize)
}

// ListShops godoc
// @Summary      List shops
// @Tags         catalog
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        search query string false "Filter by shop name"
// @Success      200 {object} dto.Response{data=[]catalogapp.ShopView}
// @Router       /shops [get]
func (h *CatalogHandler) ListShops(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}
	req.Normalize()

	shops, total, err := h.catalogService.ListShops(c.Request.Context(), catalogapp.ListShopsInput{
		Search:   req.Search,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, shops, total, req.Page, req.PageSize)
}

// ListProducts godoc
// @Summary      Search product listings
// @Tags         catalog
// @Param        shop_id query string false "Filter by shop"
// @Param        category_id query string false "Filter by category"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=[]catalogapp.ListingView}
// @Router       /products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var req ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}
	req.Normalize()

	input := catalogapp.QueryListingsInput{
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if req.ShopID != "" {
		id := uuid.MustParse(req.ShopID)
		input.ShopID = &id
	}
	if req.CategoryID != "" {
		id := uuid.MustParse(req.CategoryID)
		input.CategoryID = &id
	}

	listings, total, err := h.catalogService.QueryListings(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, listings, total, req.Page, req.PageSize)
}
