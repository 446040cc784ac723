package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/packsource/backend/internal/application/catalog"
	domainidentity "github.com/packsource/backend/internal/domain/identity"
	"github.com/packsource/backend/internal/interfaces/http/dto"
	"github.com/packsource/backend/internal/interfaces/http/middleware"
)

// ProductHandler handles product catalog HTTP requests
type ProductHandler struct {
	BaseHandler
	productService *catalog.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *catalog.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// caller builds the acting identity from the JWT claims
func (h *ProductHandler) caller(c *gin.Context) (catalog.Actor, bool) {
	id, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return catalog.Actor{}, false
	}
	return catalog.Actor{ID: id, Role: middleware.GetJWTRole(c)}, true
}

// Create lists a new product directly. Sensitive-field creation goes
// through the change-request flow instead.
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalog.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, product)
}

// Get returns a single product
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// List returns products filtered by supplier, status and keyword
func (h *ProductHandler) List(c *gin.Context) {
	var query catalog.ListProductsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	p := dto.NormalizePagination(query.Page, query.PageSize)
	query.Page, query.PageSize = p.Page, p.PageSize

	products, total, err := h.productService.List(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, products, total, query.Page, query.PageSize)
}

// Update edits non-sensitive product fields
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	actor, ok := h.caller(c)
	if !ok {
		return
	}

	var req catalog.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, req, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// UpdateStatus moves a product through its lifecycle
func (h *ProductHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	actor, ok := h.caller(c)
	if !ok {
		return
	}

	var req catalog.UpdateProductStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	product, err := h.productService.UpdateStatus(c.Request.Context(), id, req, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Delete removes a product
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	actor, ok := h.caller(c)
	if !ok {
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id, actor); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers product routes
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	supplierOrPlatform := middleware.RequireRoles(
		string(domainidentity.RoleSupplier),
		string(domainidentity.RolePlatform),
	)

	products := rg.Group("/products")
	{
		products.GET("", h.List)
		products.GET("/:id", h.Get)
		products.POST("", middleware.RequireRoles(string(domainidentity.RoleSupplier)), h.Create)
		products.PUT("/:id", middleware.RequireRoles(string(domainidentity.RoleSupplier)), h.Update)
		products.PATCH("/:id/status", supplierOrPlatform, h.UpdateStatus)
		products.DELETE("/:id", supplierOrPlatform, h.Delete)
	}
}
