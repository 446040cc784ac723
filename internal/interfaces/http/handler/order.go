package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/packsource/backend/internal/application/ordering"
	domainidentity "github.com/packsource/backend/internal/domain/identity"
	"github.com/packsource/backend/internal/interfaces/http/dto"
	"github.com/packsource/backend/internal/interfaces/http/middleware"
)

// OrderHandler handles order HTTP requests
type OrderHandler struct {
	BaseHandler
	orderService *ordering.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *ordering.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Create places a new packaging order
func (h *OrderHandler) Create(c *gin.Context) {
	var req ordering.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// Get returns a single order with its logistics record
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// List returns orders filtered by manufacturer, product, supplier and status
func (h *OrderHandler) List(c *gin.Context) {
	var query ordering.ListOrdersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	p := dto.NormalizePagination(query.Page, query.PageSize)
	query.Page, query.PageSize = p.Page, p.PageSize

	orders, total, err := h.orderService.List(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, orders, total, query.Page, query.PageSize)
}

// Decide approves or rejects a pending order
func (h *OrderHandler) Decide(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req ordering.DecideOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	order, err := h.orderService.Decide(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Ship records logistics and decrements stock in one transaction
func (h *OrderHandler) Ship(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req ordering.ShipOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	order, err := h.orderService.Ship(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Confirm marks a shipped order as received
func (h *OrderHandler) Confirm(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.ConfirmReceipt(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// RegisterRoutes registers order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	manufacturerOnly := middleware.RequireRoles(string(domainidentity.RoleManufacturer))
	supplierOnly := middleware.RequireRoles(string(domainidentity.RoleSupplier))
	platformOnly := middleware.RequireRoles(string(domainidentity.RolePlatform))

	orders := rg.Group("/orders")
	{
		orders.GET("", h.List)
		orders.GET("/:id", h.Get)
		orders.POST("", manufacturerOnly, h.Create)
		orders.PATCH("/:id/status", platformOnly, h.Decide)
		orders.POST("/:id/ship", supplierOnly, h.Ship)
		orders.POST("/:id/confirm", manufacturerOnly, h.Confirm)
	}
}
