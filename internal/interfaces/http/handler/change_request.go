package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/packsource/backend/internal/application/catalog"
	domainidentity "github.com/packsource/backend/internal/domain/identity"
	"github.com/packsource/backend/internal/interfaces/http/dto"
	"github.com/packsource/backend/internal/interfaces/http/middleware"
)

// ChangeRequestHandler handles product change review HTTP requests
type ChangeRequestHandler struct {
	BaseHandler
	changeRequestService *catalog.ChangeRequestService
}

// NewChangeRequestHandler creates a new change request handler
func NewChangeRequestHandler(changeRequestService *catalog.ChangeRequestService) *ChangeRequestHandler {
	return &ChangeRequestHandler{changeRequestService: changeRequestService}
}

// Submit files a change proposal for platform review
func (h *ChangeRequestHandler) Submit(c *gin.Context) {
	var req catalog.SubmitChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	request, err := h.changeRequestService.Submit(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, request)
}

// List returns change requests filtered by status and product
func (h *ChangeRequestHandler) List(c *gin.Context) {
	var query catalog.ListChangeRequestsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	p := dto.NormalizePagination(query.Page, query.PageSize)
	query.Page, query.PageSize = p.Page, p.PageSize

	requests, total, err := h.changeRequestService.List(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, requests, total, query.Page, query.PageSize)
}

// Approve applies a pending change request. The reviewer is the caller.
func (h *ChangeRequestHandler) Approve(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid change request ID")
		return
	}

	reviewerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.changeRequestService.Approve(c.Request.Context(), id, reviewerID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"status": "APPROVED"})
}

// Reject refuses a pending change request with a mandatory reason
func (h *ChangeRequestHandler) Reject(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid change request ID")
		return
	}

	reviewerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req catalog.RejectChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	if err := h.changeRequestService.Reject(c.Request.Context(), id, reviewerID, req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"status": "REJECTED"})
}

// Cancel withdraws the caller's own pending request
func (h *ChangeRequestHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid change request ID")
		return
	}

	supplierID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	req := catalog.CancelChangeRequest{SupplierID: supplierID}
	if err := h.changeRequestService.Cancel(c.Request.Context(), id, req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers change request routes
func (h *ChangeRequestHandler) RegisterRoutes(rg *gin.RouterGroup) {
	supplierOnly := middleware.RequireRoles(string(domainidentity.RoleSupplier))
	platformOnly := middleware.RequireRoles(string(domainidentity.RolePlatform))

	requests := rg.Group("/product-change-requests")
	{
		requests.GET("", h.List)
		requests.POST("", supplierOnly, h.Submit)
		requests.POST("/:id/approve", platformOnly, h.Approve)
		requests.POST("/:id/reject", platformOnly, h.Reject)
		requests.DELETE("/:id", supplierOnly, h.Cancel)
	}
}
