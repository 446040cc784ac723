package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/packsource/backend/internal/application/identity"
	domainidentity "github.com/packsource/backend/internal/domain/identity"
	"github.com/packsource/backend/internal/interfaces/http/dto"
	"github.com/packsource/backend/internal/interfaces/http/middleware"
)

// UserHandler handles user management HTTP requests
type UserHandler struct {
	BaseHandler
	userService *identity.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *identity.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Create registers a new platform account
func (h *UserHandler) Create(c *gin.Context) {
	var req identity.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	user, err := h.userService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, user)
}

// Get returns a single user
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.userService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// List returns users filtered by role, status and keyword
func (h *UserHandler) List(c *gin.Context) {
	var query identity.ListUsersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	p := dto.NormalizePagination(query.Page, query.PageSize)
	query.Page, query.PageSize = p.Page, p.PageSize

	users, total, err := h.userService.List(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, users, total, query.Page, query.PageSize)
}

// mayManageAccount limits account mutation to the owner, with a
// platform override. Writes the 403 itself when the caller fails.
func (h *UserHandler) mayManageAccount(c *gin.Context, id uuid.UUID, message string) bool {
	callerID, err := getUserID(c)
	if err != nil || (callerID != id && middleware.GetJWTRole(c) != string(domainidentity.RolePlatform)) {
		h.Forbidden(c, message)
		return false
	}
	return true
}

// Update edits a user's profile
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	if !h.mayManageAccount(c, id, "Cannot edit another user's profile") {
		return
	}

	var req identity.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	user, err := h.userService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// ToggleStatus flips a user between ACTIVE and DISABLED
func (h *UserHandler) ToggleStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.userService.ToggleStatus(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// UpdateAvatar sets a user's avatar URL
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	if !h.mayManageAccount(c, id, "Cannot change another user's avatar") {
		return
	}

	var req identity.UpdateAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	user, err := h.userService.UpdateAvatar(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// ChangePassword sets a new password for the account
func (h *UserHandler) ChangePassword(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	if !h.mayManageAccount(c, id, "Cannot change another user's password") {
		return
	}

	var req identity.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), id, req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers user management routes
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	platformOnly := middleware.RequireRoles(string(domainidentity.RolePlatform))

	users := rg.Group("/users")
	{
		users.GET("", h.List)
		users.POST("", platformOnly, h.Create)
		users.GET("/:id", h.Get)
		users.PUT("/:id", h.Update)
		users.PATCH("/:id/status", platformOnly, h.ToggleStatus)
		users.PATCH("/:id/avatar", h.UpdateAvatar)
		users.PATCH("/:id/password", h.ChangePassword)
	}
}
