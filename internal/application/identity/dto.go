package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/packsource/backend/internal/domain/identity"
	"github.com/packsource/backend/internal/infrastructure/auth"
)

// LoginRequest represents a login attempt
type LoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Role     string `json:"role" binding:"required"`
	Password string `json:"password"`
}

// LoginResponse carries the authenticated user and its token pair
type LoginResponse struct {
	User   UserResponse    `json:"user"`
	Tokens *auth.TokenPair `json:"tokens"`
}

// ResetPasswordRequest asks for a password reset
type ResetPasswordRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// ResetPasswordResponse reports the channels a reset would be delivered on
type ResetPasswordResponse struct {
	Channels []string `json:"channels"`
}

// CreateUserRequest represents a request to create a user account
type CreateUserRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	Role    string `json:"role" binding:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// UpdateUserRequest represents a profile update
type UpdateUserRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// UpdateAvatarRequest replaces the account avatar
type UpdateAvatarRequest struct {
	Avatar string `json:"avatar" binding:"required"`
}

// ChangePasswordRequest sets a new password for the account
type ChangePasswordRequest struct {
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// ListUsersQuery filters the user list
type ListUsersQuery struct {
	Role      string `form:"role"`
	Status    string `form:"status"`
	Keyword   string `form:"keyword"`
	Page      int    `form:"page"`
	PageSize  int    `form:"pageSize"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	Avatar    string     `json:"avatar"`
	Phone     string     `json:"phone,omitempty"`
	Email     string     `json:"email,omitempty"`
	Address   string     `json:"address,omitempty"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	LastLogin *time.Time `json:"lastLoginAt,omitempty"`
}

// ToUserResponse converts a domain user to its API representation
func ToUserResponse(user *identity.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Role:      string(user.Role),
		Avatar:    user.Avatar,
		Phone:     user.Phone,
		Email:     user.Email,
		Address:   user.Address,
		Status:    string(user.Status),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
		LastLogin: user.LastLoginAt,
	}
}
