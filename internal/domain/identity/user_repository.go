package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// Update updates an existing user
	Update(ctx context.Context, user *User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByPhone finds a user by phone number
	FindByPhone(ctx context.Context, phone string) (*User, error)

	// FindAll returns users matching the filter with pagination
	FindAll(ctx context.Context, filter UserFilter) ([]*User, int64, error)

	// ExistsByPhone checks if a phone number is already registered
	ExistsByPhone(ctx context.Context, phone string) (bool, error)

	// Count returns the total number of users
	Count(ctx context.Context) (int64, error)

	// CountByRole returns the number of users per role
	CountByRole(ctx context.Context) (map[Role]int64, error)
}

// UserFilter contains filter options for querying users
type UserFilter struct {
	// Search keyword for name, phone, or company name
	Keyword string

	// Filter by role
	Role *Role

	// Filter by status
	Status *UserStatus

	// Pagination
	Page     int
	PageSize int

	// Sorting, validated against a column whitelist by the repository
	SortBy    string
	SortOrder string
}
