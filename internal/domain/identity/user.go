package identity

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/packsource/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role represents the fixed role a user account is created with
type Role string

const (
	RoleManufacturer   Role = "MANUFACTURER"    // Orders packaging from suppliers
	RoleSupplier       Role = "SUPPLIER"        // Lists packaging products
	RolePlatform       Role = "PLATFORM"        // Audits orders and change requests
	RoleGeneralManager Role = "GENERAL_MANAGER" // Read-only reporting access
)

// UserStatus represents the status of a user account
type UserStatus string

const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusDisabled UserStatus = "DISABLED"
)

// Password cost for bcrypt
const bcryptCost = 12

// User represents a platform account
// It is the aggregate root for identity operations
type User struct {
	shared.BaseAggregateRoot
	Name         string
	Role         Role
	Avatar       string
	Phone        string
	Email        string
	Address      string
	Status       UserStatus
	PasswordHash string
	LastLoginAt  *time.Time
}

// NewUser creates a new active user.
// Manufacturer and supplier accounts must carry a contact address.
func NewUser(name string, role Role, phone, email, address string) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot exceed 100 characters")
	}
	if err := validateRole(role); err != nil {
		return nil, err
	}
	phone = strings.TrimSpace(phone)
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return nil, err
		}
	}
	email = strings.TrimSpace(email)
	if email != "" {
		if err := validateEmail(email); err != nil {
			return nil, err
		}
	}
	address = strings.TrimSpace(address)
	if role.RequiresAddress() && address == "" {
		return nil, shared.NewDomainError("ADDRESS_REQUIRED", "Manufacturer and supplier accounts must have a contact address")
	}

	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Role:              role,
		Avatar:            defaultAvatar(),
		Phone:             phone,
		Email:             email,
		Address:           address,
		Status:            UserStatusActive,
	}

	user.AddDomainEvent(NewUserCreatedEvent(user))

	return user, nil
}

// RequiresAddress reports whether this role must carry an address
func (r Role) RequiresAddress() bool {
	return r == RoleManufacturer || r == RoleSupplier
}

// UpdateProfile updates name, phone, email, and address together.
// Role is fixed at creation and never changes.
func (u *User) UpdateProfile(name, phone, email, address string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	phone = strings.TrimSpace(phone)
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return err
		}
	}
	email = strings.TrimSpace(email)
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}
	address = strings.TrimSpace(address)
	if u.Role.RequiresAddress() && address == "" {
		return shared.NewDomainError("ADDRESS_REQUIRED", "Manufacturer and supplier accounts must have a contact address")
	}

	u.Name = name
	u.Phone = phone
	u.Email = email
	u.Address = address
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// SetAvatar sets the user's avatar URL
func (u *User) SetAvatar(avatar string) error {
	avatar = strings.TrimSpace(avatar)
	if avatar == "" {
		return shared.NewDomainError("INVALID_AVATAR", "Avatar URL cannot be empty")
	}
	if len(avatar) > 500000 {
		return shared.NewDomainError("INVALID_AVATAR", "Avatar URL is too large")
	}

	u.Avatar = avatar
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// SetEmail sets the user's email
func (u *User) SetEmail(email string) error {
	email = strings.TrimSpace(email)
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}

	u.Email = email
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// SetPassword sets a new password hash for the account
func (u *User) SetPassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// VerifyPassword checks the given password against the stored hash.
// Accounts without a stored hash authenticate by lookup alone.
func (u *User) VerifyPassword(password string) bool {
	if u.PasswordHash == "" {
		return true
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Enable re-enables a disabled account
func (u *User) Enable() error {
	if u.Status == UserStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "User is already active")
	}

	u.Status = UserStatusActive
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	u.AddDomainEvent(NewUserStatusChangedEvent(u, UserStatusDisabled, UserStatusActive))

	return nil
}

// Disable blocks the account from logging in
func (u *User) Disable() error {
	if u.Status == UserStatusDisabled {
		return shared.NewDomainError("ALREADY_DISABLED", "User is already disabled")
	}

	u.Status = UserStatusDisabled
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	u.AddDomainEvent(NewUserStatusChangedEvent(u, UserStatusActive, UserStatusDisabled))

	return nil
}

// ToggleStatus flips the account between active and disabled
func (u *User) ToggleStatus() error {
	if u.Status == UserStatusActive {
		return u.Disable()
	}
	return u.Enable()
}

// RecordLoginSuccess records a successful login
func (u *User) RecordLoginSuccess() {
	now := time.Now()
	u.LastLoginAt = &now
	u.UpdatedAt = now
	u.IncrementVersion()
}

// IsActive returns true if user is active
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// CanLogin returns true if user can login
func (u *User) CanLogin() bool {
	return u.Status == UserStatusActive
}

func defaultAvatar() string {
	return fmt.Sprintf("https://picsum.photos/seed/%d/200/200", time.Now().UnixNano())
}

// Validation functions

func validateRole(role Role) error {
	switch role {
	case RoleManufacturer, RoleSupplier, RolePlatform, RoleGeneralManager:
		return nil
	default:
		return shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}
}

func validatePhone(phone string) error {
	if len(phone) < 5 || len(phone) > 20 {
		return shared.NewDomainError("INVALID_PHONE", "Phone must be between 5 and 20 characters")
	}

	phoneRegex := regexp.MustCompile(`^\+?[0-9\-]+$`)
	if !phoneRegex.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Phone can only contain digits, hyphens, and a leading plus")
	}

	return nil
}

func validateEmail(email string) error {
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}

	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}

	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if len(password) < 6 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 6 characters")
	}
	if len(password) > 128 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	}

	return nil
}
