package models

import (
	"time"

	"github.com/packsource/backend/internal/domain/identity"
	"github.com/packsource/backend/internal/domain/shared"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	AggregateModel
	Name         string              `gorm:"type:varchar(100);not null"`
	Role         identity.Role       `gorm:"type:varchar(20);not null;index"`
	Avatar       string              `gorm:"type:text"`
	Phone        string              `gorm:"type:varchar(20);not null;uniqueIndex"`
	Email        string              `gorm:"type:varchar(255)"`
	Address      string              `gorm:"type:text"`
	Status       identity.UserStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	PasswordHash string              `gorm:"type:varchar(100)"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		Name:         m.Name,
		Role:         m.Role,
		Avatar:       m.Avatar,
		Phone:        m.Phone,
		Email:        m.Email,
		Address:      m.Address,
		Status:       m.Status,
		PasswordHash: m.PasswordHash,
		LastLoginAt:  m.LastLoginAt,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.Name = u.Name
	m.Role = u.Role
	m.Avatar = u.Avatar
	m.Phone = u.Phone
	m.Email = u.Email
	m.Address = u.Address
	m.Status = u.Status
	m.PasswordHash = u.PasswordHash
	m.LastLoginAt = u.LastLoginAt
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}
