package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates active user with generated avatar", func(t *testing.T) {
		user, err := NewUser("Acme Packaging", RoleSupplier, "13800138000", "sales@acme.example", "1 Factory Rd")

		require.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, "Acme Packaging", user.Name)
		assert.Equal(t, RoleSupplier, user.Role)
		assert.Equal(t, "13800138000", user.Phone)
		assert.Equal(t, UserStatusActive, user.Status)
		assert.NotEmpty(t, user.Avatar)
		assert.Empty(t, user.PasswordHash)

		events := user.GetDomainEvents()
		assert.Len(t, events, 1)
		_, ok := events[0].(*UserCreatedEvent)
		assert.True(t, ok)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewUser("   ", RoleSupplier, "", "", "1 Factory Rd")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be empty")
	})

	t.Run("fails with unknown role", func(t *testing.T) {
		_, err := NewUser("Acme", Role("WAREHOUSE"), "", "", "")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Unknown role")
	})

	t.Run("manufacturer without address is rejected", func(t *testing.T) {
		_, err := NewUser("Dragon Drinks", RoleManufacturer, "13800138001", "", "")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "contact address")
	})

	t.Run("supplier without address is rejected", func(t *testing.T) {
		_, err := NewUser("Boxes Inc", RoleSupplier, "", "", "   ")

		assert.Error(t, err)
	})

	t.Run("platform and general manager do not need an address", func(t *testing.T) {
		_, err := NewUser("Admin", RolePlatform, "", "", "")
		assert.NoError(t, err)

		_, err = NewUser("GM", RoleGeneralManager, "", "", "")
		assert.NoError(t, err)
	})

	t.Run("fails with malformed phone", func(t *testing.T) {
		_, err := NewUser("Acme", RolePlatform, "not-a@phone", "", "")

		assert.Error(t, err)
	})

	t.Run("fails with malformed email", func(t *testing.T) {
		_, err := NewUser("Acme", RolePlatform, "", "not-an-email", "")

		assert.Error(t, err)
	})
}

func TestUserUpdateProfile(t *testing.T) {
	t.Run("updates contact fields", func(t *testing.T) {
		user, err := NewUser("Acme", RoleSupplier, "13800138000", "", "1 Factory Rd")
		require.NoError(t, err)
		before := user.GetVersion()

		err = user.UpdateProfile("Acme Ltd", "13800138099", "ops@acme.example", "2 Factory Rd")

		require.NoError(t, err)
		assert.Equal(t, "Acme Ltd", user.Name)
		assert.Equal(t, "13800138099", user.Phone)
		assert.Equal(t, "ops@acme.example", user.Email)
		assert.Equal(t, "2 Factory Rd", user.Address)
		assert.Greater(t, user.GetVersion(), before)
	})

	t.Run("supplier cannot clear its address", func(t *testing.T) {
		user, err := NewUser("Acme", RoleSupplier, "", "", "1 Factory Rd")
		require.NoError(t, err)

		err = user.UpdateProfile("Acme", "", "", "")

		assert.Error(t, err)
		assert.Equal(t, "1 Factory Rd", user.Address)
	})
}

func TestUserPassword(t *testing.T) {
	t.Run("set and verify", func(t *testing.T) {
		user, err := NewUser("Admin", RolePlatform, "", "", "")
		require.NoError(t, err)

		require.NoError(t, user.SetPassword("secret1"))
		assert.True(t, user.VerifyPassword("secret1"))
		assert.False(t, user.VerifyPassword("wrong"))
	})

	t.Run("rejects short password", func(t *testing.T) {
		user, err := NewUser("Admin", RolePlatform, "", "", "")
		require.NoError(t, err)

		assert.Error(t, user.SetPassword("abc"))
	})

	t.Run("account without hash verifies any password", func(t *testing.T) {
		user, err := NewUser("Admin", RolePlatform, "", "", "")
		require.NoError(t, err)

		assert.True(t, user.VerifyPassword("anything"))
	})
}

func TestUserStatusTransitions(t *testing.T) {
	t.Run("disable then enable", func(t *testing.T) {
		user, err := NewUser("Acme", RoleSupplier, "", "", "1 Factory Rd")
		require.NoError(t, err)
		user.ClearDomainEvents()

		require.NoError(t, user.Disable())
		assert.Equal(t, UserStatusDisabled, user.Status)
		assert.False(t, user.CanLogin())

		require.NoError(t, user.Enable())
		assert.Equal(t, UserStatusActive, user.Status)
		assert.True(t, user.CanLogin())

		assert.Len(t, user.GetDomainEvents(), 2)
	})

	t.Run("disabling a disabled user fails", func(t *testing.T) {
		user, err := NewUser("Acme", RoleSupplier, "", "", "1 Factory Rd")
		require.NoError(t, err)

		require.NoError(t, user.Disable())
		assert.Error(t, user.Disable())
	})

	t.Run("enabling an active user fails", func(t *testing.T) {
		user, err := NewUser("Acme", RoleSupplier, "", "", "1 Factory Rd")
		require.NoError(t, err)

		assert.Error(t, user.Enable())
	})

	t.Run("toggle flips status", func(t *testing.T) {
		user, err := NewUser("Acme", RoleSupplier, "", "", "1 Factory Rd")
		require.NoError(t, err)

		require.NoError(t, user.ToggleStatus())
		assert.Equal(t, UserStatusDisabled, user.Status)

		require.NoError(t, user.ToggleStatus())
		assert.Equal(t, UserStatusActive, user.Status)
	})
}
