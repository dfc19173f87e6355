package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates active user with hashed password", func(t *testing.T) {
		user, err := NewUser(" Gestora ", "segura-1234", "Gestora Principal", RoleGestor)

		require.NoError(t, err)
		assert.Equal(t, "gestora", user.Username)
		assert.Equal(t, "Gestora Principal", user.DisplayName)
		assert.Equal(t, RoleGestor, user.Role)
		assert.True(t, user.Active)
		assert.NotEqual(t, "segura-1234", user.PasswordHash)
		assert.True(t, user.VerifyPassword("segura-1234"))
		assert.False(t, user.VerifyPassword("otra-clave"))
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := NewUser("gestora", "corta", "", RoleGestor)
		assert.Error(t, err)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		_, err := NewUser("gestora", "segura-1234", "", Role("contable"))
		assert.Error(t, err)
	})
}

func TestUserLockout(t *testing.T) {
	user, err := NewUser("gestora", "segura-1234", "", RoleGestor)
	require.NoError(t, err)

	locked := false
	for i := 0; i < 3; i++ {
		locked = user.RecordLoginFailure(3, 15*time.Minute)
	}

	assert.True(t, locked)
	assert.True(t, user.IsLocked())
	assert.False(t, user.CanLogin())
	assert.Zero(t, user.FailedAttempts)

	user.RecordLogin(time.Now())
	assert.False(t, user.IsLocked())
	assert.True(t, user.CanLogin())
	require.NotNil(t, user.LastLoginAt)
}

func TestChangePassword(t *testing.T) {
	user, err := NewUser("gestora", "segura-1234", "", RoleAdmin)
	require.NoError(t, err)

	require.NoError(t, user.ChangePassword("nueva-clave-99"))

	assert.False(t, user.VerifyPassword("segura-1234"))
	assert.True(t, user.VerifyPassword("nueva-clave-99"))
	assert.Error(t, user.ChangePassword("corta"))
}
