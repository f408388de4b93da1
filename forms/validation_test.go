package forms_test

import (
	"strings"
	"testing"

	"github.com/pawtalk/pawtalk-web/forms"
	"github.com/stretchr/testify/require"
)

func TestValidator_ValidateLogin(t *testing.T) {
	v := forms.NewValidator()

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, v.ValidateLogin("user@example.com", "password123"))
	})

	t.Run("empty email", func(t *testing.T) {
		err := v.ValidateLogin("", "password123")
		require.Error(t, err)
		require.Contains(t, err.Error(), "email is required")
	})

	t.Run("invalid email format", func(t *testing.T) {
		err := v.ValidateLogin("userexample.com", "password123")
		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid email format")
	})

	t.Run("missing password", func(t *testing.T) {
		err := v.ValidateLogin("user@example.com", "")
		require.Error(t, err)
		require.Contains(t, err.Error(), "password is required")
	})
}

func TestValidator_ValidateSignup(t *testing.T) {
	v := forms.NewValidator()

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, v.ValidateSignup("Jess", "jess@example.com", "password123"))
	})

	t.Run("missing name", func(t *testing.T) {
		err := v.ValidateSignup("  ", "jess@example.com", "password123")
		require.Error(t, err)
		require.Contains(t, err.Error(), "name is required")
	})

	t.Run("short password", func(t *testing.T) {
		err := v.ValidateSignup("Jess", "jess@example.com", "short")
		require.Error(t, err)
		require.Contains(t, err.Error(), "at least 8 characters")
	})
}

func TestValidator_ValidateContact(t *testing.T) {
	v := forms.NewValidator()

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, v.ValidateContact("Jess", "jess@example.com", "My dog ate the reminder."))
	})

	t.Run("missing message", func(t *testing.T) {
		err := v.ValidateContact("Jess", "jess@example.com", "")
		require.Error(t, err)
		require.Contains(t, err.Error(), "message is required")
	})

	t.Run("message too long", func(t *testing.T) {
		err := v.ValidateContact("Jess", "jess@example.com", strings.Repeat("a", 4001))
		require.Error(t, err)
		require.Contains(t, err.Error(), "at most 4000 characters")
	})
}

func TestValidator_ValidateBookRequest(t *testing.T) {
	v := forms.NewValidator()

	require.NoError(t, v.ValidateBookRequest("Biscuit", "space adventure"))
	require.Error(t, v.ValidateBookRequest("", "space adventure"))
	require.Error(t, v.ValidateBookRequest("Biscuit", ""))
}

func TestValidator_ValidateReminder(t *testing.T) {
	v := forms.NewValidator()

	require.NoError(t, v.ValidateReminder("Vet appointment", "2026-09-01T10:00"))
	require.Error(t, v.ValidateReminder("", "2026-09-01T10:00"))
	require.Error(t, v.ValidateReminder("Vet appointment", ""))
}
