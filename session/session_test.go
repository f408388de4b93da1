package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/pawtalk/pawtalk-web/session"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func newManager(t *testing.T) *session.Manager {
	t.Helper()
	m, err := session.NewManager(testSecret, time.Hour)
	require.NoError(t, err)
	return m
}

func TestNewManager(t *testing.T) {
	t.Run("short secret rejected", func(t *testing.T) {
		_, err := session.NewManager([]byte("too-short"), time.Hour)
		require.Error(t, err)
		require.Contains(t, err.Error(), "at least 32 bytes")
	})

	t.Run("non-positive TTL rejected", func(t *testing.T) {
		_, err := session.NewManager(testSecret, 0)
		require.Error(t, err)
	})
}

func TestManager_IssueAndValidate(t *testing.T) {
	m := newManager(t)

	token, err := m.Issue("user-1", "jess@example.com", "Jess")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	res := m.Validate(token)
	require.True(t, res.Valid)
	require.Equal(t, "user-1", res.Claims.UserID())
	require.Equal(t, "jess@example.com", res.Claims.Email)
	require.Equal(t, "Jess", res.Claims.Name)
	require.NotEmpty(t, res.Claims.ID)
}

func TestManager_Validate(t *testing.T) {
	m := newManager(t)

	t.Run("absent token", func(t *testing.T) {
		res := m.Validate("")
		require.False(t, res.Valid)
		require.Nil(t, res.Claims)
	})

	t.Run("malformed token", func(t *testing.T) {
		require.False(t, m.Validate("not-a-jwt").Valid)
		require.False(t, m.Validate("a.b.c").Valid)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := session.NewManager([]byte("ffffffffffffffffffffffffffffffff"), time.Hour)
		require.NoError(t, err)

		token, err := other.Issue("user-1", "", "")
		require.NoError(t, err)
		require.False(t, m.Validate(token).Valid)
	})

	t.Run("expired token", func(t *testing.T) {
		issued := time.Now().Add(-2 * time.Hour)
		session.NowTimeFunc = func() time.Time { return issued }
		token, err := m.Issue("user-1", "", "")
		session.NowTimeFunc = time.Now
		require.NoError(t, err)

		require.False(t, m.Validate(token).Valid)
	})

	t.Run("unexpired token near the boundary", func(t *testing.T) {
		issued := time.Now().Add(-59 * time.Minute)
		session.NowTimeFunc = func() time.Time { return issued }
		token, err := m.Issue("user-1", "", "")
		session.NowTimeFunc = time.Now
		require.NoError(t, err)

		require.True(t, m.Validate(token).Valid)
	})
}

func TestClaimsContext(t *testing.T) {
	m := newManager(t)
	token, err := m.Issue("user-7", "sam@example.com", "Sam")
	require.NoError(t, err)

	res := m.Validate(token)
	require.True(t, res.Valid)

	ctx := session.WithClaims(context.Background(), res.Claims)
	require.Equal(t, "user-7", session.ClaimsFrom(ctx).UserID())
	require.Nil(t, session.ClaimsFrom(context.Background()))
}
