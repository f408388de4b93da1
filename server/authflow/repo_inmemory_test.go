package authflow_test

import (
	"testing"
	"time"

	"github.com/pawtalk/pawtalk-web/server/authflow"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRepo(t *testing.T) {
	t.Run("take removes the state", func(t *testing.T) {
		repo := authflow.NewInMemoryRepo()
		require.NoError(t, repo.Put("state-1", authflow.State{Nonce: "n1", ReturnPath: "/talk"}))

		value, ok := repo.Take("state-1")
		require.True(t, ok)
		require.Equal(t, "n1", value.Nonce)
		require.Equal(t, "/talk", value.ReturnPath)

		_, ok = repo.Take("state-1")
		require.False(t, ok)
	})

	t.Run("unknown state", func(t *testing.T) {
		repo := authflow.NewInMemoryRepo()
		_, ok := repo.Take("never-stored")
		require.False(t, ok)
	})

	t.Run("expired state is rejected", func(t *testing.T) {
		repo := authflow.NewInMemoryRepo()
		require.NoError(t, repo.Put("stale", authflow.State{
			Nonce:     "n2",
			CreatedAt: time.Now().Add(-time.Hour),
		}))

		_, ok := repo.Take("stale")
		require.False(t, ok)
	})
}
