package memory

import (
	"context"
	"testing"
	"time"

	"community/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionMemoryStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("Create and resolve", func(t *testing.T) {
		_, users, sessions, _, _, _ := newTestStorages(t)
		id := registerTestUser(t, users, "a@x.com", "alice")

		token, err := sessions.Create(ctx, id, time.Hour)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		got, err := sessions.Resolve(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, id, got)
	})

	t.Run("Expired session is rejected and purged", func(t *testing.T) {
		st, users, sessions, _, _, _ := newTestStorages(t)
		id := registerTestUser(t, users, "a@x.com", "alice")

		token, err := sessions.Create(ctx, id, -time.Minute)
		require.NoError(t, err)

		_, err = sessions.Resolve(ctx, token)
		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

		st.mu.Lock()
		_, stillThere := st.sessions[token]
		st.mu.Unlock()
		assert.False(t, stillThere)
	})

	t.Run("Unknown and empty tokens", func(t *testing.T) {
		_, _, sessions, _, _, _ := newTestStorages(t)

		_, err := sessions.Resolve(ctx, "no-such-token")
		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
		_, err = sessions.Resolve(ctx, "")
		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	})

	t.Run("Session of a deleted user stops resolving", func(t *testing.T) {
		_, users, sessions, _, _, _ := newTestStorages(t)
		id := registerTestUser(t, users, "a@x.com", "alice")

		token, err := sessions.Create(ctx, id, time.Hour)
		require.NoError(t, err)
		require.NoError(t, users.DeleteUser(ctx, id))

		_, err = sessions.Resolve(ctx, token)
		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	})

	t.Run("Delete is idempotent", func(t *testing.T) {
		_, users, sessions, _, _, _ := newTestStorages(t)
		id := registerTestUser(t, users, "a@x.com", "alice")

		token, err := sessions.Create(ctx, id, time.Hour)
		require.NoError(t, err)

		require.NoError(t, sessions.Delete(ctx, token))
		require.NoError(t, sessions.Delete(ctx, token))

		_, err = sessions.Resolve(ctx, token)
		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	})

	t.Run("DeleteByUser drops only that user's sessions", func(t *testing.T) {
		_, users, sessions, _, _, _ := newTestStorages(t)
		alice := registerTestUser(t, users, "a@x.com", "alice")
		bob := registerTestUser(t, users, "b@x.com", "bob")

		t1, err := sessions.Create(ctx, alice, time.Hour)
		require.NoError(t, err)
		t2, err := sessions.Create(ctx, alice, time.Hour)
		require.NoError(t, err)
		t3, err := sessions.Create(ctx, bob, time.Hour)
		require.NoError(t, err)

		require.NoError(t, sessions.DeleteByUser(ctx, alice))

		_, err = sessions.Resolve(ctx, t1)
		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
		_, err = sessions.Resolve(ctx, t2)
		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

		got, err := sessions.Resolve(ctx, t3)
		require.NoError(t, err)
		assert.Equal(t, bob, got)
	})
}
