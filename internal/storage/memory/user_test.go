package memory

import (
	"context"
	"testing"

	"community/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserMemoryStorage_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Register then login with the same credentials", func(t *testing.T) {
		_, users, _, _, _, _ := newTestStorages(t)

		created, err := users.RegisterUser(ctx, "a@x.com", "secret123", "alice", "/static/a.png")
		require.NoError(t, err)
		assert.Equal(t, uint(1), created.ID)
		assert.Equal(t, "alice", created.Nickname)

		logged, err := users.LoginUser(ctx, "a@x.com", "secret123")
		require.NoError(t, err)
		assert.Equal(t, created.ID, logged.ID)
	})

	t.Run("Duplicate email is rejected", func(t *testing.T) {
		_, users, _, _, _, _ := newTestStorages(t)

		registerTestUser(t, users, "a@x.com", "alice")
		_, err := users.RegisterUser(ctx, "a@x.com", "secret123", "other", "")
		assert.ErrorIs(t, err, apperr.ErrEmailTaken)
	})

	t.Run("Wrong password and unknown email are indistinguishable", func(t *testing.T) {
		_, users, _, _, _, _ := newTestStorages(t)

		registerTestUser(t, users, "a@x.com", "alice")
		_, errWrong := users.LoginUser(ctx, "a@x.com", "oops")
		_, errUnknown := users.LoginUser(ctx, "nobody@x.com", "secret123")
		assert.ErrorIs(t, errWrong, apperr.ErrInvalidCredentials)
		assert.Equal(t, errWrong, errUnknown)
	})

	t.Run("Deleted account frees its email and cannot log in", func(t *testing.T) {
		_, users, _, _, _, _ := newTestStorages(t)

		id := registerTestUser(t, users, "a@x.com", "alice")
		require.NoError(t, users.DeleteUser(ctx, id))

		_, err := users.LoginUser(ctx, "a@x.com", "secret123")
		assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)

		exists, err := users.EmailExists(ctx, "a@x.com")
		require.NoError(t, err)
		assert.False(t, exists)

		again, err := users.RegisterUser(ctx, "a@x.com", "secret123", "alice2", "")
		require.NoError(t, err)
		assert.NotEqual(t, id, again.ID)
	})

	t.Run("ChangePassword invalidates the old one", func(t *testing.T) {
		_, users, _, _, _, _ := newTestStorages(t)

		id := registerTestUser(t, users, "a@x.com", "alice")
		require.NoError(t, users.ChangePassword(ctx, id, "newsecret"))

		_, err := users.LoginUser(ctx, "a@x.com", "secret123")
		assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
		_, err = users.LoginUser(ctx, "a@x.com", "newsecret")
		assert.NoError(t, err)
	})

	t.Run("UpdateNickname", func(t *testing.T) {
		_, users, _, _, _, _ := newTestStorages(t)

		id := registerTestUser(t, users, "a@x.com", "alice")
		require.NoError(t, users.UpdateNickname(ctx, id, "alice2"))

		p, err := users.GetUserByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "alice2", p.Nickname)

		assert.ErrorIs(t, users.UpdateNickname(ctx, 999, "x"), apperr.ErrNotFound)
	})
}
