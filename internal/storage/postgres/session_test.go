package postgres

import (
	"context"
	"testing"
	"time"

	"community/internal/apperr"
	"community/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionPostgresStorage_CreateAndResolve(t *testing.T) {
	storage := NewSessionPostgresStorage()
	ctx := context.Background()

	t.Run("Created token resolves to its user", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		userID := createTestUser(t, "a@x.com", "alice")

		token, err := storage.Create(ctx, userID, time.Hour)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		got, err := storage.Resolve(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, userID, got)
	})

	t.Run("User may hold several concurrent sessions", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		userID := createTestUser(t, "a@x.com", "alice")

		t1, err := storage.Create(ctx, userID, time.Hour)
		require.NoError(t, err)
		t2, err := storage.Create(ctx, userID, time.Hour)
		require.NoError(t, err)
		assert.NotEqual(t, t1, t2)

		id1, err := storage.Resolve(ctx, t1)
		require.NoError(t, err)
		id2, err := storage.Resolve(ctx, t2)
		require.NoError(t, err)
		assert.Equal(t, id1, id2)
	})

	t.Run("Error: empty token", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		_, err := storage.Resolve(ctx, "")
		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	})

	t.Run("Error: unknown token", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		_, err := storage.Resolve(ctx, "no-such-token")
		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	})

	t.Run("Error: expired token is rejected and removed", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		userID := createTestUser(t, "a@x.com", "alice")

		token, err := storage.Create(ctx, userID, -time.Minute)
		require.NoError(t, err)

		_, err = storage.Resolve(ctx, token)
		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

		// истекшая строка удалена лениво
		var count int
		require.NoError(t, DB.Model(&models.Session{}).Where("token = ?", token).Count(&count).Error)
		assert.Equal(t, 0, count)
	})

	t.Run("Error: backing user was soft-deleted", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		userID := createTestUser(t, "a@x.com", "alice")
		token, err := storage.Create(ctx, userID, time.Hour)
		require.NoError(t, err)

		require.NoError(t, DB.Delete(&models.User{}, "id = ?", userID).Error)

		_, err = storage.Resolve(ctx, token)
		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	})
}

func TestSessionPostgresStorage_Delete(t *testing.T) {
	storage := NewSessionPostgresStorage()
	ctx := context.Background()

	t.Run("Deleted token no longer resolves", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		userID := createTestUser(t, "a@x.com", "alice")
		token, err := storage.Create(ctx, userID, time.Hour)
		require.NoError(t, err)

		require.NoError(t, storage.Delete(ctx, token))

		_, err = storage.Resolve(ctx, token)
		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	})

	t.Run("Logout is idempotent", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		assert.NoError(t, storage.Delete(ctx, "no-such-token"))
		assert.NoError(t, storage.Delete(ctx, ""))
	})
}

func TestSessionPostgresStorage_DeleteByUser(t *testing.T) {
	storage := NewSessionPostgresStorage()
	ctx := context.Background()

	oldDB := setupTestDB(t)
	defer teardownTestDB(oldDB)

	alice := createTestUser(t, "a@x.com", "alice")
	bob := createTestUser(t, "b@x.com", "bob")

	t1, err := storage.Create(ctx, alice, time.Hour)
	require.NoError(t, err)
	t2, err := storage.Create(ctx, alice, time.Hour)
	require.NoError(t, err)
	t3, err := storage.Create(ctx, bob, time.Hour)
	require.NoError(t, err)

	require.NoError(t, storage.DeleteByUser(ctx, alice))

	_, err = storage.Resolve(ctx, t1)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	_, err = storage.Resolve(ctx, t2)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

	// чужие сессии не тронуты
	got, err := storage.Resolve(ctx, t3)
	require.NoError(t, err)
	assert.Equal(t, bob, got)
}
