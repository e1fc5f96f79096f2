package memory

import (
	"context"
	"testing"

	"community/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeMemoryStorage_ToggleLike(t *testing.T) {
	ctx := context.Background()

	t.Run("Double toggle returns to the initial state", func(t *testing.T) {
		_, users, _, posts, _, likes := newTestStorages(t)
		alice := registerTestUser(t, users, "a@x.com", "alice")
		bob := registerTestUser(t, users, "b@x.com", "bob")
		postID := createTestPost(t, posts, alice, "T")

		res, err := likes.ToggleLike(ctx, postID, bob)
		require.NoError(t, err)
		assert.True(t, res.IsLiked)
		assert.Equal(t, 1, res.LikesCount)

		res, err = likes.ToggleLike(ctx, postID, bob)
		require.NoError(t, err)
		assert.False(t, res.IsLiked)
		assert.Equal(t, 0, res.LikesCount)

		res, err = likes.ToggleLike(ctx, postID, bob)
		require.NoError(t, err)
		assert.True(t, res.IsLiked)
		assert.Equal(t, 1, res.LikesCount)
	})

	t.Run("Like state is per user", func(t *testing.T) {
		_, users, _, posts, _, likes := newTestStorages(t)
		alice := registerTestUser(t, users, "a@x.com", "alice")
		bob := registerTestUser(t, users, "b@x.com", "bob")
		postID := createTestPost(t, posts, alice, "T")

		_, err := likes.ToggleLike(ctx, postID, alice)
		require.NoError(t, err)
		res, err := likes.ToggleLike(ctx, postID, bob)
		require.NoError(t, err)
		assert.Equal(t, 2, res.LikesCount)

		d, err := posts.GetPostDetail(ctx, postID, &bob)
		require.NoError(t, err)
		assert.True(t, d.IsLiked)
	})

	t.Run("Absent or deleted post", func(t *testing.T) {
		_, users, _, posts, _, likes := newTestStorages(t)
		alice := registerTestUser(t, users, "a@x.com", "alice")
		postID := createTestPost(t, posts, alice, "T")
		require.NoError(t, posts.DeletePost(ctx, postID, alice))

		_, err := likes.ToggleLike(ctx, postID, alice)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
		_, err = likes.ToggleLike(ctx, 999, alice)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}
