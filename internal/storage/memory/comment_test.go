package memory

import (
	"context"
	"strings"
	"testing"

	"community/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentMemoryStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("Create increments the parent counter", func(t *testing.T) {
		_, users, _, posts, comments, _ := newTestStorages(t)
		alice := registerTestUser(t, users, "a@x.com", "alice")
		bob := registerTestUser(t, users, "b@x.com", "bob")
		postID := createTestPost(t, posts, alice, "T")

		v, err := comments.CreateComment(ctx, postID, bob, "hi")
		require.NoError(t, err)
		assert.Equal(t, "bob", v.AuthorNickname)
		assert.True(t, v.IsOwner)

		d, err := posts.GetPostDetail(ctx, postID, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, d.CommentsCount)
	})

	t.Run("Content bounds", func(t *testing.T) {
		_, users, _, posts, comments, _ := newTestStorages(t)
		alice := registerTestUser(t, users, "a@x.com", "alice")
		postID := createTestPost(t, posts, alice, "T")

		_, err := comments.CreateComment(ctx, postID, alice, "")
		assert.ErrorIs(t, err, apperr.ErrValidation)
		_, err = comments.CreateComment(ctx, postID, alice, strings.Repeat("a", 1001))
		assert.ErrorIs(t, err, apperr.ErrValidation)
		_, err = comments.CreateComment(ctx, postID, alice, strings.Repeat("a", 1000))
		assert.NoError(t, err)
	})

	t.Run("List reports ownership relative to the viewer", func(t *testing.T) {
		_, users, _, posts, comments, _ := newTestStorages(t)
		alice := registerTestUser(t, users, "a@x.com", "alice")
		bob := registerTestUser(t, users, "b@x.com", "bob")
		postID := createTestPost(t, posts, alice, "T")

		_, err := comments.CreateComment(ctx, postID, alice, "mine")
		require.NoError(t, err)
		_, err = comments.CreateComment(ctx, postID, bob, "theirs")
		require.NoError(t, err)

		list, err := comments.ListComments(ctx, postID, &alice)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.True(t, list[0].IsOwner)
		assert.False(t, list[1].IsOwner)

		list, err = comments.ListComments(ctx, postID, nil)
		require.NoError(t, err)
		assert.False(t, list[0].IsOwner)
		assert.False(t, list[1].IsOwner)
	})

	t.Run("Update and delete are author-only", func(t *testing.T) {
		_, users, _, posts, comments, _ := newTestStorages(t)
		alice := registerTestUser(t, users, "a@x.com", "alice")
		bob := registerTestUser(t, users, "b@x.com", "bob")
		postID := createTestPost(t, posts, alice, "T")

		v, err := comments.CreateComment(ctx, postID, alice, "hi")
		require.NoError(t, err)

		assert.ErrorIs(t, comments.UpdateComment(ctx, v.ID, bob, "hacked"), apperr.ErrForbidden)
		assert.ErrorIs(t, comments.DeleteComment(ctx, v.ID, bob), apperr.ErrForbidden)

		require.NoError(t, comments.UpdateComment(ctx, v.ID, alice, "edited"))
		list, err := comments.ListComments(ctx, postID, nil)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "edited", list[0].Content)
	})

	t.Run("Delete decrements the counter and hides the comment", func(t *testing.T) {
		_, users, _, posts, comments, _ := newTestStorages(t)
		alice := registerTestUser(t, users, "a@x.com", "alice")
		postID := createTestPost(t, posts, alice, "T")

		v, err := comments.CreateComment(ctx, postID, alice, "hi")
		require.NoError(t, err)
		require.NoError(t, comments.DeleteComment(ctx, v.ID, alice))

		d, err := posts.GetPostDetail(ctx, postID, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, d.CommentsCount)

		list, err := comments.ListComments(ctx, postID, nil)
		require.NoError(t, err)
		assert.Empty(t, list)

		assert.ErrorIs(t, comments.DeleteComment(ctx, v.ID, alice), apperr.ErrNotFound)
	})
}
