package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// newTestStorages собирает все хранилища поверх одного Store.
// bcrypt.MinCost - чтобы тесты с регистрацией не тормозили.
func newTestStorages(t *testing.T) (*Store, *UserMemoryStorage, *SessionMemoryStorage, *PostMemoryStorage, *CommentMemoryStorage, *LikeMemoryStorage) {
	t.Helper()
	st := NewStore()
	return st,
		NewUserMemoryStorage(st, bcrypt.MinCost),
		NewSessionMemoryStorage(st),
		NewPostMemoryStorage(st),
		NewCommentMemoryStorage(st),
		NewLikeMemoryStorage(st)
}

func registerTestUser(t *testing.T, users *UserMemoryStorage, email, nickname string) uint {
	t.Helper()
	p, err := users.RegisterUser(context.Background(), email, "secret123", nickname, "")
	require.NoError(t, err)
	return p.ID
}

func createTestPost(t *testing.T, posts *PostMemoryStorage, authorID uint, title string) uint {
	t.Helper()
	d, err := posts.CreatePost(context.Background(), authorID, title, "content", "")
	require.NoError(t, err)
	return d.ID
}
