package memory

import (
	"context"

	"community/internal/apperr"
	"community/internal/like"
)

type LikeMemoryStorage struct {
	store *Store
}

func NewLikeMemoryStorage(store *Store) *LikeMemoryStorage {
	return &LikeMemoryStorage{store: store}
}

func (s *LikeMemoryStorage) ToggleLike(ctx context.Context, postID, userID uint) (*like.Result, error) {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	p, ok := st.livePost(postID)
	if !ok {
		return nil, apperr.ErrNotFound
	}

	key := pairKey{userID: userID, postID: postID}
	if st.likes[key] {
		delete(st.likes, key)
		if p.likesCount > 0 {
			p.likesCount--
		}
	} else {
		st.likes[key] = true
		p.likesCount++
	}

	return &like.Result{LikesCount: p.likesCount, IsLiked: st.likes[key]}, nil
}
