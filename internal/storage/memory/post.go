package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"community/internal/apperr"
	"community/internal/post"
)

type PostMemoryStorage struct {
	store *Store
}

func NewPostMemoryStorage(store *Store) *PostMemoryStorage {
	return &PostMemoryStorage{store: store}
}

// authorInfo - ник и аватар автора; удаленный автор сохраняет подпись
func (st *Store) authorInfo(userID uint) (nickname, imageURL string) {
	if u, ok := st.users[userID]; ok {
		return u.nickname, u.imageURL
	}
	return "", ""
}

func (s *PostMemoryStorage) CreatePost(ctx context.Context, authorID uint, title, content, imageURL string) (*post.Detail, error) {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	p := &postRec{
		id:        st.nextPostID,
		userID:    authorID,
		title:     title,
		content:   content,
		imageURL:  imageURL,
		createdAt: time.Now(),
	}
	st.nextPostID++
	st.posts[p.id] = p

	return st.detail(p, nil), nil
}

func (st *Store) detail(p *postRec, viewerID *uint) *post.Detail {
	nickname, imageURL := st.authorInfo(p.userID)
	d := &post.Detail{
		ID:             p.id,
		Title:          p.title,
		Content:        p.content,
		ImageURL:       p.imageURL,
		LikesCount:     p.likesCount,
		ViewsCount:     p.viewsCount,
		CommentsCount:  p.commentsCount,
		CreatedAt:      p.createdAt,
		AuthorNickname: nickname,
		AuthorImageURL: imageURL,
	}
	if viewerID != nil {
		d.IsOwner = p.userID == *viewerID
		d.IsLiked = st.likes[pairKey{userID: *viewerID, postID: p.id}]
	}
	return d
}

func (s *PostMemoryStorage) ListPosts(ctx context.Context, offset, limit int) ([]*post.Summary, error) {
	if offset < 0 || limit < 0 {
		return nil, fmt.Errorf("%w: offset and limit must be non-negative", apperr.ErrValidation)
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	live := make([]*postRec, 0, len(st.posts))
	for _, p := range st.posts {
		if !p.deleted {
			live = append(live, p)
		}
	}
	// новые первыми
	sort.Slice(live, func(i, j int) bool { return live[i].id > live[j].id })

	if offset >= len(live) {
		return []*post.Summary{}, nil
	}
	end := offset + limit
	if end > len(live) {
		end = len(live)
	}

	summaries := make([]*post.Summary, 0, end-offset)
	for _, p := range live[offset:end] {
		nickname, imageURL := st.authorInfo(p.userID)
		summaries = append(summaries, &post.Summary{
			ID:             p.id,
			Title:          p.title,
			LikesCount:     p.likesCount,
			ViewsCount:     p.viewsCount,
			CommentsCount:  p.commentsCount,
			CreatedAt:      p.createdAt,
			AuthorNickname: nickname,
			AuthorImageURL: imageURL,
		})
	}
	return summaries, nil
}

func (s *PostMemoryStorage) GetPostDetail(ctx context.Context, postID uint, viewerID *uint) (*post.Detail, error) {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	p, ok := st.livePost(postID)
	if !ok {
		return nil, apperr.ErrNotFound
	}

	// первый просмотр этим пользователем двигает счетчик, повторные - нет
	if viewerID != nil {
		key := pairKey{userID: *viewerID, postID: postID}
		if !st.views[key] {
			st.views[key] = true
			p.viewsCount++
		}
	}

	return st.detail(p, viewerID), nil
}

func (s *PostMemoryStorage) UpdatePost(ctx context.Context, postID, callerID uint, upd post.Update) error {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	p, ok := st.livePost(postID)
	if !ok {
		return apperr.ErrNotFound
	}
	if p.userID != callerID {
		return apperr.ErrForbidden
	}

	p.title = upd.Title
	p.content = upd.Content
	if upd.ImageURL != nil {
		p.imageURL = *upd.ImageURL
	}
	return nil
}

func (s *PostMemoryStorage) DeletePost(ctx context.Context, postID, callerID uint) error {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	p, ok := st.livePost(postID)
	if !ok {
		return apperr.ErrNotFound
	}
	if p.userID != callerID {
		return apperr.ErrForbidden
	}

	p.deleted = true
	for _, c := range st.comments {
		if c.postID == postID {
			c.deleted = true
		}
	}
	for key := range st.likes {
		if key.postID == postID {
			delete(st.likes, key)
		}
	}
	for key := range st.views {
		if key.postID == postID {
			delete(st.views, key)
		}
	}
	return nil
}
