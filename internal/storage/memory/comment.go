package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"community/internal/apperr"
	"community/internal/comment"
)

type CommentMemoryStorage struct {
	store *Store
}

func NewCommentMemoryStorage(store *Store) *CommentMemoryStorage {
	return &CommentMemoryStorage{store: store}
}

func validateContent(content string) error {
	if content == "" {
		return fmt.Errorf("%w: comment content is empty", apperr.ErrValidation)
	}
	if len([]rune(content)) > comment.MaxContentLen {
		return fmt.Errorf("%w: comment content exceeds %d characters", apperr.ErrValidation, comment.MaxContentLen)
	}
	return nil
}

func (s *CommentMemoryStorage) CreateComment(ctx context.Context, postID, authorID uint, content string) (*comment.View, error) {
	if err := validateContent(content); err != nil {
		return nil, err
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	p, ok := st.livePost(postID)
	if !ok {
		return nil, apperr.ErrNotFound
	}

	c := &commentRec{
		id:        st.nextCommentID,
		postID:    postID,
		userID:    authorID,
		content:   content,
		createdAt: time.Now(),
	}
	st.nextCommentID++
	st.comments[c.id] = c
	p.commentsCount++

	nickname, imageURL := st.authorInfo(authorID)
	return &comment.View{
		ID:             c.id,
		PostID:         c.postID,
		Content:        c.content,
		CreatedAt:      c.createdAt,
		AuthorNickname: nickname,
		AuthorImageURL: imageURL,
		IsOwner:        true,
	}, nil
}

func (s *CommentMemoryStorage) ListComments(ctx context.Context, postID uint, viewerID *uint) ([]*comment.View, error) {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.livePost(postID); !ok {
		return nil, apperr.ErrNotFound
	}

	recs := make([]*commentRec, 0)
	for _, c := range st.comments {
		if c.postID == postID && !c.deleted {
			recs = append(recs, c)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].id < recs[j].id })

	views := make([]*comment.View, 0, len(recs))
	for _, c := range recs {
		nickname, imageURL := st.authorInfo(c.userID)
		v := &comment.View{
			ID:             c.id,
			PostID:         c.postID,
			Content:        c.content,
			CreatedAt:      c.createdAt,
			AuthorNickname: nickname,
			AuthorImageURL: imageURL,
		}
		if viewerID != nil {
			v.IsOwner = c.userID == *viewerID
		}
		views = append(views, v)
	}
	return views, nil
}

// liveComment - существование и владение (вызывать под mu)
func (st *Store) liveOwnedComment(commentID, callerID uint) (*commentRec, error) {
	c, ok := st.comments[commentID]
	if !ok || c.deleted {
		return nil, apperr.ErrNotFound
	}
	if c.userID != callerID {
		return nil, apperr.ErrForbidden
	}
	return c, nil
}

func (s *CommentMemoryStorage) UpdateComment(ctx context.Context, commentID, callerID uint, content string) error {
	if err := validateContent(content); err != nil {
		return err
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	c, err := st.liveOwnedComment(commentID, callerID)
	if err != nil {
		return err
	}
	c.content = content
	return nil
}

func (s *CommentMemoryStorage) DeleteComment(ctx context.Context, commentID, callerID uint) error {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	c, err := st.liveOwnedComment(commentID, callerID)
	if err != nil {
		return err
	}

	c.deleted = true
	if p, ok := st.posts[c.postID]; ok && p.commentsCount > 0 {
		p.commentsCount--
	}
	return nil
}
