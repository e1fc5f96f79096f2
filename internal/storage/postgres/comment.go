package postgres

import (
	"context"
	"fmt"
	"time"

	"community/internal/apperr"
	"community/internal/comment"
	"community/models"

	"github.com/jinzhu/gorm"
)

type CommentPostgresStorage struct{}

func NewCommentPostgresStorage() *CommentPostgresStorage {
	return &CommentPostgresStorage{}
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

func (s *CommentPostgresStorage) CreateComment(ctx context.Context, postID, authorID uint, content string) (*comment.View, error) {
	if err := validateContent(content); err != nil {
		return nil, err
	}

	tx := DB.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	var p models.Post
	err := tx.First(&p, postID).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find post: %w", err)
	}

	c := &models.Comment{
		PostID:  postID,
		UserID:  authorID,
		Content: content,
	}
	if err := tx.Create(c).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	err = tx.Model(&models.Post{}).Where("id = ?", postID).
		UpdateColumn("comments_count", gorm.Expr("comments_count + 1")).Error
	if err != nil {
		return nil, fmt.Errorf("failed to increment comments count: %w", err)
	}

	var author models.User
	if err := tx.First(&author, authorID).Error; err != nil {
		return nil, fmt.Errorf("failed to find author: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	return &comment.View{
		ID:             c.ID,
		PostID:         c.PostID,
		Content:        c.Content,
		CreatedAt:      c.CreatedAt,
		AuthorNickname: author.Nickname,
		AuthorImageURL: author.ImageURL,
		IsOwner:        true,
	}, nil
}

type commentRow struct {
	ID             uint
	PostID         uint
	UserID         uint
	Content        string
	CreatedAt      time.Time
	AuthorNickname string
	AuthorImageURL string
}

func (s *CommentPostgresStorage) ListComments(ctx context.Context, postID uint, viewerID *uint) ([]*comment.View, error) {
	var count int
	if err := DB.Model(&models.Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to find post: %w", err)
	}
	if count == 0 {
		return nil, apperr.ErrNotFound
	}

	var rows []commentRow
	err := DB.Table("comments").
		Select(`comments.id, comments.post_id, comments.user_id, comments.content, comments.created_at,
			users.nickname AS author_nickname, users.image_url AS author_image_url`).
		Joins("JOIN users ON users.id = comments.user_id").
		Where("comments.post_id = ? AND comments.deleted_at IS NULL", postID).
		Order("comments.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	views := make([]*comment.View, 0, len(rows))
	for _, r := range rows {
		v := &comment.View{
			ID:             r.ID,
			PostID:         r.PostID,
			Content:        r.Content,
			CreatedAt:      r.CreatedAt,
			AuthorNickname: r.AuthorNickname,
			AuthorImageURL: r.AuthorImageURL,
		}
		if viewerID != nil {
			v.IsOwner = r.UserID == *viewerID
		}
		views = append(views, v)
	}
	return views, nil
}

// findOwnedComment - проверка существования и владения (владение по user id)
func findOwnedComment(tx *gorm.DB, commentID, callerID uint) (*models.Comment, error) {
	var c models.Comment
	err := tx.First(&c, commentID).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}
	if c.UserID != callerID {
		return nil, apperr.ErrForbidden
	}
	return &c, nil
}

func (s *CommentPostgresStorage) UpdateComment(ctx context.Context, commentID, callerID uint, content string) error {
	if err := validateContent(content); err != nil {
		return err
	}

	tx := DB.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	if _, err := findOwnedComment(tx, commentID, callerID); err != nil {
		return err
	}

	err := tx.Model(&models.Comment{}).Where("id = ?", commentID).Update("content", content).Error
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

func (s *CommentPostgresStorage) DeleteComment(ctx context.Context, commentID, callerID uint) error {
	tx := DB.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	c, err := findOwnedComment(tx, commentID, callerID)
	if err != nil {
		return err
	}

	if err := tx.Delete(c).Error; err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	// счетчик родителя уменьшается вместе с удалением, но не ниже нуля
	err = tx.Model(&models.Post{}).
		Where("id = ? AND comments_count > 0", c.PostID).
		UpdateColumn("comments_count", gorm.Expr("comments_count - 1")).Error
	if err != nil {
		return fmt.Errorf("failed to decrement comments count: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}
