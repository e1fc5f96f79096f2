package postgres

import (
	"context"
	"fmt"

	"community/internal/apperr"
	"community/internal/like"
	"community/models"

	"github.com/jinzhu/gorm"
)

type LikePostgresStorage struct{}

func NewLikePostgresStorage() *LikePostgresStorage {
	return &LikePostgresStorage{}
}

func (s *LikePostgresStorage) ToggleLike(ctx context.Context, postID, userID uint) (*like.Result, error) {
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

	var existing models.Like
	err = tx.Where("user_id = ? AND post_id = ?", userID, postID).First(&existing).Error
	switch {
	case err == nil:
		// Liked -> NotLiked
		if err := tx.Delete(&existing).Error; err != nil {
			return nil, fmt.Errorf("failed to delete like: %w", err)
		}
		err = tx.Model(&models.Post{}).
			Where("id = ? AND likes_count > 0", postID).
			UpdateColumn("likes_count", gorm.Expr("likes_count - 1")).Error
		if err != nil {
			return nil, fmt.Errorf("failed to decrement likes: %w", err)
		}

	case gorm.IsRecordNotFoundError(err):
		// NotLiked -> Liked
		if err := tx.Create(&models.Like{UserID: userID, PostID: postID}).Error; err != nil {
			// проигравшая сторона гонки: соперник уже вставил строку и
			// засчитал лайк. В postgres нарушение ограничения абортирует
			// транзакцию, поэтому откатываем и читаем итог вне ее.
			if uniqueViolation(err) {
				tx.Rollback()
				return likeResult(DB, postID, userID)
			}
			return nil, fmt.Errorf("failed to create like: %w", err)
		}
		err = tx.Model(&models.Post{}).Where("id = ?", postID).
			UpdateColumn("likes_count", gorm.Expr("likes_count + 1")).Error
		if err != nil {
			return nil, fmt.Errorf("failed to increment likes: %w", err)
		}

	default:
		return nil, fmt.Errorf("failed to find like: %w", err)
	}

	res, err := likeResult(tx, postID, userID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	return res, nil
}

// likeResult читает итоговое состояние пары (user, post)
func likeResult(db *gorm.DB, postID, userID uint) (*like.Result, error) {
	var likesCount int
	row := db.Model(&models.Post{}).Where("id = ?", postID).Select("likes_count").Row()
	if err := row.Scan(&likesCount); err != nil {
		return nil, fmt.Errorf("failed to read likes count: %w", err)
	}

	var liked int
	if err := db.Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&liked).Error; err != nil {
		return nil, fmt.Errorf("failed to read like state: %w", err)
	}

	return &like.Result{LikesCount: likesCount, IsLiked: liked > 0}, nil
}
