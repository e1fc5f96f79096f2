package postgres

import (
	"context"
	"fmt"
	"time"

	"community/internal/apperr"
	"community/internal/post"
	"community/models"

	"github.com/jinzhu/gorm"
)

type PostPostgresStorage struct{}

func NewPostPostgresStorage() *PostPostgresStorage {
	return &PostPostgresStorage{}
}

// строка выборки списка постов с данными автора
type postRow struct {
	ID             uint
	Title          string
	Content        string
	ImageURL       string
	UserID         uint
	ViewsCount     int
	LikesCount     int
	CommentsCount  int
	CreatedAt      time.Time
	AuthorNickname string
	AuthorImageURL string
}

const postColumns = `posts.id, posts.title, posts.content, posts.image_url, posts.user_id,
	posts.views_count, posts.likes_count, posts.comments_count, posts.created_at,
	users.nickname AS author_nickname, users.image_url AS author_image_url`

func (s *PostPostgresStorage) CreatePost(ctx context.Context, authorID uint, title, content, imageURL string) (*post.Detail, error) {
	p := &models.Post{
		UserID:   authorID,
		Title:    title,
		Content:  content,
		ImageURL: imageURL,
	}
	if err := DB.Create(p).Error; err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return s.GetPostDetail(ctx, p.ID, nil)
}

func (s *PostPostgresStorage) ListPosts(ctx context.Context, offset, limit int) ([]*post.Summary, error) {
	if offset < 0 || limit < 0 {
		return nil, fmt.Errorf("%w: offset and limit must be non-negative", apperr.ErrValidation)
	}

	var rows []postRow
	// Table() обходит авто-фильтр мягкого удаления, поэтому deleted_at
	// проверяем явно. Автор джойнится и удаленный: исторические посты
	// сохраняют подпись.
	err := DB.Table("posts").
		Select(postColumns).
		Joins("JOIN users ON users.id = posts.user_id").
		Where("posts.deleted_at IS NULL").
		Order("posts.id DESC").
		Offset(offset).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	summaries := make([]*post.Summary, 0, len(rows))
	for _, r := range rows {
		summaries = append(summaries, &post.Summary{
			ID:             r.ID,
			Title:          r.Title,
			LikesCount:     r.LikesCount,
			ViewsCount:     r.ViewsCount,
			CommentsCount:  r.CommentsCount,
			CreatedAt:      r.CreatedAt,
			AuthorNickname: r.AuthorNickname,
			AuthorImageURL: r.AuthorImageURL,
		})
	}
	return summaries, nil
}

func (s *PostPostgresStorage) GetPostDetail(ctx context.Context, postID uint, viewerID *uint) (*post.Detail, error) {
	if viewerID != nil {
		if err := s.recordView(postID, *viewerID); err != nil {
			return nil, err
		}
	}

	var r postRow
	err := DB.Table("posts").
		Select(postColumns).
		Joins("JOIN users ON users.id = posts.user_id").
		Where("posts.id = ? AND posts.deleted_at IS NULL", postID).
		Scan(&r).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load post: %w", err)
	}

	d := &post.Detail{
		ID:             r.ID,
		Title:          r.Title,
		Content:        r.Content,
		ImageURL:       r.ImageURL,
		LikesCount:     r.LikesCount,
		ViewsCount:     r.ViewsCount,
		CommentsCount:  r.CommentsCount,
		CreatedAt:      r.CreatedAt,
		AuthorNickname: r.AuthorNickname,
		AuthorImageURL: r.AuthorImageURL,
	}

	if viewerID != nil {
		d.IsOwner = r.UserID == *viewerID

		var count int
		err = DB.Model(&models.Like{}).
			Where("user_id = ? AND post_id = ?", *viewerID, postID).
			Count(&count).Error
		if err != nil {
			return nil, fmt.Errorf("failed to check like: %w", err)
		}
		d.IsLiked = count > 0
	}

	return d, nil
}

// recordView засчитывает первый просмотр поста пользователем: вставка строки
// views и инкремент views_count в одной транзакции. Повторный просмотр - no-op.
func (s *PostPostgresStorage) recordView(postID, viewerID uint) error {
	tx := DB.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	var p models.Post
	err := tx.First(&p, postID).Error
	if gorm.IsRecordNotFoundError(err) {
		return apperr.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to find post: %w", err)
	}

	var count int
	if err := tx.Model(&models.View{}).
		Where("user_id = ? AND post_id = ?", viewerID, postID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check view: %w", err)
	}
	if count > 0 {
		return nil
	}

	err = tx.Create(&models.View{UserID: viewerID, PostID: postID}).Error
	if err != nil {
		// две параллельные первые загрузки: выигравшая уже вставила строку
		// и засчитала просмотр, уникальный индекс останавливает вторую
		if uniqueViolation(err) {
			return nil
		}
		return fmt.Errorf("failed to record view: %w", err)
	}

	err = tx.Model(&models.Post{}).Where("id = ?", postID).
		UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// findOwnedPost - общая проверка существования и владения для update/delete
func findOwnedPost(tx *gorm.DB, postID, callerID uint) (*models.Post, error) {
	var p models.Post
	err := tx.First(&p, postID).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find post: %w", err)
	}
	if p.UserID != callerID {
		return nil, apperr.ErrForbidden
	}
	return &p, nil
}

func (s *PostPostgresStorage) UpdatePost(ctx context.Context, postID, callerID uint, upd post.Update) error {
	tx := DB.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	if _, err := findOwnedPost(tx, postID, callerID); err != nil {
		return err
	}

	fields := map[string]interface{}{
		"title":   upd.Title,
		"content": upd.Content,
	}
	if upd.ImageURL != nil {
		fields["image_url"] = *upd.ImageURL
	}

	if err := tx.Model(&models.Post{}).Where("id = ?", postID).Updates(fields).Error; err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

func (s *PostPostgresStorage) DeletePost(ctx context.Context, postID, callerID uint) error {
	tx := DB.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	p, err := findOwnedPost(tx, postID, callerID)
	if err != nil {
		return err
	}

	// мягкое удаление поста и каскадом его комментариев
	if err := tx.Delete(p).Error; err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
		return fmt.Errorf("failed to delete comments: %w", err)
	}

	// строки-отметки удаляются жестко вместе с родителем
	if err := tx.Where("post_id = ?", postID).Delete(&models.Like{}).Error; err != nil {
		return fmt.Errorf("failed to delete likes: %w", err)
	}
	if err := tx.Where("post_id = ?", postID).Delete(&models.View{}).Error; err != nil {
		return fmt.Errorf("failed to delete views: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}
