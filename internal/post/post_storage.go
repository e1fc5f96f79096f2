package post

import (
	"context"
	"time"
)

// Summary - элемент списка постов (без содержимого)
type Summary struct {
	ID             uint
	Title          string
	LikesCount     int
	ViewsCount     int
	CommentsCount  int
	CreatedAt      time.Time
	AuthorNickname string
	AuthorImageURL string
}

// Detail - полное представление поста для страницы деталей
type Detail struct {
	ID             uint
	Title          string
	Content        string
	ImageURL       string
	LikesCount     int
	ViewsCount     int
	CommentsCount  int
	CreatedAt      time.Time
	AuthorNickname string
	AuthorImageURL string
	IsOwner        bool
	IsLiked        bool
}

// Update - частичное обновление: заголовок и текст перезаписываются всегда,
// картинка только если ImageURL != nil
type Update struct {
	Title    string
	Content  string
	ImageURL *string
}

type PostStorage interface {
	CreatePost(ctx context.Context, authorID uint, title, content, imageURL string) (*Detail, error)

	// ListPosts - только не удаленные посты, по убыванию id (новые первыми),
	// с приджойненным ником/аватаром автора
	ListPosts(ctx context.Context, offset, limit int) ([]*Summary, error)

	// GetPostDetail при непустом viewerID засчитывает первый просмотр:
	// вставка строки views + инкремент views_count в одной транзакции.
	// Повторные просмотры того же пользователя счетчик не двигают.
	GetPostDetail(ctx context.Context, postID uint, viewerID *uint) (*Detail, error)

	// UpdatePost/DeletePost: apperr.ErrNotFound если поста нет или он удален,
	// apperr.ErrForbidden если вызывающий не автор (владение - по user id)
	UpdatePost(ctx context.Context, postID, callerID uint, upd Update) error
	DeletePost(ctx context.Context, postID, callerID uint) error
}
