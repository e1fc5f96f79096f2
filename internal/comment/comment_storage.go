package comment

import (
	"context"
	"time"
)

// MaxContentLen - предел длины комментария в символах
const MaxContentLen = 1000

// View - комментарий с данными автора и признаком владения
type View struct {
	ID             uint
	PostID         uint
	Content        string
	CreatedAt      time.Time
	AuthorNickname string
	AuthorImageURL string
	IsOwner        bool
}

type CommentStorage interface {
	// CreateComment: apperr.ErrValidation для пустого или слишком длинного
	// текста, apperr.ErrNotFound если родительский пост отсутствует/удален.
	// Инкремент comments_count родителя - в той же транзакции.
	CreateComment(ctx context.Context, postID, authorID uint, content string) (*View, error)

	// ListComments: IsOwner считается относительно viewerID
	// (nil - анонимный просмотр, у всех IsOwner=false)
	ListComments(ctx context.Context, postID uint, viewerID *uint) ([]*View, error)

	UpdateComment(ctx context.Context, commentID, callerID uint, content string) error

	// DeleteComment - мягкое удаление с декрементом comments_count родителя
	// (не ниже нуля)
	DeleteComment(ctx context.Context, commentID, callerID uint) error
}
