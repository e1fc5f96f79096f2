package like

import "context"

// Result - состояние после переключения лайка
type Result struct {
	LikesCount int
	IsLiked    bool
}

type LikeStorage interface {
	// ToggleLike - единственный переход автомата {Liked, NotLiked}:
	// есть строка (user, post) - удалить и декрементировать likes_count
	// (не ниже нуля), нет - вставить и инкрементировать. Атомарно на пару
	// (user, post); apperr.ErrNotFound если пост отсутствует или удален.
	ToggleLike(ctx context.Context, postID, userID uint) (*Result, error)
}
