package user

import (
	"context"
	"time"
)

// Profile - публичное представление пользователя (без хеша пароля)
type Profile struct {
	ID        uint
	Email     string
	Nickname  string
	ImageURL  string
	CreatedAt time.Time
}

type UserStorage interface {
	// RegisterUser возвращает apperr.ErrEmailTaken, если email уже занят
	// среди не удаленных пользователей. Пароль хешируется (bcrypt),
	// открытым текстом никогда не хранится.
	RegisterUser(ctx context.Context, email, password, nickname, imageURL string) (*Profile, error)

	// LoginUser возвращает один и тот же apperr.ErrInvalidCredentials
	// и для неизвестного email, и для неверного пароля
	LoginUser(ctx context.Context, email, password string) (*Profile, error)

	GetUserByID(ctx context.Context, id uint) (*Profile, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateNickname(ctx context.Context, id uint, nickname string) error
	ChangePassword(ctx context.Context, id uint, newPassword string) error

	// DeleteUser - мягкое удаление аккаунта (посты и комментарии остаются)
	DeleteUser(ctx context.Context, id uint) error
}
