package session

import (
	"context"
	"time"
)

type SessionStorage interface {
	// Create выпускает новый непрозрачный токен для пользователя.
	// У пользователя может быть несколько активных сессий (мульти-девайс).
	Create(ctx context.Context, userID uint, ttl time.Duration) (string, error)

	// Resolve возвращает apperr.ErrUnauthenticated, если токен пуст,
	// неизвестен, истек или его пользователь удален. Истекшая строка
	// удаляется лениво прямо здесь.
	Resolve(ctx context.Context, token string) (uint, error)

	// Delete идемпотентен: отсутствие сессии - не ошибка
	Delete(ctx context.Context, token string) error

	// DeleteByUser снимает все сессии пользователя (удаление аккаунта)
	DeleteByUser(ctx context.Context, userID uint) error
}
