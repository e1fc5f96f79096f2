// Package apperr содержит ожидаемые (восстановимые для клиента) ошибки ядра.
// Хранилища возвращают их как есть или обернутыми через %w, HTTP-адаптер
// отображает их в статус-коды. Все остальные ошибки считаются фатальными для
// текущей операции - транзакция откатывается целиком.
package apperr

import "errors"

var (
	ErrValidation         = errors.New("invalid input")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("permission denied")
	ErrNotFound           = errors.New("resource not found")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
