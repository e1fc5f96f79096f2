package middleware

import (
	"strings"

	"community/internal/auth"
	"community/internal/session"
	"community/internal/util"

	"github.com/gin-gonic/gin"
)

// SessionCookie - имя cookie с токеном сессии
const SessionCookie = "session_id"

// ExtractToken достает токен сессии: сначала cookie (как в веб-клиенте),
// затем заголовок Authorization: Bearer (для API-клиентов)
func ExtractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}

	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

// RequireAuth резолвит токен сессии и кладет userID в контекст запроса.
// Без валидной сессии запрос обрывается с 401.
func RequireAuth(sessions session.SessionStorage) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := sessions.Resolve(c.Request.Context(), ExtractToken(c))
		if err != nil {
			util.FromError(c, err)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(auth.WithUserID(c.Request.Context(), userID))
		c.Next()
	}
}

// OptionalAuth - для read-путей, где аноним допустим (детали поста, список
// комментариев): невалидная сессия не ошибка, а просто "без вызывающего"
func OptionalAuth(sessions session.SessionStorage) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := sessions.Resolve(c.Request.Context(), ExtractToken(c))
		if err == nil {
			c.Request = c.Request.WithContext(auth.WithUserID(c.Request.Context(), userID))
		}
		c.Next()
	}
}
