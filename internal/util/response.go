package util

import (
	"errors"
	"log"
	"net/http"

	"community/internal/apperr"

	"github.com/gin-gonic/gin"
)

// Success - единый успешный ответ
func Success(c *gin.Context, status int, data gin.H) {
	c.JSON(status, data)
}

// Error - единый ответ с ошибкой
func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}

// FromError отображает ошибки ядра в статус-коды. Все неожиданные ошибки -
// 500 без деталей наружу (детали только в лог).
func FromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrUnauthenticated):
		Error(c, http.StatusUnauthorized, apperr.ErrUnauthenticated.Error())
	case errors.Is(err, apperr.ErrInvalidCredentials):
		Error(c, http.StatusUnauthorized, apperr.ErrInvalidCredentials.Error())
	case errors.Is(err, apperr.ErrForbidden):
		Error(c, http.StatusForbidden, apperr.ErrForbidden.Error())
	case errors.Is(err, apperr.ErrNotFound):
		Error(c, http.StatusNotFound, apperr.ErrNotFound.Error())
	case errors.Is(err, apperr.ErrEmailTaken):
		Error(c, http.StatusConflict, apperr.ErrEmailTaken.Error())
	default:
		log.Printf("internal error: %v", err)
		Error(c, http.StatusInternalServerError, "internal server error")
	}
}
