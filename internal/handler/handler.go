// Package handler - тонкий HTTP-адаптер над хранилищами. Правила доступа и
// согласованность счетчиков живут в хранилищах, здесь только разбор запроса
// и отображение результата.
package handler

import (
	"net/http"
	"strconv"

	"community/internal/util"

	"github.com/gin-gonic/gin"
)

// parseIDParam разбирает числовой path-параметр; при ошибке сам пишет 400
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		util.Error(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
