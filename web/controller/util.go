package controller

import (
	"errors"
	"net/http"

	"bookshelf/logger"
	"bookshelf/util/common"
	"bookshelf/web/entity"

	"github.com/gin-gonic/gin"
)

// jsonMsg sends a message-only success body.
func jsonMsg(c *gin.Context, status int, msg string) {
	c.JSON(status, entity.Msg{Message: msg})
}

// jsonError maps a service error to its HTTP status and a JSON error
// body. fallback is the status used for errors outside the taxonomy.
func jsonError(c *gin.Context, err error, fallback int) {
	status := fallback
	switch {
	case errors.Is(err, common.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, common.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, common.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, common.ErrNotFound):
		status = http.StatusNotFound
	}
	if status >= http.StatusInternalServerError {
		logger.Error(c.Request.Method, c.Request.URL.Path, "failed:", err)
	} else {
		logger.Warning(c.Request.Method, c.Request.URL.Path, "failed:", err)
	}
	c.JSON(status, entity.ErrMsg{Error: err.Error()})
}
