package middleware

import (
	"errors"
	"net/http"

	"jobboard-backend/internal/delivery/http/response"
	"jobboard-backend/pkg/apperror"
	"jobboard-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Kind != apperror.KindInternal {
			response.Error(c, appErr.Code, appErr.Kind, appErr.Message, appErr.Details)
			return
		}

		// Never expose internal error details to clients.
		logger.Log.Error("Internal server error",
			"error", err,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"request_id", c.GetString("RequestID"),
		)
		response.Error(c, http.StatusInternalServerError, apperror.KindInternal,
			"An unexpected error occurred. Please try again later.", nil)
	}
}
