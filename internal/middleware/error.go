package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/pageza/mealplan/backend/internal/errors"
	"github.com/pageza/mealplan/backend/internal/logger"
	"github.com/pageza/mealplan/backend/internal/types"
)

// ErrorHandler renders the last error a handler attached with c.Error and
// turns panics into a 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("panic while handling request",
					"panic", rec,
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, types.ErrorResponse{
					Error: "Internal server error",
					Code:  "INTERNAL",
				})
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status := apperrors.HTTPStatus(err)
		resp := types.ErrorResponse{Error: "Internal server error", Code: "INTERNAL"}

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			resp = types.ErrorResponse{Error: appErr.Message, Code: appErr.Code}
			if status >= http.StatusInternalServerError {
				logger.Error("request failed", append(appErr.LogFields(), "path", c.Request.URL.Path)...)
			}
		} else {
			logger.Error("request failed", "error", err, "path", c.Request.URL.Path)
		}

		c.JSON(status, resp)
	}
}
