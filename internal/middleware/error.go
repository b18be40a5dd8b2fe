package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipe-realm/backend/internal/apperr"
	"go.uber.org/zap"
)

func abort(c *gin.Context, err *apperr.AppError) {
	WriteError(c, err)
	c.Abort()
}

// WriteError renders err as {"error", "code", "details"} with its HTTP status
func WriteError(c *gin.Context, err error) {
	appErr := apperr.From(err, "Resource")
	c.JSON(appErr.StatusCode(), appErr)
}

// ErrorHandler renders the last error a handler attached with c.Error
// when nothing was written yet. Internal causes are logged, never returned.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperr.AppError
		if !errors.As(err, &appErr) {
			appErr = apperr.From(err, "Resource")
		}
		if appErr.Code == apperr.CodeInternal {
			logger.Error("request failed",
				zap.String("request_id", c.GetString(ContextRequestID)),
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
		}

		if !c.Writer.Written() {
			c.JSON(appErr.StatusCode(), appErr)
		}
	}
}
