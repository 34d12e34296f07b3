package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"jobbridge-backend/internal/delivery/http/response"
	"jobbridge-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				// The normalized Info block is safe to expose; the wrapped
				// cause is not and stays server-side.
				var info interface{}
				if appErr.Info != nil {
					info = appErr.Info
				}
				if appErr.Code >= http.StatusInternalServerError {
					slog.Error("request failed", "code", appErr.Code, "message", appErr.Message, "error", appErr.Err)
				}
				response.Error(c, appErr.Code, appErr.Message, info)
			} else {
				slog.Error("unhandled error", "error", err)
				response.Error(c, http.StatusInternalServerError, "Ein unerwarteter Fehler ist aufgetreten. Bitte später erneut versuchen.", nil)
			}
		}
	}
}
