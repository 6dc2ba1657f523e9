package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "riskreport/internal/errors"
	"riskreport/internal/logger"
)

// statusClientClosedRequest is the nginx convention for a request the client
// abandoned before a response was written.
const statusClientClosedRequest = 499

// ErrorHandler returns a Gin middleware that renders the last error attached
// with c.Error, unless the handler already wrote a response.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		WriteError(c, c.Errors.Last().Err)
	}
}

// WriteError writes a consistent JSON error response. AppErrors keep their
// status, code and message; anything else is logged and returned as a
// generic INTERNAL_ERROR so driver errors never reach the client.
func WriteError(c *gin.Context, err error) {
	log := logger.Named("http").With("request_id", RequestID(c), "path", c.Request.URL.Path)

	if errors.Is(err, context.Canceled) {
		log.Infow("request cancelled by client")
		c.AbortWithStatus(statusClientClosedRequest)
		return
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		log.Errorw("unexpected error", "error", err.Error(), "method", c.Request.Method)
		appErr = apperrors.ErrInternalServer
	} else if appErr.Internal != nil || appErr.StatusCode >= http.StatusInternalServerError {
		log.Errorw("request failed", "code", appErr.Code, "error", appErr.Error())
	}

	c.AbortWithStatusJSON(appErr.StatusCode, gin.H{
		"error": gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
}
