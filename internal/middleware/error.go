package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/pantry-recipes/backend/internal/logging"
	"github.com/pageza/pantry-recipes/backend/internal/types"
)

// Recovery turns a panic into a logged 500 with a JSON body. A nil body
// means {"error":"Internal Server Error"}.
func Recovery(logger *zap.Logger, body any) gin.HandlerFunc {
	if body == nil {
		body = types.ErrorResponse{Error: "Internal Server Error"}
	}
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic recovered",
					zap.Any("panic", err),
					zap.String("path", c.Request.URL.Path),
					zap.String("request_id", c.GetString(logging.RequestIDKey)),
					zap.ByteString("stack", debug.Stack()))
				if !c.Writer.Written() {
					c.AbortWithStatusJSON(http.StatusInternalServerError, body)
				} else {
					c.Abort()
				}
			}
		}()
		c.Next()
	}
}
