package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/roguepikachu/namesmith/pkg"
	"github.com/roguepikachu/namesmith/pkg/logger"
)

// Recovery turns a panic into a single internal_error response.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.With(c.Request.Context(), map[string]any{"panic": r, "stack": string(debug.Stack())}).Error("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, pkg.NewError("internal_error", "internal server error"))
			}
		}()
		c.Next()
	}
}
