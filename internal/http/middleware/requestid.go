package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/roguepikachu/namesmith/pkg/ctxutil"
)

const (
	headerRequestID = "X-Request-ID"
	// HeaderClientID identifies the browser installation; it keys the quota.
	HeaderClientID = "X-Client-ID"
)

// RequestIDMiddleware puts the request and client ids in the request context
// and echoes them back. A missing request id is generated. A missing client id
// is generated for the response only; the context keeps it empty so that the
// caller shares the anonymous quota.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(headerRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		ctx := ctxutil.WithRequestID(c.Request.Context(), requestID)
		clientID := c.GetHeader(HeaderClientID)
		if clientID != "" {
			ctx = ctxutil.WithClientID(ctx, clientID)
		} else {
			clientID = uuid.New().String()
		}
		c.Request = c.Request.WithContext(ctx)
		c.Header(headerRequestID, requestID)
		c.Header(HeaderClientID, clientID)
		c.Next()
	}
}
