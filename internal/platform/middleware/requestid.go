package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// CtxRequestIDKey is the gin context key the request id is stored under.
const CtxRequestIDKey = "request_id"

// RequestID propagates an inbound X-Request-ID or mints a new one, so log
// lines of one return workflow can be correlated across the platform.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(CtxRequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
