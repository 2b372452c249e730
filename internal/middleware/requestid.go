package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	contextKeyRequestID = "request_id"
	headerRequestID     = "X-Request-Id"
)

// RequestIDMiddleware tags every request with an id, honoring one the
// caller already sent.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(contextKeyRequestID, id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}

// RequestID extracts the request id from context.
func RequestID(c *gin.Context) string {
	v, _ := c.Get(contextKeyRequestID)
	id, _ := v.(string)
	return id
}
