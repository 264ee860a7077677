package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MaxBodyBytes caps request bodies at 50 MB; QR image payloads can be large.
const MaxBodyBytes int64 = 50 << 20

// BodyLimit rejects request bodies larger than limit bytes. An oversized
// body surfaces as a bind failure in the handler, which answers 400.
func BodyLimit(limit int64) gin.HandlerFunc {
	if limit <= 0 {
		limit = MaxBodyBytes
	}
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
