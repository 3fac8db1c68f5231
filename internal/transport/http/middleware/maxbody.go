package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shop-backend/internal/transport/http/response"
)

// MaxBodyBytes bounds the request body; image uploads set the ceiling.
func MaxBodyBytes(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
		if c.Err() != nil && !c.Writer.Written() {
			response.FailStatus(c, http.StatusRequestEntityTooLarge, "request body too large")
		}
	}
}
