package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"shop-backend/internal/transport/http/response"
)

// RateLimit is a process-wide token bucket in front of everything else.
func RateLimit(rps rate.Limit, burst int) gin.HandlerFunc {
	lim := rate.NewLimiter(rps, burst)
	return func(c *gin.Context) {
		if lim.Allow() {
			c.Next()
			return
		}
		response.FailStatus(c, http.StatusTooManyRequests, "too many requests")
	}
}
