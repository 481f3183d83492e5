package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit throttles requests per client IP. Used on the auth routes to slow
// down credential stuffing.
func RateLimit(r rate.Limit, burst int) gin.HandlerFunc {
	var buckets sync.Map // client IP -> *rate.Limiter

	return func(c *gin.Context) {
		bucket, _ := buckets.LoadOrStore(c.ClientIP(), rate.NewLimiter(r, burst))
		if !bucket.(*rate.Limiter).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			c.Abort()
			return
		}
		c.Next()
	}
}
