package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/korefit/studio-api/internal/ratelimit"
)

// RateLimit throttles by client IP. Fails open: a broken limiter store
// must not take booking traffic down with it.
func RateLimit(policy ratelimit.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := policy.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Printf("ratelimit: store error, allowing request: %v", err)
			c.Next()
			return
		}

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   "too_many_requests",
				"message": "Rate limit exceeded, try again shortly.",
			})
			return
		}

		c.Next()
	}
}
