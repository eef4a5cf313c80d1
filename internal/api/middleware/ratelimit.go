package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/models"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/ratelimit"
)

// RateLimit throttles requests per client IP using the given limiter.
func RateLimit(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		allowed, err := limiter.Allow(c.Request.Context(), ip)
		if err != nil {
			// A broken limiter should not take the endpoint down with it.
			log.Printf("⚠️ [RateLimit] Limiter error for %s: %v", ip, err)
			c.Next()
			return
		}
		if !allowed {
			log.Printf("⚠️ [RateLimit] Too many requests from %s - Path: %s", ip, c.Request.URL.Path)
			c.JSON(http.StatusTooManyRequests, models.Envelope{
				Success: false,
				Message: "Too many requests, please try again later",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
