package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradebot/internal/config"
	"tradebot/pkg/ratelimiter"
)

// NewRouter builds the gin engine with CORS, optional rate limiting, and
// the two API routes.
func NewRouter(handler *Handler, mw config.MiddlewareConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	if mw.RateLimiter.Enabled {
		limiter := ratelimiter.NewTokenBucket(mw.RateLimiter.Rate, mw.RateLimiter.Capacity)
		router.Use(rateLimitMiddleware(limiter))
	}

	router.POST("/upload", handler.Upload)
	router.POST("/query", handler.Query)

	return router
}

// corsMiddleware permits any origin. The service fronts a browser client
// served from a different host.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// rateLimitMiddleware rejects requests with 429 when the limiter is
// exhausted.
func rateLimitMiddleware(limiter ratelimiter.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
