package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"account_backend/internal/platform/apperr"
	"account_backend/internal/shared/ratelimiter"
)

// RateLimit はクライアントIPごとにリクエストを制限し、超過時は429のHTTP例外を積みます。
func RateLimit(limiter ratelimiter.RateLimiterInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if !limiter.Allow(key) {
			slog.Warn("rate limit exceeded", "client_ip", key, "path", c.Request.URL.Path)
			_ = c.Error(apperr.HTTP(http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests)))
			c.Abort()
			return
		}
		c.Next()
	}
}
