package middleware

import (
	"net/http"

	"github.com/easayliu/drive-exhibit-relay/internal/infrastructure/ratelimit"
	"github.com/easayliu/drive-exhibit-relay/pkg/logger"
	"github.com/easayliu/drive-exhibit-relay/pkg/utils"
	"github.com/gin-gonic/gin"
)

// RateLimitMiddleware 按客户端IP限制请求频率，超出返回429
func RateLimitMiddleware(limiter *ratelimit.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || !limiter.Enabled() {
			c.Next()
			return
		}

		if !limiter.Allow(c.ClientIP()) {
			logger.Warn("Rate limit exceeded", "client_ip", c.ClientIP(), "path", c.Request.URL.Path)
			utils.AbortWithError(c, http.StatusTooManyRequests, "Too many requests")
			return
		}
		c.Next()
	}
}
