package middleware

import (
	"math"
	"strconv"

	"community-portal/internal/global/logger"
	"community-portal/internal/global/metrics"
	"community-portal/internal/global/ratelimit"
	"community-portal/internal/global/response"

	"github.com/gin-gonic/gin"
)

// RateLimit 按客户端 IP 限流，超限返回 429 和 Retry-After
// Redis 不可用时放行，只记录日志
func RateLimit(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, wait, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.WithContext(logger.New("RateLimit"), c).Warn("限流检查失败，已放行",
				"limiter", limiter.Name(), "error", err)
			c.Next()
			return
		}
		if !allowed {
			metrics.RateLimitedTotal.WithLabelValues(limiter.Name()).Inc()
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			response.Fail(c, response.ErrTooManyRequests.WithTips("Too many requests, please try again later"))
			return
		}
		c.Next()
	}
}
