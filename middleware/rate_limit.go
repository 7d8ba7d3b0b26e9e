package middleware

import (
	"net/http"
	"strconv"

	"luxestay/response"
	"luxestay/services"
	"luxestay/services/logger"

	"github.com/gin-gonic/gin"
)

// RateLimitMiddleware giới hạn theo IP; limiter nil thì bỏ qua
func RateLimitMiddleware(limiter *services.RateLimiter, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		allowed, remaining, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			// Redis lỗi thì cho qua
			log.Error("rate limiter: %v", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.Limit()))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, response.Response{
				Message: "Too many requests from this IP, please try again later.",
			})
			return
		}
		c.Next()
	}
}
