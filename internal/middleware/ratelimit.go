package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// RateLimit returns a gin middleware limiting each client IP to maxRequests
// per window. The counter lives in redis so the limit holds across instances.
func RateLimit(client *redis.Client, maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("fh:ratelimit:%s", c.ClientIP())
		ctx := c.Request.Context()

		pipe := client.TxPipeline()
		incr := pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, window)
		if _, err := pipe.Exec(ctx); err != nil {
			// Fail open: a redis hiccup should not take the API down.
			logrus.WithError(err).Warn("RateLimit middleware: redis unavailable, skipping")
			c.Next()
			return
		}

		if incr.Val() > int64(maxRequests) {
			logrus.WithFields(logrus.Fields{
				"ip":    c.ClientIP(),
				"count": incr.Val(),
			}).Warn("RateLimit middleware: limit exceeded")
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests, please try again later"})
			c.Abort()
			return
		}

		c.Next()
	}
}
