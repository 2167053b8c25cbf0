package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const idempotencyLockTTL = 30 * time.Second

// Idempotency guards POST endpoints against double submission. The first
// request with a given Idempotency-Key takes a short-lived redis lock; a
// concurrent duplicate gets a 409 instead of a second side effect.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		staffEmail := c.GetString("staff_email")
		lockKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), staffEmail, idempKey)

		isNew, err := rdb.SetNX(c.Request.Context(), lockKey, "locked", idempotencyLockTTL).Result()
		if err != nil {
			// Redis being down must not block writes; the database-level
			// conflict check still protects the ledger.
			c.Next()
			return
		}

		if !isNew {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"code":    "PROCESSING",
				"message": "An identical request is already being processed",
			})
			return
		}

		c.Next()
	}
}
