package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/ImaneBelmiloudi/hr-management/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	IdempotencyCacheKey = "idempotency_cache_key"
	IdempotencyLockKey  = "idempotency_lock_key"
)

// Idempotency replays cached responses for repeated POSTs carrying the
// same Idempotency-Key, and rejects a duplicate that arrives while the
// first attempt is still running.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		actor, ok := ActorFrom(c)
		if !ok {
			c.Next()
			return
		}

		cacheKey := fmt.Sprintf("idemp:%s:%s:%s",
			c.FullPath(), strconv.FormatUint(uint64(actor.UserID), 10), idempKey)
		lockKey := cacheKey + ":lock"

		val, err := rdb.Get(c.Request.Context(), cacheKey).Result()
		if err == nil {
			var cached any
			_ = json.Unmarshal([]byte(val), &cached)
			c.AbortWithStatusJSON(http.StatusOK,
				gin.H{"status": "success", "data": cached})
			return
		}

		// Short-lived lock so a crashed attempt releases automatically.
		isNew, _ := rdb.SetNX(c.Request.Context(), lockKey, "locked", 30*time.Second).Result()
		if !isNew {
			response.Error(c, http.StatusConflict,
				"A request with this idempotency key is already being processed", nil)
			c.Abort()
			return
		}

		c.Set(IdempotencyCacheKey, cacheKey)
		c.Set(IdempotencyLockKey, lockKey)
		c.Next()
	}
}

// CacheIdempotentResult stores the successful payload for replay and
// releases the in-flight lock. Handlers call it after a 2xx create.
func CacheIdempotentResult(c *gin.Context, rdb *redis.Client, data any) {
	if rdb == nil {
		return
	}
	if lk := c.GetString(IdempotencyLockKey); lk != "" {
		defer rdb.Del(c.Request.Context(), lk)
	}
	ck := c.GetString(IdempotencyCacheKey)
	if ck == "" {
		return
	}
	if payload, err := json.Marshal(data); err == nil {
		_ = rdb.Set(c.Request.Context(), ck, payload, 24*time.Hour).Err()
	}
}
