package ailimit

import (
	"context"
	"fmt"
	"time"

	"ai-notes-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Limiter tracks per-user AI calls per calendar day in Redis.
// When Redis is unreachable the limiter logs a warning and allows
// the call rather than blocking the feature on infrastructure.
type Limiter struct {
	rdb        *redis.Client
	dailyLimit int
	log        logger.ILogger
}

func NewLimiter(rdb *redis.Client, dailyLimit int, log logger.ILogger) *Limiter {
	return &Limiter{
		rdb:        rdb,
		dailyLimit: dailyLimit,
		log:        log,
	}
}

func (l *Limiter) key(userId uuid.UUID) string {
	return fmt.Sprintf("ai:calls:%s:%s", userId.String(), time.Now().UTC().Format("2006-01-02"))
}

// Allow increments today's counter for the user and reports whether the
// call is within the configured daily limit. A zero limit disables limiting.
func (l *Limiter) Allow(ctx context.Context, userId uuid.UUID) bool {
	if l.dailyLimit <= 0 || l.rdb == nil {
		return true
	}

	key := l.key(userId)
	count, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		l.log.Warn("AiLimit", "Redis unavailable, allowing call", map[string]interface{}{
			"error": err.Error(),
		})
		return true
	}

	if count == 1 {
		// First call of the day, expire the counter at the next UTC midnight.
		now := time.Now().UTC()
		midnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
		if err := l.rdb.ExpireAt(ctx, key, midnight).Err(); err != nil {
			l.log.Warn("AiLimit", "Failed to set counter expiry", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return count <= int64(l.dailyLimit)
}
