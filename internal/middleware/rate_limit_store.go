package middleware

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	rateLimitKeyPrefix = "product-api:ratelimit"
	redisStoreTimeout  = 100 * time.Millisecond
)

// RedisRateLimitStore is a fixed-window echo RateLimiterStore backed by
// INCR and EXPIRE. Each window admits rate*window requests, never fewer
// than burst.
//
// Redis errors fail open: the request is allowed and the error logged.
type RedisRateLimitStore struct {
	client *redis.Client
	logger *zerolog.Logger
	limit  int64
	window time.Duration
	now    func() time.Time
}

func NewRedisRateLimitStore(client *redis.Client, logger *zerolog.Logger, r float64, burst int, window time.Duration) *RedisRateLimitStore {
	limit := math.Max(float64(burst), math.Floor(r*window.Seconds()))

	return &RedisRateLimitStore{
		client: client,
		logger: logger,
		limit:  int64(limit),
		window: window,
		now:    time.Now,
	}
}

// windowKey names the counter of identifier for the window containing t.
func (s *RedisRateLimitStore) windowKey(identifier string, t time.Time) string {
	slot := t.UnixNano() / int64(s.window)
	return rateLimitKeyPrefix + ":" + identifier + ":" + strconv.FormatInt(slot, 10)
}

func (s *RedisRateLimitStore) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisStoreTimeout)
	defer cancel()

	key := s.windowKey(identifier, s.now())

	pipe := s.client.TxPipeline()
	count := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, s.window)
	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("rate limit store unavailable, allowing request")
		return true, nil
	}

	return count.Val() <= s.limit, nil
}
