package middleware

import (
	"net/http"
	"time"

	"github.com/deppfellow/product-api/internal/errs"
	"github.com/deppfellow/product-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// memoryStoreExpiry is how long an idle client's limiter is kept in memory.
const memoryStoreExpiry = 3 * time.Minute

type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// Limit enforces the per-client (real IP) request limit from config.
//
// With store "redis" every instance shares fixed windows in Redis,
// otherwise each process keeps token buckets in memory. Health and
// metrics endpoints are never limited.
func (r *RateLimitMiddleware) Limit() echo.MiddlewareFunc {
	cfg := r.server.Config.RateLimit
	if cfg == nil || !cfg.Enabled {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	var store middleware.RateLimiterStore
	switch cfg.Store {
	case "redis":
		store = NewRedisRateLimitStore(r.server.Redis, r.server.Logger, cfg.Rate, cfg.Burst, cfg.Window)
	default:
		store = middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(cfg.Rate),
			Burst:     cfg.Burst,
			ExpiresIn: memoryStoreExpiry,
		})
	}

	r.server.Logger.Info().
		Str("store", cfg.Store).
		Float64("rate", cfg.Rate).
		Int("burst", cfg.Burst).
		Msg("rate limiting enabled")

	return r.limitWithStore(store)
}

func (r *RateLimitMiddleware) limitWithStore(store middleware.RateLimiterStore) echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Skipper: func(c echo.Context) bool {
			switch c.Path() {
			case "/status", "/metrics":
				return true
			}
			return false
		},
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.NewBadRequestError("Could not identify client", false, nil, nil, nil)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			GetLogger(c).Warn().Str("client", identifier).Msg("rate limit exceeded")
			r.RecordRateLimitHit(c.Path())
			c.Response().Header().Set("Retry-After", "1")
			return errs.NewTooManyRequestsError(http.StatusText(http.StatusTooManyRequests))
		},
	})
}

// RecordRateLimitHit records a RateLimitHit custom event in New Relic.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if r.server.LoggerService != nil && r.server.LoggerService.GetApplication() != nil {
		r.server.LoggerService.GetApplication().RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}
