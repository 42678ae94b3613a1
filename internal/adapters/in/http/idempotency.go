package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	idempotencyHeader     = "Idempotency-Key"
	idempotencyProcessing = "PROCESSING"
	idempotencyCompleted  = "COMPLETED"
	idempotencyLockTTL    = 10 * time.Second
	idempotencyResultTTL  = 24 * time.Hour
)

// IdempotencyStore is the subset of the Redis client the idempotency
// middleware needs.
type IdempotencyStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Idempotency rejects a repeated POST, PUT or DELETE carrying the same
// Idempotency-Key with 409. A key is locked while its request runs and
// remembered for a day once it succeeded; failed requests release the key.
// Redis outages let requests through.
func Idempotency(store IdempotencyStore, logger *zap.Logger) echo.MiddlewareFunc {
	logger = logger.With(zap.String("component", "idempotency"))

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch c.Request().Method {
			case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			default:
				return next(c)
			}

			key := c.Request().Header.Get(idempotencyHeader)
			if key == "" {
				return next(c)
			}

			ctx := c.Request().Context()
			userID, _ := currentUser(c)
			redisKey := fmt.Sprintf("idempotency:%s:%s", userID.String(), key)

			acquired, err := store.SetNX(ctx, redisKey, idempotencyProcessing, idempotencyLockTTL).Result()
			if err != nil {
				logger.Warn("Idempotency store unavailable", zap.Error(err))
				return next(c)
			}
			if !acquired {
				c.Response().Header().Set("X-Idempotency-Hit", "true")
				state, getErr := store.Get(ctx, redisKey).Result()
				if getErr == nil && state == idempotencyCompleted {
					return echo.NewHTTPError(http.StatusConflict, "request already processed")
				}
				if getErr != nil && !errors.Is(getErr, redis.Nil) {
					logger.Warn("Idempotency store unavailable", zap.Error(getErr))
				}
				return echo.NewHTTPError(http.StatusConflict, "request is already being processed")
			}

			handlerErr := next(c)

			// The error handler has not run yet, so a non-nil error means the
			// request failed.
			if handlerErr != nil || c.Response().Status >= http.StatusInternalServerError {
				if delErr := store.Del(context.WithoutCancel(ctx), redisKey).Err(); delErr != nil {
					logger.Warn("Failed to release idempotency key", zap.Error(delErr))
				}
				return handlerErr
			}

			if setErr := store.Set(context.WithoutCancel(ctx), redisKey, idempotencyCompleted, idempotencyResultTTL).Err(); setErr != nil {
				logger.Warn("Failed to store idempotency result", zap.Error(setErr))
			}
			return nil
		}
	}
}
