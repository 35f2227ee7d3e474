package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	idempotencyHeaderKey    = "Idempotency-Key"
	idempotencyHitHeaderKey = "X-Idempotency-Hit"

	idempotencyCacheTTL    = 24 * time.Hour
	idempotencyLockTimeout = 30 * time.Second

	idempotencyKeyPrefix     = "idempotency:"
	idempotencyLockKeyPrefix = "idempotency:lock:"
)

var (
	ErrIdempotencyConflict = errors.New("a request with this idempotency key is currently being processed")
)

type cachedResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

// bodyCaptureWriter keeps a copy of the response body so it can be cached.
type bodyCaptureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyCaptureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCaptureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// idempotencyMiddleware replays the stored response for a repeated Idempotency-Key.
// Requests without the header pass through untouched.
func idempotencyMiddleware(redisClient *redis.Client) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		key := ctx.GetHeader(idempotencyHeaderKey)
		if key == "" || redisClient == nil {
			ctx.Next()
			return
		}

		reqCtx := ctx.Request.Context()
		logger := zerolog.Ctx(reqCtx)
		cacheKey := idempotencyKeyPrefix + ctx.FullPath() + ":" + key
		lockKey := idempotencyLockKeyPrefix + ctx.FullPath() + ":" + key

		cached, err := redisClient.Get(reqCtx, cacheKey).Bytes()
		switch {
		case err == nil:
			var response cachedResponse
			if err = json.Unmarshal(cached, &response); err == nil {
				logger.Info().Str("idempotency_key", key).Msg("replaying cached response")
				ctx.Header(idempotencyHitHeaderKey, "true")
				ctx.Data(response.Status, "application/json; charset=utf-8", response.Body)
				ctx.Abort()
				return
			}
			logger.Warn().Err(err).Str("idempotency_key", key).Msg("discarding unreadable cached response")
		case !errors.Is(err, redis.Nil):
			logger.Error().Err(err).Msg("failed to read idempotency cache")
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse(err))
			return
		}

		acquired, err := redisClient.SetNX(reqCtx, lockKey, "processing", idempotencyLockTimeout).Result()
		if err != nil {
			logger.Error().Err(err).Msg("failed to acquire idempotency lock")
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse(err))
			return
		}
		if !acquired {
			ctx.AbortWithStatusJSON(http.StatusConflict, errorResponse(ErrIdempotencyConflict))
			return
		}

		defer func() {
			// The request context may already be canceled here
			if err := redisClient.Del(context.Background(), lockKey).Err(); err != nil {
				logger.Error().Err(err).Msg("failed to release idempotency lock")
			}
		}()

		writer := &bodyCaptureWriter{ResponseWriter: ctx.Writer}
		ctx.Writer = writer

		ctx.Next()

		status := writer.Status()
		if status < http.StatusOK || status >= http.StatusMultipleChoices {
			return
		}

		payload, err := json.Marshal(cachedResponse{Status: status, Body: writer.body.Bytes()})
		if err != nil {
			logger.Error().Err(err).Msg("failed to encode response for idempotency cache")
			return
		}

		if err = redisClient.Set(context.Background(), cacheKey, payload, idempotencyCacheTTL).Err(); err != nil {
			logger.Error().Err(err).Msg("failed to cache idempotent response")
		}
	}
}
