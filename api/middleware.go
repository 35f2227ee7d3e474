package api

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/katatrina/workhub-BE/internal/util"
	"github.com/rs/zerolog/log"
)

const (
	authorizationHeaderKey  = "Authorization"
	authorizationTypeBearer = "Bearer"
	requestIDHeaderKey      = "X-Request-ID"
	requestIDContextKey     = "requestID"
)

// requestIDMiddleware tags every request with an ID and a request-scoped logger.
func requestIDMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		requestID := ctx.GetHeader(requestIDHeaderKey)
		if requestID == "" {
			requestID = util.GenerateRequestID()
		}

		ctx.Set(requestIDContextKey, requestID)
		ctx.Header(requestIDHeaderKey, requestID)

		logger := log.With().Str("request_id", requestID).Logger()
		ctx.Request = ctx.Request.WithContext(logger.WithContext(ctx.Request.Context()))

		ctx.Next()
	}
}

// bearerToken extracts the access token from an Authorization header.
// It returns "" when the header is absent or not a bearer credential.
func bearerToken(authorizationHeader string) string {
	fields := strings.Fields(authorizationHeader)
	if len(fields) != 2 || !strings.EqualFold(fields[0], authorizationTypeBearer) {
		return ""
	}

	return fields[1]
}
