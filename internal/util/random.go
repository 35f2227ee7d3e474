package util

import (
	"github.com/lithammer/shortuuid/v4"
)

// GenerateRequestID returns a short, URL-safe identifier for correlating log lines of one request.
func GenerateRequestID() string {
	return shortuuid.New()
}
