package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/katatrina/workhub-BE/internal/escrow"
	"github.com/katatrina/workhub-BE/internal/notify"
)

var (
	ErrInvalidRequestBody = errors.New("request body must be valid JSON")
	ErrInternalServer     = errors.New("internal server error")
)

func errorResponse(err error) gin.H {
	return gin.H{"error": err.Error()}
}

// escrowErrorStatus maps an escrow failure to the HTTP status returned to the caller.
func escrowErrorStatus(err error) int {
	switch {
	case errors.Is(err, escrow.ErrInvalidInput),
		errors.Is(err, escrow.ErrPaymentNotSettled):
		return http.StatusBadRequest
	case errors.Is(err, escrow.ErrUnknownTransaction):
		return http.StatusNotFound
	case errors.Is(err, escrow.ErrTransactionNotEscrowable):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func notifyErrorStatus(err error) int {
	switch {
	case errors.Is(err, notify.ErrMissingToken),
		errors.Is(err, notify.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, notify.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, notify.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
