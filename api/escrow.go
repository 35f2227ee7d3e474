package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	db "github.com/katatrina/workhub-BE/internal/db/sqlc"
	"github.com/katatrina/workhub-BE/internal/escrow"
	"github.com/rs/zerolog"
)

type confirmEscrowRequest struct {
	PaymentIntentID string `json:"paymentIntentId"`
}

//	@Summary		Confirm escrow
//	@Description	Verifies a payment intent with the payment provider and moves its transaction into escrow
//	@Tags			escrow
//	@Accept			json
//	@Produce		json
//	@Param			Idempotency-Key	header		string					false	"Replays the first successful response for this key"
//	@Param			request			body		confirmEscrowRequest	true	"Confirm escrow request"
//	@Success		200				{object}	db.Transaction
//	@Failure		400				{object}	map[string]string
//	@Failure		404				{object}	map[string]string
//	@Failure		409				{object}	map[string]string
//	@Failure		500				{object}	map[string]string	"Payment provider unavailable or internal error; provider outages are server-side failures, not client errors"
//	@Router			/escrow/confirm [post]
func (server *Server) confirmEscrow(ctx *gin.Context) {
	var req confirmEscrowRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(ErrInvalidRequestBody))
		return
	}

	var transaction *db.Transaction
	transaction, err := server.escrowService.Confirm(ctx.Request.Context(), req.PaymentIntentID)
	if err != nil {
		status := escrowErrorStatus(err)
		if status != http.StatusInternalServerError {
			ctx.JSON(status, errorResponse(err))
			return
		}

		zerolog.Ctx(ctx.Request.Context()).Error().Err(err).
			Str("payment_intent_id", req.PaymentIntentID).
			Msg("failed to confirm escrow")

		// Provider and database details stay in the logs
		if errors.Is(err, escrow.ErrProviderUnavailable) {
			err = escrow.ErrProviderUnavailable
		} else {
			err = ErrInternalServer
		}
		ctx.JSON(status, errorResponse(err))
		return
	}

	ctx.JSON(http.StatusOK, transaction)
}
