package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/katatrina/workhub-BE/internal/notify"
	"github.com/rs/zerolog"
)

//	@Summary		Send notification email
//	@Description	Emails the receiver about a new notification from the authenticated sender, honoring the receiver's email preference
//	@Tags			notifications
//	@Accept			json
//	@Produce		json
//	@Security		accessToken
//	@Param			request	body		notify.Request	true	"Notification email request"
//	@Success		200		{object}	notify.Result
//	@Failure		400		{object}	map[string]string
//	@Failure		401		{object}	map[string]string
//	@Failure		403		{object}	map[string]string
//	@Failure		500		{object}	map[string]interface{}
//	@Router			/notifications/email [post]
func (server *Server) sendNotificationEmail(ctx *gin.Context) {
	userID, err := server.dispatcher.Authenticate(bearerToken(ctx.GetHeader(authorizationHeaderKey)))
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, errorResponse(err))
		return
	}

	var req notify.Request
	if err = ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(notify.ErrInvalidInput))
		return
	}

	result, err := server.dispatcher.Dispatch(ctx.Request.Context(), userID, req)
	if err != nil {
		status := notifyErrorStatus(err)
		if status != http.StatusInternalServerError {
			ctx.JSON(status, errorResponse(err))
			return
		}

		zerolog.Ctx(ctx.Request.Context()).Error().Err(err).
			Str("sender_id", req.SenderID).
			Str("receiver_id", req.ReceiverID).
			Msg("failed to send notification email")

		ctx.JSON(http.StatusInternalServerError, gin.H{
			"sent":  false,
			"error": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// preflightNotificationEmail answers OPTIONS requests that carry no Origin header.
// Browser preflights are answered by the CORS middleware before reaching here.
func (server *Server) preflightNotificationEmail(ctx *gin.Context) {
	ctx.Header("Access-Control-Allow-Origin", "*")
	ctx.Header("Access-Control-Allow-Headers", strings.Join(notificationCORSHeaders, ", "))
	ctx.Header("Access-Control-Allow-Methods", strings.Join(notificationCORSMethods, ", "))
	ctx.Status(http.StatusNoContent)
}
