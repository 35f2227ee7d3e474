// Package notify sends transactional notification emails on behalf of an authenticated sender.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/katatrina/workhub-BE/internal/mailer"
	"github.com/katatrina/workhub-BE/internal/token"
	"github.com/katatrina/workhub-BE/internal/util"
	"github.com/rs/zerolog/log"
)

const (
	ReasonEmailAlertsDisabled   = "email_alerts_disabled"
	ReasonRecipientEmailMissing = "recipient_email_missing"
	ReasonProviderNotConfigured = "resend_not_configured"
	defaultSenderDisplayName    = "Someone"
)

var (
	ErrMissingToken    = errors.New("Missing auth token")
	ErrUnauthorized    = errors.New("Unauthorized")
	ErrInvalidInput    = errors.New("senderid and receiveid are required")
	ErrForbidden       = errors.New("senderid must match authenticated user")
	ErrEmailSendFailed = mailer.ErrSendFailed
)

// Request is one notification email request. It is never persisted.
type Request struct {
	SenderID       string          `json:"senderid"`
	ReceiverID     string          `json:"receiveid"`
	Title          string          `json:"title"`
	Payload        json.RawMessage `json:"payload,omitempty"`
	NotificationID *string         `json:"notificationId"`
}

type Result struct {
	Sent           bool    `json:"sent"`
	Reason         string  `json:"reason,omitempty"`
	To             string  `json:"to,omitempty"`
	Provider       string  `json:"provider,omitempty"`
	NotificationID *string `json:"notificationId"`
}

// TokenVerifier resolves an access token to the authenticated identity.
type TokenVerifier interface {
	VerifyToken(tokenString string) (*token.Payload, error)
}

// Directory answers the read-only user lookups the dispatcher needs.
type Directory interface {
	// EmailAlertsEnabled is false only when the user explicitly opted out.
	EmailAlertsEnabled(ctx context.Context, userID string) (bool, error)
	// RecipientEmail returns "" when the user has no email address.
	RecipientEmail(ctx context.Context, userID string) (string, error)
	// DisplayName returns "" when the user has no display name.
	DisplayName(ctx context.Context, userID string) (string, error)
}

type Config struct {
	From         string
	DefaultTitle string
}

type Dispatcher struct {
	config    Config
	tokens    TokenVerifier
	directory Directory
	sender    mailer.Sender
}

func NewDispatcher(config Config, tokens TokenVerifier, directory Directory, sender mailer.Sender) *Dispatcher {
	return &Dispatcher{
		config:    config,
		tokens:    tokens,
		directory: directory,
		sender:    sender,
	}
}

// Authenticate returns the user ID behind accessToken.
func (d *Dispatcher) Authenticate(accessToken string) (string, error) {
	if accessToken == "" {
		return "", ErrMissingToken
	}

	payload, err := d.tokens.VerifyToken(accessToken)
	if err != nil {
		return "", ErrUnauthorized
	}

	return payload.Subject, nil
}

// Dispatch runs the remaining gates for a caller already authenticated as userID, in order:
// input, authorization, preference, recipient, provider configuration, render, send.
// Skipped sends are returned as a Result with Sent == false and a reason, not as errors.
func (d *Dispatcher) Dispatch(ctx context.Context, userID string, req Request) (*Result, error) {
	if strings.TrimSpace(req.SenderID) == "" || strings.TrimSpace(req.ReceiverID) == "" {
		return nil, ErrInvalidInput
	}

	if userID != req.SenderID {
		return nil, ErrForbidden
	}

	enabled, err := d.directory.EmailAlertsEnabled(ctx, req.ReceiverID)
	if err != nil {
		return nil, fmt.Errorf("failed to read notification preferences: %w", err)
	}
	if !enabled {
		return d.skipped(req, ReasonEmailAlertsDisabled), nil
	}

	recipient, err := d.directory.RecipientEmail(ctx, req.ReceiverID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up recipient email: %w", err)
	}
	if recipient == "" {
		return d.skipped(req, ReasonRecipientEmailMissing), nil
	}

	if !d.sender.Configured() {
		return d.skipped(req, ReasonProviderNotConfigured), nil
	}

	title := req.Title
	if strings.TrimSpace(title) == "" {
		title = d.config.DefaultTitle
	}

	senderName, err := d.directory.DisplayName(ctx, req.SenderID)
	if err != nil {
		log.Warn().Err(err).Str("sender_id", req.SenderID).Msg("failed to look up sender display name")
		senderName = ""
	}
	if strings.TrimSpace(senderName) == "" {
		senderName = defaultSenderDisplayName
	}

	html, err := renderEmail(emailContent{Title: title, SenderName: senderName})
	if err != nil {
		return nil, err
	}

	receipt, err := d.sender.Send(ctx, mailer.Email{
		From:    d.config.From,
		To:      recipient,
		Subject: title,
		HTML:    html,
	})
	if err != nil {
		if errors.Is(err, ErrEmailSendFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrEmailSendFailed, err)
	}

	log.Info().
		Str("receiver_id", req.ReceiverID).
		Str("title", util.TruncateContent(title, 80)).
		Str("provider", d.sender.Name()).
		Str("message_id", receipt.ID).
		Msg("notification email sent")

	return &Result{
		Sent:           true,
		To:             recipient,
		Provider:       d.sender.Name(),
		NotificationID: req.NotificationID,
	}, nil
}

func (d *Dispatcher) skipped(req Request, reason string) *Result {
	log.Info().
		Str("receiver_id", req.ReceiverID).
		Str("reason", reason).
		Msg("notification email skipped")

	return &Result{
		Sent:           false,
		Reason:         reason,
		NotificationID: req.NotificationID,
	}
}
