package mailer

import (
	"context"
	"errors"
)

var (
	ErrNotConfigured = errors.New("email provider is not configured")
	ErrSendFailed    = errors.New("email provider rejected the message")
)

// Email is a single-recipient transactional message.
type Email struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// Receipt identifies a message accepted by the provider.
type Receipt struct {
	ID       string `json:"id"`
	Provider string `json:"provider"`
}

// Sender delivers transactional email through one provider.
type Sender interface {
	// Name is the provider name reported back to callers.
	Name() string
	// Configured reports whether the provider has the credentials it needs to send.
	Configured() bool
	Send(ctx context.Context, email Email) (*Receipt, error)
}
