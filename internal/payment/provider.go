package payment

import (
	"context"
	"errors"
)

// StatusSucceeded is the only status that allows funds to be placed in escrow.
const StatusSucceeded = "succeeded"

var (
	ErrProviderUnavailable   = errors.New("payment provider unavailable")
	ErrPaymentIntentNotFound = errors.New("payment intent not found")
)

// PaymentIntent is the provider's authoritative view of one attempted charge.
type PaymentIntent struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// Settled reports whether the provider considers the charge complete.
func (pi *PaymentIntent) Settled() bool {
	return pi != nil && pi.Status == StatusSucceeded
}

// StatusLookup fetches the current state of a payment intent from the payment provider.
type StatusLookup interface {
	GetPaymentIntent(ctx context.Context, paymentIntentID string) (*PaymentIntent, error)
}
