// Package escrow confirms settled payments and moves their transactions into escrow.
package escrow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	db "github.com/katatrina/workhub-BE/internal/db/sqlc"
	"github.com/katatrina/workhub-BE/internal/payment"
	"github.com/rs/zerolog/log"
)

var (
	ErrInvalidInput             = errors.New("paymentIntentId is required")
	ErrPaymentNotSettled        = errors.New("payment has not succeeded")
	ErrUnknownTransaction       = errors.New("no transaction found for payment intent")
	ErrTransactionNotEscrowable = db.ErrTransactionNotEscrowable
	ErrProviderUnavailable      = payment.ErrProviderUnavailable
)

// Store is the subset of db.Store the escrow flow needs.
type Store interface {
	ConfirmEscrowTx(ctx context.Context, arg db.ConfirmEscrowTxParams) (db.ConfirmEscrowTxResult, error)
	ListStaleCreatedTransactions(ctx context.Context, arg db.ListStaleCreatedTransactionsParams) ([]db.Transaction, error)
}

// Notifier is told about transactions that have just entered escrow.
type Notifier interface {
	NotifyEscrowHeld(ctx context.Context, transaction db.Transaction) error
}

type Service struct {
	store    Store
	payments payment.StatusLookup
	notifier Notifier
	now      func() time.Time
}

type ServiceOption func(*Service)

// WithNotifier enables escrow-held notifications.
func WithNotifier(notifier Notifier) ServiceOption {
	return func(s *Service) {
		s.notifier = notifier
	}
}

// WithClock overrides the clock used to stamp escrowed_at.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(store Store, payments payment.StatusLookup, opts ...ServiceOption) *Service {
	s := &Service{
		store:    store,
		payments: payments,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Confirm asks the payment provider for the intent's status and, once it has succeeded,
// marks the matching transaction as held in escrow. Repeat calls for an already escrowed
// transaction return the stored row without writing.
func (s *Service) Confirm(ctx context.Context, paymentIntentID string) (*db.Transaction, error) {
	paymentIntentID = strings.TrimSpace(paymentIntentID)
	if paymentIntentID == "" {
		return nil, ErrInvalidInput
	}

	intent, err := s.payments.GetPaymentIntent(ctx, paymentIntentID)
	if err != nil {
		if errors.Is(err, payment.ErrPaymentIntentNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrPaymentNotSettled, err)
		}
		if errors.Is(err, ErrProviderUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	if !intent.Settled() {
		return nil, fmt.Errorf("%w: status is %q", ErrPaymentNotSettled, intent.Status)
	}

	result, err := s.store.ConfirmEscrowTx(ctx, db.ConfirmEscrowTxParams{
		PaymentIntentID: paymentIntentID,
		EscrowedAt:      s.now().UTC(),
	})
	if err != nil {
		switch {
		case errors.Is(err, db.ErrRecordNotFound):
			return nil, fmt.Errorf("%w: %s", ErrUnknownTransaction, paymentIntentID)
		case errors.Is(err, ErrTransactionNotEscrowable):
			return nil, err
		}
		return nil, fmt.Errorf("failed to confirm escrow for payment intent %s: %w", paymentIntentID, err)
	}

	transaction := result.Transaction

	if result.Transitioned {
		log.Info().
			Str("transaction_id", transaction.ID.String()).
			Str("payment_intent_id", paymentIntentID).
			Msg("transaction held in escrow")

		if s.notifier != nil {
			if err = s.notifier.NotifyEscrowHeld(ctx, transaction); err != nil {
				log.Error().Err(err).
					Str("transaction_id", transaction.ID.String()).
					Msg("failed to schedule escrow notification")
			}
		}
	}

	return &transaction, nil
}
