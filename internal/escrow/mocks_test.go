package escrow

import (
	"context"

	db "github.com/katatrina/workhub-BE/internal/db/sqlc"
	"github.com/katatrina/workhub-BE/internal/payment"
	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) ConfirmEscrowTx(ctx context.Context, arg db.ConfirmEscrowTxParams) (db.ConfirmEscrowTxResult, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(db.ConfirmEscrowTxResult), args.Error(1)
}

func (m *MockStore) ListStaleCreatedTransactions(ctx context.Context, arg db.ListStaleCreatedTransactionsParams) ([]db.Transaction, error) {
	args := m.Called(ctx, arg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]db.Transaction), args.Error(1)
}

type MockStatusLookup struct {
	mock.Mock
}

func (m *MockStatusLookup) GetPaymentIntent(ctx context.Context, paymentIntentID string) (*payment.PaymentIntent, error) {
	args := m.Called(ctx, paymentIntentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.PaymentIntent), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyEscrowHeld(ctx context.Context, transaction db.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}
