package db

import (
	"context"
	"fmt"
	"time"
)

type ConfirmEscrowTxParams struct {
	PaymentIntentID string
	EscrowedAt      time.Time
}

type ConfirmEscrowTxResult struct {
	Transaction Transaction
	// Transitioned is false when the transaction was already held in escrow and nothing was written.
	Transitioned bool
}

// ConfirmEscrowTx moves the transaction matching a settled payment intent from created to held_in_escrow.
// The row is locked first so that concurrent confirmations of the same intent stamp escrowed_at once.
func (store *SQLStore) ConfirmEscrowTx(ctx context.Context, arg ConfirmEscrowTxParams) (ConfirmEscrowTxResult, error) {
	var result ConfirmEscrowTxResult

	err := store.ExecTx(ctx, func(qTx *Queries) error {
		var err error
		result, err = qTx.confirmEscrow(ctx, arg)
		return err
	})

	return result, err
}

func (q *Queries) confirmEscrow(ctx context.Context, arg ConfirmEscrowTxParams) (ConfirmEscrowTxResult, error) {
	var result ConfirmEscrowTxResult

	transaction, err := q.GetTransactionByPaymentIntentIDForUpdate(ctx, arg.PaymentIntentID)
	if err != nil {
		return result, err
	}

	switch transaction.Status {
	case TransactionStatusHeldInEscrow:
		// Already confirmed, keep the original escrowed_at.
		result.Transaction = transaction
		return result, nil
	case TransactionStatusCreated:
	default:
		return result, fmt.Errorf("%w: status is %s", ErrTransactionNotEscrowable, transaction.Status)
	}

	escrowedAt := arg.EscrowedAt
	updated, err := q.MarkTransactionHeldInEscrow(ctx, MarkTransactionHeldInEscrowParams{
		EscrowedAt:      &escrowedAt,
		PaymentIntentID: arg.PaymentIntentID,
	})
	if err != nil {
		if errCode, constraint := ErrorDescription(err); errCode == CheckViolationCode && constraint == EscrowedAtCheckConstraint {
			return result, fmt.Errorf("%w: escrowed_at check rejected the update", ErrTransactionNotEscrowable)
		}
		return result, fmt.Errorf("failed to mark transaction %s as held in escrow: %w", transaction.ID, err)
	}

	result.Transaction = updated
	result.Transitioned = true
	return result, nil
}
