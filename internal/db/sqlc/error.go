package db

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	CheckViolationCode = "23514"
)

const (
	EscrowedAtCheckConstraint = "transactions_escrowed_at_check"
)

var ErrRecordNotFound = pgx.ErrNoRows

var ErrTransactionNotEscrowable = errors.New("transaction can no longer be placed in escrow")

// ErrorDescription returns the error code and constraint name from a Postgres error.
func ErrorDescription(err error) (errCode string, constraintName string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}

	return
}
