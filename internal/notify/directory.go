package notify

import (
	"context"
	"errors"

	db "github.com/katatrina/workhub-BE/internal/db/sqlc"
)

// StoreDirectory reads preferences, emails and display names from the row store.
type StoreDirectory struct {
	store db.Querier
}

func NewStoreDirectory(store db.Querier) *StoreDirectory {
	return &StoreDirectory{store: store}
}

func (d *StoreDirectory) EmailAlertsEnabled(ctx context.Context, userID string) (bool, error) {
	preference, err := d.store.GetNotificationPreference(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			return true, nil
		}
		return false, err
	}

	return preference.EmailAlerts, nil
}

func (d *StoreDirectory) RecipientEmail(ctx context.Context, userID string) (string, error) {
	email, err := d.store.GetUserEmail(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}

	if email == nil {
		return "", nil
	}
	return *email, nil
}

func (d *StoreDirectory) DisplayName(ctx context.Context, userID string) (string, error) {
	fullName, err := d.store.GetProfileFullName(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}

	if fullName == nil {
		return "", nil
	}
	return *fullName, nil
}
