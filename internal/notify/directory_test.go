package notify

import (
	"context"
	"errors"
	"testing"

	db "github.com/katatrina/workhub-BE/internal/db/sqlc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockQuerier struct {
	mock.Mock
	db.Querier
}

func (m *MockQuerier) GetNotificationPreference(ctx context.Context, userID string) (db.NotificationPreference, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(db.NotificationPreference), args.Error(1)
}

func (m *MockQuerier) GetUserEmail(ctx context.Context, id string) (*string, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*string), args.Error(1)
}

func (m *MockQuerier) GetProfileFullName(ctx context.Context, id string) (*string, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*string), args.Error(1)
}

func TestStoreDirectory_EmailAlertsEnabled(t *testing.T) {
	store := new(MockQuerier)
	store.On("GetNotificationPreference", mock.Anything, "opted-out").
		Return(db.NotificationPreference{UserID: "opted-out", EmailAlerts: false}, nil)
	store.On("GetNotificationPreference", mock.Anything, "no-row").
		Return(db.NotificationPreference{}, db.ErrRecordNotFound)
	store.On("GetNotificationPreference", mock.Anything, "broken").
		Return(db.NotificationPreference{}, errors.New("connection reset"))

	directory := NewStoreDirectory(store)
	ctx := context.Background()

	enabled, err := directory.EmailAlertsEnabled(ctx, "opted-out")
	require.NoError(t, err)
	assert.False(t, enabled)

	enabled, err = directory.EmailAlertsEnabled(ctx, "no-row")
	require.NoError(t, err)
	assert.True(t, enabled)

	_, err = directory.EmailAlertsEnabled(ctx, "broken")
	assert.Error(t, err)
}

func TestStoreDirectory_RecipientEmail(t *testing.T) {
	email := "bob@example.com"
	store := new(MockQuerier)
	store.On("GetUserEmail", mock.Anything, "bob").Return(&email, nil)
	store.On("GetUserEmail", mock.Anything, "no-email").Return((*string)(nil), nil)
	store.On("GetUserEmail", mock.Anything, "ghost").Return((*string)(nil), db.ErrRecordNotFound)

	directory := NewStoreDirectory(store)
	ctx := context.Background()

	got, err := directory.RecipientEmail(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, email, got)

	got, err = directory.RecipientEmail(ctx, "no-email")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = directory.RecipientEmail(ctx, "ghost")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStoreDirectory_DisplayName(t *testing.T) {
	name := "Alice Nguyen"
	store := new(MockQuerier)
	store.On("GetProfileFullName", mock.Anything, "alice").Return(&name, nil)
	store.On("GetProfileFullName", mock.Anything, "ghost").Return((*string)(nil), db.ErrRecordNotFound)

	directory := NewStoreDirectory(store)

	got, err := directory.DisplayName(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, name, got)

	got, err = directory.DisplayName(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Empty(t, got)
}
