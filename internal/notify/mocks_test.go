package notify

import (
	"context"

	"github.com/katatrina/workhub-BE/internal/mailer"
	"github.com/katatrina/workhub-BE/internal/token"
	"github.com/stretchr/testify/mock"
)

type MockTokenVerifier struct {
	mock.Mock
}

func (m *MockTokenVerifier) VerifyToken(tokenString string) (*token.Payload, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*token.Payload), args.Error(1)
}

type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) EmailAlertsEnabled(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockDirectory) RecipientEmail(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockDirectory) DisplayName(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Name() string {
	return "resend"
}

func (m *MockSender) Configured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockSender) Send(ctx context.Context, email mailer.Email) (*mailer.Receipt, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mailer.Receipt), args.Error(1)
}
