package notify

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/katatrina/workhub-BE/internal/mailer"
	"github.com/katatrina/workhub-BE/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testConfig = Config{
	From:         "Workhub <onboarding@resend.dev>",
	DefaultTitle: "New notification",
}

type dispatcherDeps struct {
	tokens    *MockTokenVerifier
	directory *MockDirectory
	sender    *MockSender
}

func newTestDispatcher() (*Dispatcher, dispatcherDeps) {
	deps := dispatcherDeps{
		tokens:    new(MockTokenVerifier),
		directory: new(MockDirectory),
		sender:    new(MockSender),
	}
	return NewDispatcher(testConfig, deps.tokens, deps.directory, deps.sender), deps
}

func payloadFor(userID string) *token.Payload {
	return &token.Payload{RegisteredClaims: jwt.RegisteredClaims{Subject: userID}}
}

func notificationID(s string) *string {
	return &s
}

func TestAuthenticate(t *testing.T) {
	dispatcher, deps := newTestDispatcher()
	deps.tokens.On("VerifyToken", "good").Return(payloadFor("u-sender"), nil)
	deps.tokens.On("VerifyToken", "bad").Return(nil, token.ErrInvalidToken)
	deps.tokens.On("VerifyToken", "old").Return(nil, token.ErrExpiredToken)

	userID, err := dispatcher.Authenticate("good")
	require.NoError(t, err)
	assert.Equal(t, "u-sender", userID)

	_, err = dispatcher.Authenticate("")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = dispatcher.Authenticate("bad")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = dispatcher.Authenticate("old")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestDispatch_InvalidInput(t *testing.T) {
	dispatcher, deps := newTestDispatcher()

	requests := []Request{
		{ReceiverID: "u1"},
		{SenderID: "u-sender"},
		{SenderID: "  ", ReceiverID: "u1"},
		{},
	}

	for _, req := range requests {
		_, err := dispatcher.Dispatch(context.Background(), "u-sender", req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}

	deps.directory.AssertNotCalled(t, "EmailAlertsEnabled", mock.Anything, mock.Anything)
}

func TestDispatch_SenderMismatchIsForbidden(t *testing.T) {
	dispatcher, deps := newTestDispatcher()

	_, err := dispatcher.Dispatch(context.Background(), "u-attacker", Request{
		SenderID:   "u-sender",
		ReceiverID: "u1",
		Title:      "Proposal accepted",
	})
	assert.ErrorIs(t, err, ErrForbidden)

	deps.directory.AssertNotCalled(t, "EmailAlertsEnabled", mock.Anything, mock.Anything)
	deps.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestDispatch_EmailAlertsDisabled(t *testing.T) {
	dispatcher, deps := newTestDispatcher()
	deps.directory.On("EmailAlertsEnabled", mock.Anything, "u1").Return(false, nil)

	result, err := dispatcher.Dispatch(context.Background(), "u-sender", Request{
		SenderID:       "u-sender",
		ReceiverID:     "u1",
		Title:          "New message",
		NotificationID: notificationID("n-1"),
	})
	require.NoError(t, err)

	assert.False(t, result.Sent)
	assert.Equal(t, ReasonEmailAlertsDisabled, result.Reason)
	deps.directory.AssertNotCalled(t, "RecipientEmail", mock.Anything, mock.Anything)
	deps.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestDispatch_RecipientEmailMissing(t *testing.T) {
	dispatcher, deps := newTestDispatcher()
	deps.directory.On("EmailAlertsEnabled", mock.Anything, "u1").Return(true, nil)
	deps.directory.On("RecipientEmail", mock.Anything, "u1").Return("", nil)

	result, err := dispatcher.Dispatch(context.Background(), "u-sender", Request{SenderID: "u-sender", ReceiverID: "u1"})
	require.NoError(t, err)

	assert.False(t, result.Sent)
	assert.Equal(t, ReasonRecipientEmailMissing, result.Reason)
	deps.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestDispatch_ProviderNotConfigured(t *testing.T) {
	dispatcher, deps := newTestDispatcher()
	deps.directory.On("EmailAlertsEnabled", mock.Anything, "u1").Return(true, nil)
	deps.directory.On("RecipientEmail", mock.Anything, "u1").Return("bob@example.com", nil)
	deps.sender.On("Configured").Return(false)

	result, err := dispatcher.Dispatch(context.Background(), "u-sender", Request{SenderID: "u-sender", ReceiverID: "u1"})
	require.NoError(t, err)

	assert.False(t, result.Sent)
	assert.Equal(t, ReasonProviderNotConfigured, result.Reason)
	deps.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestDispatch_Sent(t *testing.T) {
	dispatcher, deps := newTestDispatcher()
	deps.directory.On("EmailAlertsEnabled", mock.Anything, "u1").Return(true, nil)
	deps.directory.On("RecipientEmail", mock.Anything, "u1").Return("bob@example.com", nil)
	deps.directory.On("DisplayName", mock.Anything, "u-sender").Return("Alice", nil)
	deps.sender.On("Configured").Return(true)

	var sent mailer.Email
	deps.sender.On("Send", mock.Anything, mock.AnythingOfType("mailer.Email")).
		Run(func(args mock.Arguments) { sent = args.Get(1).(mailer.Email) }).
		Return(&mailer.Receipt{ID: "msg-1", Provider: "resend"}, nil)

	result, err := dispatcher.Dispatch(context.Background(), "u-sender", Request{
		SenderID:       "u-sender",
		ReceiverID:     "u1",
		Title:          "Proposal accepted",
		NotificationID: notificationID("n-42"),
	})
	require.NoError(t, err)

	assert.True(t, result.Sent)
	assert.Equal(t, "bob@example.com", result.To)
	assert.Equal(t, "resend", result.Provider)
	require.NotNil(t, result.NotificationID)
	assert.Equal(t, "n-42", *result.NotificationID)

	assert.Equal(t, testConfig.From, sent.From)
	assert.Equal(t, "bob@example.com", sent.To)
	assert.Equal(t, "Proposal accepted", sent.Subject)
	assert.Contains(t, sent.HTML, "Alice sent you a new notification.")
}

func TestDispatch_DefaultsTitleAndSenderName(t *testing.T) {
	dispatcher, deps := newTestDispatcher()
	deps.directory.On("EmailAlertsEnabled", mock.Anything, "u1").Return(true, nil)
	deps.directory.On("RecipientEmail", mock.Anything, "u1").Return("bob@example.com", nil)
	deps.directory.On("DisplayName", mock.Anything, "u-sender").Return("", errors.New("timeout"))
	deps.sender.On("Configured").Return(true)

	var sent mailer.Email
	deps.sender.On("Send", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1).(mailer.Email) }).
		Return(&mailer.Receipt{ID: "msg-2"}, nil)

	result, err := dispatcher.Dispatch(context.Background(), "u-sender", Request{SenderID: "u-sender", ReceiverID: "u1"})
	require.NoError(t, err)

	assert.True(t, result.Sent)
	assert.Nil(t, result.NotificationID)
	assert.Equal(t, "New notification", sent.Subject)
	assert.Contains(t, sent.HTML, "Someone sent you a new notification.")
}

func TestDispatch_EscapesUserControlledContent(t *testing.T) {
	dispatcher, deps := newTestDispatcher()
	deps.directory.On("EmailAlertsEnabled", mock.Anything, "u1").Return(true, nil)
	deps.directory.On("RecipientEmail", mock.Anything, "u1").Return("bob@example.com", nil)
	deps.directory.On("DisplayName", mock.Anything, "u-sender").Return(`<img src=x onerror="steal()">`, nil)
	deps.sender.On("Configured").Return(true)

	var sent mailer.Email
	deps.sender.On("Send", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1).(mailer.Email) }).
		Return(&mailer.Receipt{ID: "msg-3"}, nil)

	title := "<script>alert(1)</script>"
	_, err := dispatcher.Dispatch(context.Background(), "u-sender", Request{SenderID: "u-sender", ReceiverID: "u1", Title: title})
	require.NoError(t, err)

	assert.Contains(t, sent.HTML, "&lt;script&gt;")
	assert.NotContains(t, sent.HTML, "<script>")
	assert.NotContains(t, sent.HTML, "<img")
	assert.Equal(t, title, sent.Subject)
}

func TestDispatch_NonASCIITitle(t *testing.T) {
	dispatcher, deps := newTestDispatcher()
	deps.directory.On("EmailAlertsEnabled", mock.Anything, "u1").Return(true, nil)
	deps.directory.On("RecipientEmail", mock.Anything, "u1").Return("bob@example.com", nil)
	deps.directory.On("DisplayName", mock.Anything, "u-sender").Return("Zoë", nil)
	deps.sender.On("Configured").Return(true)

	var sent mailer.Email
	deps.sender.On("Send", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1).(mailer.Email) }).
		Return(&mailer.Receipt{ID: "msg-4"}, nil)

	_, err := dispatcher.Dispatch(context.Background(), "u-sender", Request{SenderID: "u-sender", ReceiverID: "u1", Title: "Résumé ready"})
	require.NoError(t, err)

	assert.Equal(t, "Résumé ready", sent.Subject)
	assert.Contains(t, sent.HTML, "Résumé ready")
	assert.Contains(t, sent.HTML, "Zoë sent you")
}

func TestDispatch_SendFailed(t *testing.T) {
	dispatcher, deps := newTestDispatcher()
	deps.directory.On("EmailAlertsEnabled", mock.Anything, "u1").Return(true, nil)
	deps.directory.On("RecipientEmail", mock.Anything, "u1").Return("bob@example.com", nil)
	deps.directory.On("DisplayName", mock.Anything, "u-sender").Return("Alice", nil)
	deps.sender.On("Configured").Return(true)
	deps.sender.On("Send", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: The gmail.com domain is not verified", mailer.ErrSendFailed))

	result, err := dispatcher.Dispatch(context.Background(), "u-sender", Request{SenderID: "u-sender", ReceiverID: "u1"})
	assert.Nil(t, result)
	require.ErrorIs(t, err, ErrEmailSendFailed)
	assert.Contains(t, err.Error(), "domain is not verified")
}

func TestDispatch_PreferenceLookupFailure(t *testing.T) {
	dispatcher, deps := newTestDispatcher()
	deps.directory.On("EmailAlertsEnabled", mock.Anything, "u1").Return(false, errors.New("connection refused"))

	_, err := dispatcher.Dispatch(context.Background(), "u-sender", Request{SenderID: "u-sender", ReceiverID: "u1"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidInput)
	deps.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}
