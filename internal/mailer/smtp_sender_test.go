package mailer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMTPSender_Unconfigured(t *testing.T) {
	sender, err := NewSMTPSender("", 587, "", "")
	require.NoError(t, err)

	assert.Equal(t, "smtp", sender.Name())
	assert.False(t, sender.Configured())

	_, err = sender.Send(context.Background(), Email{From: "a@example.com", To: "b@example.com"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestSMTPSender_Configured(t *testing.T) {
	sender, err := NewSMTPSender("smtp.example.com", 587, "workhub", "secret")
	require.NoError(t, err)

	assert.True(t, sender.Configured())
}

func TestSMTPSender_InvalidAddress(t *testing.T) {
	sender, err := NewSMTPSender("smtp.example.com", 587, "workhub", "secret")
	require.NoError(t, err)

	_, err = sender.Send(context.Background(), Email{From: "not an address", To: "b@example.com"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSendFailed)
}
