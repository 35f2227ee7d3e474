package mailer

import (
	"context"
	"fmt"

	"github.com/katatrina/workhub-BE/internal/util"
	"github.com/wneessen/go-mail"
)

const smtpProviderName = util.EmailProviderSMTP

// SMTPSender sends email through an SMTP relay.
type SMTPSender struct {
	client *mail.Client
}

// NewSMTPSender builds a sender for host. Without credentials it returns an unconfigured sender
// so that requests are short-circuited instead of failing at startup.
func NewSMTPSender(host string, port int, username, password string) (*SMTPSender, error) {
	if host == "" || username == "" {
		return &SMTPSender{}, nil
	}

	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
		mail.WithUsername(username),
		mail.WithPassword(password),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	return &SMTPSender{client: client}, nil
}

func (sender *SMTPSender) Name() string {
	return smtpProviderName
}

func (sender *SMTPSender) Configured() bool {
	return sender.client != nil
}

func (sender *SMTPSender) Send(ctx context.Context, email Email) (*Receipt, error) {
	if !sender.Configured() {
		return nil, ErrNotConfigured
	}

	msg := mail.NewMsg()

	if err := msg.From(email.From); err != nil {
		return nil, fmt.Errorf("failed to set From address: %w", err)
	}

	if err := msg.To(email.To); err != nil {
		return nil, fmt.Errorf("failed to set To address: %w", err)
	}

	msg.Subject(email.Subject)
	msg.SetBodyString(mail.TypeTextHTML, email.HTML)
	msg.SetMessageID()

	if err := sender.client.DialAndSendWithContext(ctx, msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	return &Receipt{
		ID:       msg.GetMessageID(),
		Provider: smtpProviderName,
	}, nil
}
