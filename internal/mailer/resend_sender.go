package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/katatrina/workhub-BE/internal/util"
	"resty.dev/v3"
)

const resendProviderName = util.EmailProviderResend

type resendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type resendEmailResponse struct {
	ID string `json:"id"`
}

type resendErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Name       string `json:"name"`
	Message    string `json:"message"`
}

// ResendSender sends email through the Resend HTTP API.
type ResendSender struct {
	client *resty.Client
	apiKey string
}

func NewResendSender(baseURL, apiKey string, timeout time.Duration) *ResendSender {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	if apiKey != "" {
		client.SetAuthToken(apiKey)
	}

	return &ResendSender{
		client: client,
		apiKey: apiKey,
	}
}

func (s *ResendSender) Name() string {
	return resendProviderName
}

func (s *ResendSender) Configured() bool {
	return s.apiKey != ""
}

func (s *ResendSender) Send(ctx context.Context, email Email) (*Receipt, error) {
	if !s.Configured() {
		return nil, ErrNotConfigured
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(resendEmailRequest{
			From:    email.From,
			To:      []string{email.To},
			Subject: email.Subject,
			HTML:    email.HTML,
		}).
		Post("/emails")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	body := []byte(resp.String())

	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		message := fmt.Sprintf("resend returned status %d", resp.StatusCode())
		var errResp resendErrorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Message != "" {
			message = errResp.Message
		}
		return nil, fmt.Errorf("%w: %s", ErrSendFailed, message)
	}

	var result resendEmailResponse
	if err = json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse resend response: %w", err)
	}

	return &Receipt{
		ID:       result.ID,
		Provider: resendProviderName,
	}, nil
}
