package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"resty.dev/v3"
)

type stripeErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// StripeClient looks up payment intents through the Stripe REST API.
type StripeClient struct {
	client *resty.Client
}

func NewStripeClient(baseURL, secretKey string, timeout time.Duration) *StripeClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(secretKey).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &StripeClient{client: client}
}

func (s *StripeClient) GetPaymentIntent(ctx context.Context, paymentIntentID string) (*PaymentIntent, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetPathParam("id", paymentIntentID).
		Get("/v1/payment_intents/{id}")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	body := []byte(resp.String())

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrPaymentIntentNotFound, paymentIntentID)
	case resp.StatusCode() >= 300:
		var errResp stripeErrorResponse
		message := http.StatusText(resp.StatusCode())
		if json.Unmarshal(body, &errResp) == nil && errResp.Error.Message != "" {
			message = errResp.Error.Message
		}
		return nil, fmt.Errorf("%w: stripe returned %d: %s", ErrProviderUnavailable, resp.StatusCode(), message)
	}

	var intent PaymentIntent
	if err = json.Unmarshal(body, &intent); err != nil {
		return nil, fmt.Errorf("%w: failed to parse stripe response: %v", ErrProviderUnavailable, err)
	}

	if intent.Status == "" {
		return nil, fmt.Errorf("%w: stripe response has no status", ErrProviderUnavailable)
	}

	return &intent, nil
}
