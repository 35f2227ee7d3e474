package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/zpmep/hmacutil"
	"resty.dev/v3"
)

const (
	zalopayQueryPath = "/v2/query"

	zalopayReturnCodeSuccess    = 1
	zalopayReturnCodeFailed     = 2
	zalopayReturnCodeProcessing = 3
)

type zalopayQueryResponse struct {
	ReturnCode       int    `json:"return_code"`
	ReturnMessage    string `json:"return_message"`
	SubReturnCode    int    `json:"sub_return_code"`
	SubReturnMessage string `json:"sub_return_message"`
	IsProcessing     bool   `json:"is_processing"`
	Amount           int64  `json:"amount"`
	ZpTransID        int64  `json:"zp_trans_id"`
}

// ZalopayClient queries order status from ZaloPay. The payment intent ID is the app_trans_id.
type ZalopayClient struct {
	client *resty.Client
	appID  string
	key1   string
}

func NewZalopayClient(baseURL, appID, key1 string, timeout time.Duration) *ZalopayClient {
	return &ZalopayClient{
		client: resty.New().SetBaseURL(baseURL).SetTimeout(timeout),
		appID:  appID,
		key1:   key1,
	}
}

func (z *ZalopayClient) GetPaymentIntent(ctx context.Context, appTransID string) (*PaymentIntent, error) {
	// mac = HMAC(key1, app_id|app_trans_id|key1)
	data := fmt.Sprintf("%v|%v|%v", z.appID, appTransID, z.key1)

	resp, err := z.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"app_id":       z.appID,
			"app_trans_id": appTransID,
			"mac":          hmacutil.HexStringEncode(hmacutil.SHA256, z.key1, data),
		}).
		Post(zalopayQueryPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: zalopay returned %d", ErrProviderUnavailable, resp.StatusCode())
	}

	var result zalopayQueryResponse
	if err = json.Unmarshal([]byte(resp.String()), &result); err != nil {
		return nil, fmt.Errorf("%w: failed to parse zalopay response: %v", ErrProviderUnavailable, err)
	}

	intent := &PaymentIntent{
		ID:       appTransID,
		Amount:   result.Amount,
		Currency: "vnd",
	}

	switch result.ReturnCode {
	case zalopayReturnCodeSuccess:
		intent.Status = StatusSucceeded
	case zalopayReturnCodeFailed:
		intent.Status = "canceled"
	case zalopayReturnCodeProcessing:
		intent.Status = "processing"
	default:
		return nil, fmt.Errorf("%w: zalopay error: %s (code: %d, sub_code: %d, sub_message: %s)",
			ErrProviderUnavailable,
			result.ReturnMessage,
			result.ReturnCode,
			result.SubReturnCode,
			result.SubReturnMessage)
	}

	return intent, nil
}
