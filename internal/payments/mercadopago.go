// Package payments proxies payment-preference creation to Mercado Pago.
package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// UpstreamError carries the status and body Mercado Pago answered with, so
// the handler can pass them through.
type UpstreamError struct {
	StatusCode int
	Body       json.RawMessage
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("mercadopago returned %d", e.StatusCode)
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type preferenceItem struct {
	Title      string          `json:"title"`
	Quantity   int             `json:"quantity"`
	CurrencyID string          `json:"currency_id"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

type preferenceRequest struct {
	Items             []preferenceItem `json:"items"`
	ExternalReference string           `json:"external_reference"`
	NotificationURL   string           `json:"notification_url"`
}

type preferenceResponse struct {
	InitPoint string `json:"init_point"`
}

// CreatePreference registers a checkout preference for one order and
// returns its init_point URL (rendered as a QR by the register).
func (c *Client) CreatePreference(ctx context.Context, accessToken, orderID string, totalAmount decimal.Decimal) (string, error) {
	reqBody := preferenceRequest{
		Items: []preferenceItem{{
			Title:      fmt.Sprintf("Pedido #%s - Zibá Café", orderID),
			Quantity:   1,
			CurrencyID: "ARS",
			UnitPrice:  totalAmount.Round(2),
		}},
		ExternalReference: fmt.Sprintf("CAFE_SYSTEM_%s", orderID),
		NotificationURL:   "https://www.google.com/notify_payment",
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/checkout/preferences", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var body json.RawMessage
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: body}
	}

	var pref preferenceResponse
	if err := json.NewDecoder(resp.Body).Decode(&pref); err != nil {
		return "", fmt.Errorf("decode preference response: %w", err)
	}
	return pref.InitPoint, nil
}
