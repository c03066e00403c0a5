package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"parkspot/internal/pkg/config"
	"parkspot/internal/pkg/errs"

	"github.com/google/uuid"
)

// Client talks to the external payment provider over HTTP. Any transport or
// provider failure is marked ErrPaymentFailed so callers can map it uniformly.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	currency   string
}

func NewClient(cfg config.PaymentConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		currency:   cfg.Currency,
	}
}

type chargeRequest struct {
	BookingID   string `json:"booking_id"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
}

func (c *Client) Charge(ctx context.Context, bookingID uuid.UUID, amountCents int64) error {
	return c.post(ctx, "/v1/charges", chargeRequest{
		BookingID:   bookingID.String(),
		AmountCents: amountCents,
		Currency:    c.currency,
	})
}

func (c *Client) Refund(ctx context.Context, bookingID uuid.UUID, amountCents int64) error {
	return c.post(ctx, "/v1/refunds", chargeRequest{
		BookingID:   bookingID.String(),
		AmountCents: amountCents,
		Currency:    c.currency,
	})
}

func (c *Client) post(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errs.Mark(errs.Wrap(err, "failed to marshal payment request"), errs.ErrPaymentFailed)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return errs.Mark(errs.Wrap(err, "failed to build payment request"), errs.ErrPaymentFailed)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.Mark(errs.Wrap(err, "payment provider unreachable"), errs.ErrPaymentFailed)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errs.Mark(errs.New(fmt.Sprintf("payment provider returned %d", resp.StatusCode)), errs.ErrPaymentFailed)
	}
	return nil
}
