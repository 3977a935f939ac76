// Package gateway talks to the external payment gateway: outbound charge and
// refund requests, and signature checks for its inbound webhooks.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client submits charges and refunds. Settlement is reported later through
// webhooks, so a successful call only means the gateway accepted the request.
type Client interface {
	Charge(ctx context.Context, req ChargeRequest) (*Response, error)
	Refund(ctx context.Context, req RefundRequest) (*Response, error)
}

type ChargeRequest struct {
	BillUUID        uuid.UUID `json:"bill_uuid"`
	Amount          int64     `json:"amount"`
	PaymentMethodID string    `json:"payment_method_id,omitempty"`
	IdempotencyKey  string    `json:"-"`
}

type RefundRequest struct {
	BillUUID       uuid.UUID `json:"bill_uuid"`
	Amount         int64     `json:"amount"`
	IdempotencyKey string    `json:"-"`
}

// Response is the gateway acknowledgement.
type Response struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
}

// Error is a non-2xx answer from the gateway.
type Error struct {
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("payment gateway returned status %d: %s", e.StatusCode, e.Body)
}

// Retryable reports whether the same request may succeed later.
func (e *Error) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

const maxErrorBody = 4 << 10

type httpClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPClient creates a gateway client for baseURL authenticated with apiKey.
func NewHTTPClient(baseURL, apiKey string) Client {
	return &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (c *httpClient) Charge(ctx context.Context, req ChargeRequest) (*Response, error) {
	return c.post(ctx, "/v1/charges", req.IdempotencyKey, req)
}

func (c *httpClient) Refund(ctx context.Context, req RefundRequest) (*Response, error) {
	return c.post(ctx, "/v1/refunds", req.IdempotencyKey, req)
}

func (c *httpClient) post(ctx context.Context, path, idempotencyKey string, body any) (*Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal gateway request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach payment gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &Error{StatusCode: resp.StatusCode, Body: string(data)}
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode gateway response: %w", err)
	}
	return &out, nil
}
