// Package webhook dispatches signed event notifications to a configured
// HTTP endpoint and records every delivery attempt.
package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/streamhub/streamhub/internal/database"
)

// Stored response bodies are capped so a misbehaving endpoint cannot
// bloat the webhook_deliveries table.
const maxStoredResponse = 1024

// Event is the payload posted to the endpoint.
type Event struct {
	Name      string         `json:"event"`
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data"`
}

// Client posts events to a single endpoint, retrying failed deliveries.
type Client struct {
	db          database.DBTX
	http        *http.Client
	url         string
	secret      string
	retryDelays []time.Duration
}

// New creates a client that posts events to url, signing each payload
// with secret.
func New(db database.DBTX, url, secret string) *Client {
	return &Client{
		db:          db,
		http:        &http.Client{Timeout: 10 * time.Second},
		url:         url,
		secret:      secret,
		retryDelays: []time.Duration{1 * time.Second, 4 * time.Second},
	}
}

// SignPayload computes HMAC-SHA256 of the payload using the secret.
func SignPayload(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

// Dispatch posts the event with up to three attempts. Every attempt,
// delivered or not, lands in webhook_deliveries.
func (c *Client) Dispatch(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}
	signature := SignPayload(c.secret, body)

	maxAttempts := 1 + len(c.retryDelays)
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		status, reply, err := c.post(ctx, body, signature)
		ok := err == nil && status != nil && *status/100 == 2
		c.recordDelivery(ctx, event.Name, attempt, status, reply, ok)
		if ok {
			return nil
		}

		switch {
		case err != nil:
			lastErr = err
		case status != nil:
			lastErr = fmt.Errorf("webhook endpoint returned status %d", *status)
		}

		if attempt == maxAttempts {
			break
		}
		select {
		case <-time.After(c.retryDelays[attempt-1]):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return lastErr
}

// post performs a single delivery attempt. A nil status means the
// request never reached the endpoint.
func (c *Client) post(ctx context.Context, payload []byte, signature string) (*int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, "", fmt.Errorf("create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-StreamHub-Signature", signature)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err.Error(), err
	}
	defer func() { _ = resp.Body.Close() }()

	reply, _ := io.ReadAll(io.LimitReader(resp.Body, maxStoredResponse+1))
	if len(reply) > maxStoredResponse {
		reply = reply[:maxStoredResponse]
	}
	return &resp.StatusCode, string(reply), nil
}

func (c *Client) recordDelivery(ctx context.Context, event string, attempt int, status *int, reply string, succeeded bool) {
	if _, err := c.db.Exec(ctx,
		`INSERT INTO webhook_deliveries (event, url, attempt, status_code, succeeded, response_body)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		event, c.url, attempt, status, succeeded, reply,
	); err != nil {
		slog.Error("webhook: failed to record delivery", "event", event, "error", err)
	}
}
