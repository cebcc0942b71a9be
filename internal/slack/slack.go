// Package slack posts catalog notifications to a Slack incoming webhook.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// Client sends Slack notifications via an incoming webhook.
type Client struct {
	webhookURL string
	http       *http.Client
}

// New creates a Slack webhook client.
func New(webhookURL string) *Client {
	return &Client{
		webhookURL: webhookURL,
		http:       &http.Client{Timeout: 10 * time.Second},
	}
}

type block struct {
	Type     string `json:"type"`
	Text     *text  `json:"text,omitempty"`
	Elements []text `json:"elements,omitempty"`
}

type text struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type payload struct {
	Blocks []block `json:"blocks"`
}

func (c *Client) postMessage(ctx context.Context, p payload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal slack payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send slack message: %w", err)
	}
	_ = resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack returned status %d", resp.StatusCode)
	}

	return nil
}

// VideoPublished announces a newly published video. Failures are logged
// and never returned to the caller.
func (c *Client) VideoPublished(ctx context.Context, title, watchURL string) error {
	p := payload{
		Blocks: []block{
			{
				Type: "section",
				Text: &text{
					Type: "mrkdwn",
					Text: fmt.Sprintf(":clapper: *New video published*\n<%s|%s>", watchURL, title),
				},
			},
			{
				Type: "context",
				Elements: []text{
					{
						Type: "mrkdwn",
						Text: "Published on StreamHub",
					},
				},
			},
		},
	}

	if err := c.postMessage(ctx, p); err != nil {
		log.Printf("slack: failed to send publish notification: %v", err)
	}
	return nil
}

// VideoDeleted announces that a video was taken down.
func (c *Client) VideoDeleted(ctx context.Context, title string) error {
	p := payload{
		Blocks: []block{
			{
				Type: "section",
				Text: &text{
					Type: "mrkdwn",
					Text: fmt.Sprintf(":wastebasket: *Video removed*\n%s", title),
				},
			},
		},
	}

	if err := c.postMessage(ctx, p); err != nil {
		log.Printf("slack: failed to send delete notification: %v", err)
	}
	return nil
}
